package ship

import (
	"context"
	"time"

	"github.com/driftship/driftship/internal/pipeline"
)

// Collaborators bundles every external collaborator the planner and phase
// runner call through, per spec.md §1's "treated as external collaborators,
// interfaces only" scoping.
type Collaborators struct {
	Repo      GitRepository
	Changelog ChangelogTool
	Release   ReleaseCLI
	Deps      DepsDiffer
	Stats     StatsCollector
	Notes     NotesRenderer
	Versions  VersionWriter
	Tools     DetectedTools
}

// Plan is the sum type spec.md §3 calls Ship Plan: exactly one of Ready or
// Interactive is set.
type Plan struct {
	Ready       *ReadyShip
	Interactive *InteractiveShip
}

// InteractiveShip carries the candidate versions and recent commit history
// an interactive chooser needs to display, per spec.md §3.
type InteractiveShip struct {
	root          string
	opts          Options
	cfg           Config
	collaborators Collaborators

	PreviousVersion string
	PreviousTag     string
	Candidates      CandidateVersions
	RecentCommits   []CommitSummary
}

// ReadyShip is a fully planned, side-effect-free ship ready for unattended
// execution via Execute.
type ReadyShip struct {
	root          string
	opts          Options
	cfg           Config
	collaborators Collaborators
	ctx           *pipeline.Context
}

// Context returns the pipeline context this ready ship was planned with.
func (r *ReadyShip) Context() *pipeline.Context {
	return r.ctx
}

// PlanShip runs the preflight gate and version resolution described in
// spec.md §4.1, halting on first failure. It is pure apart from git reads;
// all mutating side effects are deferred to ReadyShip.Execute.
func PlanShip(ctx context.Context, root string, cfg Config, opts Options, collaborators Collaborators) (Plan, error) {
	releaseBranch := cfg.ReleaseBranch
	if releaseBranch == "" {
		branch, err := defaultBranch(ctx, collaborators.Repo)
		if err != nil {
			return Plan{}, &PreflightFailedError{Check: "branch", Detail: err.Error()}
		}
		releaseBranch = branch
	}

	if err := runPreflight(ctx, collaborators.Repo, root, releaseBranch, collaborators.Tools, opts); err != nil {
		return Plan{}, err
	}

	rv, err := resolveVersion(ctx, collaborators.Repo, collaborators.Changelog, root, opts, cfg)
	if err != nil {
		return Plan{}, err
	}

	if rv.NeedsInteraction {
		return Plan{Interactive: &InteractiveShip{
			root:            root,
			opts:            opts,
			cfg:             cfg,
			collaborators:   collaborators,
			PreviousVersion: rv.PreviousVersion,
			PreviousTag:     rv.PreviousTag,
			Candidates:      rv.Candidates,
			RecentCommits:   rv.RecentCommits,
		}}, nil
	}

	ready, err := buildReadyShip(ctx, root, cfg, opts, collaborators, rv.Version, rv.PreviousVersion, rv.PreviousTag)
	if err != nil {
		return Plan{}, err
	}
	return Plan{Ready: ready}, nil
}

// ResolveShipInteraction turns an InteractiveShip plus a user-chosen version
// into a Ready ship, completing the plan/execute split described in
// spec.md §9.
func ResolveShipInteraction(ctx context.Context, plan *InteractiveShip, chosenVersion string) (*ReadyShip, error) {
	return buildReadyShip(ctx, plan.root, plan.cfg, plan.opts, plan.collaborators, chosenVersion, plan.PreviousVersion, plan.PreviousTag)
}

func buildReadyShip(ctx context.Context, root string, cfg Config, opts Options, collaborators Collaborators, version, previousVersion, previousTag string) (*ReadyShip, error) {
	owner, repo, err := collaborators.Repo.OwnerRepo(ctx)
	if err != nil {
		return nil, &VersionResolutionError{Detail: err.Error()}
	}
	repoURL, _ := collaborators.Repo.RepoURL(ctx)
	branch, _ := collaborators.Repo.CurrentBranch(ctx)

	pctx := pipeline.New()
	pctx.Version = version
	pctx.PreviousVersion = previousVersion
	pctx.Tag = opts.tagPrefix() + version
	pctx.PreviousTag = previousTag
	pctx.Date = time.Now().UTC().Format("2006-01-02")
	pctx.Owner = owner
	pctx.Repo = repo
	pctx.RepoURL = repoURL
	pctx.Branch = branch
	pctx.Ecosystem = collaborators.Tools.Ecosystem
	pctx.DryRun = opts.DryRun
	pctx.Assets = append([]string{}, cfg.Assets...)

	return &ReadyShip{root: root, opts: opts, cfg: cfg, collaborators: collaborators, ctx: pctx}, nil
}

func defaultBranch(ctx context.Context, repo GitRepository) (string, error) {
	return repo.DefaultBranch(ctx)
}
