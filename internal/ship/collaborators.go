package ship

import (
	"context"

	"github.com/driftship/driftship/internal/pipeline"
)

// CommitSummary is a single commit as surfaced to the version resolver and
// the interactive chooser.
type CommitSummary struct {
	Hash    string
	Message string
	Author  string
}

// GitRepository is the narrow collaborator the planner and phase runner use
// for every git read and write, segregated by concern (repository info,
// commits, tags, remote operations). internal/gitops provides the real
// implementation.
type GitRepository interface {
	IsRepo(ctx context.Context, root string) (bool, error)
	IsClean(ctx context.Context) (bool, error)
	CurrentBranch(ctx context.Context) (string, error)
	DefaultBranch(ctx context.Context) (string, error)
	InSync(ctx context.Context, branch string) (bool, error)
	OwnerRepo(ctx context.Context) (owner, repo string, err error)
	RepoURL(ctx context.Context) (string, error)

	LatestVersionTag(ctx context.Context, prefix string) (tag string, found bool, err error)
	CommitsSince(ctx context.Context, ref string) ([]CommitSummary, error)

	CommitAll(ctx context.Context, message string) (hash string, err error)
	CreateTag(ctx context.Context, name, message string) error
	Push(ctx context.Context, branch string) error
	PushTag(ctx context.Context, name string) error

	LockfileDiff(ctx context.Context, path, fromRef, toRef string) (string, error)
	ShortStat(ctx context.Context, fromRef, toRef string) (insertions, deletions, filesChanged int, err error)
	CommitCount(ctx context.Context, fromRef, toRef string) (int, error)
	Shortlog(ctx context.Context, fromRef, toRef string) ([]pipeline.Contributor, error)
}

// ChangelogTool is the narrow interface to the configured changelog
// generator (git-cliff or equivalent).
type ChangelogTool interface {
	// HasMarker reports whether projectRoot carries the tool's config marker
	// (e.g. cliff.toml), selecting the conventional-commits version
	// resolution strategy.
	HasMarker(projectRoot string) bool
	// NextVersion computes the next version from commit history.
	NextVersion(ctx context.Context, projectRoot string) (string, error)
	// Render writes CHANGELOG.md for the given tag and returns its path.
	Render(ctx context.Context, projectRoot, tag string) (changelogPath string, err error)
}

// CreateArgs parameterizes the release CLI's create path.
type CreateArgs struct {
	Tag                string
	Title              string
	Draft              bool
	NotesFile          string
	GenerateNotes      bool
	DiscussionCategory string
	Assets             []string
}

// EditArgs parameterizes the release CLI's edit path. Draft is always sent
// explicitly (--draft or --draft=false); edit never omits it, since the
// absence of --draft on edit does not publish.
type EditArgs struct {
	Tag       string
	Title     string
	Draft     bool
	NotesFile string
}

// ReleaseCLI is the narrow interface to the release CLI (gh or equivalent),
// driven as a subprocess rather than a direct API client.
type ReleaseCLI interface {
	Exists(ctx context.Context, projectRoot, tag string) (bool, error)
	Create(ctx context.Context, projectRoot string, args CreateArgs) (url string, err error)
	Edit(ctx context.Context, projectRoot string, args EditArgs) (url string, err error)
	DeleteAsset(ctx context.Context, projectRoot, tag, basename string) error
	UploadAsset(ctx context.Context, projectRoot, tag, assetPath string) error
}

// DepsDiffer asks a lockfile-diff collaborator for dependency changes
// between two refs. Any failure is logged by the caller and treated as an
// empty result — deps collection is never fatal.
type DepsDiffer interface {
	Diff(ctx context.Context, projectRoot, ecosystem, fromRef, toRef string) ([]pipeline.DepChange, error)
}

// StatsCollector asks a git collaborator for release statistics between two
// refs. Any failure leaves ctx.Stats unset.
type StatsCollector interface {
	Collect(ctx context.Context, projectRoot, fromRef, toRef string) (*pipeline.ReleaseStats, error)
}

// NotesRenderer renders a release-notes body to a temporary file, returning
// its path and a cleanup function the caller must invoke after the release
// CLI has consumed it.
type NotesRenderer interface {
	Render(pctx *pipeline.Context, templatePath string) (notesFilePath string, cleanup func(), err error)
}

// VersionWriter updates the ecosystem's on-disk version file(s) to the
// resolved version, returning every path it modified relative to
// projectRoot. Ecosystem detection itself is out of scope for this
// interface.
type VersionWriter interface {
	WriteVersion(ctx context.Context, projectRoot, ecosystem, version string) (modifiedFiles []string, err error)
}
