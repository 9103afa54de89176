package ship

import (
	"context"
	"fmt"

	"github.com/driftship/driftship/internal/pipeline"
)

// fakeGitRepository is an in-memory GitRepository good enough to drive the
// planner and phase runner without touching a real repository.
type fakeGitRepository struct {
	repo          bool
	clean         bool
	branch        string
	defaultBranch string
	inSync        bool
	owner, name   string
	repoURL       string
	latestTag     string
	tagFound      bool
	commits       []CommitSummary

	commitHash  string
	committed   []string
	tagsCreated []string
	pushed      []string
	tagsPushed  []string

	commitErr error
}

func (f *fakeGitRepository) IsRepo(context.Context, string) (bool, error)       { return f.repo, nil }
func (f *fakeGitRepository) IsClean(context.Context) (bool, error)             { return f.clean, nil }
func (f *fakeGitRepository) CurrentBranch(context.Context) (string, error)     { return f.branch, nil }
func (f *fakeGitRepository) DefaultBranch(context.Context) (string, error)     { return f.defaultBranch, nil }
func (f *fakeGitRepository) InSync(context.Context, string) (bool, error)      { return f.inSync, nil }
func (f *fakeGitRepository) OwnerRepo(context.Context) (string, string, error) { return f.owner, f.name, nil }
func (f *fakeGitRepository) RepoURL(context.Context) (string, error)          { return f.repoURL, nil }

func (f *fakeGitRepository) LatestVersionTag(context.Context, string) (string, bool, error) {
	return f.latestTag, f.tagFound, nil
}

func (f *fakeGitRepository) CommitsSince(context.Context, string) ([]CommitSummary, error) {
	return f.commits, nil
}

func (f *fakeGitRepository) CommitAll(_ context.Context, message string) (string, error) {
	if f.commitErr != nil {
		return "", f.commitErr
	}
	f.committed = append(f.committed, message)
	if f.commitHash == "" {
		f.commitHash = "deadbeef"
	}
	return f.commitHash, nil
}

func (f *fakeGitRepository) CreateTag(_ context.Context, name, _ string) error {
	f.tagsCreated = append(f.tagsCreated, name)
	return nil
}

func (f *fakeGitRepository) Push(_ context.Context, branch string) error {
	f.pushed = append(f.pushed, branch)
	return nil
}

func (f *fakeGitRepository) PushTag(_ context.Context, name string) error {
	f.tagsPushed = append(f.tagsPushed, name)
	return nil
}

func (f *fakeGitRepository) LockfileDiff(context.Context, string, string, string) (string, error) {
	return "", nil
}

func (f *fakeGitRepository) ShortStat(context.Context, string, string) (int, int, int, error) {
	return 0, 0, 0, nil
}

func (f *fakeGitRepository) CommitCount(context.Context, string, string) (int, error) {
	return 0, nil
}

func (f *fakeGitRepository) Shortlog(context.Context, string, string) ([]pipeline.Contributor, error) {
	return nil, nil
}

// fakeChangelogTool is a configurable ChangelogTool.
type fakeChangelogTool struct {
	hasMarker   bool
	nextVersion string
	renderPath  string
	renderErr   error
	rendered    []string
}

func (f *fakeChangelogTool) HasMarker(string) bool { return f.hasMarker }

func (f *fakeChangelogTool) NextVersion(context.Context, string) (string, error) {
	return f.nextVersion, nil
}

func (f *fakeChangelogTool) Render(_ context.Context, _ string, tag string) (string, error) {
	if f.renderErr != nil {
		return "", f.renderErr
	}
	f.rendered = append(f.rendered, tag)
	if f.renderPath == "" {
		return "CHANGELOG.md", nil
	}
	return f.renderPath, nil
}

// fakeReleaseCLI simulates the release CLI's idempotent existence probe and
// create/edit paths.
type fakeReleaseCLI struct {
	existingTags map[string]bool

	createArgs []CreateArgs
	editArgs   []EditArgs
	deleted    []string
	uploaded   []string

	createURL string
	editURL   string
}

func newFakeReleaseCLI() *fakeReleaseCLI {
	return &fakeReleaseCLI{existingTags: map[string]bool{}}
}

func (f *fakeReleaseCLI) Exists(_ context.Context, _ string, tag string) (bool, error) {
	return f.existingTags[tag], nil
}

func (f *fakeReleaseCLI) Create(_ context.Context, _ string, args CreateArgs) (string, error) {
	f.createArgs = append(f.createArgs, args)
	f.existingTags[args.Tag] = true
	url := f.createURL
	if url == "" {
		url = fmt.Sprintf("https://example.invalid/releases/%s", args.Tag)
	}
	return url, nil
}

func (f *fakeReleaseCLI) Edit(_ context.Context, _ string, args EditArgs) (string, error) {
	f.editArgs = append(f.editArgs, args)
	url := f.editURL
	if url == "" {
		url = fmt.Sprintf("https://example.invalid/releases/%s", args.Tag)
	}
	return url, nil
}

func (f *fakeReleaseCLI) DeleteAsset(_ context.Context, _ string, _ string, basename string) error {
	f.deleted = append(f.deleted, basename)
	return nil
}

func (f *fakeReleaseCLI) UploadAsset(_ context.Context, _ string, _ string, assetPath string) error {
	f.uploaded = append(f.uploaded, assetPath)
	return nil
}

// fakeVersionWriter records the version it was asked to write.
type fakeVersionWriter struct {
	modifiedFiles []string
	lastVersion   string
}

func (f *fakeVersionWriter) WriteVersion(_ context.Context, _ string, _ string, version string) ([]string, error) {
	f.lastVersion = version
	if f.modifiedFiles == nil {
		return []string{"version.txt"}, nil
	}
	return f.modifiedFiles, nil
}

// fakeDepsDiffer returns a canned dependency change list.
type fakeDepsDiffer struct {
	changes []pipeline.DepChange
	err     error
}

func (f *fakeDepsDiffer) Diff(context.Context, string, string, string, string) ([]pipeline.DepChange, error) {
	return f.changes, f.err
}

// fakeStatsCollector returns canned stats.
type fakeStatsCollector struct {
	stats *pipeline.ReleaseStats
	err   error
}

func (f *fakeStatsCollector) Collect(context.Context, string, string, string) (*pipeline.ReleaseStats, error) {
	return f.stats, f.err
}

// fakeNotesRenderer renders to a fixed path with a no-op cleanup.
type fakeNotesRenderer struct {
	path string
	err  error
}

func (f *fakeNotesRenderer) Render(*pipeline.Context, string) (string, func(), error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.path, func() {}, nil
}

// baseCollaborators returns a working set of fakes wired together, ready
// for a clean dry-run or real-run planning call.
func baseCollaborators() (Collaborators, *fakeGitRepository, *fakeReleaseCLI, *fakeVersionWriter, *fakeChangelogTool) {
	repo := &fakeGitRepository{
		repo: true, clean: true, branch: "main", defaultBranch: "main", inSync: true,
		owner: "acme", name: "widget", latestTag: "v0.1.0", tagFound: true,
	}
	release := newFakeReleaseCLI()
	versions := &fakeVersionWriter{}
	changelog := &fakeChangelogTool{hasMarker: true, nextVersion: "v0.2.0"}

	collaborators := Collaborators{
		Repo:      repo,
		Changelog: changelog,
		Release:   release,
		Deps:      &fakeDepsDiffer{},
		Stats:     &fakeStatsCollector{},
		Notes:     &fakeNotesRenderer{path: "notes.md"},
		Versions:  versions,
		Tools:     DetectedTools{Ecosystem: "go", TestCmd: "go test ./...", BuildCmd: "go build ./...", PublishCmd: ""},
	}
	return collaborators, repo, release, versions, changelog
}
