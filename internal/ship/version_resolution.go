package ship

import (
	"context"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CandidateVersions is the patch/minor/major bump candidates offered to an
// interactive chooser when no conventional-commits marker is present.
type CandidateVersions struct {
	Patch string
	Minor string
	Major string
}

// resolvedVersion is the outcome of version resolution: either a version is
// already known (Ready) or a chooser must pick one from Candidates
// (NeedsInteraction).
type resolvedVersion struct {
	Version          string
	PreviousVersion  string
	PreviousTag      string
	NeedsInteraction bool
	Candidates       CandidateVersions
	RecentCommits    []CommitSummary
}

// resolveVersion implements spec.md §4.1 step 2's three strategies.
func resolveVersion(ctx context.Context, repo GitRepository, changelog ChangelogTool, root string, opts Options, cfg Config) (resolvedVersion, error) {
	prevTag, found, err := repo.LatestVersionTag(ctx, opts.tagPrefix())
	if err != nil {
		return resolvedVersion{}, &VersionResolutionError{Detail: err.Error()}
	}
	prevVersion := "0.0.0"
	if found {
		prevVersion = strings.TrimPrefix(prevTag, opts.tagPrefix())
	}

	if opts.ExplicitVersion != "" {
		v := strings.TrimPrefix(opts.ExplicitVersion, "v")
		if _, err := semver.NewVersion(v); err != nil {
			return resolvedVersion{}, &VersionResolutionError{Detail: "explicit version is not valid semver: " + err.Error()}
		}
		return resolvedVersion{Version: v, PreviousVersion: prevVersion, PreviousTag: prevTag}, nil
	}

	strategy := cfg.VersionStrategy
	if strategy == "" {
		if changelog.HasMarker(root) {
			strategy = "conventional-commits"
		} else {
			strategy = "interactive"
		}
	}

	switch strategy {
	case "conventional-commits":
		next, err := changelog.NextVersion(ctx, root)
		if err != nil {
			return resolvedVersion{}, &VersionResolutionError{Detail: err.Error()}
		}
		return resolvedVersion{Version: strings.TrimPrefix(next, "v"), PreviousVersion: prevVersion, PreviousTag: prevTag}, nil

	case "interactive":
		base, err := semver.NewVersion(prevVersion)
		if err != nil {
			return resolvedVersion{}, &VersionResolutionError{Detail: err.Error()}
		}
		commits, err := commitsSinceRef(ctx, repo, prevTag)
		if err != nil {
			return resolvedVersion{}, &VersionResolutionError{Detail: err.Error()}
		}
		patch := base.IncPatch()
		minor := base.IncMinor()
		major := base.IncMajor()
		return resolvedVersion{
			PreviousVersion:  prevVersion,
			PreviousTag:      prevTag,
			NeedsInteraction: true,
			Candidates: CandidateVersions{
				Patch: patch.String(),
				Minor: minor.String(),
				Major: major.String(),
			},
			RecentCommits: commits,
		}, nil

	default:
		return resolvedVersion{}, &VersionResolutionError{Detail: "unknown version strategy: " + strategy}
	}
}

func commitsSinceRef(ctx context.Context, repo GitRepository, ref string) ([]CommitSummary, error) {
	if ref == "" {
		return repo.CommitsSince(ctx, "")
	}
	return repo.CommitsSince(ctx, ref)
}
