package ship

import (
	"context"
	"fmt"

	"github.com/driftship/driftship/internal/phase"
	"github.com/driftship/driftship/internal/pipeline"
)

// runBump writes the version-file and changelog updates for the resolved
// version. Bump has no skip flag of its own; only no_changelog narrows what
// it does.
func runBump(ctx context.Context, root string, c Collaborators, opts Options, pctx *pipeline.Context) (phase.Outcome, error) {
	if opts.DryRun {
		msg := fmt.Sprintf("Would bump version file(s) to %s", pctx.Version)
		if !opts.NoChangelog {
			msg += " and update CHANGELOG.md"
		}
		return phase.Success(msg), nil
	}

	modified, err := c.Versions.WriteVersion(ctx, root, pctx.Ecosystem, pctx.Version)
	if err != nil {
		return phase.Outcome{}, &PhaseFailedError{Phase: phase.Bump, Message: "writing version files", Cause: err}
	}
	pctx.ModifiedFiles = append(pctx.ModifiedFiles, modified...)

	if !opts.NoChangelog {
		changelogPath, err := c.Changelog.Render(ctx, root, pctx.ResolvedTag())
		if err != nil {
			return phase.Outcome{}, &PhaseFailedError{Phase: phase.Bump, Message: "rendering changelog", Cause: err}
		}
		pctx.ChangelogUpdated = true
		pctx.ChangelogPath = changelogPath
		pctx.ModifiedFiles = append(pctx.ModifiedFiles, changelogPath)
	}

	return phase.Success(fmt.Sprintf("bumped version to %s (%d file(s) modified)", pctx.Version, len(pctx.ModifiedFiles))), nil
}
