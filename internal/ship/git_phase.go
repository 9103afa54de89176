package ship

import (
	"context"
	"fmt"

	"github.com/driftship/driftship/internal/phase"
	"github.com/driftship/driftship/internal/pipeline"
)

// runGit commits the bump, tags the release, and pushes, as three
// independently gated steps honoring the no_tag/no_push interactions.
func runGit(ctx context.Context, root string, c Collaborators, opts Options, pctx *pipeline.Context) (phase.Outcome, error) {
	if opts.NoGit {
		return phase.Skip("--no-git"), nil
	}

	if opts.DryRun {
		msg := fmt.Sprintf("Would commit \"chore: release %s\"", pctx.Version)
		if !opts.NoTag {
			msg += fmt.Sprintf(", tag %s", pctx.ResolvedTag())
		}
		if !opts.NoPush {
			msg += ", and push"
		}
		return phase.Success(msg), nil
	}

	commitMsg := fmt.Sprintf("chore: release %s", pctx.Version)
	hash, err := c.Repo.CommitAll(ctx, commitMsg)
	if err != nil {
		return phase.Outcome{}, &PhaseFailedError{Phase: phase.Git, Message: "committing release", Cause: err}
	}
	pctx.CommitHash = hash

	tagged := false
	if !opts.NoTag {
		tagMsg := fmt.Sprintf("Release %s", pctx.Version)
		if err := c.Repo.CreateTag(ctx, pctx.ResolvedTag(), tagMsg); err != nil {
			return phase.Outcome{}, &PhaseFailedError{Phase: phase.Git, Message: "creating tag", Cause: err}
		}
		tagged = true
	}

	if !opts.NoPush {
		if err := c.Repo.Push(ctx, pctx.Branch); err != nil {
			return phase.Outcome{}, &PhaseFailedError{Phase: phase.Git, Message: "pushing branch", Cause: err}
		}
		// Only the tag this run created is pushed; stray local tags are
		// never propagated (spec's open question, preserved as-is).
		if tagged {
			if err := c.Repo.PushTag(ctx, pctx.ResolvedTag()); err != nil {
				return phase.Outcome{}, &PhaseFailedError{Phase: phase.Git, Message: "pushing tag", Cause: err}
			}
		}
	}

	return phase.Success(fmt.Sprintf("committed %s", hash)), nil
}
