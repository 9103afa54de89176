package ship

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/driftship/driftship/internal/hook"
	"github.com/driftship/driftship/internal/phase"
	"github.com/driftship/driftship/internal/pipeline"
)

// resolveDraft implements spec.md §4.6's draft precedence: CLI override >
// configuration value > default true.
func resolveDraft(cfg Config, opts Options) bool {
	if opts.DraftOverride != nil {
		return *opts.DraftOverride
	}
	if cfg.Draft != nil {
		return *cfg.Draft
	}
	return true
}

// runRelease implements the release driver, spec.md §4.6, the sharpest
// edge of the orchestrator: existence probe first, then either the create
// or the edit-and-reconcile-assets path, never create-and-fallback.
func runRelease(ctx context.Context, root string, c Collaborators, cfg Config, opts Options, pctx *pipeline.Context) (phase.Outcome, error) {
	if opts.NoRelease {
		return phase.Skip("--no-release"), nil
	}
	if !cfg.githubReleaseEnabled() {
		return phase.Skip("release.github_release=false"), nil
	}

	tag := pctx.ResolvedTag()
	draft := resolveDraft(cfg, opts)
	title := cfg.Title
	if title == "" {
		title = tag
	}
	title = hook.Interpolate(title, pctx.HookContext())

	if opts.DryRun {
		return phase.Success(fmt.Sprintf("Would create/update release %s (draft=%v, title=%q, %d asset(s))", tag, draft, title, len(pctx.Assets))), nil
	}

	exists, err := c.Release.Exists(ctx, root, tag)
	if err != nil {
		return phase.Outcome{}, &PhaseFailedError{Phase: phase.Release, Message: "probing release existence", Cause: err}
	}

	notesFile, generateNotes, cleanup := resolveNotes(c, cfg, opts, pctx)
	if cleanup != nil {
		defer cleanup()
	}

	var url string
	if exists {
		url, err = c.Release.Edit(ctx, root, EditArgs{Tag: tag, Title: title, Draft: draft, NotesFile: notesFile})
		if err != nil {
			return phase.Outcome{}, &PhaseFailedError{Phase: phase.Release, Message: "editing release", Cause: err}
		}
		for _, asset := range pctx.Assets {
			base := filepath.Base(asset)
			_ = c.Release.DeleteAsset(ctx, root, tag, base)
			if err := c.Release.UploadAsset(ctx, root, tag, asset); err != nil {
				return phase.Outcome{}, &PhaseFailedError{Phase: phase.Release, Message: "uploading asset " + asset, Cause: err}
			}
		}
	} else {
		url, err = c.Release.Create(ctx, root, CreateArgs{
			Tag:                tag,
			Title:              title,
			Draft:              draft,
			NotesFile:          notesFile,
			GenerateNotes:      generateNotes,
			DiscussionCategory: cfg.DiscussionCategory,
			Assets:             pctx.Assets,
		})
		if err != nil {
			return phase.Outcome{}, &PhaseFailedError{Phase: phase.Release, Message: "creating release", Cause: err}
		}
	}

	pctx.ReleaseURL = strings.TrimSpace(url)

	verb := "created"
	if exists {
		verb = "updated"
	}
	return phase.Success(fmt.Sprintf("release %s %s: %s", tag, verb, pctx.ReleaseURL)), nil
}

// resolveNotes renders release notes unless no_notes is set, falling back to
// the release CLI's own auto-generation when no notes collaborator is wired
// or rendering fails.
func resolveNotes(c Collaborators, cfg Config, opts Options, pctx *pipeline.Context) (notesFile string, generateNotes bool, cleanup func()) {
	if opts.NoNotes || c.Notes == nil {
		return "", true, nil
	}
	path, cleanupFn, err := c.Notes.Render(pctx, cfg.NotesTemplate)
	if err != nil || path == "" {
		return "", true, nil
	}
	return path, false, cleanupFn
}
