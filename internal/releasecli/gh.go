// Package releasecli implements ship.ReleaseCLI against the gh binary: a
// create/edit/asset-reconciliation flow driven entirely through gh release
// subcommands rather than a direct GitHub API client.
package releasecli

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/driftship/driftship/internal/ship"
)

// GH shells out to the gh CLI's "release" subcommands.
type GH struct {
	// Bin is the binary name or path. Defaults to "gh".
	Bin string
}

var _ ship.ReleaseCLI = GH{}

func (g GH) bin() string {
	if g.Bin != "" {
		return g.Bin
	}
	return "gh"
}

// Exists probes "gh release view {tag}" with discarded output; exit status
// is the sole source of truth.
func (g GH) Exists(ctx context.Context, projectRoot, tag string) (bool, error) {
	cmd := exec.CommandContext(ctx, g.bin(), "release", "view", tag)
	cmd.Dir = projectRoot
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	if _, ok := err.(*exec.ExitError); ok {
		return false, nil
	}
	return false, &ship.ExternalProcessError{Program: g.bin(), Cause: err}
}

// Create runs "gh release create", uploading assets in the same call.
func (g GH) Create(ctx context.Context, projectRoot string, args ship.CreateArgs) (string, error) {
	cli := []string{"release", "create", args.Tag}
	if args.Title != "" {
		cli = append(cli, "--title", args.Title)
	}
	if args.Draft {
		cli = append(cli, "--draft")
	}
	if args.NotesFile != "" {
		cli = append(cli, "--notes-file", args.NotesFile)
	} else if args.GenerateNotes {
		cli = append(cli, "--generate-notes")
	}
	if args.DiscussionCategory != "" {
		cli = append(cli, "--discussion-category", args.DiscussionCategory)
	}
	cli = append(cli, args.Assets...)
	return g.run(ctx, projectRoot, cli...)
}

// Edit runs "gh release edit". Draft is always sent explicitly: --draft to
// keep/mark as draft, --draft=false to publish. The absence of --draft on
// edit does not publish.
func (g GH) Edit(ctx context.Context, projectRoot string, args ship.EditArgs) (string, error) {
	cli := []string{"release", "edit", args.Tag}
	if args.Title != "" {
		cli = append(cli, "--title", args.Title)
	}
	if args.Draft {
		cli = append(cli, "--draft")
	} else {
		cli = append(cli, "--draft=false")
	}
	if args.NotesFile != "" {
		cli = append(cli, "--notes-file", args.NotesFile)
	}
	return g.run(ctx, projectRoot, cli...)
}

// DeleteAsset removes an existing release asset with the given basename,
// ignoring failure since it may simply not exist yet.
func (g GH) DeleteAsset(ctx context.Context, projectRoot, tag, basename string) error {
	cmd := exec.CommandContext(ctx, g.bin(), "release", "delete-asset", tag, basename, "--yes")
	cmd.Dir = projectRoot
	_ = cmd.Run()
	return nil
}

// UploadAsset uploads a single asset to an existing release, clobbering any
// asset already present under the same name.
func (g GH) UploadAsset(ctx context.Context, projectRoot, tag, assetPath string) error {
	_, err := g.run(ctx, projectRoot, "release", "upload", tag, assetPath, "--clobber")
	return err
}

// run executes a gh subcommand, returning trimmed standard output on
// success (the release URL) and the captured standard error on failure.
func (g GH) run(ctx context.Context, projectRoot string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, g.bin(), args...)
	cmd.Dir = projectRoot
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &ship.ExternalProcessError{Program: g.bin() + " " + strings.Join(args, " "), Cause: fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))}
	}
	return strings.TrimSpace(stdout.String()), nil
}
