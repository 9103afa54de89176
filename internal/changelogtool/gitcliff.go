// Package changelogtool implements ship.ChangelogTool against git-cliff,
// grounded on the CliffService subprocess pattern in the retrieval pack's
// compozy-releasepr dry-run orchestrator (internal/orchestrator/dry_run.go)
// and the teacher's internal/service/release commit analyzer for the
// conventional-commits marker check.
package changelogtool

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/driftship/driftship/internal/ship"
)

// defaultMarker is the config file git-cliff reads; its presence selects
// the conventional-commits version resolution strategy per spec.md §4.1
// step 2.
const defaultMarker = "cliff.toml"

// GitCliff shells out to the git-cliff binary.
type GitCliff struct {
	// Bin is the binary name or path. Defaults to "git-cliff".
	Bin string
	// Marker overrides the config-file name probed by HasMarker.
	Marker string
}

var _ ship.ChangelogTool = GitCliff{}

func (g GitCliff) bin() string {
	if g.Bin != "" {
		return g.Bin
	}
	return "git-cliff"
}

func (g GitCliff) marker() string {
	if g.Marker != "" {
		return g.Marker
	}
	return defaultMarker
}

// HasMarker reports whether projectRoot carries a cliff.toml (or
// configured equivalent).
func (g GitCliff) HasMarker(projectRoot string) bool {
	_, err := os.Stat(filepath.Join(projectRoot, g.marker()))
	return err == nil
}

// NextVersion asks git-cliff to compute the next version from commit
// history without writing anything, via --bumped-version.
func (g GitCliff) NextVersion(ctx context.Context, projectRoot string) (string, error) {
	out, err := g.run(ctx, projectRoot, "--bumped-version")
	if err != nil {
		return "", err
	}
	version := strings.TrimSpace(out)
	if version == "" {
		return "", fmt.Errorf("git-cliff returned no version")
	}
	return version, nil
}

// Render writes CHANGELOG.md for tag and returns its path.
func (g GitCliff) Render(ctx context.Context, projectRoot, tag string) (string, error) {
	path := filepath.Join(projectRoot, "CHANGELOG.md")
	if _, err := g.run(ctx, projectRoot, "--tag", tag, "-o", path); err != nil {
		return "", err
	}
	return path, nil
}

func (g GitCliff) run(ctx context.Context, projectRoot string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, g.bin(), args...)
	cmd.Dir = projectRoot
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &ship.ExternalProcessError{Program: g.bin(), Cause: fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))}
	}
	return stdout.String(), nil
}
