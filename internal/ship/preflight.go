package ship

import (
	"context"
	"fmt"
	"os/exec"
)

// runPreflight executes the six required checks, in order, halting on the
// first failure.
func runPreflight(ctx context.Context, repo GitRepository, root string, releaseBranch string, tools DetectedTools, opts Options) error {
	isRepo, err := repo.IsRepo(ctx, root)
	if err != nil {
		return &PreflightFailedError{Check: "repository", Detail: err.Error()}
	}
	if !isRepo {
		return &PreflightFailedError{Check: "repository", Detail: "project root is not a git repository"}
	}

	clean, err := repo.IsClean(ctx)
	if err != nil {
		return &PreflightFailedError{Check: "clean_tree", Detail: err.Error()}
	}
	if !clean {
		return &PreflightFailedError{Check: "clean_tree", Detail: "working tree has uncommitted changes"}
	}

	branch, err := repo.CurrentBranch(ctx)
	if err != nil {
		return &PreflightFailedError{Check: "branch", Detail: err.Error()}
	}
	if releaseBranch != "" && branch != releaseBranch {
		return &PreflightFailedError{
			Check:  "branch",
			Detail: fmt.Sprintf("current branch %q does not match release branch %q", branch, releaseBranch),
		}
	}

	inSync, err := repo.InSync(ctx, branch)
	if err != nil {
		return &PreflightFailedError{Check: "sync", Detail: err.Error()}
	}
	if !inSync {
		return &PreflightFailedError{Check: "sync", Detail: "local branch is not in sync with origin"}
	}

	if tools.Ecosystem == "" {
		return &PreflightFailedError{Check: "ecosystem", Detail: "no ecosystem detected"}
	}

	if err := checkRequiredTools(requiredTools(tools, opts)); err != nil {
		return err
	}

	return nil
}

// requiredTools lists the binaries the selected phases actually need,
// skipping phases the options disable.
func requiredTools(tools DetectedTools, opts Options) []string {
	required := []string{"git"}
	if !opts.NoTest && tools.TestCmd != "" {
		required = append(required, tools.RequiredPATH...)
	}
	if !opts.NoRelease {
		required = append(required, "gh")
	}
	return required
}

func checkRequiredTools(names []string) error {
	seen := map[string]bool{}
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if _, err := exec.LookPath(name); err != nil {
			return &PreflightFailedError{Check: "tools", Detail: fmt.Sprintf("required tool %q not found on PATH", name)}
		}
	}
	return nil
}
