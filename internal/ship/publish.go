package ship

import (
	"context"
	"fmt"

	"github.com/driftship/driftship/internal/phase"
	"github.com/driftship/driftship/internal/pipeline"
)

// runTest implements the Test phase: runs the resolved test command unless
// no_test is set or no command is configured.
func runTest(ctx context.Context, root string, cfg Config, opts Options, tools DetectedTools) (phase.Outcome, error) {
	if opts.NoTest {
		return phase.Skip("--no-test"), nil
	}

	cmd := cfg.TestCmd
	if cmd == "" {
		cmd = tools.TestCmd
	}
	if cmd == "" {
		return phase.Success("no test command configured"), nil
	}

	if opts.DryRun {
		return phase.Success(fmt.Sprintf("Would run test command: %s", cmd)), nil
	}

	_, stderr, err := runShellCommand(ctx, root, cmd)
	if err != nil {
		return phase.Outcome{}, &PhaseFailedError{Phase: phase.Test, Message: "test command failed: " + stderr, Cause: err}
	}
	return phase.Success("tests passed"), nil
}

// runPublish implements the Publish phase: builds (if a build command is
// configured) then publishes, unless no_publish is set.
func runPublish(ctx context.Context, root string, cfg Config, opts Options, tools DetectedTools, pctx *pipeline.Context) (phase.Outcome, error) {
	if opts.NoPublish {
		return phase.Skip("--no-publish"), nil
	}

	buildCmd := cfg.BuildCmd
	if buildCmd == "" {
		buildCmd = tools.BuildCmd
	}
	publishCmd := cfg.PublishCmd
	if publishCmd == "" {
		publishCmd = tools.PublishCmd
	}

	if opts.DryRun {
		msg := fmt.Sprintf("Would publish %s", pctx.ResolvedTag())
		if publishCmd != "" {
			msg += ": " + publishCmd
		}
		return phase.Success(msg), nil
	}

	if buildCmd != "" {
		if _, stderr, err := runShellCommand(ctx, root, buildCmd); err != nil {
			return phase.Outcome{}, &PhaseFailedError{Phase: phase.Publish, Message: "build command failed: " + stderr, Cause: err}
		}
	}
	if publishCmd != "" {
		if _, stderr, err := runShellCommand(ctx, root, publishCmd); err != nil {
			return phase.Outcome{}, &PhaseFailedError{Phase: phase.Publish, Message: "publish command failed: " + stderr, Cause: err}
		}
	}

	return phase.Success("published"), nil
}
