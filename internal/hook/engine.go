package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/driftship/driftship/internal/pipeline"
	"github.com/driftship/driftship/internal/security"
)

// Engine executes ordered hook command lists against a project root,
// honoring the none/sync:/filter: prefix model. Commands are shell strings
// (they may contain pipes and quoting, as with a filter: jq pipeline), so
// each is launched through "sh -c" rather than split into argv.
type Engine struct {
	ProjectRoot string
	// Shell is the interpreter used to run each command. Defaults to "sh"
	// when empty.
	Shell string
}

// New returns an Engine rooted at projectRoot.
func New(projectRoot string) *Engine {
	return &Engine{ProjectRoot: projectRoot}
}

func (e *Engine) shell() string {
	if e.Shell != "" {
		return e.Shell
	}
	return "sh"
}

// Run executes raw (un-prefix-parsed) hook command strings in order,
// mutating pctx in place as filter: hooks replace it, and returns the
// per-command results collected so far along with the first failure, if
// any. On failure, pending barriers and subsequent segments are not
// started; already-launched parallel peers in the failing batch are allowed
// to finish.
func (e *Engine) Run(ctx context.Context, raw []string, pctx *pipeline.Context) ([]Result, error) {
	commands := make([]Command, len(raw))
	for i, r := range raw {
		commands[i] = Parse(r)
	}
	segments := split(commands)

	var results []Result
	for _, seg := range segments {
		hc := pctx.HookContext()
		if seg.barrier {
			res, err := e.runBarrier(ctx, seg.commands[0], hc, pctx)
			results = append(results, res)
			if err != nil {
				return results, err
			}
			continue
		}

		batchResults, err := e.runBatch(ctx, seg.commands, hc)
		results = append(results, batchResults...)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (e *Engine) runBarrier(ctx context.Context, cmd Command, hc pipeline.HookContext, pctx *pipeline.Context) (Result, error) {
	interpolated := Interpolate(cmd.Raw, hc)
	if cmd.Prefix == PrefixFilter {
		return e.runFilter(ctx, interpolated, pctx)
	}
	return e.runPlain(ctx, interpolated)
}

func (e *Engine) runBatch(ctx context.Context, cmds []Command, hc pipeline.HookContext) ([]Result, error) {
	results := make([]Result, len(cmds))

	// A bare errgroup.Group (not WithContext) joins the goroutines and
	// captures the first error without deriving a cancelable context — a
	// peer's failure must not kill already-running batch members; they are
	// allowed to complete.
	var g errgroup.Group
	for i, cmd := range cmds {
		i, interpolated := i, Interpolate(cmd.Raw, hc)
		g.Go(func() error {
			res, _ := e.runPlain(ctx, interpolated)
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range results {
		if !res.Succeeded() {
			return results, &CommandFailedError{
				Command:  res.Command,
				ExitCode: res.ExitCode,
				Stderr:   res.Stderr,
			}
		}
	}
	return results, nil
}

func (e *Engine) runPlain(ctx context.Context, interpolated string) (Result, error) {
	start := time.Now()
	cmd := exec.CommandContext(ctx, e.shell(), "-c", interpolated)
	cmd.Dir = e.ProjectRoot

	var stdout, stderr bytes.Buffer
	cmd.Stdout = security.NewMaskedWriter(&stdout)
	cmd.Stderr = security.NewMaskedWriter(&stderr)

	err := cmd.Run()
	res := Result{
		Command:  interpolated,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
		ExitCode: exitCode(cmd, err),
	}
	return res, nil
}

func (e *Engine) runFilter(ctx context.Context, interpolated string, pctx *pipeline.Context) (Result, error) {
	payload, err := json.Marshal(pctx)
	if err != nil {
		return Result{Command: interpolated}, &JSONInvalidError{Command: interpolated, Detail: err.Error()}
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, e.shell(), "-c", interpolated)
	cmd.Dir = e.ProjectRoot
	cmd.Stdin = bytes.NewReader(payload)

	// Unlike runPlain, stdout here must stay unmasked: it is the JSON
	// document that replaces pctx, not just human-facing log output.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = security.NewMaskedWriter(&stderr)

	runErr := cmd.Run()
	res := Result{
		Command:  interpolated,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
		ExitCode: exitCode(cmd, runErr),
	}
	if !res.Succeeded() {
		return res, &CommandFailedError{Command: interpolated, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}

	var replacement pipeline.Context
	if err := json.Unmarshal(stdout.Bytes(), &replacement); err != nil {
		return res, &JSONInvalidError{Command: interpolated, Detail: err.Error()}
	}
	if err := replacement.Validate(); err != nil {
		return res, &JSONInvalidError{Command: interpolated, Detail: err.Error()}
	}

	*pctx = replacement
	return res, nil
}

func exitCode(cmd *exec.Cmd, err error) int {
	if err == nil {
		return 0
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return -1
}
