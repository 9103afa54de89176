package ship

import (
	"context"
	"fmt"

	"github.com/driftship/driftship/internal/hook"
	"github.com/driftship/driftship/internal/phase"
)

// Execute runs the linear phase sequence, emitting PhaseStarted/
// PhaseCompleted and HooksStarted/HooksCompleted events on onEvent as it
// goes. It is unattended and deterministic: every decision was already
// made by PlanShip or ResolveShipInteraction. Any phase or hook failure
// aborts immediately; already-recorded phases stay in the returned Outcome.
func (r *ReadyShip) Execute(ctx context.Context, onEvent func(phase.Event)) (*Outcome, error) {
	emitter := phase.NewEmitter(onEvent)
	engine := hook.New(r.root)
	pctx := r.ctx

	runState, err := NewRunState()
	if err != nil {
		runState = nil
	}

	var records []PhaseRecord
	hookCount := 0

	buildOutcome := func() *Outcome {
		state := ""
		if runState != nil {
			state = string(runState.Current())
		}
		return &Outcome{
			Version:         pctx.Version,
			PreviousVersion: pctx.PreviousVersion,
			Tag:             pctx.ResolvedTag(),
			Phases:          records,
			HookCount:       hookCount,
			DryRun:          r.opts.DryRun,
			Context:         pctx,
			RunState:        state,
		}
	}

	fail := func(cause error) (*Outcome, error) {
		if runState != nil {
			runState.Advance(EventFailed)
		}
		return buildOutcome(), cause
	}

	runHooks := func(point phase.HookPoint) error {
		if r.opts.DryRun {
			return nil
		}
		cmds := r.cfg.HookCommands(point)
		if len(cmds) == 0 {
			return nil
		}
		emitter.HooksStarted(point, len(cmds))
		_, err := engine.Run(ctx, cmds, pctx)
		hookCount += len(cmds)
		emitter.HooksCompleted(point, len(cmds))
		return err
	}

	// runPhase fires pre/post hooks around run, unless gated (the phase's
	// own skip flag also suppresses its bracketing hooks).
	runPhase := func(ph phase.Phase, pre, post phase.HookPoint, gated bool, run func() (phase.Outcome, error)) error {
		emitter.PhaseStarted(ph)
		if !gated {
			if err := runHooks(pre); err != nil {
				return err
			}
		}
		outcome, err := run()
		if err != nil {
			return err
		}
		records = append(records, PhaseRecord{Phase: ph, Outcome: outcome})
		emitter.PhaseCompleted(ph, outcome)
		if !gated {
			if err := runHooks(post); err != nil {
				return err
			}
		}
		return nil
	}

	// Preflight and Version were already resolved during planning; execute
	// reports them as already-succeeded phases with no hooks of their own.
	emitter.PhaseStarted(phase.Preflight)
	preflightOutcome := phase.Success("preflight checks passed")
	records = append(records, PhaseRecord{Phase: phase.Preflight, Outcome: preflightOutcome})
	emitter.PhaseCompleted(phase.Preflight, preflightOutcome)

	emitter.PhaseStarted(phase.Version)
	versionOutcome := phase.Success(fmt.Sprintf("resolved version %s", pctx.Version))
	records = append(records, PhaseRecord{Phase: phase.Version, Outcome: versionOutcome})
	emitter.PhaseCompleted(phase.Version, versionOutcome)

	collectDeps(ctx, r.root, r.collaborators.Deps, r.opts, pctx)
	collectStats(ctx, r.root, r.collaborators.Stats, r.opts, pctx)

	if err := runHooks(phase.PreShip); err != nil {
		return fail(err)
	}

	if err := runPhase(phase.Test, phase.PreTest, phase.PostTest, false, func() (phase.Outcome, error) {
		return runTest(ctx, r.root, r.cfg, r.opts, r.collaborators.Tools)
	}); err != nil {
		return fail(err)
	}
	if runState != nil {
		runState.Advance(EventTested)
	}

	if err := runPhase(phase.Bump, phase.PreBump, phase.PostBump, false, func() (phase.Outcome, error) {
		return runBump(ctx, r.root, r.collaborators, r.opts, pctx)
	}); err != nil {
		return fail(err)
	}
	if runState != nil {
		runState.Advance(EventBumped)
	}

	if err := runPhase(phase.Publish, phase.PrePublish, phase.PostPublish, r.opts.NoPublish, func() (phase.Outcome, error) {
		return runPublish(ctx, r.root, r.cfg, r.opts, r.collaborators.Tools, pctx)
	}); err != nil {
		return fail(err)
	}
	if runState != nil && !r.opts.NoPublish {
		runState.Advance(EventPublished)
	}

	if err := runPhase(phase.Git, phase.PreTag, phase.PostTag, r.opts.NoGit, func() (phase.Outcome, error) {
		return runGit(ctx, r.root, r.collaborators, r.opts, pctx)
	}); err != nil {
		return fail(err)
	}
	if runState != nil && !r.opts.NoGit {
		runState.Advance(EventTagged)
	}

	if err := runPhase(phase.Release, phase.PreRelease, phase.PostRelease, r.opts.NoRelease, func() (phase.Outcome, error) {
		return runRelease(ctx, r.root, r.collaborators, r.cfg, r.opts, pctx)
	}); err != nil {
		return fail(err)
	}
	if runState != nil && !r.opts.NoRelease {
		runState.Advance(EventReleased)
	}

	if err := runHooks(phase.PostShip); err != nil {
		return fail(err)
	}

	return buildOutcome(), nil
}
