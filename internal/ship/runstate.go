package ship

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// RunContext is the context carried through the run-state machine.
type RunContext struct {
	Failed bool
}

// Run-state event names.
const (
	EventTested    statekit.EventType = "TESTED"
	EventBumped    statekit.EventType = "BUMPED"
	EventPublished statekit.EventType = "PUBLISHED"
	EventTagged    statekit.EventType = "TAGGED"
	EventReleased  statekit.EventType = "RELEASED"
	EventFailed    statekit.EventType = "FAILED"
)

// Run-state IDs for the coarse lifecycle a ship run moves through:
// Planned -> Tested -> Bumped -> Published -> Tagged -> Released, with a
// Failed terminal reachable from any non-terminal state.
const (
	StateIDPlanned   statekit.StateID = "planned"
	StateIDTested    statekit.StateID = "tested"
	StateIDBumped    statekit.StateID = "bumped"
	StateIDPublished statekit.StateID = "published"
	StateIDTagged    statekit.StateID = "tagged"
	StateIDReleased  statekit.StateID = "released"
	StateIDFailed    statekit.StateID = "failed"
)

// RunState tracks a ship run's coarse lifecycle for event/outcome
// reporting. It is purely observational: it never gates phase execution —
// that's driven entirely by Options. There is no rollback or retry
// supervision.
type RunState struct {
	interpreter *statekit.Interpreter[RunContext]
}

// NewRunState builds and starts a fresh run-state machine.
func NewRunState() (*RunState, error) {
	machine, err := statekit.NewMachine[RunContext]("ship-run").
		WithInitial(StateIDPlanned).
		State(StateIDPlanned).
		On(EventTested).Target(StateIDTested).
		On(EventBumped).Target(StateIDBumped).
		On(EventFailed).Target(StateIDFailed).
		Done().
		State(StateIDTested).
		On(EventBumped).Target(StateIDBumped).
		On(EventFailed).Target(StateIDFailed).
		Done().
		State(StateIDBumped).
		On(EventPublished).Target(StateIDPublished).
		On(EventTagged).Target(StateIDTagged).
		On(EventFailed).Target(StateIDFailed).
		Done().
		State(StateIDPublished).
		On(EventTagged).Target(StateIDTagged).
		On(EventFailed).Target(StateIDFailed).
		Done().
		State(StateIDTagged).
		On(EventReleased).Target(StateIDReleased).
		On(EventFailed).Target(StateIDFailed).
		Done().
		State(StateIDReleased).
		Final().
		Done().
		State(StateIDFailed).
		Final().
		Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("building run-state machine: %w", err)
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return &RunState{interpreter: interp}, nil
}

// Advance sends an event, ignoring any error since observational state never
// blocks phase execution.
func (r *RunState) Advance(event statekit.EventType) {
	if r == nil || r.interpreter == nil {
		return
	}
	r.interpreter.Send(statekit.Event{Type: event})
}

// Current returns the current state ID.
func (r *RunState) Current() statekit.StateID {
	if r == nil || r.interpreter == nil {
		return ""
	}
	return r.interpreter.State().Value
}
