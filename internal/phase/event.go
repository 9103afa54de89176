package phase

import "github.com/google/uuid"

// Event is the sum type delivered to the on_event callback spec.md §6
// describes: PhaseStarted, PhaseCompleted, HooksStarted, HooksCompleted.
// Exactly one of the typed fields is populated, selected by Kind.
type Event struct {
	Kind EventKind
	// RunID correlates every event emitted by one Execute call, so a host
	// CLI driving several concurrent ships can demultiplex its event stream.
	RunID string

	Phase     Phase     // PhaseStarted, PhaseCompleted
	Outcome   *Outcome  // PhaseCompleted only
	HookPoint HookPoint // HooksStarted, HooksCompleted
	HookCount int       // HooksStarted, HooksCompleted
}

// EventKind discriminates Event's variant.
type EventKind int

const (
	PhaseStarted EventKind = iota
	PhaseCompleted
	HooksStarted
	HooksCompleted
)

// NewRunID mints a fresh run identifier for a single Execute call.
func NewRunID() string {
	return uuid.NewString()
}

// Emitter is a convenience wrapper binding a RunID to the on_event callback
// so phase-runner code doesn't have to thread it through every event.
type Emitter struct {
	RunID   string
	OnEvent func(Event)
}

// NewEmitter returns an Emitter with a freshly minted RunID.
func NewEmitter(onEvent func(Event)) *Emitter {
	return &Emitter{RunID: NewRunID(), OnEvent: onEvent}
}

func (e *Emitter) emit(ev Event) {
	if e.OnEvent == nil {
		return
	}
	ev.RunID = e.RunID
	e.OnEvent(ev)
}

// PhaseStarted emits a PhaseStarted event for ph.
func (e *Emitter) PhaseStarted(ph Phase) {
	e.emit(Event{Kind: PhaseStarted, Phase: ph})
}

// PhaseCompleted emits a PhaseCompleted event for ph with its outcome.
func (e *Emitter) PhaseCompleted(ph Phase, outcome Outcome) {
	e.emit(Event{Kind: PhaseCompleted, Phase: ph, Outcome: &outcome})
}

// HooksStarted emits a HooksStarted event for the given hook point.
func (e *Emitter) HooksStarted(point HookPoint, count int) {
	e.emit(Event{Kind: HooksStarted, HookPoint: point, HookCount: count})
}

// HooksCompleted emits a HooksCompleted event for the given hook point.
func (e *Emitter) HooksCompleted(point HookPoint, count int) {
	e.emit(Event{Kind: HooksCompleted, HookPoint: point, HookCount: count})
}
