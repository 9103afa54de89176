package phase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftship/driftship/internal/phase"
)

func TestEmitter_StampsRunIDAndOrder(t *testing.T) {
	var events []phase.Event
	e := phase.NewEmitter(func(ev phase.Event) {
		events = append(events, ev)
	})
	require.NotEmpty(t, e.RunID)

	e.PhaseStarted(phase.Test)
	e.PhaseCompleted(phase.Test, phase.Success("ran tests"))
	e.HooksStarted(phase.PostTest, 2)
	e.HooksCompleted(phase.PostTest, 2)

	require.Len(t, events, 4)
	for _, ev := range events {
		assert.Equal(t, e.RunID, ev.RunID)
	}
	assert.Equal(t, phase.PhaseStarted, events[0].Kind)
	assert.Equal(t, phase.Test, events[0].Phase)
	assert.Equal(t, phase.PhaseCompleted, events[1].Kind)
	require.NotNil(t, events[1].Outcome)
	assert.Equal(t, "ran tests", events[1].Outcome.Message)
	assert.Equal(t, phase.HooksStarted, events[2].Kind)
	assert.Equal(t, phase.PostTest, events[2].HookPoint)
	assert.Equal(t, 2, events[2].HookCount)
	assert.Equal(t, phase.HooksCompleted, events[3].Kind)
}

func TestEmitter_NilCallbackIsSafe(t *testing.T) {
	e := phase.NewEmitter(nil)
	assert.NotPanics(t, func() {
		e.PhaseStarted(phase.Preflight)
	})
}

func TestNewRunID_Unique(t *testing.T) {
	a := phase.NewRunID()
	b := phase.NewRunID()
	assert.NotEqual(t, a, b)
}
