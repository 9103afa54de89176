package ship

import (
	"encoding/json"

	"github.com/driftship/driftship/internal/phase"
	"github.com/driftship/driftship/internal/pipeline"
)

// PhaseRecord pairs a phase with its outcome, preserving the canonical
// phase order in Outcome.Phases.
type PhaseRecord struct {
	Phase   phase.Phase
	Outcome phase.Outcome
}

// Outcome is the final record of a completed ship run.
type Outcome struct {
	Version         string
	PreviousVersion string
	Tag             string
	Phases          []PhaseRecord
	HookCount       int
	DryRun          bool
	Context         *pipeline.Context

	// RunState is the final value of the observational run-state machine
	// (see runstate.go).
	RunState string
}

// outcomeJSON is Outcome's wire shape, letting a CLI front end offer
// --json output.
type outcomeJSON struct {
	Version         string            `json:"version"`
	PreviousVersion string            `json:"previous_version"`
	Tag             string            `json:"tag"`
	Phases          []phaseRecordJSON `json:"phases"`
	HookCount       int               `json:"hook_count"`
	DryRun          bool              `json:"dry_run"`
	Context         *pipeline.Context `json:"context"`
	RunState        string            `json:"run_state,omitempty"`
}

type phaseRecordJSON struct {
	Phase   string `json:"phase"`
	Skipped bool   `json:"skipped"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// MarshalJSON implements json.Marshaler for Outcome.
func (o Outcome) MarshalJSON() ([]byte, error) {
	records := make([]phaseRecordJSON, len(o.Phases))
	for i, pr := range o.Phases {
		records[i] = phaseRecordJSON{
			Phase:   string(pr.Phase),
			Skipped: pr.Outcome.Skipped,
			Message: pr.Outcome.Message,
			Reason:  pr.Outcome.Reason,
		}
	}
	return json.Marshal(outcomeJSON{
		Version:         o.Version,
		PreviousVersion: o.PreviousVersion,
		Tag:             o.Tag,
		Phases:          records,
		HookCount:       o.HookCount,
		DryRun:          o.DryRun,
		Context:         o.Context,
		RunState:        o.RunState,
	})
}
