package ship

import (
	"fmt"

	"github.com/driftship/driftship/internal/phase"
)

// The error kinds are a fixed, closed set: unlike the open Kind-tagged
// *errors.Error used elsewhere (see internal/errors), this is a small,
// fixed vocabulary, so each kind gets its own type instead of a shared
// enum.

// PreflightFailedError reports which of the six preflight checks failed.
type PreflightFailedError struct {
	Check  string
	Detail string
}

func (e *PreflightFailedError) Error() string {
	return fmt.Sprintf("preflight check %q failed: %s", e.Check, e.Detail)
}

// VersionResolutionError reports a failure while resolving the release
// version.
type VersionResolutionError struct {
	Detail string
}

func (e *VersionResolutionError) Error() string {
	return fmt.Sprintf("version resolution failed: %s", e.Detail)
}

// PhaseFailedError wraps a non-hook subprocess failure with the phase it
// occurred in.
type PhaseFailedError struct {
	Phase   phase.Phase
	Message string
	Cause   error
}

func (e *PhaseFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("phase %s failed: %s: %v", e.Phase, e.Message, e.Cause)
	}
	return fmt.Sprintf("phase %s failed: %s", e.Phase, e.Message)
}

func (e *PhaseFailedError) Unwrap() error {
	return e.Cause
}

// ExternalProcessError wraps a failure launching or running an external
// collaborator process (git, changelog tool, release CLI) outside the hook
// engine's own command contract.
type ExternalProcessError struct {
	Program string
	Cause   error
}

func (e *ExternalProcessError) Error() string {
	return fmt.Sprintf("external process %q failed: %v", e.Program, e.Cause)
}

func (e *ExternalProcessError) Unwrap() error {
	return e.Cause
}
