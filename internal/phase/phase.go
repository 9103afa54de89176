// Package phase defines the seven ship phases, their outcomes, and the
// events the phase runner emits as it walks the linear sequence described
// in spec.md §4.2.
package phase

// Phase identifies one step of the linear ship sequence.
type Phase string

// The seven phases, in canonical order.
const (
	Preflight Phase = "preflight"
	Version   Phase = "version"
	Test      Phase = "test"
	Bump      Phase = "bump"
	Publish   Phase = "publish"
	Git       Phase = "git"
	Release   Phase = "release"
)

// Order lists the seven phases in the canonical sequence outcome.phases must
// follow, per spec.md §8 invariant 1.
var Order = []Phase{Preflight, Version, Test, Bump, Publish, Git, Release}

// HookPoint identifies one of the named pre/post boundaries around ship and
// each hookable phase (Test, Bump, Publish, Git, Release).
type HookPoint string

// The hook points, in the order they fire.
const (
	PreShip     HookPoint = "pre_ship"
	PreTest     HookPoint = "pre_test"
	PostTest    HookPoint = "post_test"
	PreBump     HookPoint = "pre_bump"
	PostBump    HookPoint = "post_bump"
	PrePublish  HookPoint = "pre_publish"
	PostPublish HookPoint = "post_publish"
	PreTag      HookPoint = "pre_tag"
	PostTag     HookPoint = "post_tag"
	PreRelease  HookPoint = "pre_release"
	PostRelease HookPoint = "post_release"
	PostShip    HookPoint = "post_ship"
)

// Outcome is the sum type spec.md §3 calls PhaseOutcome: a phase either
// succeeded with a message or was skipped with a reason. Failure is never
// modeled as an outcome value — failures abort the pipeline with a typed
// error naming the phase instead.
type Outcome struct {
	Skipped bool
	Message string // set when !Skipped
	Reason  string // set when Skipped
}

// Success constructs a successful Outcome.
func Success(message string) Outcome {
	return Outcome{Message: message}
}

// Skip constructs a skipped Outcome.
func Skip(reason string) Outcome {
	return Outcome{Skipped: true, Reason: reason}
}
