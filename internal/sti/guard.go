package sti

import "time"

// Denial reasons, in the precedence order the guard checks them.
const (
	ReasonNoOp            = "no-op"
	ReasonTerminalState   = "terminal state"
	ReasonSkipNotAllowed  = "skip not allowed"
	ReasonPaymentRequired = "payment required before sample collection"
	ReasonSampleMissing   = "sample not yet collected"
)

// TransitionState is the snapshot of a test record the guard evaluates.
// Callers must treat it as an immutable value for the duration of one
// evaluation and replace the record wholesale on each update.
type TransitionState struct {
	Status        TestStatus
	IsPaid        bool
	SampleTakenAt *time.Time
}

// Decision is the guard's verdict on a requested transition.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allowed is the positive decision.
var Allowed = Decision{Allowed: true}

// Denied builds a negative decision with the given reason.
func Denied(reason string) Decision {
	return Decision{Reason: reason}
}

// CheckTransition decides whether the record may move from its current
// status to target. Transitions advance exactly one step, except
// cancellation, which is reachable from any non-terminal state. Sample
// collection requires prior payment; completion requires a collected
// sample. Reasons are checked in a fixed precedence order.
func CheckTransition(state TransitionState, target TestStatus) Decision {
	switch {
	case target == state.Status:
		return Denied(ReasonNoOp)
	case state.Status.IsTerminal():
		return Denied(ReasonTerminalState)
	case target != state.Status+1 && target != StatusCancelled:
		return Denied(ReasonSkipNotAllowed)
	case target == StatusSampleTaken && !state.IsPaid:
		return Denied(ReasonPaymentRequired)
	case target == StatusCompleted && state.SampleTakenAt == nil:
		return Denied(ReasonSampleMissing)
	}
	return Allowed
}

// DenialError wraps a negative decision as a typed error.
func DenialError(state TransitionState, target TestStatus, d Decision) error {
	return &TransitionDenied{From: state.Status, To: target, Reason: d.Reason}
}
