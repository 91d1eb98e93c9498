package sti

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidState(s TestStatus) TransitionState {
	sampled := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	st := TransitionState{Status: s, IsPaid: true}
	if s >= StatusSampleTaken && s != StatusCancelled {
		st.SampleTakenAt = &sampled
	}
	return st
}

func TestCheckTransition_SingleStepAdvance(t *testing.T) {
	tests := []struct {
		name   string
		from   TestStatus
		to     TestStatus
		allow  bool
		reason string
	}{
		{"scheduled to sample taken", StatusScheduled, StatusSampleTaken, true, ""},
		{"sample taken to processing", StatusSampleTaken, StatusProcessing, true, ""},
		{"processing to completed", StatusProcessing, StatusCompleted, true, ""},
		{"scheduled skipping to processing", StatusScheduled, StatusProcessing, false, ReasonSkipNotAllowed},
		{"scheduled skipping to completed", StatusScheduled, StatusCompleted, false, ReasonSkipNotAllowed},
		{"backward to scheduled", StatusProcessing, StatusScheduled, false, ReasonSkipNotAllowed},
		{"backward to sample taken", StatusProcessing, StatusSampleTaken, false, ReasonSkipNotAllowed},
		{"same status", StatusProcessing, StatusProcessing, false, ReasonNoOp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CheckTransition(paidState(tt.from), tt.to)
			assert.Equal(t, tt.allow, d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestCheckTransition_CancellationEscapeHatch(t *testing.T) {
	for _, from := range []TestStatus{StatusScheduled, StatusSampleTaken, StatusProcessing} {
		d := CheckTransition(paidState(from), StatusCancelled)
		assert.True(t, d.Allowed, "cancel from %s should be allowed", from)
	}
}

func TestCheckTransition_TerminalStatesAreImmutable(t *testing.T) {
	for _, from := range []TestStatus{StatusCompleted, StatusCancelled} {
		for _, to := range []TestStatus{StatusScheduled, StatusSampleTaken, StatusProcessing, StatusCompleted, StatusCancelled} {
			d := CheckTransition(paidState(from), to)
			require.False(t, d.Allowed, "%s -> %s must be denied", from, to)
			if to == from {
				assert.Equal(t, ReasonNoOp, d.Reason)
			} else {
				assert.Equal(t, ReasonTerminalState, d.Reason)
			}
		}
	}
}

func TestCheckTransition_PaymentPrecondition(t *testing.T) {
	unpaid := TransitionState{Status: StatusScheduled, IsPaid: false}

	d := CheckTransition(unpaid, StatusSampleTaken)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonPaymentRequired, d.Reason)

	// Cancellation does not require payment.
	d = CheckTransition(unpaid, StatusCancelled)
	assert.True(t, d.Allowed)
}

func TestCheckTransition_SamplePrecondition(t *testing.T) {
	st := TransitionState{Status: StatusProcessing, IsPaid: true, SampleTakenAt: nil}

	d := CheckTransition(st, StatusCompleted)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonSampleMissing, d.Reason)

	sampled := time.Now()
	st.SampleTakenAt = &sampled
	d = CheckTransition(st, StatusCompleted)
	assert.True(t, d.Allowed)
}

// Exhaustive monotonicity check: whenever the guard allows, the target is
// either the next step or a cancellation of a non-terminal state.
func TestCheckTransition_MonotonicStatus(t *testing.T) {
	for from := StatusScheduled; from <= StatusCancelled; from++ {
		for to := StatusScheduled; to <= StatusCancelled; to++ {
			d := CheckTransition(paidState(from), to)
			if !d.Allowed {
				continue
			}
			ok := to == from+1 || (to == StatusCancelled && !from.IsTerminal())
			assert.True(t, ok, "guard allowed illegal transition %s -> %s", from, to)
		}
	}
}

func TestDenialError(t *testing.T) {
	st := TransitionState{Status: StatusScheduled}
	d := CheckTransition(st, StatusSampleTaken)
	require.False(t, d.Allowed)

	err := DenialError(st, StatusSampleTaken, d)
	var denied *TransitionDenied
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, StatusScheduled, denied.From)
	assert.Equal(t, StatusSampleTaken, denied.To)
	assert.Equal(t, ReasonPaymentRequired, denied.Reason)
}
