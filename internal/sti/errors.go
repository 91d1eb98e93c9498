package sti

import "fmt"

// ValidationError reports the first violated field of a booking input.
// It is caught and surfaced locally, before any persistence happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// TransitionDenied reports a status transition the guard refused.
// It is surfaced to the caller with its reason and never retried silently.
type TransitionDenied struct {
	From   TestStatus
	To     TestStatus
	Reason string
}

func (e *TransitionDenied) Error() string {
	return fmt.Sprintf("transition %s -> %s denied: %s", e.From, e.To, e.Reason)
}

// InvalidParameterError reports a result entry referencing a parameter
// outside the record's parameter set. Callers respecting the data model
// should never trigger it, but it must fail loudly rather than creating an
// orphan result.
type InvalidParameterError struct {
	Parameter TestParameter
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("parameter %d (%s) is not part of this test's parameter set", int(e.Parameter), e.Parameter.Name())
}
