package sti

import "time"

// Result is one parameter's screening outcome within a test record.
type Result struct {
	Parameter   TestParameter
	Outcome     OutcomeValue
	Comments    string
	StaffID     string
	ProcessedAt time.Time
}

// UpsertResult attaches or updates the result for one parameter, keyed on
// the parameter id so a record never carries two results for the same
// parameter. The parameter must be a member of set. ProcessedAt is stamped
// with now on every write, create or update alike.
func UpsertResult(results []Result, set []TestParameter, r Result, now time.Time) ([]Result, error) {
	if !ContainsParameter(set, r.Parameter) {
		return nil, &InvalidParameterError{Parameter: r.Parameter}
	}
	r.ProcessedAt = now
	for i := range results {
		if results[i].Parameter == r.Parameter {
			updated := make([]Result, len(results))
			copy(updated, results)
			updated[i] = r
			return updated, nil
		}
	}
	return append(append([]Result(nil), results...), r), nil
}

// FullyResulted reports whether every parameter in set has some result
// entered. Undetermined counts: it is a legitimate outcome here, not a
// missing one. The management surface uses this as a soft gate in front of
// the strict transition guard, not as a replacement for it.
func FullyResulted(set []TestParameter, results []Result) bool {
	for _, p := range set {
		found := false
		for _, r := range results {
			if r.Parameter == p {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
