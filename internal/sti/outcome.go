package sti

// OutcomeValue represents the result of screening one parameter.
// Undetermined doubles as "inconclusive, retest needed" in this domain;
// a result carrying it still counts as an entered result.
type OutcomeValue int

const (
	OutcomeNegative     OutcomeValue = 0
	OutcomePositive     OutcomeValue = 1
	OutcomeUndetermined OutcomeValue = 2
)

var outcomeLabels = map[OutcomeValue]string{
	OutcomeNegative:     "Negative",
	OutcomePositive:     "Positive",
	OutcomeUndetermined: "Undetermined",
}

var outcomeColors = map[OutcomeValue]string{
	OutcomeNegative:     "green",
	OutcomePositive:     "red",
	OutcomeUndetermined: "gold",
}

// Valid reports whether o is one of the three defined outcomes.
func (o OutcomeValue) Valid() bool {
	_, ok := outcomeLabels[o]
	return ok
}

// Label returns the display label for the outcome.
func (o OutcomeValue) Label() string {
	return outcomeLabels[o]
}

// Color returns the display color key used by the clients.
func (o OutcomeValue) Color() string {
	return outcomeColors[o]
}
