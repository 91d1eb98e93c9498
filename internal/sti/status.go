package sti

// TestStatus represents the lifecycle stage of an STI test record.
// The numeric codes are the wire format the clients and the database
// already rely on, so they must never be renumbered.
type TestStatus int

const (
	StatusScheduled   TestStatus = 0
	StatusSampleTaken TestStatus = 1
	StatusProcessing  TestStatus = 2
	StatusCompleted   TestStatus = 3
	StatusCancelled   TestStatus = 4
)

var statusLabels = map[TestStatus]string{
	StatusScheduled:   "Scheduled",
	StatusSampleTaken: "Sample Taken",
	StatusProcessing:  "Processing",
	StatusCompleted:   "Completed",
	StatusCancelled:   "Cancelled",
}

var statusColors = map[TestStatus]string{
	StatusScheduled:   "blue",
	StatusSampleTaken: "cyan",
	StatusProcessing:  "orange",
	StatusCompleted:   "green",
	StatusCancelled:   "red",
}

// Valid reports whether s is one of the five defined statuses.
func (s TestStatus) Valid() bool {
	return s >= StatusScheduled && s <= StatusCancelled
}

// IsTerminal reports whether no further transitions may leave s.
func (s TestStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Label returns the display label for the status.
func (s TestStatus) Label() string {
	return statusLabels[s]
}

// Color returns the display color key used by the clients.
func (s TestStatus) Color() string {
	return statusColors[s]
}

func (s TestStatus) String() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return "Unknown"
}
