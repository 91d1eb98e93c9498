package sti

import "time"

// ScheduleDateLayout is the wire format for calendar dates.
const ScheduleDateLayout = "2006-01-02"

// BookingInput is the raw package/parameter/date/slot selection a customer
// submitted. Package and Slot are pointers so "nothing selected" is
// distinguishable from the zero-valued enum members.
type BookingInput struct {
	Package    *TestPackage
	Parameters []TestParameter
	Targeted   bool
	Date       string // ScheduleDateLayout
	Slot       *TimeSlot
	Notes      string
	Anonymous  bool
}

// CreateTestRequest is the creation request booking assembly emits.
// Parameters and TotalPrice are always derived from the pricing tables,
// never taken verbatim from the caller, so a tampered client price can
// never reach the store. The server remains authoritative regardless.
type CreateTestRequest struct {
	Package      TestPackage
	Parameters   []TestParameter
	ScheduleDate time.Time
	Slot         TimeSlot
	TotalPrice   int64
	Notes        string
	Anonymous    bool
}

// AssembleBooking validates a selection against the booking invariants and
// turns it into a creation request. Checks run in a fixed order and fail
// with a ValidationError naming the first violated field:
// selection, slot, slot availability, schedule date.
func AssembleBooking(in BookingInput, now time.Time, existing []ExistingBooking) (*CreateTestRequest, error) {
	if in.Package == nil || !in.Package.Valid() {
		return nil, &ValidationError{Field: "package", Message: "selection required"}
	}
	pkg := *in.Package
	params := ParametersFor(pkg, in.Parameters)
	if len(params) == 0 {
		return nil, &ValidationError{Field: "parameters", Message: "selection required"}
	}
	if pkg == PackageCustom && in.Targeted && len(params) > TargetedBundleMax {
		return nil, &ValidationError{Field: "parameters", Message: "targeted bundle allows at most 3 parameters"}
	}
	for _, p := range params {
		if !p.Valid() {
			return nil, &ValidationError{Field: "parameters", Message: "unknown parameter"}
		}
	}

	if in.Slot == nil || !in.Slot.Valid() {
		return nil, &ValidationError{Field: "slot", Message: "slot required"}
	}
	slot := *in.Slot

	date, err := time.ParseInLocation(ScheduleDateLayout, in.Date, now.Location())
	if err != nil {
		return nil, &ValidationError{Field: "scheduleDate", Message: "invalid date"}
	}

	if !SlotAvailable(slot, date, now, existing) {
		return nil, &ValidationError{Field: "slot", Message: "slot unavailable"}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return nil, &ValidationError{Field: "scheduleDate", Message: "date in past"}
	}

	return &CreateTestRequest{
		Package:      pkg,
		Parameters:   params,
		ScheduleDate: date,
		Slot:         slot,
		TotalPrice:   PriceOf(pkg, params, in.Targeted),
		Notes:        in.Notes,
		Anonymous:    in.Anonymous,
	}, nil
}
