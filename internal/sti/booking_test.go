package sti

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pkgPtr(p TestPackage) *TestPackage { return &p }
func slotPtr(s TimeSlot) *TimeSlot      { return &s }

var bookingNow = time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC)

func TestAssembleBooking_BasicPackage(t *testing.T) {
	req, err := AssembleBooking(BookingInput{
		Package: pkgPtr(PackageBasic),
		Date:    "2026-03-12",
		Slot:    slotPtr(SlotAfternoon),
		Notes:   "first visit",
	}, bookingNow, nil)
	require.NoError(t, err)

	assert.Equal(t, PackageBasic, req.Package)
	assert.Equal(t, []TestParameter{ParamChlamydia, ParamGonorrhea, ParamSyphilis}, req.Parameters)
	assert.Equal(t, int64(300000), req.TotalPrice)
	assert.Equal(t, SlotAfternoon, req.Slot)
	assert.Equal(t, "first visit", req.Notes)
}

func TestAssembleBooking_ComprehensiveIgnoresSelection(t *testing.T) {
	req, err := AssembleBooking(BookingInput{
		Package:    pkgPtr(PackageComprehensive),
		Parameters: []TestParameter{ParamHIV},
		Date:       "2026-03-12",
		Slot:       slotPtr(SlotMorning),
	}, bookingNow, nil)
	require.NoError(t, err)

	assert.Len(t, req.Parameters, 10)
	assert.Equal(t, int64(550000), req.TotalPrice)
}

func TestAssembleBooking_CustomTargeted(t *testing.T) {
	req, err := AssembleBooking(BookingInput{
		Package:    pkgPtr(PackageCustom),
		Parameters: []TestParameter{ParamHIV, ParamHerpes},
		Targeted:   true,
		Date:       "2026-03-12",
		Slot:       slotPtr(SlotMorning),
	}, bookingNow, nil)
	require.NoError(t, err)
	assert.Equal(t, PriceTargetedBundle, req.TotalPrice)
}

func TestAssembleBooking_ValidationOrder(t *testing.T) {
	booked := []ExistingBooking{{
		Date: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Slot: SlotMorning,
	}}

	tests := []struct {
		name    string
		in      BookingInput
		field   string
		message string
	}{
		{
			"no package selected",
			BookingInput{Date: "2026-03-12", Slot: slotPtr(SlotMorning)},
			"package", "selection required",
		},
		{
			"custom without parameters",
			BookingInput{Package: pkgPtr(PackageCustom), Date: "2026-03-12", Slot: slotPtr(SlotMorning)},
			"parameters", "selection required",
		},
		{
			"no slot",
			BookingInput{Package: pkgPtr(PackageBasic), Date: "2026-03-12"},
			"slot", "slot required",
		},
		{
			"slot already booked",
			BookingInput{Package: pkgPtr(PackageBasic), Date: "2026-03-12", Slot: slotPtr(SlotMorning)},
			"slot", "slot unavailable",
		},
		{
			"date in past",
			BookingInput{Package: pkgPtr(PackageBasic), Date: "2026-03-08", Slot: slotPtr(SlotMorning)},
			"scheduleDate", "date in past",
		},
		{
			"garbage date",
			BookingInput{Package: pkgPtr(PackageBasic), Date: "tomorrow", Slot: slotPtr(SlotMorning)},
			"scheduleDate", "invalid date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AssembleBooking(tt.in, bookingNow, booked)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

func TestAssembleBooking_CustomRepeatedParameter(t *testing.T) {
	req, err := AssembleBooking(BookingInput{
		Package:    pkgPtr(PackageCustom),
		Parameters: []TestParameter{ParamHPV, ParamHPV},
		Date:       "2026-03-12",
		Slot:       slotPtr(SlotMorning),
	}, bookingNow, nil)
	require.NoError(t, err)

	// A repeated selection collapses to one entry: billed once, encoded once.
	assert.Equal(t, []TestParameter{ParamHPV}, req.Parameters)
	assert.Equal(t, ParamHPV.UnitPrice(), req.TotalPrice)
	assert.Equal(t, "9", EncodeParameters(req.Parameters))
}

func TestAssembleBooking_TargetedBundleCap(t *testing.T) {
	_, err := AssembleBooking(BookingInput{
		Package:    pkgPtr(PackageCustom),
		Parameters: []TestParameter{ParamChlamydia, ParamGonorrhea, ParamSyphilis, ParamHIV},
		Targeted:   true,
		Date:       "2026-03-12",
		Slot:       slotPtr(SlotMorning),
	}, bookingNow, nil)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "parameters", verr.Field)
}

// End-to-end walk through the booking and transition flow: book Basic on a
// future afternoon slot, get blocked on sample collection until payment,
// then advance with the sample timestamp stamped exactly once.
func TestBookingAndTransitionFlow(t *testing.T) {
	req, err := AssembleBooking(BookingInput{
		Package: pkgPtr(PackageBasic),
		Date:    "2026-03-12",
		Slot:    slotPtr(SlotAfternoon),
	}, bookingNow, nil)
	require.NoError(t, err)
	require.Equal(t, int64(300000), req.TotalPrice)

	state := TransitionState{Status: StatusScheduled, IsPaid: false}

	d := CheckTransition(state, StatusSampleTaken)
	require.False(t, d.Allowed)
	require.Equal(t, ReasonPaymentRequired, d.Reason)

	state.IsPaid = true
	d = CheckTransition(state, StatusSampleTaken)
	require.True(t, d.Allowed)

	sampled := bookingNow.Add(time.Hour)
	state.Status = StatusSampleTaken
	state.SampleTakenAt = &sampled

	d = CheckTransition(state, StatusProcessing)
	require.True(t, d.Allowed)
	state.Status = StatusProcessing

	// The strict guard allows completion once the sample exists, even if
	// results are still missing; completeness is the surface's soft gate.
	results, err := UpsertResult(nil, req.Parameters, Result{Parameter: ParamChlamydia, Outcome: OutcomeNegative}, sampled)
	require.NoError(t, err)
	results, err = UpsertResult(results, req.Parameters, Result{Parameter: ParamGonorrhea, Outcome: OutcomeNegative}, sampled)
	require.NoError(t, err)

	assert.False(t, FullyResulted(req.Parameters, results))
	assert.True(t, CheckTransition(state, StatusCompleted).Allowed)
}
