package sti

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotAvailability_FutureDateNoBookings(t *testing.T) {
	now := time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC)
	date := now.AddDate(0, 0, 3)

	avail := SlotAvailability(date, now, nil)
	for _, s := range AllSlots() {
		assert.True(t, avail[s], "slot %d should be free on a future date", s)
	}
}

func TestSlotAvailability_ExistingBookingBlocksOnlyItsSlot(t *testing.T) {
	now := time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC)
	date := now.AddDate(0, 0, 3)

	existing := []ExistingBooking{{Date: date, Slot: SlotLateMorning}}
	avail := SlotAvailability(date, now, existing)

	assert.False(t, avail[SlotLateMorning])
	assert.True(t, avail[SlotMorning])
	assert.True(t, avail[SlotAfternoon])
	assert.True(t, avail[SlotLateAfternoon])
}

func TestSlotAvailability_CancelledBookingDoesNotBlock(t *testing.T) {
	now := time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC)
	date := now.AddDate(0, 0, 1)

	existing := []ExistingBooking{{Date: date, Slot: SlotMorning, Cancelled: true}}
	assert.True(t, SlotAvailable(SlotMorning, date, now, existing))
}

func TestSlotAvailability_BookingOnAnotherDayDoesNotBlock(t *testing.T) {
	now := time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC)
	date := now.AddDate(0, 0, 3)

	existing := []ExistingBooking{{Date: date.AddDate(0, 0, 1), Slot: SlotMorning}}
	assert.True(t, SlotAvailable(SlotMorning, date, now, existing))
}

func TestSlotAvailability_TodayPastWindows(t *testing.T) {
	// 14:00 today: morning and late-morning windows have closed, the
	// afternoon window is still open until 16:00.
	now := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)

	avail := SlotAvailability(now, now, nil)
	assert.False(t, avail[SlotMorning])
	assert.False(t, avail[SlotLateMorning])
	assert.True(t, avail[SlotAfternoon])
	assert.True(t, avail[SlotLateAfternoon])
}

func TestSlotAvailability_TodayAtExactEndHour(t *testing.T) {
	now := time.Date(2026, 3, 9, 16, 0, 0, 0, time.UTC)
	assert.False(t, SlotAvailable(SlotAfternoon, now, now, nil))
	assert.True(t, SlotAvailable(SlotLateAfternoon, now, now, nil))
}
