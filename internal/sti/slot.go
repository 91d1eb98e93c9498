package sti

import (
	"fmt"
	"time"
)

// TimeSlot identifies one of the four fixed daily collection windows.
type TimeSlot int

const (
	SlotMorning       TimeSlot = 0 // 07:00 - 10:00
	SlotLateMorning   TimeSlot = 1 // 10:00 - 13:00
	SlotAfternoon     TimeSlot = 2 // 13:00 - 16:00
	SlotLateAfternoon TimeSlot = 3 // 16:00 - 19:00
)

type slotWindow struct {
	startHour int
	endHour   int
}

var slotTable = map[TimeSlot]slotWindow{
	SlotMorning:       {7, 10},
	SlotLateMorning:   {10, 13},
	SlotAfternoon:     {13, 16},
	SlotLateAfternoon: {16, 19},
}

// AllSlots returns the four slots in order.
func AllSlots() []TimeSlot {
	return []TimeSlot{SlotMorning, SlotLateMorning, SlotAfternoon, SlotLateAfternoon}
}

// Valid reports whether s is one of the four defined slots.
func (s TimeSlot) Valid() bool {
	_, ok := slotTable[s]
	return ok
}

// StartHour returns the slot's opening wall-clock hour.
func (s TimeSlot) StartHour() int {
	return slotTable[s].startHour
}

// EndHour returns the slot's closing wall-clock hour.
func (s TimeSlot) EndHour() int {
	return slotTable[s].endHour
}

// Label returns the "07:00 - 10:00" style display label.
func (s TimeSlot) Label() string {
	w := slotTable[s]
	return formatHour(w.startHour) + " - " + formatHour(w.endHour)
}

func formatHour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// ExistingBooking is the slice of a customer's booking the availability
// rule needs: which slot on which date, and whether it was cancelled.
type ExistingBooking struct {
	Date      time.Time
	Slot      TimeSlot
	Cancelled bool
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}

// SlotAvailable decides whether slot can still be booked on date.
// A slot is unavailable when the date is today and the current hour has
// reached the slot's end, or when the customer already holds a
// non-cancelled booking in that slot on that date. Availability is derived
// each time, never stored.
func SlotAvailable(slot TimeSlot, date time.Time, now time.Time, existing []ExistingBooking) bool {
	if SameDay(date, now) && now.Hour() >= slot.EndHour() {
		return false
	}
	for _, b := range existing {
		if b.Cancelled {
			continue
		}
		if b.Slot == slot && SameDay(b.Date, date) {
			return false
		}
	}
	return true
}

// SlotAvailability evaluates all four slots for one date.
func SlotAvailability(date time.Time, now time.Time, existing []ExistingBooking) map[TimeSlot]bool {
	out := make(map[TimeSlot]bool, len(slotTable))
	for _, s := range AllSlots() {
		out[s] = SlotAvailable(s, date, now, existing)
	}
	return out
}
