package services

import (
	"errors"
	"fmt"
	"time"
)

// Booking window: 30-minute slots between 09:00 and 17:00 local time.
const (
	BookingDayStartHour = 9
	BookingDayEndHour   = 17
	SlotDuration        = 30 * time.Minute
)

// Slot is one bookable interval of an owner's day.
type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

var (
	ErrOutsideWindow = errors.New("time is outside the booking window")
	ErrNotOnBoundary = errors.New("time is not on a slot boundary")
)

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaySlots builds the slot grid for one calendar day. busy is keyed by
// Unix seconds of booked slot starts. A slot is unavailable when its
// start is busy, or when it begins before now (covers both fully past
// days and already-elapsed slots of the current day).
func DaySlots(date time.Time, now time.Time, busy map[int64]bool) []Slot {
	d := dayStart(date)
	open := d.Add(BookingDayStartHour * time.Hour)
	end := d.Add(BookingDayEndHour * time.Hour)

	var slots []Slot
	for start := open; start.Before(end); start = start.Add(SlotDuration) {
		available := !busy[start.Unix()] && !start.Before(now)
		slots = append(slots, Slot{Start: start, End: start.Add(SlotDuration), Available: available})
	}
	return slots
}

// SlotStart resolves a "HH:MM" time on the given day to the slot start
// instant, rejecting times outside the window or off the 30-minute grid.
func SlotStart(date time.Time, hhmm string) (time.Time, error) {
	var hour, min int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &hour, &min); err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	if hour < BookingDayStartHour || hour >= BookingDayEndHour || min < 0 || min > 59 {
		return time.Time{}, ErrOutsideWindow
	}
	if min%30 != 0 {
		return time.Time{}, ErrNotOnBoundary
	}
	d := dayStart(date)
	return d.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute), nil
}
