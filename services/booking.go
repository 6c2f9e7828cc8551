package services

import (
	"errors"
	"strings"
	"time"

	"github.com/timebridge/timebridge-server/models"
)

// MeetingStore is the slice of persistence the booking flow needs.
type MeetingStore interface {
	// HasMeetingAt reports whether the owner already has a non-canceled
	// meeting at exactly start.
	HasMeetingAt(ownerID uint, start time.Time) (bool, error)
	Create(m *models.Meeting) error
}

// ErrSlotTaken is returned both when the conflict query finds an
// existing booking and when the insert loses the race to one.
var (
	ErrMissingFields = errors.New("name and email are required")
	ErrNoSlot        = errors.New("no time slot selected")
	ErrSlotTaken     = errors.New("slot already booked")
)

// BookingRequest is a visitor's submission from the booking page.
type BookingRequest struct {
	Title     string   `json:"title"`
	Date      string   `json:"date"` // YYYY-MM-DD
	Time      string   `json:"time"` // HH:MM, slot start
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Attendees []string `json:"attendees"`
	Location  string   `json:"location"`
	Notes     string   `json:"notes"`
}

// SubmitBooking runs the booking flow for one submission: validate the
// form, check the slot against existing bookings, then persist a pending
// meeting of one slot length. Failures are terminal per attempt; nothing
// is retried.
func SubmitBooking(store MeetingStore, ownerID uint, req BookingRequest, now time.Time) (models.Meeting, error) {
	if strings.TrimSpace(req.Time) == "" || strings.TrimSpace(req.Date) == "" {
		return models.Meeting{}, ErrNoSlot
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return models.Meeting{}, ErrMissingFields
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, now.Location())
	if err != nil {
		return models.Meeting{}, ErrNoSlot
	}
	start, err := SlotStart(date, req.Time)
	if err != nil {
		return models.Meeting{}, err
	}

	taken, err := store.HasMeetingAt(ownerID, start)
	if err != nil {
		return models.Meeting{}, err
	}
	if taken {
		return models.Meeting{}, ErrSlotTaken
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Meeting with " + strings.TrimSpace(req.Name)
	}

	m := models.Meeting{
		OwnerID:        ownerID,
		Title:          title,
		StartAt:        start,
		EndAt:          start.Add(SlotDuration),
		RequesterName:  strings.TrimSpace(req.Name),
		RequesterEmail: strings.TrimSpace(req.Email),
		Attendees:      strings.Join(req.Attendees, ","),
		Location:       strings.TrimSpace(req.Location),
		Description:    req.Notes,
		Status:         models.StatusPending,
		Color:          models.ColorPending,
	}
	if err := store.Create(&m); err != nil {
		return models.Meeting{}, err
	}
	return m, nil
}
