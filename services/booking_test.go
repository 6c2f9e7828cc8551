package services

import (
	"errors"
	"testing"
	"time"

	"github.com/timebridge/timebridge-server/models"
)

type fakeStore struct {
	taken   map[int64]bool
	created []models.Meeting
	err     error
}

func (f *fakeStore) HasMeetingAt(ownerID uint, start time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.taken[start.Unix()], nil
}

func (f *fakeStore) Create(m *models.Meeting) error {
	m.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *m)
	return nil
}

func validRequest() BookingRequest {
	return BookingRequest{
		Date:  "2025-06-10",
		Time:  "10:30",
		Name:  "Ada",
		Email: "ada@example.com",
	}
}

func TestSubmitBookingSuccess(t *testing.T) {
	store := &fakeStore{}
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	m, err := SubmitBooking(store, 42, validRequest(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected one created meeting, got %d", len(store.created))
	}

	wantStart := time.Date(2025, 6, 10, 10, 30, 0, 0, now.Location())
	if !m.StartAt.Equal(wantStart) {
		t.Errorf("start = %v, want %v", m.StartAt, wantStart)
	}
	if !m.EndAt.Equal(wantStart.Add(30 * time.Minute)) {
		t.Errorf("end must be start + 30m, got %v", m.EndAt)
	}
	if m.Status != models.StatusPending {
		t.Errorf("new bookings must be pending, got %s", m.Status)
	}
	if m.Color != models.ColorPending {
		t.Errorf("new bookings carry the pending color, got %s", m.Color)
	}
	if m.OwnerID != 42 {
		t.Errorf("owner = %d, want 42", m.OwnerID)
	}
	if m.Title == "" {
		t.Error("a default title should be derived from the requester name")
	}
}

func TestSubmitBookingNoSlot(t *testing.T) {
	store := &fakeStore{}
	req := validRequest()
	req.Time = ""

	if _, err := SubmitBooking(store, 1, req, time.Now()); !errors.Is(err, ErrNoSlot) {
		t.Fatalf("got %v, want ErrNoSlot", err)
	}
	if len(store.created) != 0 {
		t.Fatal("no meeting may be created without a selected slot")
	}
}

func TestSubmitBookingMissingFields(t *testing.T) {
	store := &fakeStore{}
	req := validRequest()
	req.Email = "  "

	if _, err := SubmitBooking(store, 1, req, time.Now()); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("got %v, want ErrMissingFields", err)
	}
	if len(store.created) != 0 {
		t.Fatal("no meeting may be created with missing contact fields")
	}
}

func TestSubmitBookingConflict(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 10, 10, 30, 0, 0, now.Location())
	store := &fakeStore{taken: map[int64]bool{start.Unix(): true}}

	if _, err := SubmitBooking(store, 1, validRequest(), now); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("got %v, want ErrSlotTaken", err)
	}
	if len(store.created) != 0 {
		t.Fatal("a conflicting submission must not create a duplicate")
	}
}

func TestSubmitBookingOutsideWindow(t *testing.T) {
	store := &fakeStore{}
	req := validRequest()
	req.Time = "18:00"

	if _, err := SubmitBooking(store, 1, req, time.Now()); !errors.Is(err, ErrOutsideWindow) {
		t.Fatalf("got %v, want ErrOutsideWindow", err)
	}
}

func TestSubmitBookingStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}

	if _, err := SubmitBooking(store, 1, validRequest(), time.Now()); err == nil {
		t.Fatal("store errors must propagate")
	}
	if len(store.created) != 0 {
		t.Fatal("nothing may be created when the conflict check fails")
	}
}
