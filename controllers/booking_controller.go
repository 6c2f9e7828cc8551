package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gorm.io/gorm"

	"github.com/timebridge/timebridge-server/config"
	"github.com/timebridge/timebridge-server/models"
	"github.com/timebridge/timebridge-server/services"
)

// gormMeetingStore adapts the shared DB handle to the booking flow.
type gormMeetingStore struct {
	db *gorm.DB
}

func (s gormMeetingStore) HasMeetingAt(ownerID uint, start time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&models.Meeting{}).
		Where("owner_id = ? AND start_at = ? AND status <> ?", ownerID, start, models.StatusCanceled).
		Count(&count).Error
	return count > 0, err
}

func (s gormMeetingStore) Create(m *models.Meeting) error {
	return s.db.Create(m).Error
}

func ownerBySlug(c *gin.Context) (models.User, bool) {
	var owner models.User
	if err := config.DB.Where("schedule_slug = ?", c.Param("slug")).First(&owner).Error; err != nil {
		meetingError(c, http.StatusNotFound, "Schedule not found")
		return models.User{}, false
	}
	return owner, true
}

// GetDaySlots returns the booking grid for one day of an owner's
// schedule: 30-minute slots between 09:00 and 17:00, with already
// booked and already elapsed slots marked unavailable.
func GetDaySlots(c *gin.Context) {
	owner, ok := ownerBySlug(c)
	if !ok {
		return
	}

	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		meetingError(c, http.StatusBadRequest, "Invalid or missing date (expected YYYY-MM-DD)")
		return
	}

	dayEnd := date.AddDate(0, 0, 1)
	var booked []models.Meeting
	if err := config.DB.
		Where("owner_id = ? AND status <> ? AND start_at >= ? AND start_at < ?",
			owner.ID, models.StatusCanceled, date, dayEnd).
		Find(&booked).Error; err != nil {
		meetingError(c, http.StatusInternalServerError, "Error fetching bookings")
		return
	}

	busy := make(map[int64]bool, len(booked))
	for _, m := range booked {
		busy[m.StartAt.Unix()] = true
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  c.Query("date"),
		"slots": services.DaySlots(date, time.Now(), busy),
	})
}

// CreateBooking handles a visitor's booking submission against an
// owner's public schedule. The flow is sequential with no retry:
// validate, conflict-check, insert, then a best-effort confirmation
// email.
func CreateBooking(c *gin.Context) {
	owner, ok := ownerBySlug(c)
	if !ok {
		return
	}

	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		meetingError(c, http.StatusBadRequest, "Invalid booking payload")
		return
	}

	m, err := services.SubmitBooking(gormMeetingStore{config.DB}, owner.ID, req, time.Now())
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNoSlot):
		meetingError(c, http.StatusBadRequest, "Please select a date and time slot")
		return
	case errors.Is(err, services.ErrMissingFields):
		meetingError(c, http.StatusBadRequest, "Name and email are required")
		return
	case errors.Is(err, services.ErrOutsideWindow), errors.Is(err, services.ErrNotOnBoundary):
		meetingError(c, http.StatusBadRequest, "The selected time is not a bookable slot")
		return
	case errors.Is(err, services.ErrSlotTaken), errors.Is(err, gorm.ErrDuplicatedKey):
		// ErrDuplicatedKey means a concurrent submission won the slot
		// between our conflict check and the insert.
		meetingError(c, http.StatusConflict, "This time slot has already been booked. Please select another time.")
		return
	default:
		meetingError(c, http.StatusInternalServerError, "Error creating meeting")
		return
	}

	if err := sendBookingConfirmation(owner, m); err != nil {
		log.Printf("confirmation email for meeting %d failed: %v", m.ID, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"meeting":   m,
		"reference": uuid.NewString(),
	})
}

func sendBookingConfirmation(owner models.User, m models.Meeting) error {
	from := os.Getenv(config.EnvSendgridFrom)
	if from == "" {
		return nil // email not configured, skip silently
	}

	subject := fmt.Sprintf("Meeting request received: %s", m.Title)
	text := fmt.Sprintf(
		"Hi %s,\n\nYour meeting request with %s for %s is pending approval.\n\n- TimeBridge",
		m.RequesterName, owner.Name, m.StartAt.Format("Mon, Jan 2 2006 15:04"),
	)

	msg := mail.NewV3Mail()
	msg.SetFrom(mail.NewEmail("TimeBridge", from))
	msg.Subject = subject
	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail(m.RequesterName, m.RequesterEmail))
	msg.AddPersonalizations(p)
	msg.AddContent(mail.NewContent("text/plain", text))

	return sendMail(msg)
}
