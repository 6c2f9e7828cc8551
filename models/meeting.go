package models

import (
	"errors"
	"time"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusCanceled = "canceled"
)

const (
	ColorPending  = "#f59e0b"
	ColorApproved = "#10b981"
	ColorCanceled = "#ef4444"
)

type Meeting struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OwnerID        uint      `gorm:"column:owner_id;not null;index" json:"owner_id"`
	Title          string    `gorm:"column:title;size:255;not null" json:"title"`
	StartAt        time.Time `gorm:"column:start_at;not null" json:"start"`
	EndAt          time.Time `gorm:"column:end_at;not null" json:"end"`
	RequesterName  string    `gorm:"column:requester_name;size:100;not null" json:"requesterName"`
	RequesterEmail string    `gorm:"column:requester_email;size:100;not null" json:"requesterEmail"`
	Attendees      string    `gorm:"column:attendees;type:text" json:"attendees"` // comma-separated emails
	Location       string    `gorm:"column:location;size:255" json:"location"`
	Description    string    `gorm:"column:description;type:text" json:"description"`
	Status         string    `gorm:"column:status;size:20;default:'pending'" json:"status"`
	Color          string    `gorm:"column:color;size:10" json:"color"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Meeting) TableName() string {
	return "meetings"
}

// StatusColor maps a meeting status to its display color.
func StatusColor(status string) string {
	switch status {
	case StatusApproved:
		return ColorApproved
	case StatusCanceled:
		return ColorCanceled
	default:
		return ColorPending
	}
}

func ValidStatus(status string) bool {
	return status == StatusPending || status == StatusApproved || status == StatusCanceled
}

var (
	ErrEndBeforeStart = errors.New("meeting end must be after start")
	ErrBadStatus      = errors.New("invalid meeting status")
)

// Validate checks the invariants every stored meeting must hold.
func (m *Meeting) Validate() error {
	if !m.EndAt.After(m.StartAt) {
		return ErrEndBeforeStart
	}
	if !ValidStatus(m.Status) {
		return ErrBadStatus
	}
	return nil
}
