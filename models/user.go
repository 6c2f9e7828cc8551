package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;unique;not null" json:"email"`
	Password     string    `gorm:"size:255" json:"-"` // bcrypt hash, empty for Google accounts
	ScheduleSlug string    `gorm:"column:schedule_slug;size:64;unique;not null" json:"schedule_slug"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Meetings []Meeting `gorm:"foreignKey:OwnerID" json:"-"`
}
