package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/timebridge/timebridge-server/config"
	"github.com/timebridge/timebridge-server/middleware"
	"github.com/timebridge/timebridge-server/models"
	"github.com/timebridge/timebridge-server/services"
)

func meetingError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": gin.H{"message": msg}})
}

// ListMeetings returns every meeting of the signed-in owner.
func ListMeetings(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	var meetings []models.Meeting
	if err := config.DB.
		Where("owner_id = ?", u.ID).
		Order("start_at ASC").
		Find(&meetings).Error; err != nil {
		meetingError(c, http.StatusInternalServerError, "Error fetching meetings")
		return
	}

	c.JSON(http.StatusOK, meetings)
}

type createMeetingReq struct {
	Title          string    `json:"title"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	RequesterName  string    `json:"requesterName"`
	RequesterEmail string    `json:"requesterEmail"`
	Attendees      []string  `json:"attendees"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
}

func CreateMeeting(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	var req createMeetingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		meetingError(c, http.StatusBadRequest, "Invalid meeting payload")
		return
	}

	if req.Title == "" || req.Start.IsZero() || req.End.IsZero() ||
		req.RequesterName == "" || req.RequesterEmail == "" {
		meetingError(c, http.StatusBadRequest, "Missing required meeting fields")
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}

	m := models.Meeting{
		OwnerID:        u.ID,
		Title:          req.Title,
		StartAt:        req.Start,
		EndAt:          req.End,
		RequesterName:  req.RequesterName,
		RequesterEmail: req.RequesterEmail,
		Attendees:      strings.Join(req.Attendees, ","),
		Location:       req.Location,
		Description:    req.Description,
		Status:         status,
		Color:          models.StatusColor(status),
	}
	if err := m.Validate(); err != nil {
		meetingError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := config.DB.Create(&m).Error; err != nil {
		meetingError(c, http.StatusInternalServerError, "Error creating meeting")
		return
	}

	c.JSON(http.StatusCreated, m)
}

type updateMeetingReq struct {
	Title       *string    `json:"title"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	Location    *string    `json:"location"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
}

// UpdateMeeting applies a partial update. A status change always
// recomputes the display color; canceling is done here by setting
// status to "canceled" (records are never hard-deleted).
func UpdateMeeting(c *gin.Context) {
	m := c.MustGet(middleware.CtxMeeting).(models.Meeting)

	var req updateMeetingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		meetingError(c, http.StatusBadRequest, "Invalid meeting payload")
		return
	}

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Start != nil {
		m.StartAt = *req.Start
	}
	if req.End != nil {
		m.EndAt = *req.End
	}
	if req.Location != nil {
		m.Location = *req.Location
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Status != nil {
		m.Status = *req.Status
		m.Color = models.StatusColor(m.Status)
	}
	if err := m.Validate(); err != nil {
		meetingError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := config.DB.Save(&m).Error; err != nil {
		meetingError(c, http.StatusInternalServerError, "Error updating meeting")
		return
	}

	c.JSON(http.StatusOK, m)
}

// MeetingSummary serves the dashboard partition: non-canceled meetings
// split into the next-7-days window and everything after it.
func MeetingSummary(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	var meetings []models.Meeting
	if err := config.DB.Where("owner_id = ?", u.ID).Find(&meetings).Error; err != nil {
		meetingError(c, http.StatusInternalServerError, "Error fetching meetings")
		return
	}

	cache := services.NewMeetingCache(meetings)
	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"upcoming": cache.Upcoming(now),
		"later":    cache.Later(now),
	})
}
