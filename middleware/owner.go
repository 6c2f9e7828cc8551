package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timebridge/timebridge-server/config"
	"github.com/timebridge/timebridge-server/models"
)

// CheckMeetingOwner loads the meeting from the :id param into the
// context and rejects callers who do not own it.
func CheckMeetingOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := c.MustGet(CtxUser).(models.User)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid meeting ID"}})
			return
		}

		var m models.Meeting
		if err := config.DB.First(&m, id).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Meeting not found"}})
			return
		}

		if m.OwnerID != u.ID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "You do not have access to this meeting"}})
			return
		}

		c.Set(CtxMeeting, m)
		c.Next()
	}
}
