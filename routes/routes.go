package routes

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/timebridge/timebridge-server/controllers"
	"github.com/timebridge/timebridge-server/middleware"
)

// WebDir holds the static HTML shells.
var WebDir = "./web"

func page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.File(filepath.Join(WebDir, name))
	}
}

func SetupRoutes(r *gin.Engine) {
	// HTML shells
	r.GET("/", page("index.html"))
	r.GET("/dashboard", page("dashboard.html"))
	r.GET("/booking", page("booking.html"))
	r.GET("/schedule/:slug", page("booking.html")) // booking shell for any schedule link

	api := r.Group("/api")
	{
		api.GET("/health", controllers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.POST("/google/login", controllers.GoogleLoginHandler)
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthJWT())
		{
			protected.GET("/me", controllers.Me)
			protected.GET("/meetings", controllers.ListMeetings)
			protected.POST("/meetings", controllers.CreateMeeting)
			protected.PUT("/meetings/:id", middleware.CheckMeetingOwner(), controllers.UpdateMeeting)
			protected.GET("/meetings/summary", controllers.MeetingSummary)
		}

		// public booking surface
		api.GET("/schedule/:slug/slots", controllers.GetDaySlots)
		api.POST("/schedule/:slug/bookings", middleware.RateLimitBooking(), controllers.CreateBooking)

		// provider proxies
		api.GET("/weather/current", controllers.CurrentWeather)
		api.GET("/weather/forecast", controllers.WeatherForecast)
		api.GET("/autocomplete", controllers.Autocomplete)
		api.POST("/send-meeting-confirmation", controllers.SendMeetingConfirmation)
	}

	r.POST("/generate", controllers.Generate)
	r.POST("/send-email", controllers.SendEmail)

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "API endpoint not found"}})
			return
		}
		// direct requests for a page shell, e.g. /dashboard.html
		if name := strings.TrimPrefix(c.Request.URL.Path, "/"); strings.HasSuffix(name, ".html") && !strings.Contains(name, "/") {
			c.File(filepath.Join(WebDir, name))
			return
		}
		c.String(http.StatusNotFound, "File not found")
	})
}
