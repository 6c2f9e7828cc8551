package controllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/timebridge/timebridge-server/config"
	"github.com/timebridge/timebridge-server/utils"
)

// Overridable in tests.
var (
	weatherBaseURL = "http://api.weatherapi.com/v1"
	weatherClient  = http.DefaultClient
)

// upstreamError is the shape weatherapi.com returns on failure.
type upstreamError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// weatherLocation resolves the lookup target: an explicit ?q= wins,
// otherwise the caller's IP, otherwise the provider's own IP detection.
func weatherLocation(c *gin.Context) string {
	if q := c.Query("q"); q != "" {
		return q
	}
	if ip := utils.ClientIP(c.Request); utils.IsValidIP(ip) {
		return ip
	}
	return "auto:ip"
}

func proxyWeather(c *gin.Context, endpoint string, params url.Values, fallbackMsg string) {
	params.Set("key", os.Getenv(config.EnvWeatherKey))

	resp, err := weatherClient.Get(weatherBaseURL + endpoint + "?" + params.Encode())
	if err != nil {
		log.Printf("weather upstream error: %v", err)
		meetingError(c, http.StatusInternalServerError, fallbackMsg)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		meetingError(c, http.StatusInternalServerError, fallbackMsg)
		return
	}

	if resp.StatusCode != http.StatusOK {
		var ue upstreamError
		msg := fallbackMsg
		if json.Unmarshal(body, &ue) == nil && ue.Error.Message != "" {
			msg = ue.Error.Message
		}
		log.Printf("weather upstream %d: %s", resp.StatusCode, msg)
		c.JSON(resp.StatusCode, gin.H{"error": gin.H{"message": msg, "code": ue.Error.Code}})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// CurrentWeather proxies GET /api/weather/current to the provider.
func CurrentWeather(c *gin.Context) {
	params := url.Values{}
	params.Set("q", weatherLocation(c))
	params.Set("aqi", "no")
	proxyWeather(c, "/current.json", params, "Error fetching current weather data")
}

// WeatherForecast proxies GET /api/weather/forecast to the provider.
func WeatherForecast(c *gin.Context) {
	params := url.Values{}
	params.Set("q", weatherLocation(c))
	params.Set("days", c.DefaultQuery("days", "1"))
	params.Set("aqi", "no")
	params.Set("alerts", "no")
	proxyWeather(c, "/forecast.json", params, "Error fetching weather forecast")
}
