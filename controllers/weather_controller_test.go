package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
)

func newWeatherRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/weather/current", CurrentWeather)
	r.GET("/api/weather/forecast", WeatherForecast)
	return r
}

func withWeatherUpstream(t *testing.T, handler http.HandlerFunc) func() {
	t.Helper()
	upstream := httptest.NewServer(handler)
	origURL := weatherBaseURL
	weatherBaseURL = upstream.URL
	t.Setenv("WEATHER_API_KEY", "test-key")
	return func() {
		weatherBaseURL = origURL
		upstream.Close()
	}
}

func TestCurrentWeatherPassthrough(t *testing.T) {
	var gotQuery url.Values
	cleanup := withWeatherUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		if r.URL.Path != "/current.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"location":{"name":"New York"},"current":{"temp_c":22}}`))
	})
	defer cleanup()

	r := newWeatherRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/weather/current?q=10001", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotQuery.Get("q") != "10001" || gotQuery.Get("key") != "test-key" || gotQuery.Get("aqi") != "no" {
		t.Errorf("upstream query = %v", gotQuery)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the upstream JSON: %v", err)
	}
	if _, ok := body["current"]; !ok {
		t.Errorf("upstream body not passed through: %s", resp.Body.String())
	}
}

func TestCurrentWeatherIPFallback(t *testing.T) {
	var gotQ string
	cleanup := withWeatherUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		w.Write([]byte(`{}`))
	})
	defer cleanup()

	r := newWeatherRouter()

	// valid forwarded IP becomes the location query
	req := httptest.NewRequest(http.MethodGet, "/api/weather/current", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	if gotQ != "198.51.100.1" {
		t.Errorf("q = %q, want the caller IP", gotQ)
	}

	// unparseable address falls back to provider-side detection
	req = httptest.NewRequest(http.MethodGet, "/api/weather/current", nil)
	req.Header.Set("X-Forwarded-For", "not-an-ip")
	r.ServeHTTP(httptest.NewRecorder(), req)
	if gotQ != "auto:ip" {
		t.Errorf("q = %q, want auto:ip", gotQ)
	}
}

func TestWeatherForecastDays(t *testing.T) {
	var gotQuery url.Values
	cleanup := withWeatherUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		if r.URL.Path != "/forecast.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"forecast":{"forecastday":[]}}`))
	})
	defer cleanup()

	r := newWeatherRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/weather/forecast?q=Paris&days=3", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotQuery.Get("days") != "3" || gotQuery.Get("alerts") != "no" {
		t.Errorf("upstream query = %v", gotQuery)
	}

	// days defaults to 1
	req = httptest.NewRequest(http.MethodGet, "/api/weather/forecast?q=Paris", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)
	if gotQuery.Get("days") != "1" {
		t.Errorf("days = %q, want 1", gotQuery.Get("days"))
	}
}

func TestCurrentWeatherUpstreamError(t *testing.T) {
	cleanup := withWeatherUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
	})
	defer cleanup()

	r := newWeatherRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/weather/current?q=nowhere", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("upstream status must pass through, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
		} `json:"error"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body.Error.Message != "No matching location found." || body.Error.Code != 1006 {
		t.Errorf("body = %+v", body)
	}
}
