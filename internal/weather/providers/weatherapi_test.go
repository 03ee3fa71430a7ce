package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skycastapp/skycast/internal/weather"
)

const currentFixture = `{
	"location": {
		"name": "London",
		"region": "City of London, Greater London",
		"country": "United Kingdom",
		"tz_id": "Europe/London",
		"localtime": "2025-05-01 14:30"
	},
	"current": {
		"temp_c": 12.5,
		"condition": {"text": "Partly cloudy", "icon": "//cdn.weatherapi.com/day/116.png"},
		"last_updated": "2025-05-01 14:15",
		"humidity": 71,
		"wind_kph": 15.1,
		"pressure_mb": 1012,
		"vis_km": 10,
		"feelslike_c": 11.2,
		"cloud": 50,
		"uv": 3
	}
}`

const forecastFixture = `{
	"location": {
		"name": "London",
		"tz_id": "Europe/London",
		"localtime": "2025-05-01 14:30"
	},
	"forecast": {
		"forecastday": [
			{
				"date": "2025-05-01",
				"astro": {"sunrise": "05:30 AM", "sunset": "08:25 PM"},
				"hour": [
					{"time": "2025-05-01 00:00", "temp_c": 8.1, "condition": {"text": "Clear", "icon": "//cdn.weatherapi.com/night/113.png"}},
					{"time": "2025-05-01 01:00", "temp_c": 7.9, "condition": {"text": "Clear", "icon": "//cdn.weatherapi.com/night/113.png"}}
				]
			}
		]
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *WeatherAPIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewWeatherAPIClient(srv.Client(), "test-key")
	c.baseURL = srv.URL
	return c
}

func TestFetchCurrent(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(currentFixture))
	})

	cur, err := c.FetchCurrent(context.Background(), "London")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/current.json" {
		t.Errorf("expected /current.json, got %q", gotPath)
	}
	if gotQuery != "London" {
		t.Errorf("expected q=London, got %q", gotQuery)
	}
	if cur.Location.Name != "London" || cur.Location.TZID != "Europe/London" {
		t.Errorf("location not parsed: %+v", cur.Location)
	}
	if cur.TempC != 12.5 || cur.Humidity != 71 || cur.Condition != "Partly cloudy" {
		t.Errorf("measurements not parsed: %+v", cur)
	}
	if cur.Icon != "https://cdn.weatherapi.com/day/116.png" {
		t.Errorf("expected https-prefixed icon, got %q", cur.Icon)
	}
}

func TestFetchForecast(t *testing.T) {
	var gotDays string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotDays = r.URL.Query().Get("days")
		w.Write([]byte(forecastFixture))
	})

	bundle, err := c.FetchForecast(context.Background(), "London", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotDays != "3" {
		t.Errorf("expected days=3, got %q", gotDays)
	}
	if len(bundle.Days) != 1 {
		t.Fatalf("expected one forecast day, got %d", len(bundle.Days))
	}
	day := bundle.Days[0]
	if day.Astro == nil || day.Astro.Sunrise != "05:30 AM" {
		t.Errorf("astro block not parsed: %+v", day.Astro)
	}
	if len(day.Hours) != 2 || day.Hours[0].Time != "2025-05-01 00:00" {
		t.Errorf("hourly series not parsed: %+v", day.Hours)
	}
	if day.Hours[0].Description != "Clear" {
		t.Errorf("expected description mirrored from condition, got %q", day.Hours[0].Description)
	}
}

func TestFetchCurrentUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
	})

	_, err := c.FetchCurrent(context.Background(), "Nowhereville")
	var ue *weather.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", ue.Status)
	}
	if ue.Code != "1006" {
		t.Errorf("expected code 1006, got %q", ue.Code)
	}
	if ue.Message != "No matching location found." {
		t.Errorf("expected provider message, got %q", ue.Message)
	}
}

func TestFetchCurrentErrorBodyFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("not json"))
	})

	_, err := c.FetchCurrent(context.Background(), "London")
	var ue *weather.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != http.StatusBadGateway || ue.Code != "unknown_error" {
		t.Errorf("expected generic mapping, got %+v", ue)
	}
}

func TestFetchCurrentMissingFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"location":{"name":"London"}}`))
	})

	_, err := c.FetchCurrent(context.Background(), "London")
	if !errors.Is(err, weather.ErrMalformedUpstream) {
		t.Fatalf("expected ErrMalformedUpstream, got %v", err)
	}
}

func TestFetchForecastMissingDays(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"location":{"name":"London"},"forecast":{}}`))
	})

	_, err := c.FetchForecast(context.Background(), "London", 3)
	if !errors.Is(err, weather.ErrMalformedUpstream) {
		t.Fatalf("expected ErrMalformedUpstream, got %v", err)
	}
}

func TestFetchCurrentNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewWeatherAPIClient(srv.Client(), "test-key")
	c.baseURL = srv.URL
	srv.Close()

	_, err := c.FetchCurrent(context.Background(), "London")
	var ue *weather.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != 0 || ue.Code != "unknown_error" {
		t.Errorf("expected transport-failure mapping, got %+v", ue)
	}
}
