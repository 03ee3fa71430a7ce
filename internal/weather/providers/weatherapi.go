package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/skycastapp/skycast/internal/weather"
	"github.com/sony/gobreaker"
)

// WeatherAPIClient implements weather.Client against WeatherAPI.com.
// Every fetch is a single attempt behind a circuit breaker; the breaker
// sheds load when the provider is failing but never retries a call.
type WeatherAPIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

var _ weather.Client = (*WeatherAPIClient)(nil)

func NewWeatherAPIClient(client *http.Client, apiKey string) *WeatherAPIClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &WeatherAPIClient{
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1",
		client:  client,
		circuit: cb,
	}
}

// locationPayload is the provider's location block, shared by both
// endpoints.
type locationPayload struct {
	Name      string `json:"name"`
	Region    string `json:"region"`
	Country   string `json:"country"`
	TZID      string `json:"tz_id"`
	Localtime string `json:"localtime"`
}

func (l locationPayload) toInfo() weather.LocationInfo {
	return weather.LocationInfo{
		Name:      l.Name,
		Region:    l.Region,
		Country:   l.Country,
		TZID:      l.TZID,
		Localtime: l.Localtime,
	}
}

type conditionPayload struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// FetchCurrent queries current.json and normalizes the reading.
func (w *WeatherAPIClient) FetchCurrent(ctx context.Context, query string) (weather.CurrentConditions, error) {
	values := url.Values{}
	values.Set("key", w.apiKey)
	values.Set("q", query)
	values.Set("aqi", "no")

	body, err := w.get(ctx, w.baseURL+"/current.json?"+values.Encode())
	if err != nil {
		return weather.CurrentConditions{}, err
	}

	var payload struct {
		Location *locationPayload `json:"location"`
		Current  *struct {
			TempC       float64          `json:"temp_c"`
			Condition   conditionPayload `json:"condition"`
			LastUpdated string           `json:"last_updated"`
			Humidity    int              `json:"humidity"`
			WindKph     float64          `json:"wind_kph"`
			PressureMb  float64          `json:"pressure_mb"`
			VisKm       float64          `json:"vis_km"`
			FeelsLikeC  float64          `json:"feelslike_c"`
			Cloud       int              `json:"cloud"`
			UV          float64          `json:"uv"`
		} `json:"current"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.CurrentConditions{}, fmt.Errorf("%w: %v", weather.ErrMalformedUpstream, err)
	}
	if payload.Location == nil || payload.Current == nil {
		return weather.CurrentConditions{}, fmt.Errorf("%w: expected location and current data", weather.ErrMalformedUpstream)
	}

	cur := payload.Current
	return weather.CurrentConditions{
		Location:    payload.Location.toInfo(),
		TempC:       cur.TempC,
		Condition:   cur.Condition.Text,
		Icon:        iconURL(cur.Condition.Icon),
		LastUpdated: cur.LastUpdated,
		Humidity:    cur.Humidity,
		WindKph:     cur.WindKph,
		PressureMb:  cur.PressureMb,
		VisKm:       cur.VisKm,
		FeelsLikeC:  cur.FeelsLikeC,
		CloudPct:    cur.Cloud,
		UVIndex:     cur.UV,
	}, nil
}

// FetchForecast queries forecast.json for the given number of days and
// normalizes the per-day astro blocks and hourly series.
func (w *WeatherAPIClient) FetchForecast(ctx context.Context, query string, days int) (weather.ForecastBundle, error) {
	values := url.Values{}
	values.Set("key", w.apiKey)
	values.Set("q", query)
	values.Set("days", strconv.Itoa(days))
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	body, err := w.get(ctx, w.baseURL+"/forecast.json?"+values.Encode())
	if err != nil {
		return weather.ForecastBundle{}, err
	}

	var payload struct {
		Location *locationPayload `json:"location"`
		Forecast *struct {
			ForecastDay []struct {
				Date  string `json:"date"`
				Astro *struct {
					Sunrise string `json:"sunrise"`
					Sunset  string `json:"sunset"`
				} `json:"astro"`
				Hour []struct {
					Time      string           `json:"time"`
					TempC     float64          `json:"temp_c"`
					Condition conditionPayload `json:"condition"`
				} `json:"hour"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.ForecastBundle{}, fmt.Errorf("%w: %v", weather.ErrMalformedUpstream, err)
	}
	if payload.Location == nil || payload.Forecast == nil || payload.Forecast.ForecastDay == nil {
		return weather.ForecastBundle{}, fmt.Errorf("%w: expected forecastday array", weather.ErrMalformedUpstream)
	}

	bundle := weather.ForecastBundle{Location: payload.Location.toInfo()}
	for _, d := range payload.Forecast.ForecastDay {
		day := weather.ForecastDay{Date: d.Date}
		if d.Astro != nil {
			day.Astro = &weather.Astro{Sunrise: d.Astro.Sunrise, Sunset: d.Astro.Sunset}
		}
		for _, h := range d.Hour {
			day.Hours = append(day.Hours, weather.ForecastHour{
				Time:        h.Time,
				TempC:       h.TempC,
				Condition:   h.Condition.Text,
				Icon:        iconURL(h.Condition.Icon),
				Description: h.Condition.Text,
			})
		}
		bundle.Days = append(bundle.Days, day)
	}
	return bundle, nil
}

// get performs the single upstream request through the circuit breaker
// and returns the response body, or an UpstreamError mirroring the
// provider's status, message, and code.
func (w *WeatherAPIClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	result, err := w.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := w.client.Do(req)
		if err != nil {
			return nil, &weather.UpstreamError{
				Status:  0,
				Code:    "unknown_error",
				Message: "failed to reach weather API",
				Err:     err,
			}
		}
		defer resp.Body.Close()

		body, err := readBody(resp)
		if err != nil {
			return nil, &weather.UpstreamError{
				Status:  resp.StatusCode,
				Code:    "unknown_error",
				Message: "failed to read weather API response",
				Err:     err,
			}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, upstreamErrorFromBody(resp.StatusCode, body)
		}
		return body, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, &weather.UpstreamError{
				Status:  http.StatusServiceUnavailable,
				Code:    "circuit_open",
				Message: "weather provider temporarily unavailable",
				Err:     err,
			}
		}
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return body, nil
}

// upstreamErrorFromBody decodes WeatherAPI's error envelope
// ({"error":{"code":..,"message":..}}), falling back to generic values
// when the body is not in that shape.
func upstreamErrorFromBody(status int, body []byte) *weather.UpstreamError {
	var envelope struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	ue := &weather.UpstreamError{
		Status:  status,
		Code:    "unknown_error",
		Message: "failed to fetch weather data",
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error.Message != "" {
			ue.Message = envelope.Error.Message
		}
		if envelope.Error.Code != 0 {
			ue.Code = strconv.Itoa(envelope.Error.Code)
		}
	}
	return ue
}

func readBody(resp *http.Response) ([]byte, error) {
	// WeatherAPI payloads are small; cap reads at 1 MiB.
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}

func iconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return "https:" + icon
}
