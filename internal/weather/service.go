package weather

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"
)

const (
	// astroDays is the forecast depth needed for today's astro block.
	astroDays = 1
	// outlookDays covers the hourly window even right before midnight.
	outlookDays = 3
)

// SearchRecorder receives the resolved city after a successful lookup.
type SearchRecorder interface {
	RecordSearch(ctx context.Context, city string) error
}

// Service orchestrates upstream fetches into composed responses.
type Service struct {
	client   Client
	recorder SearchRecorder
}

// NewService creates a new Service.
func NewService(client Client, recorder SearchRecorder) *Service {
	return &Service{
		client:   client,
		recorder: recorder,
	}
}

// CurrentByQuery fetches current conditions for a free-text place name
// or formatted coordinate pair and composes a snapshot.
//
// The current-conditions fetch and the astro forecast fetch are
// independent and run concurrently. A failed astro fetch only degrades
// sunrise/sunset to null; a failed current fetch fails the request.
// The resolved city is recorded to history off the response path.
func (s *Service) CurrentByQuery(ctx context.Context, query string) (WeatherSnapshot, error) {
	var (
		wg         sync.WaitGroup
		current    CurrentConditions
		currentErr error
		bundle     ForecastBundle
		bundleErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentErr = s.client.FetchCurrent(ctx, query)
	}()
	go func() {
		defer wg.Done()
		bundle, bundleErr = s.client.FetchForecast(ctx, query, astroDays)
	}()
	wg.Wait()

	if currentErr != nil {
		return WeatherSnapshot{}, currentErr
	}

	s.recordAsync(current.Location.Name)

	var sunrise, sunset *int64
	if bundleErr != nil {
		log.Printf("sunrise/sunset fetch failed for %q: %v", query, bundleErr)
	} else if len(bundle.Days) > 0 {
		sunrise, sunset = SunTimes(LocalDate(bundle.Location.Localtime), bundle.Days[0].Astro)
	}

	return WeatherSnapshot{
		City:        current.Location.Name,
		Region:      current.Location.Region,
		Country:     current.Location.Country,
		TempC:       current.TempC,
		Description: current.Condition,
		Icon:        current.Icon,
		LastUpdated: current.LastUpdated,
		Humidity:    current.Humidity,
		WindKph:     current.WindKph,
		PressureMb:  current.PressureMb,
		VisKm:       current.VisKm,
		FeelsLikeC:  current.FeelsLikeC,
		CloudPct:    current.CloudPct,
		UVIndex:     current.UVIndex,
		Sunrise:     sunrise,
		Sunset:      sunset,
		TZOffsetSec: TZOffsetSeconds(current.Location.TZID),
	}, nil
}

// HourlyOutlook fetches a multi-day hourly series and selects the
// 8-hour window starting at the location's current local time.
func (s *Service) HourlyOutlook(ctx context.Context, query string) ([]ForecastHour, error) {
	bundle, err := s.client.FetchForecast(ctx, query, outlookDays)
	if err != nil {
		return nil, err
	}

	window := SelectWindow(bundle.Hourly(), bundle.Location.Localtime)
	if window == nil {
		window = []ForecastHour{}
	}
	return window, nil
}

// recordAsync upserts the city into history without blocking the
// response path. Write failures are logged and dropped.
func (s *Service) recordAsync(city string) {
	if s.recorder == nil || strings.TrimSpace(city) == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.recorder.RecordSearch(ctx, city); err != nil {
			log.Printf("failed to update search history for %q: %v", city, err)
		}
	}()
}
