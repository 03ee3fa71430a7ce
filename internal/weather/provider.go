package weather

import "context"

// LocationInfo identifies the place a provider resolved a query to.
type LocationInfo struct {
	Name      string
	Region    string
	Country   string
	TZID      string
	Localtime string // local wall-clock, "2006-01-02 15:04"
}

// CurrentConditions is a provider's normalized current-weather reading.
type CurrentConditions struct {
	Location    LocationInfo
	TempC       float64
	Condition   string
	Icon        string
	LastUpdated string
	Humidity    int
	WindKph     float64
	PressureMb  float64
	VisKm       float64
	FeelsLikeC  float64
	CloudPct    int
	UVIndex     float64
}

// ForecastDay is one forecast day: its astro block plus hourly series.
type ForecastDay struct {
	Date  string
	Astro *Astro
	Hours []ForecastHour
}

// ForecastBundle is a provider's normalized multi-day forecast.
type ForecastBundle struct {
	Location LocationInfo
	Days     []ForecastDay
}

// Hourly flattens the per-day series into one chronological sequence.
func (f ForecastBundle) Hourly() []ForecastHour {
	var hours []ForecastHour
	for _, d := range f.Days {
		hours = append(hours, d.Hours...)
	}
	return hours
}

// Client abstracts the upstream weather provider. Query is either a
// free-text place name or a formatted "lat,lon" pair. Each call issues
// exactly one upstream request; no retries are performed.
type Client interface {
	FetchCurrent(ctx context.Context, query string) (CurrentConditions, error)
	FetchForecast(ctx context.Context, query string, days int) (ForecastBundle, error)
}
