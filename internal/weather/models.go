package weather

// WeatherSnapshot is the normalized current-conditions view returned to
// clients. It is composed fresh for every request and never persisted.
// Sunrise and Sunset are epoch seconds and may be null when the astro
// lookup failed or was unavailable.
type WeatherSnapshot struct {
	City        string  `json:"city"`
	Region      string  `json:"region"`
	Country     string  `json:"country"`
	TempC       float64 `json:"temp"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	LastUpdated string  `json:"last_updated"`
	Humidity    int     `json:"humidity"`
	WindKph     float64 `json:"wind"`
	PressureMb  float64 `json:"pressure"`
	VisKm       float64 `json:"visibility"`
	FeelsLikeC  float64 `json:"feels_like"`
	CloudPct    int     `json:"clouds"`
	UVIndex     float64 `json:"uvi"`
	Sunrise     *int64  `json:"sunrise"`
	Sunset      *int64  `json:"sunset"`
	// TZOffsetSec is the location's UTC offset in signed seconds,
	// evaluated at response time.
	TZOffsetSec int `json:"timezone"`
}

// ForecastHour is one hour of a forecast series. Time is the provider's
// local wall-clock label ("2006-01-02 15:04") in the location's own
// timezone, without UTC annotation.
type ForecastHour struct {
	Time        string  `json:"time"`
	TempC       float64 `json:"temp_c"`
	Condition   string  `json:"condition"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}
