package weather

import (
	"strings"
	"time"
)

// astroLayout matches WeatherAPI astro strings such as "06:05 AM".
const astroLayout = "2006-01-02 03:04 PM"

// Astro is a forecast day's astronomical block as reported upstream,
// in local wall-clock form.
type Astro struct {
	Sunrise string
	Sunset  string
}

// SunTimes combines the location's local calendar date with the astro
// wall-clock strings into epoch seconds. The combined timestamp is read
// as-is, with no zone conversion; clients pair it with the UTC offset.
// Either value is nil when its string is absent or unparsable, and a
// nil astro block yields nil for both. This path never errors.
func SunTimes(localDate string, astro *Astro) (sunrise, sunset *int64) {
	if astro == nil || localDate == "" {
		return nil, nil
	}
	return wallClockEpoch(localDate, astro.Sunrise), wallClockEpoch(localDate, astro.Sunset)
}

func wallClockEpoch(date, clock string) *int64 {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return nil
	}
	t, err := time.Parse(astroLayout, date+" "+clock)
	if err != nil {
		return nil
	}
	epoch := t.Unix()
	return &epoch
}

// LocalDate extracts the calendar-date part of a provider localtime
// string ("2006-01-02 15:04").
func LocalDate(localtime string) string {
	if i := strings.IndexByte(localtime, ' '); i >= 0 {
		return localtime[:i]
	}
	return localtime
}
