package weather

import "time"

// hourLayout matches provider hourly labels and localtime strings,
// e.g. "2025-05-01 14:00". Hours may be unpadded.
const hourLayout = "2006-01-02 15:04"

// windowSize is the number of hours a forecast response always carries.
const windowSize = 8

// SelectWindow picks exactly windowSize contiguous hours from an
// hourly series ordered chronologically, starting at the first entry
// whose time is at or after localNow (boundary hours are included).
//
// When localNow is past the last entry the window restarts at index 0,
// and when the chosen start leaves fewer than windowSize entries the
// window pads from the front of the series. The padded read is
// circular and may repeat early hours; that repetition is the intended
// behavior, not a defect. An empty series yields nil.
func SelectWindow(hours []ForecastHour, localNow string) []ForecastHour {
	if len(hours) == 0 {
		return nil
	}

	start := 0
	if probe, err := time.Parse(hourLayout, localNow); err == nil {
		start = -1
		for i, h := range hours {
			t, err := time.Parse(hourLayout, h.Time)
			if err != nil {
				continue
			}
			if !t.Before(probe) {
				start = i
				break
			}
		}
		if start < 0 {
			// Past the last available hour; wrap to the beginning.
			start = 0
		}
	}

	window := make([]ForecastHour, 0, windowSize)
	for i := start; i < len(hours) && len(window) < windowSize; i++ {
		window = append(window, hours[i])
	}
	for i := 0; len(window) < windowSize; i++ {
		window = append(window, hours[i%len(hours)])
	}
	return window
}
