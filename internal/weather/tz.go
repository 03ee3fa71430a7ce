package weather

import (
	"time"
	_ "time/tzdata" // zone lookups must work without host zoneinfo
)

// TZOffsetSeconds resolves an IANA zone identifier to its UTC offset in
// signed seconds as of now, not as of the instant being displayed.
// Around DST transitions this can be off by up to an hour for displayed
// instants; that skew is accepted.
//
// Any resolution failure yields 0. A zero offset keeps downstream time
// math harmless, where a wrong non-zero offset would not be.
func TZOffsetSeconds(tzID string) int {
	if tzID == "" {
		return 0
	}
	loc, err := time.LoadLocation(tzID)
	if err != nil {
		return 0
	}
	_, offset := time.Now().In(loc).Zone()
	return offset
}
