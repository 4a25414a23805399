package trafikverket

import (
	"sync"
	"time"
)

var (
	stockholmOnce sync.Once
	stockholmLoc  *time.Location
	stockholmErr  error
)

// stockholm resolves Europe/Stockholm once and caches it process-wide.
func stockholm() (*time.Location, error) {
	stockholmOnce.Do(func() {
		stockholmLoc, stockholmErr = time.LoadLocation(SwedenTimezone)
	})
	return stockholmLoc, stockholmErr
}

// inZone re-attaches loc to the wall-clock fields of t. Wire timestamps
// already carry a numeric offset; this replaces the anonymous fixed zone
// with the named zone so downstream arithmetic is DST-aware. It does not
// convert the instant.
func inZone(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
	return &local
}
