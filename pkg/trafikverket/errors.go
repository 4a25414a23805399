package trafikverket

import (
	"errors"
	"fmt"
)

// ErrMultipleNodes reports that a path expected to match at most one XML
// node matched several. It indicates a field-path/schema mismatch, not a
// transient fault.
var ErrMultipleNodes = errors.New("found multiple nodes, only 0 or 1 allowed")

// InvalidAuthError is returned when the API rejects the authentication key
// (HTTP 401 with an embedded error payload).
type InvalidAuthError struct {
	Source  string
	Message string
	Status  int
}

func (e *InvalidAuthError) Error() string {
	return fmt.Sprintf("invalid authentication: source: %s, message: %s, status: %d",
		e.Source, e.Message, e.Status)
}

// APIError is returned for any other embedded error payload. The caller
// decides whether a retry makes sense.
type APIError struct {
	Source  string
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: source: %s, message: %s, status: %d",
		e.Source, e.Message, e.Status)
}

// Lookup sentinels returned by the resource methods when the match count
// doesn't fit the request. The core request path never returns these.
var (
	ErrNoTrainStation             = errors.New("could not find a station with the specified name")
	ErrMultipleTrainStations      = errors.New("found multiple stations with the specified name")
	ErrNoTrainAnnouncement        = errors.New("no train announcement found")
	ErrMultipleTrainAnnouncements = errors.New("multiple train announcements found")
	ErrNoFerryRoute               = errors.New("could not find a ferry route with the specified name")
	ErrMultipleFerryRoutes        = errors.New("found multiple ferry routes with the specified name")
	ErrNoFerryAnnouncement        = errors.New("no ferry announcement found")
	ErrNoDeviation                = errors.New("no deviation found")
	ErrMultipleDeviations         = errors.New("multiple deviations found")
	ErrNoWeatherStation           = errors.New("could not find a weather station with the specified name")
	ErrMultipleWeatherStations    = errors.New("found multiple weather stations with the specified name")
	ErrNoCamera                   = errors.New("could not find a camera with the specified name")
	ErrMultipleCameras            = errors.New("found multiple cameras with the specified name")
)

// missingFieldError reports a field the server is contractually required to
// include but didn't.
func missingFieldError(resource, field string) error {
	return fmt.Errorf("%s: missing required field %s", resource, field)
}
