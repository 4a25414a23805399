package realtime

import (
	"sync"
	"time"
)

// Alert represents a parsed service alert.
type Alert struct {
	ID         string     `json:"id"`
	HeaderText string     `json:"header"`
	DescText   string     `json:"description,omitempty"`
	RouteIDs   []string   `json:"route_ids,omitempty"`
	StopIDs    []string   `json:"stop_ids,omitempty"`
	Effect     string     `json:"effect"` // "NO_SERVICE", "REDUCED_SERVICE", "DETOUR", etc.
	Cause      string     `json:"cause"`
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
}

// Active reports whether the alert is in effect at the given instant. An
// alert without an active period is always in effect.
func (a Alert) Active(at time.Time) bool {
	if a.Start != nil && at.Before(*a.Start) {
		return false
	}
	if a.End != nil && at.After(*a.End) {
		return false
	}
	return true
}

// Store holds the latest alerts snapshot in a thread-safe manner.
type Store struct {
	mu        sync.RWMutex
	alerts    []Alert
	updatedAt time.Time
}

// NewStore creates an empty alerts store.
func NewStore() *Store {
	return &Store{}
}

// SetAlerts replaces all alerts.
func (s *Store) SetAlerts(alerts []Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = alerts
	s.updatedAt = time.Now()
}

// Count returns the number of stored alerts.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.alerts)
}

// UpdatedAt returns when the snapshot was last replaced. The zero time means
// no fetch has completed yet.
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// AlertsForRoute returns active alerts affecting a specific route.
func (s *Store) AlertsForRoute(routeID string) []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	var result []Alert
	for _, a := range s.alerts {
		if !a.Active(now) {
			continue
		}
		for _, r := range a.RouteIDs {
			if r == routeID {
				result = append(result, a)
				break
			}
		}
	}
	return result
}

// AlertsForStop returns active alerts affecting a specific stop.
func (s *Store) AlertsForStop(stopID string) []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	var result []Alert
	for _, a := range s.alerts {
		if !a.Active(now) {
			continue
		}
		for _, sid := range a.StopIDs {
			if sid == stopID {
				result = append(result, a)
				break
			}
		}
	}
	return result
}

// AllAlerts returns all currently active alerts.
func (s *Store) AllAlerts() []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	result := make([]Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if a.Active(now) {
			result = append(result, a)
		}
	}
	return result
}
