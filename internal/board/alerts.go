package board

import (
	"net/http"
	"time"

	"trafikinfo/internal/realtime"
)

// AlertsResponse is the payload of the alerts endpoint.
type AlertsResponse struct {
	UpdatedAt *time.Time       `json:"updated_at,omitempty"`
	Alerts    []realtime.Alert `json:"alerts"`
}

// Alerts serves GET /api/alerts?route=&stop=. Without a filter the whole
// active snapshot is returned. A 503 means the fetcher is disabled or has
// not completed a fetch yet.
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	if h.rt == nil {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "alerts feed not configured"})
		return
	}

	var alerts []realtime.Alert
	switch {
	case r.URL.Query().Get("route") != "":
		alerts = h.rt.AlertsForRoute(r.URL.Query().Get("route"))
	case r.URL.Query().Get("stop") != "":
		alerts = h.rt.AlertsForStop(r.URL.Query().Get("stop"))
	default:
		alerts = h.rt.AllAlerts()
	}
	if alerts == nil {
		alerts = []realtime.Alert{}
	}

	resp := AlertsResponse{Alerts: alerts}
	if updated := h.rt.UpdatedAt(); !updated.IsZero() {
		resp.UpdatedAt = &updated
	}
	h.writeJSON(w, http.StatusOK, resp)
}
