package board

import (
	"net/http"
	"time"

	"trafikinfo/pkg/trafikverket"
)

// FerryView is one ferry departure enriched with its derived state.
type FerryView struct {
	*trafikverket.FerryStop
	State trafikverket.FerryStopStatus `json:"state"`
}

// FerriesResponse is the payload of the ferries endpoint.
type FerriesResponse struct {
	FromHarbor  string      `json:"from_harbor"`
	ToHarbor    string      `json:"to_harbor,omitempty"`
	GeneratedAt time.Time   `json:"generated_at"`
	Departures  []FerryView `json:"departures"`
}

// Ferries serves GET /api/ferries?from=&to=&count=.
func (h *Handler) Ferries(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	if from == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "from is required"})
		return
	}
	to := r.URL.Query().Get("to")
	count := queryCount(r, defaultDepartureCount)

	key := Key("ferries", from, to, count)
	if cached, ok := h.cache.Get(key); ok {
		h.writeJSON(w, http.StatusOK, cached)
		return
	}

	stops, err := h.tv.GetNextFerryStops(r.Context(), from, to, time.Now(), count)
	if err != nil {
		h.writeError(w, err)
		return
	}

	views := make([]FerryView, 0, len(stops))
	for _, stop := range stops {
		views = append(views, FerryView{FerryStop: stop, State: stop.State()})
	}
	resp := &FerriesResponse{
		FromHarbor:  from,
		ToHarbor:    to,
		GeneratedAt: time.Now().UTC(),
		Departures:  views,
	}

	h.cache.Set(key, resp)
	h.writeJSON(w, http.StatusOK, resp)
}

// FerryRoute serves GET /api/ferry-route?name=, resolving a route through
// the lookup cache.
func (h *Handler) FerryRoute(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	route, err := h.resolveFerryRoute(r.Context(), name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, route)
}
