package board

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"trafikinfo/pkg/trafikverket"
)

const (
	defaultDepartureCount = 5
	maxDepartureCount     = 25
)

// DepartureView is one train departure enriched with its derived state.
type DepartureView struct {
	*trafikverket.TrainStop
	State        trafikverket.TrainStopStatus `json:"state"`
	DelayMinutes *int                         `json:"delay_minutes,omitempty"`
}

// DeparturesResponse is the payload of the departures endpoint.
type DeparturesResponse struct {
	From        *trafikverket.StationInfo `json:"from"`
	To          *trafikverket.StationInfo `json:"to"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Departures  []DepartureView           `json:"departures"`
}

func departureView(stop *trafikverket.TrainStop) DepartureView {
	view := DepartureView{TrainStop: stop, State: stop.State()}
	if delay, ok := stop.Delay(); ok {
		minutes := int(delay / time.Minute)
		view.DelayMinutes = &minutes
	}
	return view
}

// Departures serves GET /api/departures?from=&to=&count=&product=&exclude_canceled=.
func (h *Handler) Departures(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "from and to are required"})
		return
	}
	count := queryCount(r, defaultDepartureCount)
	product := r.URL.Query().Get("product")
	excludeCanceled := r.URL.Query().Get("exclude_canceled") == "true"

	key := Key("departures", from, to, count, product, excludeCanceled)
	if cached, ok := h.cache.Get(key); ok {
		h.writeJSON(w, http.StatusOK, cached)
		return
	}

	resp, err := h.fetchDepartures(r.Context(), from, to, count, product, excludeCanceled)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.cache.Set(key, resp)
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) fetchDepartures(ctx context.Context, from, to string, count int, product string, excludeCanceled bool) (*DeparturesResponse, error) {
	fromStation, err := h.resolveStation(ctx, from)
	if err != nil {
		return nil, err
	}
	toStation, err := h.resolveStation(ctx, to)
	if err != nil {
		return nil, err
	}

	stops, err := h.tv.GetNextTrainStops(ctx, fromStation, toStation, time.Now(), product, excludeCanceled, count)
	if err != nil {
		return nil, err
	}

	views := make([]DepartureView, 0, len(stops))
	for _, stop := range stops {
		views = append(views, departureView(stop))
	}
	return &DeparturesResponse{
		From:        fromStation,
		To:          toStation,
		GeneratedAt: time.Now().UTC(),
		Departures:  views,
	}, nil
}

func queryCount(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("count")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	if n > maxDepartureCount {
		return maxDepartureCount
	}
	return n
}
