package board

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// sseInterval matches the upstream announcement update cadence.
const sseInterval = 60 * time.Second

// SSEDepartures streams departure board updates via Server-Sent Events.
// Clients listen for "departures" events carrying the same JSON payload as
// the departures endpoint.
func (h *Handler) SSEDepartures(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		http.Error(w, "from and to are required", http.StatusBadRequest)
		return
	}
	count := queryCount(r, defaultDepartureCount)
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// Send initial data immediately
	h.sendDepartureEvent(ctx, w, flusher, from, to, count)

	ticker := time.NewTicker(sseInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.sendDepartureEvent(ctx, w, flusher, from, to, count)
		case <-ctx.Done():
			return
		}
	}
}

// sendDepartureEvent fetches the board and writes it as one SSE event. A
// failed fetch becomes an "error" event so the client can show staleness
// instead of silently dropping the stream.
func (h *Handler) sendDepartureEvent(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, from, to string, count int) {
	resp, err := h.fetchDepartures(ctx, from, to, count, "", false)
	if err != nil {
		h.logger.Warn("SSE departures fetch failed", "error", err)
		fmt.Fprintf(w, "event: error\ndata: %q\n\n", err.Error())
		flusher.Flush()
		return
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("encode SSE departures", "error", err)
		return
	}

	fmt.Fprintf(w, "event: departures\ndata: %s\n\n", payload)
	flusher.Flush()
}
