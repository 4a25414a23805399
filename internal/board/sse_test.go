package board

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trafikinfo/internal/config"
	"trafikinfo/internal/realtime"
	"trafikinfo/pkg/trafikverket"
)

// flushCanceler ends the stream after the first flushed event so the
// handler's loop exits instead of waiting for the next tick.
type flushCanceler struct {
	*httptest.ResponseRecorder
	cancel context.CancelFunc
}

func (f *flushCanceler) Flush() {
	f.ResponseRecorder.Flush()
	f.cancel()
}

func TestSSEDepartures(t *testing.T) {
	h := testHandler(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := httptest.NewRequest("GET", "/sse/departures?from=Stockholm&to=Göteborg", nil).WithContext(ctx)
	rec := &flushCanceler{ResponseRecorder: httptest.NewRecorder(), cancel: cancel}

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.SSEDepartures(rec, req)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not return after the stream was closed")
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content-type = %q, want text/event-stream", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("cache-control = %q, want no-cache", cc)
	}

	body := rec.Body.String()
	if !strings.HasPrefix(body, "event: departures\ndata: ") {
		t.Fatalf("first frame = %q, want a departures event", body)
	}
	payload := strings.TrimPrefix(body, "event: departures\ndata: ")
	payload = strings.SplitN(payload, "\n\n", 2)[0]

	var resp DeparturesResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		t.Fatalf("decode event payload: %v", err)
	}
	if resp.From == nil || resp.From.Name != "Stockholm" {
		t.Errorf("From = %+v", resp.From)
	}
	if len(resp.Departures) != 1 || resp.Departures[0].ID != "a1" {
		t.Errorf("Departures = %+v, want the single announcement", resp.Departures)
	}
}

func TestSSEDepartures_MissingParams(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest("GET", "/sse/departures?from=Stockholm", nil)
	rec := httptest.NewRecorder()
	h.SSEDepartures(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSSEDepartures_UpstreamFailureBecomesErrorEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tv := trafikverket.NewClientWithHTTP("test-key", srv.URL, srv.Client(), logger)
	h := New(tv, nil, realtime.NewStore(), &config.Config{CacheTTL: time.Minute}, logger)
	t.Cleanup(h.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := httptest.NewRequest("GET", "/sse/departures?from=Stockholm&to=Göteborg", nil).WithContext(ctx)
	rec := &flushCanceler{ResponseRecorder: httptest.NewRecorder(), cancel: cancel}

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.SSEDepartures(rec, req)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not return after the stream was closed")
	}

	if body := rec.Body.String(); !strings.HasPrefix(body, "event: error\ndata: ") {
		t.Errorf("first frame = %q, want an error event", body)
	}
}
