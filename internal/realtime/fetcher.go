package realtime

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// Fetcher polls a GTFS-RT service alerts feed, such as the Trafiklab
// national feed, and updates the store. Alerts supplement the Trafikverket
// deviation lookups with push-style disruption data.
type Fetcher struct {
	alertsURL string
	interval  time.Duration
	store     *Store
	client    *http.Client
	logger    *slog.Logger
}

// NewFetcher creates a service alerts fetcher.
func NewFetcher(alertsURL string, store *Store, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		alertsURL: alertsURL,
		interval:  60 * time.Second,
		store:     store,
		client:    &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
	}
}

// Start begins polling the alerts feed. Blocks until context is cancelled.
func (f *Fetcher) Start(ctx context.Context) {
	f.fetchAlerts(ctx)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			f.fetchAlerts(ctx)
		case <-ctx.Done():
			f.logger.Info("alerts fetcher stopped")
			return
		}
	}
}

func (f *Fetcher) fetchAlerts(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, "GET", f.alertsURL, nil)
	if err != nil {
		f.logger.Error("create alerts request", "error", err)
		return
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("fetch alerts failed", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Warn("alerts feed returned non-200", "status", resp.StatusCode)
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.logger.Error("read alerts body", "error", err)
		return
	}

	feed := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, feed); err != nil {
		f.logger.Error("parse alerts protobuf", "error", err)
		return
	}

	f.store.SetAlerts(ParseFeed(feed))
	f.logger.Info("service alerts updated", "count", f.store.Count())
}

// ParseFeed extracts service alerts from a GTFS-RT feed message.
func ParseFeed(feed *gtfs.FeedMessage) []Alert {
	var alerts []Alert
	for _, entity := range feed.GetEntity() {
		a := entity.GetAlert()
		if a == nil {
			continue
		}

		alert := Alert{
			ID:         entity.GetId(),
			HeaderText: translation(a.GetHeaderText()),
			DescText:   translation(a.GetDescriptionText()),
			Effect:     a.GetEffect().String(),
			Cause:      a.GetCause().String(),
		}

		if periods := a.GetActivePeriod(); len(periods) > 0 {
			if start := periods[0].GetStart(); start > 0 {
				t := time.Unix(int64(start), 0).UTC()
				alert.Start = &t
			}
			if end := periods[0].GetEnd(); end > 0 {
				t := time.Unix(int64(end), 0).UTC()
				alert.End = &t
			}
		}

		// Collect affected routes and stops (deduplicated)
		routeSet := make(map[string]bool)
		stopSet := make(map[string]bool)
		for _, ie := range a.GetInformedEntity() {
			if rid := ie.GetRouteId(); rid != "" && !routeSet[rid] {
				alert.RouteIDs = append(alert.RouteIDs, rid)
				routeSet[rid] = true
			}
			if sid := ie.GetStopId(); sid != "" && !stopSet[sid] {
				alert.StopIDs = append(alert.StopIDs, sid)
				stopSet[sid] = true
			}
		}

		alerts = append(alerts, alert)
	}
	return alerts
}

// translation picks the Swedish text when the feed carries one, otherwise
// the first non-empty translation.
func translation(ts *gtfs.TranslatedString) string {
	if ts == nil {
		return ""
	}
	for _, t := range ts.GetTranslation() {
		if t.GetLanguage() == "sv" && t.GetText() != "" {
			return t.GetText()
		}
	}
	for _, t := range ts.GetTranslation() {
		if text := t.GetText(); text != "" {
			return text
		}
	}
	return ""
}
