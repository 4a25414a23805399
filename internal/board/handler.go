// Package board serves departure board data over JSON and SSE, backed by
// the Trafikverket API with a sqlite lookup cache and an in-memory response
// cache in front of it.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"trafikinfo/internal/config"
	"trafikinfo/internal/realtime"
	"trafikinfo/internal/storage"
	"trafikinfo/pkg/trafikverket"
)

// Station signatures and ferry route ids are stable identifiers; keep their
// resolutions for a day.
const lookupTTL = 24 * time.Hour

// Handler holds shared dependencies for all board endpoints.
type Handler struct {
	tv     *trafikverket.Client
	db     *storage.DB // nil disables the lookup cache
	rt     *realtime.Store
	cache  *Cache
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Handler.
func New(tv *trafikverket.Client, db *storage.DB, rt *realtime.Store, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		tv:     tv,
		db:     db,
		rt:     rt,
		cache:  NewCache(cfg.CacheTTL),
		cfg:    cfg,
		logger: logger,
	}
}

// Close stops the response cache's background sweeper.
func (h *Handler) Close() {
	h.cache.Close()
}

// resolveStation turns a station name into a StationInfo, preferring the
// sqlite cache over an API round trip. Station signatures are stable, so
// cached resolutions are kept for a day.
func (h *Handler) resolveStation(ctx context.Context, name string) (*trafikverket.StationInfo, error) {
	if h.db != nil {
		station, err := h.db.GetStation(ctx, name, lookupTTL)
		if err != nil {
			h.logger.Warn("station cache read failed", "error", err)
		} else if station != nil {
			return station, nil
		}
	}

	station, err := h.tv.GetTrainStation(ctx, name)
	if err != nil {
		return nil, err
	}
	if h.db != nil {
		if err := h.db.PutStation(ctx, name, station); err != nil {
			h.logger.Warn("station cache write failed", "error", err)
		}
	}
	return station, nil
}

// resolveFerryRoute turns a route name into a FerryRoute the same way.
func (h *Handler) resolveFerryRoute(ctx context.Context, name string) (*trafikverket.FerryRoute, error) {
	if h.db != nil {
		route, err := h.db.GetFerryRoute(ctx, name, lookupTTL)
		if err != nil {
			h.logger.Warn("ferry route cache read failed", "error", err)
		} else if route != nil {
			return route, nil
		}
	}

	route, err := h.tv.GetFerryRoute(ctx, name)
	if err != nil {
		return nil, err
	}
	if h.db != nil {
		if err := h.db.PutFerryRoute(ctx, name, route); err != nil {
			h.logger.Warn("ferry route cache write failed", "error", err)
		}
	}
	return route, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

// writeError maps client library errors onto HTTP statuses: not-found
// sentinels become 404, ambiguity 409, upstream failures 502.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case isNotFound(err):
		status = http.StatusNotFound
	case isAmbiguous(err):
		status = http.StatusConflict
	}
	var authErr *trafikverket.InvalidAuthError
	if errors.As(err, &authErr) {
		h.logger.Error("upstream rejected API key")
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func isNotFound(err error) bool {
	for _, sentinel := range []error{
		trafikverket.ErrNoTrainStation,
		trafikverket.ErrNoTrainAnnouncement,
		trafikverket.ErrNoFerryRoute,
		trafikverket.ErrNoFerryAnnouncement,
		trafikverket.ErrNoDeviation,
		trafikverket.ErrNoWeatherStation,
		trafikverket.ErrNoCamera,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func isAmbiguous(err error) bool {
	for _, sentinel := range []error{
		trafikverket.ErrMultipleTrainStations,
		trafikverket.ErrMultipleTrainAnnouncements,
		trafikverket.ErrMultipleFerryRoutes,
		trafikverket.ErrMultipleDeviations,
		trafikverket.ErrMultipleWeatherStations,
		trafikverket.ErrMultipleCameras,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
