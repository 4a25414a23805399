package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"trafikinfo/internal/board"
	"trafikinfo/internal/config"
	"trafikinfo/internal/realtime"
	"trafikinfo/internal/storage"
	"trafikinfo/pkg/trafikverket"
	"trafikinfo/web"
)

// Server is the HTTP server for the departure board.
type Server struct {
	mux    *http.ServeMux
	board  *board.Handler
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Server with all routes registered.
func New(cfg *config.Config, tv *trafikverket.Client, db *storage.DB, rt *realtime.Store, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	h := board.New(tv, db, rt, cfg, logger)

	s := &Server{mux: mux, board: h, cfg: cfg, logger: logger}

	// Static files served from the embedded FS
	staticFS, _ := fs.Sub(web.StaticFiles, "static")
	fileServer := http.FileServer(http.FS(staticFS))
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticCacheHandler(fileServer)))
	mux.HandleFunc("GET /{$}", serveIndex)

	// Board API
	mux.HandleFunc("GET /api/departures", h.Departures)
	mux.HandleFunc("GET /api/ferries", h.Ferries)
	mux.HandleFunc("GET /api/ferry-route", h.FerryRoute)
	mux.HandleFunc("GET /api/stations", h.SearchStations)
	mux.HandleFunc("GET /api/weather", h.Weather)
	mux.HandleFunc("GET /api/camera", h.Camera)
	mux.HandleFunc("GET /api/deviation", h.Deviation)
	mux.HandleFunc("GET /api/alerts", h.Alerts)

	// SSE
	mux.HandleFunc("GET /sse/departures", h.SSEDepartures)

	mux.HandleFunc("GET /healthz", h.Health)

	return s
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	index, err := web.StaticFiles.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(index)
}

// Handler returns the middleware-wrapped root handler.
func (s *Server) Handler() http.Handler {
	return withMiddleware(s.mux, s.logger)
}

// ListenAndServe starts the HTTP server and shuts it down gracefully when
// the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	defer s.board.Close()

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
