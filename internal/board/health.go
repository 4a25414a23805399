package board

import "net/http"

// Health serves GET /healthz. It reports degraded when the lookup cache
// database is unreachable but never fails the check on upstream state; the
// API being briefly unreachable shouldn't restart the process.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			status["status"] = "degraded"
			status["db"] = err.Error()
		}
	}
	h.writeJSON(w, http.StatusOK, status)
}
