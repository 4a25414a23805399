package board

import (
	"net/http"
)

// Weather serves GET /api/weather?station=.
func (h *Handler) Weather(w http.ResponseWriter, r *http.Request) {
	station := r.URL.Query().Get("station")
	if station == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "station is required"})
		return
	}

	key := Key("weather", station)
	if cached, ok := h.cache.Get(key); ok {
		h.writeJSON(w, http.StatusOK, cached)
		return
	}

	info, err := h.tv.GetWeatherStation(r.Context(), station)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.cache.Set(key, info)
	h.writeJSON(w, http.StatusOK, info)
}

// Camera serves GET /api/camera?name=.
func (h *Handler) Camera(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	key := Key("camera", name)
	if cached, ok := h.cache.Get(key); ok {
		h.writeJSON(w, http.StatusOK, cached)
		return
	}

	info, err := h.tv.GetCamera(r.Context(), name)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.cache.Set(key, info)
	h.writeJSON(w, http.StatusOK, info)
}

// Deviation serves GET /api/deviation?id=.
func (h *Handler) Deviation(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}

	key := Key("deviation", id)
	if cached, ok := h.cache.Get(key); ok {
		h.writeJSON(w, http.StatusOK, cached)
		return
	}

	info, err := h.tv.GetDeviation(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.cache.Set(key, info)
	h.writeJSON(w, http.StatusOK, info)
}

// SearchStations serves GET /api/stations?q=.
func (h *Handler) SearchStations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "q is required"})
		return
	}

	stations, err := h.tv.SearchTrainStations(r.Context(), q)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stations)
}
