package handlers

import (
	"net/http"
	"strconv"

	"github.com/lenskeep/camvault-be/internal/services"
)

// StatsHandler serves aggregate statistics over the collection.
type StatsHandler struct {
	service services.CameraServiceProvider
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service services.CameraServiceProvider) *StatsHandler {
	return &StatsHandler{service: service}
}

// Brands handles GET /stats/brands.
func (h *StatsHandler) Brands(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.StatsByBrand()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Types handles GET /stats/types.
func (h *StatsHandler) Types(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.StatsByType()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Decades handles GET /stats/decades.
func (h *StatsHandler) Decades(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.StatsByDecade()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Value handles GET /stats/value.
func (h *StatsHandler) Value(w http.ResponseWriter, r *http.Request) {
	stat, err := h.service.TotalValue()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stat)
}

// ValueHistory handles GET /stats/value/history.
func (h *StatsHandler) ValueHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	points, err := h.service.ValuationHistory(limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}
