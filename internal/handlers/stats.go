package handlers

import (
	"net/http"

	"github.com/delciomanico/Monanji/internal/services"
	"go.uber.org/zap"
)

// StatsHandler serves the investigator/admin dashboard.
type StatsHandler struct {
	statsSvc *services.StatsService
	logger   *zap.SugaredLogger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(ss *services.StatsService, logger *zap.SugaredLogger) *StatsHandler {
	return &StatsHandler{statsSvc: ss, logger: logger}
}

// Dashboard handles GET /api/v1/stats/dashboard
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsSvc.Dashboard(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, stats)
}
