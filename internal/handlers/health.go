package handlers

import (
	"net/http"
	"time"

	"github.com/delciomanico/Monanji/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const appVersion = "1.0.0"

var startTime = time.Now()

// HealthHandler provides liveness and readiness probes.
type HealthHandler struct {
	db     *pgxpool.Pool
	rdb    *redis.Client // nil when Redis is not configured
	logger *zap.SugaredLogger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *pgxpool.Pool, rdb *redis.Client, logger *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb, logger: logger}
}

// Check handles GET /api/v1/health (liveness probe)
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthStatus{
		Status:  "ok",
		Version: appVersion,
		Uptime:  time.Since(startTime).String(),
	})
}

// Ready handles GET /api/v1/health/ready (readiness probe). The database
// is required; Redis is reported but never fails readiness since both of
// its consumers degrade to in-process fallbacks.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatus{
		Status:   "ready",
		Version:  appVersion,
		Uptime:   time.Since(startTime).String(),
		Database: "connected",
	}

	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Warnw("Readiness probe failed", "error", err)
		status.Status = "not ready"
		status.Database = "disconnected"
		respondJSON(w, http.StatusServiceUnavailable, status)
		return
	}

	if h.rdb != nil {
		status.Cache = "connected"
		if err := h.rdb.Ping(r.Context()).Err(); err != nil {
			status.Cache = "unavailable"
		}
	}

	respondJSON(w, http.StatusOK, status)
}
