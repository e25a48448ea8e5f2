package handler

import (
	"context"
	"net/http"
	"time"

	"vidtube/pkg/database"
	"vidtube/pkg/logger"
	"vidtube/pkg/redis"
)

// HealthHandler reports service and dependency health
type HealthHandler struct {
	db    *database.MongoDB
	cache *redis.Client // may be nil
	log   *logger.Logger
}

func NewHealthHandler(db *database.MongoDB, cache *redis.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, log: log}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{}

	if err := h.db.Health(ctx); err != nil {
		h.log.WithError(err).Error("Database health check failed")
		checks["database"] = "unhealthy"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "healthy"
	}

	if h.cache != nil {
		if err := h.cache.Health(ctx); err != nil {
			h.log.WithError(err).Warn("Cache health check failed")
			checks["cache"] = "unhealthy"
		} else {
			checks["cache"] = "healthy"
		}
	} else {
		checks["cache"] = "disabled"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	respondJSON(w, status, HealthResponse{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Service:   "vidtube",
		Checks:    checks,
	}, "health check completed")
}
