package handler

import (
	"net/http"

	"vidtube/internal/middleware"
	"vidtube/internal/service"
	"vidtube/pkg/logger"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
	log       *logger.Logger
}

func NewDashboardHandler(dashboard *service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, log: log}
}

// Stats handles GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	stats, err := h.dashboard.Stats(r.Context(), user.ID)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, stats, "channel stats fetched successfully")
}

// Videos handles GET /api/v1/dashboard/videos
func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	videos, err := h.dashboard.Videos(r.Context(), user.ID)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, videos, "channel videos fetched successfully")
}
