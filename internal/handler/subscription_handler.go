package handler

import (
	"net/http"

	"vidtube/internal/middleware"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type SubscriptionHandler struct {
	subscriptions *service.SubscriptionService
	log           *logger.Logger
}

func NewSubscriptionHandler(subscriptions *service.SubscriptionService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions, log: log}
}

// Toggle handles POST /api/v1/subscriptions/c/{channelId}
func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	channelID := chi.URLParam(r, "channelId")

	result, err := h.subscriptions.Toggle(r.Context(), user.ID, channelID)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, result, "subscription toggled successfully")
}

// Subscribers handles GET /api/v1/subscriptions/c/{channelId}
func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID := chi.URLParam(r, "channelId")

	list, err := h.subscriptions.Subscribers(r.Context(), channelID)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, list, "subscribers fetched successfully")
}

// SubscribedChannels handles GET /api/v1/subscriptions/u/{subscriberId}
func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID := chi.URLParam(r, "subscriberId")

	list, err := h.subscriptions.SubscribedChannels(r.Context(), subscriberID)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, list, "subscribed channels fetched successfully")
}
