package handler

import (
	"net/http"

	"vidtube/internal/middleware"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type TweetHandler struct {
	tweets *service.TweetService
	log    *logger.Logger
}

func NewTweetHandler(tweets *service.TweetService, log *logger.Logger) *TweetHandler {
	return &TweetHandler{tweets: tweets, log: log}
}

// Create handles POST /api/v1/tweets
func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.log)
		return
	}

	tweet, err := h.tweets.Create(r.Context(), user.ID, req.Content)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusCreated, tweet, "tweet created successfully")
}

// ListByUser handles GET /api/v1/tweets/user/{userId}
func (h *TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	tweets, err := h.tweets.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, tweets, "tweets fetched successfully")
}

// Update handles PATCH /api/v1/tweets/{tweetId}
func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	tweetID := chi.URLParam(r, "tweetId")

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.log)
		return
	}

	tweet, err := h.tweets.Update(r.Context(), tweetID, user.ID, req.Content)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, tweet, "tweet updated successfully")
}

// Delete handles DELETE /api/v1/tweets/{tweetId}
func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	tweetID := chi.URLParam(r, "tweetId")

	if err := h.tweets.Delete(r.Context(), tweetID, user.ID); err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, nil, "tweet deleted successfully")
}
