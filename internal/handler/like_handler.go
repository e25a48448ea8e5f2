package handler

import (
	"net/http"

	"vidtube/internal/domain"
	"vidtube/internal/middleware"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type LikeHandler struct {
	likes *service.LikeService
	log   *logger.Logger
}

func NewLikeHandler(likes *service.LikeService, log *logger.Logger) *LikeHandler {
	return &LikeHandler{likes: likes, log: log}
}

// ToggleVideo handles POST /api/v1/likes/toggle/v/{videoId}
func (h *LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, domain.LikeTargetVideo, chi.URLParam(r, "videoId"))
}

// ToggleComment handles POST /api/v1/likes/toggle/c/{commentId}
func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, domain.LikeTargetComment, chi.URLParam(r, "commentId"))
}

// ToggleTweet handles POST /api/v1/likes/toggle/t/{tweetId}
func (h *LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, domain.LikeTargetTweet, chi.URLParam(r, "tweetId"))
}

// LikedVideos handles GET /api/v1/likes/videos
func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	videos, err := h.likes.LikedVideos(r.Context(), user.ID)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, videos, "liked videos fetched successfully")
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, target domain.LikeTarget, targetID string) {
	user := middleware.UserFrom(r.Context())

	result, err := h.likes.Toggle(r.Context(), target, targetID, user.ID)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, result, "like toggled successfully")
}
