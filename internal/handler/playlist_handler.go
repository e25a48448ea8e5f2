package handler

import (
	"net/http"

	"vidtube/internal/middleware"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type PlaylistHandler struct {
	playlists *service.PlaylistService
	log       *logger.Logger
}

func NewPlaylistHandler(playlists *service.PlaylistService, log *logger.Logger) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists, log: log}
}

// Create handles POST /api/v1/playlist
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.log)
		return
	}

	playlist, err := h.playlists.Create(r.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusCreated, playlist, "playlist created successfully")
}

// ListByUser handles GET /api/v1/playlist/user/{userId}
func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	playlists, err := h.playlists.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, playlists, "playlists fetched successfully")
}

// Get handles GET /api/v1/playlist/{playlistId}
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID := chi.URLParam(r, "playlistId")

	playlist, err := h.playlists.Get(r.Context(), playlistID)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, playlist, "playlist fetched successfully")
}

// AddVideo handles PATCH /api/v1/playlist/add/{videoId}/{playlistId}
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	playlistID := chi.URLParam(r, "playlistId")
	videoID := chi.URLParam(r, "videoId")

	playlist, err := h.playlists.AddVideo(r.Context(), playlistID, videoID)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, playlist, "video added to playlist")
}

// RemoveVideo handles PATCH /api/v1/playlist/remove/{videoId}/{playlistId}
func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	playlistID := chi.URLParam(r, "playlistId")
	videoID := chi.URLParam(r, "videoId")

	playlist, err := h.playlists.RemoveVideo(r.Context(), playlistID, videoID)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, playlist, "video removed from playlist")
}

// Update handles PATCH /api/v1/playlist/{playlistId}
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	playlistID := chi.URLParam(r, "playlistId")

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.log)
		return
	}

	playlist, err := h.playlists.Update(r.Context(), playlistID, user.ID, req.Name, req.Description)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, playlist, "playlist updated successfully")
}

// Delete handles DELETE /api/v1/playlist/{playlistId}
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	playlistID := chi.URLParam(r, "playlistId")

	if err := h.playlists.Delete(r.Context(), playlistID, user.ID); err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, nil, "playlist deleted successfully")
}
