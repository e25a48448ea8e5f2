package handler

import (
	"net/http"

	"vidtube/internal/domain"
	"vidtube/internal/middleware"
	"vidtube/internal/service"
	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type VideoHandler struct {
	videos  *service.VideoService
	tempDir string
	log     *logger.Logger
}

func NewVideoHandler(videos *service.VideoService, tempDir string, log *logger.Logger) *VideoHandler {
	return &VideoHandler{videos: videos, tempDir: tempDir, log: log}
}

// Feed handles GET /api/v1/videos
func (h *VideoHandler) Feed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := domain.ParsePage(q.Get("page"), q.Get("limit"))

	videos, err := h.videos.Feed(r.Context(), page,
		q.Get("query"),
		q.Get("sortBy"),
		q.Get("sortType"),
		q.Get("userId"),
	)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, videos, "videos fetched successfully")
}

// Publish handles POST /api/v1/videos
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, apperrors.NewValidationError("invalid multipart form"), h.log)
		return
	}

	videoPath, err := stageUpload(r, "videoFile", h.tempDir)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	thumbnailPath, err := stageUpload(r, "thumbnail", h.tempDir)
	if err != nil {
		removeStaged(videoPath)
		respondError(w, err, h.log)
		return
	}
	defer removeStaged(videoPath, thumbnailPath)

	video, err := h.videos.Publish(r.Context(), user.ID,
		r.FormValue("title"),
		r.FormValue("description"),
		videoPath,
		thumbnailPath,
	)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusCreated, video, "video published successfully")
}

// Get handles GET /api/v1/videos/{videoId}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoId")
	viewer := middleware.UserFrom(r.Context())

	video, err := h.videos.Get(r.Context(), videoID, viewer)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, video, "video fetched successfully")
}

// Update handles PATCH /api/v1/videos/{videoId}
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	videoID := chi.URLParam(r, "videoId")

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, apperrors.NewValidationError("invalid multipart form"), h.log)
		return
	}
	thumbnailPath, err := stageUpload(r, "thumbnail", h.tempDir)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	defer removeStaged(thumbnailPath)

	video, err := h.videos.Update(r.Context(), videoID, user.ID,
		r.FormValue("title"),
		r.FormValue("description"),
		thumbnailPath,
	)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, video, "video updated successfully")
}

// Delete handles DELETE /api/v1/videos/{videoId}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	videoID := chi.URLParam(r, "videoId")

	if err := h.videos.Delete(r.Context(), videoID, user.ID); err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, nil, "video deleted successfully")
}

// TogglePublish handles PATCH /api/v1/videos/toggle/publish/{videoId}
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	videoID := chi.URLParam(r, "videoId")

	video, err := h.videos.TogglePublish(r.Context(), videoID, user.ID)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, video, "publish status toggled successfully")
}
