package handler

import (
	"net/http"

	"vidtube/internal/domain"
	"vidtube/internal/middleware"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type CommentHandler struct {
	comments *service.CommentService
	log      *logger.Logger
}

func NewCommentHandler(comments *service.CommentService, log *logger.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, log: log}
}

// List handles GET /api/v1/comments/{videoId}
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoId")
	q := r.URL.Query()
	page := domain.ParsePage(q.Get("page"), q.Get("limit"))

	comments, err := h.comments.ListComments(r.Context(), videoID, page)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, comments, "comments fetched successfully")
}

// Add handles POST /api/v1/comments/{videoId}
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	videoID := chi.URLParam(r, "videoId")

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.log)
		return
	}

	comment, err := h.comments.AddComment(r.Context(), videoID, user.ID, req.Content)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusCreated, comment, "comment added successfully")
}

// Update handles PATCH /api/v1/comments/c/{commentId}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	commentID := chi.URLParam(r, "commentId")

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.log)
		return
	}

	comment, err := h.comments.UpdateComment(r.Context(), commentID, user.ID, req.Content)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, comment, "comment updated successfully")
}

// Delete handles DELETE /api/v1/comments/c/{commentId}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	commentID := chi.URLParam(r, "commentId")

	if err := h.comments.DeleteComment(r.Context(), commentID, user.ID); err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, nil, "comment deleted successfully")
}
