package handler

import (
	"context"
	"net/http"

	"vidtube/internal/domain"
	"vidtube/internal/middleware"
	"vidtube/internal/service"
	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserHandler struct {
	users   *service.UserService
	tempDir string
	secure  bool
	log     *logger.Logger
}

func NewUserHandler(users *service.UserService, tempDir string, secureCookies bool, log *logger.Logger) *UserHandler {
	return &UserHandler{users: users, tempDir: tempDir, secure: secureCookies, log: log}
}

// Register handles POST /api/v1/users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, apperrors.NewValidationError("invalid multipart form"), h.log)
		return
	}

	avatarPath, err := stageUpload(r, "avatar", h.tempDir)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	coverPath, err := stageUpload(r, "coverImage", h.tempDir)
	if err != nil {
		removeStaged(avatarPath)
		respondError(w, err, h.log)
		return
	}
	defer removeStaged(avatarPath, coverPath)

	user, err := h.users.Register(r.Context(),
		r.FormValue("fullName"),
		r.FormValue("email"),
		r.FormValue("username"),
		r.FormValue("password"),
		avatarPath,
		coverPath,
	)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusCreated, user, "user registered successfully")
}

// Login handles POST /api/v1/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.log)
		return
	}

	user, pair, err := h.users.Login(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(w, err, h.log)
		return
	}

	h.setAuthCookies(w, pair.AccessToken, pair.RefreshToken)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "user logged in successfully")
}

// Logout handles POST /api/v1/users/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	if err := h.users.Logout(r.Context(), user.ID); err != nil {
		respondError(w, err, h.log)
		return
	}

	h.clearAuthCookies(w)
	respondJSON(w, http.StatusOK, nil, "user logged out successfully")
}

// RefreshToken handles POST /api/v1/users/refresh-token. The token comes
// from the request body or the refreshToken cookie.
func (h *UserHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	// Body is optional for cookie-based clients
	_ = decodeBody(r, &req)

	raw := req.RefreshToken
	if raw == "" {
		if cookie, err := r.Cookie("refreshToken"); err == nil {
			raw = cookie.Value
		}
	}

	pair, err := h.users.RefreshTokens(r.Context(), raw)
	if err != nil {
		respondError(w, err, h.log)
		return
	}

	h.setAuthCookies(w, pair.AccessToken, pair.RefreshToken)
	respondJSON(w, http.StatusOK, pair, "access token refreshed")
}

// ChangePassword handles POST /api/v1/users/change-password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.log)
		return
	}

	if err := h.users.ChangePassword(r.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, nil, "password changed successfully")
}

// CurrentUser handles GET /api/v1/users/current-user
func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	current, err := h.users.Current(r.Context(), user.ID)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, current, "current user fetched successfully")
}

// UpdateAccount handles PATCH /api/v1/users/update-account
func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.log)
		return
	}

	updated, err := h.users.UpdateAccount(r.Context(), user.ID, req.FullName, req.Email, req.Username)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, updated, "account updated successfully")
}

// UpdateAvatar handles PATCH /api/v1/users/avatar
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", "avatar updated successfully", h.users.UpdateAvatar)
}

// UpdateCoverImage handles PATCH /api/v1/users/cover-image
func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage", "cover image updated successfully", h.users.UpdateCoverImage)
}

// ChannelProfile handles GET /api/v1/users/c/{username}
func (h *UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	viewer := middleware.UserFrom(r.Context())

	profile, err := h.users.ChannelProfile(r.Context(), username, viewer)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, profile, "channel profile fetched successfully")
}

// WatchHistory handles GET /api/v1/users/history
func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	history, err := h.users.WatchHistory(r.Context(), user.ID)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, history, "watch history fetched successfully")
}

func (h *UserHandler) updateImage(
	w http.ResponseWriter,
	r *http.Request,
	field, message string,
	update func(context.Context, primitive.ObjectID, string) (*domain.User, error),
) {
	user := middleware.UserFrom(r.Context())

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, apperrors.NewValidationError("invalid multipart form"), h.log)
		return
	}
	localPath, err := stageUpload(r, field, h.tempDir)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	defer removeStaged(localPath)

	updated, err := update(r.Context(), user.ID, localPath)
	if err != nil {
		respondError(w, err, h.log)
		return
	}
	respondJSON(w, http.StatusOK, updated, message)
}

func (h *UserHandler) setAuthCookies(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    access,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    refresh,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *UserHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   h.secure,
			MaxAge:   -1,
		})
	}
}
