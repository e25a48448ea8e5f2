package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vidtube/internal/domain"
	"vidtube/pkg/auth"
	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// UserContextKey is the key for the authenticated user in context
	UserContextKey ContextKey = "user"
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// accessTokenCookie is the fallback token source for browser clients
const accessTokenCookie = "accessToken"

// Auth rejects requests that do not carry a valid access token. The token
// is read from the Authorization header, falling back to the accessToken
// cookie.
func Auth(tokens *auth.TokenManager, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := extractToken(r)
			if err != nil {
				writeAuthError(w, err, log)
				return
			}

			user, err := resolveUser(tokens, raw)
			if err != nil {
				log.WithError(err).Debug("Token validation failed")
				writeAuthError(w, apperrors.NewAuthenticationError("invalid or expired token"), log)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves the caller's identity when a token is present but
// lets anonymous requests through. A malformed token is still rejected.
func OptionalAuth(tokens *auth.TokenManager, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := extractToken(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := resolveUser(tokens, raw)
			if err != nil {
				log.WithError(err).Debug("Token validation failed")
				writeAuthError(w, apperrors.NewAuthenticationError("invalid or expired token"), log)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the authenticated user from context, or nil for
// anonymous requests.
func UserFrom(ctx context.Context) *domain.AuthUser {
	user, _ := ctx.Value(UserContextKey).(*domain.AuthUser)
	return user
}

func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return "", apperrors.NewAuthenticationError("invalid authorization header format")
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return "", apperrors.NewAuthenticationError("token is required")
		}
		return token, nil
	}

	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", apperrors.NewAuthenticationError("unauthorized request")
}

func resolveUser(tokens *auth.TokenManager, raw string) (*domain.AuthUser, error) {
	claims, err := tokens.VerifyAccessToken(raw)
	if err != nil {
		return nil, err
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("token carries a malformed user id: %w", err)
	}
	return &domain.AuthUser{
		ID:       userID,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}

// RequestID tags each request with a unique id for log correlation
func RequestID(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := generateRequestID()

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			w.Header().Set("X-Request-ID", requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func generateRequestID() string {
	return fmt.Sprintf("%d-%d", time.Now().Unix(), time.Now().Nanosecond())
}

func writeAuthError(w http.ResponseWriter, err error, log *logger.Logger) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		appErr = apperrors.NewAuthenticationError("unauthorized request")
	}
	log.WithError(appErr).Debug("Request rejected")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  appErr.StatusCode,
		"message": appErr.Message,
	})
}
