package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vidtube/internal/domain"
	"vidtube/pkg/auth"
	"vidtube/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthSetup(t *testing.T) (*auth.TokenManager, *logger.Logger) {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)
	return auth.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour), log
}

func captureUser(into **domain.AuthUser) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*into = UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	tokens, log := testAuthSetup(t)
	userID := primitive.NewObjectID()
	token, err := tokens.MintAccessToken(userID.Hex(), "alice", "alice@example.com")
	require.NoError(t, err)

	var got *domain.AuthUser
	handler := Auth(tokens, log)(captureUser(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, userID, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestAuthAcceptsCookieToken(t *testing.T) {
	tokens, log := testAuthSetup(t)
	userID := primitive.NewObjectID()
	token, err := tokens.MintAccessToken(userID.Hex(), "alice", "alice@example.com")
	require.NoError(t, err)

	var got *domain.AuthUser
	handler := Auth(tokens, log)(captureUser(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, userID, got.ID)
}

func TestAuthRejections(t *testing.T) {
	tokens, log := testAuthSetup(t)
	handler := Auth(tokens, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for rejected requests")
	}))

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"no credentials", func(r *http.Request) {}},
		{"malformed header", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }},
		{"empty bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer ") }},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer not-a-jwt") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestOptionalAuthPassesAnonymous(t *testing.T) {
	tokens, log := testAuthSetup(t)

	var got *domain.AuthUser = &domain.AuthUser{} // sentinel, must become nil
	handler := OptionalAuth(tokens, log)(captureUser(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, got)
}

func TestOptionalAuthStillRejectsBadToken(t *testing.T) {
	tokens, log := testAuthSetup(t)
	handler := OptionalAuth(tokens, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a malformed token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	_, log := testAuthSetup(t)
	handler := RequestID(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotNil(t, r.Context().Value(RequestIDContextKey))
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
