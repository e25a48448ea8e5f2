package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsMapToStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantType   ErrorType
		wantStatus int
	}{
		{"validation", NewValidationError("bad input"), ErrorTypeValidation, http.StatusBadRequest},
		{"authentication", NewAuthenticationError("no token"), ErrorTypeAuthentication, http.StatusUnauthorized},
		{"authorization", NewAuthorizationError("not yours"), ErrorTypeAuthorization, http.StatusForbidden},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("duplicate"), ErrorTypeConflict, http.StatusConflict},
		{"internal", NewInternalError("boom", nil), ErrorTypeInternal, http.StatusInternalServerError},
		{"external", NewExternalError("upstream down", nil), ErrorTypeExternal, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
		})
	}
}

func TestAppErrorWrapping(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewInternalError("failed to fetch video", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to fetch video")
	assert.Contains(t, err.Error(), "connection reset")

	var appErr *AppError
	require.True(t, stderrors.As(fmt.Errorf("handler: %w", err), &appErr))
	assert.Equal(t, ErrorTypeInternal, appErr.Type)
}

func TestAppErrorWithoutCause(t *testing.T) {
	err := NewNotFoundError("video not found")
	assert.Nil(t, err.Unwrap())
	assert.Equal(t, "not_found: video not found", err.Error())
}
