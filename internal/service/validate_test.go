package service

import (
	"testing"

	"vidtube/internal/domain"
	apperrors "vidtube/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectID(t *testing.T) {
	id, err := parseObjectID("507f1f77bcf86cd799439011", "video id")
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", id.Hex())

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"too short", "abc"},
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseObjectID(tt.raw, "video id")
			requireAppError(t, err, apperrors.ErrorTypeValidation)
			assert.Equal(t, "invalid video id", err.Error()[len("validation: "):])
		})
	}
}

func TestRequireNonBlank(t *testing.T) {
	assert.NoError(t, requireNonBlank("hello", "title"))

	err := requireNonBlank("   ", "title")
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	err = requireNonBlank("", "title")
	requireAppError(t, err, apperrors.ErrorTypeValidation)
}

// pageOne is the default pagination window used across service tests
func pageOne() domain.Page {
	return domain.Page{Number: 1, Limit: 10}
}

// requireAppError asserts err is an AppError of the given type
func requireAppError(t *testing.T, err error, wantType apperrors.ErrorType) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok, "expected *AppError, got %T", err)
	assert.Equal(t, wantType, appErr.Type)
}
