package service

import (
	"context"
	"testing"

	"vidtube/internal/domain"
	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stretchr/testify/require"
)

func TestLikeServiceToggleValidation(t *testing.T) {
	log, err := logger.New("error")
	require.NoError(t, err)
	svc := NewLikeService(nil, log)

	ctx := context.Background()
	userID := primitive.NewObjectID()
	targetID := primitive.NewObjectID().Hex()

	tests := []struct {
		name     string
		target   domain.LikeTarget
		targetID string
	}{
		{"unknown target kind", domain.LikeTarget("playlist"), targetID},
		{"empty target kind", domain.LikeTarget(""), targetID},
		{"malformed target id", domain.LikeTargetVideo, "not-an-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Toggle(ctx, tt.target, tt.targetID, userID)
			requireAppError(t, err, apperrors.ErrorTypeValidation)
		})
	}
}
