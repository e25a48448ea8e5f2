package service

import (
	"context"
	"testing"

	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stretchr/testify/require"
)

func newPlaylistServiceForValidation(t *testing.T) *PlaylistService {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)
	return NewPlaylistService(nil, log)
}

func TestPlaylistServiceCreateValidation(t *testing.T) {
	svc := newPlaylistServiceForValidation(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	_, err := svc.Create(ctx, owner, "", "all my favorites")
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.Create(ctx, owner, "favorites", "  ")
	requireAppError(t, err, apperrors.ErrorTypeValidation)
}

func TestPlaylistServiceRejectsMalformedIDs(t *testing.T) {
	svc := newPlaylistServiceForValidation(t)
	ctx := context.Background()
	caller := primitive.NewObjectID()
	validID := primitive.NewObjectID().Hex()

	_, err := svc.ListByUser(ctx, "not-an-id")
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.Get(ctx, "not-an-id")
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	// Both identifiers are validated before any write
	_, err = svc.AddVideo(ctx, "not-an-id", validID)
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.AddVideo(ctx, validID, "not-an-id")
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.RemoveVideo(ctx, validID, "not-an-id")
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.Update(ctx, "not-an-id", caller, "name", "desc")
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	err = svc.Delete(ctx, "not-an-id", caller)
	requireAppError(t, err, apperrors.ErrorTypeValidation)
}
