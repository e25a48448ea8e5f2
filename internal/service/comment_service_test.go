package service

import (
	"context"
	"testing"

	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stretchr/testify/require"
)

// Validation happens before any store access, so a service wired with a
// nil repository exercises the rejection paths safely.
func newCommentServiceForValidation(t *testing.T) *CommentService {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)
	return NewCommentService(nil, log)
}

func TestCommentServiceRejectsMalformedIDs(t *testing.T) {
	svc := newCommentServiceForValidation(t)
	ctx := context.Background()
	caller := primitive.NewObjectID()

	_, err := svc.ListComments(ctx, "not-an-id", pageOne())
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.AddComment(ctx, "not-an-id", caller, "nice video")
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.UpdateComment(ctx, "not-an-id", caller, "edited")
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	err = svc.DeleteComment(ctx, "not-an-id", caller)
	requireAppError(t, err, apperrors.ErrorTypeValidation)
}

func TestCommentServiceRejectsBlankContent(t *testing.T) {
	svc := newCommentServiceForValidation(t)
	ctx := context.Background()
	caller := primitive.NewObjectID()
	videoID := primitive.NewObjectID().Hex()
	commentID := primitive.NewObjectID().Hex()

	_, err := svc.AddComment(ctx, videoID, caller, "   ")
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.UpdateComment(ctx, commentID, caller, "")
	requireAppError(t, err, apperrors.ErrorTypeValidation)
}
