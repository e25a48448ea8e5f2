package service

import (
	"context"
	"testing"

	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stretchr/testify/require"
)

func newTweetServiceForValidation(t *testing.T) *TweetService {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)
	return NewTweetService(nil, nil, log)
}

func TestTweetServiceCreateRejectsBlankContent(t *testing.T) {
	svc := newTweetServiceForValidation(t)

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), "  ")
	requireAppError(t, err, apperrors.ErrorTypeValidation)
}

func TestTweetServiceRejectsMalformedIDs(t *testing.T) {
	svc := newTweetServiceForValidation(t)
	ctx := context.Background()
	caller := primitive.NewObjectID()

	_, err := svc.ListByUser(ctx, "not-an-id")
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.Update(ctx, "not-an-id", caller, "new text")
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	err = svc.Delete(ctx, "not-an-id", caller)
	requireAppError(t, err, apperrors.ErrorTypeValidation)
}
