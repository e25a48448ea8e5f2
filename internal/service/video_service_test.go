package service

import (
	"context"
	"testing"

	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stretchr/testify/require"
)

func newVideoServiceForValidation(t *testing.T) *VideoService {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)
	return NewVideoService(nil, nil, nil, nil, nil, nil, log)
}

func TestVideoServiceFeedRejectsMalformedOwner(t *testing.T) {
	svc := newVideoServiceForValidation(t)

	_, err := svc.Feed(context.Background(), pageOne(), "", "", "", "not-an-id")
	requireAppError(t, err, apperrors.ErrorTypeValidation)
}

func TestVideoServicePublishValidation(t *testing.T) {
	svc := newVideoServiceForValidation(t)
	ctx := context.Background()
	ownerID := primitive.NewObjectID()

	tests := []struct {
		name          string
		title         string
		description   string
		videoPath     string
		thumbnailPath string
	}{
		{"blank title", " ", "desc", "/tmp/v.mp4", "/tmp/t.jpg"},
		{"blank description", "title", "", "/tmp/v.mp4", "/tmp/t.jpg"},
		{"missing video file", "title", "desc", "", "/tmp/t.jpg"},
		{"missing thumbnail", "title", "desc", "/tmp/v.mp4", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Publish(ctx, ownerID, tt.title, tt.description, tt.videoPath, tt.thumbnailPath)
			requireAppError(t, err, apperrors.ErrorTypeValidation)
		})
	}
}

func TestVideoServiceMutationsRejectMalformedID(t *testing.T) {
	svc := newVideoServiceForValidation(t)
	ctx := context.Background()
	caller := primitive.NewObjectID()

	_, err := svc.Get(ctx, "not-an-id", nil)
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.Update(ctx, "not-an-id", caller, "title", "desc", "")
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	err = svc.Delete(ctx, "not-an-id", caller)
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.TogglePublish(ctx, "not-an-id", caller)
	requireAppError(t, err, apperrors.ErrorTypeValidation)
}
