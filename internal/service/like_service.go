package service

import (
	"context"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LikeService struct {
	likes *repository.LikeRepository
	log   *logger.Logger
}

func NewLikeService(likes *repository.LikeRepository, log *logger.Logger) *LikeService {
	return &LikeService{likes: likes, log: log}
}

// Toggle flips the caller's like on a video, comment or tweet. Calling it
// twice returns to the original state.
func (s *LikeService) Toggle(ctx context.Context, target domain.LikeTarget, targetIDRaw string, userID primitive.ObjectID) (*domain.ToggleResult, error) {
	if !target.Valid() {
		return nil, apperrors.NewValidationError("invalid like target")
	}
	targetID, err := parseObjectID(targetIDRaw, target.Field()+" id")
	if err != nil {
		return nil, err
	}

	liked, err := s.likes.Toggle(ctx, target, targetID, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to toggle like", err)
	}

	s.log.WithFields(map[string]interface{}{
		"target": target.Field(),
		"liked":  liked,
	}).Debug("Like toggled")

	return &domain.ToggleResult{Toggled: liked}, nil
}

// LikedVideos returns the flattened list of videos the caller likes
func (s *LikeService) LikedVideos(ctx context.Context, userID primitive.ObjectID) ([]domain.LikedVideo, error) {
	videos, err := s.likes.LikedVideos(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list liked videos", err)
	}
	return videos, nil
}
