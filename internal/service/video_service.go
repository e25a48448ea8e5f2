package service

import (
	"context"
	"encoding/json"
	"time"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"
	"vidtube/pkg/media"
	"vidtube/pkg/redis"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VideoService struct {
	videos   *repository.VideoRepository
	users    *repository.UserRepository
	comments *repository.CommentRepository
	likes    *repository.LikeRepository
	storage  media.Storage
	cache    *redis.Client // may be nil
	log      *logger.Logger
}

func NewVideoService(
	videos *repository.VideoRepository,
	users *repository.UserRepository,
	comments *repository.CommentRepository,
	likes *repository.LikeRepository,
	storage media.Storage,
	cache *redis.Client,
	log *logger.Logger,
) *VideoService {
	return &VideoService{
		videos:   videos,
		users:    users,
		comments: comments,
		likes:    likes,
		storage:  storage,
		cache:    cache,
		log:      log,
	}
}

// Feed returns one page of the video feed filtered by owner and/or
// free-text query. An empty page is NotFound.
func (s *VideoService) Feed(ctx context.Context, page domain.Page, query, sortBy, sortType, ownerIDRaw string) ([]domain.FeedVideo, error) {
	opts := domain.FeedOptions{
		Page:     page,
		Query:    query,
		SortBy:   sortBy,
		SortType: sortType,
	}
	if ownerIDRaw != "" {
		ownerID, err := parseObjectID(ownerIDRaw, "user id")
		if err != nil {
			return nil, err
		}
		opts.OwnerID = &ownerID
	}

	videos, err := s.videos.Feed(ctx, opts)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch videos", err)
	}
	if len(videos) == 0 {
		return nil, apperrors.NewNotFoundError("no videos found")
	}
	return videos, nil
}

// Publish uploads both assets and persists the video. A failed upload is
// treated as a missing required field.
func (s *VideoService) Publish(ctx context.Context, ownerID primitive.ObjectID, title, description, videoPath, thumbnailPath string) (*domain.Video, error) {
	if err := requireNonBlank(title, "title"); err != nil {
		return nil, err
	}
	if err := requireNonBlank(description, "description"); err != nil {
		return nil, err
	}
	if videoPath == "" {
		return nil, apperrors.NewValidationError("video file is required")
	}
	if thumbnailPath == "" {
		return nil, apperrors.NewValidationError("thumbnail is required")
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	if owner == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	videoAsset, err := s.storage.Upload(ctx, videoPath, media.KindVideo)
	if err != nil {
		s.log.WithError(err).Error("Video upload failed")
		return nil, apperrors.NewValidationError("video file is required")
	}
	thumbAsset, err := s.storage.Upload(ctx, thumbnailPath, media.KindImage)
	if err != nil {
		s.log.WithError(err).Error("Thumbnail upload failed")
		return nil, apperrors.NewValidationError("thumbnail is required")
	}

	video := &domain.Video{
		VideoFile:   videoAsset.URL,
		Thumbnail:   thumbAsset.URL,
		Title:       title,
		Description: description,
		Duration:    videoAsset.Duration,
		IsPublished: true,
		Owner:       owner.ID,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, apperrors.NewInternalError("failed to create video", err)
	}
	return video, nil
}

// Get returns a video with its like count. An authenticated view bumps
// the view counter and records watch history off the request path.
func (s *VideoService) Get(ctx context.Context, videoIDRaw string, viewer *domain.AuthUser) (*domain.VideoWithLikes, error) {
	videoID, err := parseObjectID(videoIDRaw, "video id")
	if err != nil {
		return nil, err
	}

	video := s.cachedVideo(ctx, videoIDRaw)
	if video == nil {
		video, err = s.videos.GetWithLikes(ctx, videoID)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to fetch video", err)
		}
		if video == nil {
			return nil, apperrors.NewNotFoundError("video not found")
		}
		s.cacheVideoAsync(videoIDRaw, video)
	}

	if viewer != nil {
		go s.recordView(videoID, viewer.ID, videoIDRaw)
	}
	return video, nil
}

// Update sets title/description (and optionally a new thumbnail) on the
// caller's own video.
func (s *VideoService) Update(ctx context.Context, videoIDRaw string, callerID primitive.ObjectID, title, description, thumbnailPath string) (*domain.Video, error) {
	videoID, err := parseObjectID(videoIDRaw, "video id")
	if err != nil {
		return nil, err
	}
	if err := requireNonBlank(title, "title"); err != nil {
		return nil, err
	}
	if err := requireNonBlank(description, "description"); err != nil {
		return nil, err
	}

	var oldThumbnail, newThumbnail string
	if thumbnailPath != "" {
		if previous, err := s.videos.GetByID(ctx, videoID); err == nil && previous != nil {
			oldThumbnail = previous.Thumbnail
		}
		asset, err := s.storage.Upload(ctx, thumbnailPath, media.KindImage)
		if err != nil {
			s.log.WithError(err).Error("Thumbnail upload failed")
			return nil, apperrors.NewValidationError("thumbnail is required")
		}
		newThumbnail = asset.URL
	}

	updated, err := s.videos.UpdateDetails(ctx, videoID, callerID, title, description, newThumbnail)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update video", err)
	}
	if updated == nil {
		return nil, s.videoMutationDenied(ctx, videoID)
	}

	if newThumbnail != "" && oldThumbnail != "" {
		s.deleteAssetAsync(oldThumbnail)
	}
	s.invalidateVideoCache(videoIDRaw)
	return updated, nil
}

// Delete removes the caller's own video, cascades to its comments and
// likes, and best-effort-deletes the stored assets.
func (s *VideoService) Delete(ctx context.Context, videoIDRaw string, callerID primitive.ObjectID) error {
	videoID, err := parseObjectID(videoIDRaw, "video id")
	if err != nil {
		return err
	}

	video, err := s.videos.Delete(ctx, videoID, callerID)
	if err != nil {
		return apperrors.NewInternalError("failed to delete video", err)
	}
	if video == nil {
		return s.videoMutationDenied(ctx, videoID)
	}

	removedComments, err := s.comments.DeleteByVideo(ctx, videoID)
	if err != nil {
		s.log.WithError(err).Error("Failed to cascade comment delete")
	}
	removedLikes, err := s.likes.DeleteByVideo(ctx, videoID)
	if err != nil {
		s.log.WithError(err).Error("Failed to cascade like delete")
	}
	s.log.WithFields(map[string]interface{}{
		"video_id":         videoIDRaw,
		"removed_comments": removedComments,
		"removed_likes":    removedLikes,
	}).Info("Video deleted")

	s.deleteAssetAsync(video.VideoFile)
	s.deleteAssetAsync(video.Thumbnail)
	s.invalidateVideoCache(videoIDRaw)
	return nil
}

// TogglePublish flips the publish flag on the caller's own video
func (s *VideoService) TogglePublish(ctx context.Context, videoIDRaw string, callerID primitive.ObjectID) (*domain.Video, error) {
	videoID, err := parseObjectID(videoIDRaw, "video id")
	if err != nil {
		return nil, err
	}

	video, err := s.videos.TogglePublish(ctx, videoID, callerID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to toggle publish status", err)
	}
	if video == nil {
		return nil, s.videoMutationDenied(ctx, videoID)
	}
	s.invalidateVideoCache(videoIDRaw)
	return video, nil
}

// videoMutationDenied distinguishes a missing video from one the caller
// does not own after an owner-scoped mutation matched nothing.
func (s *VideoService) videoMutationDenied(ctx context.Context, videoID primitive.ObjectID) error {
	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return apperrors.NewInternalError("failed to check video", err)
	}
	if !exists {
		return apperrors.NewNotFoundError("video not found")
	}
	return apperrors.NewAuthorizationError("only the video owner can modify it")
}

// recordView bumps views and watch history off the request path
func (s *VideoService) recordView(videoID, viewerID primitive.ObjectID, videoIDRaw string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.videos.IncrementViews(ctx, videoID); err != nil {
		s.log.WithError(err).Warn("Failed to increment views")
	}
	if err := s.users.AddWatchEntry(ctx, viewerID, videoID); err != nil {
		s.log.WithError(err).Warn("Failed to record watch history")
	}
	s.invalidateVideoCache(videoIDRaw)
}

func (s *VideoService) cachedVideo(ctx context.Context, videoIDRaw string) *domain.VideoWithLikes {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.KeyBuilder.KeyVideoByID(videoIDRaw))
	if err != nil || raw == "" {
		return nil
	}
	var video domain.VideoWithLikes
	if err := json.Unmarshal([]byte(raw), &video); err != nil {
		s.log.WithError(err).Warn("Video cache corrupted, falling back to database")
		return nil
	}
	return &video
}

func (s *VideoService) cacheVideoAsync(videoIDRaw string, video *domain.VideoWithLikes) {
	if s.cache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		payload, err := json.Marshal(video)
		if err != nil {
			return
		}
		if err := s.cache.Set(ctx, s.cache.KeyBuilder.KeyVideoByID(videoIDRaw), payload, redis.TTLVideoByID); err != nil {
			s.log.WithError(err).Warn("Failed to cache video")
		}
	}()
}

func (s *VideoService) invalidateVideoCache(videoIDRaw string) {
	if s.cache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.cache.Del(ctx, s.cache.KeyBuilder.KeyVideoByID(videoIDRaw)); err != nil {
			s.log.WithError(err).Warn("Failed to invalidate video cache")
		}
	}()
}

// deleteAssetAsync removes a stored asset without blocking the caller; a
// failed cleanup is logged and never fails the primary mutation.
func (s *VideoService) deleteAssetAsync(rawURL string) {
	if rawURL == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.storage.Delete(ctx, rawURL); err != nil {
			s.log.WithError(err).WithField("url", rawURL).Warn("Failed to delete stored asset")
		}
	}()
}
