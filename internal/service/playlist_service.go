package service

import (
	"context"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlaylistService struct {
	playlists *repository.PlaylistRepository
	log       *logger.Logger
}

func NewPlaylistService(playlists *repository.PlaylistRepository, log *logger.Logger) *PlaylistService {
	return &PlaylistService{playlists: playlists, log: log}
}

// Create makes an empty playlist owned by the caller
func (s *PlaylistService) Create(ctx context.Context, ownerID primitive.ObjectID, name, description string) (*domain.Playlist, error) {
	if err := requireNonBlank(name, "name"); err != nil {
		return nil, err
	}
	if err := requireNonBlank(description, "description"); err != nil {
		return nil, err
	}

	playlist := &domain.Playlist{
		Name:        name,
		Description: description,
		Owner:       ownerID,
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, apperrors.NewInternalError("failed to create playlist", err)
	}
	return playlist, nil
}

// ListByUser returns every playlist owned by the given user
func (s *PlaylistService) ListByUser(ctx context.Context, userIDRaw string) ([]domain.Playlist, error) {
	userID, err := parseObjectID(userIDRaw, "user id")
	if err != nil {
		return nil, err
	}
	playlists, err := s.playlists.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list playlists", err)
	}
	return playlists, nil
}

// Get returns a single playlist by id
func (s *PlaylistService) Get(ctx context.Context, playlistIDRaw string) (*domain.Playlist, error) {
	playlistID, err := parseObjectID(playlistIDRaw, "playlist id")
	if err != nil {
		return nil, err
	}
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get playlist", err)
	}
	if playlist == nil {
		return nil, apperrors.NewNotFoundError("playlist not found")
	}
	return playlist, nil
}

// AddVideo appends a video reference to a playlist. Duplicate entries are
// allowed; deduplication is pending a product decision.
func (s *PlaylistService) AddVideo(ctx context.Context, playlistIDRaw, videoIDRaw string) (*domain.Playlist, error) {
	playlistID, err := parseObjectID(playlistIDRaw, "playlist id")
	if err != nil {
		return nil, err
	}
	videoID, err := parseObjectID(videoIDRaw, "video id")
	if err != nil {
		return nil, err
	}

	playlist, err := s.playlists.AddVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to add video to playlist", err)
	}
	if playlist == nil {
		return nil, apperrors.NewInternalError("failed to add video to playlist", nil)
	}
	return playlist, nil
}

// RemoveVideo pulls every occurrence of a video from a playlist
func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistIDRaw, videoIDRaw string) (*domain.Playlist, error) {
	playlistID, err := parseObjectID(playlistIDRaw, "playlist id")
	if err != nil {
		return nil, err
	}
	videoID, err := parseObjectID(videoIDRaw, "video id")
	if err != nil {
		return nil, err
	}

	playlist, err := s.playlists.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to remove video from playlist", err)
	}
	if playlist == nil {
		return nil, apperrors.NewInternalError("failed to remove video from playlist", nil)
	}
	return playlist, nil
}

// Update renames a playlist; only the owner may update
func (s *PlaylistService) Update(ctx context.Context, playlistIDRaw string, callerID primitive.ObjectID, name, description string) (*domain.Playlist, error) {
	playlistID, err := parseObjectID(playlistIDRaw, "playlist id")
	if err != nil {
		return nil, err
	}
	if err := requireNonBlank(name, "name"); err != nil {
		return nil, err
	}
	if err := requireNonBlank(description, "description"); err != nil {
		return nil, err
	}

	playlist, err := s.playlists.Update(ctx, playlistID, callerID, name, description)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update playlist", err)
	}
	if playlist == nil {
		return nil, s.playlistMutationDenied(ctx, playlistID)
	}
	return playlist, nil
}

// Delete removes a playlist; only the owner may delete
func (s *PlaylistService) Delete(ctx context.Context, playlistIDRaw string, callerID primitive.ObjectID) error {
	playlistID, err := parseObjectID(playlistIDRaw, "playlist id")
	if err != nil {
		return err
	}

	deleted, err := s.playlists.Delete(ctx, playlistID, callerID)
	if err != nil {
		return apperrors.NewInternalError("failed to delete playlist", err)
	}
	if !deleted {
		return s.playlistMutationDenied(ctx, playlistID)
	}
	return nil
}

func (s *PlaylistService) playlistMutationDenied(ctx context.Context, playlistID primitive.ObjectID) error {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return apperrors.NewInternalError("failed to check playlist", err)
	}
	if playlist == nil {
		return apperrors.NewNotFoundError("playlist not found")
	}
	return apperrors.NewAuthorizationError("only the playlist owner can modify it")
}
