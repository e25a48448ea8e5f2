package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vidtube/internal/domain"
	"vidtube/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PlaylistRepository struct {
	db *database.MongoDB
}

func NewPlaylistRepository(db *database.MongoDB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) coll() *mongo.Collection {
	return r.db.Collection(database.CollPlaylists)
}

// Create inserts a new playlist, filling in id and timestamps
func (r *PlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	now := time.Now().UTC()
	playlist.ID = primitive.NewObjectID()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now
	if playlist.Videos == nil {
		playlist.Videos = []primitive.ObjectID{}
	}

	if _, err := r.coll().InsertOne(ctx, playlist); err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	return nil
}

// ListByOwner returns all playlists of a user
func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Playlist, error) {
	cursor, err := r.coll().Find(ctx, bson.D{{Key: "owner", Value: ownerID}})
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer cursor.Close(ctx)

	playlists := []domain.Playlist{}
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, fmt.Errorf("failed to decode playlists: %w", err)
	}
	return playlists, nil
}

// GetByID returns a playlist, or nil when absent
func (r *PlaylistRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error) {
	var playlist domain.Playlist
	err := r.coll().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&playlist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	return &playlist, nil
}

// AddVideo pushes a video reference onto the playlist. Duplicates are not
// prevented; that rule is pending a product decision.
func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) (*domain.Playlist, error) {
	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "videos", Value: videoID}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
	}
	return r.findOneAndUpdate(ctx, bson.D{{Key: "_id", Value: playlistID}}, update)
}

// RemoveVideo pulls a video reference; removing an absent video is a
// silent no-op on the document.
func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) (*domain.Playlist, error) {
	update := bson.D{
		{Key: "$pull", Value: bson.D{{Key: "videos", Value: videoID}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
	}
	return r.findOneAndUpdate(ctx, bson.D{{Key: "_id", Value: playlistID}}, update)
}

// Update sets name and description on a playlist owned by the caller
func (r *PlaylistRepository) Update(ctx context.Context, playlistID, ownerID primitive.ObjectID, name, description string) (*domain.Playlist, error) {
	filter := bson.D{{Key: "_id", Value: playlistID}, {Key: "owner", Value: ownerID}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: name},
		{Key: "description", Value: description},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *PlaylistRepository) findOneAndUpdate(ctx context.Context, filter, update bson.D) (*domain.Playlist, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var playlist domain.Playlist
	err := r.coll().FindOneAndUpdate(ctx, filter, update, opts).Decode(&playlist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	return &playlist, nil
}

// Delete removes a playlist owned by the caller, reporting whether an
// owned document matched.
func (r *PlaylistRepository) Delete(ctx context.Context, playlistID, ownerID primitive.ObjectID) (bool, error) {
	filter := bson.D{{Key: "_id", Value: playlistID}, {Key: "owner", Value: ownerID}}
	res, err := r.coll().DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to delete playlist: %w", err)
	}
	return res.DeletedCount > 0, nil
}
