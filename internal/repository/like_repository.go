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
)

type LikeRepository struct {
	db *database.MongoDB
}

func NewLikeRepository(db *database.MongoDB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) coll() *mongo.Collection {
	return r.db.Collection(database.CollLikes)
}

// toggleFilter addresses the unique (user, target) pair of a like
func toggleFilter(target domain.LikeTarget, targetID, userID primitive.ObjectID) bson.D {
	return bson.D{
		{Key: "likedBy", Value: userID},
		{Key: target.Field(), Value: targetID},
	}
}

// Toggle flips the like state for a (user, target) pair and reports the
// resulting state: true means the like now exists. The delete leg is a
// single atomic FindOneAndDelete; the insert leg is backed by the unique
// pair index, so a lost race surfaces as a duplicate key and is treated
// as already liked.
func (r *LikeRepository) Toggle(ctx context.Context, target domain.LikeTarget, targetID, userID primitive.ObjectID) (bool, error) {
	err := r.coll().FindOneAndDelete(ctx, toggleFilter(target, targetID, userID)).Err()
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return false, fmt.Errorf("failed to remove like: %w", err)
	}

	like := domain.Like{
		ID:        primitive.NewObjectID(),
		LikedBy:   userID,
		CreatedAt: time.Now().UTC(),
	}
	switch target {
	case domain.LikeTargetVideo:
		like.Video = &targetID
	case domain.LikeTargetComment:
		like.Comment = &targetID
	case domain.LikeTargetTweet:
		like.Tweet = &targetID
	}

	if _, err := r.coll().InsertOne(ctx, like); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// concurrent toggle inserted first; the pair is liked either way
			return true, nil
		}
		return false, fmt.Errorf("failed to create like: %w", err)
	}
	return true, nil
}

// buildLikedVideosPipeline flattens a user's video likes into one row per
// like-video join.
func buildLikedVideosPipeline(userID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "likedBy", Value: userID},
			{Key: "video", Value: bson.D{{Key: "$exists", Value: true}}},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.CollVideos},
			{Key: "localField", Value: "video"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "allVideos"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$allVideos"}}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: "$allVideos._id"},
			{Key: "title", Value: "$allVideos.title"},
			{Key: "owner", Value: "$allVideos.owner"},
			{Key: "videoFile", Value: "$allVideos.videoFile"},
			{Key: "createdAt", Value: "$allVideos.createdAt"},
		}}},
	}
}

// LikedVideos returns the videos a user likes; a like whose video is gone
// produces no row because $unwind drops empty joins.
func (r *LikeRepository) LikedVideos(ctx context.Context, userID primitive.ObjectID) ([]domain.LikedVideo, error) {
	cursor, err := r.coll().Aggregate(ctx, buildLikedVideosPipeline(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate liked videos: %w", err)
	}
	defer cursor.Close(ctx)

	videos := []domain.LikedVideo{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, fmt.Errorf("failed to decode liked videos: %w", err)
	}
	return videos, nil
}

// DeleteByVideo removes all likes pointing at a video (video delete cascade)
func (r *LikeRepository) DeleteByVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error) {
	res, err := r.coll().DeleteMany(ctx, bson.D{{Key: "video", Value: videoID}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete likes of video: %w", err)
	}
	return res.DeletedCount, nil
}
