package repository

import (
	"context"
	"fmt"

	"vidtube/internal/domain"
	"vidtube/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DashboardRepository struct {
	db *database.MongoDB
}

func NewDashboardRepository(db *database.MongoDB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// buildChannelStatsPipeline aggregates a channel's totals in one pass:
// join owned videos (each annotated with its like count), join the
// subscriber relation, then sum the per-video counts.
func buildChannelStatsPipeline(userID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: userID}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.CollVideos},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "owner"},
			{Key: "as", Value: "allVideos"},
			{Key: "pipeline", Value: bson.A{
				lookupLikesStage("video"),
				likesCountStage(),
			}},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.CollSubscriptions},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "channel"},
			{Key: "as", Value: "subscribers"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "totalVideos", Value: bson.D{{Key: "$size", Value: "$allVideos"}}},
			{Key: "totalSubscribers", Value: bson.D{{Key: "$size", Value: "$subscribers"}}},
			{Key: "totalLikes", Value: bson.D{{Key: "$sum", Value: "$allVideos.likesCount"}}},
			{Key: "totalViews", Value: bson.D{{Key: "$sum", Value: "$allVideos.views"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "totalVideos", Value: 1},
			{Key: "totalSubscribers", Value: 1},
			{Key: "totalLikes", Value: 1},
			{Key: "totalViews", Value: 1},
			{Key: "username", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "coverImage", Value: 1},
			{Key: "fullName", Value: 1},
		}}},
	}
}

// Stats returns the aggregated channel dashboard, or nil when the user
// does not resolve.
func (r *DashboardRepository) Stats(ctx context.Context, userID primitive.ObjectID) (*domain.ChannelStats, error) {
	cursor, err := r.db.Collection(database.CollUsers).Aggregate(ctx, buildChannelStatsPipeline(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate channel stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := []domain.ChannelStats{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode channel stats: %w", err)
	}
	if len(stats) == 0 {
		return nil, nil
	}
	return &stats[0], nil
}

// buildChannelVideosPipeline lists a channel's own videos with like
// counts, raw likes projected away.
func buildChannelVideosPipeline(ownerID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "owner", Value: ownerID}}}},
		lookupLikesStage("video"),
		likesCountStage(),
		dropLikesStage(),
	}
}

// Videos lists the caller's videos with per-video like counts
func (r *DashboardRepository) Videos(ctx context.Context, ownerID primitive.ObjectID) ([]domain.VideoWithLikes, error) {
	cursor, err := r.db.Collection(database.CollVideos).Aggregate(ctx, buildChannelVideosPipeline(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate channel videos: %w", err)
	}
	defer cursor.Close(ctx)

	videos := []domain.VideoWithLikes{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, fmt.Errorf("failed to decode channel videos: %w", err)
	}
	return videos, nil
}
