package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"vidtube/internal/domain"
	"vidtube/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type VideoRepository struct {
	db *database.MongoDB
}

func NewVideoRepository(db *database.MongoDB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) coll() *mongo.Collection {
	return r.db.Collection(database.CollVideos)
}

// buildFeedPipeline translates feed options into match, sort and
// pagination stages, then joins owner profile and like count. The joins
// run after $skip/$limit so only the returned window pays for them.
func buildFeedPipeline(opts domain.FeedOptions) mongo.Pipeline {
	match := bson.D{}
	if opts.OwnerID != nil {
		match = append(match, bson.E{Key: "owner", Value: *opts.OwnerID})
	}
	if opts.Query != "" {
		// QuoteMeta keeps this a plain substring match
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(opts.Query), Options: "i"}
		match = append(match, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: pattern}},
			bson.D{{Key: "description", Value: pattern}},
		}})
	}

	sortField := "createdAt"
	sortDir := -1
	if opts.SortBy != "" && opts.SortType != "" {
		sortField = opts.SortBy
		if opts.SortType == "asc" || opts.SortType == "1" {
			sortDir = 1
		}
	}

	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: sortField, Value: sortDir}}}},
		bson.D{{Key: "$skip", Value: opts.Page.Skip()}},
		bson.D{{Key: "$limit", Value: opts.Page.Limit}},
		lookupUsersStage("owner", "owner"),
		firstElemStage("owner"),
		lookupLikesStage("video"),
		likesCountStage(),
		dropLikesStage(),
	)
	return pipeline
}

// Feed returns one page of the video feed
func (r *VideoRepository) Feed(ctx context.Context, opts domain.FeedOptions) ([]domain.FeedVideo, error) {
	cursor, err := r.coll().Aggregate(ctx, buildFeedPipeline(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate video feed: %w", err)
	}
	defer cursor.Close(ctx)

	videos := []domain.FeedVideo{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, fmt.Errorf("failed to decode video feed: %w", err)
	}
	return videos, nil
}

// Create inserts a new video, filling in id and timestamps
func (r *VideoRepository) Create(ctx context.Context, video *domain.Video) error {
	now := time.Now().UTC()
	video.ID = primitive.NewObjectID()
	video.CreatedAt = now
	video.UpdatedAt = now

	if _, err := r.coll().InsertOne(ctx, video); err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

// buildVideoWithLikesPipeline annotates one video with its like count
func buildVideoWithLikesPipeline(videoID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: videoID}}}},
		lookupLikesStage("video"),
		likesCountStage(),
		dropLikesStage(),
	}
}

// GetWithLikes returns a video with its like count, or nil when absent
func (r *VideoRepository) GetWithLikes(ctx context.Context, videoID primitive.ObjectID) (*domain.VideoWithLikes, error) {
	cursor, err := r.coll().Aggregate(ctx, buildVideoWithLikesPipeline(videoID))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate video: %w", err)
	}
	defer cursor.Close(ctx)

	videos := []domain.VideoWithLikes{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, fmt.Errorf("failed to decode video: %w", err)
	}
	if len(videos) == 0 {
		return nil, nil
	}
	return &videos[0], nil
}

// GetByID returns the raw video document, or nil when absent
func (r *VideoRepository) GetByID(ctx context.Context, videoID primitive.ObjectID) (*domain.Video, error) {
	var video domain.Video
	err := r.coll().FindOne(ctx, bson.D{{Key: "_id", Value: videoID}}).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return &video, nil
}

// Exists reports whether a video document exists
func (r *VideoRepository) Exists(ctx context.Context, videoID primitive.ObjectID) (bool, error) {
	n, err := r.coll().CountDocuments(ctx, bson.D{{Key: "_id", Value: videoID}})
	if err != nil {
		return false, fmt.Errorf("failed to check video existence: %w", err)
	}
	return n > 0, nil
}

// UpdateDetails sets title/description (and thumbnail when non-empty) on a
// video owned by the caller; ownership rides on the filter. Returns nil
// when no owned document matched.
func (r *VideoRepository) UpdateDetails(ctx context.Context, videoID, ownerID primitive.ObjectID, title, description, thumbnail string) (*domain.Video, error) {
	set := bson.D{
		{Key: "title", Value: title},
		{Key: "description", Value: description},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}
	if thumbnail != "" {
		set = append(set, bson.E{Key: "thumbnail", Value: thumbnail})
	}

	filter := bson.D{{Key: "_id", Value: videoID}, {Key: "owner", Value: ownerID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var video domain.Video
	err := r.coll().FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: set}}, opts).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}
	return &video, nil
}

// Delete removes a video owned by the caller and returns the removed
// document so asset cleanup can follow. Nil when no owned document matched.
func (r *VideoRepository) Delete(ctx context.Context, videoID, ownerID primitive.ObjectID) (*domain.Video, error) {
	filter := bson.D{{Key: "_id", Value: videoID}, {Key: "owner", Value: ownerID}}

	var video domain.Video
	err := r.coll().FindOneAndDelete(ctx, filter).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete video: %w", err)
	}
	return &video, nil
}

// TogglePublish atomically flips the publish flag via a pipeline update,
// so two concurrent toggles cannot read the same starting state.
func (r *VideoRepository) TogglePublish(ctx context.Context, videoID, ownerID primitive.ObjectID) (*domain.Video, error) {
	filter := bson.D{{Key: "_id", Value: videoID}, {Key: "owner", Value: ownerID}}
	update := bson.A{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "isPublished", Value: bson.D{{Key: "$not", Value: "$isPublished"}}},
			{Key: "updatedAt", Value: "$$NOW"},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var video domain.Video
	err := r.coll().FindOneAndUpdate(ctx, filter, update, opts).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle publish status: %w", err)
	}
	return &video, nil
}

// IncrementViews bumps the view counter by one
func (r *VideoRepository) IncrementViews(ctx context.Context, videoID primitive.ObjectID) error {
	_, err := r.coll().UpdateByID(ctx, videoID, bson.D{
		{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}
