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

type CommentRepository struct {
	db *database.MongoDB
}

func NewCommentRepository(db *database.MongoDB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) coll() *mongo.Collection {
	return r.db.Collection(database.CollComments)
}

// buildVideoCommentsPipeline joins each comment of a video to its author's
// public profile and paginates with skip/limit.
func buildVideoCommentsPipeline(videoID primitive.ObjectID, page domain.Page) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "video", Value: videoID}}}},
		lookupUsersStage("owner", "owner"),
		firstElemStage("owner"),
		bson.D{{Key: "$skip", Value: page.Skip()}},
		bson.D{{Key: "$limit", Value: page.Limit}},
	}
}

// ListByVideo returns the enriched comments of a video, paginated
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID primitive.ObjectID, page domain.Page) ([]domain.CommentWithAuthor, error) {
	cursor, err := r.coll().Aggregate(ctx, buildVideoCommentsPipeline(videoID, page))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []domain.CommentWithAuthor{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

// Create inserts a new comment, filling in id and timestamps
func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	now := time.Now().UTC()
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	if _, err := r.coll().InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetByID returns a comment, or nil when it does not exist
func (r *CommentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.coll().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

// UpdateContent sets the comment text and returns the updated document
func (r *CommentRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*domain.Comment, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var comment domain.Comment
	err := r.coll().FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return &comment, nil
}

// Delete removes a comment by id, reporting whether it existed
func (r *CommentRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, fmt.Errorf("failed to delete comment: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// DeleteByVideo removes all comments of a video (video delete cascade)
func (r *CommentRepository) DeleteByVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error) {
	res, err := r.coll().DeleteMany(ctx, bson.D{{Key: "video", Value: videoID}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments of video: %w", err)
	}
	return res.DeletedCount, nil
}
