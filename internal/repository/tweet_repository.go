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

type TweetRepository struct {
	db *database.MongoDB
}

func NewTweetRepository(db *database.MongoDB) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) coll() *mongo.Collection {
	return r.db.Collection(database.CollTweets)
}

// Create inserts a new tweet, filling in id and timestamps
func (r *TweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	now := time.Now().UTC()
	tweet.ID = primitive.NewObjectID()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now

	if _, err := r.coll().InsertOne(ctx, tweet); err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}
	return nil
}

// ListByOwner returns all tweets of a user, newest first
func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Tweet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll().Find(ctx, bson.D{{Key: "owner", Value: ownerID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	defer cursor.Close(ctx)

	tweets := []domain.Tweet{}
	if err := cursor.All(ctx, &tweets); err != nil {
		return nil, fmt.Errorf("failed to decode tweets: %w", err)
	}
	return tweets, nil
}

// GetByID returns a tweet, or nil when absent
func (r *TweetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Tweet, error) {
	var tweet domain.Tweet
	err := r.coll().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&tweet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}
	return &tweet, nil
}

// UpdateContent sets the tweet text and returns the updated document
func (r *TweetRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*domain.Tweet, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var tweet domain.Tweet
	err := r.coll().FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&tweet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update tweet: %w", err)
	}
	return &tweet, nil
}

// Delete removes a tweet by id, reporting whether it existed
func (r *TweetRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, fmt.Errorf("failed to delete tweet: %w", err)
	}
	return res.DeletedCount > 0, nil
}
