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

type SubscriptionRepository struct {
	db *database.MongoDB
}

func NewSubscriptionRepository(db *database.MongoDB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) coll() *mongo.Collection {
	return r.db.Collection(database.CollSubscriptions)
}

// Toggle flips the subscription state for a (subscriber, channel) pair,
// same contract as LikeRepository.Toggle: true means subscribed now.
func (r *SubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID primitive.ObjectID) (bool, error) {
	filter := bson.D{
		{Key: "subscriber", Value: subscriberID},
		{Key: "channel", Value: channelID},
	}

	err := r.coll().FindOneAndDelete(ctx, filter).Err()
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return false, fmt.Errorf("failed to remove subscription: %w", err)
	}

	sub := domain.Subscription{
		ID:         primitive.NewObjectID(),
		Subscriber: subscriberID,
		Channel:    channelID,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := r.coll().InsertOne(ctx, sub); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to create subscription: %w", err)
	}
	return true, nil
}

// buildRelationProfilesPipeline flattens one side of the subscription
// relation into bare public profiles: match on matchField, join users via
// joinField, then one row per joined profile.
func buildRelationProfilesPipeline(matchField string, id primitive.ObjectID, joinField string) mongo.Pipeline {
	const as = "profiles"
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: matchField, Value: id}}}},
		lookupUsersStage(joinField, as),
		bson.D{{Key: "$unwind", Value: "$" + as}},
		bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$" + as}}}},
	}
}

// Subscribers lists the public profiles subscribed to a channel
func (r *SubscriptionRepository) Subscribers(ctx context.Context, channelID primitive.ObjectID) ([]domain.PublicProfile, error) {
	return r.relationProfiles(ctx, buildRelationProfilesPipeline("channel", channelID, "subscriber"))
}

// Channels lists the public profiles of channels a user subscribes to
func (r *SubscriptionRepository) Channels(ctx context.Context, subscriberID primitive.ObjectID) ([]domain.PublicProfile, error) {
	return r.relationProfiles(ctx, buildRelationProfilesPipeline("subscriber", subscriberID, "channel"))
}

func (r *SubscriptionRepository) relationProfiles(ctx context.Context, pipeline mongo.Pipeline) ([]domain.PublicProfile, error) {
	cursor, err := r.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate subscription profiles: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := []domain.PublicProfile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode subscription profiles: %w", err)
	}
	return profiles, nil
}

// CountSubscribers counts a channel's subscribers with an independent
// query; it is not derived from the listed set.
func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID primitive.ObjectID) (int64, error) {
	n, err := r.coll().CountDocuments(ctx, bson.D{{Key: "channel", Value: channelID}})
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return n, nil
}

// CountSubscribed counts the channels a user subscribes to
func (r *SubscriptionRepository) CountSubscribed(ctx context.Context, subscriberID primitive.ObjectID) (int64, error) {
	n, err := r.coll().CountDocuments(ctx, bson.D{{Key: "subscriber", Value: subscriberID}})
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribed channels: %w", err)
	}
	return n, nil
}
