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

type UserRepository struct {
	db *database.MongoDB
}

func NewUserRepository(db *database.MongoDB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) coll() *mongo.Collection {
	return r.db.Collection(database.CollUsers)
}

// Create inserts a new user. A duplicate username/email surfaces as a
// driver duplicate-key error the service maps to a conflict.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll().InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID returns a user, or nil when absent
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.coll().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByUsernameOrEmail resolves a user by either identifier
func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: username}},
		bson.D{{Key: "email", Value: email}},
	}}}

	var user domain.User
	err := r.coll().FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// SetRefreshToken stores the current refresh token; an empty token unsets it
func (r *UserRepository) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	var update bson.D
	if token == "" {
		update = bson.D{{Key: "$unset", Value: bson.D{{Key: "refreshToken", Value: 1}}}}
	} else {
		update = bson.D{{Key: "$set", Value: bson.D{{Key: "refreshToken", Value: token}}}}
	}
	if _, err := r.coll().UpdateByID(ctx, id, update); err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}
	return nil
}

// SetPassword stores a new password hash
func (r *UserRepository) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "password", Value: hash},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	if _, err := r.coll().UpdateByID(ctx, id, update); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}
	return nil
}

// UpdateAccount sets the account fields and returns the updated user
func (r *UserRepository) UpdateAccount(ctx context.Context, id primitive.ObjectID, fullName, email, username string) (*domain.User, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "fullName", Value: fullName},
		{Key: "email", Value: email},
		{Key: "username", Value: username},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	return r.findOneAndUpdate(ctx, id, update)
}

// SetImage updates avatar or coverImage and returns the updated user
func (r *UserRepository) SetImage(ctx context.Context, id primitive.ObjectID, field, url string) (*domain.User, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: field, Value: url},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	return r.findOneAndUpdate(ctx, id, update)
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.D) (*domain.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	err := r.coll().FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// AddWatchEntry records a watched video; $addToSet keeps re-watches from
// growing the list.
func (r *UserRepository) AddWatchEntry(ctx context.Context, userID, videoID primitive.ObjectID) error {
	update := bson.D{{Key: "$addToSet", Value: bson.D{{Key: "watchHistory", Value: videoID}}}}
	if _, err := r.coll().UpdateByID(ctx, userID, update); err != nil {
		return fmt.Errorf("failed to add watch entry: %w", err)
	}
	return nil
}

// buildChannelProfilePipeline resolves a channel by lowercased username,
// joins both sides of the subscription relation, and computes counts plus
// the viewer's isSubscribed flag. An anonymous viewer passes the zero
// ObjectID, which matches no subscriber.
func buildChannelProfilePipeline(username string, viewerID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "username", Value: username}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.CollSubscriptions},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "channel"},
			{Key: "as", Value: "subscribers"},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.CollSubscriptions},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "subscriber"},
			{Key: "as", Value: "subscribedTo"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "subscribersCount", Value: bson.D{{Key: "$size", Value: "$subscribers"}}},
			{Key: "channelsSubscribedToCount", Value: bson.D{{Key: "$size", Value: "$subscribedTo"}}},
			{Key: "isSubscribed", Value: bson.D{{Key: "$cond", Value: bson.D{
				{Key: "if", Value: bson.D{{Key: "$in", Value: bson.A{viewerID, "$subscribers.subscriber"}}}},
				{Key: "then", Value: true},
				{Key: "else", Value: false},
			}}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "fullName", Value: 1},
			{Key: "username", Value: 1},
			{Key: "subscribersCount", Value: 1},
			{Key: "channelsSubscribedToCount", Value: 1},
			{Key: "isSubscribed", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "coverImage", Value: 1},
			{Key: "email", Value: 1},
		}}},
	}
}

// ChannelProfile returns the denormalized channel view, or nil when the
// username does not resolve.
func (r *UserRepository) ChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (*domain.ChannelProfile, error) {
	cursor, err := r.coll().Aggregate(ctx, buildChannelProfilePipeline(username, viewerID))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate channel profile: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := []domain.ChannelProfile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode channel profile: %w", err)
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

// buildWatchHistoryPipeline joins the stored watch-history references to
// full videos, each joined to a trimmed owner profile.
func buildWatchHistoryPipeline(userID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: userID}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.CollVideos},
			{Key: "localField", Value: "watchHistory"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "watchHistory"},
			{Key: "pipeline", Value: bson.A{
				lookupUsersStage("owner", "owner"),
				firstElemStage("owner"),
			}},
		}}},
	}
}

// WatchHistory returns the user's watched videos with owner profiles.
// Nil result means the user does not exist.
func (r *UserRepository) WatchHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.WatchHistoryEntry, error) {
	cursor, err := r.coll().Aggregate(ctx, buildWatchHistoryPipeline(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate watch history: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		WatchHistory []domain.WatchHistoryEntry `bson:"watchHistory"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode watch history: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	if results[0].WatchHistory == nil {
		return []domain.WatchHistoryEntry{}, nil
	}
	return results[0].WatchHistory, nil
}
