package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	CollUsers         = "users"
	CollVideos        = "videos"
	CollComments      = "comments"
	CollLikes         = "likes"
	CollSubscriptions = "subscriptions"
	CollPlaylists     = "playlists"
	CollTweets        = "tweets"
)

type MongoDB struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongoDB creates a new MongoDB client and verifies the connection
func NewMongoDB(ctx context.Context, uri, dbName string) (*MongoDB, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMinPoolSize(2).
		SetMaxConnIdleTime(30 * time.Minute).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDB{Client: client, DB: client.Database(dbName)}, nil
}

// Close disconnects the client
func (m *MongoDB) Close(ctx context.Context) error {
	if m.Client != nil {
		return m.Client.Disconnect(ctx)
	}
	return nil
}

// Health checks the database connection
func (m *MongoDB) Health(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Collection returns a handle to the named collection
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.DB.Collection(name)
}

// EnsureIndexes creates the unique indexes the write paths rely on.
// Like uniqueness is per target field, so each target gets its own
// partial unique index over the (likedBy, target) pair.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
	}
	if _, err := m.Collection(CollUsers).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	subIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
		Options: unique,
	}
	if _, err := m.Collection(CollSubscriptions).Indexes().CreateOne(ctx, subIndex); err != nil {
		return fmt.Errorf("failed to create subscription index: %w", err)
	}

	likeIndexes := make([]mongo.IndexModel, 0, 3)
	for _, target := range []string{"video", "comment", "tweet"} {
		likeIndexes = append(likeIndexes, mongo.IndexModel{
			Keys: bson.D{{Key: "likedBy", Value: 1}, {Key: target, Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: target, Value: bson.D{{Key: "$exists", Value: true}}}}),
		})
	}
	if _, err := m.Collection(CollLikes).Indexes().CreateMany(ctx, likeIndexes); err != nil {
		return fmt.Errorf("failed to create like indexes: %w", err)
	}

	videoIndex := mongo.IndexModel{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}}
	if _, err := m.Collection(CollVideos).Indexes().CreateOne(ctx, videoIndex); err != nil {
		return fmt.Errorf("failed to create video index: %w", err)
	}

	return nil
}
