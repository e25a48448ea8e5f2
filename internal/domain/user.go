package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the persisted account document. Password and the current refresh
// token never leave the service boundary.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username     string               `bson:"username" json:"username"`
	Email        string               `bson:"email" json:"email"`
	FullName     string               `bson:"fullName" json:"fullName"`
	Avatar       string               `bson:"avatar" json:"avatar"`
	CoverImage   string               `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	Password     string               `bson:"password" json:"-"`
	RefreshToken string               `bson:"refreshToken,omitempty" json:"-"`
	WatchHistory []primitive.ObjectID `bson:"watchHistory,omitempty" json:"watchHistory,omitempty"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile is the projection of a user that joins into other views:
// never password or token fields.
type PublicProfile struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Username string             `bson:"username" json:"username"`
	FullName string             `bson:"fullName" json:"fullName"`
	Avatar   string             `bson:"avatar" json:"avatar"`
}

// ChannelProfile is the denormalized channel view for a username, including
// both subscription relations and the viewer's own subscription state.
type ChannelProfile struct {
	ID                        primitive.ObjectID `bson:"_id" json:"_id"`
	Username                  string             `bson:"username" json:"username"`
	FullName                  string             `bson:"fullName" json:"fullName"`
	Email                     string             `bson:"email" json:"email"`
	Avatar                    string             `bson:"avatar" json:"avatar"`
	CoverImage                string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	SubscribersCount          int64              `bson:"subscribersCount" json:"subscribersCount"`
	ChannelsSubscribedToCount int64              `bson:"channelsSubscribedToCount" json:"channelsSubscribedToCount"`
	IsSubscribed              bool               `bson:"isSubscribed" json:"isSubscribed"`
}

// WatchHistoryEntry is a watched video joined to its owner's trimmed profile
type WatchHistoryEntry struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	Owner       PublicProfile      `bson:"owner" json:"owner"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// AuthUser is the identity the auth middleware injects into request context
type AuthUser struct {
	ID       primitive.ObjectID
	Username string
	Email    string
}

// TokenPair is an issued access/refresh token pair
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
