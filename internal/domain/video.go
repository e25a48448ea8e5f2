package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video is the persisted video document
type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// VideoWithLikes is a video annotated with its like count; the raw likes
// array is projected away.
type VideoWithLikes struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	LikesCount  int64              `bson:"likesCount" json:"likesCount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FeedVideo is a feed row: video plus owner profile (single object, not an
// array) and like count.
type FeedVideo struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	Owner       PublicProfile      `bson:"owner" json:"owner"`
	LikesCount  int64              `bson:"likesCount" json:"likesCount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// FeedOptions selects and orders the video feed
type FeedOptions struct {
	Page     Page
	Query    string              // case-insensitive substring over title/description
	SortBy   string              // field name; empty means createdAt
	SortType string              // "asc"/"1" ascending, anything else descending
	OwnerID  *primitive.ObjectID // restrict to one owner
}
