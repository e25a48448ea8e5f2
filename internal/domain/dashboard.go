package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// ChannelStats is the aggregated dashboard view of a channel: profile
// fields plus totals computed across the channel's videos, likes and
// subscribers in one pipeline.
type ChannelStats struct {
	ID               primitive.ObjectID `bson:"_id" json:"_id"`
	Username         string             `bson:"username" json:"username"`
	FullName         string             `bson:"fullName" json:"fullName"`
	Avatar           string             `bson:"avatar" json:"avatar"`
	CoverImage       string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	TotalVideos      int64              `bson:"totalVideos" json:"totalVideos"`
	TotalSubscribers int64              `bson:"totalSubscribers" json:"totalSubscribers"`
	TotalLikes       int64              `bson:"totalLikes" json:"totalLikes"`
	TotalViews       int64              `bson:"totalViews" json:"totalViews"`
}
