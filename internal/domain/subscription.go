package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription is a (subscriber, channel) pair; presence is the
// subscribed state.
type Subscription struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Subscriber primitive.ObjectID `bson:"subscriber" json:"subscriber"`
	Channel    primitive.ObjectID `bson:"channel" json:"channel"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// SubscriberList is the flattened subscriber profiles plus an independently
// counted total. The two come from separate queries and may diverge under
// concurrent writes.
type SubscriberList struct {
	Total       int64           `json:"total"`
	Subscribers []PublicProfile `json:"subscribers"`
}

// ChannelList mirrors SubscriberList for the channels a user subscribes to
type ChannelList struct {
	Total    int64           `json:"total"`
	Channels []PublicProfile `json:"channels"`
}
