package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Playlist is an ordered list of video references owned by a user.
// Duplicate entries are not prevented; that rule is pending a product
// decision.
type Playlist struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Videos      []primitive.ObjectID `bson:"videos" json:"videos"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
