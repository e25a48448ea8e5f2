package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeTarget names the kind of entity a like points at
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Valid reports whether the target kind is one of video/comment/tweet
func (t LikeTarget) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// Field returns the like document field holding the target reference
func (t LikeTarget) Field() string {
	return string(t)
}

// Like references exactly one of video/comment/tweet plus the liking user.
// Only the field matching the target kind is set.
type Like struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Video     *primitive.ObjectID `bson:"video,omitempty" json:"video,omitempty"`
	Comment   *primitive.ObjectID `bson:"comment,omitempty" json:"comment,omitempty"`
	Tweet     *primitive.ObjectID `bson:"tweet,omitempty" json:"tweet,omitempty"`
	LikedBy   primitive.ObjectID  `bson:"likedBy" json:"likedBy"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// LikedVideo is one row of the flattened like-video join
type LikedVideo struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	VideoFile string             `bson:"videoFile" json:"videoFile"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ToggleResult reports the state transition a toggle performed
type ToggleResult struct {
	Toggled bool `json:"toggled"` // true when the record now exists
}
