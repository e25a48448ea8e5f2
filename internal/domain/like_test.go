package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeTargetValid(t *testing.T) {
	assert.True(t, LikeTargetVideo.Valid())
	assert.True(t, LikeTargetComment.Valid())
	assert.True(t, LikeTargetTweet.Valid())

	assert.False(t, LikeTarget("").Valid())
	assert.False(t, LikeTarget("playlist").Valid())
}

func TestLikeTargetField(t *testing.T) {
	assert.Equal(t, "video", LikeTargetVideo.Field())
	assert.Equal(t, "comment", LikeTargetComment.Field())
	assert.Equal(t, "tweet", LikeTargetTweet.Field())
}
