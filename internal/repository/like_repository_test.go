package repository

import (
	"testing"

	"vidtube/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFilter(t *testing.T) {
	targetID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	tests := []struct {
		target    domain.LikeTarget
		wantField string
	}{
		{domain.LikeTargetVideo, "video"},
		{domain.LikeTargetComment, "comment"},
		{domain.LikeTargetTweet, "tweet"},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			filter := toggleFilter(tt.target, targetID, userID)
			assert.Equal(t, userID, fieldValue(t, filter, "likedBy"))
			assert.Equal(t, targetID, fieldValue(t, filter, tt.wantField))
		})
	}
}

func TestBuildLikedVideosPipeline(t *testing.T) {
	userID := primitive.NewObjectID()
	pipeline := buildLikedVideosPipeline(userID)

	assert.Equal(t, []string{"$match", "$lookup", "$unwind", "$project"}, stageOps(t, pipeline))

	match := stageValue(t, pipeline[0])
	assert.Equal(t, userID, fieldValue(t, match, "likedBy"))

	// Only video likes feed this view; comment and tweet likes are filtered
	// by the $exists guard.
	exists, ok := fieldValue(t, match, "video").(bson.D)
	require.True(t, ok)
	assert.Equal(t, true, fieldValue(t, exists, "$exists"))

	project := stageValue(t, pipeline[3])
	assert.Equal(t, "$allVideos._id", fieldValue(t, project, "_id"))
	assert.Equal(t, "$allVideos.title", fieldValue(t, project, "title"))
	assert.Equal(t, "$allVideos.videoFile", fieldValue(t, project, "videoFile"))
}
