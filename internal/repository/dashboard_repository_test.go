package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChannelStatsPipeline(t *testing.T) {
	userID := primitive.NewObjectID()
	pipeline := buildChannelStatsPipeline(userID)

	assert.Equal(t, []string{"$match", "$lookup", "$lookup", "$addFields", "$project"}, stageOps(t, pipeline))

	match := stageValue(t, pipeline[0])
	assert.Equal(t, userID, fieldValue(t, match, "_id"))

	videos := stageValue(t, pipeline[1])
	assert.Equal(t, "videos", fieldValue(t, videos, "from"))
	assert.Equal(t, "owner", fieldValue(t, videos, "foreignField"))
	assert.Equal(t, "allVideos", fieldValue(t, videos, "as"))

	// Each joined video carries its own like count before the totals sum it
	sub, ok := fieldValue(t, videos, "pipeline").(bson.A)
	require.True(t, ok)
	require.Len(t, sub, 2)
	assert.Equal(t, "$lookup", sub[0].(bson.D)[0].Key)
	assert.Equal(t, "$addFields", sub[1].(bson.D)[0].Key)

	totals := stageValue(t, pipeline[3])
	likes, ok := fieldValue(t, totals, "totalLikes").(bson.D)
	require.True(t, ok)
	assert.Equal(t, "$allVideos.likesCount", fieldValue(t, likes, "$sum"))

	views, ok := fieldValue(t, totals, "totalViews").(bson.D)
	require.True(t, ok)
	assert.Equal(t, "$allVideos.views", fieldValue(t, views, "$sum"))
}

func TestBuildChannelVideosPipeline(t *testing.T) {
	ownerID := primitive.NewObjectID()
	pipeline := buildChannelVideosPipeline(ownerID)

	assert.Equal(t, []string{"$match", "$lookup", "$addFields", "$project"}, stageOps(t, pipeline))

	match := stageValue(t, pipeline[0])
	assert.Equal(t, ownerID, fieldValue(t, match, "owner"))
}
