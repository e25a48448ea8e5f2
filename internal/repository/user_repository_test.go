package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChannelProfilePipeline(t *testing.T) {
	viewerID := primitive.NewObjectID()
	pipeline := buildChannelProfilePipeline("tester", viewerID)

	assert.Equal(t, []string{"$match", "$lookup", "$lookup", "$addFields", "$project"}, stageOps(t, pipeline))

	match := stageValue(t, pipeline[0])
	assert.Equal(t, "tester", fieldValue(t, match, "username"))

	subscribers := stageValue(t, pipeline[1])
	assert.Equal(t, "subscriptions", fieldValue(t, subscribers, "from"))
	assert.Equal(t, "channel", fieldValue(t, subscribers, "foreignField"))
	assert.Equal(t, "subscribers", fieldValue(t, subscribers, "as"))

	subscribedTo := stageValue(t, pipeline[2])
	assert.Equal(t, "subscriber", fieldValue(t, subscribedTo, "foreignField"))
	assert.Equal(t, "subscribedTo", fieldValue(t, subscribedTo, "as"))

	addFields := stageValue(t, pipeline[3])
	cond, ok := fieldValue(t, addFields, "isSubscribed").(bson.D)
	require.True(t, ok)
	condDoc, ok := cond[0].Value.(bson.D)
	require.True(t, ok)

	in, ok := fieldValue(t, condDoc, "if").(bson.D)
	require.True(t, ok)
	args, ok := in[0].Value.(bson.A)
	require.True(t, ok)
	require.Len(t, args, 2)
	assert.Equal(t, viewerID, args[0])
	assert.Equal(t, "$subscribers.subscriber", args[1])

	// The projection never exposes password or refreshToken
	project := stageValue(t, pipeline[4])
	for _, e := range project {
		assert.NotEqual(t, "password", e.Key)
		assert.NotEqual(t, "refreshToken", e.Key)
	}
}

func TestBuildChannelProfilePipelineAnonymousViewer(t *testing.T) {
	pipeline := buildChannelProfilePipeline("tester", primitive.NilObjectID)

	addFields := stageValue(t, pipeline[3])
	cond := fieldValue(t, addFields, "isSubscribed").(bson.D)
	condDoc := cond[0].Value.(bson.D)
	in := fieldValue(t, condDoc, "if").(bson.D)
	args := in[0].Value.(bson.A)

	// The zero ObjectID never appears as a subscriber, so the flag is false
	assert.Equal(t, primitive.NilObjectID, args[0])
}

func TestBuildWatchHistoryPipeline(t *testing.T) {
	userID := primitive.NewObjectID()
	pipeline := buildWatchHistoryPipeline(userID)

	assert.Equal(t, []string{"$match", "$lookup"}, stageOps(t, pipeline))

	match := stageValue(t, pipeline[0])
	assert.Equal(t, userID, fieldValue(t, match, "_id"))

	lookup := stageValue(t, pipeline[1])
	assert.Equal(t, "videos", fieldValue(t, lookup, "from"))
	assert.Equal(t, "watchHistory", fieldValue(t, lookup, "localField"))
	assert.Equal(t, "watchHistory", fieldValue(t, lookup, "as"))

	sub, ok := fieldValue(t, lookup, "pipeline").(bson.A)
	require.True(t, ok)
	require.Len(t, sub, 2)
	assert.Equal(t, "$lookup", sub[0].(bson.D)[0].Key)
	assert.Equal(t, "$addFields", sub[1].(bson.D)[0].Key)
}
