package repository

import (
	"testing"

	"vidtube/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stretchr/testify/assert"
)

func TestBuildVideoCommentsPipeline(t *testing.T) {
	videoID := primitive.NewObjectID()
	pipeline := buildVideoCommentsPipeline(videoID, domain.Page{Number: 3, Limit: 20})

	// Author join happens before pagination so page boundaries stay stable
	// against the comment set, not the joined one.
	assert.Equal(t, []string{"$match", "$lookup", "$addFields", "$skip", "$limit"}, stageOps(t, pipeline))

	match := stageValue(t, pipeline[0])
	assert.Equal(t, videoID, fieldValue(t, match, "video"))

	assert.Equal(t, int64(40), pipeline[3][0].Value)
	assert.Equal(t, int64(20), pipeline[4][0].Value)
}
