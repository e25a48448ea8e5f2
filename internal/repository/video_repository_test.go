package repository

import (
	"testing"

	"vidtube/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFeedPipelineDefaults(t *testing.T) {
	pipeline := buildFeedPipeline(domain.FeedOptions{
		Page: domain.Page{Number: 1, Limit: 10},
	})

	// No filter means no $match stage at all
	assert.Equal(t, []string{
		"$sort", "$skip", "$limit",
		"$lookup", "$addFields",
		"$lookup", "$addFields", "$project",
	}, stageOps(t, pipeline))

	sort := stageValue(t, pipeline[0])
	assert.Equal(t, -1, fieldValue(t, sort, "createdAt"))

	assert.Equal(t, int64(0), pipeline[1][0].Value)
	assert.Equal(t, int64(10), pipeline[2][0].Value)
}

func TestBuildFeedPipelineQueryMatch(t *testing.T) {
	pipeline := buildFeedPipeline(domain.FeedOptions{
		Page:  domain.Page{Number: 2, Limit: 5},
		Query: "go (tutorial)",
	})

	require.Equal(t, "$match", pipeline[0][0].Key)
	match := stageValue(t, pipeline[0])

	or, ok := fieldValue(t, match, "$or").(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	title := stageValue(t, or[0].(bson.D))
	pattern, ok := title[0].Value.(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "i", pattern.Options)
	// Regex metacharacters in the query must be escaped
	assert.Equal(t, `go \(tutorial\)`, pattern.Pattern)

	// Page 2 with limit 5 skips 5
	assert.Equal(t, int64(5), pipeline[2][0].Value)
	assert.Equal(t, int64(5), pipeline[3][0].Value)
}

func TestBuildFeedPipelineOwnerFilter(t *testing.T) {
	ownerID := primitive.NewObjectID()
	pipeline := buildFeedPipeline(domain.FeedOptions{
		Page:    domain.Page{Number: 1, Limit: 10},
		OwnerID: &ownerID,
	})

	require.Equal(t, "$match", pipeline[0][0].Key)
	match := stageValue(t, pipeline[0])
	assert.Equal(t, ownerID, fieldValue(t, match, "owner"))
}

func TestBuildFeedPipelineSort(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortType  string
		wantField string
		wantDir   int
	}{
		{"explicit ascending", "views", "asc", "views", 1},
		{"numeric ascending", "views", "1", "views", 1},
		{"explicit descending", "views", "desc", "views", -1},
		{"sortBy without sortType keeps default", "views", "", "createdAt", -1},
		{"sortType without sortBy keeps default", "", "asc", "createdAt", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := buildFeedPipeline(domain.FeedOptions{
				Page:     domain.Page{Number: 1, Limit: 10},
				SortBy:   tt.sortBy,
				SortType: tt.sortType,
			})
			sort := stageValue(t, pipeline[0])
			assert.Equal(t, tt.wantDir, fieldValue(t, sort, tt.wantField))
		})
	}
}

func TestBuildVideoWithLikesPipeline(t *testing.T) {
	videoID := primitive.NewObjectID()
	pipeline := buildVideoWithLikesPipeline(videoID)

	assert.Equal(t, []string{"$match", "$lookup", "$addFields", "$project"}, stageOps(t, pipeline))

	match := stageValue(t, pipeline[0])
	assert.Equal(t, videoID, fieldValue(t, match, "_id"))
}
