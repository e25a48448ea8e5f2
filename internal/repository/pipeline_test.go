package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stageOps lists the leading operator of every stage in order
func stageOps(t *testing.T, p mongo.Pipeline) []string {
	t.Helper()
	ops := make([]string, 0, len(p))
	for _, stage := range p {
		require.NotEmpty(t, stage, "pipeline stage must carry an operator")
		ops = append(ops, stage[0].Key)
	}
	return ops
}

// stageValue returns the document behind the given stage's operator
func stageValue(t *testing.T, stage bson.D) bson.D {
	t.Helper()
	require.NotEmpty(t, stage)
	doc, ok := stage[0].Value.(bson.D)
	require.True(t, ok, "stage %s must hold a document", stage[0].Key)
	return doc
}

// fieldValue fetches a key from a stage document
func fieldValue(t *testing.T, doc bson.D, key string) interface{} {
	t.Helper()
	for _, e := range doc {
		if e.Key == key {
			return e.Value
		}
	}
	t.Fatalf("document carries no key %q", key)
	return nil
}

func TestLookupUsersStageProjectsPublicProfile(t *testing.T) {
	stage := lookupUsersStage("owner", "owner")
	doc := stageValue(t, stage)

	assert.Equal(t, "users", fieldValue(t, doc, "from"))
	assert.Equal(t, "owner", fieldValue(t, doc, "localField"))
	assert.Equal(t, "_id", fieldValue(t, doc, "foreignField"))

	sub, ok := fieldValue(t, doc, "pipeline").(bson.A)
	require.True(t, ok)
	require.Len(t, sub, 1)

	project := stageValue(t, sub[0].(bson.D))
	assert.Equal(t, 1, fieldValue(t, project, "username"))
	assert.Equal(t, 1, fieldValue(t, project, "fullName"))
	assert.Equal(t, 1, fieldValue(t, project, "avatar"))
}

func TestLikesCountStages(t *testing.T) {
	lookup := stageValue(t, lookupLikesStage("video"))
	assert.Equal(t, "likes", fieldValue(t, lookup, "from"))
	assert.Equal(t, "video", fieldValue(t, lookup, "foreignField"))
	assert.Equal(t, "likes", fieldValue(t, lookup, "as"))

	count := stageValue(t, likesCountStage())
	size, ok := fieldValue(t, count, "likesCount").(bson.D)
	require.True(t, ok)
	assert.Equal(t, "$likes", fieldValue(t, size, "$size"))

	drop := stageValue(t, dropLikesStage())
	assert.Equal(t, 0, fieldValue(t, drop, "likes"))
}

func TestFirstElemStage(t *testing.T) {
	doc := stageValue(t, firstElemStage("owner"))
	first, ok := fieldValue(t, doc, "owner").(bson.D)
	require.True(t, ok)
	assert.Equal(t, "$owner", fieldValue(t, first, "$first"))
}
