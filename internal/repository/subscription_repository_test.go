package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRelationProfilesPipeline(t *testing.T) {
	id := primitive.NewObjectID()

	tests := []struct {
		name       string
		matchField string
		joinField  string
	}{
		{"subscribers of a channel", "channel", "subscriber"},
		{"channels of a subscriber", "subscriber", "channel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := buildRelationProfilesPipeline(tt.matchField, id, tt.joinField)

			assert.Equal(t, []string{"$match", "$lookup", "$unwind", "$replaceRoot"}, stageOps(t, pipeline))

			match := stageValue(t, pipeline[0])
			assert.Equal(t, id, fieldValue(t, match, tt.matchField))

			lookup := stageValue(t, pipeline[1])
			assert.Equal(t, "users", fieldValue(t, lookup, "from"))
			assert.Equal(t, tt.joinField, fieldValue(t, lookup, "localField"))
			assert.Equal(t, "profiles", fieldValue(t, lookup, "as"))

			assert.Equal(t, "$profiles", pipeline[2][0].Value)

			replaceRoot := stageValue(t, pipeline[3])
			require.Len(t, replaceRoot, 1)
			assert.Equal(t, "$profiles", fieldValue(t, replaceRoot, "newRoot"))
		})
	}
}
