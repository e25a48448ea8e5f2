package repository

import (
	"vidtube/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
)

// Pipeline builders in this package return a fresh stage list per call;
// no stage value is shared or mutated across requests.

// publicProfileProjection trims a joined user down to its public fields
func publicProfileProjection() bson.D {
	return bson.D{
		{Key: "username", Value: 1},
		{Key: "fullName", Value: 1},
		{Key: "avatar", Value: 1},
	}
}

// lookupUsersStage joins the users collection on localField -> _id,
// projecting only public profile fields.
func lookupUsersStage(localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: database.CollUsers},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as},
		{Key: "pipeline", Value: bson.A{
			bson.D{{Key: "$project", Value: publicProfileProjection()}},
		}},
	}}}
}

// lookupLikesStage joins the likes collection on _id -> the given foreign
// field, collecting the raw like documents under "likes".
func lookupLikesStage(foreignField string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: database.CollLikes},
		{Key: "localField", Value: "_id"},
		{Key: "foreignField", Value: foreignField},
		{Key: "as", Value: "likes"},
	}}}
}

// likesCountStage computes likesCount from the joined likes array
func likesCountStage() bson.D {
	return bson.D{{Key: "$addFields", Value: bson.D{
		{Key: "likesCount", Value: bson.D{{Key: "$size", Value: "$likes"}}},
	}}}
}

// dropLikesStage removes the raw likes array from the response
func dropLikesStage() bson.D {
	return bson.D{{Key: "$project", Value: bson.D{{Key: "likes", Value: 0}}}}
}

// firstElemStage replaces a single-element lookup array with its element
func firstElemStage(field string) bson.D {
	return bson.D{{Key: "$addFields", Value: bson.D{
		{Key: field, Value: bson.D{{Key: "$first", Value: "$" + field}}},
	}}}
}
