package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// matchVisibleTours keeps secret tours out of aggregations, mirroring the
// default filter applied to plain finds.
func matchVisibleTours() bson.M {
	return bson.M{
		"$match": bson.M{
			"secretTour": bson.M{"$ne": true},
		},
	}
}

func aggStageGroupByDifficulty() bson.M {
	return bson.M{
		"$group": bson.M{
			"_id":        bson.M{"$toUpper": "$difficulty"},
			"numTours":   bson.M{"$sum": 1},
			"numRatings": bson.M{"$sum": "$ratingsQuantity"},
			"avgRating":  bson.M{"$avg": "$ratingsAverage"},
			"avgPrice":   bson.M{"$avg": "$price"},
			"minPrice":   bson.M{"$min": "$price"},
			"maxPrice":   bson.M{"$max": "$price"},
		},
	}
}

func aggStageGroupRatings(tourID primitive.ObjectID) []bson.M {
	return []bson.M{
		{
			"$match": bson.M{"tour": tourID},
		},
		{
			"$group": bson.M{
				"_id":       "$tour",
				"nRating":   bson.M{"$sum": 1},
				"avgRating": bson.M{"$avg": "$rating"},
			},
		},
	}
}
