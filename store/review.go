package store

import (
	"context"
	"math"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trekmark/trekmark-api/schema"
)

// Reviews - interface for review operations
type Reviews interface {
	ReviewResource() Collection[schema.Review]
	SyncTourRatings(ctx context.Context, tourID primitive.ObjectID) error
}

func (m *mongoDB) ReviewResource() Collection[schema.Review] {
	return m.reviews
}

// SyncTourRatings recomputes ratingsQuantity and ratingsAverage of a tour
// from the current set of reviews referencing it. Removing the last
// review resets the fields to their defaults instead of leaving stale
// values. The recomputation is idempotent; overlapping invocations for
// the same tour race with last-write-wins on the aggregate fields.
func (m *mongoDB) SyncTourRatings(ctx context.Context, tourID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	reviews := m.client.Database(m.database).Collection(schema.ReviewCollection)

	cur, err := reviews.Aggregate(ctx, aggStageGroupRatings(tourID))
	if err != nil {
		return err
	}

	var stats []struct {
		NRating   int     `bson:"nRating"`
		AvgRating float64 `bson:"avgRating"`
	}
	if err := cur.All(ctx, &stats); err != nil {
		return err
	}

	quantity := 0
	average := schema.DefaultRatingsAverage
	if len(stats) > 0 {
		quantity = stats[0].NRating
		average = roundRating(stats[0].AvgRating)
	}

	log.WithField("prefix", mongoLogPrefix).
		Debugf("sync tour %s ratings: quantity=%d average=%.1f", tourID.Hex(), quantity, average)

	tours := m.client.Database(m.database).Collection(schema.TourCollection)
	_, err = tours.UpdateOne(ctx,
		bson.M{"_id": tourID},
		bson.M{"$set": bson.M{
			"ratingsQuantity": quantity,
			"ratingsAverage":  average,
		}},
	)
	return err
}

// roundRating keeps one decimal on aggregate averages.
func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
