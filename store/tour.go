package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/trekmark/trekmark-api/schema"
)

// Tours - interface for tour operations
type Tours interface {
	TourResource() Collection[schema.Tour]
	TourStats(ctx context.Context) ([]schema.TourStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]schema.MonthlyPlanEntry, error)
	ToursWithin(ctx context.Context, lat, lng, radius float64) ([]schema.Tour, error)
}

func (m *mongoDB) TourResource() Collection[schema.Tour] {
	return m.tours
}

// TourStats summarizes well rated tours per difficulty.
func (m *mongoDB) TourStats(ctx context.Context) ([]schema.TourStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.TourCollection)

	pipeline := []bson.M{
		matchVisibleTours(),
		{"$match": bson.M{"ratingsAverage": bson.M{"$gte": 4.5}}},
		aggStageGroupByDifficulty(),
		{"$sort": bson.M{"avgPrice": 1}},
	}

	cur, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	stats := make([]schema.TourStats, 0)
	if err := cur.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// MonthlyPlan counts tour starts per month of the given year.
func (m *mongoDB) MonthlyPlan(ctx context.Context, year int) ([]schema.MonthlyPlanEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.TourCollection)

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	pipeline := []bson.M{
		matchVisibleTours(),
		{"$unwind": "$startDates"},
		{"$match": bson.M{
			"startDates": bson.M{
				"$gte": from,
				"$lt":  until,
			},
		}},
		{"$group": bson.M{
			"_id":           bson.M{"$month": "$startDates"},
			"numTourStarts": bson.M{"$sum": 1},
			"tours":         bson.M{"$push": "$name"},
		}},
		{"$addFields": bson.M{"month": "$_id"}},
		{"$project": bson.M{"_id": 0}},
		{"$sort": bson.M{"numTourStarts": -1}},
		{"$limit": 12},
	}

	cur, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	plan := make([]schema.MonthlyPlanEntry, 0)
	if err := cur.All(ctx, &plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ToursWithin finds tours starting within a spherical radius (in radians)
// around a center point.
func (m *mongoDB) ToursWithin(ctx context.Context, lat, lng, radius float64) ([]schema.Tour, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.TourCollection)

	filter := andFilter(
		bson.M{
			"startLocation": bson.M{
				"$geoWithin": bson.M{
					"$centerSphere": bson.A{bson.A{lng, lat}, radius},
				},
			},
		},
		m.tours.defaultFilter,
	)

	cur, err := c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	tours := make([]schema.Tour, 0)
	if err := cur.All(ctx, &tours); err != nil {
		return nil, err
	}
	for i := range tours {
		tours[i].Derive()
	}
	return tours, nil
}
