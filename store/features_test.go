package store

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFeaturesComparisonFilters(t *testing.T) {
	params := url.Values{}
	params.Set("price[gte]", "500")
	params.Set("duration[lt]", "10")
	params.Set("ratingsAverage[lte]", "4.8")

	f, err := NewFeatures(params)
	assert.NoError(t, err)
	assert.Equal(t, bson.M{
		"price":          bson.M{"$gte": float64(500)},
		"duration":       bson.M{"$lt": float64(10)},
		"ratingsAverage": bson.M{"$lte": 4.8},
	}, f.Filter)
}

// gt is part of the accepted operator set; the upstream pattern gap that
// dropped it is deliberately not reproduced.
func TestFeaturesRecognizesGt(t *testing.T) {
	params := url.Values{}
	params.Set("price[gt]", "100")

	f, err := NewFeatures(params)
	assert.NoError(t, err)
	assert.Equal(t, bson.M{"price": bson.M{"$gt": float64(100)}}, f.Filter)
}

func TestFeaturesCombinedOperatorsOnOneField(t *testing.T) {
	params := url.Values{}
	params.Set("price[gte]", "100")
	params.Set("price[lt]", "500")

	f, err := NewFeatures(params)
	assert.NoError(t, err)
	assert.Equal(t, bson.M{
		"price": bson.M{"$gte": float64(100), "$lt": float64(500)},
	}, f.Filter)
}

func TestFeaturesUnknownOperatorRejected(t *testing.T) {
	params := url.Values{}
	params.Set("price[regex]", "x")

	_, err := NewFeatures(params)
	assert.Error(t, err)
	assert.True(t, IsInvalidQuery(err))
}

func TestFeaturesEqualityCoercion(t *testing.T) {
	params := url.Values{}
	params.Set("difficulty", "easy")
	params.Set("duration", "5")
	params.Set("secretTour", "false")

	f, err := NewFeatures(params)
	assert.NoError(t, err)
	assert.Equal(t, bson.M{
		"difficulty": "easy",
		"duration":   float64(5),
		"secretTour": false,
	}, f.Filter)
}

func TestFeaturesStripsControlKeys(t *testing.T) {
	params := url.Values{}
	params.Set("page", "2")
	params.Set("limit", "10")
	params.Set("sort", "price")
	params.Set("fields", "name")
	params.Set("difficulty", "easy")

	f, err := NewFeatures(params)
	assert.NoError(t, err)
	assert.Equal(t, bson.M{"difficulty": "easy"}, f.Filter)
}

func TestFeaturesSortDefault(t *testing.T) {
	f, err := NewFeatures(url.Values{})
	assert.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, f.Sort)
}

func TestFeaturesSortMultiKey(t *testing.T) {
	params := url.Values{}
	params.Set("sort", "-price,ratingsAverage")

	f, err := NewFeatures(params)
	assert.NoError(t, err)
	assert.Equal(t, bson.D{
		{Key: "price", Value: -1},
		{Key: "ratingsAverage", Value: 1},
	}, f.Sort)
}

func TestFeaturesProjectionDefault(t *testing.T) {
	f, err := NewFeatures(url.Values{})
	assert.NoError(t, err)
	assert.Equal(t, bson.M{"__v": 0}, f.Projection)
}

func TestFeaturesProjectionFieldList(t *testing.T) {
	params := url.Values{}
	params.Set("fields", "name,price,ratingsAverage")

	f, err := NewFeatures(params)
	assert.NoError(t, err)
	assert.Equal(t, bson.M{
		"name":           1,
		"price":          1,
		"ratingsAverage": 1,
	}, f.Projection)
}

func TestFeaturesPagination(t *testing.T) {
	params := url.Values{}
	params.Set("page", "3")
	params.Set("limit", "10")

	f, err := NewFeatures(params)
	assert.NoError(t, err)
	assert.Equal(t, int64(20), f.Skip)
	assert.Equal(t, int64(10), f.Limit)
}

// page without limit falls back to the default page size instead of an
// undefined zero limit.
func TestFeaturesPageWithoutLimit(t *testing.T) {
	params := url.Values{}
	params.Set("page", "2")

	f, err := NewFeatures(params)
	assert.NoError(t, err)
	assert.Equal(t, int64(defaultPageLimit), f.Limit)
	assert.Equal(t, int64(defaultPageLimit), f.Skip)
}

func TestFeaturesLimitWithoutPage(t *testing.T) {
	params := url.Values{}
	params.Set("limit", "5")

	f, err := NewFeatures(params)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), f.Skip)
	assert.Equal(t, int64(5), f.Limit)
}

func TestFeaturesNoPaginationByDefault(t *testing.T) {
	f, err := NewFeatures(url.Values{})
	assert.NoError(t, err)
	assert.False(t, f.paginated)

	opts := f.FindOptions()
	assert.Nil(t, opts.Skip)
	assert.Nil(t, opts.Limit)
}

func TestFeaturesInvalidPagination(t *testing.T) {
	for _, params := range []url.Values{
		{"page": []string{"0"}},
		{"page": []string{"-1"}},
		{"page": []string{"abc"}},
		{"limit": []string{"0"}},
		{"limit": []string{"x"}},
	} {
		_, err := NewFeatures(params)
		assert.Error(t, err, "params %v", params)
		assert.True(t, IsInvalidQuery(err))
	}
}

func TestFeaturesFindOptions(t *testing.T) {
	params := url.Values{}
	params.Set("sort", "-price")
	params.Set("fields", "name")
	params.Set("page", "2")
	params.Set("limit", "10")

	f, err := NewFeatures(params)
	assert.NoError(t, err)

	opts := f.FindOptions()
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, opts.Sort)
	assert.Equal(t, bson.M{"name": 1}, opts.Projection)
	assert.Equal(t, int64(10), *opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)
}

func TestFeaturesPipelineStageOrder(t *testing.T) {
	params := url.Values{}
	params.Set("price[gte]", "100")
	params.Set("sort", "-price")
	params.Set("page", "2")
	params.Set("limit", "5")

	f, err := NewFeatures(params)
	assert.NoError(t, err)

	lookup := bson.M{"$lookup": bson.M{"from": "users"}}
	filter := andFilter(f.Filter, bson.M{"secretTour": bson.M{"$ne": true}})
	stages := f.Pipeline(filter, lookup)

	assert.Equal(t, []bson.M{
		{"$match": filter},
		{"$sort": bson.D{{Key: "price", Value: -1}}},
		{"$skip": int64(5)},
		{"$limit": int64(5)},
		lookup,
		{"$project": bson.M{"__v": 0}},
	}, stages)
}

func TestAndFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, andFilter())
	assert.Equal(t, bson.M{}, andFilter(bson.M{}, nil))

	single := bson.M{"difficulty": "easy"}
	assert.Equal(t, single, andFilter(single, bson.M{}))

	secret := bson.M{"secretTour": bson.M{"$ne": true}}
	assert.Equal(t,
		bson.M{"$and": bson.A{single, secret}},
		andFilter(single, secret),
	)
}
