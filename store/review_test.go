package store

import (
	"context"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trekmark/trekmark-api/schema"
)

var (
	ratedTourID  = primitive.NewObjectID()
	emptyTourID  = primitive.NewObjectID()
	secretTourID = primitive.NewObjectID()
	reviewerAID  = primitive.NewObjectID()
	reviewerBID  = primitive.NewObjectID()
)

type ReviewTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
	store        MongoStore
}

func NewReviewTestSuite(connURI, dbName string) *ReviewTestSuite {
	return &ReviewTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *ReviewTestSuite) SetupSuite() {
	if s.connURI == "" || s.testDBName == "" {
		s.T().Fatal("invalid test suite configuration")
	}

	opts := options.Client().ApplyURI(s.connURI)
	mongoClient, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		s.T().Fatalf("connect mongo database with error: %s", err)
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)
	s.store = NewMongoStore(mongoClient, s.testDBName)

	// make sure the test suite is run with a clean environment
	if err := s.CleanMongoDB(); err != nil {
		s.T().Fatal(err)
	}
	schema.NewMongoDBIndexer(s.connURI, s.testDBName).IndexAll()
	if err := s.LoadMongoDBFixtures(); err != nil {
		s.T().Fatal(err)
	}
}

func (s *ReviewTestSuite) CleanMongoDB() error {
	return s.testDatabase.Drop(context.Background())
}

// LoadMongoDBFixtures will preload fixtures into test mongodb
func (s *ReviewTestSuite) LoadMongoDBFixtures() error {
	ctx := context.Background()

	if _, err := s.testDatabase.Collection(schema.TourCollection).InsertMany(ctx, []interface{}{
		schema.Tour{
			ID:             ratedTourID,
			Name:           "The Rated Wanderer",
			Slug:           "the-rated-wanderer",
			Duration:       5,
			MaxGroupSize:   10,
			Difficulty:     schema.TourDifficultyEasy,
			RatingsAverage: schema.DefaultRatingsAverage,
			Price:          400,
			Summary:        "fixture tour with reviews",
			ImageCover:     "cover.jpg",
		},
		schema.Tour{
			ID:              emptyTourID,
			Name:            "The Quiet Wanderer",
			Slug:            "the-quiet-wanderer",
			Duration:        3,
			MaxGroupSize:    8,
			Difficulty:      schema.TourDifficultyMedium,
			RatingsAverage:  3.9,
			RatingsQuantity: 7,
			Price:           250,
			Summary:         "fixture tour without reviews",
			ImageCover:      "cover.jpg",
		},
		schema.Tour{
			ID:             secretTourID,
			Name:           "The Hidden Wanderer",
			Slug:           "the-hidden-wanderer",
			Duration:       4,
			MaxGroupSize:   6,
			Difficulty:     schema.TourDifficultyDifficult,
			RatingsAverage: schema.DefaultRatingsAverage,
			Price:          900,
			Summary:        "fixture secret tour",
			ImageCover:     "cover.jpg",
			SecretTour:     true,
		},
	}); err != nil {
		return err
	}

	_, err := s.testDatabase.Collection(schema.ReviewCollection).InsertMany(ctx, []interface{}{
		schema.Review{
			ID:     primitive.NewObjectID(),
			Review: "decent",
			Rating: 3,
			Tour:   ratedTourID,
			User:   reviewerAID,
		},
		schema.Review{
			ID:     primitive.NewObjectID(),
			Review: "great",
			Rating: 5,
			Tour:   ratedTourID,
			User:   reviewerBID,
		},
	})
	return err
}

func (s *ReviewTestSuite) fetchTour(id primitive.ObjectID) schema.Tour {
	var tour schema.Tour
	err := s.testDatabase.Collection(schema.TourCollection).
		FindOne(context.Background(), bson.M{"_id": id}).Decode(&tour)
	s.Require().NoError(err)
	return tour
}

func (s *ReviewTestSuite) TestSyncTourRatingsAggregates() {
	err := s.store.SyncTourRatings(context.Background(), ratedTourID)
	s.NoError(err)

	tour := s.fetchTour(ratedTourID)
	s.Equal(2, tour.RatingsQuantity)
	s.Equal(4.0, tour.RatingsAverage)
}

func (s *ReviewTestSuite) TestSyncTourRatingsResetsWithoutReviews() {
	err := s.store.SyncTourRatings(context.Background(), emptyTourID)
	s.NoError(err)

	tour := s.fetchTour(emptyTourID)
	s.Equal(0, tour.RatingsQuantity)
	s.Equal(schema.DefaultRatingsAverage, tour.RatingsAverage)
}

func (s *ReviewTestSuite) TestDuplicateReviewRejected() {
	_, err := s.store.ReviewResource().Create(context.Background(), &schema.Review{
		Review: "second opinion",
		Rating: 1,
		Tour:   ratedTourID,
		User:   reviewerAID,
	})
	s.Error(err)
	s.True(mongo.IsDuplicateKeyError(err))
}

// a partial update of a document that no longer exists must surface as
// not found, never as a silent success
func (s *ReviewTestSuite) TestUpdateMissingReviewNotFound() {
	_, _, err := s.store.ReviewResource().Update(context.Background(),
		primitive.NewObjectID(), []byte(`{"rating":2}`))
	s.Equal(ErrNotFound, err)
}

func (s *ReviewTestSuite) TestSecretToursHiddenFromListing() {
	tours, err := s.store.TourResource().List(context.Background(), url.Values{}, bson.M{})
	s.NoError(err)
	for _, tour := range tours {
		s.NotEqual(secretTourID, tour.ID)
	}

	_, err = s.store.TourResource().Get(context.Background(), secretTourID)
	s.Equal(ErrNotFound, err)
}

// In order for 'go test' to run this suite, we need to create
// a normal test function and pass our suite to s.Run
func TestReviewTestSuite(t *testing.T) {
	connURI := os.Getenv("TREKMARK_TEST_MONGO_CONN")
	if connURI == "" {
		t.Skip("set TREKMARK_TEST_MONGO_CONN to run mongodb store tests")
	}
	suite.Run(t, NewReviewTestSuite(connURI, "test-db"))
}
