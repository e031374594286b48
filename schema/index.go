package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	ctx      context.Context
	dbName   string
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBIndexer(connectionString, dbName string) *MongoDBIndexer {
	ctx := context.Background()
	opts := options.Client().ApplyURI(connectionString)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		panic(err)
	}

	return &MongoDBIndexer{
		ctx:      ctx,
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

func panicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func (m *MongoDBIndexer) IndexAll() {
	panicIfError(m.IndexTourCollection())
	panicIfError(m.IndexUserCollection())
	panicIfError(m.IndexReviewCollection())
}

func (m *MongoDBIndexer) IndexTourCollection() error {
	if err := m.createIndex(TourCollection, mongo.IndexModel{
		Keys: bson.M{
			"name": 1,
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	if err := m.createIndex(TourCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "price", Value: 1},
			{Key: "ratingsAverage", Value: -1},
		},
	}); err != nil {
		return err
	}

	if err := m.createIndex(TourCollection, mongo.IndexModel{
		Keys: bson.M{
			"slug": 1,
		},
	}); err != nil {
		return err
	}

	return m.createIndex(TourCollection, mongo.IndexModel{
		Keys: bson.M{
			"startLocation": "2dsphere",
		},
	})
}

func (m *MongoDBIndexer) IndexUserCollection() error {
	return m.createIndex(UserCollection, mongo.IndexModel{
		Keys: bson.M{
			"email": 1,
		},
		Options: options.Index().SetUnique(true),
	})
}

// IndexReviewCollection enforces at most one review per (tour, user) pair.
func (m *MongoDBIndexer) IndexReviewCollection() error {
	return m.createIndex(ReviewCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "tour", Value: 1},
			{Key: "user", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
}
