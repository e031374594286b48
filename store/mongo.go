package store

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trekmark/trekmark-api/schema"
)

const (
	mongoLogPrefix = "mongo"
	defaultTimeout = 5 * time.Second
)

// MongoStore - interface for mongodb operations
type MongoStore interface {
	Tours
	Users
	Reviews
	Closer
	Pinger
}

// Closer - close db connection
type Closer interface {
	Close()
}

// Pinger - ping database
type Pinger interface {
	Ping() error
}

type mongoDB struct {
	client   *mongo.Client
	database string

	tours   *resource[schema.Tour]
	users   *resource[schema.User]
	reviews *resource[schema.Review]
}

// Ping - ping mongo db
func (m *mongoDB) Ping() error {
	return m.client.Ping(context.Background(), nil)
}

// Close - close mongo db connections
func (m *mongoDB) Close() {
	log.WithField("prefix", mongoLogPrefix).Info("closing mongo db connections")
	_ = m.client.Disconnect(context.Background())
}

// NewMongoStore - return mongo db operations
func NewMongoStore(client *mongo.Client, database string) MongoStore {
	db := client.Database(database)

	m := &mongoDB{
		client:   client,
		database: database,
	}

	// Secret tours and deactivated users are excluded from every default
	// read, plain finds and aggregations alike. The exclusions live here,
	// as explicit resource parameters, instead of hidden query hooks.
	m.tours = newResource[schema.Tour](db, schema.TourCollection,
		bson.M{"secretTour": bson.M{"$ne": true}},
		Lookup{From: schema.UserCollection, LocalField: "guides", ForeignField: "_id", As: "guideDetails"},
		Lookup{From: schema.ReviewCollection, LocalField: "_id", ForeignField: "tour", As: "reviews", GetOnly: true},
	)
	m.users = newResource[schema.User](db, schema.UserCollection,
		bson.M{"active": bson.M{"$ne": false}},
	)
	m.reviews = newResource[schema.Review](db, schema.ReviewCollection,
		nil,
		Lookup{From: schema.UserCollection, LocalField: "user", ForeignField: "_id", As: "author", Single: true},
	)

	return m
}
