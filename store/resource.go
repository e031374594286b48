package store

import (
	"context"
	"encoding/json"
	"net/url"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trekmark/trekmark-api/schema"
)

// Collection is the generic repository every resource handler runs on.
// List composes the query feature pipeline with the resource's default
// filter and an ambient scope filter (used by nested routes).
type Collection[T any] interface {
	List(ctx context.Context, params url.Values, scope bson.M) ([]T, error)
	Get(ctx context.Context, id primitive.ObjectID) (*T, error)
	Create(ctx context.Context, doc *T) (*T, error)
	Update(ctx context.Context, id primitive.ObjectID, patch []byte) (prev, curr *T, err error)
	Delete(ctx context.Context, id primitive.ObjectID) (prev *T, err error)
}

// Defaulter is implemented by documents that derive fields at creation
// time (slug, timestamps, rating defaults).
type Defaulter interface {
	SetDefaults()
}

// Deriver is implemented by documents with read-time computed fields.
type Deriver interface {
	Derive()
}

// Lookup describes the population of a stored reference into the
// referenced documents at read time, executed as a $lookup stage.
type Lookup struct {
	From         string
	LocalField   string
	ForeignField string
	As           string

	// Single unwraps the joined array into a single embedded document.
	Single bool

	// GetOnly restricts the population to identity reads; list reads
	// skip it.
	GetOnly bool
}

type resource[T any] struct {
	coll          *mongo.Collection
	defaultFilter bson.M
	lookups       []Lookup
}

func newResource[T any](db *mongo.Database, name string, defaultFilter bson.M, lookups ...Lookup) *resource[T] {
	return &resource[T]{
		coll:          db.Collection(name),
		defaultFilter: defaultFilter,
		lookups:       lookups,
	}
}

// andFilter combines filter parts with $and so that a request filter can
// never override the resource's default exclusions.
func andFilter(parts ...bson.M) bson.M {
	combined := bson.A{}
	for _, p := range parts {
		if len(p) > 0 {
			combined = append(combined, p)
		}
	}
	switch len(combined) {
	case 0:
		return bson.M{}
	case 1:
		return combined[0].(bson.M)
	default:
		return bson.M{"$and": combined}
	}
}

func lookupStages(lookups []Lookup, listOnly bool) []bson.M {
	var stages []bson.M
	for _, l := range lookups {
		if listOnly && l.GetOnly {
			continue
		}
		stages = append(stages, bson.M{"$lookup": bson.M{
			"from":         l.From,
			"localField":   l.LocalField,
			"foreignField": l.ForeignField,
			"as":           l.As,
		}})
		if l.Single {
			stages = append(stages, bson.M{"$set": bson.M{
				l.As: bson.M{"$arrayElemAt": bson.A{"$" + l.As, 0}},
			}})
		}
	}
	return stages
}

func derive[T any](doc *T) {
	if d, ok := any(doc).(Deriver); ok {
		d.Derive()
	}
}

func (r *resource[T]) List(ctx context.Context, params url.Values, scope bson.M) ([]T, error) {
	features, err := NewFeatures(params)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := andFilter(features.Filter, r.defaultFilter, scope)

	var cur *mongo.Cursor
	if stages := lookupStages(r.lookups, true); len(stages) > 0 {
		cur, err = r.coll.Aggregate(ctx, features.Pipeline(filter, stages...))
	} else {
		cur, err = r.coll.Find(ctx, filter, features.FindOptions())
	}
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).WithError(err).Error("list documents")
		return nil, err
	}

	docs := make([]T, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for i := range docs {
		derive(&docs[i])
	}
	return docs, nil
}

func (r *resource[T]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := andFilter(bson.M{"_id": id}, r.defaultFilter)

	var doc T
	if stages := lookupStages(r.lookups, false); len(stages) > 0 {
		pipeline := append([]bson.M{{"$match": filter}}, stages...)
		cur, err := r.coll.Aggregate(ctx, pipeline)
		if err != nil {
			return nil, err
		}
		var docs []T
		if err := cur.All(ctx, &docs); err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			return nil, ErrNotFound
		}
		doc = docs[0]
	} else {
		if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	derive(&doc)
	return &doc, nil
}

func (r *resource[T]) Create(ctx context.Context, doc *T) (*T, error) {
	if d, ok := any(doc).(Defaulter); ok {
		d.SetDefaults()
	}
	if err := schema.Validate(doc); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, ErrNotFound
	}
	return r.findByID(ctx, id)
}

// Update is a partial update: the patch is JSON-merged over the current
// document and the merged document is validated against the same rules as
// a create. The pre-mutation document is returned alongside the updated
// one so that write hooks can act on references the patch itself does not
// carry.
func (r *resource[T]) Update(ctx context.Context, id primitive.ObjectID, patch []byte) (*T, *T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	prev, err := r.findByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil {
		return nil, nil, &ErrInvalidQuery{"cannot parse patch document"}
	}
	// identity is immutable
	delete(fields, "id")
	delete(fields, "_id")
	patch, _ = json.Marshal(fields)

	merged := *prev
	if err := json.Unmarshal(patch, &merged); err != nil {
		return nil, nil, &ErrInvalidQuery{"cannot parse patch document"}
	}
	if err := schema.Validate(&merged); err != nil {
		return nil, nil, err
	}

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, &merged)
	if err != nil {
		return nil, nil, err
	}
	// the document may have been deleted since findByID
	if result.MatchedCount == 0 {
		return nil, nil, ErrNotFound
	}

	derive(&merged)
	return prev, &merged, nil
}

// Delete removes a document by identity, returning the pre-mutation
// document for write hooks.
func (r *resource[T]) Delete(ctx context.Context, id primitive.ObjectID) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	prev, err := r.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if result.DeletedCount == 0 {
		return nil, ErrNotFound
	}
	return prev, nil
}

// findByID reads a document without the default filter or population;
// writes address documents by identity alone.
func (r *resource[T]) findByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	derive(&doc)
	return &doc, nil
}
