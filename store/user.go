package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trekmark/trekmark-api/schema"
)

// Users - interface for user operations
type Users interface {
	UserResource() Collection[schema.User]
	FindUserByEmail(ctx context.Context, email string) (*schema.User, error)
	UpdateUserPassword(ctx context.Context, id primitive.ObjectID, hashed string) error
	DeactivateUser(ctx context.Context, id primitive.ObjectID) error
}

func (m *mongoDB) UserResource() Collection[schema.User] {
	return m.users
}

// FindUserByEmail looks an active user up for credential checks. The
// stored password hash is included in the result.
func (m *mongoDB) FindUserByEmail(ctx context.Context, email string) (*schema.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.UserCollection)

	filter := andFilter(bson.M{"email": email}, m.users.defaultFilter)

	var user schema.User
	if err := c.FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUserPassword stores a new password hash and stamps the change so
// that previously issued tokens expire. The stamp is backdated one second
// because token issue times are truncated to whole seconds; a token issued
// right after this write must still pass the changed-after check.
func (m *mongoDB) UpdateUserPassword(ctx context.Context, id primitive.ObjectID, hashed string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.UserCollection)

	result, err := c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"password":          hashed,
			"passwordChangedAt": time.Now().UTC().Add(-time.Second),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateUser soft-deletes a user; default listings exclude it while
// the document stays around.
func (m *mongoDB) DeactivateUser(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.UserCollection)

	result, err := c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": false}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
