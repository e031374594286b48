package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserPasswordRoundtrip(t *testing.T) {
	u := User{Name: "Ana", Email: "ana@example.com"}

	assert.NoError(t, u.SetPassword("correct horse battery"))
	assert.NotEqual(t, "correct horse battery", u.Password)

	assert.True(t, u.CheckPassword("correct horse battery"))
	assert.False(t, u.CheckPassword("wrong password"))
	assert.False(t, u.CheckPassword(""))
}

func TestUserSetDefaults(t *testing.T) {
	u := User{}
	u.SetDefaults()
	assert.Equal(t, RoleUser, u.Role)

	admin := User{Role: RoleAdmin}
	admin.SetDefaults()
	assert.Equal(t, RoleAdmin, admin.Role)
}

func TestUserChangedPasswordAfter(t *testing.T) {
	issued := time.Now()

	u := User{}
	assert.False(t, u.ChangedPasswordAfter(issued))

	u.PasswordChangedAt = issued.Add(-time.Hour)
	assert.False(t, u.ChangedPasswordAfter(issued))

	u.PasswordChangedAt = issued.Add(time.Hour)
	assert.True(t, u.ChangedPasswordAfter(issued))
}

func TestUserValidate(t *testing.T) {
	u := User{Name: "Ana", Email: "ana@example.com", Role: RoleUser}
	assert.NoError(t, Validate(&u))

	u.Email = "not-an-email"
	assert.Error(t, Validate(&u))
}

func TestReviewValidate(t *testing.T) {
	r := Review{
		Review: "Loved every minute of it",
		Rating: 4,
		Tour:   primitive.NewObjectID(),
		User:   primitive.NewObjectID(),
	}
	r.SetDefaults()
	assert.NoError(t, Validate(&r))
	assert.False(t, r.CreatedAt.IsZero())

	r.Rating = 6
	assert.Error(t, Validate(&r))

	r.Rating = 4
	r.Tour = primitive.NilObjectID
	assert.Error(t, Validate(&r))
}
