package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	UserCollection = "users"

	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name" validate:"required"`
	Email string             `bson:"email" json:"email" validate:"required,email"`
	Photo string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role  string             `bson:"role" json:"role" validate:"required,oneof=user guide lead-guide admin"`

	// never serialized out
	Password          string    `bson:"password" json:"-"`
	PasswordChangedAt time.Time `bson:"passwordChangedAt,omitempty" json:"-"`

	// soft delete; a missing value counts as active
	Active *bool `bson:"active,omitempty" json:"-"`
}

// SetDefaults prepares a user for insertion.
func (u *User) SetDefaults() {
	if u.Role == "" {
		u.Role = RoleUser
	}
}

// SetPassword stores the bcrypt hash of a plaintext password.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether a plaintext password matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// ChangedPasswordAfter reports whether the password was changed after the
// given time. Tokens issued before a password change must be rejected.
func (u *User) ChangedPasswordAfter(t time.Time) bool {
	if u.PasswordChangedAt.IsZero() {
		return false
	}
	return u.PasswordChangedAt.After(t)
}
