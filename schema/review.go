package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ReviewCollection = "reviews"

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Review    string             `bson:"review" json:"review" validate:"required"`
	Rating    float64            `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Tour      primitive.ObjectID `bson:"tour" json:"tour" validate:"required"`
	User      primitive.ObjectID `bson:"user" json:"user" validate:"required"`

	// filled in by $lookup population on reads, never persisted
	Author *User `bson:"author,omitempty" json:"author,omitempty"`
}

// SetDefaults prepares a review for insertion.
func (r *Review) SetDefaults() {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.Author = nil
}
