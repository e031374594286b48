package api

import (
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trekmark/trekmark-api/schema"
)

// reviewScope narrows review listings to the parent tour on nested
// routes.
func reviewScope(c *gin.Context) (bson.M, error) {
	tourID := c.Param("id")
	if tourID == "" {
		return bson.M{}, nil
	}

	oid, err := primitive.ObjectIDFromHex(tourID)
	if err != nil {
		return nil, errInvalidID
	}
	return bson.M{"tour": oid}, nil
}

// setReviewRefs defaults the tour reference from the nested route path
// and the author from the authenticated user.
func (s *Server) setReviewRefs(c *gin.Context, review *schema.Review) error {
	if review.Tour.IsZero() {
		if tourID := c.Param("id"); tourID != "" {
			oid, err := primitive.ObjectIDFromHex(tourID)
			if err != nil {
				return errInvalidID
			}
			review.Tour = oid
		}
	}

	if review.User.IsZero() {
		if user := currentUser(c); user != nil {
			review.User = user.ID
		}
	}

	return nil
}

// afterReviewWrite recomputes rating aggregates once a review write has
// committed. For updates and deletes the pre-mutation document supplies
// the tour reference the mutation itself may not carry; when an update
// moves the review to another tour, both tours are re-synced. The review
// write is already durable here: a failed sync is reported and handed to
// the background queue, never rolled back.
func (s *Server) afterReviewWrite(c *gin.Context, prev, curr *schema.Review) {
	tourIDs := make([]primitive.ObjectID, 0, 2)
	if prev != nil && !prev.Tour.IsZero() {
		tourIDs = append(tourIDs, prev.Tour)
	}
	if curr != nil && !curr.Tour.IsZero() && (prev == nil || curr.Tour != prev.Tour) {
		tourIDs = append(tourIDs, curr.Tour)
	}

	for _, tourID := range tourIDs {
		if err := s.store.SyncTourRatings(c.Request.Context(), tourID); err != nil {
			log.WithError(err).WithField("tour", tourID.Hex()).Error("sync tour ratings")
			sentry.CaptureException(err)

			if s.jobs != nil {
				if err := s.jobs.EnqueueRatingSync(tourID.Hex()); err != nil {
					log.WithError(err).Error("enqueue rating sync")
				}
			}
		}
	}
}
