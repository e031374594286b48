package background

import (
	"context"

	"github.com/RichardKnop/machinery/v1"
	"github.com/RichardKnop/machinery/v1/tasks"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trekmark/trekmark-api/store"
)

// RatingSyncTaskName is the queue task re-running a tour rating
// recomputation that failed after a committed review write.
const RatingSyncTaskName = "ratings.sync"

// Enqueuer - interface for scheduling background jobs
type Enqueuer interface {
	EnqueueRatingSync(tourID string) error
}

// Jobs enqueues background tasks onto the machinery server.
type Jobs struct {
	server *machinery.Server
}

func NewJobs(server *machinery.Server) *Jobs {
	return &Jobs{server: server}
}

func (j *Jobs) EnqueueRatingSync(tourID string) error {
	_, err := j.server.SendTask(&tasks.Signature{
		Name: RatingSyncTaskName,
		Args: []tasks.Arg{
			{Type: "string", Value: tourID},
		},
		RetryCount: 3,
	})
	return err
}

// RegisterRatingSync binds the rating sync task to a store for worker
// processes.
func RegisterRatingSync(server *machinery.Server, mongoStore store.MongoStore) error {
	return server.RegisterTask(RatingSyncTaskName, func(tourID string) error {
		id, err := primitive.ObjectIDFromHex(tourID)
		if err != nil {
			return err
		}
		return mongoStore.SyncTourRatings(context.Background(), id)
	})
}
