package repositories

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
)

type Repositories struct {
	ExecutorGetter       ExecutorGetter
	ExerciseDbRepository *ExerciseDbRepository
	TaskQueueRepository  *TaskQueueRepository
}

type Option func(*options)

type options struct {
	riverClient *river.Client[pgx.Tx]
}

func WithRiverClient(client *river.Client[pgx.Tx]) Option {
	return func(o *options) {
		o.riverClient = client
	}
}

func NewRepositories(pool *pgxpool.Pool, opts ...Option) Repositories {
	o := &options{}
	for _, apply := range opts {
		apply(o)
	}

	return Repositories{
		ExecutorGetter:       NewExecutorGetter(pool),
		ExerciseDbRepository: NewExerciseDbRepository(),
		TaskQueueRepository:  NewTaskQueueRepository(o.riverClient),
	}
}
