package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
)

// TaskQueueRepository enqueues background work on the river task queue. Jobs
// run detached from the request that inserted them, with the queue's own
// retry and backoff policy.
type TaskQueueRepository struct {
	client *river.Client[pgx.Tx]
}

func NewTaskQueueRepository(client *river.Client[pgx.Tx]) *TaskQueueRepository {
	return &TaskQueueRepository{client: client}
}

func (repo *TaskQueueRepository) Enqueue(ctx context.Context, args river.JobArgs) error {
	if repo.client == nil {
		return errors.New("task queue client is not configured")
	}

	_, err := repo.client.Insert(ctx, args, nil)
	return errors.Wrap(err, "could not insert job")
}

// EnqueueTx inserts the job within the caller's transaction so the job only
// becomes visible if the transaction commits.
func (repo *TaskQueueRepository) EnqueueTx(ctx context.Context, tx Transaction, args river.JobArgs) error {
	if repo.client == nil {
		return errors.New("task queue client is not configured")
	}

	_, err := repo.client.InsertTx(ctx, tx.RawTx(), args, nil)
	return errors.Wrap(err, "could not insert job")
}
