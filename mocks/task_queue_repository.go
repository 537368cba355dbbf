package mocks

import (
	"context"

	"github.com/riverqueue/river"
	"github.com/stretchr/testify/mock"
)

type TaskQueueRepository struct {
	mock.Mock
}

func (r *TaskQueueRepository) Enqueue(ctx context.Context, jobArgs river.JobArgs) error {
	args := r.Called(ctx, jobArgs)
	return args.Error(0)
}
