package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories"
)

type NotificationRepository struct {
	mock.Mock
}

func (r *NotificationRepository) CreateNotifications(ctx context.Context,
	exec repositories.Executor, input models.CreateNotificationInput,
) error {
	args := r.Called(ctx, exec, input)
	return args.Error(0)
}
