package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories"
	"github.com/opsdrill/exercise-backend/usecases/executor_factory"
)

type notificationReader interface {
	ListNotificationsForUser(ctx context.Context, exec repositories.Executor,
		userId uuid.UUID) ([]models.Notification, error)
}

// NotificationUsecase reads the caller's own notification feed. No security
// enforcement beyond identity: notifications are always private to their
// recipient.
type NotificationUsecase struct {
	executorFactory executor_factory.ExecutorFactory
	repository      notificationReader
	credentials     models.Credentials
}

func (usecase *NotificationUsecase) ListMyNotifications(ctx context.Context) ([]models.Notification, error) {
	exec := usecase.executorFactory.NewExecutor()
	return usecase.repository.ListNotificationsForUser(ctx, exec,
		usecase.credentials.ActorIdentity.UserId)
}
