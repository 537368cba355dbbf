package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories/dbmodels"
)

// CreateNotifications fans one notification out to every recipient, one row
// per user.
func (repo *ExerciseDbRepository) CreateNotifications(ctx context.Context, exec Executor,
	input models.CreateNotificationInput,
) error {
	if len(input.UserIds) == 0 {
		return nil
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_NOTIFICATIONS).
		Columns(
			"id",
			"user_id",
			"type",
			"title",
			"message",
			"priority",
			"action_ref",
		)

	for _, userId := range input.UserIds {
		query = query.Values(
			uuid.New(),
			userId,
			input.Type,
			input.Title,
			input.Message,
			input.Priority,
			input.ActionRef,
		)
	}

	_, err := ExecBuilder(ctx, exec, query)
	return err
}

func (repo *ExerciseDbRepository) ListNotificationsForUser(ctx context.Context, exec Executor,
	userId uuid.UUID,
) ([]models.Notification, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectNotificationColumn...).
		From(dbmodels.TABLE_NOTIFICATIONS).
		Where(squirrel.Eq{"user_id": userId}).
		OrderBy("created_at DESC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptNotification)
}
