package repositories

import (
	"context"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories/dbmodels"
)

func (repo *ExerciseDbRepository) ListSessionEvents(ctx context.Context, exec Executor,
	sessionId uuid.UUID,
) ([]models.SessionEvent, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectSessionEventColumn...).
		From(dbmodels.TABLE_SESSION_EVENTS).
		Where(squirrel.Eq{"session_id": sessionId}).
		OrderBy("created_at DESC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptSessionEvent)
}

func (repo *ExerciseDbRepository) CreateSessionEvent(ctx context.Context, exec Executor,
	input models.CreateSessionEventInput,
) error {
	var payload []byte
	if input.Payload != nil {
		var err error
		payload, err = json.Marshal(input.Payload)
		if err != nil {
			return errors.Wrap(err, "can't encode session event payload")
		}
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_SESSION_EVENTS).
		Columns(
			"id",
			"session_id",
			"event_type",
			"actor_id",
			"payload",
			"scope",
			"affected_roles",
			"target_teams",
			"origin_inject_id",
		).
		Values(
			uuid.New(),
			input.SessionId,
			input.EventType,
			input.ActorId,
			payload,
			scopeOrNull(input.Scope.Scope),
			input.Scope.AffectedRoles,
			input.Scope.TargetTeams,
			input.Scope.OriginInjectId,
		)

	_, err := ExecBuilder(ctx, exec, query)
	return err
}
