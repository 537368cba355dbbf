package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories/dbmodels"
)

func (repo *ExerciseDbRepository) GetSessionById(ctx context.Context, exec Executor,
	sessionId uuid.UUID,
) (models.Session, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectSessionColumn...).
		From(dbmodels.TABLE_SESSIONS).
		Where(squirrel.Eq{"id": sessionId})

	return SqlToModel(ctx, exec, query, dbmodels.AdaptSession)
}

func (repo *ExerciseDbRepository) GetScenarioById(ctx context.Context, exec Executor,
	scenarioId uuid.UUID,
) (models.Scenario, error) {
	objectives, err := SqlToListOfModels(ctx, exec,
		NewQueryBuilder().
			Select(dbmodels.SelectScenarioObjectiveColumn...).
			From(dbmodels.TABLE_SCENARIO_OBJECTIVES).
			Where(squirrel.Eq{"scenario_id": scenarioId}).
			OrderBy("objective_id ASC"),
		dbmodels.AdaptScenarioObjective,
	)
	if err != nil {
		return models.Scenario{}, err
	}

	scenario, err := SqlToModel(ctx, exec,
		NewQueryBuilder().
			Select(dbmodels.SelectScenarioColumn...).
			From(dbmodels.TABLE_SCENARIOS).
			Where(squirrel.Eq{"id": scenarioId}),
		dbmodels.AdaptScenario,
	)
	if err != nil {
		return models.Scenario{}, err
	}

	scenario.Objectives = objectives
	return scenario, nil
}

// UpdateSessionStatus is a conditional transition: the write only applies
// when the session is still in the expected source status, which makes
// repeated auto-completion checks an idempotent no-op.
func (repo *ExerciseDbRepository) UpdateSessionStatus(ctx context.Context, exec Executor,
	sessionId uuid.UUID, from, to models.SessionStatus, endedAt *time.Time,
) (int64, error) {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_SESSIONS).
		Set("status", to).
		Where(squirrel.Eq{
			"id":     sessionId,
			"status": from,
		})

	switch to {
	case models.SessionStatusInProgress:
		query = query.Set("started_at", squirrel.Expr("NOW()"))
	case models.SessionStatusCompleted:
		query = query.Set("ended_at", endedAt)
	}

	return ExecBuilder(ctx, exec, query)
}

func (repo *ExerciseDbRepository) GetSessionParticipant(ctx context.Context, exec Executor,
	sessionId uuid.UUID, userId uuid.UUID,
) (models.SessionParticipant, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectSessionParticipantColumn...).
		From(dbmodels.TABLE_SESSION_PARTICIPANTS).
		Where(squirrel.Eq{
			"session_id": sessionId,
			"user_id":    userId,
		})

	return SqlToModel(ctx, exec, query, dbmodels.AdaptSessionParticipant)
}

func (repo *ExerciseDbRepository) ListSessionParticipants(ctx context.Context, exec Executor,
	sessionId uuid.UUID,
) ([]models.SessionParticipant, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectSessionParticipantColumn...).
		From(dbmodels.TABLE_SESSION_PARTICIPANTS).
		Where(squirrel.Eq{"session_id": sessionId}).
		OrderBy("joined_at ASC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptSessionParticipant)
}
