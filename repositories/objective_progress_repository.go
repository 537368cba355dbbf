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

func (repo *ExerciseDbRepository) ListObjectiveProgress(ctx context.Context, exec Executor,
	sessionId uuid.UUID,
) ([]models.ObjectiveProgress, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectObjectiveProgressColumn...).
		From(dbmodels.TABLE_OBJECTIVE_PROGRESS).
		Where(squirrel.Eq{"session_id": sessionId}).
		OrderBy("objective_id ASC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptObjectiveProgress)
}

func (repo *ExerciseDbRepository) GetObjectiveProgress(ctx context.Context, exec Executor,
	sessionId uuid.UUID, objectiveId string,
) (models.ObjectiveProgress, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectObjectiveProgressColumn...).
		From(dbmodels.TABLE_OBJECTIVE_PROGRESS).
		Where(squirrel.Eq{
			"session_id":   sessionId,
			"objective_id": objectiveId,
		})

	return SqlToModel(ctx, exec, query, dbmodels.AdaptObjectiveProgress)
}

// CreateObjectiveProgress seeds one row per scenario objective at session
// start. ON CONFLICT DO NOTHING keeps initialization idempotent.
func (repo *ExerciseDbRepository) CreateObjectiveProgress(ctx context.Context, exec Executor,
	sessionId uuid.UUID, objectives []models.ScenarioObjective,
) error {
	if len(objectives) == 0 {
		return nil
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_OBJECTIVE_PROGRESS).
		Columns(
			"id",
			"session_id",
			"objective_id",
			"objective_name",
			"progress_percentage",
			"status",
			"weight",
		).
		Suffix("ON CONFLICT (session_id, objective_id) DO NOTHING")

	for _, objective := range objectives {
		query = query.Values(
			uuid.New(),
			sessionId,
			objective.ObjectiveId,
			objective.Name,
			0,
			models.ObjectiveStatusNotStarted,
			objective.Weight,
		)
	}

	_, err := ExecBuilder(ctx, exec, query)
	return err
}

// UpsertObjectiveProgress writes percentage, optional status and metrics in a
// single atomic statement, avoiding read-modify-write lost updates on
// concurrent writers to the same objective.
func (repo *ExerciseDbRepository) UpsertObjectiveProgress(ctx context.Context, exec Executor,
	input models.UpdateObjectiveProgressInput,
) (int64, error) {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_OBJECTIVE_PROGRESS).
		Set("progress_percentage", models.ClampPercentage(input.Percentage)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"session_id":   input.SessionId,
			"objective_id": input.ObjectiveId,
		})

	if input.Status != nil {
		query = query.Set("status", *input.Status)
	}
	if input.Metrics != nil {
		serialized, err := json.Marshal(input.Metrics)
		if err != nil {
			return 0, errors.Wrap(err, "can't encode objective metrics")
		}
		query = query.Set("metrics", squirrel.Expr("COALESCE(metrics, '{}'::jsonb) || ?::jsonb", serialized))
	}

	return ExecBuilder(ctx, exec, query)
}

// ApplyProgressDelta shifts the progress percentage by delta inside the
// database, clamped to [0, 100]. Concurrent deltas on the same objective
// serialize on the row instead of overwriting each other.
func (repo *ExerciseDbRepository) ApplyProgressDelta(ctx context.Context, exec Executor,
	sessionId uuid.UUID, objectiveId string, delta float64,
) (int64, error) {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_OBJECTIVE_PROGRESS).
		Set("progress_percentage", squirrel.Expr(
			"LEAST(100, GREATEST(0, progress_percentage + ?))", delta)).
		Set("status", squirrel.Expr(
			"CASE WHEN status = ? THEN ? ELSE status END",
			models.ObjectiveStatusNotStarted, models.ObjectiveStatusInProgress)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"session_id":   sessionId,
			"objective_id": objectiveId,
		})

	return ExecBuilder(ctx, exec, query)
}

type AdjustmentColumn string

const (
	AdjustmentPenalties AdjustmentColumn = "penalties"
	AdjustmentBonuses   AdjustmentColumn = "bonuses"
)

// AppendScoreAdjustment appends to the penalty or bonus history with a jsonb
// concatenation, never overwriting previous entries: the audit trail of all
// scoring adjustments stays reconstructable, and concurrent appends do not
// lose each other.
func (repo *ExerciseDbRepository) AppendScoreAdjustment(ctx context.Context, exec Executor,
	sessionId uuid.UUID, objectiveId string, column AdjustmentColumn, adjustment models.ScoreAdjustment,
) (int64, error) {
	serialized, err := json.Marshal([]models.ScoreAdjustment{adjustment})
	if err != nil {
		return 0, errors.Wrap(err, "can't encode score adjustment")
	}

	query := NewQueryBuilder().
		Update(dbmodels.TABLE_OBJECTIVE_PROGRESS).
		Set(string(column), squirrel.Expr(
			"COALESCE("+string(column)+", '[]'::jsonb) || ?::jsonb", serialized)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"session_id":   sessionId,
			"objective_id": objectiveId,
		})

	return ExecBuilder(ctx, exec, query)
}

func (repo *ExerciseDbRepository) UpdateObjectiveScore(ctx context.Context, exec Executor,
	sessionId uuid.UUID, objectiveId string, score float64,
) error {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_OBJECTIVE_PROGRESS).
		Set("score", score).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"session_id":   sessionId,
			"objective_id": objectiveId,
		})

	_, err := ExecBuilder(ctx, exec, query)
	return err
}
