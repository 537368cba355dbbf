package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories/dbmodels"
)

func (repo *ExerciseDbRepository) GetDecisionById(ctx context.Context, exec Executor,
	decisionId uuid.UUID,
) (models.Decision, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectDecisionColumn...).
		From(dbmodels.TABLE_DECISIONS).
		Where(squirrel.Eq{"id": decisionId})

	return SqlToModel(ctx, exec, query, dbmodels.AdaptDecision)
}

func (repo *ExerciseDbRepository) ListDecisionsBySessionId(ctx context.Context, exec Executor,
	sessionId uuid.UUID,
) ([]models.Decision, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectDecisionColumn...).
		From(dbmodels.TABLE_DECISIONS).
		Where(squirrel.Eq{"session_id": sessionId}).
		OrderBy("created_at DESC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptDecision)
}

func (repo *ExerciseDbRepository) CreateDecision(ctx context.Context, exec Executor,
	input models.CreateDecisionInput, newDecisionId uuid.UUID,
) error {
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_DECISIONS).
		Columns(
			"id",
			"session_id",
			"proposer_id",
			"title",
			"description",
			"decision_type",
			"status",
		).
		Values(
			newDecisionId,
			input.SessionId,
			input.ProposerId,
			input.Title,
			input.Description,
			input.DecisionType,
			models.DecisionStatusProposed,
		)

	_, err := ExecBuilder(ctx, exec, query)
	return err
}

// CreateDecisionSteps inserts one pending step per required approver, in the
// same transaction as the decision itself.
func (repo *ExerciseDbRepository) CreateDecisionSteps(ctx context.Context, exec Executor,
	steps []models.DecisionStep,
) error {
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_DECISION_STEPS).
		Columns(
			"id",
			"decision_id",
			"user_id",
			"role",
			"step_order",
			"status",
		)

	for _, step := range steps {
		query = query.Values(
			step.Id,
			step.DecisionId,
			step.UserId,
			step.Role,
			step.StepOrder,
			step.Status,
		)
	}

	_, err := ExecBuilder(ctx, exec, query)
	return err
}

func (repo *ExerciseDbRepository) ListDecisionSteps(ctx context.Context, exec Executor,
	decisionId uuid.UUID,
) ([]models.DecisionStep, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectDecisionStepColumn...).
		From(dbmodels.TABLE_DECISION_STEPS).
		Where(squirrel.Eq{"decision_id": decisionId}).
		OrderBy("step_order ASC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptDecisionStep)
}

// RespondToPendingStep updates the caller's own pending step and reports how
// many rows matched: zero means the caller has no pending step on this
// decision (not an approver, or already responded).
func (repo *ExerciseDbRepository) RespondToPendingStep(ctx context.Context, exec Executor,
	response models.DecisionStepResponse, now time.Time,
) (int64, error) {
	status := models.DecisionStepApproved
	if !response.Approved {
		status = models.DecisionStepRejected
	}

	query := NewQueryBuilder().
		Update(dbmodels.TABLE_DECISION_STEPS).
		Set("status", status).
		Set("responder_id", response.UserId).
		Set("responded_at", now).
		Set("comment", response.Comment).
		Where(squirrel.Eq{
			"decision_id": response.DecisionId,
			"user_id":     response.UserId,
			"status":      models.DecisionStepPending,
		})

	return ExecBuilder(ctx, exec, query)
}

func (repo *ExerciseDbRepository) CountPendingSteps(ctx context.Context, exec Executor,
	decisionId uuid.UUID,
) (int, error) {
	query := NewQueryBuilder().
		Select("COUNT(*)").
		From(dbmodels.TABLE_DECISION_STEPS).
		Where(squirrel.Eq{
			"decision_id": decisionId,
			"status":      models.DecisionStepPending,
		})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := exec.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateDecisionStatus performs a conditional status transition and returns
// the number of rows affected. Concurrent callers race safely: the update
// only applies when the decision is still in the expected source status.
func (repo *ExerciseDbRepository) UpdateDecisionStatus(ctx context.Context, exec Executor,
	decisionId uuid.UUID, from, to models.DecisionStatus,
) (int64, error) {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_DECISIONS).
		Set("status", to).
		Where(squirrel.Eq{
			"id":     decisionId,
			"status": from,
		})

	return ExecBuilder(ctx, exec, query)
}

// MarkDecisionExecuted is the execute CAS: status and executed_at are written
// in the same conditional statement, so exactly one of two concurrent execute
// calls succeeds.
func (repo *ExerciseDbRepository) MarkDecisionExecuted(ctx context.Context, exec Executor,
	decisionId uuid.UUID, executedAt time.Time,
) (int64, error) {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_DECISIONS).
		Set("status", models.DecisionStatusExecuted).
		Set("executed_at", executedAt).
		Where(squirrel.Eq{
			"id":     decisionId,
			"status": models.DecisionStatusApproved,
		})

	return ExecBuilder(ctx, exec, query)
}

// UpdateDecisionClassification persists the AI classification metadata. This
// is the only field of an executed decision that may still change.
func (repo *ExerciseDbRepository) UpdateDecisionClassification(ctx context.Context, exec Executor,
	decisionId uuid.UUID, classification models.DecisionClassification,
) error {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_DECISIONS).
		Set("decision_type", classification.PrimaryCategory).
		Where(squirrel.Eq{"id": decisionId})

	_, err := ExecBuilder(ctx, exec, query)
	return err
}
