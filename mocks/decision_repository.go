package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories"
)

type DecisionRepository struct {
	mock.Mock
}

func (r *DecisionRepository) GetDecisionById(ctx context.Context, exec repositories.Executor,
	decisionId uuid.UUID,
) (models.Decision, error) {
	args := r.Called(ctx, exec, decisionId)
	return args.Get(0).(models.Decision), args.Error(1)
}

func (r *DecisionRepository) ListDecisionsBySessionId(ctx context.Context, exec repositories.Executor,
	sessionId uuid.UUID,
) ([]models.Decision, error) {
	args := r.Called(ctx, exec, sessionId)
	return args.Get(0).([]models.Decision), args.Error(1)
}

func (r *DecisionRepository) CreateDecision(ctx context.Context, exec repositories.Executor,
	input models.CreateDecisionInput, newDecisionId uuid.UUID,
) error {
	args := r.Called(ctx, exec, input, newDecisionId)
	return args.Error(0)
}

func (r *DecisionRepository) CreateDecisionSteps(ctx context.Context, exec repositories.Executor,
	steps []models.DecisionStep,
) error {
	args := r.Called(ctx, exec, steps)
	return args.Error(0)
}

func (r *DecisionRepository) ListDecisionSteps(ctx context.Context, exec repositories.Executor,
	decisionId uuid.UUID,
) ([]models.DecisionStep, error) {
	args := r.Called(ctx, exec, decisionId)
	return args.Get(0).([]models.DecisionStep), args.Error(1)
}

func (r *DecisionRepository) RespondToPendingStep(ctx context.Context, exec repositories.Executor,
	response models.DecisionStepResponse, now time.Time,
) (int64, error) {
	args := r.Called(ctx, exec, response, now)
	return args.Get(0).(int64), args.Error(1)
}

func (r *DecisionRepository) CountPendingSteps(ctx context.Context, exec repositories.Executor,
	decisionId uuid.UUID,
) (int, error) {
	args := r.Called(ctx, exec, decisionId)
	return args.Int(0), args.Error(1)
}

func (r *DecisionRepository) UpdateDecisionStatus(ctx context.Context, exec repositories.Executor,
	decisionId uuid.UUID, from, to models.DecisionStatus,
) (int64, error) {
	args := r.Called(ctx, exec, decisionId, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (r *DecisionRepository) MarkDecisionExecuted(ctx context.Context, exec repositories.Executor,
	decisionId uuid.UUID, executedAt time.Time,
) (int64, error) {
	args := r.Called(ctx, exec, decisionId, executedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (r *DecisionRepository) UpdateDecisionClassification(ctx context.Context, exec repositories.Executor,
	decisionId uuid.UUID, classification models.DecisionClassification,
) error {
	args := r.Called(ctx, exec, decisionId, classification)
	return args.Error(0)
}
