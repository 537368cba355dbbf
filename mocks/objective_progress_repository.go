package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories"
)

type ObjectiveProgressRepository struct {
	mock.Mock
}

func (r *ObjectiveProgressRepository) ListObjectiveProgress(ctx context.Context,
	exec repositories.Executor, sessionId uuid.UUID,
) ([]models.ObjectiveProgress, error) {
	args := r.Called(ctx, exec, sessionId)
	return args.Get(0).([]models.ObjectiveProgress), args.Error(1)
}

func (r *ObjectiveProgressRepository) GetObjectiveProgress(ctx context.Context,
	exec repositories.Executor, sessionId uuid.UUID, objectiveId string,
) (models.ObjectiveProgress, error) {
	args := r.Called(ctx, exec, sessionId, objectiveId)
	return args.Get(0).(models.ObjectiveProgress), args.Error(1)
}

func (r *ObjectiveProgressRepository) CreateObjectiveProgress(ctx context.Context,
	exec repositories.Executor, sessionId uuid.UUID, objectives []models.ScenarioObjective,
) error {
	args := r.Called(ctx, exec, sessionId, objectives)
	return args.Error(0)
}

func (r *ObjectiveProgressRepository) UpsertObjectiveProgress(ctx context.Context,
	exec repositories.Executor, input models.UpdateObjectiveProgressInput,
) (int64, error) {
	args := r.Called(ctx, exec, input)
	return args.Get(0).(int64), args.Error(1)
}

func (r *ObjectiveProgressRepository) ApplyProgressDelta(ctx context.Context,
	exec repositories.Executor, sessionId uuid.UUID, objectiveId string, delta float64,
) (int64, error) {
	args := r.Called(ctx, exec, sessionId, objectiveId, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (r *ObjectiveProgressRepository) AppendScoreAdjustment(ctx context.Context,
	exec repositories.Executor, sessionId uuid.UUID, objectiveId string,
	column repositories.AdjustmentColumn, adjustment models.ScoreAdjustment,
) (int64, error) {
	args := r.Called(ctx, exec, sessionId, objectiveId, column, adjustment)
	return args.Get(0).(int64), args.Error(1)
}

func (r *ObjectiveProgressRepository) UpdateObjectiveScore(ctx context.Context,
	exec repositories.Executor, sessionId uuid.UUID, objectiveId string, score float64,
) error {
	args := r.Called(ctx, exec, sessionId, objectiveId, score)
	return args.Error(0)
}
