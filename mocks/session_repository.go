package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories"
)

type SessionRepository struct {
	mock.Mock
}

func (r *SessionRepository) GetSessionById(ctx context.Context, exec repositories.Executor,
	sessionId uuid.UUID,
) (models.Session, error) {
	args := r.Called(ctx, exec, sessionId)
	return args.Get(0).(models.Session), args.Error(1)
}

func (r *SessionRepository) GetScenarioById(ctx context.Context, exec repositories.Executor,
	scenarioId uuid.UUID,
) (models.Scenario, error) {
	args := r.Called(ctx, exec, scenarioId)
	return args.Get(0).(models.Scenario), args.Error(1)
}

func (r *SessionRepository) GetSessionParticipant(ctx context.Context, exec repositories.Executor,
	sessionId uuid.UUID, userId uuid.UUID,
) (models.SessionParticipant, error) {
	args := r.Called(ctx, exec, sessionId, userId)
	return args.Get(0).(models.SessionParticipant), args.Error(1)
}

func (r *SessionRepository) ListSessionParticipants(ctx context.Context, exec repositories.Executor,
	sessionId uuid.UUID,
) ([]models.SessionParticipant, error) {
	args := r.Called(ctx, exec, sessionId)
	return args.Get(0).([]models.SessionParticipant), args.Error(1)
}

func (r *SessionRepository) UpdateSessionStatus(ctx context.Context, exec repositories.Executor,
	sessionId uuid.UUID, from, to models.SessionStatus, endedAt *time.Time,
) (int64, error) {
	args := r.Called(ctx, exec, sessionId, from, to, endedAt)
	return args.Get(0).(int64), args.Error(1)
}
