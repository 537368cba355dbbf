package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories"
)

type SessionEventRepository struct {
	mock.Mock
}

func (r *SessionEventRepository) CreateSessionEvent(ctx context.Context,
	exec repositories.Executor, input models.CreateSessionEventInput,
) error {
	args := r.Called(ctx, exec, input)
	return args.Error(0)
}

func (r *SessionEventRepository) ListSessionEvents(ctx context.Context,
	exec repositories.Executor, sessionId uuid.UUID,
) ([]models.SessionEvent, error) {
	args := r.Called(ctx, exec, sessionId)
	return args.Get(0).([]models.SessionEvent), args.Error(1)
}
