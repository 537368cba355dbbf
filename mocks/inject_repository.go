package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories"
)

type InjectRepository struct {
	mock.Mock
}

func (r *InjectRepository) GetInjectById(ctx context.Context, exec repositories.Executor,
	injectId uuid.UUID,
) (models.Inject, error) {
	args := r.Called(ctx, exec, injectId)
	return args.Get(0).(models.Inject), args.Error(1)
}

func (r *InjectRepository) ListPublishedInjects(ctx context.Context, exec repositories.Executor,
	sessionId uuid.UUID,
) ([]models.Inject, error) {
	args := r.Called(ctx, exec, sessionId)
	return args.Get(0).([]models.Inject), args.Error(1)
}

func (r *InjectRepository) CreateInject(ctx context.Context, exec repositories.Executor,
	input models.CreateInjectInput, newInjectId uuid.UUID, publishedAt time.Time,
) error {
	args := r.Called(ctx, exec, input, newInjectId, publishedAt)
	return args.Error(0)
}

func (r *InjectRepository) ListIncidents(ctx context.Context, exec repositories.Executor,
	sessionId uuid.UUID,
) ([]models.Incident, error) {
	args := r.Called(ctx, exec, sessionId)
	return args.Get(0).([]models.Incident), args.Error(1)
}

func (r *InjectRepository) CreateIncident(ctx context.Context, exec repositories.Executor,
	input models.CreateIncidentInput, newIncidentId uuid.UUID,
) error {
	args := r.Called(ctx, exec, input, newIncidentId)
	return args.Error(0)
}
