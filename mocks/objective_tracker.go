package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opsdrill/exercise-backend/models"
)

type ObjectiveTracker struct {
	mock.Mock
}

func (t *ObjectiveTracker) TrackDecisionImpact(ctx context.Context, decision models.Decision) error {
	args := t.Called(ctx, decision)
	return args.Error(0)
}
