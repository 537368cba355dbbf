package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opsdrill/exercise-backend/models"
)

type DecisionClassifier struct {
	mock.Mock
}

func (c *DecisionClassifier) ClassifyDecision(ctx context.Context,
	decision models.Decision,
) (models.DecisionClassification, error) {
	args := c.Called(ctx, decision)
	return args.Get(0).(models.DecisionClassification), args.Error(1)
}
