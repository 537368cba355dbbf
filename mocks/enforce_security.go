package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/opsdrill/exercise-backend/models"
)

type EnforceSecurity struct {
	mock.Mock
}

func (e *EnforceSecurity) Permission(permission models.Permission) error {
	args := e.Called(permission)
	return args.Error(0)
}

func (e *EnforceSecurity) UserId() uuid.UUID {
	args := e.Called()
	return args.Get(0).(uuid.UUID)
}

func (e *EnforceSecurity) ReadSession(session models.Session) error {
	args := e.Called(session)
	return args.Error(0)
}

func (e *EnforceSecurity) StartSession(session models.Session) error {
	args := e.Called(session)
	return args.Error(0)
}

func (e *EnforceSecurity) ProposeDecision(session models.Session) error {
	args := e.Called(session)
	return args.Error(0)
}

func (e *EnforceSecurity) RespondToDecision(decision models.Decision) error {
	args := e.Called(decision)
	return args.Error(0)
}

func (e *EnforceSecurity) ExecuteDecision(decision models.Decision) error {
	args := e.Called(decision)
	return args.Error(0)
}

func (e *EnforceSecurity) PublishInject(session models.Session) error {
	args := e.Called(session)
	return args.Error(0)
}

func (e *EnforceSecurity) OverrideObjectiveProgress(session models.Session) error {
	args := e.Called(session)
	return args.Error(0)
}

func (e *EnforceSecurity) ReadScore(session models.Session) error {
	args := e.Called(session)
	return args.Error(0)
}
