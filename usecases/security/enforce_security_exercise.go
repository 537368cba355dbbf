package security

import (
	"errors"

	"github.com/opsdrill/exercise-backend/models"
)

type EnforceSecurityExercise interface {
	EnforceSecurity
	ReadSession(session models.Session) error
	StartSession(session models.Session) error
	ProposeDecision(session models.Session) error
	RespondToDecision(decision models.Decision) error
	ExecuteDecision(decision models.Decision) error
	PublishInject(session models.Session) error
	OverrideObjectiveProgress(session models.Session) error
	ReadScore(session models.Session) error
}

type EnforceSecurityExerciseImpl struct {
	EnforceSecurity
	Credentials models.Credentials
}

func (e *EnforceSecurityExerciseImpl) ReadSession(session models.Session) error {
	return errors.Join(
		e.Permission(models.SESSION_READ),
	)
}

func (e *EnforceSecurityExerciseImpl) StartSession(session models.Session) error {
	return errors.Join(
		e.Permission(models.SESSION_START),
	)
}

func (e *EnforceSecurityExerciseImpl) ProposeDecision(session models.Session) error {
	return errors.Join(
		e.Permission(models.DECISION_PROPOSE),
	)
}

func (e *EnforceSecurityExerciseImpl) RespondToDecision(decision models.Decision) error {
	return errors.Join(
		e.Permission(models.DECISION_RESPOND),
	)
}

func (e *EnforceSecurityExerciseImpl) ExecuteDecision(decision models.Decision) error {
	return errors.Join(
		e.Permission(models.DECISION_EXECUTE),
	)
}

func (e *EnforceSecurityExerciseImpl) PublishInject(session models.Session) error {
	return errors.Join(
		e.Permission(models.INJECT_PUBLISH),
	)
}

func (e *EnforceSecurityExerciseImpl) OverrideObjectiveProgress(session models.Session) error {
	return errors.Join(
		e.Permission(models.OBJECTIVE_OVERRIDE),
	)
}

func (e *EnforceSecurityExerciseImpl) ReadScore(session models.Session) error {
	return errors.Join(
		e.Permission(models.SCORE_READ),
	)
}
