package security

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsdrill/exercise-backend/models"
)

func enforceFor(role models.Role) *EnforceSecurityExerciseImpl {
	creds := models.Credentials{Role: role}
	return &EnforceSecurityExerciseImpl{
		EnforceSecurity: &EnforceSecurityImpl{Credentials: creds},
		Credentials:     creds,
	}
}

func TestEnforceSecurityExercise(t *testing.T) {
	session := models.Session{}
	decision := models.Decision{}

	t.Run("participants can propose, respond and execute", func(t *testing.T) {
		e := enforceFor(models.ROLE_PARTICIPANT)
		assert.NoError(t, e.ProposeDecision(session))
		assert.NoError(t, e.RespondToDecision(decision))
		assert.NoError(t, e.ExecuteDecision(decision))
		assert.NoError(t, e.ReadScore(session))
	})

	t.Run("participants cannot run trainer operations", func(t *testing.T) {
		e := enforceFor(models.ROLE_PARTICIPANT)
		assert.ErrorIs(t, e.StartSession(session), models.ForbiddenError)
		assert.ErrorIs(t, e.PublishInject(session), models.ForbiddenError)
		assert.ErrorIs(t, e.OverrideObjectiveProgress(session), models.ForbiddenError)
	})

	t.Run("trainers can run every operation", func(t *testing.T) {
		e := enforceFor(models.ROLE_TRAINER)
		assert.NoError(t, e.StartSession(session))
		assert.NoError(t, e.PublishInject(session))
		assert.NoError(t, e.OverrideObjectiveProgress(session))
		assert.NoError(t, e.ProposeDecision(session))
	})
}
