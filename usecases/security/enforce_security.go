package security

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
)

type EnforceSecurity interface {
	Permission(permission models.Permission) error
	UserId() uuid.UUID
}

type EnforceSecurityImpl struct {
	Credentials models.Credentials
}

func (e *EnforceSecurityImpl) Permission(permission models.Permission) error {
	if !e.Credentials.Role.HasPermission(permission) {
		return errors.Wrapf(models.ForbiddenError,
			"missing permission %d with role %s", permission, e.Credentials.Role)
	}
	return nil
}

func (e *EnforceSecurityImpl) UserId() uuid.UUID {
	return e.Credentials.ActorIdentity.UserId
}
