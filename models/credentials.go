package models

import "github.com/google/uuid"

type Role string

const (
	ROLE_PARTICIPANT Role = "PARTICIPANT"
	ROLE_TRAINER     Role = "TRAINER"
	ROLE_ADMIN       Role = "ADMIN"
)

func RoleFrom(s string) Role {
	switch Role(s) {
	case ROLE_TRAINER:
		return ROLE_TRAINER
	case ROLE_ADMIN:
		return ROLE_ADMIN
	}
	return ROLE_PARTICIPANT
}

type Identity struct {
	UserId uuid.UUID
	Email  string
}

type Credentials struct {
	ActorIdentity Identity
	Role          Role
}

// IsPrivileged reports whether the caller bypasses the scope-based visibility
// rules (trainers and admins see everything).
func (c Credentials) IsPrivileged() bool {
	return c.Role == ROLE_TRAINER || c.Role == ROLE_ADMIN
}
