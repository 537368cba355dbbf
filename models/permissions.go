package models

import "slices"

type Permission int

const (
	SESSION_READ Permission = iota
	SESSION_START
	DECISION_PROPOSE
	DECISION_RESPOND
	DECISION_EXECUTE
	INJECT_PUBLISH
	OBJECTIVE_OVERRIDE
	SCORE_READ
)

var participantPermissions = []Permission{
	SESSION_READ,
	DECISION_PROPOSE,
	DECISION_RESPOND,
	DECISION_EXECUTE,
	SCORE_READ,
}

var trainerPermissions = append([]Permission{
	SESSION_START,
	INJECT_PUBLISH,
	OBJECTIVE_OVERRIDE,
}, participantPermissions...)

var ROLES_PERMISSIONS = map[Role][]Permission{
	ROLE_PARTICIPANT: participantPermissions,
	ROLE_TRAINER:     trainerPermissions,
	ROLE_ADMIN:       trainerPermissions,
}

func (r Role) Permissions() []Permission {
	permissions := ROLES_PERMISSIONS[r]
	if permissions == nil {
		return []Permission{}
	}
	return permissions
}

func (r Role) HasPermission(permission Permission) bool {
	return slices.Contains(r.Permissions(), permission)
}
