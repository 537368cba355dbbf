package models

import (
	"time"

	"github.com/google/uuid"
)

type EntityScope string

const (
	ScopeUniversal    EntityScope = "universal"
	ScopeRoleSpecific EntityScope = "role_specific"
	ScopeTeamSpecific EntityScope = "team_specific"
)

// ScopeMetadata is the visibility policy denormalized onto a narrative
// entity. Scope may be empty on rows recorded before the denormalization; the
// filter then resolves it through OriginInjectId (see usecases/scopes).
type ScopeMetadata struct {
	Scope          EntityScope
	AffectedRoles  []string
	TargetTeams    []string
	OriginInjectId *uuid.UUID
}

// ScopeViewer is the identity a visibility check runs against, resolved once
// per request: role and team memberships come from the session's participant
// assignment, not from each row.
type ScopeViewer struct {
	UserId          uuid.UUID
	Role            string
	IsPrivileged    bool
	TeamMemberships map[string]struct{}
}

func NewScopeViewer(participant SessionParticipant, privileged bool) ScopeViewer {
	memberships := make(map[string]struct{}, len(participant.Teams))
	for _, team := range participant.Teams {
		memberships[team] = struct{}{}
	}
	return ScopeViewer{
		UserId:          participant.UserId,
		Role:            participant.Role,
		IsPrivileged:    privileged,
		TeamMemberships: memberships,
	}
}

type InjectStatus string

const (
	InjectStatusDraft     InjectStatus = "draft"
	InjectStatusPublished InjectStatus = "published"
)

// Inject is a scenario-authored narrative event (news item, field update,
// directive) published into a running session, optionally scoped to specific
// roles or teams.
type Inject struct {
	Id          uuid.UUID
	SessionId   uuid.UUID
	Title       string
	Body        string
	Status      InjectStatus
	Scope       ScopeMetadata
	PublishedAt *time.Time
	CreatedAt   time.Time
}

type CreateInjectInput struct {
	SessionId uuid.UUID
	Title     string
	Body      string
	Scope     ScopeMetadata
}

type Incident struct {
	Id          uuid.UUID
	SessionId   uuid.UUID
	Title       string
	Description string
	Severity    string
	Scope       ScopeMetadata
	CreatedAt   time.Time
}

type CreateIncidentInput struct {
	SessionId   uuid.UUID
	Title       string
	Description string
	Severity    string
	Scope       ScopeMetadata
}
