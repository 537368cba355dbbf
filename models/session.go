package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusPending    SessionStatus = "pending"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusArchived   SessionStatus = "archived"
)

// Session is one run of a scenario. Decisions, objective progress and scoped
// narrative entities are exclusively owned by their session.
type Session struct {
	Id           uuid.UUID
	ScenarioId   uuid.UUID
	Name         string
	Status       SessionStatus
	AutoComplete bool
	StartedAt    *time.Time
	EndedAt      *time.Time
	CreatedAt    time.Time
}

type Scenario struct {
	Id          uuid.UUID
	Name        string
	Description string
	Objectives  []ScenarioObjective
	CreatedAt   time.Time
}

// ScenarioObjective is the authored definition of a scored goal. Its weight
// is copied onto the session's ObjectiveProgress at initialization time.
type ScenarioObjective struct {
	ObjectiveId string
	Name        string
	Weight      float64
}

// SessionParticipant carries the per-session role and team assignment of one
// user. Roles are free-form tags authored with the scenario (health, civil,
// media relations...), teams are named groups used by team-scoped content.
type SessionParticipant struct {
	SessionId uuid.UUID
	UserId    uuid.UUID
	Role      string
	Teams     []string
	JoinedAt  time.Time
}
