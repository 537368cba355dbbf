package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionEventType string

const (
	SessionEventDecisionProposed SessionEventType = "decision.proposed"
	SessionEventDecisionResolved SessionEventType = "decision.resolved"
	SessionEventDecisionExecuted SessionEventType = "decision.executed"
	SessionEventInjectPublished  SessionEventType = "inject.published"
	SessionEventIncidentCreated  SessionEventType = "incident.created"
	SessionEventObjectiveUpdated SessionEventType = "objective.updated"
	SessionEventSessionCompleted SessionEventType = "session.completed"
)

// SessionEvent is one row of the session timeline. Events spawned from a
// published inject carry the inject's scope so the visibility filter applies
// to them; everything else is visible to all participants.
type SessionEvent struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	EventType SessionEventType
	ActorId   *uuid.UUID
	Payload   map[string]any
	Scope     ScopeMetadata
	CreatedAt time.Time
}

type CreateSessionEventInput struct {
	SessionId uuid.UUID
	EventType SessionEventType
	ActorId   *uuid.UUID
	Payload   map[string]any
	Scope     ScopeMetadata
}
