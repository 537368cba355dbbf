package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/opsdrill/exercise-backend/models"
)

type APISession struct {
	Id           string    `json:"id"`
	ScenarioId   string    `json:"scenario_id"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	AutoComplete bool      `json:"auto_complete"`
	StartedAt    null.Time `json:"started_at"`
	EndedAt      null.Time `json:"ended_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func AdaptSessionDto(session models.Session) APISession {
	return APISession{
		Id:           session.Id.String(),
		ScenarioId:   session.ScenarioId.String(),
		Name:         session.Name,
		Status:       string(session.Status),
		AutoComplete: session.AutoComplete,
		StartedAt:    null.TimeFromPtr(session.StartedAt),
		EndedAt:      null.TimeFromPtr(session.EndedAt),
		CreatedAt:    session.CreatedAt,
	}
}

type APISessionEvent struct {
	Id        string         `json:"id"`
	SessionId string         `json:"session_id"`
	EventType string         `json:"event_type"`
	ActorId   null.String    `json:"actor_id"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

func AdaptSessionEventDto(event models.SessionEvent) APISessionEvent {
	var actorId null.String
	if event.ActorId != nil {
		actorId = null.StringFrom(event.ActorId.String())
	}
	return APISessionEvent{
		Id:        event.Id.String(),
		SessionId: event.SessionId.String(),
		EventType: string(event.EventType),
		ActorId:   actorId,
		Payload:   event.Payload,
		CreatedAt: event.CreatedAt,
	}
}
