package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/opsdrill/exercise-backend/models"
)

type APIScope struct {
	Scope         string   `json:"scope"`
	AffectedRoles []string `json:"affected_roles,omitempty"`
	TargetTeams   []string `json:"target_teams,omitempty"`
}

func adaptScopeDto(meta models.ScopeMetadata) APIScope {
	return APIScope{
		Scope:         string(meta.Scope),
		AffectedRoles: meta.AffectedRoles,
		TargetTeams:   meta.TargetTeams,
	}
}

type APIInject struct {
	Id          string    `json:"id"`
	SessionId   string    `json:"session_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Status      string    `json:"status"`
	Scope       APIScope  `json:"scope"`
	PublishedAt null.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func AdaptInjectDto(inject models.Inject) APIInject {
	return APIInject{
		Id:          inject.Id.String(),
		SessionId:   inject.SessionId.String(),
		Title:       inject.Title,
		Body:        inject.Body,
		Status:      string(inject.Status),
		Scope:       adaptScopeDto(inject.Scope),
		PublishedAt: null.TimeFromPtr(inject.PublishedAt),
		CreatedAt:   inject.CreatedAt,
	}
}

type APIIncident struct {
	Id          string    `json:"id"`
	SessionId   string    `json:"session_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	Scope       APIScope  `json:"scope"`
	CreatedAt   time.Time `json:"created_at"`
}

func AdaptIncidentDto(incident models.Incident) APIIncident {
	return APIIncident{
		Id:          incident.Id.String(),
		SessionId:   incident.SessionId.String(),
		Title:       incident.Title,
		Description: incident.Description,
		Severity:    incident.Severity,
		Scope:       adaptScopeDto(incident.Scope),
		CreatedAt:   incident.CreatedAt,
	}
}

type ScopeBody struct {
	Scope         string   `json:"scope" binding:"omitempty,oneof=universal role_specific team_specific"`
	AffectedRoles []string `json:"affected_roles"`
	TargetTeams   []string `json:"target_teams"`
}

func AdaptScopeBody(body ScopeBody) models.ScopeMetadata {
	return models.ScopeMetadata{
		Scope:         models.EntityScope(body.Scope),
		AffectedRoles: body.AffectedRoles,
		TargetTeams:   body.TargetTeams,
	}
}

type PublishInjectBody struct {
	SessionId string    `json:"session_id" binding:"required,uuid"`
	Title     string    `json:"title" binding:"required"`
	Body      string    `json:"body"`
	Scope     ScopeBody `json:"scope"`
}

type CreateIncidentBody struct {
	SessionId      string    `json:"session_id" binding:"required,uuid"`
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description"`
	Severity       string    `json:"severity" binding:"omitempty,oneof=minor moderate major critical"`
	Scope          ScopeBody `json:"scope"`
	OriginInjectId *string   `json:"origin_inject_id" binding:"omitempty,uuid"`
}
