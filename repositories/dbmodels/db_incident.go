package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/utils"
)

// Scope is nullable: incidents recorded before scope metadata was
// denormalized carry only origin_inject_id, and the filter resolves their
// visibility from the originating inject.
type DBIncident struct {
	Id             uuid.UUID  `db:"id"`
	SessionId      uuid.UUID  `db:"session_id"`
	Title          string     `db:"title"`
	Description    string     `db:"description"`
	Severity       string     `db:"severity"`
	Scope          *string    `db:"scope"`
	AffectedRoles  []string   `db:"affected_roles"`
	TargetTeams    []string   `db:"target_teams"`
	OriginInjectId *uuid.UUID `db:"origin_inject_id"`
	CreatedAt      time.Time  `db:"created_at"`
}

const TABLE_INCIDENTS = "incidents"

var SelectIncidentColumn = utils.ColumnList[DBIncident]()

func AdaptIncident(db DBIncident) (models.Incident, error) {
	var scope models.EntityScope
	if db.Scope != nil {
		scope = models.EntityScope(*db.Scope)
	}

	return models.Incident{
		Id:          db.Id,
		SessionId:   db.SessionId,
		Title:       db.Title,
		Description: db.Description,
		Severity:    db.Severity,
		Scope: models.ScopeMetadata{
			Scope:          scope,
			AffectedRoles:  db.AffectedRoles,
			TargetTeams:    db.TargetTeams,
			OriginInjectId: db.OriginInjectId,
		},
		CreatedAt: db.CreatedAt,
	}, nil
}
