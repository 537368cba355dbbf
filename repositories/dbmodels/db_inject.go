package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/utils"
)

type DBInject struct {
	Id            uuid.UUID  `db:"id"`
	SessionId     uuid.UUID  `db:"session_id"`
	Title         string     `db:"title"`
	Body          string     `db:"body"`
	Status        string     `db:"status"`
	Scope         string     `db:"scope"`
	AffectedRoles []string   `db:"affected_roles"`
	TargetTeams   []string   `db:"target_teams"`
	PublishedAt   *time.Time `db:"published_at"`
	CreatedAt     time.Time  `db:"created_at"`
}

const TABLE_INJECTS = "injects"

var SelectInjectColumn = utils.ColumnList[DBInject]()

func AdaptInject(db DBInject) (models.Inject, error) {
	return models.Inject{
		Id:        db.Id,
		SessionId: db.SessionId,
		Title:     db.Title,
		Body:      db.Body,
		Status:    models.InjectStatus(db.Status),
		Scope: models.ScopeMetadata{
			Scope:         models.EntityScope(db.Scope),
			AffectedRoles: db.AffectedRoles,
			TargetTeams:   db.TargetTeams,
		},
		PublishedAt: db.PublishedAt,
		CreatedAt:   db.CreatedAt,
	}, nil
}
