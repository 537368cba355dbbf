package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/utils"
)

type DBSessionEvent struct {
	Id             uuid.UUID  `db:"id"`
	SessionId      uuid.UUID  `db:"session_id"`
	EventType      string     `db:"event_type"`
	ActorId        *uuid.UUID `db:"actor_id"`
	Payload        []byte     `db:"payload"`
	Scope          *string    `db:"scope"`
	AffectedRoles  []string   `db:"affected_roles"`
	TargetTeams    []string   `db:"target_teams"`
	OriginInjectId *uuid.UUID `db:"origin_inject_id"`
	CreatedAt      time.Time  `db:"created_at"`
}

const TABLE_SESSION_EVENTS = "session_events"

var SelectSessionEventColumn = utils.ColumnList[DBSessionEvent]()

func AdaptSessionEvent(db DBSessionEvent) (models.SessionEvent, error) {
	var payload map[string]any
	if len(db.Payload) > 0 {
		if err := json.Unmarshal(db.Payload, &payload); err != nil {
			return models.SessionEvent{}, errors.Wrap(err, "can't decode session event payload")
		}
	}

	var scope models.EntityScope
	if db.Scope != nil {
		scope = models.EntityScope(*db.Scope)
	}

	return models.SessionEvent{
		Id:        db.Id,
		SessionId: db.SessionId,
		EventType: models.SessionEventType(db.EventType),
		ActorId:   db.ActorId,
		Payload:   payload,
		Scope: models.ScopeMetadata{
			Scope:          scope,
			AffectedRoles:  db.AffectedRoles,
			TargetTeams:    db.TargetTeams,
			OriginInjectId: db.OriginInjectId,
		},
		CreatedAt: db.CreatedAt,
	}, nil
}
