package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/utils"
)

type DBSession struct {
	Id           uuid.UUID  `db:"id"`
	ScenarioId   uuid.UUID  `db:"scenario_id"`
	Name         string     `db:"name"`
	Status       string     `db:"status"`
	AutoComplete bool       `db:"auto_complete"`
	StartedAt    *time.Time `db:"started_at"`
	EndedAt      *time.Time `db:"ended_at"`
	CreatedAt    time.Time  `db:"created_at"`
}

const TABLE_SESSIONS = "sessions"

var SelectSessionColumn = utils.ColumnList[DBSession]()

func AdaptSession(db DBSession) (models.Session, error) {
	return models.Session{
		Id:           db.Id,
		ScenarioId:   db.ScenarioId,
		Name:         db.Name,
		Status:       models.SessionStatus(db.Status),
		AutoComplete: db.AutoComplete,
		StartedAt:    db.StartedAt,
		EndedAt:      db.EndedAt,
		CreatedAt:    db.CreatedAt,
	}, nil
}

type DBSessionParticipant struct {
	SessionId uuid.UUID `db:"session_id"`
	UserId    uuid.UUID `db:"user_id"`
	Role      string    `db:"role"`
	Teams     []string  `db:"teams"`
	JoinedAt  time.Time `db:"joined_at"`
}

const TABLE_SESSION_PARTICIPANTS = "session_participants"

var SelectSessionParticipantColumn = utils.ColumnList[DBSessionParticipant]()

func AdaptSessionParticipant(db DBSessionParticipant) (models.SessionParticipant, error) {
	return models.SessionParticipant{
		SessionId: db.SessionId,
		UserId:    db.UserId,
		Role:      db.Role,
		Teams:     db.Teams,
		JoinedAt:  db.JoinedAt,
	}, nil
}
