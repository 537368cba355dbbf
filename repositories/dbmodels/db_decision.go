package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/utils"
)

type DBDecision struct {
	Id           uuid.UUID  `db:"id"`
	SessionId    uuid.UUID  `db:"session_id"`
	ProposerId   uuid.UUID  `db:"proposer_id"`
	Title        string     `db:"title"`
	Description  string     `db:"description"`
	DecisionType *string    `db:"decision_type"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	ExecutedAt   *time.Time `db:"executed_at"`
}

const TABLE_DECISIONS = "decisions"

var SelectDecisionColumn = utils.ColumnList[DBDecision]()

func AdaptDecision(db DBDecision) (models.Decision, error) {
	var decisionType *models.DecisionType
	if db.DecisionType != nil {
		t, _ := models.DecisionTypeFrom(*db.DecisionType)
		decisionType = &t
	}

	return models.Decision{
		Id:           db.Id,
		SessionId:    db.SessionId,
		ProposerId:   db.ProposerId,
		Title:        db.Title,
		Description:  db.Description,
		DecisionType: decisionType,
		Status:       models.DecisionStatusFrom(db.Status),
		CreatedAt:    db.CreatedAt,
		ExecutedAt:   db.ExecutedAt,
	}, nil
}
