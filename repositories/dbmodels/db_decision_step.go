package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/utils"
)

type DBDecisionStep struct {
	Id          uuid.UUID  `db:"id"`
	DecisionId  uuid.UUID  `db:"decision_id"`
	UserId      uuid.UUID  `db:"user_id"`
	Role        string     `db:"role"`
	StepOrder   int        `db:"step_order"`
	Status      string     `db:"status"`
	ResponderId *uuid.UUID `db:"responder_id"`
	RespondedAt *time.Time `db:"responded_at"`
	Comment     *string    `db:"comment"`
}

const TABLE_DECISION_STEPS = "decision_steps"

var SelectDecisionStepColumn = utils.ColumnList[DBDecisionStep]()

func AdaptDecisionStep(db DBDecisionStep) (models.DecisionStep, error) {
	return models.DecisionStep{
		Id:          db.Id,
		DecisionId:  db.DecisionId,
		UserId:      db.UserId,
		Role:        db.Role,
		StepOrder:   db.StepOrder,
		Status:      models.DecisionStepStatus(db.Status),
		ResponderId: db.ResponderId,
		RespondedAt: db.RespondedAt,
		Comment:     db.Comment,
	}, nil
}
