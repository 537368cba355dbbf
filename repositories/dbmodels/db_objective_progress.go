package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/utils"
)

type DBObjectiveProgress struct {
	Id                 uuid.UUID `db:"id"`
	SessionId          uuid.UUID `db:"session_id"`
	ObjectiveId        string    `db:"objective_id"`
	ObjectiveName      string    `db:"objective_name"`
	ProgressPercentage float64   `db:"progress_percentage"`
	Status             string    `db:"status"`
	Weight             float64   `db:"weight"`
	Metrics            []byte    `db:"metrics"`
	Penalties          []byte    `db:"penalties"`
	Bonuses            []byte    `db:"bonuses"`
	Score              *float64  `db:"score"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

const TABLE_OBJECTIVE_PROGRESS = "objective_progress"

var SelectObjectiveProgressColumn = utils.ColumnList[DBObjectiveProgress]()

func AdaptObjectiveProgress(db DBObjectiveProgress) (models.ObjectiveProgress, error) {
	var metrics map[string]any
	if len(db.Metrics) > 0 {
		if err := json.Unmarshal(db.Metrics, &metrics); err != nil {
			return models.ObjectiveProgress{}, errors.Wrap(err, "can't decode objective metrics")
		}
	}

	var penalties, bonuses []models.ScoreAdjustment
	if len(db.Penalties) > 0 {
		if err := json.Unmarshal(db.Penalties, &penalties); err != nil {
			return models.ObjectiveProgress{}, errors.Wrap(err, "can't decode objective penalties")
		}
	}
	if len(db.Bonuses) > 0 {
		if err := json.Unmarshal(db.Bonuses, &bonuses); err != nil {
			return models.ObjectiveProgress{}, errors.Wrap(err, "can't decode objective bonuses")
		}
	}

	return models.ObjectiveProgress{
		Id:                 db.Id,
		SessionId:          db.SessionId,
		ObjectiveId:        db.ObjectiveId,
		ObjectiveName:      db.ObjectiveName,
		ProgressPercentage: db.ProgressPercentage,
		Status:             models.ObjectiveStatus(db.Status),
		Weight:             db.Weight,
		Metrics:            metrics,
		Penalties:          penalties,
		Bonuses:            bonuses,
		Score:              db.Score,
		CreatedAt:          db.CreatedAt,
		UpdatedAt:          db.UpdatedAt,
	}, nil
}
