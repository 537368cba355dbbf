package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/utils"
)

type DBScenario struct {
	Id          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

const TABLE_SCENARIOS = "scenarios"

var SelectScenarioColumn = utils.ColumnList[DBScenario]()

func AdaptScenario(db DBScenario) (models.Scenario, error) {
	return models.Scenario{
		Id:          db.Id,
		Name:        db.Name,
		Description: db.Description,
		CreatedAt:   db.CreatedAt,
	}, nil
}

type DBScenarioObjective struct {
	ScenarioId  uuid.UUID `db:"scenario_id"`
	ObjectiveId string    `db:"objective_id"`
	Name        string    `db:"name"`
	Weight      float64   `db:"weight"`
}

const TABLE_SCENARIO_OBJECTIVES = "scenario_objectives"

var SelectScenarioObjectiveColumn = utils.ColumnList[DBScenarioObjective]()

func AdaptScenarioObjective(db DBScenarioObjective) (models.ScenarioObjective, error) {
	return models.ScenarioObjective{
		ObjectiveId: db.ObjectiveId,
		Name:        db.Name,
		Weight:      db.Weight,
	}, nil
}
