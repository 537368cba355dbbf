package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/pure_utils"
)

type APIScoreAdjustment struct {
	Reason    string    `json:"reason"`
	Points    float64   `json:"points"`
	Timestamp time.Time `json:"timestamp"`
}

type APIObjectiveProgress struct {
	Id                 string               `json:"id"`
	SessionId          string               `json:"session_id"`
	ObjectiveId        string               `json:"objective_id"`
	ObjectiveName      string               `json:"objective_name"`
	ProgressPercentage float64              `json:"progress_percentage"`
	Status             string               `json:"status"`
	Weight             float64              `json:"weight"`
	Metrics            map[string]any       `json:"metrics"`
	Penalties          []APIScoreAdjustment `json:"penalties"`
	Bonuses            []APIScoreAdjustment `json:"bonuses"`
	Score              null.Float           `json:"score"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

func adaptScoreAdjustmentDto(adjustment models.ScoreAdjustment) APIScoreAdjustment {
	return APIScoreAdjustment{
		Reason:    adjustment.Reason,
		Points:    adjustment.Points,
		Timestamp: adjustment.Timestamp,
	}
}

func AdaptObjectiveProgressDto(progress models.ObjectiveProgress) APIObjectiveProgress {
	return APIObjectiveProgress{
		Id:                 progress.Id.String(),
		SessionId:          progress.SessionId.String(),
		ObjectiveId:        progress.ObjectiveId,
		ObjectiveName:      progress.ObjectiveName,
		ProgressPercentage: progress.ProgressPercentage,
		Status:             string(progress.Status),
		Weight:             progress.Weight,
		Metrics:            progress.Metrics,
		Penalties:          pure_utils.Map(progress.Penalties, adaptScoreAdjustmentDto),
		Bonuses:            pure_utils.Map(progress.Bonuses, adaptScoreAdjustmentDto),
		Score:              null.FloatFromPtr(progress.Score),
		UpdatedAt:          progress.UpdatedAt,
	}
}

type APIObjectiveScore struct {
	ObjectiveId   string  `json:"objective_id"`
	ObjectiveName string  `json:"objective_name"`
	Status        string  `json:"status"`
	BaseScore     float64 `json:"base_score"`
	NetAdjustment float64 `json:"net_adjustment"`
	Score         float64 `json:"score"`
	Weight        float64 `json:"weight"`
}

type APISessionScore struct {
	SessionId    string              `json:"session_id"`
	OverallScore float64             `json:"overall_score"`
	SuccessLevel string              `json:"success_level"`
	Objectives   []APIObjectiveScore `json:"objectives"`
}

func AdaptSessionScoreDto(score models.SessionScore) APISessionScore {
	return APISessionScore{
		SessionId:    score.SessionId.String(),
		OverallScore: score.OverallScore,
		SuccessLevel: string(score.SuccessLevel),
		Objectives: pure_utils.Map(score.Objectives, func(o models.ObjectiveScore) APIObjectiveScore {
			return APIObjectiveScore{
				ObjectiveId:   o.ObjectiveId,
				ObjectiveName: o.ObjectiveName,
				Status:        string(o.Status),
				BaseScore:     o.BaseScore,
				NetAdjustment: o.NetAdjustment,
				Score:         o.Score,
				Weight:        o.Weight,
			}
		}),
	}
}

type UpdateObjectiveProgressBody struct {
	Percentage float64        `json:"progress_percentage" binding:"min=0,max=100"`
	Status     *string        `json:"status"`
	Metrics    map[string]any `json:"metrics"`
}

type ScoreAdjustmentBody struct {
	Reason string  `json:"reason" binding:"required"`
	Points float64 `json:"points" binding:"required,gt=0"`
}
