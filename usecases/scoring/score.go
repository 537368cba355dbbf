package scoring

import (
	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
)

func sumAdjustments(adjustments []models.ScoreAdjustment) float64 {
	var total float64
	for _, a := range adjustments {
		total += a.Points
	}
	return total
}

// ScoreObjective computes one objective's score from its progress row.
//
// The base score follows the status: completed is 100 and failed is 0
// regardless of the recorded percentage, anything else scores the raw
// percentage. Bonuses add, penalties subtract, the result is clamped to
// [0, 100].
func ScoreObjective(progress models.ObjectiveProgress) models.ObjectiveScore {
	var base float64
	switch progress.Status {
	case models.ObjectiveStatusCompleted:
		base = 100
	case models.ObjectiveStatusFailed:
		base = 0
	default:
		base = models.ClampPercentage(progress.ProgressPercentage)
	}

	net := sumAdjustments(progress.Bonuses) - sumAdjustments(progress.Penalties)

	return models.ObjectiveScore{
		ObjectiveId:   progress.ObjectiveId,
		ObjectiveName: progress.ObjectiveName,
		Status:        progress.Status,
		BaseScore:     base,
		NetAdjustment: net,
		Score:         models.ClampPercentage(base + net),
		Weight:        progress.Weight,
	}
}

// ScoreSession computes the weighted overall score over every objective.
// A session with no objectives, or whose weights sum to zero, scores zero.
func ScoreSession(
	sessionId uuid.UUID,
	progresses []models.ObjectiveProgress,
	thresholds models.ScoreThresholds,
) models.SessionScore {
	objectives := make([]models.ObjectiveScore, 0, len(progresses))
	var weightedSum, totalWeight float64
	for _, progress := range progresses {
		score := ScoreObjective(progress)
		objectives = append(objectives, score)
		weightedSum += score.Score * score.Weight
		totalWeight += score.Weight
	}

	var overall float64
	if totalWeight > 0 {
		overall = weightedSum / totalWeight
	}

	return models.SessionScore{
		SessionId:    sessionId,
		OverallScore: overall,
		SuccessLevel: thresholds.Level(overall),
		Objectives:   objectives,
	}
}
