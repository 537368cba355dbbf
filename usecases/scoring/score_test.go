package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/opsdrill/exercise-backend/models"
)

func TestScoreObjective(t *testing.T) {
	t.Run("completed objective scores 100 regardless of percentage", func(t *testing.T) {
		score := ScoreObjective(models.ObjectiveProgress{
			ObjectiveId:        "evacuation",
			Status:             models.ObjectiveStatusCompleted,
			ProgressPercentage: 60,
		})
		assert.Equal(t, float64(100), score.BaseScore)
		assert.Equal(t, float64(100), score.Score)
	})

	t.Run("failed objective scores 0 regardless of percentage", func(t *testing.T) {
		score := ScoreObjective(models.ObjectiveProgress{
			ObjectiveId:        "media",
			Status:             models.ObjectiveStatusFailed,
			ProgressPercentage: 80,
		})
		assert.Equal(t, float64(0), score.Score)
	})

	t.Run("in progress scores the percentage with net adjustments", func(t *testing.T) {
		score := ScoreObjective(models.ObjectiveProgress{
			ObjectiveId:        "coordination",
			Status:             models.ObjectiveStatusInProgress,
			ProgressPercentage: 70,
			Penalties: []models.ScoreAdjustment{
				{Reason: "late mutual aid request", Points: 10},
				{Reason: "missed check-in", Points: 5},
			},
			Bonuses: []models.ScoreAdjustment{
				{Reason: "early staging", Points: 5},
			},
		})
		assert.Equal(t, float64(70), score.BaseScore)
		assert.Equal(t, float64(-10), score.NetAdjustment)
		assert.Equal(t, float64(60), score.Score)
	})

	t.Run("adjustments clamp to the 0..100 range", func(t *testing.T) {
		low := ScoreObjective(models.ObjectiveProgress{
			Status:             models.ObjectiveStatusInProgress,
			ProgressPercentage: 10,
			Penalties:          []models.ScoreAdjustment{{Points: 50}},
		})
		assert.Equal(t, float64(0), low.Score)

		high := ScoreObjective(models.ObjectiveProgress{
			Status:  models.ObjectiveStatusCompleted,
			Bonuses: []models.ScoreAdjustment{{Points: 20}},
		})
		assert.Equal(t, float64(100), high.Score)
	})
}

func TestScoreSession(t *testing.T) {
	sessionId := uuid.New()

	t.Run("weighted overall and success level", func(t *testing.T) {
		score := ScoreSession(sessionId, []models.ObjectiveProgress{
			{
				ObjectiveId: "evacuation",
				Status:      models.ObjectiveStatusCompleted,
				Weight:      2,
			},
			{
				ObjectiveId:        "media",
				Status:             models.ObjectiveStatusInProgress,
				ProgressPercentage: 25,
				Weight:             2,
			},
		}, models.DefaultScoreThresholds)

		// (100*2 + 25*2) / 4 = 62.5
		assert.InDelta(t, 62.5, score.OverallScore, 0.001)
		assert.Equal(t, models.SuccessLevelAdequate, score.SuccessLevel)
		assert.Len(t, score.Objectives, 2)
	})

	t.Run("a 50 scores Adequate, just below scores Needs Improvement", func(t *testing.T) {
		at := ScoreSession(sessionId, []models.ObjectiveProgress{
			{Status: models.ObjectiveStatusInProgress, ProgressPercentage: 50, Weight: 1},
		}, models.DefaultScoreThresholds)
		assert.Equal(t, models.SuccessLevelAdequate, at.SuccessLevel)

		below := ScoreSession(sessionId, []models.ObjectiveProgress{
			{Status: models.ObjectiveStatusInProgress, ProgressPercentage: 49.9, Weight: 1},
		}, models.DefaultScoreThresholds)
		assert.Equal(t, models.SuccessLevelNeedsImprovement, below.SuccessLevel)
	})

	t.Run("no objectives scores zero", func(t *testing.T) {
		score := ScoreSession(sessionId, nil, models.DefaultScoreThresholds)
		assert.Equal(t, float64(0), score.OverallScore)
		assert.Equal(t, models.SuccessLevelNeedsImprovement, score.SuccessLevel)
	})
}
