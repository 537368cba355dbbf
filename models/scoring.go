package models

import "github.com/google/uuid"

type SuccessLevel string

const (
	SuccessLevelExcellent        SuccessLevel = "Excellent"
	SuccessLevelGood             SuccessLevel = "Good"
	SuccessLevelAdequate         SuccessLevel = "Adequate"
	SuccessLevelNeedsImprovement SuccessLevel = "Needs Improvement"
)

// ScoreThresholds holds the success-level cut-points. They are a tunable
// training policy, not a structural contract, so they live as named
// configuration rather than constants buried in the scoring formula.
type ScoreThresholds struct {
	Excellent float64
	Good      float64
	Adequate  float64
}

var DefaultScoreThresholds = ScoreThresholds{
	Excellent: 90,
	Good:      70,
	Adequate:  50,
}

func (t ScoreThresholds) Level(overallScore float64) SuccessLevel {
	switch {
	case overallScore >= t.Excellent:
		return SuccessLevelExcellent
	case overallScore >= t.Good:
		return SuccessLevelGood
	case overallScore >= t.Adequate:
		return SuccessLevelAdequate
	default:
		return SuccessLevelNeedsImprovement
	}
}

type ObjectiveScore struct {
	ObjectiveId   string
	ObjectiveName string
	Status        ObjectiveStatus
	BaseScore     float64
	NetAdjustment float64
	Score         float64
	Weight        float64
}

type SessionScore struct {
	SessionId    uuid.UUID
	OverallScore float64
	SuccessLevel SuccessLevel
	Objectives   []ObjectiveScore
}
