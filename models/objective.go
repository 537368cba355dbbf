package models

import (
	"time"

	"github.com/google/uuid"
)

type ObjectiveStatus string

const (
	ObjectiveStatusNotStarted ObjectiveStatus = "not_started"
	ObjectiveStatusInProgress ObjectiveStatus = "in_progress"
	ObjectiveStatusCompleted  ObjectiveStatus = "completed"
	ObjectiveStatusFailed     ObjectiveStatus = "failed"
)

// IsResolved reports whether the objective reached a final state, one way or
// the other. Auto-completion of a session requires every objective resolved.
func (s ObjectiveStatus) IsResolved() bool {
	return s == ObjectiveStatusCompleted || s == ObjectiveStatusFailed
}

// ScoreAdjustment is one penalty or bonus applied to an objective. The
// histories are append-only so the audit trail of every scoring adjustment
// stays reconstructable.
type ScoreAdjustment struct {
	Reason    string    `json:"reason"`
	Points    float64   `json:"points"`
	Timestamp time.Time `json:"timestamp"`
}

// ObjectiveProgress tracks one scenario objective for one session. Created
// once per objective when the session starts, mutated by decision-impact
// rules and trainer overrides, never deleted during the session's life.
type ObjectiveProgress struct {
	Id                 uuid.UUID
	SessionId          uuid.UUID
	ObjectiveId        string
	ObjectiveName      string
	ProgressPercentage float64
	Status             ObjectiveStatus
	Weight             float64
	Metrics            map[string]any
	Penalties          []ScoreAdjustment
	Bonuses            []ScoreAdjustment
	Score              *float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type UpdateObjectiveProgressInput struct {
	SessionId   uuid.UUID
	ObjectiveId string
	Percentage  float64
	Status      *ObjectiveStatus
	Metrics     map[string]any
}

// ClampPercentage bounds a progress percentage to [0, 100].
func ClampPercentage(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
