package models

import (
	"github.com/google/uuid"
)

// detached full objective re-evaluation pass, enqueued after a decision
// execution and retried by the task queue with its own backoff
type ObjectiveReevaluationArgs struct {
	SessionId uuid.UUID `json:"session_id"`
}

func (ObjectiveReevaluationArgs) Kind() string { return "objective_reevaluation" }
