// Package exercise_jobs holds the river workers running detached from the
// request path.
package exercise_jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/riverqueue/river"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/utils"
)

const OBJECTIVE_REEVALUATION_TIMEOUT = 1 * time.Minute

type objectiveReevaluator interface {
	ReevaluateSession(ctx context.Context, sessionId uuid.UUID) error
}

// ObjectiveReevaluationWorker runs a full objective pass for a session after
// a decision execution: score refresh, full-progress promotions and the
// auto-completion check. Failures are retried by the queue.
type ObjectiveReevaluationWorker struct {
	river.WorkerDefaults[models.ObjectiveReevaluationArgs]

	reevaluator objectiveReevaluator
}

func NewObjectiveReevaluationWorker(reevaluator objectiveReevaluator) *ObjectiveReevaluationWorker {
	return &ObjectiveReevaluationWorker{reevaluator: reevaluator}
}

func (w *ObjectiveReevaluationWorker) Timeout(job *river.Job[models.ObjectiveReevaluationArgs]) time.Duration {
	return OBJECTIVE_REEVALUATION_TIMEOUT
}

func (w *ObjectiveReevaluationWorker) Work(ctx context.Context, job *river.Job[models.ObjectiveReevaluationArgs]) error {
	logger := utils.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "re-evaluating session objectives",
		"session_id", job.Args.SessionId.String())

	return w.reevaluator.ReevaluateSession(ctx, job.Args.SessionId)
}
