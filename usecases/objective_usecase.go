package usecases

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/riverqueue/river"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories"
	"github.com/opsdrill/exercise-backend/usecases/executor_factory"
	"github.com/opsdrill/exercise-backend/usecases/scoring"
	"github.com/opsdrill/exercise-backend/usecases/security"
	"github.com/opsdrill/exercise-backend/utils"
)

type objectiveProgressRepository interface {
	ListObjectiveProgress(ctx context.Context, exec repositories.Executor,
		sessionId uuid.UUID) ([]models.ObjectiveProgress, error)
	GetObjectiveProgress(ctx context.Context, exec repositories.Executor,
		sessionId uuid.UUID, objectiveId string) (models.ObjectiveProgress, error)
	CreateObjectiveProgress(ctx context.Context, exec repositories.Executor,
		sessionId uuid.UUID, objectives []models.ScenarioObjective) error
	UpsertObjectiveProgress(ctx context.Context, exec repositories.Executor,
		input models.UpdateObjectiveProgressInput) (int64, error)
	ApplyProgressDelta(ctx context.Context, exec repositories.Executor,
		sessionId uuid.UUID, objectiveId string, delta float64) (int64, error)
	AppendScoreAdjustment(ctx context.Context, exec repositories.Executor,
		sessionId uuid.UUID, objectiveId string, column repositories.AdjustmentColumn,
		adjustment models.ScoreAdjustment) (int64, error)
	UpdateObjectiveScore(ctx context.Context, exec repositories.Executor,
		sessionId uuid.UUID, objectiveId string, score float64) error
}

type sessionReadWriteRepository interface {
	GetSessionById(ctx context.Context, exec repositories.Executor,
		sessionId uuid.UUID) (models.Session, error)
	GetScenarioById(ctx context.Context, exec repositories.Executor,
		scenarioId uuid.UUID) (models.Scenario, error)
	UpdateSessionStatus(ctx context.Context, exec repositories.Executor,
		sessionId uuid.UUID, from, to models.SessionStatus, endedAt *time.Time) (int64, error)
}

type sessionEventWriter interface {
	CreateSessionEvent(ctx context.Context, exec repositories.Executor,
		input models.CreateSessionEventInput) error
}

type taskQueueRepository interface {
	Enqueue(ctx context.Context, args river.JobArgs) error
}

// ObjectiveUsecase tracks objective progress and scoring for a session, and
// owns the auto-completion check that closes a session once every objective
// is resolved.
type ObjectiveUsecase struct {
	enforceSecurity   security.EnforceSecurityExercise
	executorFactory   executor_factory.ExecutorFactory
	repository        objectiveProgressRepository
	sessionRepository sessionReadWriteRepository
	eventRepository   sessionEventWriter
	thresholds        models.ScoreThresholds
	impactRules       []scoring.ImpactRule
}

// InitializeObjectives seeds one progress row per scenario objective. Safe to
// call more than once: existing rows are left untouched.
func (usecase *ObjectiveUsecase) InitializeObjectives(ctx context.Context,
	sessionId uuid.UUID,
) ([]models.ObjectiveProgress, error) {
	return usecase.initializeObjectives(ctx, usecase.executorFactory.NewExecutor(), sessionId)
}

// initializeObjectives takes its executor so session start can run the
// seeding inside the same transaction as the status transition.
func (usecase *ObjectiveUsecase) initializeObjectives(ctx context.Context,
	exec repositories.Executor, sessionId uuid.UUID,
) ([]models.ObjectiveProgress, error) {
	session, err := usecase.sessionRepository.GetSessionById(ctx, exec, sessionId)
	if err != nil {
		return nil, err
	}
	if err := usecase.enforceSecurity.OverrideObjectiveProgress(session); err != nil {
		return nil, err
	}

	scenario, err := usecase.sessionRepository.GetScenarioById(ctx, exec, session.ScenarioId)
	if err != nil {
		if errors.Is(err, models.NotFoundError) {
			return nil, models.ErrSessionWithoutScenario
		}
		return nil, err
	}
	if len(scenario.Objectives) == 0 {
		return nil, errors.Wrapf(models.BadParameterError,
			"scenario %s has no objectives", scenario.Id)
	}

	if err := usecase.repository.CreateObjectiveProgress(ctx, exec, sessionId, scenario.Objectives); err != nil {
		return nil, err
	}
	return usecase.repository.ListObjectiveProgress(ctx, exec, sessionId)
}

func (usecase *ObjectiveUsecase) ListObjectives(ctx context.Context,
	sessionId uuid.UUID,
) ([]models.ObjectiveProgress, error) {
	exec := usecase.executorFactory.NewExecutor()

	session, err := usecase.sessionRepository.GetSessionById(ctx, exec, sessionId)
	if err != nil {
		return nil, err
	}
	if err := usecase.enforceSecurity.ReadSession(session); err != nil {
		return nil, err
	}

	return usecase.repository.ListObjectiveProgress(ctx, exec, sessionId)
}

// UpdateProgress applies a trainer override of percentage, status and
// metrics, then runs the auto-completion check.
func (usecase *ObjectiveUsecase) UpdateProgress(ctx context.Context,
	input models.UpdateObjectiveProgressInput,
) (models.ObjectiveProgress, error) {
	exec := usecase.executorFactory.NewExecutor()

	session, err := usecase.sessionRepository.GetSessionById(ctx, exec, input.SessionId)
	if err != nil {
		return models.ObjectiveProgress{}, err
	}
	if err := usecase.enforceSecurity.OverrideObjectiveProgress(session); err != nil {
		return models.ObjectiveProgress{}, err
	}
	if session.Status != models.SessionStatusInProgress {
		return models.ObjectiveProgress{}, models.ErrSessionNotActive
	}

	rows, err := usecase.repository.UpsertObjectiveProgress(ctx, exec, input)
	if err != nil {
		return models.ObjectiveProgress{}, err
	}
	if rows == 0 {
		return models.ObjectiveProgress{}, errors.Wrapf(models.ErrObjectiveNotFound,
			"objective %s in session %s", input.ObjectiveId, input.SessionId)
	}

	usecase.emitObjectiveEvent(ctx, exec, input.SessionId, input.ObjectiveId, map[string]any{
		"progress_percentage": models.ClampPercentage(input.Percentage),
	})

	if err := usecase.checkAutoCompletion(ctx, exec, input.SessionId); err != nil {
		return models.ObjectiveProgress{}, err
	}

	return usecase.repository.GetObjectiveProgress(ctx, exec, input.SessionId, input.ObjectiveId)
}

func (usecase *ObjectiveUsecase) AddPenalty(ctx context.Context,
	sessionId uuid.UUID, objectiveId string, reason string, points float64,
) (models.ObjectiveProgress, error) {
	return usecase.addAdjustment(ctx, sessionId, objectiveId,
		repositories.AdjustmentPenalties, reason, points)
}

func (usecase *ObjectiveUsecase) AddBonus(ctx context.Context,
	sessionId uuid.UUID, objectiveId string, reason string, points float64,
) (models.ObjectiveProgress, error) {
	return usecase.addAdjustment(ctx, sessionId, objectiveId,
		repositories.AdjustmentBonuses, reason, points)
}

func (usecase *ObjectiveUsecase) addAdjustment(ctx context.Context,
	sessionId uuid.UUID, objectiveId string, column repositories.AdjustmentColumn,
	reason string, points float64,
) (models.ObjectiveProgress, error) {
	exec := usecase.executorFactory.NewExecutor()

	session, err := usecase.sessionRepository.GetSessionById(ctx, exec, sessionId)
	if err != nil {
		return models.ObjectiveProgress{}, err
	}
	if err := usecase.enforceSecurity.OverrideObjectiveProgress(session); err != nil {
		return models.ObjectiveProgress{}, err
	}
	if points <= 0 {
		return models.ObjectiveProgress{}, errors.Wrap(models.BadParameterError,
			"adjustment points must be strictly positive")
	}

	rows, err := usecase.repository.AppendScoreAdjustment(ctx, exec, sessionId, objectiveId,
		column, models.ScoreAdjustment{
			Reason:    reason,
			Points:    points,
			Timestamp: time.Now(),
		})
	if err != nil {
		return models.ObjectiveProgress{}, err
	}
	if rows == 0 {
		return models.ObjectiveProgress{}, errors.Wrapf(models.ErrObjectiveNotFound,
			"objective %s in session %s", objectiveId, sessionId)
	}

	usecase.emitObjectiveEvent(ctx, exec, sessionId, objectiveId, map[string]any{
		"adjustment": string(column),
		"points":     points,
		"reason":     reason,
	})

	return usecase.repository.GetObjectiveProgress(ctx, exec, sessionId, objectiveId)
}

// CalculateSessionScore computes the weighted score over all objectives and
// persists each objective's score as a side effect.
func (usecase *ObjectiveUsecase) CalculateSessionScore(ctx context.Context,
	sessionId uuid.UUID,
) (models.SessionScore, error) {
	exec := usecase.executorFactory.NewExecutor()

	session, err := usecase.sessionRepository.GetSessionById(ctx, exec, sessionId)
	if err != nil {
		return models.SessionScore{}, err
	}
	if err := usecase.enforceSecurity.ReadScore(session); err != nil {
		return models.SessionScore{}, err
	}

	progresses, err := usecase.repository.ListObjectiveProgress(ctx, exec, sessionId)
	if err != nil {
		return models.SessionScore{}, err
	}
	if len(progresses) == 0 {
		return models.SessionScore{}, errors.Wrapf(models.ErrSessionHasNoObjectives,
			"session %s", sessionId)
	}

	score := scoring.ScoreSession(sessionId, progresses, usecase.thresholds)
	for _, objective := range score.Objectives {
		if err := usecase.repository.UpdateObjectiveScore(ctx, exec,
			sessionId, objective.ObjectiveId, objective.Score); err != nil {
			return models.SessionScore{}, err
		}
	}
	return score, nil
}

// TrackDecisionImpact applies the impact rules matching an executed decision:
// progress deltas and score adjustments on the objectives the rules name.
// Effects on objectives the session does not track are skipped.
func (usecase *ObjectiveUsecase) TrackDecisionImpact(ctx context.Context,
	decision models.Decision,
) error {
	exec := usecase.executorFactory.NewExecutor()
	logger := utils.LoggerFromContext(ctx)

	effects := scoring.EvaluateImpact(usecase.impactRules, decision)
	for _, effect := range effects {
		var rows int64
		var err error
		switch effect.Kind {
		case scoring.EffectProgress:
			rows, err = usecase.repository.ApplyProgressDelta(ctx, exec,
				decision.SessionId, effect.ObjectiveId, effect.ProgressDelta)
		case scoring.EffectPenalty:
			rows, err = usecase.repository.AppendScoreAdjustment(ctx, exec,
				decision.SessionId, effect.ObjectiveId, repositories.AdjustmentPenalties,
				models.ScoreAdjustment{Reason: effect.Reason, Points: effect.Points, Timestamp: time.Now()})
		case scoring.EffectBonus:
			rows, err = usecase.repository.AppendScoreAdjustment(ctx, exec,
				decision.SessionId, effect.ObjectiveId, repositories.AdjustmentBonuses,
				models.ScoreAdjustment{Reason: effect.Reason, Points: effect.Points, Timestamp: time.Now()})
		}
		if err != nil {
			return err
		}
		if rows == 0 {
			logger.DebugContext(ctx, "decision impact skipped, objective not tracked by session",
				"session_id", decision.SessionId, "objective_id", effect.ObjectiveId)
		}
	}

	return usecase.checkAutoCompletion(ctx, exec, decision.SessionId)
}

// ReevaluateSession is the task-queue entry point: it promotes objectives that
// reached full progress, refreshes the persisted scores and re-runs the
// auto-completion check.
func (usecase *ObjectiveUsecase) ReevaluateSession(ctx context.Context,
	sessionId uuid.UUID,
) error {
	exec := usecase.executorFactory.NewExecutor()

	progresses, err := usecase.repository.ListObjectiveProgress(ctx, exec, sessionId)
	if err != nil {
		return err
	}
	if len(progresses) == 0 {
		return nil
	}

	for _, progress := range progresses {
		if progress.ProgressPercentage >= 100 && !progress.Status.IsResolved() {
			completed := models.ObjectiveStatusCompleted
			if _, err := usecase.repository.UpsertObjectiveProgress(ctx, exec,
				models.UpdateObjectiveProgressInput{
					SessionId:   sessionId,
					ObjectiveId: progress.ObjectiveId,
					Percentage:  progress.ProgressPercentage,
					Status:      &completed,
				}); err != nil {
				return err
			}
		}
	}

	score := scoring.ScoreSession(sessionId, progresses, usecase.thresholds)
	for _, objective := range score.Objectives {
		if err := usecase.repository.UpdateObjectiveScore(ctx, exec,
			sessionId, objective.ObjectiveId, objective.Score); err != nil {
			return err
		}
	}

	return usecase.checkAutoCompletion(ctx, exec, sessionId)
}

// checkAutoCompletion completes the session once every objective is resolved.
// The status update is a conditional transition, so concurrent checks collapse
// into a single completion and a single session.completed event.
func (usecase *ObjectiveUsecase) checkAutoCompletion(ctx context.Context,
	exec repositories.Executor, sessionId uuid.UUID,
) error {
	session, err := usecase.sessionRepository.GetSessionById(ctx, exec, sessionId)
	if err != nil {
		return err
	}
	if session.Status != models.SessionStatusInProgress || !session.AutoComplete {
		return nil
	}

	progresses, err := usecase.repository.ListObjectiveProgress(ctx, exec, sessionId)
	if err != nil {
		return err
	}
	if len(progresses) == 0 {
		return nil
	}
	for _, progress := range progresses {
		if !progress.Status.IsResolved() {
			return nil
		}
	}

	now := time.Now()
	rows, err := usecase.sessionRepository.UpdateSessionStatus(ctx, exec, sessionId,
		models.SessionStatusInProgress, models.SessionStatusCompleted, &now)
	if err != nil {
		return err
	}
	if rows == 0 {
		// lost the race to another completion check, nothing left to do
		return nil
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "session auto-completed",
		"session_id", sessionId.String())

	return usecase.eventRepository.CreateSessionEvent(ctx, exec, models.CreateSessionEventInput{
		SessionId: sessionId,
		EventType: models.SessionEventSessionCompleted,
		Payload:   map[string]any{"reason": "all objectives resolved"},
		Scope:     models.ScopeMetadata{Scope: models.ScopeUniversal},
	})
}

func (usecase *ObjectiveUsecase) emitObjectiveEvent(ctx context.Context,
	exec repositories.Executor, sessionId uuid.UUID, objectiveId string, payload map[string]any,
) {
	payload["objective_id"] = objectiveId
	err := usecase.eventRepository.CreateSessionEvent(ctx, exec, models.CreateSessionEventInput{
		SessionId: sessionId,
		EventType: models.SessionEventObjectiveUpdated,
		Payload:   payload,
		Scope:     models.ScopeMetadata{Scope: models.ScopeUniversal},
	})
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx, "failed to record objective event",
			"session_id", sessionId.String(), "error", err.Error())
	}
}
