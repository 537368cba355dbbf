package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories"
	"github.com/opsdrill/exercise-backend/usecases/executor_factory"
	"github.com/opsdrill/exercise-backend/usecases/security"
	"github.com/opsdrill/exercise-backend/utils"
)

type decisionRepository interface {
	GetDecisionById(ctx context.Context, exec repositories.Executor,
		decisionId uuid.UUID) (models.Decision, error)
	ListDecisionsBySessionId(ctx context.Context, exec repositories.Executor,
		sessionId uuid.UUID) ([]models.Decision, error)
	CreateDecision(ctx context.Context, exec repositories.Executor,
		input models.CreateDecisionInput, newDecisionId uuid.UUID) error
	CreateDecisionSteps(ctx context.Context, exec repositories.Executor,
		steps []models.DecisionStep) error
	ListDecisionSteps(ctx context.Context, exec repositories.Executor,
		decisionId uuid.UUID) ([]models.DecisionStep, error)
	RespondToPendingStep(ctx context.Context, exec repositories.Executor,
		response models.DecisionStepResponse, now time.Time) (int64, error)
	CountPendingSteps(ctx context.Context, exec repositories.Executor,
		decisionId uuid.UUID) (int, error)
	UpdateDecisionStatus(ctx context.Context, exec repositories.Executor,
		decisionId uuid.UUID, from, to models.DecisionStatus) (int64, error)
	MarkDecisionExecuted(ctx context.Context, exec repositories.Executor,
		decisionId uuid.UUID, executedAt time.Time) (int64, error)
	UpdateDecisionClassification(ctx context.Context, exec repositories.Executor,
		decisionId uuid.UUID, classification models.DecisionClassification) error
}

type sessionParticipantReader interface {
	GetSessionById(ctx context.Context, exec repositories.Executor,
		sessionId uuid.UUID) (models.Session, error)
	GetSessionParticipant(ctx context.Context, exec repositories.Executor,
		sessionId uuid.UUID, userId uuid.UUID) (models.SessionParticipant, error)
	ListSessionParticipants(ctx context.Context, exec repositories.Executor,
		sessionId uuid.UUID) ([]models.SessionParticipant, error)
}

type notificationWriter interface {
	CreateNotifications(ctx context.Context, exec repositories.Executor,
		input models.CreateNotificationInput) error
}

// DecisionClassifier is the AI collaborator that categorizes an executed
// decision. The real implementation lives in infra; failures are tolerated.
type DecisionClassifier interface {
	ClassifyDecision(ctx context.Context, decision models.Decision) (models.DecisionClassification, error)
}

// objectiveTracker is the slice of ObjectiveUsecase the decision pipeline
// needs after an execution.
type objectiveTracker interface {
	TrackDecisionImpact(ctx context.Context, decision models.Decision) error
}

type incidentWriter interface {
	CreateIncident(ctx context.Context, exec repositories.Executor,
		input models.CreateIncidentInput, newIncidentId uuid.UUID) error
}

// DecisionUsecase drives the proposal, approval and execution state machine.
type DecisionUsecase struct {
	enforceSecurity        security.EnforceSecurityExercise
	executorFactory        executor_factory.ExecutorFactory
	repository             decisionRepository
	sessionRepository      sessionParticipantReader
	eventRepository        sessionEventWriter
	notificationRepository notificationWriter
	incidentRepository     incidentWriter
	taskQueueRepository    taskQueueRepository
	classifier             DecisionClassifier
	objectiveTracker       objectiveTracker
}

func (usecase *DecisionUsecase) GetDecision(ctx context.Context,
	decisionId uuid.UUID,
) (models.DecisionWithSteps, error) {
	exec := usecase.executorFactory.NewExecutor()

	decision, err := usecase.repository.GetDecisionById(ctx, exec, decisionId)
	if err != nil {
		return models.DecisionWithSteps{}, err
	}
	session, err := usecase.sessionRepository.GetSessionById(ctx, exec, decision.SessionId)
	if err != nil {
		return models.DecisionWithSteps{}, err
	}
	if err := usecase.enforceSecurity.ReadSession(session); err != nil {
		return models.DecisionWithSteps{}, err
	}

	steps, err := usecase.repository.ListDecisionSteps(ctx, exec, decisionId)
	if err != nil {
		return models.DecisionWithSteps{}, err
	}
	return models.DecisionWithSteps{Decision: decision, Steps: steps}, nil
}

func (usecase *DecisionUsecase) ListDecisions(ctx context.Context,
	sessionId uuid.UUID,
) ([]models.Decision, error) {
	exec := usecase.executorFactory.NewExecutor()

	session, err := usecase.sessionRepository.GetSessionById(ctx, exec, sessionId)
	if err != nil {
		return nil, err
	}
	if err := usecase.enforceSecurity.ReadSession(session); err != nil {
		return nil, err
	}
	return usecase.repository.ListDecisionsBySessionId(ctx, exec, sessionId)
}

// ProposeDecision creates a decision in status "proposed" with one pending
// approval step per required approver, all in one transaction. Approver roles
// are snapshotted from their session assignment at proposal time.
func (usecase *DecisionUsecase) ProposeDecision(ctx context.Context,
	input models.CreateDecisionInput,
) (models.DecisionWithSteps, error) {
	if input.Title == "" {
		return models.DecisionWithSteps{}, errors.Wrap(models.BadParameterError,
			"decision title is required")
	}
	if len(input.RequiredApprovers) == 0 {
		return models.DecisionWithSteps{}, errors.Wrap(models.BadParameterError,
			"at least one approver is required")
	}
	if input.DecisionType != nil {
		if _, known := models.DecisionTypeFrom(string(*input.DecisionType)); !known {
			return models.DecisionWithSteps{}, errors.Wrapf(models.BadParameterError,
				"unknown decision type %q", *input.DecisionType)
		}
	}

	decision, err := executor_factory.TransactionReturnValue(ctx, usecase.executorFactory,
		func(tx repositories.Transaction) (models.DecisionWithSteps, error) {
			session, err := usecase.sessionRepository.GetSessionById(ctx, tx, input.SessionId)
			if err != nil {
				return models.DecisionWithSteps{}, err
			}
			if err := usecase.enforceSecurity.ProposeDecision(session); err != nil {
				return models.DecisionWithSteps{}, err
			}
			if session.Status != models.SessionStatusInProgress {
				return models.DecisionWithSteps{}, models.ErrSessionNotActive
			}

			decisionId := uuid.New()
			if err := usecase.repository.CreateDecision(ctx, tx, input, decisionId); err != nil {
				return models.DecisionWithSteps{}, err
			}

			steps := make([]models.DecisionStep, 0, len(input.RequiredApprovers))
			seen := make(map[uuid.UUID]struct{}, len(input.RequiredApprovers))
			for i, approverId := range input.RequiredApprovers {
				if _, duplicate := seen[approverId]; duplicate {
					continue
				}
				seen[approverId] = struct{}{}

				participant, err := usecase.sessionRepository.GetSessionParticipant(
					ctx, tx, input.SessionId, approverId)
				if err != nil {
					if errors.Is(err, models.NotFoundError) {
						return models.DecisionWithSteps{}, errors.Wrapf(models.BadParameterError,
							"approver %s is not a participant of session %s", approverId, input.SessionId)
					}
					return models.DecisionWithSteps{}, err
				}

				steps = append(steps, models.DecisionStep{
					Id:         uuid.New(),
					DecisionId: decisionId,
					UserId:     approverId,
					Role:       participant.Role,
					StepOrder:  i,
					Status:     models.DecisionStepPending,
				})
			}
			if err := usecase.repository.CreateDecisionSteps(ctx, tx, steps); err != nil {
				return models.DecisionWithSteps{}, err
			}

			if err := usecase.eventRepository.CreateSessionEvent(ctx, tx, models.CreateSessionEventInput{
				SessionId: input.SessionId,
				EventType: models.SessionEventDecisionProposed,
				ActorId:   &input.ProposerId,
				Payload:   map[string]any{"decision_id": decisionId.String(), "title": input.Title},
				Scope:     models.ScopeMetadata{Scope: models.ScopeUniversal},
			}); err != nil {
				return models.DecisionWithSteps{}, err
			}

			approverIds := make([]uuid.UUID, 0, len(steps))
			for _, step := range steps {
				approverIds = append(approverIds, step.UserId)
			}
			if err := usecase.notificationRepository.CreateNotifications(ctx, tx,
				models.CreateNotificationInput{
					UserIds:  approverIds,
					Type:     "decision.approval_requested",
					Title:    "Approval requested",
					Message:  fmt.Sprintf("Decision %q requires your approval", input.Title),
					Priority: models.NotificationPriorityHigh,
				}); err != nil {
				return models.DecisionWithSteps{}, err
			}

			created, err := usecase.repository.GetDecisionById(ctx, tx, decisionId)
			if err != nil {
				return models.DecisionWithSteps{}, err
			}
			return models.DecisionWithSteps{Decision: created, Steps: steps}, nil
		})
	if err != nil {
		return models.DecisionWithSteps{}, err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "decision proposed",
		"decision_id", decision.Id.String(), "session_id", decision.SessionId.String())
	return decision, nil
}

// RespondToDecision records one approver's vote. A single rejection resolves
// the decision immediately; the last approval of the full quorum promotes it
// to "approved". The step update and the recompute both run inside one
// transaction, and the status transition is conditional, so two approvers
// responding at the same time converge on one final status.
func (usecase *DecisionUsecase) RespondToDecision(ctx context.Context,
	response models.DecisionStepResponse,
) (models.DecisionWithSteps, error) {
	result, err := executor_factory.TransactionReturnValue(ctx, usecase.executorFactory,
		func(tx repositories.Transaction) (models.DecisionWithSteps, error) {
			decision, err := usecase.repository.GetDecisionById(ctx, tx, response.DecisionId)
			if err != nil {
				return models.DecisionWithSteps{}, err
			}
			if err := usecase.enforceSecurity.RespondToDecision(decision); err != nil {
				return models.DecisionWithSteps{}, err
			}
			if decision.Status != models.DecisionStatusProposed {
				return models.DecisionWithSteps{}, models.WrapInvalidDecisionState(
					models.ErrDecisionAlreadyResolved, decision.Status)
			}

			rows, err := usecase.repository.RespondToPendingStep(ctx, tx, response, time.Now())
			if err != nil {
				return models.DecisionWithSteps{}, err
			}
			if rows == 0 {
				return models.DecisionWithSteps{}, errors.Wrapf(models.ErrNoPendingStep,
					"user %s on decision %s", response.UserId, response.DecisionId)
			}

			if response.Approved {
				err = usecase.promoteIfQuorumReached(ctx, tx, decision)
			} else {
				err = usecase.rejectDecision(ctx, tx, decision, response)
			}
			if err != nil {
				return models.DecisionWithSteps{}, err
			}

			updated, err := usecase.repository.GetDecisionById(ctx, tx, response.DecisionId)
			if err != nil {
				return models.DecisionWithSteps{}, err
			}
			steps, err := usecase.repository.ListDecisionSteps(ctx, tx, response.DecisionId)
			if err != nil {
				return models.DecisionWithSteps{}, err
			}
			return models.DecisionWithSteps{Decision: updated, Steps: steps}, nil
		})
	if err != nil {
		return models.DecisionWithSteps{}, err
	}
	return result, nil
}

func (usecase *DecisionUsecase) promoteIfQuorumReached(ctx context.Context,
	tx repositories.Transaction, decision models.Decision,
) error {
	pending, err := usecase.repository.CountPendingSteps(ctx, tx, decision.Id)
	if err != nil {
		return err
	}
	if pending > 0 {
		return nil
	}

	rows, err := usecase.repository.UpdateDecisionStatus(ctx, tx, decision.Id,
		models.DecisionStatusProposed, models.DecisionStatusApproved)
	if err != nil || rows == 0 {
		return err
	}

	return usecase.notifyDecisionResolved(ctx, tx, decision, models.DecisionStatusApproved)
}

func (usecase *DecisionUsecase) rejectDecision(ctx context.Context,
	tx repositories.Transaction, decision models.Decision, response models.DecisionStepResponse,
) error {
	rows, err := usecase.repository.UpdateDecisionStatus(ctx, tx, decision.Id,
		models.DecisionStatusProposed, models.DecisionStatusRejected)
	if err != nil || rows == 0 {
		return err
	}

	return usecase.notifyDecisionResolved(ctx, tx, decision, models.DecisionStatusRejected)
}

func (usecase *DecisionUsecase) notifyDecisionResolved(ctx context.Context,
	exec repositories.Executor, decision models.Decision, outcome models.DecisionStatus,
) error {
	if err := usecase.eventRepository.CreateSessionEvent(ctx, exec, models.CreateSessionEventInput{
		SessionId: decision.SessionId,
		EventType: models.SessionEventDecisionResolved,
		Payload: map[string]any{
			"decision_id": decision.Id.String(),
			"outcome":     string(outcome),
		},
		Scope: models.ScopeMetadata{Scope: models.ScopeUniversal},
	}); err != nil {
		return err
	}

	return usecase.notificationRepository.CreateNotifications(ctx, exec,
		models.CreateNotificationInput{
			UserIds:  []uuid.UUID{decision.ProposerId},
			Type:     "decision." + string(outcome),
			Title:    fmt.Sprintf("Decision %s", outcome),
			Message:  fmt.Sprintf("Your decision %q was %s", decision.Title, outcome),
			Priority: models.NotificationPriorityNormal,
		})
}

// ExecuteDecision marks an approved decision as executed and runs the
// post-execution pipeline. The status check and the write are one conditional
// statement, so of two concurrent calls exactly one wins; the loser reads the
// decision back and reports the state it actually observed.
//
// The pipeline steps after the status flip are deliberately best-effort: the
// execution is already committed, so a failing collaborator degrades the
// enrichment instead of faking a rollback.
func (usecase *DecisionUsecase) ExecuteDecision(ctx context.Context,
	decisionId uuid.UUID, executorUserId uuid.UUID,
) (models.Decision, error) {
	exec := usecase.executorFactory.NewExecutor()

	decision, err := usecase.repository.GetDecisionById(ctx, exec, decisionId)
	if err != nil {
		return models.Decision{}, err
	}
	if err := usecase.enforceSecurity.ExecuteDecision(decision); err != nil {
		return models.Decision{}, err
	}

	rows, err := usecase.repository.MarkDecisionExecuted(ctx, exec, decisionId, time.Now())
	if err != nil {
		return models.Decision{}, err
	}
	if rows == 0 {
		observed, err := usecase.repository.GetDecisionById(ctx, exec, decisionId)
		if err != nil {
			return models.Decision{}, err
		}
		if observed.Status.IsTerminal() {
			return models.Decision{}, models.WrapInvalidDecisionState(
				models.ErrDecisionAlreadyResolved, observed.Status)
		}
		return models.Decision{}, models.WrapInvalidDecisionState(
			models.ErrDecisionNotApproved, observed.Status)
	}

	executed, err := usecase.repository.GetDecisionById(ctx, exec, decisionId)
	if err != nil {
		return models.Decision{}, err
	}

	usecase.runPostExecutionPipeline(ctx, exec, executed, executorUserId)

	return executed, nil
}

// runPostExecutionPipeline applies the side effects of an executed decision
// in a fixed order. Every step is isolated: a failure is logged and the
// remaining steps still run.
func (usecase *DecisionUsecase) runPostExecutionPipeline(ctx context.Context,
	exec repositories.Executor, decision models.Decision, executorUserId uuid.UUID,
) {
	// classification runs before impact tracking so the type-gated impact
	// rules see the classified type
	usecase.tolerate(ctx, decision, "ai_classification", func() error {
		if usecase.classifier == nil {
			return nil
		}
		classification, err := usecase.classifier.ClassifyDecision(ctx, decision)
		if err != nil {
			return err
		}
		if err := usecase.repository.UpdateDecisionClassification(ctx, exec,
			decision.Id, classification); err != nil {
			return err
		}
		decision.DecisionType = &classification.PrimaryCategory
		return nil
	})

	usecase.tolerate(ctx, decision, "incident_generation", func() error {
		return usecase.generateIncident(ctx, exec, decision)
	})

	usecase.tolerate(ctx, decision, "objective_impact", func() error {
		return usecase.objectiveTracker.TrackDecisionImpact(ctx, decision)
	})

	usecase.tolerate(ctx, decision, "objective_reevaluation", func() error {
		return usecase.taskQueueRepository.Enqueue(ctx, models.ObjectiveReevaluationArgs{
			SessionId: decision.SessionId,
		})
	})

	usecase.tolerate(ctx, decision, "broadcast", func() error {
		if err := usecase.eventRepository.CreateSessionEvent(ctx, exec, models.CreateSessionEventInput{
			SessionId: decision.SessionId,
			EventType: models.SessionEventDecisionExecuted,
			ActorId:   &executorUserId,
			Payload:   map[string]any{"decision_id": decision.Id.String(), "title": decision.Title},
			Scope:     models.ScopeMetadata{Scope: models.ScopeUniversal},
		}); err != nil {
			return err
		}

		participants, err := usecase.sessionRepository.ListSessionParticipants(
			ctx, exec, decision.SessionId)
		if err != nil {
			return err
		}
		userIds := make([]uuid.UUID, 0, len(participants))
		for _, participant := range participants {
			userIds = append(userIds, participant.UserId)
		}
		return usecase.notificationRepository.CreateNotifications(ctx, exec,
			models.CreateNotificationInput{
				UserIds:  userIds,
				Type:     "decision.executed",
				Title:    "Decision executed",
				Message:  fmt.Sprintf("Decision %q has been executed", decision.Title),
				Priority: models.NotificationPriorityNormal,
			})
	})
}

// generateIncident materializes the narrative consequence of high-impact
// decision types as an incident on the session.
func (usecase *DecisionUsecase) generateIncident(ctx context.Context,
	exec repositories.Executor, decision models.Decision,
) error {
	if decision.DecisionType == nil {
		return nil
	}
	switch *decision.DecisionType {
	case models.DecisionTypeEmergencyDeclaration, models.DecisionTypeEvacuationOrder:
	default:
		return nil
	}

	return usecase.incidentRepository.CreateIncident(ctx, exec, models.CreateIncidentInput{
		SessionId:   decision.SessionId,
		Title:       fmt.Sprintf("Consequence of decision: %s", decision.Title),
		Description: decision.Description,
		Severity:    "major",
		Scope:       models.ScopeMetadata{Scope: models.ScopeUniversal},
	}, uuid.New())
}

func (usecase *DecisionUsecase) tolerate(ctx context.Context,
	decision models.Decision, step string, fn func() error,
) {
	if err := fn(); err != nil {
		err = errors.Mark(err, models.ErrDependencyDegraded)
		utils.LoggerFromContext(ctx).WarnContext(ctx, "post-execution step degraded",
			"decision_id", decision.Id.String(),
			"step", step,
			"error", err.Error())
	}
}
