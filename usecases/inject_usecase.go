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
	"github.com/opsdrill/exercise-backend/usecases/scopes"
	"github.com/opsdrill/exercise-backend/usecases/security"
	"github.com/opsdrill/exercise-backend/utils"
)

type injectRepository interface {
	GetInjectById(ctx context.Context, exec repositories.Executor,
		injectId uuid.UUID) (models.Inject, error)
	ListPublishedInjects(ctx context.Context, exec repositories.Executor,
		sessionId uuid.UUID) ([]models.Inject, error)
	CreateInject(ctx context.Context, exec repositories.Executor,
		input models.CreateInjectInput, newInjectId uuid.UUID, publishedAt time.Time) error
	ListIncidents(ctx context.Context, exec repositories.Executor,
		sessionId uuid.UUID) ([]models.Incident, error)
	CreateIncident(ctx context.Context, exec repositories.Executor,
		input models.CreateIncidentInput, newIncidentId uuid.UUID) error
}

type sessionEventReader interface {
	sessionEventWriter
	ListSessionEvents(ctx context.Context, exec repositories.Executor,
		sessionId uuid.UUID) ([]models.SessionEvent, error)
}

// InjectUsecase publishes narrative content into running sessions and reads
// it back filtered by the caller's scope.
type InjectUsecase struct {
	enforceSecurity        security.EnforceSecurityExercise
	executorFactory        executor_factory.ExecutorFactory
	repository             injectRepository
	sessionRepository      sessionParticipantReader
	eventRepository        sessionEventReader
	notificationRepository notificationWriter
	credentials            models.Credentials
}

// PublishInject makes an inject visible to its audience: the inject row, the
// timeline event carrying the same scope and the recipient notifications are
// committed in one transaction.
func (usecase *InjectUsecase) PublishInject(ctx context.Context,
	input models.CreateInjectInput,
) (models.Inject, error) {
	if input.Title == "" {
		return models.Inject{}, errors.Wrap(models.BadParameterError, "inject title is required")
	}
	if input.Scope.Scope == "" {
		input.Scope.Scope = models.ScopeUniversal
	}

	inject, err := executor_factory.TransactionReturnValue(ctx, usecase.executorFactory,
		func(tx repositories.Transaction) (models.Inject, error) {
			session, err := usecase.sessionRepository.GetSessionById(ctx, tx, input.SessionId)
			if err != nil {
				return models.Inject{}, err
			}
			if err := usecase.enforceSecurity.PublishInject(session); err != nil {
				return models.Inject{}, err
			}
			if session.Status != models.SessionStatusInProgress {
				return models.Inject{}, models.ErrSessionNotActive
			}

			injectId := uuid.New()
			if err := usecase.repository.CreateInject(ctx, tx, input, injectId, time.Now()); err != nil {
				return models.Inject{}, err
			}

			eventScope := input.Scope
			eventScope.OriginInjectId = &injectId
			if err := usecase.eventRepository.CreateSessionEvent(ctx, tx, models.CreateSessionEventInput{
				SessionId: input.SessionId,
				EventType: models.SessionEventInjectPublished,
				Payload:   map[string]any{"inject_id": injectId.String(), "title": input.Title},
				Scope:     eventScope,
			}); err != nil {
				return models.Inject{}, err
			}

			if err := usecase.notifyAudience(ctx, tx, input.SessionId, input.Scope, input.Title); err != nil {
				return models.Inject{}, err
			}

			return usecase.repository.GetInjectById(ctx, tx, injectId)
		})
	if err != nil {
		return models.Inject{}, err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "inject published",
		"inject_id", inject.Id.String(), "session_id", inject.SessionId.String(),
		"scope", string(inject.Scope.Scope))
	return inject, nil
}

// CreateIncident records an incident, optionally inheriting its scope from
// the inject that spawned it.
func (usecase *InjectUsecase) CreateIncident(ctx context.Context,
	input models.CreateIncidentInput,
) (uuid.UUID, error) {
	exec := usecase.executorFactory.NewExecutor()

	session, err := usecase.sessionRepository.GetSessionById(ctx, exec, input.SessionId)
	if err != nil {
		return uuid.Nil, err
	}
	if err := usecase.enforceSecurity.PublishInject(session); err != nil {
		return uuid.Nil, err
	}

	if input.Scope.Scope == "" && input.Scope.OriginInjectId != nil {
		origin, err := usecase.repository.GetInjectById(ctx, exec, *input.Scope.OriginInjectId)
		if err == nil {
			originId := input.Scope.OriginInjectId
			input.Scope = origin.Scope
			input.Scope.OriginInjectId = originId
		} else if !errors.Is(err, models.NotFoundError) {
			return uuid.Nil, err
		}
	}

	incidentId := uuid.New()
	if err := usecase.repository.CreateIncident(ctx, exec, input, incidentId); err != nil {
		return uuid.Nil, err
	}

	err = usecase.eventRepository.CreateSessionEvent(ctx, exec, models.CreateSessionEventInput{
		SessionId: input.SessionId,
		EventType: models.SessionEventIncidentCreated,
		Payload:   map[string]any{"incident_id": incidentId.String(), "title": input.Title},
		Scope:     input.Scope,
	})
	return incidentId, err
}

// ListInjects returns the published injects the caller is allowed to see.
func (usecase *InjectUsecase) ListInjects(ctx context.Context,
	sessionId uuid.UUID,
) ([]models.Inject, error) {
	exec := usecase.executorFactory.NewExecutor()

	viewer, err := usecase.buildViewer(ctx, exec, sessionId)
	if err != nil {
		return nil, err
	}

	injects, err := usecase.repository.ListPublishedInjects(ctx, exec, sessionId)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Inject, 0, len(injects))
	for _, inject := range injects {
		if scopes.Visible(inject.Scope, viewer) {
			visible = append(visible, inject)
		}
	}
	return visible, nil
}

// ListIncidents returns the incidents the caller is allowed to see, resolving
// rows without denormalized scope through their originating inject.
func (usecase *InjectUsecase) ListIncidents(ctx context.Context,
	sessionId uuid.UUID,
) ([]models.Incident, error) {
	exec := usecase.executorFactory.NewExecutor()

	viewer, err := usecase.buildViewer(ctx, exec, sessionId)
	if err != nil {
		return nil, err
	}

	incidents, err := usecase.repository.ListIncidents(ctx, exec, sessionId)
	if err != nil {
		return nil, err
	}

	origins := make(map[uuid.UUID]*models.Inject)
	visible := make([]models.Incident, 0, len(incidents))
	for _, incident := range incidents {
		ok, err := usecase.resolveVisibility(ctx, exec, incident.Scope, viewer, origins)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, incident)
		}
	}
	return visible, nil
}

// ListTimeline returns the session event feed filtered by the caller's scope.
func (usecase *InjectUsecase) ListTimeline(ctx context.Context,
	sessionId uuid.UUID,
) ([]models.SessionEvent, error) {
	exec := usecase.executorFactory.NewExecutor()

	viewer, err := usecase.buildViewer(ctx, exec, sessionId)
	if err != nil {
		return nil, err
	}

	events, err := usecase.eventRepository.ListSessionEvents(ctx, exec, sessionId)
	if err != nil {
		return nil, err
	}

	origins := make(map[uuid.UUID]*models.Inject)
	visible := make([]models.SessionEvent, 0, len(events))
	for _, event := range events {
		ok, err := usecase.resolveVisibility(ctx, exec, event.Scope, viewer, origins)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, event)
		}
	}
	return visible, nil
}

// buildViewer resolves the caller's scope identity once per request.
// Privileged callers need no participant row; everyone else must be assigned
// to the session.
func (usecase *InjectUsecase) buildViewer(ctx context.Context,
	exec repositories.Executor, sessionId uuid.UUID,
) (models.ScopeViewer, error) {
	session, err := usecase.sessionRepository.GetSessionById(ctx, exec, sessionId)
	if err != nil {
		return models.ScopeViewer{}, err
	}
	if err := usecase.enforceSecurity.ReadSession(session); err != nil {
		return models.ScopeViewer{}, err
	}

	userId := usecase.credentials.ActorIdentity.UserId
	if usecase.credentials.IsPrivileged() {
		return models.ScopeViewer{UserId: userId, IsPrivileged: true}, nil
	}

	participant, err := usecase.sessionRepository.GetSessionParticipant(ctx, exec, sessionId, userId)
	if err != nil {
		if errors.Is(err, models.NotFoundError) {
			return models.ScopeViewer{}, errors.Wrapf(models.ForbiddenError,
				"user %s is not a participant of session %s", userId, sessionId)
		}
		return models.ScopeViewer{}, err
	}
	return models.NewScopeViewer(participant, false), nil
}

func (usecase *InjectUsecase) resolveVisibility(ctx context.Context,
	exec repositories.Executor, meta models.ScopeMetadata, viewer models.ScopeViewer,
	origins map[uuid.UUID]*models.Inject,
) (bool, error) {
	switch scopes.ClassifyFallback(meta) {
	case scopes.FallbackNotNeeded:
		return scopes.Visible(meta, viewer), nil
	case scopes.FallbackManualContent:
		return true, nil
	}

	originId := *meta.OriginInjectId
	origin, cached := origins[originId]
	if !cached {
		inject, err := usecase.repository.GetInjectById(ctx, exec, originId)
		switch {
		case err == nil:
			origin = &inject
		case errors.Is(err, models.NotFoundError):
			origin = nil
		default:
			return false, err
		}
		origins[originId] = origin
	}
	return scopes.VisibleWithOrigin(viewer, origin), nil
}

func (usecase *InjectUsecase) notifyAudience(ctx context.Context,
	exec repositories.Executor, sessionId uuid.UUID, scope models.ScopeMetadata, title string,
) error {
	participants, err := usecase.sessionRepository.ListSessionParticipants(ctx, exec, sessionId)
	if err != nil {
		return err
	}

	userIds := make([]uuid.UUID, 0, len(participants))
	for _, participant := range participants {
		if scopes.Visible(scope, models.NewScopeViewer(participant, false)) {
			userIds = append(userIds, participant.UserId)
		}
	}

	return usecase.notificationRepository.CreateNotifications(ctx, exec,
		models.CreateNotificationInput{
			UserIds:  userIds,
			Type:     "inject.published",
			Title:    "New inject",
			Message:  fmt.Sprintf("New information available: %s", title),
			Priority: models.NotificationPriorityHigh,
		})
}
