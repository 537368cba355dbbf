package usecases

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/opsdrill/exercise-backend/mocks"
	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/usecases/executor_factory"
)

type InjectUsecaseTestSuite struct {
	suite.Suite
	enforceSecurity        *mocks.EnforceSecurity
	repository             *mocks.InjectRepository
	sessionRepository      *mocks.SessionRepository
	eventRepository        *mocks.SessionEventRepository
	notificationRepository *mocks.NotificationRepository
	executorFactory        executor_factory.ExecutorFactoryStub

	sessionId uuid.UUID
	userId    uuid.UUID
	session   models.Session
}

func (suite *InjectUsecaseTestSuite) SetupTest() {
	suite.enforceSecurity = new(mocks.EnforceSecurity)
	suite.repository = new(mocks.InjectRepository)
	suite.sessionRepository = new(mocks.SessionRepository)
	suite.eventRepository = new(mocks.SessionEventRepository)
	suite.notificationRepository = new(mocks.NotificationRepository)
	suite.executorFactory = executor_factory.NewExecutorFactoryStub()

	suite.sessionId = uuid.MustParse("25ab6323-1657-4a52-923a-ef6983fe4532")
	suite.userId = uuid.MustParse("4ab235f3-57b4-4a19-9b90-3a4bbe46b35d")
	suite.session = models.Session{
		Id:         suite.sessionId,
		ScenarioId: uuid.New(),
		Status:     models.SessionStatusInProgress,
	}
}

func (suite *InjectUsecaseTestSuite) makeUsecase(creds models.Credentials) *InjectUsecase {
	return &InjectUsecase{
		enforceSecurity:        suite.enforceSecurity,
		executorFactory:        suite.executorFactory,
		repository:             suite.repository,
		sessionRepository:      suite.sessionRepository,
		eventRepository:        suite.eventRepository,
		notificationRepository: suite.notificationRepository,
		credentials:            creds,
	}
}

func (suite *InjectUsecaseTestSuite) participantCreds() models.Credentials {
	return models.Credentials{
		ActorIdentity: models.Identity{UserId: suite.userId},
		Role:          models.ROLE_PARTICIPANT,
	}
}

func (suite *InjectUsecaseTestSuite) trainerCreds() models.Credentials {
	return models.Credentials{
		ActorIdentity: models.Identity{UserId: suite.userId},
		Role:          models.ROLE_TRAINER,
	}
}

func (suite *InjectUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.enforceSecurity.AssertExpectations(t)
	suite.repository.AssertExpectations(t)
	suite.sessionRepository.AssertExpectations(t)
	suite.eventRepository.AssertExpectations(t)
	suite.notificationRepository.AssertExpectations(t)
}

func (suite *InjectUsecaseTestSuite) Test_PublishInject_missing_title() {
	_, err := suite.makeUsecase(suite.trainerCreds()).PublishInject(context.Background(),
		models.CreateInjectInput{SessionId: suite.sessionId})

	t := suite.T()
	assert.ErrorIs(t, err, models.BadParameterError)

	suite.AssertExpectations()
}

func (suite *InjectUsecaseTestSuite) Test_PublishInject_session_not_active() {
	completed := suite.session
	completed.Status = models.SessionStatusCompleted

	suite.sessionRepository.On("GetSessionById", mock.Anything, mock.Anything, suite.sessionId).
		Return(completed, nil)
	suite.enforceSecurity.On("PublishInject", completed).Return(nil)

	_, err := suite.makeUsecase(suite.trainerCreds()).PublishInject(context.Background(),
		models.CreateInjectInput{SessionId: suite.sessionId, Title: "Bridge closed"})

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrSessionNotActive)

	suite.AssertExpectations()
}

func (suite *InjectUsecaseTestSuite) Test_PublishInject_notifies_scoped_audience_only() {
	scope := models.ScopeMetadata{
		Scope:         models.ScopeRoleSpecific,
		AffectedRoles: []string{"health"},
	}
	healthParticipant := models.SessionParticipant{
		SessionId: suite.sessionId, UserId: uuid.New(), Role: "health",
	}
	civilParticipant := models.SessionParticipant{
		SessionId: suite.sessionId, UserId: uuid.New(), Role: "civil",
	}
	published := models.Inject{
		Id:        uuid.New(),
		SessionId: suite.sessionId,
		Title:     "Hospital capacity update",
		Scope:     scope,
	}

	suite.sessionRepository.On("GetSessionById", mock.Anything, mock.Anything, suite.sessionId).
		Return(suite.session, nil)
	suite.enforceSecurity.On("PublishInject", suite.session).Return(nil)
	suite.repository.On("CreateInject", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(nil)
	// the timeline event carries the inject's scope plus its origin reference
	suite.eventRepository.On("CreateSessionEvent", mock.Anything, mock.Anything,
		mock.MatchedBy(func(input models.CreateSessionEventInput) bool {
			return input.EventType == models.SessionEventInjectPublished &&
				input.Scope.Scope == models.ScopeRoleSpecific &&
				input.Scope.OriginInjectId != nil
		})).Return(nil)
	suite.sessionRepository.On("ListSessionParticipants", mock.Anything, mock.Anything,
		suite.sessionId).Return([]models.SessionParticipant{healthParticipant, civilParticipant}, nil)
	suite.notificationRepository.On("CreateNotifications", mock.Anything, mock.Anything,
		mock.MatchedBy(func(input models.CreateNotificationInput) bool {
			return len(input.UserIds) == 1 && input.UserIds[0] == healthParticipant.UserId
		})).Return(nil)
	suite.repository.On("GetInjectById", mock.Anything, mock.Anything, mock.Anything).
		Return(published, nil)

	result, err := suite.makeUsecase(suite.trainerCreds()).PublishInject(context.Background(),
		models.CreateInjectInput{
			SessionId: suite.sessionId,
			Title:     "Hospital capacity update",
			Scope:     scope,
		})

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, published, result)

	suite.AssertExpectations()
}

func (suite *InjectUsecaseTestSuite) Test_ListInjects_filters_by_viewer_scope() {
	participant := models.SessionParticipant{
		SessionId: suite.sessionId, UserId: suite.userId, Role: "civil",
	}
	visibleInject := models.Inject{
		Id: uuid.New(), SessionId: suite.sessionId,
		Scope: models.ScopeMetadata{Scope: models.ScopeUniversal},
	}
	hiddenInject := models.Inject{
		Id: uuid.New(), SessionId: suite.sessionId,
		Scope: models.ScopeMetadata{
			Scope:         models.ScopeRoleSpecific,
			AffectedRoles: []string{"health"},
		},
	}

	suite.sessionRepository.On("GetSessionById", mock.Anything, mock.Anything, suite.sessionId).
		Return(suite.session, nil)
	suite.enforceSecurity.On("ReadSession", suite.session).Return(nil)
	suite.sessionRepository.On("GetSessionParticipant", mock.Anything, mock.Anything,
		suite.sessionId, suite.userId).Return(participant, nil)
	suite.repository.On("ListPublishedInjects", mock.Anything, mock.Anything, suite.sessionId).
		Return([]models.Inject{visibleInject, hiddenInject}, nil)

	result, err := suite.makeUsecase(suite.participantCreds()).ListInjects(
		context.Background(), suite.sessionId)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, []models.Inject{visibleInject}, result)

	suite.AssertExpectations()
}

func (suite *InjectUsecaseTestSuite) Test_ListInjects_trainer_sees_everything() {
	hiddenInject := models.Inject{
		Id: uuid.New(), SessionId: suite.sessionId,
		Scope: models.ScopeMetadata{
			Scope:         models.ScopeRoleSpecific,
			AffectedRoles: []string{"health"},
		},
	}

	suite.sessionRepository.On("GetSessionById", mock.Anything, mock.Anything, suite.sessionId).
		Return(suite.session, nil)
	suite.enforceSecurity.On("ReadSession", suite.session).Return(nil)
	suite.repository.On("ListPublishedInjects", mock.Anything, mock.Anything, suite.sessionId).
		Return([]models.Inject{hiddenInject}, nil)

	result, err := suite.makeUsecase(suite.trainerCreds()).ListInjects(
		context.Background(), suite.sessionId)

	t := suite.T()
	assert.NoError(t, err)
	assert.Len(t, result, 1)

	// no participant lookup for privileged viewers
	suite.sessionRepository.AssertNotCalled(t, "GetSessionParticipant",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	suite.AssertExpectations()
}

func (suite *InjectUsecaseTestSuite) Test_ListInjects_not_a_participant() {
	suite.sessionRepository.On("GetSessionById", mock.Anything, mock.Anything, suite.sessionId).
		Return(suite.session, nil)
	suite.enforceSecurity.On("ReadSession", suite.session).Return(nil)
	suite.sessionRepository.On("GetSessionParticipant", mock.Anything, mock.Anything,
		suite.sessionId, suite.userId).
		Return(models.SessionParticipant{}, errors.Wrap(models.NotFoundError, "no participant"))

	_, err := suite.makeUsecase(suite.participantCreds()).ListInjects(
		context.Background(), suite.sessionId)

	t := suite.T()
	assert.ErrorIs(t, err, models.ForbiddenError)

	suite.AssertExpectations()
}

func (suite *InjectUsecaseTestSuite) Test_ListIncidents_legacy_scope_resolved_through_origin() {
	participant := models.SessionParticipant{
		SessionId: suite.sessionId, UserId: suite.userId, Role: "civil",
	}
	originId := uuid.New()
	origin := models.Inject{
		Id: originId, SessionId: suite.sessionId,
		Scope: models.ScopeMetadata{
			Scope:         models.ScopeRoleSpecific,
			AffectedRoles: []string{"health"},
		},
	}
	inheritedIncident := models.Incident{
		Id: uuid.New(), SessionId: suite.sessionId,
		Scope: models.ScopeMetadata{OriginInjectId: &originId},
	}
	manualIncident := models.Incident{
		Id: uuid.New(), SessionId: suite.sessionId,
	}

	suite.sessionRepository.On("GetSessionById", mock.Anything, mock.Anything, suite.sessionId).
		Return(suite.session, nil)
	suite.enforceSecurity.On("ReadSession", suite.session).Return(nil)
	suite.sessionRepository.On("GetSessionParticipant", mock.Anything, mock.Anything,
		suite.sessionId, suite.userId).Return(participant, nil)
	suite.repository.On("ListIncidents", mock.Anything, mock.Anything, suite.sessionId).
		Return([]models.Incident{inheritedIncident, manualIncident}, nil)
	suite.repository.On("GetInjectById", mock.Anything, mock.Anything, originId).
		Return(origin, nil)

	result, err := suite.makeUsecase(suite.participantCreds()).ListIncidents(
		context.Background(), suite.sessionId)

	t := suite.T()
	assert.NoError(t, err)
	// the inherited incident is health-only so the civil viewer loses it, the
	// manual one without any origin stays visible
	assert.Equal(t, []models.Incident{manualIncident}, result)

	suite.AssertExpectations()
}

func (suite *InjectUsecaseTestSuite) Test_ListIncidents_missing_origin_fails_open() {
	participant := models.SessionParticipant{
		SessionId: suite.sessionId, UserId: suite.userId, Role: "civil",
	}
	originId := uuid.New()
	orphanIncident := models.Incident{
		Id: uuid.New(), SessionId: suite.sessionId,
		Scope: models.ScopeMetadata{OriginInjectId: &originId},
	}

	suite.sessionRepository.On("GetSessionById", mock.Anything, mock.Anything, suite.sessionId).
		Return(suite.session, nil)
	suite.enforceSecurity.On("ReadSession", suite.session).Return(nil)
	suite.sessionRepository.On("GetSessionParticipant", mock.Anything, mock.Anything,
		suite.sessionId, suite.userId).Return(participant, nil)
	suite.repository.On("ListIncidents", mock.Anything, mock.Anything, suite.sessionId).
		Return([]models.Incident{orphanIncident}, nil)
	suite.repository.On("GetInjectById", mock.Anything, mock.Anything, originId).
		Return(models.Inject{}, errors.Wrap(models.NotFoundError, "inject deleted"))

	result, err := suite.makeUsecase(suite.participantCreds()).ListIncidents(
		context.Background(), suite.sessionId)

	t := suite.T()
	assert.NoError(t, err)
	assert.Len(t, result, 1)

	suite.AssertExpectations()
}

func (suite *InjectUsecaseTestSuite) Test_CreateIncident_inherits_origin_scope() {
	originId := uuid.New()
	origin := models.Inject{
		Id: originId, SessionId: suite.sessionId,
		Scope: models.ScopeMetadata{
			Scope:       models.ScopeTeamSpecific,
			TargetTeams: []string{"logistics"},
		},
	}

	suite.sessionRepository.On("GetSessionById", mock.Anything, mock.Anything, suite.sessionId).
		Return(suite.session, nil)
	suite.enforceSecurity.On("PublishInject", suite.session).Return(nil)
	suite.repository.On("GetInjectById", mock.Anything, mock.Anything, originId).
		Return(origin, nil)
	suite.repository.On("CreateIncident", mock.Anything, mock.Anything,
		mock.MatchedBy(func(input models.CreateIncidentInput) bool {
			return input.Scope.Scope == models.ScopeTeamSpecific &&
				input.Scope.OriginInjectId != nil && *input.Scope.OriginInjectId == originId
		}), mock.Anything).Return(nil)
	suite.eventRepository.On("CreateSessionEvent", mock.Anything, mock.Anything,
		mock.MatchedBy(func(input models.CreateSessionEventInput) bool {
			return input.EventType == models.SessionEventIncidentCreated
		})).Return(nil)

	incidentId, err := suite.makeUsecase(suite.trainerCreds()).CreateIncident(context.Background(),
		models.CreateIncidentInput{
			SessionId: suite.sessionId,
			Title:     "Supply route flooded",
			Severity:  "major",
			Scope:     models.ScopeMetadata{OriginInjectId: &originId},
		})

	t := suite.T()
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, incidentId)

	suite.AssertExpectations()
}

func TestInjectUsecase(t *testing.T) {
	suite.Run(t, new(InjectUsecaseTestSuite))
}
