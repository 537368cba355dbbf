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

type DecisionUsecaseTestSuite struct {
	suite.Suite
	enforceSecurity        *mocks.EnforceSecurity
	repository             *mocks.DecisionRepository
	sessionRepository      *mocks.SessionRepository
	eventRepository        *mocks.SessionEventRepository
	notificationRepository *mocks.NotificationRepository
	incidentRepository     *mocks.InjectRepository
	taskQueueRepository    *mocks.TaskQueueRepository
	classifier             *mocks.DecisionClassifier
	objectiveTracker       *mocks.ObjectiveTracker
	executorFactory        executor_factory.ExecutorFactoryStub

	sessionId  uuid.UUID
	decisionId uuid.UUID
	proposerId uuid.UUID
	approverId uuid.UUID

	session         models.Session
	decision        models.Decision
	repositoryError error
	securityError   error
}

func (suite *DecisionUsecaseTestSuite) SetupTest() {
	suite.enforceSecurity = new(mocks.EnforceSecurity)
	suite.repository = new(mocks.DecisionRepository)
	suite.sessionRepository = new(mocks.SessionRepository)
	suite.eventRepository = new(mocks.SessionEventRepository)
	suite.notificationRepository = new(mocks.NotificationRepository)
	suite.incidentRepository = new(mocks.InjectRepository)
	suite.taskQueueRepository = new(mocks.TaskQueueRepository)
	suite.classifier = new(mocks.DecisionClassifier)
	suite.objectiveTracker = new(mocks.ObjectiveTracker)
	suite.executorFactory = executor_factory.NewExecutorFactoryStub()

	suite.sessionId = uuid.MustParse("25ab6323-1657-4a52-923a-ef6983fe4532")
	suite.decisionId = uuid.MustParse("0ae6fda7-f7b3-4218-9fc3-4efa329432a7")
	suite.proposerId = uuid.MustParse("4ab235f3-57b4-4a19-9b90-3a4bbe46b35d")
	suite.approverId = uuid.MustParse("9a109cd8-65c0-4dfe-be57-43fbda2576e1")

	suite.session = models.Session{
		Id:         suite.sessionId,
		ScenarioId: uuid.New(),
		Name:       "flood response drill",
		Status:     models.SessionStatusInProgress,
	}
	suite.decision = models.Decision{
		Id:         suite.decisionId,
		SessionId:  suite.sessionId,
		ProposerId: suite.proposerId,
		Title:      "Evacuate the riverside district",
		Status:     models.DecisionStatusProposed,
	}
	suite.repositoryError = errors.New("some repository error")
	suite.securityError = errors.New("some security error")
}

func (suite *DecisionUsecaseTestSuite) makeUsecase() *DecisionUsecase {
	return &DecisionUsecase{
		enforceSecurity:        suite.enforceSecurity,
		executorFactory:        suite.executorFactory,
		repository:             suite.repository,
		sessionRepository:      suite.sessionRepository,
		eventRepository:        suite.eventRepository,
		notificationRepository: suite.notificationRepository,
		incidentRepository:     suite.incidentRepository,
		taskQueueRepository:    suite.taskQueueRepository,
		classifier:             suite.classifier,
		objectiveTracker:       suite.objectiveTracker,
	}
}

func (suite *DecisionUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.enforceSecurity.AssertExpectations(t)
	suite.repository.AssertExpectations(t)
	suite.sessionRepository.AssertExpectations(t)
	suite.eventRepository.AssertExpectations(t)
	suite.notificationRepository.AssertExpectations(t)
	suite.incidentRepository.AssertExpectations(t)
	suite.taskQueueRepository.AssertExpectations(t)
	suite.classifier.AssertExpectations(t)
	suite.objectiveTracker.AssertExpectations(t)
}

func (suite *DecisionUsecaseTestSuite) Test_ProposeDecision_missing_title() {
	_, err := suite.makeUsecase().ProposeDecision(context.Background(), models.CreateDecisionInput{
		SessionId:         suite.sessionId,
		ProposerId:        suite.proposerId,
		RequiredApprovers: []uuid.UUID{suite.approverId},
	})

	t := suite.T()
	assert.ErrorIs(t, err, models.BadParameterError)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_ProposeDecision_no_approvers() {
	_, err := suite.makeUsecase().ProposeDecision(context.Background(), models.CreateDecisionInput{
		SessionId:  suite.sessionId,
		ProposerId: suite.proposerId,
		Title:      "Evacuate the riverside district",
	})

	t := suite.T()
	assert.ErrorIs(t, err, models.BadParameterError)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_ProposeDecision_unknown_decision_type() {
	badType := models.DecisionType("weather_control")

	_, err := suite.makeUsecase().ProposeDecision(context.Background(), models.CreateDecisionInput{
		SessionId:         suite.sessionId,
		ProposerId:        suite.proposerId,
		Title:             "Seed the clouds",
		DecisionType:      &badType,
		RequiredApprovers: []uuid.UUID{suite.approverId},
	})

	t := suite.T()
	assert.ErrorIs(t, err, models.BadParameterError)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_ProposeDecision_session_not_active() {
	pendingSession := suite.session
	pendingSession.Status = models.SessionStatusPending

	suite.sessionRepository.On("GetSessionById", mock.Anything, mock.Anything, suite.sessionId).
		Return(pendingSession, nil)
	suite.enforceSecurity.On("ProposeDecision", pendingSession).Return(nil)

	_, err := suite.makeUsecase().ProposeDecision(context.Background(), models.CreateDecisionInput{
		SessionId:         suite.sessionId,
		ProposerId:        suite.proposerId,
		Title:             "Evacuate the riverside district",
		RequiredApprovers: []uuid.UUID{suite.approverId},
	})

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrSessionNotActive)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_ProposeDecision_approver_not_participant() {
	suite.sessionRepository.On("GetSessionById", mock.Anything, mock.Anything, suite.sessionId).
		Return(suite.session, nil)
	suite.enforceSecurity.On("ProposeDecision", suite.session).Return(nil)
	suite.repository.On("CreateDecision", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil)
	suite.sessionRepository.On("GetSessionParticipant", mock.Anything, mock.Anything,
		suite.sessionId, suite.approverId).
		Return(models.SessionParticipant{}, errors.Wrap(models.NotFoundError, "no participant"))

	_, err := suite.makeUsecase().ProposeDecision(context.Background(), models.CreateDecisionInput{
		SessionId:         suite.sessionId,
		ProposerId:        suite.proposerId,
		Title:             "Evacuate the riverside district",
		RequiredApprovers: []uuid.UUID{suite.approverId},
	})

	t := suite.T()
	assert.ErrorIs(t, err, models.BadParameterError)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_ProposeDecision_nominal() {
	secondApproverId := uuid.New()
	participant := models.SessionParticipant{
		SessionId: suite.sessionId,
		UserId:    suite.approverId,
		Role:      "health",
	}
	secondParticipant := models.SessionParticipant{
		SessionId: suite.sessionId,
		UserId:    secondApproverId,
		Role:      "civil",
	}

	suite.sessionRepository.On("GetSessionById", mock.Anything, mock.Anything, suite.sessionId).
		Return(suite.session, nil)
	suite.enforceSecurity.On("ProposeDecision", suite.session).Return(nil)
	suite.repository.On("CreateDecision", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil)
	suite.sessionRepository.On("GetSessionParticipant", mock.Anything, mock.Anything,
		suite.sessionId, suite.approverId).Return(participant, nil)
	suite.sessionRepository.On("GetSessionParticipant", mock.Anything, mock.Anything,
		suite.sessionId, secondApproverId).Return(secondParticipant, nil)
	suite.repository.On("CreateDecisionSteps", mock.Anything, mock.Anything,
		mock.MatchedBy(func(steps []models.DecisionStep) bool {
			return len(steps) == 2 &&
				steps[0].UserId == suite.approverId && steps[0].Role == "health" &&
				steps[1].UserId == secondApproverId && steps[1].Role == "civil"
		})).Return(nil)
	suite.eventRepository.On("CreateSessionEvent", mock.Anything, mock.Anything,
		mock.MatchedBy(func(input models.CreateSessionEventInput) bool {
			return input.EventType == models.SessionEventDecisionProposed
		})).Return(nil)
	suite.notificationRepository.On("CreateNotifications", mock.Anything, mock.Anything,
		mock.MatchedBy(func(input models.CreateNotificationInput) bool {
			return input.Type == "decision.approval_requested" && len(input.UserIds) == 2
		})).Return(nil)
	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, mock.Anything).
		Return(suite.decision, nil)

	result, err := suite.makeUsecase().ProposeDecision(context.Background(), models.CreateDecisionInput{
		SessionId:         suite.sessionId,
		ProposerId:        suite.proposerId,
		Title:             "Evacuate the riverside district",
		RequiredApprovers: []uuid.UUID{suite.approverId, secondApproverId, suite.approverId},
	})

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, suite.decision, result.Decision)
	assert.Len(t, result.Steps, 2)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_RespondToDecision_already_resolved() {
	resolved := suite.decision
	resolved.Status = models.DecisionStatusRejected

	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(resolved, nil)
	suite.enforceSecurity.On("RespondToDecision", resolved).Return(nil)

	_, err := suite.makeUsecase().RespondToDecision(context.Background(), models.DecisionStepResponse{
		DecisionId: suite.decisionId,
		UserId:     suite.approverId,
		Approved:   true,
	})

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrDecisionAlreadyResolved)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_RespondToDecision_no_pending_step() {
	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(suite.decision, nil)
	suite.enforceSecurity.On("RespondToDecision", suite.decision).Return(nil)
	suite.repository.On("RespondToPendingStep", mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(int64(0), nil)

	_, err := suite.makeUsecase().RespondToDecision(context.Background(), models.DecisionStepResponse{
		DecisionId: suite.decisionId,
		UserId:     suite.approverId,
		Approved:   true,
	})

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrNoPendingStep)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_RespondToDecision_approval_below_quorum() {
	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(suite.decision, nil)
	suite.enforceSecurity.On("RespondToDecision", suite.decision).Return(nil)
	suite.repository.On("RespondToPendingStep", mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(int64(1), nil)
	suite.repository.On("CountPendingSteps", mock.Anything, mock.Anything, suite.decisionId).
		Return(1, nil)
	suite.repository.On("ListDecisionSteps", mock.Anything, mock.Anything, suite.decisionId).
		Return([]models.DecisionStep{}, nil)

	result, err := suite.makeUsecase().RespondToDecision(context.Background(), models.DecisionStepResponse{
		DecisionId: suite.decisionId,
		UserId:     suite.approverId,
		Approved:   true,
	})

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.DecisionStatusProposed, result.Status)

	// no status transition was attempted
	suite.repository.AssertNotCalled(t, "UpdateDecisionStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_RespondToDecision_last_approval_promotes() {
	approved := suite.decision
	approved.Status = models.DecisionStatusApproved

	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(suite.decision, nil).Once()
	suite.enforceSecurity.On("RespondToDecision", suite.decision).Return(nil)
	suite.repository.On("RespondToPendingStep", mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(int64(1), nil)
	suite.repository.On("CountPendingSteps", mock.Anything, mock.Anything, suite.decisionId).
		Return(0, nil)
	suite.repository.On("UpdateDecisionStatus", mock.Anything, mock.Anything, suite.decisionId,
		models.DecisionStatusProposed, models.DecisionStatusApproved).Return(int64(1), nil)
	suite.eventRepository.On("CreateSessionEvent", mock.Anything, mock.Anything,
		mock.MatchedBy(func(input models.CreateSessionEventInput) bool {
			return input.EventType == models.SessionEventDecisionResolved &&
				input.Payload["outcome"] == "approved"
		})).Return(nil)
	suite.notificationRepository.On("CreateNotifications", mock.Anything, mock.Anything,
		mock.MatchedBy(func(input models.CreateNotificationInput) bool {
			return input.Type == "decision.approved" &&
				len(input.UserIds) == 1 && input.UserIds[0] == suite.proposerId
		})).Return(nil)
	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(approved, nil).Once()
	suite.repository.On("ListDecisionSteps", mock.Anything, mock.Anything, suite.decisionId).
		Return([]models.DecisionStep{}, nil)

	result, err := suite.makeUsecase().RespondToDecision(context.Background(), models.DecisionStepResponse{
		DecisionId: suite.decisionId,
		UserId:     suite.approverId,
		Approved:   true,
	})

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.DecisionStatusApproved, result.Status)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_RespondToDecision_single_rejection_resolves() {
	rejected := suite.decision
	rejected.Status = models.DecisionStatusRejected
	comment := "not with the resources we have"

	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(suite.decision, nil).Once()
	suite.enforceSecurity.On("RespondToDecision", suite.decision).Return(nil)
	suite.repository.On("RespondToPendingStep", mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(int64(1), nil)
	suite.repository.On("UpdateDecisionStatus", mock.Anything, mock.Anything, suite.decisionId,
		models.DecisionStatusProposed, models.DecisionStatusRejected).Return(int64(1), nil)
	suite.eventRepository.On("CreateSessionEvent", mock.Anything, mock.Anything,
		mock.MatchedBy(func(input models.CreateSessionEventInput) bool {
			return input.EventType == models.SessionEventDecisionResolved &&
				input.Payload["outcome"] == "rejected"
		})).Return(nil)
	suite.notificationRepository.On("CreateNotifications", mock.Anything, mock.Anything,
		mock.MatchedBy(func(input models.CreateNotificationInput) bool {
			return input.Type == "decision.rejected"
		})).Return(nil)
	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(rejected, nil).Once()
	suite.repository.On("ListDecisionSteps", mock.Anything, mock.Anything, suite.decisionId).
		Return([]models.DecisionStep{}, nil)

	result, err := suite.makeUsecase().RespondToDecision(context.Background(), models.DecisionStepResponse{
		DecisionId: suite.decisionId,
		UserId:     suite.approverId,
		Approved:   false,
		Comment:    &comment,
	})

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.DecisionStatusRejected, result.Status)

	// remaining pending steps are irrelevant after a veto
	suite.repository.AssertNotCalled(t, "CountPendingSteps",
		mock.Anything, mock.Anything, mock.Anything)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_ExecuteDecision_not_approved() {
	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(suite.decision, nil)
	suite.enforceSecurity.On("ExecuteDecision", suite.decision).Return(nil)
	suite.repository.On("MarkDecisionExecuted", mock.Anything, mock.Anything,
		suite.decisionId, mock.Anything).Return(int64(0), nil)

	_, err := suite.makeUsecase().ExecuteDecision(context.Background(),
		suite.decisionId, suite.approverId)

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrDecisionNotApproved)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_ExecuteDecision_lost_race_reports_observed_status() {
	approved := suite.decision
	approved.Status = models.DecisionStatusApproved
	executed := suite.decision
	executed.Status = models.DecisionStatusExecuted

	// the first read still sees "approved", the conditional update loses the
	// race, the re-read sees the terminal status the winner left behind
	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(approved, nil).Once()
	suite.enforceSecurity.On("ExecuteDecision", approved).Return(nil)
	suite.repository.On("MarkDecisionExecuted", mock.Anything, mock.Anything,
		suite.decisionId, mock.Anything).Return(int64(0), nil)
	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(executed, nil).Once()

	_, err := suite.makeUsecase().ExecuteDecision(context.Background(),
		suite.decisionId, suite.approverId)

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrDecisionAlreadyResolved)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_ExecuteDecision_nominal() {
	approved := suite.decision
	approved.Status = models.DecisionStatusApproved
	executed := suite.decision
	executed.Status = models.DecisionStatusExecuted
	classification := models.DecisionClassification{
		PrimaryCategory: models.DecisionTypeEvacuationOrder,
		Confidence:      0.92,
	}

	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(approved, nil).Once()
	suite.enforceSecurity.On("ExecuteDecision", approved).Return(nil)
	suite.repository.On("MarkDecisionExecuted", mock.Anything, mock.Anything,
		suite.decisionId, mock.Anything).Return(int64(1), nil)
	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(executed, nil).Once()

	suite.classifier.On("ClassifyDecision", mock.Anything, executed).Return(classification, nil)
	// impact tracking runs after classification and sees the classified type
	suite.objectiveTracker.On("TrackDecisionImpact", mock.Anything,
		mock.MatchedBy(func(decision models.Decision) bool {
			return decision.DecisionType != nil &&
				*decision.DecisionType == models.DecisionTypeEvacuationOrder
		})).Return(nil)
	suite.repository.On("UpdateDecisionClassification", mock.Anything, mock.Anything,
		suite.decisionId, classification).Return(nil)
	suite.incidentRepository.On("CreateIncident", mock.Anything, mock.Anything,
		mock.MatchedBy(func(input models.CreateIncidentInput) bool {
			return input.SessionId == suite.sessionId && input.Severity == "major"
		}), mock.Anything).Return(nil)
	suite.taskQueueRepository.On("Enqueue", mock.Anything,
		models.ObjectiveReevaluationArgs{SessionId: suite.sessionId}).Return(nil)
	suite.eventRepository.On("CreateSessionEvent", mock.Anything, mock.Anything,
		mock.MatchedBy(func(input models.CreateSessionEventInput) bool {
			return input.EventType == models.SessionEventDecisionExecuted
		})).Return(nil)
	suite.sessionRepository.On("ListSessionParticipants", mock.Anything, mock.Anything,
		suite.sessionId).Return([]models.SessionParticipant{
		{SessionId: suite.sessionId, UserId: suite.approverId, Role: "health"},
	}, nil)
	suite.notificationRepository.On("CreateNotifications", mock.Anything, mock.Anything,
		mock.MatchedBy(func(input models.CreateNotificationInput) bool {
			return input.Type == "decision.executed"
		})).Return(nil)

	result, err := suite.makeUsecase().ExecuteDecision(context.Background(),
		suite.decisionId, suite.approverId)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.DecisionStatusExecuted, result.Status)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_ExecuteDecision_classification_feeds_impact_tracking() {
	approved := suite.decision
	approved.Title = "Issue a press release on shelter capacity"
	approved.Status = models.DecisionStatusApproved
	executed := approved
	executed.Status = models.DecisionStatusExecuted
	classification := models.DecisionClassification{
		PrimaryCategory: models.DecisionTypePublicCommunication,
		Confidence:      0.88,
	}

	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(approved, nil).Once()
	suite.enforceSecurity.On("ExecuteDecision", approved).Return(nil)
	suite.repository.On("MarkDecisionExecuted", mock.Anything, mock.Anything,
		suite.decisionId, mock.Anything).Return(int64(1), nil)
	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(executed, nil).Once()

	suite.classifier.On("ClassifyDecision", mock.Anything, executed).Return(classification, nil)
	suite.repository.On("UpdateDecisionClassification", mock.Anything, mock.Anything,
		suite.decisionId, classification).Return(nil)
	suite.objectiveTracker.On("TrackDecisionImpact", mock.Anything,
		mock.MatchedBy(func(decision models.Decision) bool {
			return decision.DecisionType != nil &&
				*decision.DecisionType == models.DecisionTypePublicCommunication
		})).Return(nil)
	suite.taskQueueRepository.On("Enqueue", mock.Anything,
		models.ObjectiveReevaluationArgs{SessionId: suite.sessionId}).Return(nil)
	suite.eventRepository.On("CreateSessionEvent", mock.Anything, mock.Anything,
		mock.Anything).Return(nil)
	suite.sessionRepository.On("ListSessionParticipants", mock.Anything, mock.Anything,
		suite.sessionId).Return([]models.SessionParticipant{}, nil)
	suite.notificationRepository.On("CreateNotifications", mock.Anything, mock.Anything,
		mock.Anything).Return(nil)

	_, err := suite.makeUsecase().ExecuteDecision(context.Background(),
		suite.decisionId, suite.approverId)

	t := suite.T()
	assert.NoError(t, err)
	// public communication is not an incident-generating type
	suite.incidentRepository.AssertNotCalled(t, "CreateIncident",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_ExecuteDecision_degraded_pipeline_still_succeeds() {
	approved := suite.decision
	approved.Status = models.DecisionStatusApproved
	executed := suite.decision
	executed.Status = models.DecisionStatusExecuted

	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(approved, nil).Once()
	suite.enforceSecurity.On("ExecuteDecision", approved).Return(nil)
	suite.repository.On("MarkDecisionExecuted", mock.Anything, mock.Anything,
		suite.decisionId, mock.Anything).Return(int64(1), nil)
	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(executed, nil).Once()

	suite.objectiveTracker.On("TrackDecisionImpact", mock.Anything, executed).
		Return(suite.repositoryError)
	suite.classifier.On("ClassifyDecision", mock.Anything, executed).
		Return(models.DecisionClassification{}, suite.repositoryError)
	suite.taskQueueRepository.On("Enqueue", mock.Anything,
		models.ObjectiveReevaluationArgs{SessionId: suite.sessionId}).Return(nil)
	suite.eventRepository.On("CreateSessionEvent", mock.Anything, mock.Anything,
		mock.Anything).Return(nil)
	suite.sessionRepository.On("ListSessionParticipants", mock.Anything, mock.Anything,
		suite.sessionId).Return([]models.SessionParticipant{}, nil)
	suite.notificationRepository.On("CreateNotifications", mock.Anything, mock.Anything,
		mock.Anything).Return(nil)

	result, err := suite.makeUsecase().ExecuteDecision(context.Background(),
		suite.decisionId, suite.approverId)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.DecisionStatusExecuted, result.Status)

	suite.AssertExpectations()
}

func (suite *DecisionUsecaseTestSuite) Test_GetDecision_security_error() {
	suite.repository.On("GetDecisionById", mock.Anything, mock.Anything, suite.decisionId).
		Return(suite.decision, nil)
	suite.sessionRepository.On("GetSessionById", mock.Anything, mock.Anything, suite.sessionId).
		Return(suite.session, nil)
	suite.enforceSecurity.On("ReadSession", suite.session).Return(suite.securityError)

	_, err := suite.makeUsecase().GetDecision(context.Background(), suite.decisionId)

	t := suite.T()
	assert.ErrorIs(t, err, suite.securityError)

	suite.AssertExpectations()
}

func TestDecisionUsecase(t *testing.T) {
	suite.Run(t, new(DecisionUsecaseTestSuite))
}
