package usecases

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories"
	"github.com/opsdrill/exercise-backend/usecases/executor_factory"
	"github.com/opsdrill/exercise-backend/usecases/security"
	"github.com/opsdrill/exercise-backend/utils"
)

type SessionUsecase struct {
	enforceSecurity   security.EnforceSecurityExercise
	executorFactory   executor_factory.ExecutorFactory
	sessionRepository sessionReadWriteRepository
	objectiveUsecase  ObjectiveUsecase
}

func (usecase *SessionUsecase) GetSession(ctx context.Context,
	sessionId uuid.UUID,
) (models.Session, error) {
	exec := usecase.executorFactory.NewExecutor()

	session, err := usecase.sessionRepository.GetSessionById(ctx, exec, sessionId)
	if err != nil {
		return models.Session{}, err
	}
	if err := usecase.enforceSecurity.ReadSession(session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// StartSession moves a pending session to in_progress and seeds its objective
// progress rows, in one transaction so a failed seeding rolls the transition
// back. The transition is conditional, a second concurrent start is rejected
// instead of restarting the session.
func (usecase *SessionUsecase) StartSession(ctx context.Context,
	sessionId uuid.UUID,
) (models.Session, error) {
	started, err := executor_factory.TransactionReturnValue(ctx, usecase.executorFactory,
		func(tx repositories.Transaction) (models.Session, error) {
			session, err := usecase.sessionRepository.GetSessionById(ctx, tx, sessionId)
			if err != nil {
				return models.Session{}, err
			}
			if err := usecase.enforceSecurity.StartSession(session); err != nil {
				return models.Session{}, err
			}

			rows, err := usecase.sessionRepository.UpdateSessionStatus(ctx, tx, sessionId,
				models.SessionStatusPending, models.SessionStatusInProgress, nil)
			if err != nil {
				return models.Session{}, err
			}
			if rows == 0 {
				return models.Session{}, errors.Wrapf(models.ConflictError,
					"session %s is not pending, current status is %q", sessionId, session.Status)
			}

			if _, err := usecase.objectiveUsecase.initializeObjectives(ctx, tx, sessionId); err != nil {
				return models.Session{}, err
			}

			return usecase.sessionRepository.GetSessionById(ctx, tx, sessionId)
		})
	if err != nil {
		return models.Session{}, err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "session started",
		"session_id", sessionId.String())

	return started, nil
}
