package usecases

import (
	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/usecases/security"
)

type UsecasesWithCreds struct {
	Usecases
	Credentials models.Credentials
}

func (usecases *Usecases) NewUsecasesWithCreds(creds models.Credentials) UsecasesWithCreds {
	return UsecasesWithCreds{
		Usecases:    *usecases,
		Credentials: creds,
	}
}

func (usecases *UsecasesWithCreds) NewEnforceSecurity() security.EnforceSecurity {
	return &security.EnforceSecurityImpl{
		Credentials: usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewEnforceExerciseSecurity() security.EnforceSecurityExercise {
	return &security.EnforceSecurityExerciseImpl{
		EnforceSecurity: usecases.NewEnforceSecurity(),
		Credentials:     usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewObjectiveUsecase() ObjectiveUsecase {
	return ObjectiveUsecase{
		enforceSecurity:   usecases.NewEnforceExerciseSecurity(),
		executorFactory:   usecases.NewExecutorFactory(),
		repository:        usecases.Repositories.ExerciseDbRepository,
		sessionRepository: usecases.Repositories.ExerciseDbRepository,
		eventRepository:   usecases.Repositories.ExerciseDbRepository,
		thresholds:        usecases.scoreThresholds,
		impactRules:       usecases.impactRules,
	}
}

func (usecases *UsecasesWithCreds) NewDecisionUsecase() DecisionUsecase {
	objectiveUsecase := usecases.NewObjectiveUsecase()
	return DecisionUsecase{
		enforceSecurity:        usecases.NewEnforceExerciseSecurity(),
		executorFactory:        usecases.NewExecutorFactory(),
		repository:             usecases.Repositories.ExerciseDbRepository,
		sessionRepository:      usecases.Repositories.ExerciseDbRepository,
		eventRepository:        usecases.Repositories.ExerciseDbRepository,
		notificationRepository: usecases.Repositories.ExerciseDbRepository,
		incidentRepository:     usecases.Repositories.ExerciseDbRepository,
		taskQueueRepository:    usecases.Repositories.TaskQueueRepository,
		classifier:             usecases.classifier,
		objectiveTracker:       &objectiveUsecase,
	}
}

func (usecases *UsecasesWithCreds) NewInjectUsecase() InjectUsecase {
	return InjectUsecase{
		enforceSecurity:        usecases.NewEnforceExerciseSecurity(),
		executorFactory:        usecases.NewExecutorFactory(),
		repository:             usecases.Repositories.ExerciseDbRepository,
		sessionRepository:      usecases.Repositories.ExerciseDbRepository,
		eventRepository:        usecases.Repositories.ExerciseDbRepository,
		notificationRepository: usecases.Repositories.ExerciseDbRepository,
		credentials:            usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewSessionUsecase() SessionUsecase {
	return SessionUsecase{
		enforceSecurity:   usecases.NewEnforceExerciseSecurity(),
		executorFactory:   usecases.NewExecutorFactory(),
		sessionRepository: usecases.Repositories.ExerciseDbRepository,
		objectiveUsecase:  usecases.NewObjectiveUsecase(),
	}
}

func (usecases *UsecasesWithCreds) NewNotificationUsecase() NotificationUsecase {
	return NotificationUsecase{
		executorFactory: usecases.NewExecutorFactory(),
		repository:      usecases.Repositories.ExerciseDbRepository,
		credentials:     usecases.Credentials,
	}
}
