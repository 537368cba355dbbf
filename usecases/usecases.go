package usecases

import (
	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories"
	"github.com/opsdrill/exercise-backend/usecases/executor_factory"
	"github.com/opsdrill/exercise-backend/usecases/scoring"
	"github.com/opsdrill/exercise-backend/usecases/security"
)

type Usecases struct {
	Repositories    repositories.Repositories
	scoreThresholds models.ScoreThresholds
	impactRules     []scoring.ImpactRule
	classifier      DecisionClassifier
}

type Option func(*options)

type options struct {
	scoreThresholds models.ScoreThresholds
	impactRules     []scoring.ImpactRule
	classifier      DecisionClassifier
}

func WithScoreThresholds(thresholds models.ScoreThresholds) Option {
	return func(o *options) {
		o.scoreThresholds = thresholds
	}
}

func WithImpactRules(rules []scoring.ImpactRule) Option {
	return func(o *options) {
		o.impactRules = rules
	}
}

func WithClassifier(classifier DecisionClassifier) Option {
	return func(o *options) {
		o.classifier = classifier
	}
}

func NewUsecases(repos repositories.Repositories, opts ...Option) Usecases {
	o := &options{
		scoreThresholds: models.DefaultScoreThresholds,
		impactRules:     scoring.DefaultImpactRules,
	}
	for _, apply := range opts {
		apply(o)
	}

	return Usecases{
		Repositories:    repos,
		scoreThresholds: o.scoreThresholds,
		impactRules:     o.impactRules,
		classifier:      o.classifier,
	}
}

func (usecases *Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{
		executorFactory:    usecases.NewExecutorFactory(),
		livenessRepository: usecases.Repositories.ExerciseDbRepository,
	}
}

func (usecases *Usecases) NewExecutorFactory() executor_factory.ExecutorFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

// NewObjectiveReevaluator builds the objective usecase used by background
// jobs. Jobs run with a dedicated admin security context since there is no
// caller to hold credentials.
func (usecases *Usecases) NewObjectiveReevaluator() ObjectiveUsecase {
	creds := models.Credentials{Role: models.ROLE_ADMIN}
	return ObjectiveUsecase{
		enforceSecurity: &security.EnforceSecurityExerciseImpl{
			EnforceSecurity: &security.EnforceSecurityImpl{Credentials: creds},
			Credentials:     creds,
		},
		executorFactory:   usecases.NewExecutorFactory(),
		repository:        usecases.Repositories.ExerciseDbRepository,
		sessionRepository: usecases.Repositories.ExerciseDbRepository,
		eventRepository:   usecases.Repositories.ExerciseDbRepository,
		thresholds:        usecases.scoreThresholds,
		impactRules:       usecases.impactRules,
	}
}
