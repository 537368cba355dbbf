package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/repositories/dbmodels"
)

func (repo *ExerciseDbRepository) GetInjectById(ctx context.Context, exec Executor,
	injectId uuid.UUID,
) (models.Inject, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectInjectColumn...).
		From(dbmodels.TABLE_INJECTS).
		Where(squirrel.Eq{"id": injectId})

	return SqlToModel(ctx, exec, query, dbmodels.AdaptInject)
}

func (repo *ExerciseDbRepository) ListPublishedInjects(ctx context.Context, exec Executor,
	sessionId uuid.UUID,
) ([]models.Inject, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectInjectColumn...).
		From(dbmodels.TABLE_INJECTS).
		Where(squirrel.Eq{
			"session_id": sessionId,
			"status":     models.InjectStatusPublished,
		}).
		OrderBy("published_at DESC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptInject)
}

func (repo *ExerciseDbRepository) CreateInject(ctx context.Context, exec Executor,
	input models.CreateInjectInput, newInjectId uuid.UUID, publishedAt time.Time,
) error {
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_INJECTS).
		Columns(
			"id",
			"session_id",
			"title",
			"body",
			"status",
			"scope",
			"affected_roles",
			"target_teams",
			"published_at",
		).
		Values(
			newInjectId,
			input.SessionId,
			input.Title,
			input.Body,
			models.InjectStatusPublished,
			input.Scope.Scope,
			input.Scope.AffectedRoles,
			input.Scope.TargetTeams,
			publishedAt,
		)

	_, err := ExecBuilder(ctx, exec, query)
	return err
}

func (repo *ExerciseDbRepository) ListIncidents(ctx context.Context, exec Executor,
	sessionId uuid.UUID,
) ([]models.Incident, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectIncidentColumn...).
		From(dbmodels.TABLE_INCIDENTS).
		Where(squirrel.Eq{"session_id": sessionId}).
		OrderBy("created_at DESC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptIncident)
}

func (repo *ExerciseDbRepository) CreateIncident(ctx context.Context, exec Executor,
	input models.CreateIncidentInput, newIncidentId uuid.UUID,
) error {
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_INCIDENTS).
		Columns(
			"id",
			"session_id",
			"title",
			"description",
			"severity",
			"scope",
			"affected_roles",
			"target_teams",
			"origin_inject_id",
		).
		Values(
			newIncidentId,
			input.SessionId,
			input.Title,
			input.Description,
			input.Severity,
			scopeOrNull(input.Scope.Scope),
			input.Scope.AffectedRoles,
			input.Scope.TargetTeams,
			input.Scope.OriginInjectId,
		)

	_, err := ExecBuilder(ctx, exec, query)
	return err
}
