package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/opsdrill/exercise-backend/models"
)

// ExecBuilder executes a write query and returns the number of rows affected.
func ExecBuilder(ctx context.Context, exec Executor, builder squirrel.Sqlizer) (int64, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "can't build sql query")
	}

	tag, err := exec.Exec(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "error executing sql query")
	}
	return tag.RowsAffected(), nil
}

func SqlToListOfRow[Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(row pgx.CollectableRow) (Model, error),
) ([]Model, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing sql query")
	}
	defer rows.Close()

	return pgx.CollectRows(rows, adapter)
}

// SqlToListOfModels executes the query and adapts every row into a model.
func SqlToListOfModels[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) ([]Model, error) {
	return SqlToListOfRow(ctx, exec, query, func(row pgx.CollectableRow) (Model, error) {
		dbModel, err := pgx.RowToStructByName[DBModel](row)
		if err != nil {
			var zero Model
			return zero, errors.Wrap(err, fmt.Sprintf("error scanning row to struct %T", dbModel))
		}
		return adapter(dbModel)
	})
}

// SqlToModel expects exactly one row; a missing row surfaces as NotFoundError.
func SqlToModel[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) (Model, error) {
	var zero Model
	results, err := SqlToListOfModels(ctx, exec, query, adapter)
	if err != nil {
		return zero, err
	}

	if len(results) == 0 {
		return zero, errors.Wrap(models.NotFoundError, fmt.Sprintf("found no object of type %T", zero))
	}
	if len(results) > 1 {
		return zero, errors.New(fmt.Sprintf("expected exactly 1 object of type %T, found %d", zero, len(results)))
	}
	return results[0], nil
}

// SqlToOptionalModel returns nil when no row matches.
func SqlToOptionalModel[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) (*Model, error) {
	results, err := SqlToListOfModels(ctx, exec, query, adapter)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, nil
	}
	if len(results) > 1 {
		var zero Model
		return nil, errors.New(fmt.Sprintf("expected at most 1 object of type %T, found %d", zero, len(results)))
	}
	return &results[0], nil
}
