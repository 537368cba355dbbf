package executor_factory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/opsdrill/exercise-backend/repositories"
)

// ExecutorFactoryStub backs the usecase tests with a pgxmock pool. The same
// mock serves as pool executor and transaction.
type ExecutorFactoryStub struct {
	Mock pgxmock.PgxPoolIface
}

func NewExecutorFactoryStub() ExecutorFactoryStub {
	pool, _ := pgxmock.NewPool()

	return ExecutorFactoryStub{
		Mock: pool,
	}
}

type transactionStub struct {
	pgxmock.PgxPoolIface
}

func (stub transactionStub) RawTx() pgx.Tx {
	return nil
}

func (stub ExecutorFactoryStub) NewExecutor() repositories.Executor {
	return transactionStub{stub.Mock}
}

func (stub ExecutorFactoryStub) Transaction(ctx context.Context,
	fn func(tx repositories.Transaction) error,
) error {
	return fn(transactionStub{stub.Mock})
}
