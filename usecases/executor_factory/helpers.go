package executor_factory

import (
	"context"

	"github.com/opsdrill/exercise-backend/repositories"
)

// TransactionReturnValue runs fn in a transaction and carries its return
// value out.
func TransactionReturnValue[ReturnType any](
	ctx context.Context,
	factory ExecutorFactory,
	fn func(tx repositories.Transaction) (ReturnType, error),
) (ReturnType, error) {
	var value ReturnType
	transactionErr := factory.Transaction(ctx, func(tx repositories.Transaction) error {
		var fnErr error
		value, fnErr = fn(tx)
		return fnErr
	})
	return value, transactionErr
}
