package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/opsdrill/exercise-backend/infra"
	"github.com/opsdrill/exercise-backend/repositories"
	"github.com/opsdrill/exercise-backend/usecases"
	"github.com/opsdrill/exercise-backend/usecases/exercise_jobs"
	"github.com/opsdrill/exercise-backend/utils"
)

func RunTaskQueue() error {
	config := loadServerConfig()
	maxWorkers := utils.GetIntEnv("TASK_QUEUE_MAX_WORKERS", 10)

	logger := utils.NewLogger(config.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	pool, err := infra.NewPostgresConnectionPool(ctx, config.pgConnectionString)
	if err != nil {
		logger.ErrorContext(ctx, "failed to create connection pool", "error", err)
		return err
	}

	// First, an insert-only client to pass to the repos: river uses the same
	// client type for job insertion and job running, and the repos only need
	// the former.
	insertClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{})
	if err != nil {
		logger.ErrorContext(ctx, "failed to create river client", "error", err)
		return err
	}

	repos := repositories.NewRepositories(pool, repositories.WithRiverClient(insertClient))
	uc := usecases.NewUsecases(repos)

	workers := river.NewWorkers()
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		FetchPollInterval: 100 * time.Millisecond,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: maxWorkers},
		},
		// Must be larger than the time it takes to process a job.
		RescueStuckJobsAfter: 1 * time.Minute,
		Workers:              workers,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to create river worker client", "error", err)
		return err
	}

	reevaluator := uc.NewObjectiveReevaluator()
	river.AddWorker(workers, exercise_jobs.NewObjectiveReevaluationWorker(&reevaluator))

	if err := riverClient.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "failed to start river client", "error", err)
		return err
	}

	sigintOrTerm := make(chan os.Signal, 1)
	signal.Notify(sigintOrTerm, syscall.SIGINT, syscall.SIGTERM)

	go cleanStop(ctx, sigintOrTerm, riverClient)

	<-riverClient.Stopped()
	logger.InfoContext(ctx, "river client stopped")

	return nil
}

// cleanStop waits for SIGINT/SIGTERM and tries to stop gracefully by letting
// in-flight jobs finish. A second signal cancels the context of all active
// jobs, a third exits uncleanly.
func cleanStop(ctx context.Context, sigintOrTerm chan os.Signal, riverClient *river.Client[pgx.Tx]) {
	logger := utils.LoggerFromContext(ctx)
	<-sigintOrTerm
	logger.InfoContext(ctx, "received SIGINT/SIGTERM, initiating soft stop")

	softStopCtx, softStopCtxCancel := context.WithTimeout(ctx, 5*time.Second)
	defer softStopCtxCancel()

	go func() {
		select {
		case <-sigintOrTerm:
			logger.InfoContext(ctx, "received SIGINT/SIGTERM again, initiating hard stop")
			softStopCtxCancel()
		case <-softStopCtx.Done():
			logger.InfoContext(ctx, "soft stop timeout, initiating hard stop")
		}
	}()

	err := riverClient.Stop(softStopCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(ctx, "soft stop failed", "error", err)
		panic(err)
	}
	if err == nil {
		logger.InfoContext(ctx, "soft stop succeeded")
		return
	}

	hardStopCtx, hardStopCtxCancel := context.WithTimeout(ctx, 10*time.Second)
	defer hardStopCtxCancel()

	err = riverClient.StopAndCancel(hardStopCtx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		logger.InfoContext(ctx, "hard stop timeout, exiting unsafely")
	} else if err != nil {
		panic(err)
	}
}
