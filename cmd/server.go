package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/opsdrill/exercise-backend/api"
	"github.com/opsdrill/exercise-backend/infra"
	"github.com/opsdrill/exercise-backend/repositories"
	"github.com/opsdrill/exercise-backend/usecases"
	"github.com/opsdrill/exercise-backend/utils"
)

func RunServer() error {
	config := loadServerConfig()

	logger := utils.NewLogger(config.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	pool, err := infra.NewPostgresConnectionPool(ctx, config.pgConnectionString)
	if err != nil {
		logger.ErrorContext(ctx, "failed to create connection pool", "error", err)
		return err
	}

	// Insert-only river client, so the API process can enqueue jobs without
	// running any worker.
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{})
	if err != nil {
		logger.ErrorContext(ctx, "failed to create river client", "error", err)
		return err
	}

	repos := repositories.NewRepositories(pool, repositories.WithRiverClient(riverClient))

	ucOptions := []usecases.Option{}
	if config.aiClassifier.Enabled() {
		ucOptions = append(ucOptions,
			usecases.WithClassifier(infra.NewAiDecisionClassifier(config.aiClassifier)))
	} else {
		logger.InfoContext(ctx, "AI decision classification disabled, no classifier configured")
	}
	uc := usecases.NewUsecases(repos, ucOptions...)

	jwtRepository := repositories.NewJwtRepository([]byte(config.jwtSigningSecret))
	auth := api.NewAuthentication(jwtRepository)

	apiConfig := config.apiConfiguration()
	router := api.NewRouter(apiConfig, logger)
	server := api.NewServer(router, apiConfig, uc, auth)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", slog.String("port", apiConfig.Port))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "error while serving the app", "error", err)
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(ctx, "error while shutting down the server", "error", err)
		return err
	}
	return nil
}
