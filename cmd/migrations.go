package cmd

import (
	"github.com/opsdrill/exercise-backend/repositories"
	"github.com/opsdrill/exercise-backend/utils"
)

func RunMigrations() error {
	pgConnectionString := utils.GetRequiredStringEnv("PG_CONNECTION_STRING")
	loggingFormat := utils.GetStringEnv("LOGGING_FORMAT", "text")

	logger := utils.NewLogger(loggingFormat)
	return repositories.RunMigrations(pgConnectionString, logger)
}
