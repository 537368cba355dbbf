package cmd

import (
	"time"

	"github.com/opsdrill/exercise-backend/api"
	"github.com/opsdrill/exercise-backend/infra"
	"github.com/opsdrill/exercise-backend/utils"
)

type serverConfig struct {
	env                string
	appName            string
	port               string
	loggingFormat      string
	pgConnectionString string
	jwtSigningSecret   string
	aiClassifier       infra.AiClassifierConfig
}

func loadServerConfig() serverConfig {
	return serverConfig{
		env:                utils.GetStringEnv("ENV", "development"),
		appName:            "exercise-backend",
		port:               utils.GetStringEnv("PORT", "8080"),
		loggingFormat:      utils.GetStringEnv("LOGGING_FORMAT", "text"),
		pgConnectionString: utils.GetRequiredStringEnv("PG_CONNECTION_STRING"),
		jwtSigningSecret:   utils.GetRequiredStringEnv("AUTHENTICATION_JWT_SIGNING_SECRET"),
		aiClassifier: infra.AiClassifierConfig{
			BaseUrl: utils.GetStringEnv("AI_CLASSIFIER_BASE_URL", ""),
			ApiKey:  utils.GetStringEnv("AI_CLASSIFIER_API_KEY", ""),
			Model:   utils.GetStringEnv("AI_CLASSIFIER_MODEL", ""),
		},
	}
}

func (config serverConfig) apiConfiguration() api.Configuration {
	return api.Configuration{
		Env:                config.env,
		AppName:            config.appName,
		Port:               config.port,
		DefaultTimeout:     10 * time.Second,
		CorsAllowLocalhost: config.env == "development",
	}
}
