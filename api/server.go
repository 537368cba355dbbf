package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/opsdrill/exercise-backend/usecases"
	"github.com/opsdrill/exercise-backend/utils"
)

func NewRouter(conf Configuration, logger *slog.Logger) *gin.Engine {
	if conf.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(loggerMiddleware(logger))
	r.Use(cors.New(corsConfig(conf.CorsAllowLocalhost)))
	return r
}

func loggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := utils.StoreLoggerInContext(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		logger.DebugContext(c.Request.Context(), "request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

func corsConfig(allowLocalhost bool) cors.Config {
	config := cors.Config{
		AllowOrigins:     []string{"https://*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           7200 * time.Second,
	}
	if allowLocalhost {
		config.AllowOrigins = append(config.AllowOrigins,
			"http://localhost:3000", "http://localhost:5173")
	}
	return config
}

func NewServer(
	router *gin.Engine,
	conf Configuration,
	uc usecases.Usecases,
	auth Authentication,
) *http.Server {
	addRoutes(router, conf, uc, auth)

	// extra margin over the handler timeout so our own timeout fires first
	maxTimeout := conf.DefaultTimeout + 5*time.Second

	return &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", conf.Port),
		WriteTimeout: maxTimeout,
		ReadTimeout:  maxTimeout,
		IdleTimeout:  maxTimeout,
		Handler:      h2c.NewHandler(router, &http2.Server{}),
	}
}
