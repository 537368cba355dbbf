package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"

	"github.com/opsdrill/exercise-backend/usecases"
)

func timeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(duration),
		timeout.WithHandler(func(c *gin.Context) {
			c.Next()
		}),
		timeout.WithResponse(func(c *gin.Context) {
			c.String(http.StatusRequestTimeout, "timeout")
		}),
	)
}

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases, auth Authentication) {
	r.GET("/liveness", handleLivenessProbe(uc))

	router := r.Use(timeoutMiddleware(conf.DefaultTimeout), auth.Middleware)

	router.GET("/credentials", handleGetCredentials())

	router.GET("/sessions/:session_id", handleGetSession(uc))
	router.POST("/sessions/:session_id/start", handleStartSession(uc))
	router.GET("/sessions/:session_id/decisions", handleListDecisions(uc))
	router.GET("/sessions/:session_id/objectives", handleListObjectives(uc))
	router.POST("/sessions/:session_id/objectives/initialize", handleInitializeObjectives(uc))
	router.PATCH("/sessions/:session_id/objectives/:objective_id", handleUpdateObjectiveProgress(uc))
	router.POST("/sessions/:session_id/objectives/:objective_id/penalty", handleAddPenalty(uc))
	router.POST("/sessions/:session_id/objectives/:objective_id/bonus", handleAddBonus(uc))
	router.GET("/sessions/:session_id/score", handleGetSessionScore(uc))
	router.GET("/sessions/:session_id/injects", handleListInjects(uc))
	router.GET("/sessions/:session_id/incidents", handleListIncidents(uc))
	router.GET("/sessions/:session_id/timeline", handleListTimeline(uc))

	router.POST("/decisions", handleProposeDecision(uc))
	router.GET("/decisions/:decision_id", handleGetDecision(uc))
	router.POST("/decisions/:decision_id/approve", handleRespondToDecision(uc))
	router.POST("/decisions/:decision_id/execute", handleExecuteDecision(uc))

	router.POST("/injects", handlePublishInject(uc))
	router.POST("/incidents", handleCreateIncident(uc))

	router.GET("/notifications", handleListNotifications(uc))
}
