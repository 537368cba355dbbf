package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/dto"
	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/pure_utils"
	"github.com/opsdrill/exercise-backend/usecases"
)

func handlePublishInject(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var body dto.PublishInjectBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewInjectUsecase()
		inject, err := usecase.PublishInject(ctx, models.CreateInjectInput{
			SessionId: uuid.MustParse(body.SessionId),
			Title:     body.Title,
			Body:      body.Body,
			Scope:     dto.AdaptScopeBody(body.Scope),
		})
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"inject": dto.AdaptInjectDto(inject)})
	}
}

func handleCreateIncident(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var body dto.CreateIncidentBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		severity := body.Severity
		if severity == "" {
			severity = "moderate"
		}
		scope := dto.AdaptScopeBody(body.Scope)
		if body.OriginInjectId != nil {
			originId := uuid.MustParse(*body.OriginInjectId)
			scope.OriginInjectId = &originId
		}

		usecase := usecasesWithCreds(ctx, uc).NewInjectUsecase()
		incidentId, err := usecase.CreateIncident(ctx, models.CreateIncidentInput{
			SessionId:   uuid.MustParse(body.SessionId),
			Title:       body.Title,
			Description: body.Description,
			Severity:    severity,
			Scope:       scope,
		})
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"incident_id": incidentId.String()})
	}
}

func handleListInjects(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sessionId, ok := sessionIdFromUri(c)
		if !ok {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewInjectUsecase()
		injects, err := usecase.ListInjects(ctx, sessionId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"injects": pure_utils.Map(injects, dto.AdaptInjectDto)})
	}
}

func handleListIncidents(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sessionId, ok := sessionIdFromUri(c)
		if !ok {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewInjectUsecase()
		incidents, err := usecase.ListIncidents(ctx, sessionId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"incidents": pure_utils.Map(incidents, dto.AdaptIncidentDto)})
	}
}
