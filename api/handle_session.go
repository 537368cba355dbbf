package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/dto"
	"github.com/opsdrill/exercise-backend/pure_utils"
	"github.com/opsdrill/exercise-backend/usecases"
)

type SessionUriInput struct {
	SessionId string `uri:"session_id" binding:"required,uuid"`
}

func sessionIdFromUri(c *gin.Context) (uuid.UUID, bool) {
	var input SessionUriInput
	if err := c.ShouldBindUri(&input); err != nil {
		c.Status(http.StatusBadRequest)
		return uuid.Nil, false
	}
	return uuid.MustParse(input.SessionId), true
}

func handleGetSession(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sessionId, ok := sessionIdFromUri(c)
		if !ok {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewSessionUsecase()
		session, err := usecase.GetSession(ctx, sessionId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": dto.AdaptSessionDto(session)})
	}
}

func handleStartSession(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sessionId, ok := sessionIdFromUri(c)
		if !ok {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewSessionUsecase()
		session, err := usecase.StartSession(ctx, sessionId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": dto.AdaptSessionDto(session)})
	}
}

func handleListTimeline(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sessionId, ok := sessionIdFromUri(c)
		if !ok {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewInjectUsecase()
		events, err := usecase.ListTimeline(ctx, sessionId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": pure_utils.Map(events, dto.AdaptSessionEventDto)})
	}
}
