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

type ObjectiveUriInput struct {
	SessionId   string `uri:"session_id" binding:"required,uuid"`
	ObjectiveId string `uri:"objective_id" binding:"required"`
}

func objectiveFromUri(c *gin.Context) (uuid.UUID, string, bool) {
	var input ObjectiveUriInput
	if err := c.ShouldBindUri(&input); err != nil {
		c.Status(http.StatusBadRequest)
		return uuid.Nil, "", false
	}
	return uuid.MustParse(input.SessionId), input.ObjectiveId, true
}

func handleListObjectives(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sessionId, ok := sessionIdFromUri(c)
		if !ok {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewObjectiveUsecase()
		objectives, err := usecase.ListObjectives(ctx, sessionId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"objectives": pure_utils.Map(objectives, dto.AdaptObjectiveProgressDto),
		})
	}
}

func handleInitializeObjectives(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sessionId, ok := sessionIdFromUri(c)
		if !ok {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewObjectiveUsecase()
		objectives, err := usecase.InitializeObjectives(ctx, sessionId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"objectives": pure_utils.Map(objectives, dto.AdaptObjectiveProgressDto),
		})
	}
}

func handleUpdateObjectiveProgress(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sessionId, objectiveId, ok := objectiveFromUri(c)
		if !ok {
			return
		}
		var body dto.UpdateObjectiveProgressBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		var status *models.ObjectiveStatus
		if body.Status != nil {
			s := models.ObjectiveStatus(*body.Status)
			status = &s
		}

		usecase := usecasesWithCreds(ctx, uc).NewObjectiveUsecase()
		objective, err := usecase.UpdateProgress(ctx, models.UpdateObjectiveProgressInput{
			SessionId:   sessionId,
			ObjectiveId: objectiveId,
			Percentage:  body.Percentage,
			Status:      status,
			Metrics:     body.Metrics,
		})
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"objective": dto.AdaptObjectiveProgressDto(objective)})
	}
}

func handleAddPenalty(uc usecases.Usecases) func(c *gin.Context) {
	return adjustmentHandler(uc, func(ctx *gin.Context, usecase usecases.ObjectiveUsecase,
		sessionId uuid.UUID, objectiveId string, body dto.ScoreAdjustmentBody,
	) (models.ObjectiveProgress, error) {
		return usecase.AddPenalty(ctx.Request.Context(), sessionId, objectiveId, body.Reason, body.Points)
	})
}

func handleAddBonus(uc usecases.Usecases) func(c *gin.Context) {
	return adjustmentHandler(uc, func(ctx *gin.Context, usecase usecases.ObjectiveUsecase,
		sessionId uuid.UUID, objectiveId string, body dto.ScoreAdjustmentBody,
	) (models.ObjectiveProgress, error) {
		return usecase.AddBonus(ctx.Request.Context(), sessionId, objectiveId, body.Reason, body.Points)
	})
}

func adjustmentHandler(uc usecases.Usecases, apply func(c *gin.Context,
	usecase usecases.ObjectiveUsecase, sessionId uuid.UUID, objectiveId string,
	body dto.ScoreAdjustmentBody) (models.ObjectiveProgress, error),
) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sessionId, objectiveId, ok := objectiveFromUri(c)
		if !ok {
			return
		}
		var body dto.ScoreAdjustmentBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewObjectiveUsecase()
		objective, err := apply(c, usecase, sessionId, objectiveId, body)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"objective": dto.AdaptObjectiveProgressDto(objective)})
	}
}

func handleGetSessionScore(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sessionId, ok := sessionIdFromUri(c)
		if !ok {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewObjectiveUsecase()
		score, err := usecase.CalculateSessionScore(ctx, sessionId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"score": dto.AdaptSessionScoreDto(score)})
	}
}
