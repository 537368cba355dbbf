package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/dto"
	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/pure_utils"
	"github.com/opsdrill/exercise-backend/usecases"
	"github.com/opsdrill/exercise-backend/utils"
)

type DecisionUriInput struct {
	DecisionId string `uri:"decision_id" binding:"required,uuid"`
}

func decisionIdFromUri(c *gin.Context) (uuid.UUID, bool) {
	var input DecisionUriInput
	if err := c.ShouldBindUri(&input); err != nil {
		c.Status(http.StatusBadRequest)
		return uuid.Nil, false
	}
	return uuid.MustParse(input.DecisionId), true
}

func handleProposeDecision(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var body dto.CreateDecisionBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		creds, _ := utils.CredentialsFromCtx(ctx)
		approvers := pure_utils.Map(body.RequiredApprovers, uuid.MustParse)

		usecase := usecasesWithCreds(ctx, uc).NewDecisionUsecase()
		decision, err := usecase.ProposeDecision(ctx, models.CreateDecisionInput{
			SessionId:         uuid.MustParse(body.SessionId),
			ProposerId:        creds.ActorIdentity.UserId,
			Title:             body.Title,
			Description:       body.Description,
			DecisionType:      (*models.DecisionType)(body.DecisionType),
			RequiredApprovers: approvers,
		})
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"decision": dto.AdaptDecisionWithStepsDto(decision)})
	}
}

func handleGetDecision(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		decisionId, ok := decisionIdFromUri(c)
		if !ok {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewDecisionUsecase()
		decision, err := usecase.GetDecision(ctx, decisionId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"decision": dto.AdaptDecisionWithStepsDto(decision)})
	}
}

func handleListDecisions(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sessionId, ok := sessionIdFromUri(c)
		if !ok {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewDecisionUsecase()
		decisions, err := usecase.ListDecisions(ctx, sessionId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"decisions": pure_utils.Map(decisions, dto.AdaptDecisionDto)})
	}
}

func handleRespondToDecision(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		decisionId, ok := decisionIdFromUri(c)
		if !ok {
			return
		}
		var body dto.RespondToDecisionBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		creds, _ := utils.CredentialsFromCtx(ctx)
		usecase := usecasesWithCreds(ctx, uc).NewDecisionUsecase()
		decision, err := usecase.RespondToDecision(ctx, models.DecisionStepResponse{
			DecisionId: decisionId,
			UserId:     creds.ActorIdentity.UserId,
			Approved:   body.Approved,
			Comment:    body.Comment,
		})
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"decision": dto.AdaptDecisionWithStepsDto(decision)})
	}
}

func handleExecuteDecision(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		decisionId, ok := decisionIdFromUri(c)
		if !ok {
			return
		}

		creds, _ := utils.CredentialsFromCtx(ctx)
		usecase := usecasesWithCreds(ctx, uc).NewDecisionUsecase()
		decision, err := usecase.ExecuteDecision(ctx, decisionId, creds.ActorIdentity.UserId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"decision": dto.AdaptDecisionDto(decision)})
	}
}
