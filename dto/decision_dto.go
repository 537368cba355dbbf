package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/pure_utils"
)

type APIDecisionStep struct {
	Id          string      `json:"id"`
	UserId      string      `json:"user_id"`
	Role        string      `json:"role"`
	StepOrder   int         `json:"step_order"`
	Status      string      `json:"status"`
	Comment     null.String `json:"comment"`
	RespondedAt null.Time   `json:"responded_at"`
}

type APIDecision struct {
	Id           string      `json:"id"`
	SessionId    string      `json:"session_id"`
	ProposerId   string      `json:"proposer_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	DecisionType null.String `json:"decision_type"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	ExecutedAt   null.Time   `json:"executed_at"`
}

type APIDecisionWithSteps struct {
	APIDecision
	Steps []APIDecisionStep `json:"steps"`
}

func AdaptDecisionStepDto(step models.DecisionStep) APIDecisionStep {
	return APIDecisionStep{
		Id:          step.Id.String(),
		UserId:      step.UserId.String(),
		Role:        step.Role,
		StepOrder:   step.StepOrder,
		Status:      string(step.Status),
		Comment:     null.StringFromPtr(step.Comment),
		RespondedAt: null.TimeFromPtr(step.RespondedAt),
	}
}

func AdaptDecisionDto(decision models.Decision) APIDecision {
	var decisionType null.String
	if decision.DecisionType != nil {
		decisionType = null.StringFrom(string(*decision.DecisionType))
	}
	return APIDecision{
		Id:           decision.Id.String(),
		SessionId:    decision.SessionId.String(),
		ProposerId:   decision.ProposerId.String(),
		Title:        decision.Title,
		Description:  decision.Description,
		DecisionType: decisionType,
		Status:       string(decision.Status),
		CreatedAt:    decision.CreatedAt,
		ExecutedAt:   null.TimeFromPtr(decision.ExecutedAt),
	}
}

func AdaptDecisionWithStepsDto(decision models.DecisionWithSteps) APIDecisionWithSteps {
	return APIDecisionWithSteps{
		APIDecision: AdaptDecisionDto(decision.Decision),
		Steps:       pure_utils.Map(decision.Steps, AdaptDecisionStepDto),
	}
}

type CreateDecisionBody struct {
	SessionId         string   `json:"session_id" binding:"required,uuid"`
	Title             string   `json:"title" binding:"required"`
	Description       string   `json:"description"`
	DecisionType      *string  `json:"decision_type"`
	RequiredApprovers []string `json:"required_approvers" binding:"required,dive,uuid"`
}

type RespondToDecisionBody struct {
	Approved bool    `json:"approved"`
	Comment  *string `json:"comment"`
}
