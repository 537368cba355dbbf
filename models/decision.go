package models

import (
	"time"

	"github.com/google/uuid"
)

type DecisionStatus string

const (
	DecisionStatusProposed DecisionStatus = "proposed"
	DecisionStatusApproved DecisionStatus = "approved"
	DecisionStatusRejected DecisionStatus = "rejected"
	DecisionStatusExecuted DecisionStatus = "executed"
)

func DecisionStatusFrom(s string) DecisionStatus {
	switch s {
	case "proposed", "approved", "rejected", "executed":
		return DecisionStatus(s)
	}
	return DecisionStatusProposed
}

// IsTerminal reports whether no further transition is accepted from the status.
func (s DecisionStatus) IsTerminal() bool {
	return s == DecisionStatusRejected || s == DecisionStatusExecuted
}

// Decision is a proposed operational action requiring sign-off from every
// named approver before it can be executed. It is immutable once executed,
// except for the classification metadata attached after the fact.
type Decision struct {
	Id           uuid.UUID
	SessionId    uuid.UUID
	ProposerId   uuid.UUID
	Title        string
	Description  string
	DecisionType *DecisionType
	Status       DecisionStatus
	CreatedAt    time.Time
	ExecutedAt   *time.Time
}

type DecisionWithSteps struct {
	Decision
	Steps []DecisionStep
}

type DecisionStepStatus string

const (
	DecisionStepPending  DecisionStepStatus = "pending"
	DecisionStepApproved DecisionStepStatus = "approved"
	DecisionStepRejected DecisionStepStatus = "rejected"
)

// DecisionStep is one approver's vote on a decision. Role is a snapshot of
// the approver's session role at proposal time, not a live reference.
//
// StepOrder is recorded but never used as a sequencing gate: all steps are
// concurrently actionable (parallel quorum, not a serial chain). The column
// is kept as-is, either vestigial or an unfinished feature.
type DecisionStep struct {
	Id          uuid.UUID
	DecisionId  uuid.UUID
	UserId      uuid.UUID
	Role        string
	StepOrder   int
	Status      DecisionStepStatus
	ResponderId *uuid.UUID
	RespondedAt *time.Time
	Comment     *string
}

// CreateDecisionInput carries a proposal. DecisionType is the proposer's own
// declaration; the AI classifier may overwrite it after execution.
type CreateDecisionInput struct {
	SessionId         uuid.UUID
	ProposerId        uuid.UUID
	Title             string
	Description       string
	DecisionType      *DecisionType
	RequiredApprovers []uuid.UUID
}

type DecisionStepResponse struct {
	DecisionId uuid.UUID
	UserId     uuid.UUID
	Approved   bool
	Comment    *string
}
