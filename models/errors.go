package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("conflict")
)

// DB related errors
var ErrIgnoreRollBackError = errors.New("ignore rollback error")

// Decision state machine related errors
var (
	// propose is only accepted while the session runs
	ErrSessionNotActive = errors.Wrap(BadParameterError, "session is not in progress")

	// the caller has no pending approval step on the decision: either they are
	// not a required approver, or they already responded
	ErrNoPendingStep = errors.Wrap(ConflictError, "no pending approval step for this user")

	// execute requires the decision to be exactly in status "approved". The
	// caller of WrapInvalidDecisionState attaches the observed status so the
	// loser of a concurrent execute race sees what actually happened.
	ErrDecisionNotApproved = errors.Wrap(ConflictError, "decision is not approved")

	// terminal statuses accept no further transitions
	ErrDecisionAlreadyResolved = errors.Wrap(ConflictError, "decision is already resolved")
)

// WrapInvalidDecisionState decorates a decision state error with the status
// that was actually observed, so the caller can act on it.
func WrapInvalidDecisionState(sentinel error, observed DecisionStatus) error {
	return errors.Wrapf(sentinel, "current status is %q", observed)
}

// Objective tracking related errors
var (
	ErrObjectiveNotFound      = errors.Wrap(NotFoundError, "objective progress not found")
	ErrSessionHasNoObjectives = errors.Wrap(NotFoundError, "session has no objectives initialized")
	ErrSessionWithoutScenario = errors.Wrap(BadParameterError, "session has no scenario attached")
)

// ErrDependencyDegraded marks a failure in an optional post-execution side
// effect (AI classification, inject generation, notification delivery). It is
// logged at the boundary and never propagated to the caller: a committed
// decision execution is never rolled back because a downstream collaborator
// misbehaved.
var ErrDependencyDegraded = errors.New("downstream dependency degraded")
