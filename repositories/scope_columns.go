package repositories

import "github.com/opsdrill/exercise-backend/models"

// scopeOrNull keeps "no scope recorded" as NULL rather than an empty string,
// so the legacy-fallback path of the visibility filter stays distinguishable
// from an explicitly scoped row.
func scopeOrNull(scope models.EntityScope) *string {
	if scope == "" {
		return nil
	}
	s := string(scope)
	return &s
}
