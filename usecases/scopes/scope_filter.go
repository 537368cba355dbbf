// Package scopes implements the visibility filter for scoped narrative
// entities (injects, incidents, timeline events). It is pure: no storage, no
// shared mutable state, safe under arbitrary concurrency. Callers materialize
// the rows and the viewer (role + team memberships, resolved once per
// request) and run every row through the filter before returning it.
package scopes

import (
	"github.com/opsdrill/exercise-backend/models"
)

// Visible applies the scope rules to fully resolved scope metadata.
//
// Privileged viewers (trainers, admins) bypass every rule. For everyone
// else: universal content is always visible; role_specific content requires
// the viewer's role to be listed in affected_roles; team_specific content
// requires at least one shared team. An empty role or team list denies to
// everyone, and so does an unknown scope value: missing targeting
// information is treated as "not for you", not "for everyone".
func Visible(meta models.ScopeMetadata, viewer models.ScopeViewer) bool {
	if viewer.IsPrivileged {
		return true
	}

	switch meta.Scope {
	case models.ScopeUniversal:
		return true
	case models.ScopeRoleSpecific:
		for _, role := range meta.AffectedRoles {
			if role == viewer.Role {
				return true
			}
		}
		return false
	case models.ScopeTeamSpecific:
		for _, team := range meta.TargetTeams {
			if _, member := viewer.TeamMemberships[team]; member {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// FallbackResult is the outcome of resolving an entity recorded before scope
// metadata was denormalized onto it.
type FallbackResult int

const (
	// FallbackNotNeeded: the entity carries its own scope, use Visible directly.
	FallbackNotNeeded FallbackResult = iota
	// FallbackManualContent: no scope and no originating inject. Manually
	// created content is always universal.
	FallbackManualContent
	// FallbackLookupInject: resolve visibility through the originating
	// inject's scope.
	FallbackLookupInject
)

// ClassifyFallback decides how an entity's visibility must be resolved.
//
// Note the asymmetry: when the entity has an origin_inject_id but the inject
// lookup finds nothing, the entity is ALLOWED. This is the one case where
// missing information resolves to allow rather than deny. Running exercises
// depend on this behavior; do not tighten it without product sign-off.
func ClassifyFallback(meta models.ScopeMetadata) FallbackResult {
	if meta.Scope != "" {
		return FallbackNotNeeded
	}
	if meta.OriginInjectId == nil {
		return FallbackManualContent
	}
	return FallbackLookupInject
}

// VisibleWithOrigin resolves a legacy entity once its originating inject has
// been looked up. A nil origin means the lookup failed: fail open.
func VisibleWithOrigin(viewer models.ScopeViewer, origin *models.Inject) bool {
	if origin == nil {
		return true
	}
	return Visible(origin.Scope, viewer)
}
