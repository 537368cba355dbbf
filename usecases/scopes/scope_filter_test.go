package scopes

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/opsdrill/exercise-backend/models"
)

func viewer(role string, teams ...string) models.ScopeViewer {
	memberships := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		memberships[t] = struct{}{}
	}
	return models.ScopeViewer{
		UserId:          uuid.New(),
		Role:            role,
		TeamMemberships: memberships,
	}
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name   string
		meta   models.ScopeMetadata
		viewer models.ScopeViewer
		want   bool
	}{
		{
			name:   "universal is visible to anyone",
			meta:   models.ScopeMetadata{Scope: models.ScopeUniversal},
			viewer: viewer("field_responder"),
			want:   true,
		},
		{
			name: "role_specific matches the viewer role",
			meta: models.ScopeMetadata{
				Scope:         models.ScopeRoleSpecific,
				AffectedRoles: []string{"incident_commander", "pio"},
			},
			viewer: viewer("pio"),
			want:   true,
		},
		{
			name: "role_specific denies other roles",
			meta: models.ScopeMetadata{
				Scope:         models.ScopeRoleSpecific,
				AffectedRoles: []string{"incident_commander"},
			},
			viewer: viewer("field_responder"),
			want:   false,
		},
		{
			name:   "role_specific with no roles listed denies everyone",
			meta:   models.ScopeMetadata{Scope: models.ScopeRoleSpecific},
			viewer: viewer("incident_commander"),
			want:   false,
		},
		{
			name: "team_specific matches on shared team",
			meta: models.ScopeMetadata{
				Scope:       models.ScopeTeamSpecific,
				TargetTeams: []string{"alpha", "bravo"},
			},
			viewer: viewer("field_responder", "bravo", "logistics"),
			want:   true,
		},
		{
			name: "team_specific denies without a shared team",
			meta: models.ScopeMetadata{
				Scope:       models.ScopeTeamSpecific,
				TargetTeams: []string{"alpha"},
			},
			viewer: viewer("field_responder", "bravo"),
			want:   false,
		},
		{
			name:   "team_specific with no teams listed denies everyone",
			meta:   models.ScopeMetadata{Scope: models.ScopeTeamSpecific},
			viewer: viewer("field_responder", "alpha"),
			want:   false,
		},
		{
			name:   "unknown scope value denies",
			meta:   models.ScopeMetadata{Scope: "building_specific"},
			viewer: viewer("field_responder"),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Visible(tt.meta, tt.viewer))
		})
	}
}

func TestVisiblePrivilegedBypass(t *testing.T) {
	trainer := viewer("trainer")
	trainer.IsPrivileged = true

	assert.True(t, Visible(models.ScopeMetadata{
		Scope:         models.ScopeRoleSpecific,
		AffectedRoles: []string{"incident_commander"},
	}, trainer))
	assert.True(t, Visible(models.ScopeMetadata{
		Scope:       models.ScopeTeamSpecific,
		TargetTeams: []string{"alpha"},
	}, trainer))
	assert.True(t, Visible(models.ScopeMetadata{Scope: "garbage"}, trainer))
}

func TestClassifyFallback(t *testing.T) {
	originId := uuid.New()

	assert.Equal(t, FallbackNotNeeded,
		ClassifyFallback(models.ScopeMetadata{Scope: models.ScopeUniversal}))
	assert.Equal(t, FallbackManualContent,
		ClassifyFallback(models.ScopeMetadata{}))
	assert.Equal(t, FallbackLookupInject,
		ClassifyFallback(models.ScopeMetadata{OriginInjectId: &originId}))
}

func TestVisibleWithOrigin(t *testing.T) {
	participant := viewer("field_responder")

	t.Run("inherits the origin inject scope", func(t *testing.T) {
		origin := &models.Inject{
			Scope: models.ScopeMetadata{
				Scope:         models.ScopeRoleSpecific,
				AffectedRoles: []string{"incident_commander"},
			},
		}
		assert.False(t, VisibleWithOrigin(participant, origin))

		origin.Scope.AffectedRoles = []string{"field_responder"}
		assert.True(t, VisibleWithOrigin(participant, origin))
	})

	t.Run("fails open when the origin inject is gone", func(t *testing.T) {
		assert.True(t, VisibleWithOrigin(participant, nil))
	})
}
