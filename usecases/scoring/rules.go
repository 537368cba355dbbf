// Package scoring holds the decision impact rules and the score formula.
// Both are pure: they read a decision and objective rows and produce effects
// or numbers, without touching storage.
package scoring

import (
	"strings"

	"github.com/opsdrill/exercise-backend/models"
)

type EffectKind string

const (
	EffectProgress EffectKind = "progress"
	EffectPenalty  EffectKind = "penalty"
	EffectBonus    EffectKind = "bonus"
)

// ObjectiveEffect is one consequence of an executed decision on one
// objective: a progress delta or a score adjustment with an audit reason.
type ObjectiveEffect struct {
	ObjectiveId   string
	Kind          EffectKind
	Points        float64
	ProgressDelta float64
	Reason        string
}

// ImpactRule matches executed decisions by keyword and optionally by
// classified type. KeywordsAll must all appear in the decision text,
// KeywordsAny needs at least one (an empty list matches). Matching is
// case-insensitive over title and description.
type ImpactRule struct {
	Name          string
	KeywordsAll   []string
	KeywordsAny   []string
	DecisionTypes []models.DecisionType
	Effects       []ObjectiveEffect
}

// DefaultImpactRules is the built-in rule table. Rules are evaluated in
// order and every matching rule applies; they are tuning material for
// scenario designers, not engine logic.
var DefaultImpactRules = []ImpactRule{
	{
		Name:        "evacuation splitting families",
		KeywordsAll: []string{"evacuat"},
		KeywordsAny: []string{"separate", "split"},
		Effects: []ObjectiveEffect{
			{
				ObjectiveId: "evacuation",
				Kind:        EffectPenalty,
				Points:      10,
				Reason:      "Evacuation plan separates families",
			},
			{
				ObjectiveId: "media",
				Kind:        EffectPenalty,
				Points:      5,
				Reason:      "Family separation draws negative media coverage",
			},
		},
	},
	{
		Name:        "evacuation keeping families together",
		KeywordsAll: []string{"evacuat"},
		KeywordsAny: []string{"together", "family unit", "families with"},
		Effects: []ObjectiveEffect{
			{
				ObjectiveId:   "evacuation",
				Kind:          EffectProgress,
				ProgressDelta: 25,
				Reason:        "Orderly evacuation keeping families together",
			},
		},
	},
	{
		Name:        "proactive public communication",
		KeywordsAny: []string{"press release", "public statement", "press briefing"},
		DecisionTypes: []models.DecisionType{
			models.DecisionTypePublicCommunication,
		},
		Effects: []ObjectiveEffect{
			{
				ObjectiveId:   "media",
				Kind:          EffectProgress,
				ProgressDelta: 20,
				Reason:        "Proactive public communication",
			},
			{
				ObjectiveId: "media",
				Kind:        EffectBonus,
				Points:      5,
				Reason:      "Statement released ahead of the news cycle",
			},
		},
	},
	{
		Name:        "mutual aid request",
		KeywordsAny: []string{"mutual aid", "request assistance", "neighboring"},
		DecisionTypes: []models.DecisionType{
			models.DecisionTypeInterAgencyRequest,
		},
		Effects: []ObjectiveEffect{
			{
				ObjectiveId:   "coordination",
				Kind:          EffectProgress,
				ProgressDelta: 15,
				Reason:        "Inter-agency assistance requested",
			},
		},
	},
}

func (rule ImpactRule) matches(decision models.Decision) bool {
	text := strings.ToLower(decision.Title + " " + decision.Description)

	for _, kw := range rule.KeywordsAll {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	if len(rule.KeywordsAny) > 0 {
		found := false
		for _, kw := range rule.KeywordsAny {
			if strings.Contains(text, kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(rule.DecisionTypes) > 0 {
		if decision.DecisionType == nil {
			return false
		}
		found := false
		for _, dt := range rule.DecisionTypes {
			if *decision.DecisionType == dt {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// EvaluateImpact returns the effects of every rule the decision matches,
// in rule order.
func EvaluateImpact(rules []ImpactRule, decision models.Decision) []ObjectiveEffect {
	var effects []ObjectiveEffect
	for _, rule := range rules {
		if rule.matches(decision) {
			effects = append(effects, rule.Effects...)
		}
	}
	return effects
}
