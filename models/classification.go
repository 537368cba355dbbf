package models

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

type DecisionType string

const (
	DecisionTypeEmergencyDeclaration DecisionType = "emergency_declaration"
	DecisionTypeEvacuationOrder      DecisionType = "evacuation_order"
	DecisionTypeResourceAllocation   DecisionType = "resource_allocation"
	DecisionTypePublicCommunication  DecisionType = "public_communication"
	DecisionTypeInterAgencyRequest   DecisionType = "inter_agency_request"
	DecisionTypeOther                DecisionType = "other"
)

var knownDecisionTypes = map[DecisionType]struct{}{
	DecisionTypeEmergencyDeclaration: {},
	DecisionTypeEvacuationOrder:      {},
	DecisionTypeResourceAllocation:   {},
	DecisionTypePublicCommunication:  {},
	DecisionTypeInterAgencyRequest:   {},
	DecisionTypeOther:                {},
}

func DecisionTypeFrom(s string) (DecisionType, bool) {
	t := DecisionType(s)
	_, ok := knownDecisionTypes[t]
	return t, ok
}

// DecisionClassification is the validated result of the AI classification
// collaborator. Known fields are typed; anything else the collaborator
// returned is kept in Extra so nothing is silently dropped, without letting
// unvalidated shapes leak into the rest of the engine.
type DecisionClassification struct {
	PrimaryCategory DecisionType
	Confidence      float64
	Rationale       string
	Extra           map[string]any
}

// AdaptDecisionClassification validates a raw collaborator payload at the
// boundary. An unknown primary_category downgrades to "other" rather than
// failing the whole classification.
func AdaptDecisionClassification(raw json.RawMessage) (DecisionClassification, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return DecisionClassification{}, errors.Wrap(err, "could not parse classification payload")
	}

	classification := DecisionClassification{
		PrimaryCategory: DecisionTypeOther,
		Extra:           make(map[string]any),
	}

	for key, value := range payload {
		switch key {
		case "primary_category":
			s, ok := value.(string)
			if !ok {
				return DecisionClassification{}, errors.Wrapf(BadParameterError,
					"primary_category must be a string, got %T", value)
			}
			if category, known := DecisionTypeFrom(s); known {
				classification.PrimaryCategory = category
			}
		case "confidence":
			if f, ok := value.(float64); ok {
				classification.Confidence = f
			}
		case "rationale":
			if s, ok := value.(string); ok {
				classification.Rationale = s
			}
		default:
			classification.Extra[key] = value
		}
	}

	return classification, nil
}
