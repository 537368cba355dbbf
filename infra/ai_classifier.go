package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/checkmarble/llmberjack"
	"github.com/checkmarble/llmberjack/llms/openai"
	"github.com/cockroachdb/errors"

	"github.com/opsdrill/exercise-backend/models"
)

type AiClassifierConfig struct {
	BaseUrl string
	ApiKey  string
	Model   string
}

func (c AiClassifierConfig) Enabled() bool {
	return c.ApiKey != "" || c.BaseUrl != ""
}

const DEFAULT_CLASSIFIER_MODEL = "gpt-4o-mini"

const classificationInstruction = `You categorize decisions taken during a crisis-response training exercise.
Respond with a JSON object with the fields:
  primary_category: one of emergency_declaration, evacuation_order, resource_allocation, public_communication, inter_agency_request, other
  confidence: a number between 0 and 1
  rationale: one short sentence
Respond with the JSON object only.`

// AiDecisionClassifier categorizes executed decisions through an
// OpenAI-compatible endpoint. The raw model output is validated in the models
// layer before anything reaches storage.
type AiDecisionClassifier struct {
	config AiClassifierConfig

	mu      sync.Mutex
	adapter *llmberjack.Llmberjack
}

func NewAiDecisionClassifier(config AiClassifierConfig) *AiDecisionClassifier {
	return &AiDecisionClassifier{config: config}
}

func (c *AiDecisionClassifier) getAdapter() (*llmberjack.Llmberjack, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.adapter != nil {
		return c.adapter, nil
	}

	opts := []openai.Opt{}
	if c.config.BaseUrl != "" {
		opts = append(opts, openai.WithBaseUrl(c.config.BaseUrl))
	}
	if c.config.ApiKey != "" {
		opts = append(opts, openai.WithApiKey(c.config.ApiKey))
	}
	provider, err := openai.New(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create OpenAI provider")
	}

	model := c.config.Model
	if model == "" {
		model = DEFAULT_CLASSIFIER_MODEL
	}
	adapter, err := llmberjack.New(
		llmberjack.WithProvider("main", provider),
		llmberjack.WithDefaultModel(model),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create LLM adapter")
	}

	c.adapter = adapter
	return c.adapter, nil
}

func (c *AiDecisionClassifier) ClassifyDecision(ctx context.Context,
	decision models.Decision,
) (models.DecisionClassification, error) {
	adapter, err := c.getAdapter()
	if err != nil {
		return models.DecisionClassification{}, err
	}

	prompt := fmt.Sprintf("Title: %s\nDescription: %s", decision.Title, decision.Description)

	response, err := llmberjack.NewUntypedRequest().
		WithInstruction(classificationInstruction).
		WithText(llmberjack.RoleUser, prompt).
		Do(ctx, adapter)
	if err != nil {
		return models.DecisionClassification{}, errors.Wrap(err, "classification request failed")
	}

	raw, err := response.Get(0)
	if err != nil {
		return models.DecisionClassification{}, errors.Wrap(err, "empty classification response")
	}

	return models.AdaptDecisionClassification(json.RawMessage(raw))
}
