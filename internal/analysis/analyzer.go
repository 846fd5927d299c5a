package analysis

import (
	"context"

	"github.com/sirupsen/logrus"

	"scenario-planner/internal/classify"
	"scenario-planner/internal/llm"
	"scenario-planner/internal/scoring"
)

// Analyzer runs the scenario pipeline: classify, synthesize impacts, score,
// recommend. When mockOnFail is set, any pipeline failure is retried exactly
// once against a gateway pinned to mock mode before being surfaced.
type Analyzer struct {
	gateway    llm.Generator
	mock       llm.Generator
	mockOnFail bool
}

// New constructs an Analyzer around the given gateway.
func New(gateway llm.Generator, mockOnFail bool) *Analyzer {
	return &Analyzer{
		gateway:    gateway,
		mock:       llm.NewMock(),
		mockOnFail: mockOnFail,
	}
}

// Run evaluates a scenario end to end. It returns either a complete
// ScenarioResult or an error; never a partial result.
func (a *Analyzer) Run(ctx context.Context, req ScenarioRequest) (ScenarioResult, error) {
	result, err := a.runWith(ctx, a.gateway, req)
	if err == nil {
		return result, nil
	}

	if !a.mockOnFail {
		return ScenarioResult{}, err
	}

	logrus.WithError(err).Warn("scenario pipeline failed; retrying with mock gateway")
	fallback, mockErr := a.runWith(ctx, a.mock, req)
	if mockErr != nil {
		logrus.WithError(mockErr).Error("mock fallback failed")
		return ScenarioResult{}, err
	}
	return fallback, nil
}

func (a *Analyzer) runWith(ctx context.Context, gateway llm.Generator, req ScenarioRequest) (ScenarioResult, error) {
	classification := classify.Classify(req.Scenario)

	impacts, err := synthesizeImpacts(ctx, gateway, req, classification)
	if err != nil {
		return ScenarioResult{}, err
	}

	scores := scoring.Score(impacts)
	recommendation := scoring.Recommend(impacts, scores, classification)

	return ScenarioResult{
		Classification: classification,
		Scores:         scores,
		Impacts:        impacts,
		Recommendation: recommendation,
	}, nil
}

// synthesizeImpacts asks the gateway for the analysis object and extracts the
// impacts block. Structural absence degrades to placeholders; only gateway
// failures propagate.
func synthesizeImpacts(ctx context.Context, gateway llm.Generator, req ScenarioRequest, hint classify.Classification) (scoring.ImpactTexts, error) {
	payload := map[string]any{
		"scenario":            req.Scenario,
		"context":             req.Context.flatten(),
		"classification_hint": string(hint),
		"need":                []string{"classification", "impacts", "scores", "recommendation"},
	}

	out, err := gateway.GenerateJSON(ctx, scenarioSystemPrompt, payload)
	if err != nil {
		return scoring.ImpactTexts{}, err
	}

	raw, ok := out["impacts"].(map[string]any)
	if !ok {
		return scoring.DefaultImpacts(), nil
	}
	return scoring.ImpactTexts{
		Risk:        fieldOr(raw, "risk"),
		Customer:    fieldOr(raw, "customer"),
		Competitive: fieldOr(raw, "competitive"),
		Cost:        fieldOr(raw, "cost"),
	}, nil
}

func fieldOr(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok && s != "" {
		return s
	}
	return scoring.Placeholder
}
