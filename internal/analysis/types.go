package analysis

import (
	"scenario-planner/internal/classify"
	"scenario-planner/internal/scoring"
)

// ScenarioContext carries optional structured hints supplied by the caller.
type ScenarioContext struct {
	ProductType      string   `json:"product_type"`
	ARPU             *float64 `json:"arpu,omitempty"`
	CustomerSegments []string `json:"customer_segments,omitempty"`
	Competitors      []string `json:"competitors,omitempty"`
}

// ScenarioRequest is a single what-if question plus optional context. It is
// created per inbound call and never persisted.
type ScenarioRequest struct {
	Scenario string           `json:"scenario" binding:"required"`
	Context  *ScenarioContext `json:"context,omitempty"`
}

// ScenarioResult is the full response envelope returned to the caller.
type ScenarioResult struct {
	Classification classify.Classification `json:"classification"`
	Scores         scoring.Scores          `json:"scores"`
	Impacts        scoring.ImpactTexts     `json:"impacts"`
	Recommendation scoring.Recommendation  `json:"recommendation"`
}

// flatten renders the context as a plain map for the model payload. A nil
// context becomes an empty object; product_type falls back to "SaaS".
func (c *ScenarioContext) flatten() map[string]any {
	if c == nil {
		return map[string]any{}
	}
	productType := c.ProductType
	if productType == "" {
		productType = "SaaS"
	}
	out := map[string]any{"product_type": productType}
	if c.ARPU != nil {
		out["arpu"] = *c.ARPU
	}
	if len(c.CustomerSegments) > 0 {
		out["customer_segments"] = c.CustomerSegments
	}
	if len(c.Competitors) > 0 {
		out["competitors"] = c.Competitors
	}
	return out
}
