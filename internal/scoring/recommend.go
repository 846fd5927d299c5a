package scoring

import "scenario-planner/internal/classify"

// Decision tiers for a scenario.
const (
	DecisionProceed           = "proceed"
	DecisionProceedCautiously = "proceed_cautiously"
	DecisionDoNotProceed      = "do_not_proceed"
)

// Recommendation is the go/no-go verdict for a scenario.
type Recommendation struct {
	Decision    string   `json:"decision"`
	Rationale   string   `json:"rationale"`
	Mitigations []string `json:"mitigations"`
	Confidence  float64  `json:"confidence"`
}

// Recommend maps the blended overall score onto a three-tier decision ladder.
// impacts and classification do not affect the outcome yet; the signature
// keeps them so tier-specific mitigations can use them later.
func Recommend(impacts ImpactTexts, scores Scores, classification classify.Classification) Recommendation {
	switch {
	case scores.Overall >= 65:
		return Recommendation{
			Decision:  DecisionProceed,
			Rationale: "Expected upside outweighs risks given current positioning.",
			Mitigations: []string{
				"Communicate 2 weeks in advance",
				"Add opt-out window",
				"Monitor early metrics daily",
			},
			Confidence: 0.70,
		}
	case scores.Overall >= 50:
		return Recommendation{
			Decision:  DecisionProceedCautiously,
			Rationale: "Potential benefits with meaningful risks—pilot and guardrails advised.",
			Mitigations: []string{
				"Pilot in small region",
				"Grandfather existing users",
				"Offer annual discount",
			},
			Confidence: 0.60,
		}
	default:
		return Recommendation{
			Decision:  DecisionDoNotProceed,
			Rationale: "Risk/impact profile skews negative; collect more signal first.",
			Mitigations: []string{
				"Survey users for more signal",
				"Test alternative scope/pricing",
				"Run small A/B test",
			},
			Confidence: 0.55,
		}
	}
}
