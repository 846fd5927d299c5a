package scoring

import "strings"

// Scores captures the bounded numeric view of a scenario.
type Scores struct {
	Risk        int `json:"risk"`
	Customer    int `json:"customer"`
	Competitive int `json:"competitive"`
	Cost        int `json:"cost"`
	Overall     int `json:"overall"`
}

// Score converts impact narratives into bounded integer scores using keyword
// heuristics. Pure and total: identical input always yields identical output.
func Score(impacts ImpactTexts) Scores {
	blob := strings.ToLower(impacts.Risk + " " + impacts.Customer + " " + impacts.Competitive + " " + impacts.Cost)

	risk := pick(blob, []string{"churn", "risk", "backlash"}, 70, 55)
	customer := pick(blob, []string{"friction", "drop", "loss", "churn"}, -20, -5)
	competitive := pick(blob, []string{"premium", "positioning", "undercut"}, 12, 6)
	cost := pick(blob, []string{"infra", "support", "compute", "ops"}, 10, 5)

	// Only risk above the 50 midpoint penalizes the blend. The final int
	// conversion truncates; callers rely on that for reproducibility.
	raw := 60 + float64(competitive+cost)*0.1 - maxFloat(0, float64(risk-50))*0.2 + float64(customer)*0.2
	overall := int(clampFloat(raw, 0, 100))

	return Scores{
		Risk:        risk,
		Customer:    customer,
		Competitive: competitive,
		Cost:        cost,
		Overall:     overall,
	}
}

func pick(blob string, terms []string, hit, miss int) int {
	for _, term := range terms {
		if strings.Contains(blob, term) {
			return hit
		}
	}
	return miss
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
