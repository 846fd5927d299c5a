package scoring

// ImpactTexts holds the four qualitative impact summaries produced by the
// analysis step. Fields missing upstream arrive as the "N/A" placeholder.
type ImpactTexts struct {
	Risk        string `json:"risk"`
	Customer    string `json:"customer"`
	Competitive string `json:"competitive"`
	Cost        string `json:"cost"`
}

// Placeholder substitutes for any impact field the model failed to supply.
const Placeholder = "N/A"

// DefaultImpacts returns an ImpactTexts record with every field set to the
// placeholder, used when the upstream response carries no impacts at all.
func DefaultImpacts() ImpactTexts {
	return ImpactTexts{
		Risk:        Placeholder,
		Customer:    Placeholder,
		Competitive: Placeholder,
		Cost:        Placeholder,
	}
}
