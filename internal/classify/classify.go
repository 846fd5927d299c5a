package classify

import "strings"

// Classification tags a scenario with the kind of business change it describes.
type Classification string

const (
	PricingChange Classification = "pricing_change"
	FeatureRemove Classification = "feature_remove"
	FeatureAdd    Classification = "feature_add"
	UXChange      Classification = "ux_change"
	OpsCost       Classification = "ops_cost"
	GTMChange     Classification = "gtm_change"
	Other         Classification = "other"
)

// keywordGroups are evaluated in order; the first group with a hit wins, so a
// scenario mentioning both pricing and removal terms classifies as pricing_change.
var keywordGroups = []struct {
	label Classification
	terms []string
}{
	{PricingChange, []string{"price", "pricing", "plan", "tier"}},
	{FeatureRemove, []string{"remove", "sunset", "deprecate"}},
	{FeatureAdd, []string{"add feature", "launch", "introduce", "premium tier"}},
	{UXChange, []string{"ux", "onboarding", "flow", "funnel"}},
	{OpsCost, []string{"infra", "compute", "server", "cost"}},
	{GTMChange, []string{"gtm", "go-to-market", "release notes", "comms"}},
}

// Classify maps free-form scenario text to a Classification. It is
// case-insensitive, accepts empty input, and never fails.
func Classify(text string) Classification {
	t := strings.ToLower(text)
	for _, group := range keywordGroups {
		for _, term := range group.terms {
			if strings.Contains(t, term) {
				return group.label
			}
		}
	}
	return Other
}
