// Package category partitions spending categories into essential and
// discretionary sets used by the analysis engines.
package category

// Kind is the classification of a spending category.
type Kind int

const (
	Other Kind = iota
	Essential
	Discretionary
)

var essential = map[string]struct{}{
	"UTILITIES":      {},
	"RENT":           {},
	"GROCERIES":      {},
	"HEALTHCARE":     {},
	"INSURANCE":      {},
	"EDUCATION":      {},
	"EMI":            {},
	"LOAN_REPAYMENT": {},
}

var discretionary = map[string]struct{}{
	"FOOD":          {},
	"ENTERTAINMENT": {},
	"SHOPPING":      {},
	"TRAVEL":        {},
	"SUBSCRIPTIONS": {},
	"PERSONAL_CARE": {},
	"GIFTS":         {},
}

// Normalize maps a missing category label to "OTHER".
func Normalize(label string) string {
	if label == "" {
		return "OTHER"
	}
	return label
}

// Classify returns the kind of a category label. Unknown labels,
// including the empty one, are Other.
func Classify(label string) Kind {
	label = Normalize(label)
	if _, ok := essential[label]; ok {
		return Essential
	}
	if _, ok := discretionary[label]; ok {
		return Discretionary
	}
	return Other
}
