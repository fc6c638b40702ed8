package sentiment

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Labels is the canonical label set shared by the trainer and the serving
// side. The trainer normalizes corpus labels into this set and the artifact
// loader rejects classifiers whose classes fall outside it, so the contract
// is enforced at both ends instead of by convention.
var Labels = []string{"Positive", "Negative", "Neutral"}

var titleCaser = cases.Title(language.English)

// CanonicalLabel normalizes a raw label to its title-cased form
// ("positive" -> "Positive", "NEGATIVE" -> "Negative").
func CanonicalLabel(raw string) string {
	return titleCaser.String(raw)
}

// IsCanonicalLabel reports whether s is exactly one of Labels.
func IsCanonicalLabel(s string) bool {
	for _, l := range Labels {
		if s == l {
			return true
		}
	}
	return false
}
