package smoketests

import "strings"

// Keyword lists backing the content-quality heuristics. Matching is
// case-insensitive substring matching against free-text model output, so
// these checks are smoke-level signals, not strict correctness proofs: the
// text generator on the other end is not deterministic.
var (
	// generate-report responses
	reportForecastTerms = []string{"forecast", "model", "prediction", "mape", "accuracy", "confidence"}
	reportBusinessTerms = []string{"pattern", "trend", "growth", "performance", "insight", "opportunity"}
	reportJargonTerms   = []string{"coefficient", "regression", "p-value", "chi-square", "heteroscedasticity"}

	// gateway chat-completion responses
	edaBusinessTerms   = []string{"quality", "data", "analysis", "insights", "patterns"}
	edaJargonTerms     = []string{"coefficient", "regression", "p-value", "chi-square"}
	forecastTerms      = []string{"forecast", "model", "prediction", "accuracy", "confidence", "validation"}
	followUpCues       = []string{"?", "would you like", "do you prefer", "which", "how"}
	patternTerms       = []string{"trend", "pattern", "growth", "decline", "seasonal", "performance", "opportunity"}
	patternJargonTerms = []string{"coefficient", "regression", "p-value", "chi-square", "heteroscedasticity", "autocorrelation"}
)

// countTerms returns how many of the given terms occur in text at least once.
func countTerms(text string, terms []string) int {
	lowered := strings.ToLower(text)
	count := 0
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			count++
		}
	}
	return count
}

func containsAnyTerm(text string, terms []string) bool {
	return countTerms(text, terms) > 0
}
