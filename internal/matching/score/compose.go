// internal/matching/score/compose.go
package score

import "math"

// Compose folds the semantic layer into a rules-only result. When either
// embedding vector is unavailable the result stays in degraded mode with a
// nil semantic score; the overall score is then the rules score alone.
// Negative cosine similarity contributes zero, never a penalty.
func Compose(result MatchResult, similarity float64, haveVectors bool) MatchResult {
	if !haveVectors {
		result.SemanticScore = nil
		result.OverallScore = result.RulesScore
		result.DegradedMode = true
		return result
	}

	if similarity < 0 {
		similarity = 0
	}
	if similarity > 1 {
		similarity = 1
	}
	sem := int(math.Round(similarity * MaxSemanticScore))

	overall := result.RulesScore + sem
	if overall > MaxOverallScore {
		overall = MaxOverallScore
	}

	result.SemanticScore = &sem
	result.OverallScore = overall
	result.DegradedMode = false
	return result
}
