// internal/matching/score/types.go
package score

// Rule-score dimension weights. The rules-only portion sums to at most 90;
// the semantic layer contributes up to 10 more.
const (
	MaxRulesScore   = 90
	MaxSemanticScore = 10
	MaxOverallScore = 100

	// Summed rules score is capped here when the driver-type component
	// flags a fundamental mismatch.
	HardBlockCap = 40
)

// ComponentScore is the result of one scoring dimension.
type ComponentScore struct {
	Score    int    `json:"score"`
	MaxScore int    `json:"maxScore"`
	Detail   string `json:"detail"`
}

// ScoreBreakdown maps dimension name to its component score.
type ScoreBreakdown map[string]ComponentScore

// MatchReason is one human-readable explanation; positive reasons render as
// checkmarks, the rest as cautions.
type MatchReason struct {
	Text     string `json:"text"`
	Positive bool   `json:"positive"`
}

// RuleOutcome is the structured result of a rule scorer before aggregation.
// HardBlocked is set only by the driver->job driver-type component; the
// company->candidate direction never hard-blocks.
type RuleOutcome struct {
	Components  ScoreBreakdown
	Reasons     []MatchReason
	HardBlocked bool
}

// RulesScore sums the component scores, applying the hard-block cap.
func (o RuleOutcome) RulesScore() int {
	total := 0
	for _, c := range o.Components {
		total += c.Score
	}
	if total > MaxRulesScore {
		total = MaxRulesScore
	}
	if o.HardBlocked && total > HardBlockCap {
		total = HardBlockCap
	}
	return total
}

// MatchResult is the persisted outcome for one pair.
type MatchResult struct {
	OverallScore   int            `json:"overallScore"`
	RulesScore     int            `json:"rulesScore"`
	SemanticScore  *int           `json:"semanticScore"`
	ScoreBreakdown ScoreBreakdown `json:"scoreBreakdown"`
	TopReasons     []string       `json:"topReasons"`
	Cautions       []string       `json:"cautions"`
	DegradedMode   bool           `json:"degradedMode"`
}

// finalize turns a RuleOutcome into a rules-only MatchResult. TopReasons
// keeps the first 3 positive reasons, Cautions the first 2 negatives; the
// semantic layer is applied later by Compose.
func finalize(o RuleOutcome) MatchResult {
	rules := o.RulesScore()

	var top, cautions []string
	for _, r := range o.Reasons {
		if r.Positive {
			if len(top) < 3 {
				top = append(top, r.Text)
			}
		} else if len(cautions) < 2 {
			cautions = append(cautions, r.Text)
		}
	}

	return MatchResult{
		OverallScore:   rules,
		RulesScore:     rules,
		SemanticScore:  nil,
		ScoreBreakdown: o.Components,
		TopReasons:     top,
		Cautions:       cautions,
		DegradedMode:   true,
	}
}
