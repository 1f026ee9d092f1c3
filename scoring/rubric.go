// Package scoring turns a finished interview transcript into a bounded,
// internally consistent score report via one structured completion call.
package scoring

// Category identifies one rubric category.
type Category string

const (
	CategoryOpeningRapport         Category = "opening_rapport"
	CategoryDiscoveryQualification Category = "discovery_qualification"
	CategoryValueMessaging         Category = "value_messaging"
	CategoryObjectionHandling      Category = "objection_handling"
	CategoryTrialAdvancement       Category = "trial_advancement"
	CategoryListeningAdaptability  Category = "listening_adaptability"
	CategoryProfessionalism        Category = "professionalism"
)

// Categories lists the rubric categories in presentation order.
var Categories = []Category{
	CategoryOpeningRapport,
	CategoryDiscoveryQualification,
	CategoryValueMessaging,
	CategoryObjectionHandling,
	CategoryTrialAdvancement,
	CategoryListeningAdaptability,
	CategoryProfessionalism,
}

// CategoryWeights maps each category to its share of the 100-point total.
// A category's weighted points lie in [0, weight].
var CategoryWeights = map[Category]int{
	CategoryOpeningRapport:         10,
	CategoryDiscoveryQualification: 20,
	CategoryValueMessaging:         20,
	CategoryObjectionHandling:      20,
	CategoryTrialAdvancement:       15,
	CategoryListeningAdaptability:  10,
	CategoryProfessionalism:        5,
}

// Raw category scores are 1..5.
const (
	RawScoreMin = 1
	RawScoreMax = 5
)

// Tier is the coarse qualitative bucket derived from the final score.
type Tier string

const (
	TierExcellent  Tier = "Excellent"
	TierStrong     Tier = "Strong"
	TierDeveloping Tier = "Developing"
	TierNotReady   Tier = "Not ready"
)

// TierFor maps a clamped final score to its tier by the fixed thresholds.
func TierFor(finalScore float64) Tier {
	switch {
	case finalScore >= 90:
		return TierExcellent
	case finalScore >= 75:
		return TierStrong
	case finalScore >= 60:
		return TierDeveloping
	default:
		return TierNotReady
	}
}

// Deduction catalog: global penalties applied after summing categories, only
// when transcript evidence supports them.
const (
	DeductionInterrupting     = -5
	DeductionPricingMisrep    = -10
	DeductionNoNextStep       = -8
	DeductionMonopolizing     = -5
	DeductionIgnoredObjection = -6
	DeductionAggressiveTone   = -10
)

// Speaker labels a transcript line.
type Speaker string

const (
	SpeakerSalesperson Speaker = "S"
	SpeakerProspect    Speaker = "P"
)

// TranscriptLine is one utterance of the interview, immutable once handed to
// the engine.
type TranscriptLine struct {
	Speaker Speaker
	Text    string
}

// Deduction is one applied penalty.
type Deduction struct {
	Reason string `json:"reason"`
	Points int    `json:"points"`
}

// ScoreReport is the validated scoring result. FinalScore always equals
// clamp(PreDeductionTotal + sum of deduction points, 0, 100) and Tier is
// derived from FinalScore; the engine enforces both regardless of what the
// completion collaborator returned.
type ScoreReport struct {
	RawScores         map[Category]int `json:"raw_scores"`
	WeightedPoints    map[Category]int `json:"weighted_points"`
	PreDeductionTotal float64          `json:"pre_deduction_total"`
	Deductions        []Deduction      `json:"deductions"`
	FinalScore        float64          `json:"final_score"`
	Tier              Tier             `json:"tier"`
	Strengths         []string         `json:"strengths"`
	CoachingItems     []string         `json:"coaching_items"`
	DetailedFeedback  string           `json:"detailed_feedback"`
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
