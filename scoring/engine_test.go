package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeCompleter struct {
	output  string
	err     error
	lastReq CompletionRequest
	calls   int
}

func (f *fakeCompleter) CompleteJSON(ctx context.Context, req CompletionRequest) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func sampleInterview() Interview {
	return Interview{
		PersonaID:          4,
		PersonaName:        "Marcus - Cost-Conscious Café Owner",
		PersonaRole:        "Owner of a small café with tight margins",
		PersonaDescription: "Pragmatic, budget-focused café owner",
		Transcript: []TranscriptLine{
			{Speaker: SpeakerSalesperson, Text: "Hi Marcus, thanks for taking a minute."},
			{Speaker: SpeakerProspect, Text: "How much is this going to cost me?"},
			{Speaker: SpeakerSalesperson, Text: "Let me ask a couple of questions first."},
		},
	}
}

const wellFormedScore = `{
	"raw_scores": {"opening_rapport": 4, "discovery_qualification": 4, "value_messaging": 4, "objection_handling": 4, "trial_advancement": 4, "listening_adaptability": 5, "professionalism": 5},
	"weighted_points": {"opening_rapport": 8, "discovery_qualification": 16, "value_messaging": 16, "objection_handling": 16, "trial_advancement": 12, "listening_adaptability": 10, "professionalism": 5},
	"pre_deduction_total": 82,
	"deductions": [{"reason": "interrupting prospect repeatedly", "points": -5}, {"reason": "never asked for a next step", "points": -8}],
	"final_score": 95,
	"tier": "Excellent",
	"strengths": ["good discovery", "confident tone"],
	"coaching_items": ["ask for the trial", "slow down"],
	"detailed_feedback": "Solid run overall."
}`

func TestScoreInterview_RecomputesFinalScore(t *testing.T) {
	t.Parallel()

	// The upstream response claims final_score=95 and tier=Excellent; the
	// engine's own arithmetic (82 - 5 - 8 = 69) supersedes both.
	fc := &fakeCompleter{output: wellFormedScore}
	eng := NewEngine(fc, "")

	rep, err := eng.ScoreInterview(context.Background(), sampleInterview())
	if err != nil {
		t.Fatalf("ScoreInterview: %v", err)
	}
	if rep.FinalScore != 69 {
		t.Fatalf("FinalScore=%v, want 69", rep.FinalScore)
	}
	if rep.Tier != TierDeveloping {
		t.Fatalf("Tier=%q, want %q", rep.Tier, TierDeveloping)
	}
	if rep.PreDeductionTotal != 82 {
		t.Fatalf("PreDeductionTotal=%v, want 82", rep.PreDeductionTotal)
	}
	if len(rep.Deductions) != 2 {
		t.Fatalf("len(Deductions)=%d, want 2", len(rep.Deductions))
	}
	if fc.calls != 1 {
		t.Fatalf("completion calls=%d, want exactly 1", fc.calls)
	}
}

func TestScoreInterview_ClampsToZeroAndNotReady(t *testing.T) {
	t.Parallel()

	out := `{
		"raw_scores": {"opening_rapport": 1, "discovery_qualification": 1, "value_messaging": 1, "objection_handling": 1, "trial_advancement": 1, "listening_adaptability": 1, "professionalism": 1},
		"weighted_points": {"opening_rapport": 2, "discovery_qualification": 4, "value_messaging": 4, "objection_handling": 4, "trial_advancement": 3, "listening_adaptability": 2, "professionalism": 1},
		"pre_deduction_total": 20,
		"deductions": [{"reason": "misrepresenting pricing", "points": -10}, {"reason": "aggressive language", "points": -10}, {"reason": "ignored objections", "points": -6}, {"reason": "interrupting", "points": -5}, {"reason": "never asked for next step", "points": -8}, {"reason": "monopolized conversation", "points": -1}],
		"final_score": 55,
		"tier": "Developing",
		"strengths": ["showed up"],
		"coaching_items": ["everything"],
		"detailed_feedback": "Needs work."
	}`
	eng := NewEngine(&fakeCompleter{output: out}, "")

	rep, err := eng.ScoreInterview(context.Background(), sampleInterview())
	if err != nil {
		t.Fatalf("ScoreInterview: %v", err)
	}
	if rep.FinalScore != 0 {
		t.Fatalf("FinalScore=%v, want 0", rep.FinalScore)
	}
	if rep.Tier != TierNotReady {
		t.Fatalf("Tier=%q, want %q", rep.Tier, TierNotReady)
	}
}

func TestScoreInterview_MissingRawScoresIsMalformed(t *testing.T) {
	t.Parallel()

	out := `{
		"weighted_points": {"opening_rapport": 8, "discovery_qualification": 16, "value_messaging": 16, "objection_handling": 16, "trial_advancement": 12, "listening_adaptability": 10, "professionalism": 5},
		"pre_deduction_total": 83,
		"deductions": [],
		"final_score": 83,
		"tier": "Strong",
		"strengths": ["a", "b"],
		"coaching_items": ["c", "d"],
		"detailed_feedback": "x"
	}`
	eng := NewEngine(&fakeCompleter{output: out}, "")

	_, err := eng.ScoreInterview(context.Background(), sampleInterview())
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err=%v, want ErrMalformedResponse", err)
	}
}

func TestScoreInterview_UnparsableOutputIsMalformed(t *testing.T) {
	t.Parallel()

	eng := NewEngine(&fakeCompleter{output: "I cannot score this conversation."}, "")
	_, err := eng.ScoreInterview(context.Background(), sampleInterview())
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err=%v, want ErrMalformedResponse", err)
	}
}

func TestScoreInterview_NoCompleterIsUnavailable(t *testing.T) {
	t.Parallel()

	eng := NewEngine(nil, "")
	_, err := eng.ScoreInterview(context.Background(), sampleInterview())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err=%v, want ErrUnavailable", err)
	}
}

func TestScoreInterview_RepairsOutOfRangeScores(t *testing.T) {
	t.Parallel()

	out := `{
		"raw_scores": {"opening_rapport": 9, "discovery_qualification": 0, "value_messaging": 3, "objection_handling": 3, "trial_advancement": 3, "listening_adaptability": 3, "professionalism": 3},
		"weighted_points": {"opening_rapport": 25, "discovery_qualification": -3, "value_messaging": 12, "objection_handling": 12, "trial_advancement": 9, "listening_adaptability": 6, "professionalism": 3},
		"pre_deduction_total": 60,
		"deductions": [],
		"final_score": 60,
		"tier": "Developing",
		"strengths": ["one", "two", "three", "four", "five", "six"],
		"coaching_items": ["  spaced  ", ""],
		"detailed_feedback": "  trimmed  "
	}`
	eng := NewEngine(&fakeCompleter{output: out}, "")

	rep, err := eng.ScoreInterview(context.Background(), sampleInterview())
	if err != nil {
		t.Fatalf("ScoreInterview: %v", err)
	}
	if got := rep.RawScores[CategoryOpeningRapport]; got != RawScoreMax {
		t.Fatalf("raw opening_rapport=%d, want clamped to %d", got, RawScoreMax)
	}
	if got := rep.RawScores[CategoryDiscoveryQualification]; got != RawScoreMin {
		t.Fatalf("raw discovery_qualification=%d, want clamped to %d", got, RawScoreMin)
	}
	if got := rep.WeightedPoints[CategoryOpeningRapport]; got != CategoryWeights[CategoryOpeningRapport] {
		t.Fatalf("weighted opening_rapport=%d, want clamped to weight %d", got, CategoryWeights[CategoryOpeningRapport])
	}
	if got := rep.WeightedPoints[CategoryDiscoveryQualification]; got != 0 {
		t.Fatalf("weighted discovery_qualification=%d, want clamped to 0", got)
	}
	if len(rep.Strengths) != 4 {
		t.Fatalf("len(Strengths)=%d, want capped at 4", len(rep.Strengths))
	}
	if len(rep.CoachingItems) != 1 || rep.CoachingItems[0] != "spaced" {
		t.Fatalf("CoachingItems=%q, want single trimmed item", rep.CoachingItems)
	}
	if rep.DetailedFeedback != "trimmed" {
		t.Fatalf("DetailedFeedback=%q, want trimmed", rep.DetailedFeedback)
	}
}

func TestScoreInterview_PromptEmbedsTranscriptAndPersona(t *testing.T) {
	t.Parallel()

	fc := &fakeCompleter{output: wellFormedScore}
	eng := NewEngine(fc, "gpt-4o-mini")

	if _, err := eng.ScoreInterview(context.Background(), sampleInterview()); err != nil {
		t.Fatalf("ScoreInterview: %v", err)
	}

	req := fc.lastReq
	if req.Model != "gpt-4o-mini" {
		t.Fatalf("Model=%q, want gpt-4o-mini", req.Model)
	}
	if !strings.Contains(req.Input, "S: Hi Marcus, thanks for taking a minute.") {
		t.Fatalf("input missing salesperson line:\n%s", req.Input)
	}
	if !strings.Contains(req.Input, "P: How much is this going to cost me?") {
		t.Fatalf("input missing prospect line:\n%s", req.Input)
	}
	if !strings.Contains(req.Input, "Marcus - Cost-Conscious Café Owner") {
		t.Fatalf("input missing persona name:\n%s", req.Input)
	}
	if !strings.Contains(req.Instructions, "Opening & Rapport") {
		t.Fatalf("instructions missing rubric")
	}
	if req.Schema == nil || req.SchemaName != "InterviewScore" {
		t.Fatalf("schema not attached: name=%q", req.SchemaName)
	}
}

func TestScoreInterview_CompleterErrorPropagates(t *testing.T) {
	t.Parallel()

	upstream := errors.New("backend down")
	eng := NewEngine(&fakeCompleter{err: upstream}, "")
	_, err := eng.ScoreInterview(context.Background(), sampleInterview())
	if !errors.Is(err, upstream) {
		t.Fatalf("err=%v, want wrapped upstream error", err)
	}
	if errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("transport failure must not read as malformed response")
	}
}

func TestScoreInterview_EmptyTranscriptRejected(t *testing.T) {
	t.Parallel()

	eng := NewEngine(&fakeCompleter{output: wellFormedScore}, "")
	iv := sampleInterview()
	iv.Transcript = nil
	if _, err := eng.ScoreInterview(context.Background(), iv); err == nil {
		t.Fatalf("expected error for empty transcript")
	}
}

func TestTierFor_Thresholds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score float64
		want  Tier
	}{
		{100, TierExcellent},
		{90, TierExcellent},
		{89.5, TierStrong},
		{75, TierStrong},
		{74.9, TierDeveloping},
		{60, TierDeveloping},
		{59.9, TierNotReady},
		{0, TierNotReady},
	}
	for _, tc := range cases {
		if got := TierFor(tc.score); got != tc.want {
			t.Fatalf("TierFor(%v)=%q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestDecodeModelJSON_ExtractsWrappedObject(t *testing.T) {
	t.Parallel()

	var out map[string]any
	if err := decodeModelJSON("Here is the score:\n{\"final_score\": 42}\nHope that helps.", &out); err != nil {
		t.Fatalf("decodeModelJSON: %v", err)
	}
	if out["final_score"] != float64(42) {
		t.Fatalf("final_score=%v, want 42", out["final_score"])
	}

	if err := decodeModelJSON("   ", &out); err == nil {
		t.Fatalf("expected error for empty output")
	}
}
