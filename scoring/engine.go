package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrUnavailable is returned when no completion collaborator is configured.
	ErrUnavailable = errors.New("scoring unavailable: no completion collaborator configured")

	// ErrMalformedResponse is returned when the collaborator's output is not
	// well-formed structured data for the rubric.
	ErrMalformedResponse = errors.New("malformed score response")
)

// Completer is the structured text-completion capability the engine depends
// on. Implementations return the model's output text for a schema-constrained
// request.
type Completer interface {
	CompleteJSON(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is one schema-constrained completion call.
type CompletionRequest struct {
	Model           string
	Instructions    string
	Input           string
	SchemaName      string
	Schema          map[string]interface{}
	MaxOutputTokens int64
}

// Interview is the input to one scoring call.
type Interview struct {
	PersonaID          int
	PersonaName        string
	PersonaRole        string
	PersonaDescription string
	Transcript         []TranscriptLine
}

// Engine scores interview transcripts against the sales rubric. It is
// stateless; callers may run scoring calls concurrently.
type Engine struct {
	completer Completer
	model     string
}

const defaultScoringModel = "gpt-4o-mini"

// NewEngine builds an engine over the given completer. A nil completer is
// accepted so callers can defer the "configured or not" decision to call
// time; ScoreInterview then fails with ErrUnavailable.
func NewEngine(completer Completer, model string) *Engine {
	if model == "" {
		model = defaultScoringModel
	}
	return &Engine{completer: completer, model: model}
}

// ScoreInterview issues exactly one structured completion request for the
// transcript and returns the validated report. Numeric inconsistencies in
// the collaborator's output are silently repaired; structural problems
// (unparsable output, missing score blocks) fail with ErrMalformedResponse.
// No retry is attempted; the caller owns any retry policy.
func (e *Engine) ScoreInterview(ctx context.Context, iv Interview) (*ScoreReport, error) {
	if e.completer == nil {
		return nil, ErrUnavailable
	}
	if len(iv.Transcript) == 0 {
		return nil, errors.New("ScoreInterview: transcript is empty")
	}

	out, err := e.completer.CompleteJSON(ctx, CompletionRequest{
		Model:           e.model,
		Instructions:    scoringInstructions,
		Input:           buildScoringInput(iv),
		SchemaName:      "InterviewScore",
		Schema:          scoreSchema,
		MaxOutputTokens: 2500,
	})
	if err != nil {
		return nil, fmt.Errorf("ScoreInterview: completion: %w", err)
	}

	var payload scorePayload
	if err := decodeModelJSON(out, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload.RawScores == nil {
		return nil, fmt.Errorf("%w: missing raw_scores", ErrMalformedResponse)
	}
	if payload.WeightedPoints == nil {
		return nil, fmt.Errorf("%w: missing weighted_points", ErrMalformedResponse)
	}

	return repairReport(payload), nil
}

// RenderTranscript renders the interview as alternating S:/P: lines in
// original order, the exact form embedded in the scoring prompt.
func RenderTranscript(lines []TranscriptLine) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(l.Speaker))
		b.WriteString(": ")
		b.WriteString(l.Text)
	}
	return b.String()
}

func buildScoringInput(iv Interview) string {
	desc := iv.PersonaDescription
	if desc == "" {
		desc = iv.PersonaRole
	}
	var b strings.Builder
	b.WriteString("CONVERSATION TRANSCRIPT:\n")
	b.WriteString(RenderTranscript(iv.Transcript))
	b.WriteString("\n\nPROSPECT CONTEXT:\n")
	fmt.Fprintf(&b, "Prospect: %s - %s\n", iv.PersonaName, iv.PersonaRole)
	fmt.Fprintf(&b, "Description: %s\n", desc)
	return b.String()
}

// Wire shapes of the structured completion response. Score blocks are
// pointers so their absence is distinguishable from zero values.
type categoryScoresPayload struct {
	OpeningRapport         int `json:"opening_rapport"`
	DiscoveryQualification int `json:"discovery_qualification"`
	ValueMessaging         int `json:"value_messaging"`
	ObjectionHandling      int `json:"objection_handling"`
	TrialAdvancement       int `json:"trial_advancement"`
	ListeningAdaptability  int `json:"listening_adaptability"`
	Professionalism        int `json:"professionalism"`
}

func (c categoryScoresPayload) byCategory() map[Category]int {
	return map[Category]int{
		CategoryOpeningRapport:         c.OpeningRapport,
		CategoryDiscoveryQualification: c.DiscoveryQualification,
		CategoryValueMessaging:         c.ValueMessaging,
		CategoryObjectionHandling:      c.ObjectionHandling,
		CategoryTrialAdvancement:       c.TrialAdvancement,
		CategoryListeningAdaptability:  c.ListeningAdaptability,
		CategoryProfessionalism:        c.Professionalism,
	}
}

type scorePayload struct {
	RawScores         *categoryScoresPayload `json:"raw_scores"`
	WeightedPoints    *categoryScoresPayload `json:"weighted_points"`
	PreDeductionTotal float64                `json:"pre_deduction_total"`
	Deductions        []Deduction            `json:"deductions"`
	FinalScore        float64                `json:"final_score"`
	Tier              string                 `json:"tier"`
	Strengths         []string               `json:"strengths"`
	CoachingItems     []string               `json:"coaching_items"`
	DetailedFeedback  string                 `json:"detailed_feedback"`
}

// maxFeedbackItems caps strengths/coaching lists when the model over-delivers.
// Under-delivery passes through: the engine never fabricates feedback text.
const maxFeedbackItems = 4

// repairReport enforces the numeric invariants the collaborator cannot be
// trusted with: raw scores in 1..5, weighted points within each category's
// weight range, the final score recomputed from the pre-deduction total and
// deductions and clamped to [0,100], and the tier rederived from it.
func repairReport(p scorePayload) *ScoreReport {
	raw := p.RawScores.byCategory()
	weighted := p.WeightedPoints.byCategory()
	for _, c := range Categories {
		raw[c] = clampInt(raw[c], RawScoreMin, RawScoreMax)
		weighted[c] = clampInt(weighted[c], 0, CategoryWeights[c])
	}

	pre := clamp(p.PreDeductionTotal, 0, 100)
	total := pre
	for _, d := range p.Deductions {
		total += float64(d.Points)
	}
	final := clamp(total, 0, 100)

	return &ScoreReport{
		RawScores:         raw,
		WeightedPoints:    weighted,
		PreDeductionTotal: pre,
		Deductions:        append([]Deduction(nil), p.Deductions...),
		FinalScore:        final,
		Tier:              TierFor(final),
		Strengths:         limitItems(p.Strengths),
		CoachingItems:     limitItems(p.CoachingItems),
		DetailedFeedback:  strings.TrimSpace(p.DetailedFeedback),
	}
}

func limitItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) > maxFeedbackItems {
		out = out[:maxFeedbackItems]
	}
	return out
}

// decodeModelJSON unmarshals JSON from a model response, with a small amount
// of robustness for cases where the model wraps the JSON in extra text or
// returns leading/trailing whitespace.
func decodeModelJSON(outputText string, v any) error {
	s := strings.TrimSpace(outputText)
	if s == "" {
		return io.ErrUnexpectedEOF
	}

	// Fast path: valid JSON as-is.
	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}

	// Fallback: attempt to extract the first top-level JSON object.
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end <= start {
		return fmt.Errorf("no JSON object found in model output (len=%d)", len(s))
	}

	sub := s[start : end+1]
	if err := json.Unmarshal([]byte(sub), v); err != nil {
		return fmt.Errorf("failed to unmarshal extracted JSON (len=%d): %w", len(sub), err)
	}
	return nil
}
