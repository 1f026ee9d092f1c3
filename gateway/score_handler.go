package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/smartman98814/Sales-education-platform-with-AI-Avatar-interview-BackEnd/scoring"
)

type scoreMessage struct {
	Text   string `json:"text"`
	Sender string `json:"sender"` // "user" is the salesperson, anything else the prospect
}

type scoreInterviewRequest struct {
	AgentID   int            `json:"agent_id"`
	AgentName string         `json:"agent_name"`
	AgentRole string         `json:"agent_role"`
	Messages  []scoreMessage `json:"messages"`
}

// handleScoreInterview serves POST /interviews/score.
func (s *server) handleScoreInterview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "invalid_request_error", "method not allowed")
		return
	}
	if s.scorer == nil {
		s.writeError(w, http.StatusNotImplemented, "api_error", "scoring is not configured")
		return
	}

	var body scoreInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request_error", "invalid JSON body")
		return
	}
	if len(body.Messages) == 0 {
		s.writeError(w, http.StatusBadRequest, "invalid_request_error", "messages are required")
		return
	}

	transcript := make([]scoring.TranscriptLine, 0, len(body.Messages))
	for _, m := range body.Messages {
		speaker := scoring.SpeakerProspect
		if m.Sender == "user" {
			speaker = scoring.SpeakerSalesperson
		}
		transcript = append(transcript, scoring.TranscriptLine{Speaker: speaker, Text: m.Text})
	}

	iv := scoring.Interview{
		PersonaID:   body.AgentID,
		PersonaName: body.AgentName,
		PersonaRole: body.AgentRole,
		Transcript:  transcript,
	}
	// The registry description gives the evaluator richer prospect context
	// when the agent is known; the request's role stands in otherwise.
	if s.registry != nil {
		if p, err := s.registry.Get(body.AgentID); err == nil {
			iv.PersonaDescription = p.Description
		}
	}

	reqID := uuid.NewString()
	report, err := s.scorer.ScoreInterview(r.Context(), iv)
	if err != nil {
		switch {
		case errors.Is(err, scoring.ErrUnavailable):
			s.writeError(w, http.StatusServiceUnavailable, "api_error", "scoring service is not configured")
		case errors.Is(err, scoring.ErrMalformedResponse):
			s.writeError(w, http.StatusBadGateway, "api_error", "scoring service returned an invalid result")
		default:
			s.writeError(w, http.StatusInternalServerError, "api_error", "failed to score interview")
		}
		s.logger.Printf("score reqid=%s agent=%d failed: %v", reqID, body.AgentID, err)
		return
	}

	s.logger.Printf("score reqid=%s agent=%d final=%.1f tier=%s", reqID, body.AgentID, report.FinalScore, report.Tier)
	s.writeJSON(w, http.StatusOK, report)
}
