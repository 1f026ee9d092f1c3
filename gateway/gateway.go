// Package gateway exposes the interview backend over HTTP: streaming persona
// chat as Server-Sent Events, rubric scoring, and the persona listing.
package gateway

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/smartman98814/Sales-education-platform-with-AI-Avatar-interview-BackEnd/persona"
	"github.com/smartman98814/Sales-education-platform-with-AI-Avatar-interview-BackEnd/scoring"
	"github.com/smartman98814/Sales-education-platform-with-AI-Avatar-interview-BackEnd/stream"
)

// Streamer is the assembler surface the chat endpoint drives.
type Streamer interface {
	StreamReply(ctx context.Context, req stream.Request) (<-chan stream.OutputFrame, error)
}

// Scorer is the scoring engine surface the scoring endpoint drives.
type Scorer interface {
	ScoreInterview(ctx context.Context, iv scoring.Interview) (*scoring.ScoreReport, error)
}

// Dependencies wires the gateway to the core services.
type Dependencies struct {
	Registry *persona.Registry
	Streamer Streamer
	Scorer   Scorer
	Logger   *log.Logger
}

type server struct {
	registry *persona.Registry
	streamer Streamer
	scorer   Scorer
	logger   *log.Logger
}

// NewHandler builds the HTTP handler for the interview backend.
func NewHandler(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &server{
		registry: deps.Registry,
		streamer: deps.Streamer,
		scorer:   deps.Scorer,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/agents", s.handleAgents)
	mux.HandleFunc("/agents/", s.handleAgentByPath)
	mux.HandleFunc("/interviews/score", s.handleScoreInterview)
	return mux
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleAgents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "invalid_request_error", "method not allowed")
		return
	}
	if s.registry == nil {
		s.writeError(w, http.StatusNotImplemented, "api_error", "persona registry is not configured")
		return
	}
	s.writeJSON(w, http.StatusOK, s.registry.Statuses())
}

// handleAgentByPath serves GET /agents/{id} and POST /agents/{id}/chat/stream.
func (s *server) handleAgentByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/agents/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	id, err := strconv.Atoi(parts[0])
	if err != nil || id <= 0 {
		s.writeError(w, http.StatusBadRequest, "invalid_request_error", "agent id must be a positive integer")
		return
	}

	switch {
	case len(parts) == 1:
		s.handleAgentStatus(w, r, id)
	case len(parts) == 3 && parts[1] == "chat" && parts[2] == "stream":
		s.handleChatStream(w, r, id)
	default:
		s.writeError(w, http.StatusNotFound, "not_found_error", "agent endpoint not found")
	}
}

func (s *server) handleAgentStatus(w http.ResponseWriter, r *http.Request, id int) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "invalid_request_error", "method not allowed")
		return
	}
	if s.registry == nil {
		s.writeError(w, http.StatusNotImplemented, "api_error", "persona registry is not configured")
		return
	}
	p, err := s.registry.Get(id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "not_found_error", "agent not found")
		return
	}
	s.writeJSON(w, http.StatusOK, persona.Status{
		AgentID:     p.ID,
		Name:        p.Name,
		Role:        p.Role,
		Description: p.Description,
		AssistantID: p.AssistantID,
		IsReady:     p.AssistantID != "",
	})
}

// ErrorEnvelope is the JSON error body shared by all endpoints.
type ErrorEnvelope struct {
	Type  string        `json:"type"`
	Error ErrorResponse `json:"error"`
}

type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (s *server) writeError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		Type: "error",
		Error: ErrorResponse{
			Type:    kind,
			Message: message,
		},
	})
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
