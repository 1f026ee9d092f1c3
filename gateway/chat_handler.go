package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/smartman98814/Sales-education-platform-with-AI-Avatar-interview-BackEnd/persona"
	"github.com/smartman98814/Sales-education-platform-with-AI-Avatar-interview-BackEnd/stream"
)

type chatStreamRequest struct {
	Message  string `json:"message"`
	ThreadID string `json:"thread_id,omitempty"`

	// BufferBySentence defaults to true when omitted.
	BufferBySentence *bool `json:"buffer_by_sentence,omitempty"`
}

// handleChatStream serves POST /agents/{id}/chat/stream: one streaming reply
// delivered as SSE data frames in the compact OutputFrame wire form.
func (s *server) handleChatStream(w http.ResponseWriter, r *http.Request, agentID int) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "invalid_request_error", "method not allowed")
		return
	}
	if s.streamer == nil {
		s.writeError(w, http.StatusNotImplemented, "api_error", "streaming is not configured")
		return
	}

	var body chatStreamRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request_error", "invalid JSON body")
		return
	}
	if body.Message == "" {
		s.writeError(w, http.StatusBadRequest, "invalid_request_error", "message is required")
		return
	}
	segment := true
	if body.BufferBySentence != nil {
		segment = *body.BufferBySentence
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "api_error", "streaming unsupported")
		return
	}

	reqID := uuid.NewString()
	frames, err := s.streamer.StreamReply(r.Context(), stream.Request{
		PersonaID:         agentID,
		Message:           body.Message,
		ThreadID:          body.ThreadID,
		SegmentBySentence: segment,
	})
	if err != nil {
		switch {
		case errors.Is(err, persona.ErrNotFound):
			s.writeError(w, http.StatusNotFound, "not_found_error", "agent not found")
		case errors.Is(err, persona.ErrNotReady):
			s.writeError(w, http.StatusServiceUnavailable, "api_error", "agent is not ready")
		default:
			s.writeError(w, http.StatusInternalServerError, "api_error", err.Error())
		}
		s.logger.Printf("chat reqid=%s agent=%d rejected: %v", reqID, agentID, err)
		return
	}

	w.Header().Set("content-type", "text/event-stream")
	w.Header().Set("cache-control", "no-cache")
	w.Header().Set("connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	s.logger.Printf("chat reqid=%s agent=%d streaming", reqID, agentID)

	var sent int
	for {
		select {
		case f, ok := <-frames:
			if !ok {
				s.logger.Printf("chat reqid=%s agent=%d done frames=%d", reqID, agentID, sent)
				return
			}
			if err := writeSSE(w, f); err != nil {
				// Client went away mid-write; the context cancellation stops
				// the assembler's worker.
				s.logger.Printf("chat reqid=%s agent=%d write failed: %v", reqID, agentID, err)
				return
			}
			flusher.Flush()
			sent++
		case <-r.Context().Done():
			s.logger.Printf("chat reqid=%s agent=%d client disconnected", reqID, agentID)
			return
		}
	}
}
