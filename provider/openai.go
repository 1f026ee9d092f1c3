// Package provider adapts the OpenAI API to the collaborator interfaces the
// assembler and the scoring engine depend on: assistant-thread streaming runs
// and schema-constrained completions.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
	"github.com/openai/openai-go/responses"

	"github.com/smartman98814/Sales-education-platform-with-AI-Avatar-interview-BackEnd/scoring"
	"github.com/smartman98814/Sales-education-platform-with-AI-Avatar-interview-BackEnd/stream"
)

// OpenAI implements stream.RunSource and scoring.Completer over one client.
type OpenAI struct {
	client *openai.Client
}

// New builds the provider. The API key is required; everything else rides on
// the client defaults.
func New(apiKey string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("provider.New: missing API key")
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{client: &client}, nil
}

// CreateThread opens a fresh conversation thread on the backend.
func (o *OpenAI) CreateThread(ctx context.Context) (string, error) {
	thread, err := o.client.Beta.Threads.New(ctx, openai.BetaThreadNewParams{})
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	return thread.ID, nil
}

// AppendUserMessage adds the salesperson's message to the thread.
func (o *OpenAI) AppendUserMessage(ctx context.Context, threadID, text string) error {
	_, err := o.client.Beta.Threads.Messages.New(ctx, threadID, openai.BetaThreadMessageNewParams{
		Role: openai.BetaThreadMessageNewParamsRoleUser,
		Content: openai.BetaThreadMessageNewParamsContentUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// OpenRun starts one streaming run of the assistant against the thread.
func (o *OpenAI) OpenRun(ctx context.Context, threadID, assistantID string) (stream.RunStream, error) {
	sse := o.client.Beta.Threads.Runs.NewStreaming(ctx, threadID, openai.BetaThreadRunNewParams{
		AssistantID: assistantID,
	})
	return &assistantRunStream{sse: sse}, nil
}

// assistantRunStream maps the raw assistant SSE event feed onto the
// assembler's DeltaEvent vocabulary. Run-step bookkeeping events are dropped;
// only message content and run lifecycle survive the translation.
type assistantRunStream struct {
	sse      *ssestream.Stream[openai.AssistantStreamEventUnion]
	pending  []stream.DeltaEvent
	cur      stream.DeltaEvent
	terminal bool
}

func (s *assistantRunStream) Next() bool {
	for {
		if len(s.pending) > 0 {
			s.cur = s.pending[0]
			s.pending = s.pending[1:]
			return true
		}
		if s.terminal || !s.sse.Next() {
			return false
		}

		evt := s.sse.Current()
		switch evt.Event {
		case "thread.message.created":
			s.pending = append(s.pending, stream.DeltaEvent{Kind: stream.DeltaMessageCreated})

		case "thread.message.delta":
			if text := messageDeltaText(evt.AsThreadMessageDelta().Data.RawJSON()); text != "" {
				s.pending = append(s.pending, stream.DeltaEvent{Kind: stream.DeltaContent, Text: text})
			}

		case "thread.run.completed":
			s.terminal = true
			s.pending = append(s.pending, stream.DeltaEvent{Kind: stream.DeltaRunCompleted})

		case "thread.run.failed", "thread.run.cancelled", "thread.run.expired":
			s.terminal = true
			s.pending = append(s.pending, stream.DeltaEvent{
				Kind:   stream.DeltaRunFailed,
				Reason: runFailureReason(evt.Event, evt.AsThreadRunFailed().Data.RawJSON()),
			})
		}
	}
}

func (s *assistantRunStream) Current() stream.DeltaEvent { return s.cur }
func (s *assistantRunStream) Err() error                 { return s.sse.Err() }
func (s *assistantRunStream) Close() error               { return s.sse.Close() }

// messageDeltaText extracts the concatenated text value of one message delta
// event. Parsed from the raw payload so unfamiliar content blocks degrade to
// nothing rather than a failure.
func messageDeltaText(raw string) string {
	var env struct {
		Delta struct {
			Content []struct {
				Type string `json:"type"`
				Text struct {
					Value string `json:"value"`
				} `json:"text"`
			} `json:"content"`
		} `json:"delta"`
	}
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return ""
	}
	var b strings.Builder
	for _, c := range env.Delta.Content {
		if c.Type == "text" {
			b.WriteString(c.Text.Value)
		}
	}
	return b.String()
}

func runFailureReason(event, raw string) string {
	var env struct {
		LastError struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"last_error"`
	}
	if err := json.Unmarshal([]byte(raw), &env); err == nil && env.LastError.Message != "" {
		if env.LastError.Code != "" {
			return env.LastError.Code + ": " + env.LastError.Message
		}
		return env.LastError.Message
	}
	return "run " + strings.TrimPrefix(event, "thread.run.")
}

// CompleteJSON issues one schema-constrained completion and returns the raw
// output text.
func (o *OpenAI) CompleteJSON(ctx context.Context, req scoring.CompletionRequest) (string, error) {
	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:   req.SchemaName,
			Schema: req.Schema,
			Strict: openai.Bool(true),
			Type:   "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           req.Model,
		MaxOutputTokens: openai.Int(req.MaxOutputTokens),
		Instructions:    openai.String(req.Instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(req.Input, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := callWithRetry(ctx, o.client, params)
	if err != nil {
		return "", err
	}
	return resp.OutputText(), nil
}

// callWithRetry retries transient API failures. The waits are short: these
// calls sit behind an interactive request, not a batch job.
func callWithRetry(ctx context.Context, client *openai.Client, params responses.ResponseNewParams) (*responses.Response, error) {
	const maxRetries = 3
	rateLimitWaitTimes := []time.Duration{2 * time.Second, 5 * time.Second, 10 * time.Second}
	serverErrorWaitTimes := []time.Duration{1 * time.Second, 3 * time.Second, 6 * time.Second}

	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := client.Responses.New(ctx, params)
		if err != nil {
			if isRateLimitError(err) {
				if attempt < maxRetries-1 && sleepCtx(ctx, rateLimitWaitTimes[attempt]) {
					continue
				}
			} else if isServerError(err) {
				if attempt < maxRetries-1 && sleepCtx(ctx, serverErrorWaitTimes[attempt]) {
					continue
				}
			}
			return nil, err
		}
		return resp, nil
	}
	return nil, fmt.Errorf("failed after %d attempts due to OpenAI API issues", maxRetries)
}

// sleepCtx waits for d and reports whether the wait completed before ctx was
// cancelled.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "server_error")
}
