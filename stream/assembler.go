package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smartman98814/Sales-education-platform-with-AI-Avatar-interview-BackEnd/persona"
)

// RunStream is one open streaming run. Events arrive strictly in order and
// are consumed exactly once; the final event is RunCompleted or RunFailed.
// The surface mirrors an SSE stream handle: Next advances, Current returns
// the event, Err reports a transport failure after Next returns false.
type RunStream interface {
	Next() bool
	Current() DeltaEvent
	Err() error
	Close() error
}

// RunSource is the completion backend the assembler streams from. A thread is
// the backend's persistent conversational context; OpenRun binds it to a
// persona's assistant handle and starts one streaming reply.
type RunSource interface {
	CreateThread(ctx context.Context) (string, error)
	AppendUserMessage(ctx context.Context, threadID, text string) error
	OpenRun(ctx context.Context, threadID, assistantID string) (RunStream, error)
}

// Request describes one StreamReply call.
type Request struct {
	PersonaID int
	Message   string

	// ThreadID continues an existing conversation; empty starts a new thread,
	// whose id is surfaced as the first frame.
	ThreadID string

	// SegmentBySentence selects the boundary-aware segmentation policy.
	// When false every delta is forwarded as its own chunk.
	SegmentBySentence bool
}

// Options tunes an Assembler. Zero values select the defaults.
type Options struct {
	// MaxConcurrentRuns bounds simultaneous streaming interviews.
	MaxConcurrentRuns int
	// EventWaitTimeout is how long to wait for the next delta before the run
	// is declared stalled and an error frame is emitted.
	EventWaitTimeout time.Duration
	// FlushThreshold overrides the segment buffer flush threshold.
	FlushThreshold int
}

const (
	defaultMaxConcurrentRuns = 10
	defaultEventWaitTimeout  = 30 * time.Second

	// relayBuffer is the bounded hand-off between the goroutine pulling the
	// blocking run stream and the frame producer.
	relayBuffer = 32
)

// Assembler converts delta-event streams into ordered frame sequences. Each
// invocation owns its own relay worker and segment buffer; no state is shared
// across concurrent StreamReply calls.
type Assembler struct {
	registry *persona.Registry
	source   RunSource

	sem         chan struct{}
	waitTimeout time.Duration
	threshold   int
}

// NewAssembler builds an assembler over the given registry and run source.
func NewAssembler(registry *persona.Registry, source RunSource, opts Options) (*Assembler, error) {
	if registry == nil {
		return nil, errors.New("NewAssembler: registry is nil")
	}
	if source == nil {
		return nil, errors.New("NewAssembler: source is nil")
	}
	if opts.MaxConcurrentRuns <= 0 {
		opts.MaxConcurrentRuns = defaultMaxConcurrentRuns
	}
	if opts.EventWaitTimeout <= 0 {
		opts.EventWaitTimeout = defaultEventWaitTimeout
	}
	if opts.FlushThreshold <= 0 {
		opts.FlushThreshold = DefaultFlushThreshold
	}
	return &Assembler{
		registry:    registry,
		source:      source,
		sem:         make(chan struct{}, opts.MaxConcurrentRuns),
		waitTimeout: opts.EventWaitTimeout,
		threshold:   opts.FlushThreshold,
	}, nil
}

// StreamReply validates the request, then streams one reply as an ordered
// frame sequence. Unknown or not-ready personas and empty messages fail
// synchronously with typed errors; after that the channel always ends with
// exactly one terminal frame (Done or Error) and is then closed.
//
// The sequence is single-pass and not restartable: one call consumes one run.
// Cancelling ctx (client disconnect, abandoned consumption) stops the relay
// worker and releases the run handle best-effort.
func (a *Assembler) StreamReply(ctx context.Context, req Request) (<-chan OutputFrame, error) {
	p, err := a.registry.GetReady(req.PersonaID)
	if err != nil {
		return nil, err
	}
	if req.Message == "" {
		return nil, errors.New("StreamReply: message is empty")
	}

	select {
	case a.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("StreamReply: %w", ctx.Err())
	}

	frames := make(chan OutputFrame)
	go func() {
		defer func() { <-a.sem }()
		defer close(frames)
		a.run(ctx, p, req, frames)
	}()
	return frames, nil
}

// relayItem is what the relay worker hands to the frame producer. Exactly one
// of ev/err is meaningful; done marks normal stream exhaustion.
type relayItem struct {
	ev   DeltaEvent
	err  error
	done bool
}

func (a *Assembler) run(ctx context.Context, p persona.Persona, req Request, frames chan<- OutputFrame) {
	threadID := req.ThreadID
	if threadID == "" {
		id, err := a.source.CreateThread(ctx)
		if err != nil {
			a.emit(ctx, frames, OutputFrame{Kind: FrameError, Message: "failed to start conversation: " + err.Error()})
			return
		}
		threadID = id
	}

	// The thread id goes out before any content so the client can persist it
	// even if the run later fails.
	if !a.emit(ctx, frames, OutputFrame{Kind: FrameThreadStarted, ThreadID: threadID}) {
		return
	}

	if err := a.source.AppendUserMessage(ctx, threadID, req.Message); err != nil {
		a.emit(ctx, frames, OutputFrame{Kind: FrameError, ThreadID: threadID, Message: "failed to deliver message: " + err.Error()})
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	rs, err := a.source.OpenRun(runCtx, threadID, p.AssistantID)
	if err != nil {
		a.emit(ctx, frames, OutputFrame{Kind: FrameError, ThreadID: threadID, Message: "failed to start run: " + err.Error()})
		return
	}

	events := make(chan relayItem, relayBuffer)
	go func() {
		defer rs.Close()
		for rs.Next() {
			select {
			case events <- relayItem{ev: rs.Current()}:
			case <-runCtx.Done():
				return
			}
		}
		item := relayItem{done: true, err: rs.Err()}
		select {
		case events <- item:
		case <-runCtx.Done():
		}
	}()

	buf := NewSegmentBuffer(a.threshold)
	timer := time.NewTimer(a.waitTimeout)
	defer timer.Stop()

	for {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(a.waitTimeout)

		select {
		case <-ctx.Done():
			return

		case <-timer.C:
			a.emit(ctx, frames, OutputFrame{Kind: FrameError, ThreadID: threadID, Message: "timed out waiting for model output"})
			return

		case item := <-events:
			if item.done {
				if item.err != nil {
					a.emit(ctx, frames, OutputFrame{Kind: FrameError, ThreadID: threadID, Message: "stream interrupted: " + item.err.Error()})
					return
				}
				// Producer ended without a completion event: treat as done so
				// the client is never left without a terminal frame.
				a.finish(ctx, frames, buf, req.SegmentBySentence, threadID)
				return
			}

			switch item.ev.Kind {
			case DeltaMessageCreated:
				// Announcement only; content follows in deltas.

			case DeltaContent:
				if req.SegmentBySentence {
					for _, seg := range buf.Append(item.ev.Text) {
						if !a.emit(ctx, frames, OutputFrame{Kind: FrameChunk, ThreadID: threadID, Text: seg}) {
							return
						}
					}
				} else if item.ev.Text != "" {
					if !a.emit(ctx, frames, OutputFrame{Kind: FrameChunk, ThreadID: threadID, Text: item.ev.Text}) {
						return
					}
				}

			case DeltaRunCompleted:
				a.finish(ctx, frames, buf, req.SegmentBySentence, threadID)
				return

			case DeltaRunFailed:
				msg := item.ev.Reason
				if msg == "" {
					msg = "run failed"
				}
				a.emit(ctx, frames, OutputFrame{Kind: FrameError, ThreadID: threadID, Message: msg})
				return
			}
		}
	}
}

// finish flushes the remaining buffer and emits the single Done frame.
func (a *Assembler) finish(ctx context.Context, frames chan<- OutputFrame, buf *SegmentBuffer, segmented bool, threadID string) {
	if segmented {
		if rest := buf.Flush(); rest != "" {
			if !a.emit(ctx, frames, OutputFrame{Kind: FrameChunk, ThreadID: threadID, Text: rest}) {
				return
			}
		}
	}
	a.emit(ctx, frames, OutputFrame{Kind: FrameDone, ThreadID: threadID})
}

// emit delivers one frame unless the caller has gone away.
func (a *Assembler) emit(ctx context.Context, frames chan<- OutputFrame, f OutputFrame) bool {
	select {
	case frames <- f:
		return true
	case <-ctx.Done():
		return false
	}
}
