// Package stream turns a live model delta stream into an ordered sequence of
// client-presentable output frames.
package stream

import "encoding/json"

// DeltaKind tags the events a RunStream produces.
type DeltaKind int

const (
	// DeltaMessageCreated announces the reply message before any content.
	DeltaMessageCreated DeltaKind = iota
	// DeltaContent carries one increment of reply text.
	DeltaContent
	// DeltaRunCompleted terminates a successful run.
	DeltaRunCompleted
	// DeltaRunFailed terminates a failed run with a reason.
	DeltaRunFailed
)

// DeltaEvent is one incremental unit of model output during a streaming run.
// Text is set for DeltaContent, Reason for DeltaRunFailed.
type DeltaEvent struct {
	Kind   DeltaKind
	Text   string
	Reason string
}

// FrameKind tags the frames delivered to the client.
type FrameKind int

const (
	// FrameThreadStarted carries the conversation thread id, always first.
	FrameThreadStarted FrameKind = iota
	// FrameChunk carries one segment of reply text.
	FrameChunk
	// FrameDone terminates a successful reply. Terminal.
	FrameDone
	// FrameError terminates a failed reply with a readable message. Terminal.
	FrameError
)

// OutputFrame is one unit of the assembler's output protocol. At most one
// terminal frame (Done or Error) is emitted per request, always last.
type OutputFrame struct {
	Kind     FrameKind
	ThreadID string
	Text     string // FrameChunk
	Message  string // FrameError
}

// Terminal reports whether the frame ends the sequence.
func (f OutputFrame) Terminal() bool {
	return f.Kind == FrameDone || f.Kind == FrameError
}

// wireFrame is the compact JSON shape clients consume:
// {"t":"s","tid":...} | {"t":"c","d":...,"tid":...} | {"t":"d","tid":...} | {"t":"e","e":...,"tid":...}
type wireFrame struct {
	T   string `json:"t"`
	D   string `json:"d,omitempty"`
	E   string `json:"e,omitempty"`
	TID string `json:"tid,omitempty"`
}

// MarshalJSON renders the frame in the compact wire form.
func (f OutputFrame) MarshalJSON() ([]byte, error) {
	w := wireFrame{TID: f.ThreadID}
	switch f.Kind {
	case FrameThreadStarted:
		w.T = "s"
	case FrameChunk:
		w.T = "c"
		w.D = f.Text
	case FrameDone:
		w.T = "d"
	case FrameError:
		w.T = "e"
		w.E = f.Message
	}
	return json.Marshal(w)
}
