package stream

// Segmentation policy constants. The boundary set deliberately includes comma
// and colon: short chunks keep perceived latency low for spoken-style replies.
// DefaultFlushThreshold bounds how much unsegmented text may accumulate
// before the buffer is flushed as a chunk anyway.
const DefaultFlushThreshold = 30

func isBoundary(b byte) bool {
	switch b {
	case '.', '!', '?', ',', ';', ':', '\n':
		return true
	}
	return false
}

func isTrailingSpace(b byte) bool {
	switch b {
	case ' ', '\n', '\t':
		return true
	}
	return false
}

// SegmentBuffer accumulates un-emitted reply text and cuts it into
// presentable segments. A segment ends at a boundary character that is
// followed by whitespace, or that is the final character of the buffer so
// far. A boundary followed directly by non-whitespace (a decimal point inside
// "3.14", an abbreviation glued to text) is not a cut point.
//
// A SegmentBuffer is owned by a single assembler invocation and is not safe
// for concurrent use.
type SegmentBuffer struct {
	buf       []byte
	threshold int
}

// NewSegmentBuffer returns a buffer that force-flushes once more than
// threshold characters accumulate without a boundary. threshold <= 0 selects
// DefaultFlushThreshold.
func NewSegmentBuffer(threshold int) *SegmentBuffer {
	if threshold <= 0 {
		threshold = DefaultFlushThreshold
	}
	return &SegmentBuffer{threshold: threshold}
}

// Append adds delta text and returns the complete segments it unlocked, in
// order. When the post-scan remainder exceeds the flush threshold the whole
// remainder is returned as a final segment, bounding worst-case latency.
func (s *SegmentBuffer) Append(text string) []string {
	if text == "" {
		return nil
	}
	s.buf = append(s.buf, text...)

	var segments []string
	last := 0
	for i := 0; i < len(s.buf); i++ {
		if !isBoundary(s.buf[i]) {
			continue
		}
		if i+1 < len(s.buf) && isTrailingSpace(s.buf[i+1]) {
			// Cut after the boundary plus its trailing whitespace char.
			segments = append(segments, string(s.buf[last:i+2]))
			last = i + 2
		} else if i+1 >= len(s.buf) {
			segments = append(segments, string(s.buf[last:i+1]))
			last = i + 1
		}
	}
	s.buf = s.buf[last:]

	if len(s.buf) > s.threshold {
		segments = append(segments, string(s.buf))
		s.buf = s.buf[:0]
	}
	return segments
}

// Flush returns any remaining un-emitted text and resets the buffer. Called
// when the run completes so no characters are lost.
func (s *SegmentBuffer) Flush() string {
	if len(s.buf) == 0 {
		return ""
	}
	out := string(s.buf)
	s.buf = s.buf[:0]
	return out
}

// Len reports the number of buffered, un-emitted bytes.
func (s *SegmentBuffer) Len() int {
	return len(s.buf)
}
