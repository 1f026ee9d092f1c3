package stream

import (
	"reflect"
	"strings"
	"testing"
)

func collectSegments(t *testing.T, deltas []string, threshold int) []string {
	t.Helper()
	buf := NewSegmentBuffer(threshold)
	var out []string
	for _, d := range deltas {
		out = append(out, buf.Append(d)...)
	}
	if rest := buf.Flush(); rest != "" {
		out = append(out, rest)
	}
	return out
}

func TestSegmentBuffer_BoundaryCorrectness(t *testing.T) {
	t.Parallel()

	got := collectSegments(t, []string{"Hello, world. How are you?"}, 0)
	want := []string{"Hello, ", "world. ", "How are you?"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segments=%q, want %q", got, want)
	}
}

func TestSegmentBuffer_DecimalNotSplit(t *testing.T) {
	t.Parallel()

	got := collectSegments(t, []string{"Price is 3.14 dollars"}, 0)
	for _, seg := range got {
		if seg == "3." || strings.HasSuffix(seg, " 3.") {
			t.Fatalf("split inside decimal: segments=%q", got)
		}
	}
	if joined := strings.Join(got, ""); joined != "Price is 3.14 dollars" {
		t.Fatalf("joined=%q, want original text", joined)
	}
}

func TestSegmentBuffer_BoundaryAtBufferEnd(t *testing.T) {
	t.Parallel()

	buf := NewSegmentBuffer(0)
	got := buf.Append("Sure.")
	if !reflect.DeepEqual(got, []string{"Sure."}) {
		t.Fatalf("segments=%q, want [Sure.]", got)
	}
	if buf.Len() != 0 {
		t.Fatalf("buffer should be empty after end-of-buffer boundary")
	}
}

func TestSegmentBuffer_OversizedFlush(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 31)
	buf := NewSegmentBuffer(30)
	got := buf.Append(long)
	if !reflect.DeepEqual(got, []string{long}) {
		t.Fatalf("segments=%q, want single forced flush of %d chars", got, len(long))
	}

	// Exactly the threshold stays buffered.
	buf2 := NewSegmentBuffer(30)
	if got := buf2.Append(strings.Repeat("a", 30)); len(got) != 0 {
		t.Fatalf("segments=%q, want none at exactly threshold", got)
	}
	if buf2.Len() != 30 {
		t.Fatalf("Len()=%d, want 30", buf2.Len())
	}
}

func TestSegmentBuffer_DeterministicAndLossless(t *testing.T) {
	t.Parallel()

	deltas := []string{
		"Well", ", let me think", ".\nPric", "e is 3.", "14 dollars",
		" per unit! That said: we", " could do better; maybe 2.5%", " off.",
	}

	first := collectSegments(t, deltas, 0)
	for run := 0; run < 5; run++ {
		again := collectSegments(t, deltas, 0)
		if !reflect.DeepEqual(again, first) {
			t.Fatalf("run %d produced %q, want %q", run, again, first)
		}
	}

	if joined, whole := strings.Join(first, ""), strings.Join(deltas, ""); joined != whole {
		t.Fatalf("concatenated segments=%q, want %q", joined, whole)
	}
}

func TestSegmentBuffer_BoundarySpansDeltas(t *testing.T) {
	t.Parallel()

	buf := NewSegmentBuffer(0)
	if got := buf.Append("Hello,"); !reflect.DeepEqual(got, []string{"Hello,"}) {
		// Boundary is the final char of the buffer so far, so it emits now.
		t.Fatalf("segments=%q, want [Hello,]", got)
	}
	if got := buf.Append(" world"); len(got) != 0 {
		t.Fatalf("segments=%q, want none", got)
	}
	if got := buf.Append(". Bye"); !reflect.DeepEqual(got, []string{" world. "}) {
		t.Fatalf("segments=%q, want [\" world. \"]", got)
	}
	if rest := buf.Flush(); rest != "Bye" {
		t.Fatalf("Flush()=%q, want %q", rest, "Bye")
	}
}
