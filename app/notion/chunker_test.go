package notion

import (
	"strings"
	"testing"
)

func TestSplitSegmentsRoundTrip(t *testing.T) {
	lengths := []int{0, 1, 1999, 2000, 2001, 500000}

	for _, length := range lengths {
		text := strings.Repeat("x", length)
		segments := splitSegments(text, segmentSize)

		if strings.Join(segments, "") != text {
			t.Errorf("Length %d: reassembled segments do not reproduce the input", length)
		}

		for i, segment := range segments {
			if len([]rune(segment)) > segmentSize {
				t.Errorf("Length %d: segment %d exceeds %d runes", length, i, segmentSize)
			}
		}

		expected := (length + segmentSize - 1) / segmentSize
		if len(segments) != expected {
			t.Errorf("Length %d: expected %d segments, got %d", length, expected, len(segments))
		}
	}
}

func TestSplitSegmentsEmpty(t *testing.T) {
	if segments := splitSegments("", segmentSize); segments != nil {
		t.Errorf("Expected nil segments for empty transcript, got %d", len(segments))
	}
}

func TestSplitSegmentsMultibyte(t *testing.T) {
	// 2001 runes of a 3-byte character; a byte-based split would cut one
	text := strings.Repeat("語", 2001)
	segments := splitSegments(text, segmentSize)

	if len(segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(segments))
	}
	if len([]rune(segments[0])) != 2000 {
		t.Errorf("Expected first segment of 2000 runes, got %d", len([]rune(segments[0])))
	}
	if strings.Join(segments, "") != text {
		t.Error("Reassembled multibyte segments do not reproduce the input")
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("s", 2500)
	truncated := truncate(long, summaryLimit)

	if got := len([]rune(truncated)); got != 2000 {
		t.Errorf("Expected truncated length 2000 including marker, got %d", got)
	}
	if !strings.HasSuffix(truncated, "...") {
		t.Error("Expected truncation marker suffix")
	}

	exact := strings.Repeat("s", 2000)
	if truncate(exact, summaryLimit) != exact {
		t.Error("Text at the limit should not be truncated")
	}

	short := "short summary"
	if truncate(short, summaryLimit) != short {
		t.Error("Short text should pass through unchanged")
	}
}
