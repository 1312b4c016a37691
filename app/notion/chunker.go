package notion

// segmentSize is the store's per-block rich text limit.
const segmentSize = 2000

const truncationMarker = "..."

// splitSegments slices text into ordered chunks of at most size runes.
// Reassembling the chunks in order reproduces the input exactly.
func splitSegments(text string, size int) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	segments := make([]string, 0, (len(runes)+size-1)/size)

	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		segments = append(segments, string(runes[start:end]))
	}

	return segments
}

// truncate caps text at limit runes, replacing the tail with the
// truncation marker when cut.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-len(truncationMarker)]) + truncationMarker
}
