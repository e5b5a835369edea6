package report

import "strings"

const (
	chunkSize    = 4000
	chunkOverlap = 200
)

// splitText breaks long report text into chunks of at most chunkSize
// characters, preferring to cut at paragraph, line, sentence, and word
// boundaries in that order. Consecutive chunks share chunkOverlap characters
// so findings spanning a boundary are not lost.
func splitText(text string) []string {
	text = strings.TrimSpace(text)
	if len(text) <= chunkSize {
		return []string{text}
	}

	separators := []string{"\n\n", "\n", ". ", " "}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + chunkSize
		if end >= len(text) {
			chunks = append(chunks, strings.TrimSpace(text[start:]))
			break
		}

		cut := end
		for _, sep := range separators {
			if idx := strings.LastIndex(text[start:end], sep); idx > 0 {
				cut = start + idx + len(sep)
				break
			}
		}

		chunks = append(chunks, strings.TrimSpace(text[start:cut]))

		next := cut - chunkOverlap
		if next <= start {
			next = cut
		}
		start = next
	}

	return chunks
}
