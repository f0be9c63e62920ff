package index

import (
	"strings"
	"unicode/utf8"
)

// Separator cascade for splitting: prefer paragraph breaks, then
// lines, sentences, words, and finally hard cuts.
var separators = []string{"\n\n", "\n", ". ", " "}

// SplitText splits content into chunks of at most size bytes with
// roughly overlap bytes carried between consecutive chunks. Content
// already within the size limit is returned as a single chunk. The
// caller guarantees overlap < size.
func SplitText(content string, size, overlap int) []string {
	text := strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}

	pieces := splitRecursive(text, 0, size)
	return mergePieces(pieces, size, overlap)
}

// splitRecursive breaks text into pieces no longer than size, trying
// coarser separators first and falling back to hard cuts.
func splitRecursive(text string, sepIdx, size int) []string {
	if len(text) <= size {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	if sepIdx >= len(separators) {
		var out []string
		for start := 0; start < len(text); {
			end := start + size
			if end >= len(text) {
				end = len(text)
			} else {
				// Back the cut off to a rune start so multi-byte
				// characters are never split across chunks.
				for end > start && !utf8.RuneStart(text[end]) {
					end--
				}
				if end == start {
					_, n := utf8.DecodeRuneInString(text[start:])
					end = start + n
				}
			}
			out = append(out, text[start:end])
			start = end
		}
		return out
	}

	parts := strings.SplitAfter(text, separators[sepIdx])
	if len(parts) == 1 {
		return splitRecursive(text, sepIdx+1, size)
	}

	var out []string
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		if len(part) > size {
			out = append(out, splitRecursive(part, sepIdx+1, size)...)
			continue
		}
		out = append(out, part)
	}
	return out
}

// mergePieces packs pieces into chunks up to size, carrying a tail of
// pieces totalling at most overlap into the next chunk.
func mergePieces(pieces []string, size, overlap int) []string {
	var (
		chunks     []string
		current    []string
		currentLen int
	)

	flush := func() {
		chunk := strings.TrimSpace(strings.Join(current, ""))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	for _, piece := range pieces {
		if currentLen+len(piece) > size && currentLen > 0 {
			flush()
			for len(current) > 0 && (currentLen > overlap || currentLen+len(piece) > size) {
				currentLen -= len(current[0])
				current = current[1:]
			}
		}
		current = append(current, piece)
		currentLen += len(piece)
	}

	if currentLen > 0 {
		flush()
	}

	return chunks
}
