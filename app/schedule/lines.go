package schedule

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SplitLines turns raw OCR output into numbered, trimmed lines. OCR
// engines occasionally emit compatibility codepoints (full-width digits,
// odd spaces), so the text is NFKC-normalized before splitting.
func SplitLines(text string) []RawLine {
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")

	parts := strings.Split(text, "\n")
	lines := make([]RawLine, 0, len(parts))
	for i, part := range parts {
		lines = append(lines, RawLine{
			Number: i + 1,
			Text:   strings.TrimSpace(part),
		})
	}

	return lines
}
