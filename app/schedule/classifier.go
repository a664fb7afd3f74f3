package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const clockPattern = `(\d{1,2}:\d{2}\s*[AP]M)`

var (
	dayHeaderRe  = regexp.MustCompile(`^(Mon|Tue|Wed|Thu|Fri|Sat|Sun)\s+(\d{1,2})$`)
	headerSpanRe = regexp.MustCompile(`^(Mon|Tue|Wed|Thu|Fri|Sat|Sun)(?:\s+(\d{1,2}))?\s+` + clockPattern + `\s*-\s*` + clockPattern + `(?:\s*\[(\d{1,2}:\d{2})\])?.*$`)
	spanRe       = regexp.MustCompile(`^` + clockPattern + `\s*-\s*` + clockPattern + `(?:\s*\[(\d{1,2}:\d{2})\])?\s*$`)
	dateTitleRe  = regexp.MustCompile(`^(\d{1,2})\s+(\S.*)$`)
)

// Classifier tags OCR lines with their token kind. It is a pure
// per-line operation: any lookahead across lines belongs to the
// Extractor.
type Classifier struct {
	rules *Rules
}

func NewClassifier(rules *Rules) *Classifier {
	return &Classifier{rules: rules}
}

// Run classifies a single line. Rules are applied in priority order:
// noise, bare day header, day header with embedded shift span,
// standalone shift span, date-and-title, unrecognized.
func (c *Classifier) Run(line RawLine) Token {
	text := line.Text

	if c.rules.IsNoise(text) {
		return Token{Kind: KindNoise, Line: line}
	}

	if m := dayHeaderRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[2])
		return Token{Kind: KindDayHeader, Line: line, Weekday: m[1], DayOfMonth: day}
	}

	if m := headerSpanRe.FindStringSubmatch(text); m != nil {
		span, err := parseSpan(m[3], m[4], m[5])
		if err == nil {
			day := 0
			if m[2] != "" {
				day, _ = strconv.Atoi(m[2])
			}
			return Token{Kind: KindDayHeader, Line: line, Weekday: m[1], DayOfMonth: day, Span: span}
		}
	}

	if m := spanRe.FindStringSubmatch(text); m != nil {
		span, err := parseSpan(m[1], m[2], m[3])
		if err == nil {
			return Token{Kind: KindShiftSpan, Line: line, Span: span}
		}
	}

	if m := dateTitleRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		return Token{Kind: KindDateTitle, Line: line, DayOfMonth: day, Title: strings.TrimSpace(m[2])}
	}

	return Token{Kind: KindUnrecognized, Line: line}
}

func parseSpan(start, end, duration string) (*Span, error) {
	startClock, err := parseClock(start)
	if err != nil {
		return nil, err
	}
	endClock, err := parseClock(end)
	if err != nil {
		return nil, err
	}

	return &Span{Start: startClock, End: endClock, Duration: duration}, nil
}

// parseClock parses a 12-hour clock token such as "10:00 AM". OCR
// sometimes drops the space before the meridiem, so spaces are stripped
// before parsing.
func parseClock(text string) (Clock, error) {
	compact := strings.ReplaceAll(text, " ", "")
	t, err := time.Parse("3:04PM", compact)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid clock time %q: %w", text, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}
