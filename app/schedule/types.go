package schedule

import "time"

type Kind string

const (
	KindDayHeader    Kind = "day_header"
	KindShiftSpan    Kind = "shift_span"
	KindDateTitle    Kind = "date_title"
	KindNoise        Kind = "noise"
	KindUnrecognized Kind = "unrecognized"
)

// RawLine is a single line of OCR output, trimmed, with its 1-based
// position in the original text.
type RawLine struct {
	Number int
	Text   string
}

// Clock is a wall-clock time without a date.
type Clock struct {
	Hour   int
	Minute int
}

// On places the clock time on the given calendar date, in that date's
// location.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}

// Span is a shift time range. Duration carries the bracketed annotation
// from the schedule (e.g. "8:00"); it is advisory only and is never
// checked against the start/end pair.
type Span struct {
	Start    Clock
	End      Clock
	Duration string
}

// Token is the classification result for one RawLine. Which fields are
// populated depends on Kind:
//   - KindDayHeader: Weekday, and DayOfMonth and/or Span when present
//   - KindShiftSpan: Span
//   - KindDateTitle: DayOfMonth and Title
type Token struct {
	Kind       Kind
	Line       RawLine
	Weekday    string
	DayOfMonth int
	Span       *Span
	Title      string
}

// CandidateEvent is a fully assembled shift ready for reconciliation.
// Date is midnight of the shift's day in the configured location.
type CandidateEvent struct {
	Date  time.Time
	Start time.Time
	End   time.Time
	Title string
}
