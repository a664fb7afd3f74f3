package schedule

import (
	"log/slog"
	"time"
)

// Extractor walks a classified line stream with an explicit cursor and
// assembles CandidateEvents. Two pieces of state are carried across the
// scan: lastResolved, the most recently accepted date, used to imply a
// date for shift spans that appear without a header; and pending, the
// date assigned to the next shift span when a bare day header preceded
// it. The reference instant is captured once per run and never re-read,
// so the resolution window stays stable for the whole text.
type Extractor struct {
	rules      *Rules
	classifier *Classifier
}

func NewExtractor(rules *Rules) *Extractor {
	return &Extractor{
		rules:      rules,
		classifier: NewClassifier(rules),
	}
}

func (e *Extractor) Run(lines []RawLine, now time.Time) []CandidateEvent {
	tokens := make([]Token, len(lines))
	for i, line := range lines {
		tokens[i] = e.classifier.Run(line)
	}

	var events []CandidateEvent
	var lastResolved time.Time
	var pending time.Time

	i := 0
	for i < len(tokens) {
		tok := tokens[i]

		switch tok.Kind {
		case KindNoise:
			i++

		case KindUnrecognized:
			slog.Debug("Unrecognized schedule line", "line", tok.Line.Number, "text", tok.Line.Text)
			i++

		case KindDateTitle:
			// A title line with no shift span in flight carries no event.
			slog.Debug("Skipping stray title line", "line", tok.Line.Number, "text", tok.Line.Text)
			i++

		case KindDayHeader:
			if tok.Span == nil {
				// A day explicitly marked as having no shift. Its resolved
				// date becomes the pending date for any span that follows
				// before the next header.
				date, ok := ResolveDate(tok.Weekday, tok.DayOfMonth, now, e.rules)
				if !ok {
					slog.Warn("No date in window for day header",
						"line", tok.Line.Number, "weekday", tok.Weekday, "day", tok.DayOfMonth)
					i++
					continue
				}
				pending = date
				lastResolved = date
				i++
				// Skip a re-printed date-number line trailing the header.
				if i < len(tokens) && tokens[i].Kind == KindDateTitle &&
					tokens[i].DayOfMonth == tok.DayOfMonth && !e.rules.HasTitleMarker(tokens[i].Title) {
					i++
				}
				continue
			}

			title, titleDay, consumed, found := e.findTitle(tokens, i+1)
			if !found {
				slog.Warn("No title found for shift, dropping",
					"line", tok.Line.Number, "weekday", tok.Weekday, "day", tok.DayOfMonth)
				i++
				continue
			}

			// The day number may sit on the header line or on the title
			// line; the header wins when both are present.
			day := tok.DayOfMonth
			if day == 0 {
				day = titleDay
			}
			if day == 0 {
				slog.Warn("Shift has no day-of-month, dropping",
					"line", tok.Line.Number, "weekday", tok.Weekday)
				i += 1 + consumed
				continue
			}

			date, ok := ResolveDate(tok.Weekday, day, now, e.rules)
			if !ok {
				slog.Warn("No date in window for shift, dropping",
					"line", tok.Line.Number, "weekday", tok.Weekday, "day", day)
				i += 1 + consumed
				continue
			}

			events = append(events, makeEvent(date, tok.Span, title))
			lastResolved = date
			pending = time.Time{}
			i += 1 + consumed

		case KindShiftSpan:
			var date time.Time
			switch {
			case !pending.IsZero():
				date = pending
			case !lastResolved.IsZero():
				// A span with no header belongs to the day after the last
				// resolved one.
				date = lastResolved.AddDate(0, 0, 1)
			default:
				slog.Warn("Shift span with no resolved date, dropping",
					"line", tok.Line.Number, "text", tok.Line.Text)
				i++
				continue
			}

			title, _, consumed, found := e.findTitle(tokens, i+1)
			if !found {
				slog.Warn("No title found for shift, dropping",
					"line", tok.Line.Number, "date", date.Format("2006-01-02"))
				i++
				continue
			}

			events = append(events, makeEvent(date, tok.Span, title))
			lastResolved = date
			pending = time.Time{}
			i += 1 + consumed
		}
	}

	return events
}

// findTitle examines up to the rules' lookahead budget of tokens
// starting at from. Lines carrying a role term are skipped; the first
// line carrying a title marker wins and its text (minus any leading
// day number) becomes the title. consumed is the number of tokens the
// cursor should advance past on success.
func (e *Extractor) findTitle(tokens []Token, from int) (title string, dayOfMonth int, consumed int, found bool) {
	for j := 0; j < e.rules.TitleLookahead && from+j < len(tokens); j++ {
		tok := tokens[from+j]

		if e.rules.HasRoleTerm(tok.Line.Text) {
			continue
		}

		text := tok.Line.Text
		day := 0
		if tok.Kind == KindDateTitle {
			text = tok.Title
			day = tok.DayOfMonth
		}

		if e.rules.HasTitleMarker(text) {
			return text, day, j + 1, true
		}
	}

	return "", 0, 0, false
}

func makeEvent(date time.Time, span *Span, title string) CandidateEvent {
	return CandidateEvent{
		Date:  date,
		Start: span.Start.On(date),
		End:   span.End.On(date),
		Title: title,
	}
}
