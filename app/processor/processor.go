package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"shiftcal/app/calendar"
	"shiftcal/app/database"
	"shiftcal/app/ocr"
	"shiftcal/app/schedule"
)

// Processor runs one schedule image through the whole pipeline: OCR,
// shift extraction, calendar reconciliation, history recording. One
// attachment is processed start-to-finish before the next; callers that
// have several attachments submit them sequentially.
type Processor struct {
	engine     ocr.Engine
	rules      *schedule.Rules
	reconciler *calendar.Reconciler
	importRepo database.ImportRepository
	location   *time.Location
	now        func() time.Time
}

// Result is the outcome of one attachment. Reply is the single
// user-facing message; everything else feeds diagnostics and history.
type Result struct {
	Reply      string
	Status     string
	EventCount int
}

func New(engine ocr.Engine, rules *schedule.Rules, reconciler *calendar.Reconciler,
	importRepo database.ImportRepository, location *time.Location) *Processor {
	return &Processor{
		engine:     engine,
		rules:      rules,
		reconciler: reconciler,
		importRepo: importRepo,
		location:   location,
		now:        time.Now,
	}
}

// Run processes one attachment and always produces exactly one reply.
// Parse-local problems (unmatched lines, unresolvable dates, missing
// titles) are logged and skipped inside the extractor; only acquisition
// and remote failures surface to the user.
func (p *Processor) Run(ctx context.Context, source, filename string, image []byte) *Result {
	// The reference instant is captured once so the date resolution
	// window stays stable for the whole attachment.
	now := p.now().In(p.location)

	text, err := p.engine.ExtractText(ctx, image)
	if err != nil {
		slog.Error("OCR failed", "source", source, "filename", filename, "error", err)
		return p.record(source, filename, &Result{
			Reply:  fmt.Sprintf("Sorry, I could not read the image %s.", filename),
			Status: database.ImportStatusFailed,
		}, "ocr: "+err.Error(), nil)
	}

	lines := schedule.SplitLines(text)
	extractor := schedule.NewExtractor(p.rules)
	candidates := extractor.Run(lines, now)
	slog.Info("Extracted shifts", "source", source, "filename", filename,
		"lines", len(lines), "shifts", len(candidates))

	inserted, err := p.reconciler.Run(ctx, candidates)
	if err != nil {
		var remoteErr *calendar.RemoteError
		reply := "Updating your calendar failed; please try again later."
		if errors.As(err, &remoteErr) {
			reply = fmt.Sprintf("Calendar %s failed; check that the service account has access to the calendar.", remoteErr.Op)
		}
		slog.Error("Reconciliation failed", "source", source, "filename", filename,
			"inserted_before_failure", len(inserted), "error", err)
		return p.record(source, filename, &Result{
			Reply:      reply,
			Status:     database.ImportStatusFailed,
			EventCount: len(inserted),
		}, err.Error(), inserted)
	}

	return p.record(source, filename, &Result{
		Reply:      buildSummary(inserted),
		Status:     database.ImportStatusSuccess,
		EventCount: len(inserted),
	}, "", inserted)
}

// record persists the attachment outcome. History is best effort: a
// storage failure is logged but never changes the user-facing result.
func (p *Processor) record(source, filename string, result *Result, errMsg string, inserted []calendar.Inserted) *Result {
	events := make([]database.Event, 0, len(inserted))
	for _, ins := range inserted {
		events = append(events, database.Event{
			CalendarEventID: ins.EventID,
			Title:           ins.Title,
			StartsAt:        ins.Start,
			EndsAt:          ins.End,
		})
	}

	_, err := p.importRepo.RecordImport(database.Import{
		Source:     source,
		Filename:   filename,
		Status:     result.Status,
		Error:      errMsg,
		EventCount: result.EventCount,
	}, events)
	if err != nil {
		slog.Warn("Failed to record import history", "source", source, "filename", filename, "error", err)
	}

	return result
}

func buildSummary(inserted []calendar.Inserted) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Added %d event(s) to your calendar.", len(inserted))
	for _, ins := range inserted {
		fmt.Fprintf(&sb, "\n%s: %s - %s",
			ins.Start.Format("2006/01/02"),
			ins.Start.Format("3:04PM"),
			ins.End.Format("3:04PM"))
	}
	return sb.String()
}
