package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"shiftcal/app/schedule"
)

type OpClass string

const (
	OpList   OpClass = "list"
	OpDelete OpClass = "delete"
	OpInsert OpClass = "insert"
)

// RemoteError wraps a calendar service failure with the operation class
// that failed, so user-facing messages can name it.
type RemoteError struct {
	Op  OpClass
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("calendar %s failed: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Inserted is a candidate that made it into the calendar.
type Inserted struct {
	schedule.CandidateEvent
	EventID string
}

// Reconciler replaces a calendar day's events with freshly extracted
// ones. Replacement is per whole day: everything in [date 00:00,
// date+1d 00:00) is deleted before the new shifts are inserted,
// including events the user added by hand.
type Reconciler struct {
	service    Service
	calendarID string
}

func NewReconciler(service Service, calendarID string) *Reconciler {
	return &Reconciler{service: service, calendarID: calendarID}
}

// Run reconciles all candidates, one distinct date at a time in
// ascending order. The first remote failure aborts the remaining dates;
// events already inserted stay in place (reconciliation is not atomic
// across days) and are returned alongside the error.
func (r *Reconciler) Run(ctx context.Context, candidates []schedule.CandidateEvent) ([]Inserted, error) {
	byDate := make(map[time.Time][]schedule.CandidateEvent)
	for _, c := range candidates {
		byDate[c.Date] = append(byDate[c.Date], c)
	}

	dates := make([]time.Time, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var inserted []Inserted
	for _, date := range dates {
		dayStart := date
		dayEnd := date.AddDate(0, 0, 1)

		existing, err := r.service.ListEvents(ctx, r.calendarID, dayStart, dayEnd)
		if err != nil {
			return inserted, &RemoteError{Op: OpList, Err: err}
		}

		for _, event := range existing {
			if err := r.service.DeleteEvent(ctx, r.calendarID, event.ID); err != nil {
				return inserted, &RemoteError{Op: OpDelete, Err: err}
			}
		}

		for _, candidate := range byDate[date] {
			id, err := r.service.InsertEvent(ctx, r.calendarID, Event{
				Summary: candidate.Title,
				Start:   candidate.Start,
				End:     candidate.End,
			})
			if err != nil {
				return inserted, &RemoteError{Op: OpInsert, Err: err}
			}
			inserted = append(inserted, Inserted{CandidateEvent: candidate, EventID: id})
		}

		slog.Info("Reconciled calendar day",
			"date", date.Format("2006-01-02"),
			"removed", len(existing),
			"added", len(byDate[date]))
	}

	return inserted, nil
}
