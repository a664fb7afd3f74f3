package calendar

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"shiftcal/app/schedule"
)

// fakeService is an in-memory Service that records every call.
type fakeService struct {
	events    []Event
	nextID    int
	listCalls int

	failOn OpClass
}

func (f *fakeService) ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]Event, error) {
	if f.failOn == OpList {
		return nil, errors.New("boom")
	}
	f.listCalls++

	var result []Event
	for _, event := range f.events {
		if !event.Start.Before(from) && event.Start.Before(to) {
			result = append(result, event)
		}
	}
	return result, nil
}

func (f *fakeService) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if f.failOn == OpDelete {
		return errors.New("boom")
	}

	for i, event := range f.events {
		if event.ID == eventID {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return errors.New("event not found")
}

func (f *fakeService) InsertEvent(ctx context.Context, calendarID string, event Event) (string, error) {
	if f.failOn == OpInsert {
		return "", errors.New("boom")
	}

	f.nextID++
	event.ID = fmt.Sprintf("evt-%d", f.nextID)
	f.events = append(f.events, event)
	return event.ID, nil
}

func midnight(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func candidate(date time.Time, startHour, endHour int, title string) schedule.CandidateEvent {
	return schedule.CandidateEvent{
		Date:  date,
		Start: date.Add(time.Duration(startHour) * time.Hour),
		End:   date.Add(time.Duration(endHour) * time.Hour),
		Title: title,
	}
}

func TestReconcileReplacesWholeDay(t *testing.T) {
	day := midnight(2026, time.September, 14)
	service := &fakeService{
		events: []Event{
			{ID: "old-1", Summary: "Old shift", Start: day.Add(9 * time.Hour), End: day.Add(17 * time.Hour)},
			{ID: "old-2", Summary: "Manually added", Start: day.Add(20 * time.Hour), End: day.Add(21 * time.Hour)},
		},
	}
	reconciler := NewReconciler(service, "primary")

	inserted, err := reconciler.Run(context.Background(), []schedule.CandidateEvent{
		candidate(day, 10, 19, "Store #204"),
		candidate(day, 20, 22, "Store #204"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(inserted) != 2 {
		t.Fatalf("Expected 2 inserted events, got %d", len(inserted))
	}

	// Post-condition: the day holds exactly the new candidates,
	// nothing else - the manually added event is gone too.
	remaining, err := service.ListEvents(context.Background(), "primary", day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 2 {
		t.Fatalf("Expected exactly 2 events on the day, got %d", len(remaining))
	}
	for _, event := range remaining {
		if event.Summary != "Store #204" {
			t.Errorf("Unexpected surviving event '%s'", event.Summary)
		}
	}
}

func TestReconcileTouchesOnlyCandidateDates(t *testing.T) {
	monday := midnight(2026, time.September, 14)
	tuesday := midnight(2026, time.September, 15)
	service := &fakeService{
		events: []Event{
			{ID: "keep", Summary: "Other day", Start: tuesday.Add(9 * time.Hour), End: tuesday.Add(10 * time.Hour)},
		},
	}
	reconciler := NewReconciler(service, "primary")

	_, err := reconciler.Run(context.Background(), []schedule.CandidateEvent{
		candidate(monday, 10, 19, "Store #204"),
	})
	if err != nil {
		t.Fatal(err)
	}

	remaining, _ := service.ListEvents(context.Background(), "primary", tuesday, tuesday.AddDate(0, 0, 1))
	if len(remaining) != 1 || remaining[0].ID != "keep" {
		t.Error("Expected events on untouched dates to survive")
	}
}

func TestReconcileEmptyCandidates(t *testing.T) {
	service := &fakeService{}
	reconciler := NewReconciler(service, "primary")

	inserted, err := reconciler.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(inserted) != 0 {
		t.Errorf("Expected no insertions, got %d", len(inserted))
	}
	if service.listCalls != 0 {
		t.Errorf("Expected no remote calls, got %d list calls", service.listCalls)
	}
}

func TestReconcileAbortsOnListFailure(t *testing.T) {
	service := &fakeService{failOn: OpList}
	reconciler := NewReconciler(service, "primary")

	_, err := reconciler.Run(context.Background(), []schedule.CandidateEvent{
		candidate(midnight(2026, time.September, 14), 10, 19, "Store #204"),
	})
	if err == nil {
		t.Fatal("Expected an error")
	}

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("Expected RemoteError, got %T", err)
	}
	if remoteErr.Op != OpList {
		t.Errorf("Expected op class 'list', got '%s'", remoteErr.Op)
	}
}

func TestReconcileInsertFailureKeepsPriorDays(t *testing.T) {
	monday := midnight(2026, time.September, 14)
	tuesday := midnight(2026, time.September, 15)

	service := &fakeService{}
	reconciler := NewReconciler(service, "primary")

	// First pass: insert Monday's shift successfully.
	inserted, err := reconciler.Run(context.Background(), []schedule.CandidateEvent{
		candidate(monday, 10, 19, "Store #204"),
	})
	if err != nil || len(inserted) != 1 {
		t.Fatalf("Setup failed: %v", err)
	}

	// Second pass fails inserting Tuesday after Monday succeeded;
	// Monday's replacement stays applied.
	service.failOn = OpInsert
	inserted, err = reconciler.Run(context.Background(), []schedule.CandidateEvent{
		candidate(tuesday, 9, 17, "Store #204"),
	})
	if err == nil {
		t.Fatal("Expected an error")
	}

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) || remoteErr.Op != OpInsert {
		t.Errorf("Expected insert-class RemoteError, got %v", err)
	}
	if len(inserted) != 0 {
		t.Errorf("Expected no insertions from the failed pass, got %d", len(inserted))
	}

	remaining, _ := service.ListEvents(context.Background(), "primary", monday, monday.AddDate(0, 0, 1))
	if len(remaining) != 1 {
		t.Errorf("Expected Monday's event to stay applied, got %d events", len(remaining))
	}
}
