package calendar

import (
	"context"
	"time"
)

// Event is a provider-neutral calendar event. ID is assigned by the
// calendar service.
type Event struct {
	ID      string
	Summary string
	Start   time.Time
	End     time.Time
}

// Service is the calendar surface the reconciler requires. The Google
// implementation lives in google.go; tests substitute a fake.
type Service interface {
	ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
	InsertEvent(ctx context.Context, calendarID string, event Event) (string, error)
}
