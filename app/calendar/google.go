package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleClient implements Service against the Google Calendar v3 API
// using a service account credentials file. Events are written with the
// configured IANA timezone; the zone is fixed per deployment, never
// inferred from the schedule image.
type GoogleClient struct {
	svc      *gcal.Service
	timezone string
}

func NewGoogleClient(ctx context.Context, credentialsFile, timezone string) (*GoogleClient, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &GoogleClient{svc: svc, timezone: timezone}, nil
}

func (c *GoogleClient) ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]Event, error) {
	var resp *gcal.Events
	err := withRetry(ctx, func() error {
		var callErr error
		resp, callErr = c.svc.Events.List(calendarID).
			TimeMin(from.Format(time.RFC3339)).
			TimeMax(to.Format(time.RFC3339)).
			SingleEvents(true).
			Context(ctx).
			Do()
		return callErr
	})
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		events = append(events, Event{
			ID:      item.Id,
			Summary: item.Summary,
			Start:   parseEventTime(item.Start),
			End:     parseEventTime(item.End),
		})
	}

	return events, nil
}

func (c *GoogleClient) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	return withRetry(ctx, func() error {
		return c.svc.Events.Delete(calendarID, eventID).Context(ctx).Do()
	})
}

func (c *GoogleClient) InsertEvent(ctx context.Context, calendarID string, event Event) (string, error) {
	body := &gcal.Event{
		Summary: event.Summary,
		Start: &gcal.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: c.timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: c.timezone,
		},
	}

	var created *gcal.Event
	err := withRetry(ctx, func() error {
		var callErr error
		created, callErr = c.svc.Events.Insert(calendarID, body).Context(ctx).Do()
		return callErr
	})
	if err != nil {
		return "", err
	}

	return created.Id, nil
}

// parseEventTime handles both timed events (DateTime) and all-day
// events (Date). Parse failures yield the zero time; listed events are
// only ever deleted, so their times are informational.
func parseEventTime(edt *gcal.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err == nil {
			return t
		}
		return time.Time{}
	}
	if edt.Date != "" {
		t, err := time.Parse("2006-01-02", edt.Date)
		if err == nil {
			return t
		}
	}
	return time.Time{}
}
