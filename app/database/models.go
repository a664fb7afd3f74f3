package database

import (
	"time"
)

const (
	ImportStatusSuccess = "success"
	ImportStatusFailed  = "failed"
)

// Import is one processed schedule attachment.
type Import struct {
	ID         int64
	Source     string // e.g. "discord:<message id>" or "api"
	Filename   string
	Status     string
	Error      string
	EventCount int
	CreatedAt  time.Time
}

// Event is one shift inserted into the calendar by an import.
type Event struct {
	ID              int64
	ImportID        int64
	CalendarEventID string
	Title           string
	StartsAt        time.Time
	EndsAt          time.Time
	CreatedAt       time.Time
}
