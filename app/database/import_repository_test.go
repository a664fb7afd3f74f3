package database

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatal(err)
	}

	return db
}

func TestRecordImportWithEvents(t *testing.T) {
	repo := NewImportRepository(setupTestDB(t))

	start := time.Date(2026, time.September, 14, 10, 0, 0, 0, time.UTC)
	importID, err := repo.RecordImport(Import{
		Source:     "discord:123",
		Filename:   "schedule.png",
		Status:     ImportStatusSuccess,
		EventCount: 2,
	}, []Event{
		{CalendarEventID: "evt-1", Title: "Store #204", StartsAt: start, EndsAt: start.Add(9 * time.Hour)},
		{CalendarEventID: "evt-2", Title: "Store #204", StartsAt: start.AddDate(0, 0, 1), EndsAt: start.AddDate(0, 0, 1).Add(8 * time.Hour)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if importID == 0 {
		t.Error("Expected a non-zero import id")
	}

	importCount, err := repo.GetImportCount()
	if err != nil {
		t.Fatal(err)
	}
	if importCount != 1 {
		t.Errorf("Expected 1 import, got %d", importCount)
	}

	eventCount, err := repo.GetEventCount()
	if err != nil {
		t.Fatal(err)
	}
	if eventCount != 2 {
		t.Errorf("Expected 2 events, got %d", eventCount)
	}
}

func TestRecordFailedImport(t *testing.T) {
	repo := NewImportRepository(setupTestDB(t))

	_, err := repo.RecordImport(Import{
		Source:   "api",
		Filename: "blurry.png",
		Status:   ImportStatusFailed,
		Error:    "ocr: unreadable",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	recent, err := repo.GetRecentImports(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 {
		t.Fatalf("Expected 1 import, got %d", len(recent))
	}
	if recent[0].Status != ImportStatusFailed {
		t.Errorf("Expected failed status, got '%s'", recent[0].Status)
	}
	if recent[0].Error != "ocr: unreadable" {
		t.Errorf("Expected error message to round-trip, got '%s'", recent[0].Error)
	}
}

func TestGetRecentImportsLimit(t *testing.T) {
	repo := NewImportRepository(setupTestDB(t))

	for i := 0; i < 5; i++ {
		if _, err := repo.RecordImport(Import{
			Source:   "api",
			Filename: "schedule.png",
			Status:   ImportStatusSuccess,
		}, nil); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := repo.GetRecentImports(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 3 {
		t.Errorf("Expected 3 imports, got %d", len(recent))
	}
}
