package database

import (
	"fmt"
)

// SQLImportRepository handles database operations for import history
type SQLImportRepository struct {
	db *DB
}

var _ ImportRepository = (*SQLImportRepository)(nil)

func NewImportRepository(db *DB) *SQLImportRepository {
	return &SQLImportRepository{db: db}
}

// RecordImport stores one processed attachment and its inserted events
// in a single transaction.
func (r *SQLImportRepository) RecordImport(imp Import, events []Event) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO imports (source, filename, status, error, event_count)
		VALUES (?, ?, ?, ?, ?)
	`, imp.Source, imp.Filename, imp.Status, imp.Error, imp.EventCount)
	if err != nil {
		return 0, fmt.Errorf("failed to insert import: %w", err)
	}

	importID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import id: %w", err)
	}

	for _, event := range events {
		_, err := tx.Exec(`
			INSERT INTO events (import_id, calendar_event_id, title, starts_at, ends_at)
			VALUES (?, ?, ?, ?, ?)
		`, importID, event.CalendarEventID, event.Title, event.StartsAt, event.EndsAt)
		if err != nil {
			return 0, fmt.Errorf("failed to insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	return importID, nil
}

func (r *SQLImportRepository) GetImportCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM imports`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count imports: %w", err)
	}
	return count, nil
}

func (r *SQLImportRepository) GetEventCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

func (r *SQLImportRepository) GetRecentImports(limit int) ([]Import, error) {
	rows, err := r.db.Query(`
		SELECT id, source, filename, status, error, event_count, created_at
		FROM imports
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}
	defer rows.Close()

	var imports []Import
	for rows.Next() {
		var imp Import
		err := rows.Scan(&imp.ID, &imp.Source, &imp.Filename, &imp.Status,
			&imp.Error, &imp.EventCount, &imp.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		imports = append(imports, imp)
	}

	return imports, rows.Err()
}
