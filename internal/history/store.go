package history

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kherve/lazycrm/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// Entry represents one applied filter in the history log
type Entry struct {
	ID          int
	EntityType  string
	Filters     models.FilterGroup
	ResultCount int
	AppliedAt   time.Time
}

// Store persists applied filters to a local sqlite database
type Store struct {
	db *sql.DB
}

// NewStore opens (and if needed creates) the history database
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Create schema
	_, err = db.Exec(schemaSQL)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Add records an applied filter group and the number of records it
// matched. The group is stored as its wire JSON.
func (s *Store) Add(entity models.EntityType, group models.FilterGroup, resultCount int) error {
	filters, err := json.Marshal(group)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO filter_history (entity_type, filters, result_count)
		VALUES (?, ?, ?)`,
		string(entity),
		string(filters),
		resultCount,
	)
	return err
}

// GetRecent retrieves the most recently applied filters for an entity
// type
func (s *Store) GetRecent(entity models.EntityType, limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, entity_type, filters, result_count, applied_at
		FROM filter_history
		WHERE entity_type = ?
		ORDER BY applied_at DESC, id DESC
		LIMIT ?`, string(entity), limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var filters string
		var appliedAt string

		err := rows.Scan(&e.ID, &e.EntityType, &filters, &e.ResultCount, &appliedAt)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(filters), &e.Filters); err != nil {
			// Malformed stored filters are skipped, not fatal
			continue
		}
		e.AppliedAt, _ = time.Parse("2006-01-02 15:04:05", appliedAt)

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Prune deletes everything but the newest max entries
func (s *Store) Prune(max int) error {
	_, err := s.db.Exec(`
		DELETE FROM filter_history
		WHERE id NOT IN (
			SELECT id FROM filter_history
			ORDER BY applied_at DESC, id DESC
			LIMIT ?
		)`, max)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
