// Package history keeps a local record of interview attempts started from
// this machine. The server remains the system of record; this store only
// supports offline review and the --local listing.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Attempt is one local record of a started interview session.
type Attempt struct {
	ID          string
	InterviewID string
	Candidate   string
	Status      string
	Warnings    int
	Turns       int
	StartedAt   time.Time
	UpdatedAt   time.Time
}

// Store provides SQLite-backed persistence for attempts.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates tables if they don't exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS attempts (
		id TEXT PRIMARY KEY,
		interview_id TEXT NOT NULL,
		candidate TEXT NOT NULL,
		status TEXT NOT NULL,
		warnings INTEGER DEFAULT 0,
		turns INTEGER DEFAULT 0,
		started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// RecordAttempt creates a new attempt for a freshly started session.
func (s *Store) RecordAttempt(interviewID, candidate string) (*Attempt, error) {
	id := uuid.New().String()
	now := time.Now()

	_, err := s.db.Exec(
		`INSERT INTO attempts (id, interview_id, candidate, status, started_at, updated_at)
		 VALUES (?, ?, ?, 'active', ?, ?)`,
		id, interviewID, candidate, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert attempt: %w", err)
	}

	return &Attempt{
		ID:          id,
		InterviewID: interviewID,
		Candidate:   candidate,
		Status:      "active",
		StartedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// FinishAttempt records the final outcome of an attempt.
func (s *Store) FinishAttempt(id, status string, warnings, turns int) error {
	_, err := s.db.Exec(
		`UPDATE attempts SET status = ?, warnings = ?, turns = ?, updated_at = ?
		 WHERE id = ?`,
		status, warnings, turns, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("update attempt: %w", err)
	}

	return nil
}

// GetAttempt retrieves an attempt by ID.
func (s *Store) GetAttempt(id string) (*Attempt, error) {
	row := s.db.QueryRow(
		`SELECT id, interview_id, candidate, status, warnings, turns, started_at, updated_at
		 FROM attempts WHERE id = ?`,
		id,
	)

	var att Attempt
	err := row.Scan(&att.ID, &att.InterviewID, &att.Candidate, &att.Status, &att.Warnings, &att.Turns, &att.StartedAt, &att.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan attempt: %w", err)
	}

	return &att, nil
}

// ListAttempts returns the most recent attempts, newest first.
func (s *Store) ListAttempts(limit int) ([]Attempt, error) {
	rows, err := s.db.Query(
		`SELECT id, interview_id, candidate, status, warnings, turns, started_at, updated_at
		 FROM attempts
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var attempts []Attempt
	for rows.Next() {
		var att Attempt
		if err := rows.Scan(&att.ID, &att.InterviewID, &att.Candidate, &att.Status, &att.Warnings, &att.Turns, &att.StartedAt, &att.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return attempts, nil
}
