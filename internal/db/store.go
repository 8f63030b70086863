package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the local agentdesk SQLite database.
type Store struct {
	db *sql.DB
}

const schema = `
	CREATE TABLE IF NOT EXISTS call_log (
		sessionId TEXT PRIMARY KEY,
		phoneNumber TEXT NOT NULL,
		direction TEXT NOT NULL,
		disposition TEXT,
		summary TEXT,
		startedAt REAL NOT NULL,
		durationSecs INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS call_log_phone ON call_log(phoneNumber, startedAt);

	CREATE TABLE IF NOT EXISTS drafts (
		sessionId TEXT PRIMARY KEY,
		note TEXT NOT NULL,
		updatedAt REAL NOT NULL
	);
`

// Open opens (and if needed creates) the database at path with WAL enabled.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecentCalls returns the newest completed calls for a phone number.
func (s *Store) RecentCalls(phone string, limit int) ([]CallLogEntry, error) {
	rows, err := s.db.Query(`
		SELECT sessionId, phoneNumber, direction, disposition, summary, startedAt, durationSecs
		FROM call_log
		WHERE phoneNumber = ?
		ORDER BY startedAt DESC
		LIMIT ?
	`, phone, limit)
	if err != nil {
		return nil, fmt.Errorf("query call log: %w", err)
	}
	defer rows.Close()

	var entries []CallLogEntry
	for rows.Next() {
		var e CallLogEntry
		var disposition, summary sql.NullString
		var startedAt float64
		if err := rows.Scan(&e.SessionID, &e.PhoneNumber, &e.Direction,
			&disposition, &summary, &startedAt, &e.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan call log: %w", err)
		}
		e.Disposition = disposition.String
		e.Summary = summary.String
		e.StartedAt = timeFromUnix(startedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveCallLog upserts a completed call. Called when the wrap-up record is
// ready.
func (s *Store) SaveCallLog(e CallLogEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO call_log (sessionId, phoneNumber, direction, disposition, summary, startedAt, durationSecs)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(sessionId) DO UPDATE SET
			disposition = excluded.disposition,
			summary = excluded.summary,
			durationSecs = excluded.durationSecs
	`, e.SessionID, e.PhoneNumber, e.Direction, e.Disposition, e.Summary,
		unixFromTime(e.StartedAt), e.DurationSecs)
	if err != nil {
		return fmt.Errorf("save call log: %w", err)
	}
	return nil
}

// SaveDraft upserts the wrap-up draft note for a session.
func (s *Store) SaveDraft(sessionID, note string) error {
	_, err := s.db.Exec(`
		INSERT INTO drafts (sessionId, note, updatedAt)
		VALUES (?, ?, ?)
		ON CONFLICT(sessionId) DO UPDATE SET
			note = excluded.note,
			updatedAt = excluded.updatedAt
	`, sessionID, note, unixFromTime(time.Now()))
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Draft returns the saved wrap-up draft note for a session, or "" when none
// exists.
func (s *Store) Draft(sessionID string) (string, error) {
	var note string
	err := s.db.QueryRow(`SELECT note FROM drafts WHERE sessionId = ?`, sessionID).Scan(&note)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query draft: %w", err)
	}
	return note, nil
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
