// Package store persists form drafts and submitted responses in a local
// sqlite database. It holds domain data only; coordinator state is never
// persisted.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const dbFile = ".intake/responses.db"

// Store wraps the database connection.
type Store struct {
	conn    *sql.DB
	baseDir string
}

// Open opens (creating if necessary) the response database under baseDir.
func Open(baseDir string) (*Store, error) {
	dbPath := filepath.Join(baseDir, dbFile)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	conn, err := sql.Open(driverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL keeps reads concurrent while writes stay serialized.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	s := &Store{conn: conn, baseDir: baseDir}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS drafts (
	form_id    TEXT NOT NULL,
	field_id   TEXT NOT NULL,
	value      TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL,
	PRIMARY KEY (form_id, field_id)
);

CREATE TABLE IF NOT EXISTS responses (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	form_id      TEXT NOT NULL,
	submitted_at TEXT NOT NULL,
	payload      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_responses_form ON responses(form_id);
`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// SaveDraft upserts the current field values for a form.
func (s *Store) SaveDraft(formID string, values map[string]string) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin draft save: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for fieldID, value := range values {
		_, err := tx.Exec(`
			INSERT INTO drafts (form_id, field_id, value, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(form_id, field_id) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			formID, fieldID, value, now)
		if err != nil {
			return fmt.Errorf("save draft field %s: %w", fieldID, err)
		}
	}
	return tx.Commit()
}

// LoadDraft returns the saved field values for a form, empty map when
// there is no draft.
func (s *Store) LoadDraft(formID string) (map[string]string, error) {
	rows, err := s.conn.Query(`SELECT field_id, value FROM drafts WHERE form_id = ?`, formID)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var fieldID, value string
		if err := rows.Scan(&fieldID, &value); err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		values[fieldID] = value
	}
	return values, rows.Err()
}

// ClearDraft removes a form's draft rows.
func (s *Store) ClearDraft(formID string) error {
	_, err := s.conn.Exec(`DELETE FROM drafts WHERE form_id = ?`, formID)
	if err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

// Response is one submitted form.
type Response struct {
	ID          int64
	FormID      string
	SubmittedAt time.Time
	Values      map[string]string
}

// SaveResponse records a completed submission and clears the form's
// draft in the same transaction.
func (s *Store) SaveResponse(formID string, values map[string]string) (int64, error) {
	payload, err := json.Marshal(values)
	if err != nil {
		return 0, fmt.Errorf("encode response: %w", err)
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin submit: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO responses (form_id, submitted_at, payload) VALUES (?, ?, ?)`,
		formID, time.Now().UTC().Format(time.RFC3339), string(payload))
	if err != nil {
		return 0, fmt.Errorf("insert response: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM drafts WHERE form_id = ?`, formID); err != nil {
		return 0, fmt.Errorf("clear draft on submit: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// ListResponses returns a form's submissions, newest first.
func (s *Store) ListResponses(formID string) ([]Response, error) {
	rows, err := s.conn.Query(`
		SELECT id, form_id, submitted_at, payload
		FROM responses WHERE form_id = ? ORDER BY id DESC`, formID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var out []Response
	for rows.Next() {
		var r Response
		var ts, payload string
		if err := rows.Scan(&r.ID, &r.FormID, &ts, &payload); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		r.SubmittedAt, _ = time.Parse(time.RFC3339, ts)
		if err := json.Unmarshal([]byte(payload), &r.Values); err != nil {
			return nil, fmt.Errorf("decode response %d: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
