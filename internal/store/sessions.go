package store

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Status is a session's lifecycle stage as persisted in Postgres.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Record is a persisted session row.
type Record struct {
	ID           string
	SolutionText string
	Rows, Cols   int
	Status       Status
	Attempts     int
	ElapsedMS    int64
	GridJSON     json.RawMessage
	SolutionJSON json.RawMessage
	WordsJSON    json.RawMessage
	ErrorMessage string
	CreatedAt    time.Time
	CompletedAt  sql.NullTime
}

// CreateSession inserts a new queued session row.
func (s *Store) CreateSession(id, solutionText string, rows, cols int) error {
	_, err := s.DB.Exec(`
		INSERT INTO sessions (id, solution_text, rows, cols, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, solutionText, rows, cols, StatusQueued, time.Now())
	return err
}

// MarkRunning transitions a session to running.
func (s *Store) MarkRunning(id string) error {
	_, err := s.DB.Exec(`UPDATE sessions SET status = $2 WHERE id = $1`, id, StatusRunning)
	return err
}

// MarkDone stores the completed session's output and marks it done.
func (s *Store) MarkDone(id string, attempts int, elapsedMS int64, gridJSON, solutionJSON, wordsJSON []byte) error {
	_, err := s.DB.Exec(`
		UPDATE sessions SET
			status = $2, attempts = $3, elapsed_ms = $4,
			grid_json = $5, solution_json = $6, words_json = $7, completed_at = $8
		WHERE id = $1
	`, id, StatusDone, attempts, elapsedMS, gridJSON, solutionJSON, wordsJSON, time.Now())
	return err
}

// MarkFailed records a session's terminal error.
func (s *Store) MarkFailed(id string, cause error) error {
	_, err := s.DB.Exec(`
		UPDATE sessions SET status = $2, error_message = $3, completed_at = $4
		WHERE id = $1
	`, id, StatusFailed, cause.Error(), time.Now())
	return err
}

// GetSession fetches a session record by ID.
func (s *Store) GetSession(id string) (*Record, error) {
	r := &Record{}
	err := s.DB.QueryRow(`
		SELECT id, solution_text, rows, cols, status, attempts, elapsed_ms,
		       grid_json, solution_json, words_json, error_message, created_at, completed_at
		FROM sessions WHERE id = $1
	`, id).Scan(&r.ID, &r.SolutionText, &r.Rows, &r.Cols, &r.Status, &r.Attempts, &r.ElapsedMS,
		&r.GridJSON, &r.SolutionJSON, &r.WordsJSON, &r.ErrorMessage, &r.CreatedAt, &r.CompletedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

// ListRecent returns the most recently created sessions, newest first.
func (s *Store) ListRecent(limit int) ([]Record, error) {
	rows, err := s.DB.Query(`
		SELECT id, solution_text, rows, cols, status, attempts, elapsed_ms, created_at
		FROM sessions ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.SolutionText, &r.Rows, &r.Cols, &r.Status, &r.Attempts, &r.ElapsedMS, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats summarizes outcomes across all persisted sessions.
type Stats struct {
	Total        int
	Done         int
	Failed       int
	AvgElapsedMS float64
}

// GetStats aggregates success/failure counts and average fill time.
func (s *Store) GetStats() (Stats, error) {
	var st Stats
	err := s.DB.QueryRow(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'done'),
			COUNT(*) FILTER (WHERE status = 'failed'),
			COALESCE(AVG(elapsed_ms) FILTER (WHERE status = 'done'), 0)
		FROM sessions
	`).Scan(&st.Total, &st.Done, &st.Failed, &st.AvgElapsedMS)
	return st, err
}
