package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/whence/internal/llm"
)

// CallRow is one persisted backend call.
type CallRow struct {
	ID           int64
	CreatedAt    time.Time
	Backend      string
	Model        string
	Prompt       string
	Response     string
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// AppendCall implements llm.CallLog.
func (s *Store) AppendCall(ctx context.Context, rec llm.CallRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO backend_calls
			(created_at, backend, model, prompt, response, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), rec.Backend, rec.Model, rec.Prompt, rec.Response,
		rec.LatencyMs, rec.Success, rec.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("append backend call: %w", err)
	}
	return nil
}

// ListCalls returns the most recent backend calls, newest first.
func (s *Store) ListCalls(ctx context.Context, limit int) ([]CallRow, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, backend, model, prompt, response, latency_ms, success, error_message
		 FROM backend_calls ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query backend calls: %w", err)
	}
	defer rows.Close()

	var out []CallRow
	for rows.Next() {
		var c CallRow
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.Backend, &c.Model, &c.Prompt,
			&c.Response, &c.LatencyMs, &c.Success, &c.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan backend call: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCall returns one backend call by ID, or nil when not found.
func (s *Store) GetCall(ctx context.Context, id int64) (*CallRow, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, backend, model, prompt, response, latency_ms, success, error_message
		 FROM backend_calls WHERE id = ?`, id)

	var c CallRow
	err := row.Scan(&c.ID, &c.CreatedAt, &c.Backend, &c.Model, &c.Prompt,
		&c.Response, &c.LatencyMs, &c.Success, &c.ErrorMessage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get backend call: %w", err)
	}
	return &c, nil
}
