package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunRecord is one persisted scoring run over one target.
type RunRecord struct {
	ID            string
	CreatedAt     time.Time
	Target        string
	Check         string
	Backend       string
	Model         string
	Items         int
	Failed        int
	RawScore      float64
	AdjustedScore float64
	ChanceLevel   float64
	NumCategories int
	Weight        int
}

// SaveRun persists one run. When ID is empty a new one is assigned, and
// the assigned ID is returned.
func (s *Store) SaveRun(ctx context.Context, rec RunRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs
			(id, created_at, target, check_name, backend, model, items, failed,
			 raw_score, adjusted_score, chance_level, num_categories, weight)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt, rec.Target, rec.Check, rec.Backend, rec.Model,
		rec.Items, rec.Failed, rec.RawScore, rec.AdjustedScore,
		rec.ChanceLevel, rec.NumCategories, rec.Weight,
	)
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	return rec.ID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, target, check_name, backend, model, items, failed,
			raw_score, adjusted_score, chance_level, num_categories, weight
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Target, &r.Check, &r.Backend,
			&r.Model, &r.Items, &r.Failed, &r.RawScore, &r.AdjustedScore,
			&r.ChanceLevel, &r.NumCategories, &r.Weight); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
