package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/neurolink/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

const analysisColumns = `id, user_id, region, input_text, category, result_json, provider, is_mock, created_at`

// Save inserts an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO neuro_analyses
  (` + analysisColumns + `)
VALUES (?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  result_json=VALUES(result_json), category=VALUES(category);
`
	result, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("encode analysis result: %w", err)
	}
	_, err = r.db.ExecContext(ctx, q,
		a.ID, a.UserID, a.Region, a.InputText, a.Category,
		string(result), stringOrDash(a.Provider), a.IsMock, nowIfZero(a.CreatedAt),
	)
	return err
}

// LatestByUser returns the newest analysis of a user, nil when there is none.
func (r *AnalysisRepository) LatestByUser(ctx context.Context, userID string) (*domain.Analysis, error) {
	const q = `
SELECT ` + analysisColumns + `
FROM neuro_analyses
WHERE user_id=?
ORDER BY created_at DESC, id DESC
LIMIT 1;`
	a, err := scanAnalysis(r.db.QueryRowContext(ctx, q, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

// List returns analysis records ordered by created_at desc
func (r *AnalysisRepository) List(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	const q = `
SELECT ` + analysisColumns + `
FROM neuro_analyses
ORDER BY created_at DESC, id DESC
LIMIT ?;`
	rows, err := r.db.QueryContext(ctx, q, limitOrDefault(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(s scanner) (*domain.Analysis, error) {
	var (
		a       domain.Analysis
		result  string
		created time.Time
	)
	if err := s.Scan(&a.ID, &a.UserID, &a.Region, &a.InputText, &a.Category, &result, &a.Provider, &a.IsMock, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(result), &a.Result); err != nil {
		return nil, fmt.Errorf("decode analysis %s: %w", a.ID, err)
	}
	a.CreatedAt = created
	return &a, nil
}
