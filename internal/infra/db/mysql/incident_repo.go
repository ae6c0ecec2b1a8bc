package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/bryanwahyu/neurolink/internal/domain/incident"
)

type IncidentRepository struct {
	db *sql.DB
}

func NewIncidentRepository(db *sql.DB) *IncidentRepository { return &IncidentRepository{db: db} }

func (r *IncidentRepository) Save(ctx context.Context, i *domain.Incident) error {
	const q = `
INSERT INTO neuro_incidents
  (provider, task, phase, message, details_json, created_at)
VALUES (?,?,?,?,?,?)
`
	msg := i.Message
	if strings.TrimSpace(msg) == "" {
		msg = "-"
	}
	res, err := r.db.ExecContext(ctx, q,
		stringOrDash(i.Provider), stringOrDash(i.Task), stringOrDash(string(i.Phase)),
		msg, jsonOrEmpty(i.DetailsJSON), nowIfZero(i.CreatedAt),
	)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		i.ID = id
	}
	return nil
}

func (r *IncidentRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Incident, error) {
	const q = `
SELECT id, provider, task, phase, message, details_json, created_at
FROM neuro_incidents
ORDER BY created_at DESC, id DESC
LIMIT ?;`
	rows, err := r.db.QueryContext(ctx, q, limitOrDefault(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Incident
	for rows.Next() {
		var (
			i       domain.Incident
			created time.Time
		)
		if err := rows.Scan(&i.ID, &i.Provider, &i.Task, &i.Phase, &i.Message, &i.DetailsJSON, &created); err != nil {
			return nil, err
		}
		i.CreatedAt = created
		out = append(out, &i)
	}
	return out, rows.Err()
}
