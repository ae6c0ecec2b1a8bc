package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/bryanwahyu/neurolink/internal/domain/incident"
)

type IncidentRepository struct{ db *sql.DB }

func NewIncidentRepository(db *sql.DB) *IncidentRepository { return &IncidentRepository{db: db} }

// Save inserts an incident; lib/pq has no LastInsertId so the id comes back via RETURNING.
func (r *IncidentRepository) Save(ctx context.Context, i *domain.Incident) error {
	const q = `
INSERT INTO neuro_incidents
  (provider, task, phase, message, details_json, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id`
	msg := i.Message
	if strings.TrimSpace(msg) == "" {
		msg = "-"
	}
	return r.db.QueryRowContext(ctx, q,
		stringOrDash(i.Provider), stringOrDash(i.Task), stringOrDash(string(i.Phase)),
		msg, jsonOrEmpty(i.DetailsJSON), nowIfZero(i.CreatedAt),
	).Scan(&i.ID)
}

func (r *IncidentRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Incident, error) {
	const q = `
SELECT id, provider, task, phase, message, details_json, created_at
FROM neuro_incidents
ORDER BY created_at DESC, id DESC
LIMIT $1;`
	rows, err := r.db.QueryContext(ctx, q, limitOrDefault(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Incident
	for rows.Next() {
		var (
			i       domain.Incident
			details []byte
			created time.Time
		)
		if err := rows.Scan(&i.ID, &i.Provider, &i.Task, &i.Phase, &i.Message, &details, &created); err != nil {
			return nil, err
		}
		i.DetailsJSON = string(details)
		i.CreatedAt = created
		out = append(out, &i)
	}
	return out, rows.Err()
}
