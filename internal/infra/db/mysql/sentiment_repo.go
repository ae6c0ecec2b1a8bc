package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/bryanwahyu/neurolink/internal/domain/ai"
	domain "github.com/bryanwahyu/neurolink/internal/domain/sentiment"
)

type SentimentRepository struct {
	db *sql.DB
}

func NewSentimentRepository(db *sql.DB) *SentimentRepository { return &SentimentRepository{db: db} }

func (r *SentimentRepository) Save(ctx context.Context, e *domain.Entry) error {
	const q = `
INSERT INTO neuro_sentiments
  (id, text, sentiment, confidence, user_id, region, created_at)
VALUES (?,?,?,?,?,?,?)
`
	var conf sql.NullFloat64
	if e.Confidence != nil {
		conf = sql.NullFloat64{Float64: *e.Confidence, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, q, e.ID, e.Text, string(e.Sentiment), conf, e.UserID, e.Region, nowIfZero(e.CreatedAt))
	return err
}

func (r *SentimentRepository) Feed(ctx context.Context, limit int) ([]*domain.Entry, error) {
	const q = `
SELECT id, text, sentiment, confidence, user_id, region, created_at
FROM neuro_sentiments
ORDER BY created_at DESC, id DESC
LIMIT ?;`
	rows, err := r.db.QueryContext(ctx, q, limitOrDefault(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Entry
	for rows.Next() {
		var (
			e       domain.Entry
			sent    string
			conf    sql.NullFloat64
			created time.Time
		)
		if err := rows.Scan(&e.ID, &e.Text, &sent, &conf, &e.UserID, &e.Region, &created); err != nil {
			return nil, err
		}
		e.Sentiment, _ = ai.ParseSentiment(sent)
		if conf.Valid {
			v := conf.Float64
			e.Confidence = &v
		}
		e.CreatedAt = created
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Counts aggregates entries per sentiment.
func (r *SentimentRepository) Counts(ctx context.Context) (domain.Counts, error) {
	const q = `SELECT sentiment, COUNT(*) FROM neuro_sentiments GROUP BY sentiment;`
	var c domain.Counts
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return c, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			sent string
			n    int
		)
		if err := rows.Scan(&sent, &n); err != nil {
			return c, err
		}
		s, _ := ai.ParseSentiment(sent)
		c.Add(s, n)
	}
	return c, rows.Err()
}

func (r *SentimentRepository) Regions(ctx context.Context) ([]domain.RegionCount, error) {
	const q = `
SELECT region, COUNT(*) AS total
FROM neuro_sentiments
WHERE region <> ''
GROUP BY region
ORDER BY total DESC, region ASC;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.RegionCount{}
	for rows.Next() {
		var rc domain.RegionCount
		if err := rows.Scan(&rc.Name, &rc.Value); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}
