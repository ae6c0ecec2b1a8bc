// Package memory keeps records in process memory. It backs the service when no
// database is configured and is used by tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bryanwahyu/neurolink/internal/domain/analysis"
	"github.com/bryanwahyu/neurolink/internal/domain/incident"
	"github.com/bryanwahyu/neurolink/internal/domain/sentiment"
)

const defaultLimit = 20

func normLimit(limit, n int) int {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > n {
		limit = n
	}
	return limit
}

// AnalysisRepository is an append-only, newest-first analysis log.
type AnalysisRepository struct {
	mu   sync.RWMutex
	rows []analysis.Analysis
}

func NewAnalysisRepository() *AnalysisRepository { return &AnalysisRepository{} }

func (r *AnalysisRepository) Save(_ context.Context, a *analysis.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *a)
	return nil
}

func (r *AnalysisRepository) LatestByUser(_ context.Context, userID string) (*analysis.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *analysis.Analysis
	for i := range r.rows {
		a := r.rows[i]
		if a.UserID != userID {
			continue
		}
		if latest == nil || !a.CreatedAt.Before(latest.CreatedAt) {
			latest = &a
		}
	}
	return latest, nil
}

func (r *AnalysisRepository) List(_ context.Context, limit int) ([]*analysis.Analysis, error) {
	r.mu.RLock()
	out := make([]*analysis.Analysis, 0, len(r.rows))
	for i := range r.rows {
		a := r.rows[i]
		out = append(out, &a)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out[:normLimit(limit, len(out))], nil
}

// SentimentRepository stores sentiment entries.
type SentimentRepository struct {
	mu   sync.RWMutex
	rows []sentiment.Entry
}

func NewSentimentRepository() *SentimentRepository { return &SentimentRepository{} }

func (r *SentimentRepository) Save(_ context.Context, e *sentiment.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *e)
	return nil
}

func (r *SentimentRepository) Feed(_ context.Context, limit int) ([]*sentiment.Entry, error) {
	r.mu.RLock()
	out := make([]*sentiment.Entry, 0, len(r.rows))
	for i := range r.rows {
		e := r.rows[i]
		out = append(out, &e)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out[:normLimit(limit, len(out))], nil
}

func (r *SentimentRepository) Counts(_ context.Context) (sentiment.Counts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var c sentiment.Counts
	for _, e := range r.rows {
		c.Add(e.Sentiment, 1)
	}
	return c, nil
}

func (r *SentimentRepository) Regions(_ context.Context) ([]sentiment.RegionCount, error) {
	r.mu.RLock()
	counts := map[string]int{}
	for _, e := range r.rows {
		if e.Region == "" {
			continue
		}
		counts[e.Region]++
	}
	r.mu.RUnlock()

	out := make([]sentiment.RegionCount, 0, len(counts))
	for name, v := range counts {
		out = append(out, sentiment.RegionCount{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// IncidentRepository stores degraded-call incidents.
type IncidentRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   []incident.Incident
}

func NewIncidentRepository() *IncidentRepository { return &IncidentRepository{} }

func (r *IncidentRepository) Save(_ context.Context, i *incident.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	i.ID = r.nextID
	r.rows = append(r.rows, *i)
	return nil
}

func (r *IncidentRepository) ListRecent(_ context.Context, limit int) ([]*incident.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := normLimit(limit, len(r.rows))
	out := make([]*incident.Incident, 0, n)
	for i := len(r.rows) - 1; i >= 0 && len(out) < n; i-- {
		inc := r.rows[i]
		out = append(out, &inc)
	}
	return out, nil
}
