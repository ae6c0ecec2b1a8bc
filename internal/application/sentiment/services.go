package sentiment

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/bryanwahyu/neurolink/internal/application"
	"github.com/bryanwahyu/neurolink/internal/domain/ai"
	domain "github.com/bryanwahyu/neurolink/internal/domain/sentiment"
)

const (
	DefaultFeedSize = 10

	SummaryActive = "AI detects increasing positive sentiment this week with low anomaly risk."
	SummaryNoData = "Not enough data to generate insights."
)

var ErrInvalidSentiment = errors.New("sentiment must be positive, neutral or negative")

// Service implements use-cases untuk sentiment feed
type Service struct {
	Repo  domain.Repository
	Clock application.Clock
}

func NewService(repo domain.Repository, clock application.Clock) *Service {
	if clock == nil {
		clock = application.SystemClock{}
	}
	return &Service{Repo: repo, Clock: clock}
}

// AddCommand untuk tambah entry manual
type AddCommand struct {
	Text      string
	Sentiment string
	Region    string
}

func (s *Service) Add(ctx context.Context, cmd AddCommand) (*domain.Entry, error) {
	sent, ok := ai.ParseSentiment(cmd.Sentiment)
	if !ok {
		return nil, ErrInvalidSentiment
	}
	e := &domain.Entry{
		ID:        domain.ID(uuid.NewString()),
		Text:      cmd.Text,
		Sentiment: sent,
		Region:    strings.TrimSpace(cmd.Region),
		CreatedAt: s.Clock.Now(),
	}
	if err := s.Repo.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Feed returns the newest entries, DefaultFeedSize when limit <= 0.
func (s *Service) Feed(ctx context.Context, limit int) ([]*domain.Entry, error) {
	if limit <= 0 {
		limit = DefaultFeedSize
	}
	out, err := s.Repo.Feed(ctx, limit)
	if out == nil && err == nil {
		out = []*domain.Entry{}
	}
	return out, err
}

// Stats is the dashboard summary. Percentages have one decimal.
type Stats struct {
	PositivePercent  float64 `json:"positivePercent"`
	NeutralPercent   float64 `json:"neutralPercent"`
	NegativePercent  float64 `json:"negativePercent"`
	RegionsMonitored int     `json:"regionsMonitored"`
	AISummary        string  `json:"aiSummary"`
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	c, err := s.Repo.Counts(ctx)
	if err != nil {
		return Stats{}, err
	}
	if c.Total == 0 {
		return Stats{AISummary: SummaryNoData}, nil
	}
	regions, err := s.Repo.Regions(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		PositivePercent:  percent(c.Positive, c.Total),
		NeutralPercent:   percent(c.Neutral, c.Total),
		NegativePercent:  percent(c.Negative, c.Total),
		RegionsMonitored: len(regions),
		AISummary:        SummaryActive,
	}, nil
}

func (s *Service) Regions(ctx context.Context) ([]domain.RegionCount, error) {
	return s.Repo.Regions(ctx)
}

func percent(n, total int) float64 {
	return math.Round(float64(n)/float64(total)*1000) / 10
}
