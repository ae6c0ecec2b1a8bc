package ai

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/neurolink/internal/domain/ai"
	"github.com/bryanwahyu/neurolink/internal/domain/analysis"
	"github.com/bryanwahyu/neurolink/internal/domain/incident"
	"github.com/bryanwahyu/neurolink/internal/domain/intent"
	"github.com/bryanwahyu/neurolink/internal/domain/sentiment"
	"github.com/bryanwahyu/neurolink/internal/infra/storage"
)

// Store groups the repositories the use cases persist to.
type Store struct {
	Analyses   analysis.Repository
	Sentiments sentiment.Repository
	Incidents  incident.Repository
}

var ErrNoStore = errors.New("no repository configured")

const (
	defaultRegion   = "Unknown"
	uncategorized   = "Uncategorized"
	insightsWindow  = 1000
	recentInsights  = 5
	defaultIncident = 20
)

//
// ==== USE CASES ====
//

// AnalyzeCommand untuk endpoint analyze
type AnalyzeCommand struct {
	InputText string
	UserID    string
	Region    string
}

// AnalyzeAndStore analyzes the text and stores the analysis plus a sentiment entry.
func (s *Service) AnalyzeAndStore(ctx context.Context, cmd AnalyzeCommand) (*analysis.Analysis, error) {
	out := s.Analyze(ctx, cmd.InputText)

	region := strings.TrimSpace(cmd.Region)
	if region == "" {
		region = defaultRegion
	}
	now := s.clock.Now()
	a := &analysis.Analysis{
		ID:        analysis.ID(uuid.NewString()),
		UserID:    cmd.UserID,
		Region:    region,
		InputText: cmd.InputText,
		Category:  string(intent.DetectLanguage(cmd.InputText)),
		Result:    out.Payload,
		Provider:  out.Provider.Vendor(),
		IsMock:    out.Synthetic,
		CreatedAt: now,
	}
	if s.store.Analyses == nil {
		return a, nil
	}
	if err := s.store.Analyses.Save(ctx, a); err != nil {
		return nil, err
	}
	if s.store.Sentiments != nil {
		// same id as the analysis so insights can skip the duplicate
		e := &sentiment.Entry{
			ID:         sentiment.ID(a.ID),
			Text:       cmd.InputText,
			Sentiment:  out.Payload.Sentiment,
			Confidence: out.Payload.Confidence,
			UserID:     cmd.UserID,
			Region:     region,
			CreatedAt:  now,
		}
		if err := s.store.Sentiments.Save(ctx, e); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// GenerateResult is a generation plus display metadata.
type GenerateResult struct {
	ai.Outcome[ai.CodeGenResult]
	DisplayLanguage string
	ArtifactURL     string
}

// Generate runs GenerateCode, tags the display language and archives real output.
// Archive failures are logged only.
func (s *Service) Generate(ctx context.Context, task string) GenerateResult {
	out := s.GenerateCode(ctx, task)
	res := GenerateResult{Outcome: out, DisplayLanguage: out.Payload.Language}
	if !out.Payload.Empty() {
		res.DisplayLanguage = string(intent.DetectLanguage(out.Payload.Content()))
	}

	if s.artifacts == nil || out.Synthetic || out.Payload.Empty() {
		return res
	}
	key := storage.ArtifactKey(uuid.NewString(), out.Payload.Language, s.clock.Now())
	url, err := s.artifacts.Put(ctx, key, storage.ContentTypeFor(out.Payload.Language), []byte(out.Payload.Content()))
	if err != nil {
		s.log.Warn("archive generated code", zap.String("key", key), zap.Error(err))
		return res
	}
	res.ArtifactURL = url
	return res
}

// Latest returns the sentiment of the user's newest analysis, neutral when none.
func (s *Service) Latest(ctx context.Context, userID string) (ai.Sentiment, error) {
	if s.store.Analyses == nil {
		return ai.SentimentNeutral, nil
	}
	a, err := s.store.Analyses.LatestByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if a == nil || a.Result.Sentiment == "" {
		return ai.SentimentNeutral, nil
	}
	return a.Result.Sentiment, nil
}

// Incidents lists the newest degraded calls.
func (s *Service) Incidents(ctx context.Context, limit int) ([]*incident.Incident, error) {
	if s.store.Incidents == nil {
		return nil, ErrNoStore
	}
	if limit <= 0 {
		limit = defaultIncident
	}
	return s.store.Incidents.ListRecent(ctx, limit)
}

type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type DailyScore struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

type RecentAnalysis struct {
	Text      string       `json:"text"`
	Sentiment ai.Sentiment `json:"sentiment"`
}

type SentimentTotals struct {
	Positive int `json:"Positive"`
	Neutral  int `json:"Neutral"`
	Negative int `json:"Negative"`
}

// Insights aggregates analyses and standalone sentiment entries.
type Insights struct {
	Total             int              `json:"total"`
	Sentiments        SentimentTotals  `json:"sentiments"`
	Categories        []CategoryCount  `json:"categories"`
	SentimentOverTime []DailyScore     `json:"sentimentOverTime"`
	RecentAnalyses    []RecentAnalysis `json:"recentAnalyses"`
}

type insightItem struct {
	text       string
	sentiment  ai.Sentiment
	confidence *float64
	category   string
	date       string
}

// Insights builds dashboard totals over the most recent records.
func (s *Service) Insights(ctx context.Context) (Insights, error) {
	var items []insightItem
	seen := map[string]bool{}

	if s.store.Analyses != nil {
		list, err := s.store.Analyses.List(ctx, insightsWindow)
		if err != nil {
			return Insights{}, err
		}
		for _, a := range list {
			seen[string(a.ID)] = true
			cat := a.Category
			if cat == "" {
				cat = uncategorized
			}
			items = append(items, insightItem{
				text:       a.InputText,
				sentiment:  a.Result.Sentiment,
				confidence: a.Result.Confidence,
				category:   cat,
				date:       a.CreatedAt.UTC().Format("2006-01-02"),
			})
		}
	}
	if s.store.Sentiments != nil {
		feed, err := s.store.Sentiments.Feed(ctx, insightsWindow)
		if err != nil {
			return Insights{}, err
		}
		for _, e := range feed {
			if seen[string(e.ID)] {
				continue
			}
			items = append(items, insightItem{
				text:      e.Text,
				sentiment: e.Sentiment,
				category:  uncategorized,
				date:      e.CreatedAt.UTC().Format("2006-01-02"),
			})
		}
	}
	return aggregate(items), nil
}

func aggregate(items []insightItem) Insights {
	out := Insights{
		Total:             len(items),
		Categories:        []CategoryCount{},
		SentimentOverTime: []DailyScore{},
		RecentAnalyses:    []RecentAnalysis{},
	}
	cats := map[string]int{}
	scores := map[string][]float64{}
	for _, it := range items {
		sent, _ := ai.ParseSentiment(string(it.sentiment))
		switch sent {
		case ai.SentimentPositive:
			out.Sentiments.Positive++
		case ai.SentimentNegative:
			out.Sentiments.Negative++
		default:
			out.Sentiments.Neutral++
		}
		cats[it.category]++
		scores[it.date] = append(scores[it.date], score(sent, it.confidence))
	}

	for name, v := range cats {
		out.Categories = append(out.Categories, CategoryCount{Name: name, Value: v})
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		if out.Categories[i].Value != out.Categories[j].Value {
			return out.Categories[i].Value > out.Categories[j].Value
		}
		return out.Categories[i].Name < out.Categories[j].Name
	})

	for date, list := range scores {
		var sum float64
		for _, v := range list {
			sum += v
		}
		out.SentimentOverTime = append(out.SentimentOverTime, DailyScore{Date: date, Score: sum / float64(len(list))})
	}
	sort.Slice(out.SentimentOverTime, func(i, j int) bool {
		return out.SentimentOverTime[i].Date < out.SentimentOverTime[j].Date
	})

	// items come newest first per source; analyses lead
	for i := 0; i < len(items) && i < recentInsights; i++ {
		out.RecentAnalyses = append(out.RecentAnalyses, RecentAnalysis{Text: items[i].text, Sentiment: items[i].sentiment})
	}
	return out
}

// score uses the confidence when present, else a fixed score per sentiment.
func score(s ai.Sentiment, confidence *float64) float64 {
	if confidence != nil && *confidence > 0 {
		return *confidence
	}
	switch s {
	case ai.SentimentPositive:
		return 0.9
	case ai.SentimentNegative:
		return 0.2
	default:
		return 0.5
	}
}
