package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/neurolink/internal/application"
	"github.com/bryanwahyu/neurolink/internal/domain/ai"
	"github.com/bryanwahyu/neurolink/internal/domain/sentiment"
)

type mockArtifacts struct{ mock.Mock }

func (m *mockArtifacts) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}

func TestAnalyzeAndStorePersistsBothRecords(t *testing.T) {
	ctx := context.Background()
	c := &mockClient{}
	c.On("Complete", mock.Anything, mock.Anything).
		Return(`{"summary":"Upbeat.","sentiment":"positive","suggestion":"Keep going.","confidenceScore":0.8}`, nil)
	store := newStore()
	svc := newService(ai.ProviderPrimary, c, store)

	a, err := svc.AnalyzeAndStore(ctx, AnalyzeCommand{InputText: "def main(): print('hi')", UserID: "u1"})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Unknown", a.Region)
	assert.Equal(t, "python", a.Category)
	assert.Equal(t, "openai", a.Provider)
	assert.False(t, a.IsMock)
	assert.Equal(t, now, a.CreatedAt)

	feed, err := store.Sentiments.Feed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, sentiment.ID(a.ID), feed[0].ID)
	assert.Equal(t, ai.SentimentPositive, feed[0].Sentiment)
	require.NotNil(t, feed[0].Confidence)
	assert.InDelta(t, 0.8, *feed[0].Confidence, 1e-9)

	latest, err := svc.Latest(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, ai.SentimentPositive, latest)
}

func TestAnalyzeAndStoreSyntheticIsMock(t *testing.T) {
	store := newStore()
	svc := newService(ai.ProviderNone, nil, store)

	a, err := svc.AnalyzeAndStore(context.Background(), AnalyzeCommand{InputText: "hi", Region: "Bali"})
	require.NoError(t, err)
	assert.True(t, a.IsMock)
	assert.Equal(t, "mock", a.Provider)
	assert.Equal(t, "Bali", a.Region)
}

func TestLatestDefaultsToNeutral(t *testing.T) {
	svc := newService(ai.ProviderNone, nil, newStore())
	s, err := svc.Latest(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, ai.SentimentNeutral, s)

	bare := newService(ai.ProviderNone, nil, Store{})
	s, err = bare.Latest(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, ai.SentimentNeutral, s)
}

func TestGenerateArchivesProviderOutput(t *testing.T) {
	c := &mockClient{}
	c.On("Complete", mock.Anything, mock.Anything).
		Return(`{"language":"python","code":"import os\nprint(os.getcwd())"}`, nil)
	arts := &mockArtifacts{}
	arts.On("Put", mock.Anything, mock.MatchedBy(func(k string) bool {
		return strings.HasPrefix(k, "generated/2026/06/01/") && strings.HasSuffix(k, ".py")
	}), "text/plain; charset=utf-8", []byte("import os\nprint(os.getcwd())")).
		Return("http://minio/code/x.py", nil).Once()

	svc := NewService(Options{
		Provider:  ai.ProviderPrimary,
		Client:    c,
		Clock:     application.FixedClock{At: now},
		Artifacts: arts,
	})
	res := svc.Generate(context.Background(), "write a flask api")
	assert.False(t, res.Synthetic)
	assert.Equal(t, "python", res.Payload.Language)
	assert.Equal(t, "python", res.DisplayLanguage)
	assert.Equal(t, "http://minio/code/x.py", res.ArtifactURL)
	arts.AssertExpectations(t)
}

func TestGenerateArchiveFailureIsNotFatal(t *testing.T) {
	c := &mockClient{}
	c.On("Complete", mock.Anything, mock.Anything).Return(`{"language":"html","html":"<p>hi</p>"}`, nil)
	arts := &mockArtifacts{}
	arts.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket gone"))

	svc := NewService(Options{Provider: ai.ProviderPrimary, Client: c, Artifacts: arts})
	res := svc.Generate(context.Background(), "a landing page")
	assert.Equal(t, "<p>hi</p>", res.Payload.Markup)
	assert.Equal(t, "html", res.DisplayLanguage)
	assert.Empty(t, res.ArtifactURL)
}

func TestGenerateSyntheticSkipsArchive(t *testing.T) {
	arts := &mockArtifacts{}
	svc := NewService(Options{Artifacts: arts})

	res := svc.Generate(context.Background(), "anything")
	assert.True(t, res.Synthetic)
	assert.Equal(t, "unknown", res.DisplayLanguage)
	assert.Empty(t, res.ArtifactURL)
	arts.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInsights(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	day1 := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	clock := &stepClock{at: day1}
	svc := NewService(Options{Synthesizer: NewSynthesizer(fixedRand(0)), Clock: clock, Store: store})

	// synthetic positive analyses, scored 0.9 each
	_, err := svc.AnalyzeAndStore(ctx, AnalyzeCommand{InputText: "first"})
	require.NoError(t, err)
	clock.at = day2
	_, err = svc.AnalyzeAndStore(ctx, AnalyzeCommand{InputText: "second"})
	require.NoError(t, err)

	// standalone entry, scored 0.2
	require.NoError(t, store.Sentiments.Save(ctx, &sentiment.Entry{ID: "s1", Text: "bad", Sentiment: ai.SentimentNegative, CreatedAt: day2}))

	in, err := svc.Insights(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, in.Total)
	assert.Equal(t, SentimentTotals{Positive: 2, Negative: 1}, in.Sentiments)
	assert.Equal(t, []CategoryCount{{Name: "text", Value: 2}, {Name: "Uncategorized", Value: 1}}, in.Categories)
	require.Len(t, in.SentimentOverTime, 2)
	assert.Equal(t, "2026-06-01", in.SentimentOverTime[0].Date)
	assert.InDelta(t, 0.9, in.SentimentOverTime[0].Score, 1e-9)
	assert.Equal(t, "2026-06-02", in.SentimentOverTime[1].Date)
	assert.InDelta(t, 0.55, in.SentimentOverTime[1].Score, 1e-9)
	require.Len(t, in.RecentAnalyses, 3)
	assert.Equal(t, "second", in.RecentAnalyses[0].Text)
}

func TestInsightsEmpty(t *testing.T) {
	svc := newService(ai.ProviderNone, nil, Store{})
	in, err := svc.Insights(context.Background())
	require.NoError(t, err)
	assert.Zero(t, in.Total)
	assert.NotNil(t, in.Categories)
	assert.NotNil(t, in.RecentAnalyses)
}

func TestIncidentsWithoutStore(t *testing.T) {
	svc := newService(ai.ProviderNone, nil, Store{})
	_, err := svc.Incidents(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNoStore)
}

type stepClock struct{ at time.Time }

func (c *stepClock) Now() time.Time { return c.at }
