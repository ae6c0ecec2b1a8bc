package sentiment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/neurolink/internal/application"
	"github.com/bryanwahyu/neurolink/internal/domain/ai"
	"github.com/bryanwahyu/neurolink/internal/infra/db/memory"
)

func newService() *Service {
	return NewService(memory.NewSentimentRepository(), application.FixedClock{At: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)})
}

func TestAddValidatesSentiment(t *testing.T) {
	svc := newService()

	e, err := svc.Add(context.Background(), AddCommand{Text: "nice", Sentiment: "Positive", Region: " Jakarta "})
	require.NoError(t, err)
	assert.Equal(t, ai.SentimentPositive, e.Sentiment)
	assert.Equal(t, "Jakarta", e.Region)
	assert.NotEmpty(t, e.ID)

	_, err = svc.Add(context.Background(), AddCommand{Text: "x", Sentiment: "angry"})
	assert.ErrorIs(t, err, ErrInvalidSentiment)
}

func TestFeedDefaultsToTen(t *testing.T) {
	svc := newService()
	empty, err := svc.Feed(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, empty)

	for i := 0; i < 15; i++ {
		_, err := svc.Add(context.Background(), AddCommand{Text: fmt.Sprint(i), Sentiment: "neutral"})
		require.NoError(t, err)
	}
	feed, err := svc.Feed(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, feed, DefaultFeedSize)
}

func TestStats(t *testing.T) {
	svc := newService()

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{AISummary: SummaryNoData}, st)

	for _, c := range []AddCommand{
		{Text: "a", Sentiment: "positive", Region: "Jakarta"},
		{Text: "b", Sentiment: "positive", Region: "Bali"},
		{Text: "c", Sentiment: "negative", Region: "Jakarta"},
	} {
		_, err := svc.Add(context.Background(), c)
		require.NoError(t, err)
	}

	st, err = svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 66.7, st.PositivePercent)
	assert.Equal(t, 0.0, st.NeutralPercent)
	assert.Equal(t, 33.3, st.NegativePercent)
	assert.Equal(t, 2, st.RegionsMonitored)
	assert.Equal(t, SummaryActive, st.AISummary)
}
