package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/neurolink/internal/domain/ai"
	"github.com/bryanwahyu/neurolink/internal/domain/analysis"
	"github.com/bryanwahyu/neurolink/internal/domain/incident"
	"github.com/bryanwahyu/neurolink/internal/domain/sentiment"
)

var ts = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func TestAnalysisRepositorySave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO neuro_analyses").
		WithArgs("a1", "u1", "Jakarta", "hello", "text",
			`{"summary":"s","sentiment":"positive","suggestion":"g"}`, "openai", false, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewAnalysisRepository(db)
	err = repo.Save(context.Background(), &analysis.Analysis{
		ID: "a1", UserID: "u1", Region: "Jakarta", InputText: "hello", Category: "text",
		Result:   ai.AnalysisResult{Summary: "s", Sentiment: ai.SentimentPositive, Suggestion: "g"},
		Provider: "openai", CreatedAt: ts,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRepositoryLatestByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAnalysisRepository(db)

	cols := []string{"id", "user_id", "region", "input_text", "category", "result_json", "provider", "is_mock", "created_at"}
	mock.ExpectQuery("FROM neuro_analyses").WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("a9", "u1", "", "sad day", "text", `{"summary":"s","sentiment":"negative","suggestion":"g"}`, "mock", true, ts))
	mock.ExpectQuery("FROM neuro_analyses").WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows(cols))

	a, err := repo.LatestByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, analysis.ID("a9"), a.ID)
	assert.Equal(t, ai.SentimentNegative, a.Result.Sentiment)
	assert.True(t, a.IsMock)

	a, err = repo.LatestByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, a)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSentimentRepositoryCountsAndRegions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewSentimentRepository(db)

	mock.ExpectQuery("SELECT sentiment, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"sentiment", "count"}).
			AddRow("positive", 3).AddRow("negative", 1).AddRow("NEUTRAL", 2))
	mock.ExpectQuery("GROUP BY region").
		WillReturnRows(sqlmock.NewRows([]string{"region", "total"}).AddRow("Jakarta", 4).AddRow("Bali", 2))

	c, err := repo.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sentiment.Counts{Positive: 3, Neutral: 2, Negative: 1, Total: 6}, c)

	regions, err := repo.Regions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []sentiment.RegionCount{{Name: "Jakarta", Value: 4}, {Name: "Bali", Value: 2}}, regions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSentimentRepositoryFeed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM neuro_sentiments").WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "sentiment", "confidence", "user_id", "region", "created_at"}).
			AddRow("s1", "ok", "positive", 0.8, "", "Bali", ts).
			AddRow("s2", "meh", "bogus", nil, "u", "", ts))

	feed, err := NewSentimentRepository(db).Feed(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	require.NotNil(t, feed[0].Confidence)
	assert.InDelta(t, 0.8, *feed[0].Confidence, 1e-9)
	assert.Nil(t, feed[1].Confidence)
	assert.Equal(t, ai.SentimentNeutral, feed[1].Sentiment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncidentRepositorySave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO neuro_incidents").
		WithArgs("openai", "analyze", "transport", "-", `{"raw":"not json"}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))

	inc := &incident.Incident{Provider: "openai", Task: "analyze", Phase: incident.PhaseTransport, DetailsJSON: "not json"}
	require.NoError(t, NewIncidentRepository(db).Save(context.Background(), inc))
	assert.Equal(t, int64(42), inc.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJSONOrEmpty(t *testing.T) {
	assert.Equal(t, "{}", jsonOrEmpty("  "))
	assert.Equal(t, `{"a":1}`, jsonOrEmpty(`{"a":1}`))
	assert.Equal(t, `{"raw":"x"}`, jsonOrEmpty("x"))
}
