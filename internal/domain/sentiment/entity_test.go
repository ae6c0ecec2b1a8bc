package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/neurolink/internal/domain/ai"
)

func TestCountsAdd(t *testing.T) {
	var c Counts
	c.Add(ai.SentimentPositive, 2)
	c.Add(ai.SentimentNegative, 1)
	c.Add(ai.SentimentNeutral, 1)
	c.Add(ai.Sentiment("weird"), 1)

	assert.Equal(t, Counts{Positive: 2, Neutral: 2, Negative: 1, Total: 5}, c)
}
