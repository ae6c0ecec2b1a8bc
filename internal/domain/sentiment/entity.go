package sentiment

import (
	"time"

	"github.com/bryanwahyu/neurolink/internal/domain/ai"
)

type ID string

// Entry is a single sentiment observation, optionally tied to a region.
type Entry struct {
	ID         ID           `json:"id"`
	Text       string       `json:"text"`
	Sentiment  ai.Sentiment `json:"sentiment"`
	Confidence *float64     `json:"confidence,omitempty"`
	UserID     string       `json:"userId,omitempty"`
	Region     string       `json:"region"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// Counts value object
type Counts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
	Total    int `json:"total"`
}

// Add increments the bucket for s. Unknown values count as neutral.
func (c *Counts) Add(s ai.Sentiment, n int) {
	switch s {
	case ai.SentimentPositive:
		c.Positive += n
	case ai.SentimentNegative:
		c.Negative += n
	default:
		c.Neutral += n
	}
	c.Total += n
}

// RegionCount is the number of entries recorded for a region.
type RegionCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}
