package ai

import "strings"

// TaskKind selects the system instruction and the output shape.
type TaskKind string

const (
	TaskAnalyze  TaskKind = "analyze"
	TaskGenerate TaskKind = "generate"
)

// Sentiment enum
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Sentiments lists the allowed values in a stable order.
var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// ParseSentiment returns the enum value for s, case-insensitive.
func ParseSentiment(s string) (Sentiment, bool) {
	switch Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive, true
	case SentimentNeutral:
		return SentimentNeutral, true
	case SentimentNegative:
		return SentimentNegative, true
	}
	return SentimentNeutral, false
}

// Request is a provider-agnostic chat request built for one task.
// Hint is the expected output language; it is never sent to the provider.
type Request struct {
	Kind        TaskKind
	System      string
	User        string
	Input       string
	Hint        string
	Temperature float32
}

// AnalysisResult is the structured answer for free-text analysis.
type AnalysisResult struct {
	Summary    string    `json:"summary"`
	Sentiment  Sentiment `json:"sentiment"`
	Suggestion string    `json:"suggestion"`
	Confidence *float64  `json:"confidence,omitempty"`
}

// CodeGenResult is the structured answer for code/markup generation.
// Both Code and Markup empty is a valid degraded state.
type CodeGenResult struct {
	Language      string `json:"language"`
	Code          string `json:"code,omitempty"`
	Markup        string `json:"markup,omitempty"`
	PromptSummary string `json:"prompt,omitempty"`
}

// Empty reports whether the generation produced no output.
func (r CodeGenResult) Empty() bool {
	return r.Code == "" && r.Markup == ""
}

// Content returns whichever of Code/Markup is filled.
func (r CodeGenResult) Content() string {
	if r.Markup != "" {
		return r.Markup
	}
	return r.Code
}

type Payload interface {
	AnalysisResult | CodeGenResult
}

// Outcome carries the payload together with its provenance.
// Synthetic is true iff Provider is ProviderNone.
type Outcome[T Payload] struct {
	Provider  Provider `json:"provider"`
	Synthetic bool     `json:"isSynthetic"`
	Payload   T        `json:"payload"`
}
