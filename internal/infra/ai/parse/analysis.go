package parse

import (
	"fmt"
	"math"
	"strings"

	"github.com/bryanwahyu/neurolink/internal/domain/ai"
)

// MaxRawPrefix bounds the raw text copied into a repaired result.
const MaxRawPrefix = 250

const (
	NoSummary          = "No summary available."
	NoSuggestion       = "No suggestion available."
	UnparsedSuggestion = "Couldn't parse structured output, showing raw response."
)

// analysisKeys marks an object as an analysis answer.
var analysisKeys = []string{"summary", "sentiment", "suggestion", "advice", "confidence", "confidenceScore", "confidence_score"}

// ParseAnalysis normalizes raw provider text into an AnalysisResult.
func ParseAnalysis(raw string) (ai.AnalysisResult, error) {
	obj, err := decodeObject(raw, analysisKeys...)
	if err != nil {
		return analysisFromRaw(raw), err
	}

	var missing []string
	res := ai.AnalysisResult{
		Summary:    strings.TrimSpace(str(obj, "summary")),
		Suggestion: strings.TrimSpace(str(obj, "suggestion", "advice")),
	}
	if res.Summary == "" {
		res.Summary = NoSummary
		missing = append(missing, "summary")
	}
	if res.Suggestion == "" {
		res.Suggestion = NoSuggestion
		missing = append(missing, "suggestion")
	}
	sentiment, ok := ai.ParseSentiment(str(obj, "sentiment"))
	if !ok {
		missing = append(missing, "sentiment")
	}
	res.Sentiment = sentiment

	if c, ok := num(obj, "confidence", "confidenceScore", "confidence_score"); ok {
		c = clamp01(c)
		res.Confidence = &c
	}

	if len(missing) > 0 {
		return res, fmt.Errorf("%w: repaired fields %s", ai.ErrMalformedResponse, strings.Join(missing, ", "))
	}
	return res, nil
}

func analysisFromRaw(raw string) ai.AnalysisResult {
	summary := Truncate(raw, MaxRawPrefix)
	if strings.TrimSpace(summary) == "" {
		summary = NoSummary
	}
	return ai.AnalysisResult{
		Summary:    summary,
		Sentiment:  ai.SentimentNeutral,
		Suggestion: UnparsedSuggestion,
	}
}

func clamp01(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
