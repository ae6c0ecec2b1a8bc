package ai

import (
	"fmt"
	"math/rand/v2"

	"github.com/bryanwahyu/neurolink/internal/domain/ai"
)

const (
	mockSummaryPrefixLen = 60
	mockSuggestion       = "Try reflecting on your input and taking one small step forward."
	mockLanguage         = "unknown"
)

// Rand is the random source used for synthetic sentiment.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// globalRand uses the package-level source, which is safe for concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Synthesizer builds synthetic results when no real answer is available.
// It never fails.
type Synthesizer struct {
	Rand Rand
}

func NewSynthesizer(r Rand) Synthesizer {
	if r == nil {
		r = globalRand{}
	}
	return Synthesizer{Rand: r}
}

func (s Synthesizer) rng() Rand {
	if s.Rand == nil {
		return globalRand{}
	}
	return s.Rand
}

// Analysis returns a synthetic analysis of input.
func (s Synthesizer) Analysis(input string) ai.Outcome[ai.AnalysisResult] {
	sentiment := ai.Sentiments[s.rng().IntN(len(ai.Sentiments))]
	return ai.Outcome[ai.AnalysisResult]{
		Provider:  ai.ProviderNone,
		Synthetic: true,
		Payload: ai.AnalysisResult{
			Summary:    fmt.Sprintf("This is a simulated summary for: \"%s...\"", prefix(input, mockSummaryPrefixLen)),
			Sentiment:  sentiment,
			Suggestion: mockSuggestion,
		},
	}
}

// CodeGen returns an empty synthetic generation for prompt.
func (s Synthesizer) CodeGen(prompt string) ai.Outcome[ai.CodeGenResult] {
	return ai.Outcome[ai.CodeGenResult]{
		Provider:  ai.ProviderNone,
		Synthetic: true,
		Payload: ai.CodeGenResult{
			Language:      mockLanguage,
			PromptSummary: fmt.Sprintf("Mock output for: \"%s\"", prompt),
		},
	}
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
