package prompt

import (
	"fmt"

	"github.com/bryanwahyu/neurolink/internal/domain/ai"
	"github.com/bryanwahyu/neurolink/internal/domain/intent"
)

const generateTemperature = 0.2

// Build turns a task and the raw user input into a provider-agnostic request.
// Input is not validated here; a bad input surfaces as a failed or repaired call.
func Build(kind ai.TaskKind, input string) ai.Request {
	switch kind {
	case ai.TaskGenerate:
		return ai.Request{
			Kind:        ai.TaskGenerate,
			System:      GenerateSystemPrompt(),
			User:        GenerateUserPrompt(input),
			Input:       input,
			Hint:        string(intent.GuessIntent(input)),
			Temperature: generateTemperature,
		}
	default:
		return ai.Request{
			Kind:   ai.TaskAnalyze,
			System: AnalyzeSystemPrompt(),
			User:   AnalyzeUserPrompt(input),
			Input:  input,
		}
	}
}

// AnalyzeUserPrompt wraps the text to analyze.
func AnalyzeUserPrompt(input string) string {
	return fmt.Sprintf("Analyze this text deeply: %s\nReturn ONLY valid JSON as per the structure above.", input)
}

// GenerateUserPrompt wraps the generation task.
func GenerateUserPrompt(task string) string {
	return "Task: " + task
}
