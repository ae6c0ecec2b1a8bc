package openai

import (
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/neurolink/internal/domain/ai"
)

const defaultMaxTokens = 2048

// chatRequest builds the provider-specific {model, messages} payload.
func (c *Client) chatRequest(req ai.Request) openai.ChatCompletionRequest {
	out := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	}
	// Perplexity rejects json_object; its prompt alone asks for JSON.
	if c.provider == ai.ProviderPrimary {
		out.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if isReasoningModel(c.model) {
		out.MaxCompletionTokens = c.maxTokens
	} else {
		out.MaxTokens = c.maxTokens
		out.Temperature = req.Temperature
	}
	return out
}

func isReasoningModel(model string) bool {
	for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, p) {
			return true
		}
	}
	return false
}
