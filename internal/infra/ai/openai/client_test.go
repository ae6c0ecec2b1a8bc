package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/neurolink/internal/domain/ai"
)

func chatServer(t *testing.T, status int, body string, seen *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "test",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]string{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	})
	return string(b)
}

func testRequest() ai.Request {
	return ai.Request{Kind: ai.TaskGenerate, System: "sys", User: "Task: x", Temperature: 0.2}
}

func TestNewClientNoProvider(t *testing.T) {
	c, err := NewClient(ai.ProviderNone, Settings{})
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ai.ErrNoProvider)
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(ai.ProviderPrimary, Settings{APIKey: "sk-1"})
	require.NoError(t, err)
	assert.Equal(t, DefaultPrimaryModel, c.Model())
	assert.Equal(t, ai.ProviderPrimary, c.Provider())

	c, err = NewClient(ai.ProviderSecondary, Settings{APIKey: "pplx-1"})
	require.NoError(t, err)
	assert.Equal(t, DefaultSecondaryModel, c.Model())
}

func TestCompletePrimary(t *testing.T) {
	var seen openai.ChatCompletionRequest
	srv := chatServer(t, http.StatusOK, completion(`{"language":"go"}`), &seen)

	c, err := NewClient(ai.ProviderPrimary, Settings{APIKey: "test-key", BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, `{"language":"go"}`, out)

	assert.Equal(t, DefaultPrimaryModel, seen.Model)
	require.Len(t, seen.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, seen.Messages[0].Role)
	assert.Equal(t, "sys", seen.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, seen.Messages[1].Role)
	assert.Equal(t, "Task: x", seen.Messages[1].Content)
	require.NotNil(t, seen.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, seen.ResponseFormat.Type)
	assert.Equal(t, defaultMaxTokens, seen.MaxTokens)
	assert.InDelta(t, 0.2, seen.Temperature, 1e-6)
}

func TestCompleteSecondary(t *testing.T) {
	var seen openai.ChatCompletionRequest
	srv := chatServer(t, http.StatusOK, completion("hello"), &seen)

	c, err := NewClient(ai.ProviderSecondary, Settings{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, DefaultSecondaryModel, seen.Model)
	assert.Nil(t, seen.ResponseFormat)
}

func TestCompleteReasoningModel(t *testing.T) {
	var seen openai.ChatCompletionRequest
	srv := chatServer(t, http.StatusOK, completion("{}"), &seen)

	c, err := NewClient(ai.ProviderPrimary, Settings{APIKey: "test-key", BaseURL: srv.URL, Model: "o3-mini", MaxTokens: 512})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, 512, seen.MaxCompletionTokens)
	assert.Zero(t, seen.MaxTokens)
	assert.Zero(t, seen.Temperature)
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantQuota bool
	}{
		{"server error", http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`, false},
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"bad key","type":"invalid_request_error"}}`, false},
		{"quota", http.StatusTooManyRequests, `{"error":{"message":"slow down","type":"rate_limit_error"}}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := chatServer(t, tt.status, tt.body, nil)
			c, err := NewClient(ai.ProviderPrimary, Settings{APIKey: "test-key", BaseURL: srv.URL})
			require.NoError(t, err)

			out, err := c.Complete(context.Background(), testRequest())
			assert.Empty(t, out)
			assert.ErrorIs(t, err, ai.ErrTransport)
			assert.Equal(t, tt.wantQuota, errors.Is(err, ai.ErrQuotaExceeded))
		})
	}
}

func TestCompleteNoChoices(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","choices":[]}`, nil)
	c, err := NewClient(ai.ProviderPrimary, Settings{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), testRequest())
	assert.ErrorIs(t, err, ai.ErrEmptyResponse)
}

func TestCompleteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(ai.ProviderPrimary, Settings{APIKey: "test-key", BaseURL: url, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), testRequest())
	assert.ErrorIs(t, err, ai.ErrTransport)
}
