package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
)

func TestNewProvider_MissingAPIKey(t *testing.T) {
	_, err := NewProvider(llmtypes.Config{Provider: llmtypes.ProviderOpenAI})

	var cfgErr *llmtypes.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, llmtypes.ProviderOpenAI, cfgErr.Provider)
}

func TestComplete(t *testing.T) {
	var captured struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4.1-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "[\"Meet the team\"]"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 20, "completion_tokens": 4, "total_tokens": 24}
		}`))
	}))
	defer server.Close()

	p, err := NewProvider(llmtypes.Config{
		Model:  "gpt-4.1-mini",
		OpenAI: llmtypes.OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL + "/v1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1-mini", p.Model())
	assert.Equal(t, llmtypes.ProviderOpenAI, p.Name())

	resp, err := p.Complete(context.Background(), llmtypes.Request{
		SystemPrompt: "Generate onboarding tasks",
		Prompt:       "Data Analyst",
		MaxTokens:    256,
	})
	require.NoError(t, err)

	assert.Equal(t, `["Meet the team"]`, resp.Text)
	assert.Equal(t, 20, resp.Usage.InputTokens)
	assert.Equal(t, 4, resp.Usage.OutputTokens)

	assert.Equal(t, "gpt-4.1-mini", captured.Model)
	assert.Equal(t, 256, captured.MaxTokens)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "Generate onboarding tasks", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "Data Analyst", captured.Messages[1].Content)
}

func TestComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4.1","choices":[]}`))
	}))
	defer server.Close()

	p, err := NewProvider(llmtypes.Config{OpenAI: llmtypes.OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL + "/v1"}})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), llmtypes.Request{Prompt: "hi"})
	assert.Error(t, err)
}

func TestComplete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	p, err := NewProvider(llmtypes.Config{OpenAI: llmtypes.OpenAIConfig{APIKey: "sk-bad", BaseURL: server.URL + "/v1"}})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), llmtypes.Request{Prompt: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error sending message to OpenAI")
}
