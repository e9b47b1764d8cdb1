// Package openai implements the llm Provider contract on top of the OpenAI
// chat completions API and compatible endpoints.
package openai

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"

	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
)

const (
	// DefaultModel is used when the configuration names no model
	DefaultModel = "gpt-4.1"
	// DefaultMaxTokens is used when the configuration sets no token limit
	DefaultMaxTokens = 8192
)

// Provider is an OpenAI client bound to one model
type Provider struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewProvider creates a provider from explicit configuration. It fails with a
// *llmtypes.ConfigError when no API key is configured.
func NewProvider(config llmtypes.Config) (*Provider, error) {
	if config.OpenAI.APIKey == "" {
		return nil, &llmtypes.ConfigError{
			Provider: llmtypes.ProviderOpenAI,
			Missing:  []string{"openai.api_key"},
			Reason:   "set OPENAI_API_KEY or openai.api_key in the config file",
		}
	}

	clientConfig := openai.DefaultConfig(config.OpenAI.APIKey)
	if config.OpenAI.BaseURL != "" {
		clientConfig.BaseURL = config.OpenAI.BaseURL
	}

	model := config.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	return &Provider{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Name implements llmtypes.Provider
func (p *Provider) Name() string {
	return llmtypes.ProviderOpenAI
}

// Model implements llmtypes.Provider
func (p *Provider) Model() string {
	return p.model
}

// Complete sends the system and user messages and returns the first choice
func (p *Provider) Complete(ctx context.Context, req llmtypes.Request) (llmtypes.Response, error) {
	maxTokens := p.maxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.model,
		Messages:  messages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return llmtypes.Response{}, errors.Wrap(err, "error sending message to OpenAI")
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return llmtypes.Response{}, errors.New("openai response contained no text")
	}

	return llmtypes.Response{
		Text: resp.Choices[0].Message.Content,
		Usage: llmtypes.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}
