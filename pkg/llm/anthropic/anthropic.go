// Package anthropic implements the llm Provider contract on top of the
// Anthropic Messages API.
package anthropic

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"

	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
)

const (
	// DefaultModel is used when the configuration names no model
	DefaultModel = "claude-sonnet-4-5-20250929"
	// DefaultMaxTokens is used when the configuration sets no token limit
	DefaultMaxTokens = 8192
)

// Provider is an Anthropic client bound to one model
type Provider struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewProvider creates a provider from explicit configuration. It fails with a
// *llmtypes.ConfigError when no API key is configured.
func NewProvider(config llmtypes.Config, opts ...option.RequestOption) (*Provider, error) {
	if config.Anthropic.APIKey == "" {
		return nil, &llmtypes.ConfigError{
			Provider: llmtypes.ProviderAnthropic,
			Missing:  []string{"anthropic.api_key"},
			Reason:   "set ANTHROPIC_API_KEY or anthropic.api_key in the config file",
		}
	}

	model := config.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(config.Anthropic.APIKey)}
	if config.Anthropic.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(config.Anthropic.BaseURL))
	}
	clientOpts = append(clientOpts, opts...)

	return &Provider{
		client:    anthropic.NewClient(clientOpts...),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Name implements llmtypes.Provider
func (p *Provider) Name() string {
	return llmtypes.ProviderAnthropic
}

// Model implements llmtypes.Provider
func (p *Provider) Model() string {
	return p.model
}

// Complete sends one user message and returns the concatenated text blocks of
// the answer
func (p *Provider) Complete(ctx context.Context, req llmtypes.Request) (llmtypes.Response, error) {
	maxTokens := p.maxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return llmtypes.Response{}, errors.Wrap(err, "error sending message to Anthropic")
	}

	var text strings.Builder
	for _, block := range message.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(variant.Text)
		}
	}
	if text.Len() == 0 {
		return llmtypes.Response{}, errors.Errorf("anthropic response contained no text (stop reason: %s)", message.StopReason)
	}

	return llmtypes.Response{
		Text: text.String(),
		Usage: llmtypes.Usage{
			InputTokens:  int(message.Usage.InputTokens),
			OutputTokens: int(message.Usage.OutputTokens),
		},
	}, nil
}
