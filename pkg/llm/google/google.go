// Package google implements the llm Provider contract on top of the Gemini API.
package google

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
)

const (
	// DefaultModel is used when the configuration names no model
	DefaultModel = "gemini-2.5-pro"
	// DefaultMaxTokens is used when the configuration sets no token limit
	DefaultMaxTokens = 8192
)

// Provider is a Gemini client bound to one model
type Provider struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// NewProvider creates a provider from explicit configuration. It fails with a
// *llmtypes.ConfigError when no API key is configured.
func NewProvider(ctx context.Context, config llmtypes.Config) (*Provider, error) {
	if config.Google.APIKey == "" {
		return nil, &llmtypes.ConfigError{
			Provider: llmtypes.ProviderGoogle,
			Missing:  []string{"google.api_key"},
			Reason:   "set GOOGLE_API_KEY or google.api_key in the config file",
		}
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.Google.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.Google.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.Google.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Google GenAI client")
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
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Name implements llmtypes.Provider
func (p *Provider) Name() string {
	return llmtypes.ProviderGoogle
}

// Model implements llmtypes.Provider
func (p *Provider) Model() string {
	return p.model
}

// Complete generates content for a single user turn
func (p *Provider) Complete(ctx context.Context, req llmtypes.Request) (llmtypes.Response, error) {
	maxTokens := p.maxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), config)
	if err != nil {
		return llmtypes.Response{}, errors.Wrap(err, "error sending message to Google GenAI")
	}

	text := resp.Text()
	if text == "" {
		return llmtypes.Response{}, errors.New("google response contained no text")
	}

	var usage llmtypes.Usage
	if resp.UsageMetadata != nil {
		usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	return llmtypes.Response{Text: text, Usage: usage}, nil
}
