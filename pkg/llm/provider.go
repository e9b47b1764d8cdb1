// Package llm builds model providers from configuration.
package llm

import (
	"context"

	"github.com/jingkaihe/hrskills/pkg/llm/anthropic"
	"github.com/jingkaihe/hrskills/pkg/llm/google"
	"github.com/jingkaihe/hrskills/pkg/llm/openai"
	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
)

// NewProvider returns the provider selected by config.Provider. An empty
// provider selects Anthropic.
func NewProvider(ctx context.Context, config llmtypes.Config) (llmtypes.Provider, error) {
	var (
		provider llmtypes.Provider
		err      error
	)

	switch config.Provider {
	case llmtypes.ProviderAnthropic, "":
		provider, err = anthropic.NewProvider(config)
	case llmtypes.ProviderOpenAI:
		provider, err = openai.NewProvider(config)
	case llmtypes.ProviderGoogle:
		provider, err = google.NewProvider(ctx, config)
	default:
		err = &llmtypes.ConfigError{
			Provider: config.Provider,
			Reason:   "unsupported provider, expected one of anthropic, openai, google",
		}
	}
	if err != nil {
		return nil, err
	}
	return provider, nil
}
