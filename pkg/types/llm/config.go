// Package llm defines the provider-neutral types shared by the model clients
// and the model-backed functions built on top of them.
package llm

import (
	"fmt"
	"strings"
)

// Supported provider names
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGoogle    = "google"
)

// Config holds the configuration for the LLM client
type Config struct {
	Provider  string `mapstructure:"provider" json:"provider" yaml:"provider"`
	Model     string `mapstructure:"model" json:"model" yaml:"model"`
	MaxTokens int    `mapstructure:"max_tokens" json:"max_tokens" yaml:"max_tokens"`

	// Aliases maps short model names to provider model identifiers
	Aliases map[string]string `mapstructure:"aliases" json:"aliases,omitempty" yaml:"aliases,omitempty"`
	// Profiles are named overlays applied on top of the base configuration
	Profiles map[string]ProfileConfig `mapstructure:"profiles" json:"profiles,omitempty" yaml:"profiles,omitempty"`

	Anthropic AnthropicConfig `mapstructure:"anthropic" json:"anthropic" yaml:"anthropic"`
	OpenAI    OpenAIConfig    `mapstructure:"openai" json:"openai" yaml:"openai"`
	Google    GoogleConfig    `mapstructure:"google" json:"google" yaml:"google"`
}

// ProfileConfig is a free-form set of config overrides keyed the same way as Config
type ProfileConfig map[string]any

// AnthropicConfig holds the Anthropic specific settings
type AnthropicConfig struct {
	APIKey  string `mapstructure:"api_key" json:"-" yaml:"-"`
	BaseURL string `mapstructure:"base_url" json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// OpenAIConfig holds the OpenAI (and OpenAI compatible) settings
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key" json:"-" yaml:"-"`
	BaseURL string `mapstructure:"base_url" json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// GoogleConfig holds the Gemini API settings
type GoogleConfig struct {
	APIKey  string `mapstructure:"api_key" json:"-" yaml:"-"`
	BaseURL string `mapstructure:"base_url" json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// ConfigError reports provider configuration that must be present before a
// client can be constructed. It is never retryable.
type ConfigError struct {
	Provider string
	Missing  []string
	Reason   string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.Provider != "" {
		fmt.Fprintf(&b, "%s: ", e.Provider)
	}
	b.WriteString("invalid provider configuration")
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing %s", strings.Join(e.Missing, ", "))
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	return b.String()
}
