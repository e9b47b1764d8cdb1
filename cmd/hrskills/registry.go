package main

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/jingkaihe/hrskills/pkg/llm"
	"github.com/jingkaihe/hrskills/pkg/skills"
	"github.com/jingkaihe/hrskills/pkg/skills/hr"
	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
	skilltypes "github.com/jingkaihe/hrskills/pkg/types/skills"
)

// newRegistry registers every built-in skill against provider
func newRegistry(provider llmtypes.Provider) (*skills.Registry, error) {
	summarize, err := hr.NewSummarizeResume(provider)
	if err != nil {
		return nil, err
	}
	onboarding, err := hr.NewGenerateOnboardingPlan(provider,
		hr.WithDefaultRole(viper.GetString("skills.onboarding.default_role")))
	if err != nil {
		return nil, err
	}

	registry := skills.NewRegistry()
	if err := registry.RegisterAll(summarize, onboarding); err != nil {
		return nil, err
	}
	return registry, nil
}

// newCatalog builds a registry for listing skills without provider credentials
func newCatalog() (*skills.Registry, error) {
	return newRegistry(offlineProvider{})
}

func newProviderFromConfig(ctx context.Context) (llmtypes.Provider, error) {
	config, err := llm.GetConfigFromViper()
	if err != nil {
		return nil, err
	}
	return llm.NewProvider(ctx, config)
}

func lookupSkill(registry *skills.Registry, id string) (skilltypes.Handler, error) {
	handler, ok := registry.Get(id)
	if !ok {
		return nil, errors.Wrapf(skills.ErrSkillNotFound, "skill %q", id)
	}
	return handler, nil
}

// offlineProvider stands in for a model provider when only skill metadata is needed
type offlineProvider struct{}

func (offlineProvider) Name() string  { return "offline" }
func (offlineProvider) Model() string { return "" }

func (offlineProvider) Complete(context.Context, llmtypes.Request) (llmtypes.Response, error) {
	return llmtypes.Response{}, errors.New("no model provider is configured")
}

// usageTracker accumulates token usage across the calls made through it
type usageTracker struct {
	llmtypes.Provider

	mu    sync.Mutex
	usage llmtypes.Usage
}

func newUsageTracker(provider llmtypes.Provider) *usageTracker {
	return &usageTracker{Provider: provider}
}

func (t *usageTracker) Complete(ctx context.Context, req llmtypes.Request) (llmtypes.Response, error) {
	resp, err := t.Provider.Complete(ctx, req)
	if err != nil {
		return resp, err
	}
	t.mu.Lock()
	t.usage.Add(resp.Usage)
	t.mu.Unlock()
	return resp, nil
}

func (t *usageTracker) Usage() llmtypes.Usage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.usage
}
