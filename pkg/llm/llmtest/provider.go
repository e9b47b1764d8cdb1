// Package llmtest provides a testify mock of llm.Provider for tests of code
// that runs model functions.
package llmtest

import (
	"context"

	"github.com/stretchr/testify/mock"

	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
)

// MockProvider mocks llmtypes.Provider
type MockProvider struct {
	mock.Mock
	ProviderName string
	ModelName    string
}

// NewMockProvider creates a mock reporting the given provider and model names
func NewMockProvider(name, model string) *MockProvider {
	return &MockProvider{ProviderName: name, ModelName: model}
}

// Name implements llmtypes.Provider
func (m *MockProvider) Name() string {
	return m.ProviderName
}

// Model implements llmtypes.Provider
func (m *MockProvider) Model() string {
	return m.ModelName
}

// Complete implements llmtypes.Provider
func (m *MockProvider) Complete(ctx context.Context, req llmtypes.Request) (llmtypes.Response, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(llmtypes.Response), args.Error(1)
}

// PromptIs matches a Request by its user prompt
func PromptIs(prompt string) any {
	return mock.MatchedBy(func(req llmtypes.Request) bool {
		return req.Prompt == prompt
	})
}
