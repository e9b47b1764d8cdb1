package function

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/hrskills/pkg/llm/llmtest"
	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
)

type candidate struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills,omitempty"`
}

func TestNewWithSystemInstructions_NilProvider(t *testing.T) {
	_, err := NewWithSystemInstructions[[]string](nil, "Generate tasks")

	var cfgErr *llmtypes.ConfigError
	require.True(t, errors.As(err, &cfgErr))
}

func TestNewWithSystemInstructions_EmptyInstructions(t *testing.T) {
	_, err := NewWithSystemInstructions[[]string](llmtest.NewMockProvider("mock", "m"), "  ")
	assert.Error(t, err)
}

func TestNewWithSystemInstructions_SystemPromptCarriesSchema(t *testing.T) {
	fn, err := NewWithSystemInstructions[[]string](llmtest.NewMockProvider("mock", "m"), "Generate tasks for the role.", WithName("onboarding_tasks"))
	require.NoError(t, err)

	assert.Equal(t, "onboarding_tasks", fn.Name())
	assert.Equal(t, "Generate tasks for the role.", fn.Instructions())
	assert.Contains(t, fn.SystemPrompt(), "Generate tasks for the role.")
	assert.Contains(t, fn.SystemPrompt(), `"type":"array"`)
	assert.Contains(t, fn.SystemPrompt(), `"items":{"type":"string"}`)
}

func TestGenerateSchema_Struct(t *testing.T) {
	raw, err := json.Marshal(GenerateSchema[candidate]())
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))
	assert.Equal(t, "object", schema["type"])
	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, properties, "name")
	assert.Contains(t, properties, "skills")
	assert.Equal(t, []any{"name"}, schema["required"])
}

func TestRun(t *testing.T) {
	provider := llmtest.NewMockProvider("mock", "mock-model")
	fn, err := NewWithSystemInstructions[[]string](provider, "Generate tasks", WithMaxTokens(512))
	require.NoError(t, err)

	provider.On("Complete", mock.Anything, mock.MatchedBy(func(req llmtypes.Request) bool {
		return req.Prompt == "Software Engineer" && req.SystemPrompt == fn.SystemPrompt() && req.MaxTokens == 512
	})).Return(llmtypes.Response{Text: `["Set up laptop","Meet the team"]`}, nil).Once()

	tasks, err := fn.Run(context.Background(), "Software Engineer")
	require.NoError(t, err)
	assert.Equal(t, []string{"Set up laptop", "Meet the team"}, tasks)
	provider.AssertExpectations(t)
}

func TestRun_ReusableAcrossInputs(t *testing.T) {
	provider := llmtest.NewMockProvider("mock", "mock-model")
	fn, err := NewWithSystemInstructions[[]string](provider, "Generate tasks")
	require.NoError(t, err)

	provider.On("Complete", mock.Anything, llmtest.PromptIs("Designer")).Return(llmtypes.Response{Text: `["Learn Figma"]`}, nil).Once()
	provider.On("Complete", mock.Anything, llmtest.PromptIs("Analyst")).Return(llmtypes.Response{Text: `["Learn SQL"]`}, nil).Once()

	designer, err := fn.Run(context.Background(), "Designer")
	require.NoError(t, err)
	analyst, err := fn.Run(context.Background(), "Analyst")
	require.NoError(t, err)

	assert.Equal(t, []string{"Learn Figma"}, designer)
	assert.Equal(t, []string{"Learn SQL"}, analyst)
	provider.AssertNumberOfCalls(t, "Complete", 2)
}

func TestRun_StructOutput(t *testing.T) {
	provider := llmtest.NewMockProvider("mock", "mock-model")
	fn, err := NewWithSystemInstructions[candidate](provider, "Summarize the resume")
	require.NoError(t, err)

	provider.On("Complete", mock.Anything, mock.Anything).
		Return(llmtypes.Response{Text: "```json\n{\"name\":\"Alex\",\"skills\":[\"go\"]}\n```"}, nil)

	out, err := fn.Run(context.Background(), "Alex, Go developer")
	require.NoError(t, err)
	assert.Equal(t, candidate{Name: "Alex", Skills: []string{"go"}}, out)
}

func TestRun_ProviderError(t *testing.T) {
	provider := llmtest.NewMockProvider("mock", "mock-model")
	fn, err := NewWithSystemInstructions[[]string](provider, "Generate tasks")
	require.NoError(t, err)

	providerErr := errors.New("connection reset")
	provider.On("Complete", mock.Anything, mock.Anything).Return(llmtypes.Response{}, providerErr)

	tasks, err := fn.Run(context.Background(), "Software Engineer")
	require.Error(t, err)
	assert.Nil(t, tasks)
	assert.Equal(t, providerErr, pkgerrors.Cause(err))
}

func TestRun_ShapeMismatch(t *testing.T) {
	provider := llmtest.NewMockProvider("mock", "mock-model")
	fn, err := NewWithSystemInstructions[[]string](provider, "Generate tasks")
	require.NoError(t, err)

	provider.On("Complete", mock.Anything, mock.Anything).Return(llmtypes.Response{Text: `{"tasks":"not a list"}`}, nil)

	_, err = fn.Run(context.Background(), "Software Engineer")
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, `{"tasks":"not a list"}`, decodeErr.Response)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain array", `["a","b"]`, `["a","b"]`},
		{"whitespace", "  [\"a\"]\n", `["a"]`},
		{"json fence", "```json\n[\"a\"]\n```", `["a"]`},
		{"bare fence", "```\n{\"name\":\"Alex\"}\n```", `{"name":"Alex"}`},
		{"prose around array", "Here are the tasks:\n[\"a\", \"b\"]\nGood luck!", `["a", "b"]`},
		{"prose around object", "Sure! {\"name\":\"Alex\"} Done.", `{"name":"Alex"}`},
		{"fence followed by bracketed prose", "```json\n[\"a\",\"b]\"]\n```\nLet me know [if] more.", `["a","b]"]`},
		{"bracketed prose before array", "Tasks [for the role]: [\"a\",\"b\"]", `["a","b"]`},
		{"unbalanced bracket before object", "Result {partial: {\"name\":\"Alex\"}", `{"name":"Alex"}`},
		{"no json", "I cannot help with that.", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSON(tt.input))
		})
	}
}

func TestDecode_SkipsValuesOfTheWrongShape(t *testing.T) {
	got, err := decode[[]string]("Notes {\"count\": 2}\n```json\n[\"Meet the team\", \"Read docs\"]\n```\nAsk [me] anything.")
	require.NoError(t, err)
	assert.Equal(t, []string{"Meet the team", "Read docs"}, got)
}

func TestDecode_NoMatchingValue(t *testing.T) {
	_, err := decode[[]string](`Here you go: {"tasks": ["a"]}`)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, `Here you go: {"tasks": ["a"]}`, decodeErr.Response)
}

func TestDecode_NoJSON(t *testing.T) {
	_, err := decode[[]string]("I cannot help with that.")

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Contains(t, err.Error(), "no JSON value")
}
