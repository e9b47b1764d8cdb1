package hr

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
	"github.com/jingkaihe/hrskills/pkg/progress"
	"github.com/jingkaihe/hrskills/pkg/session"
	"github.com/jingkaihe/hrskills/pkg/skills"
	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
	skilltypes "github.com/jingkaihe/hrskills/pkg/types/skills"
)

func newSessionState(t *testing.T) *session.State {
	t.Helper()
	return session.NewState(session.NewMemoryStore(), "session-1")
}

func saveUserData(t *testing.T, state *session.State, userData UserData) {
	t.Helper()
	require.NoError(t, state.Save(context.Background(), UserDataKey, userData))
}

func jsonResponse(t *testing.T, v any) llmtypes.Response {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return llmtypes.Response{Text: string(raw), Usage: llmtypes.Usage{InputTokens: 10, OutputTokens: 5}}
}

func TestNewGenerateOnboardingPlan_NilProvider(t *testing.T) {
	_, err := NewGenerateOnboardingPlan(nil)

	var cfgErr *llmtypes.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestGenerateOnboardingPlan_Metadata(t *testing.T) {
	skill, err := NewGenerateOnboardingPlan(llmtest.NewMockProvider("mock", "m"))
	require.NoError(t, err)

	md := skill.Metadata()
	assert.Equal(t, "generate_onboarding_plan", md.ID)
	assert.Equal(t, "Onboarding Plan Generator", md.Name)
	assert.Equal(t, "Generates personalized onboarding plans for new hires", md.Description)
	assert.Equal(t, []string{"hr", "onboarding", "planning"}, md.Tags)
	assert.Equal(t, []string{"text/plain", "application/json"}, md.InputModes)
	assert.Equal(t, []string{"application/json"}, md.OutputModes)
}

func TestGenerateOnboardingPlan_MissingProfile(t *testing.T) {
	provider := llmtest.NewMockProvider("mock", "m")
	skill, err := NewGenerateOnboardingPlan(provider)
	require.NoError(t, err)

	recorder := progress.NewRecorder()
	outcome, err := skill.OnRequest(context.Background(), newSessionState(t), recorder, nil, skilltypes.Content{})
	require.NoError(t, err)

	assert.True(t, outcome.IsFailed())
	require.NotNil(t, outcome.Error)
	assert.Equal(t, "Could not find a summarized resume in the current session.", outcome.Error.Text)
	assert.Empty(t, outcome.Artifacts)
	assert.Equal(t, []string{"Looking for user profile..."}, recorder.Messages())
	provider.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestGenerateOnboardingPlan_Completed(t *testing.T) {
	tasks := []string{
		"Set up development environment",
		"Review architecture docs",
		"Meet the team",
	}

	provider := llmtest.NewMockProvider("mock", "m")
	provider.On("Complete", mock.Anything, llmtest.PromptIs("Software Engineer")).
		Return(jsonResponse(t, tasks), nil).Once()

	skill, err := NewGenerateOnboardingPlan(provider)
	require.NoError(t, err)

	state := newSessionState(t)
	saveUserData(t, state, UserData{Name: "Alex", TargetRole: "Software Engineer"})

	recorder := progress.NewRecorder()
	outcome, err := skill.OnRequest(context.Background(), state, recorder, nil, skilltypes.TextContent("plan please"))
	require.NoError(t, err)

	assert.True(t, outcome.IsCompleted())
	require.NoError(t, outcome.Validate())
	require.NotNil(t, outcome.Message)
	assert.Equal(t, "Onboarding plan generated for Alex.", outcome.Message.Text)

	require.Len(t, outcome.Artifacts, 1)
	artifact := outcome.Artifacts[0]
	assert.Equal(t, "onboarding_plan.json", artifact.Name)
	assert.Equal(t, skilltypes.MimeTypeJSON, artifact.MimeType)

	var decoded []string
	require.NoError(t, artifact.DecodeJSON(&decoded))
	assert.Equal(t, tasks, decoded)

	assert.Equal(t, []string{
		"Looking for user profile...",
		"Generating onboarding tasks for Software Engineer role...",
	}, recorder.Messages())

	provider.AssertExpectations(t)
	provider.AssertNumberOfCalls(t, "Complete", 1)
}

func TestGenerateOnboardingPlan_EmptyTaskList(t *testing.T) {
	provider := llmtest.NewMockProvider("mock", "m")
	provider.On("Complete", mock.Anything, mock.Anything).Return(llmtypes.Response{Text: "[]"}, nil).Once()

	skill, err := NewGenerateOnboardingPlan(provider)
	require.NoError(t, err)

	state := newSessionState(t)
	saveUserData(t, state, UserData{Name: "Sam", TargetRole: "Designer"})

	outcome, err := skill.OnRequest(context.Background(), state, progress.Discard, nil, skilltypes.Content{})
	require.NoError(t, err)
	require.True(t, outcome.IsCompleted())
	require.Len(t, outcome.Artifacts, 1)
	assert.JSONEq(t, "[]", string(outcome.Artifacts[0].Data))
}

func TestGenerateOnboardingPlan_RoleResolution(t *testing.T) {
	tests := []struct {
		name     string
		userData UserData
		opts     []OnboardingOption
		wantRole string
	}{
		{
			name:     "target role wins",
			userData: UserData{Name: "Alex", CurrentRole: "Analyst", TargetRole: "Data Scientist"},
			wantRole: "Data Scientist",
		},
		{
			name:     "current role when no target",
			userData: UserData{Name: "Alex", CurrentRole: "Product Manager"},
			wantRole: "Product Manager",
		},
		{
			name:     "default role when profile names none",
			userData: UserData{Name: "Alex"},
			wantRole: DefaultOnboardingRole,
		},
		{
			name:     "configured default role",
			userData: UserData{Name: "Alex"},
			opts:     []OnboardingOption{WithDefaultRole("Support Engineer")},
			wantRole: "Support Engineer",
		},
		{
			name:     "empty configured default keeps built-in",
			userData: UserData{Name: "Alex"},
			opts:     []OnboardingOption{WithDefaultRole("")},
			wantRole: DefaultOnboardingRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := llmtest.NewMockProvider("mock", "m")
			provider.On("Complete", mock.Anything, llmtest.PromptIs(tt.wantRole)).
				Return(llmtypes.Response{Text: `["Read the handbook"]`}, nil).Once()

			skill, err := NewGenerateOnboardingPlan(provider, tt.opts...)
			require.NoError(t, err)

			state := newSessionState(t)
			saveUserData(t, state, tt.userData)

			recorder := progress.NewRecorder()
			outcome, err := skill.OnRequest(context.Background(), state, recorder, nil, skilltypes.Content{})
			require.NoError(t, err)
			assert.True(t, outcome.IsCompleted())
			assert.Contains(t, recorder.Messages(), "Generating onboarding tasks for "+tt.wantRole+" role...")
			provider.AssertExpectations(t)
		})
	}
}

func TestGenerateOnboardingPlan_ProviderErrorPropagates(t *testing.T) {
	providerErr := errors.New("upstream unavailable")
	provider := llmtest.NewMockProvider("mock", "m")
	provider.On("Complete", mock.Anything, mock.Anything).Return(llmtypes.Response{}, providerErr).Once()

	skill, err := NewGenerateOnboardingPlan(provider)
	require.NoError(t, err)

	state := newSessionState(t)
	saveUserData(t, state, UserData{Name: "Alex", TargetRole: "Software Engineer"})

	outcome, err := skill.OnRequest(context.Background(), state, progress.Discard, nil, skilltypes.Content{})
	require.Error(t, err)
	assert.Equal(t, providerErr, pkgerrors.Cause(err))
	assert.ErrorIs(t, err, providerErr)
	assert.Empty(t, outcome.Status)
	assert.Empty(t, outcome.Artifacts)
}

func TestGenerateOnboardingPlan_ProviderErrorPropagatesThroughRunner(t *testing.T) {
	providerErr := errors.New("upstream unavailable")
	provider := llmtest.NewMockProvider("mock", "m")
	provider.On("Complete", mock.Anything, mock.Anything).Return(llmtypes.Response{}, providerErr).Once()

	skill, err := NewGenerateOnboardingPlan(provider)
	require.NoError(t, err)

	registry := skills.NewRegistry()
	require.NoError(t, registry.Register(skill))
	store := session.NewMemoryStore()
	require.NoError(t, session.NewState(store, "session-1").Save(context.Background(), UserDataKey, UserData{Name: "Alex"}))

	recorder := progress.NewRecorder()
	outcome, err := skills.NewRunner(registry, store, provider).Invoke(context.Background(), skills.Request{
		SessionID: "session-1",
		SkillID:   GenerateOnboardingPlanID,
	}, recorder)
	require.Error(t, err)
	assert.ErrorIs(t, err, providerErr)
	assert.Empty(t, outcome.Status)
	assert.Equal(t, []string{
		"Looking for user profile...",
		"Generating onboarding tasks for Software Engineer role...",
	}, recorder.Messages())
}

func TestGenerateOnboardingPlan_FencedAnswerWithTrailingProse(t *testing.T) {
	provider := llmtest.NewMockProvider("mock", "m")
	provider.On("Complete", mock.Anything, mock.Anything).
		Return(llmtypes.Response{Text: "```json\n[\"a\",\"b]\"]\n```\nLet me know [if] more."}, nil).Once()

	skill, err := NewGenerateOnboardingPlan(provider)
	require.NoError(t, err)

	state := newSessionState(t)
	saveUserData(t, state, UserData{Name: "Alex"})

	outcome, err := skill.OnRequest(context.Background(), state, progress.Discard, nil, skilltypes.Content{})
	require.NoError(t, err)
	require.True(t, outcome.IsCompleted())

	var tasks []string
	require.NoError(t, outcome.Artifacts[0].DecodeJSON(&tasks))
	assert.Equal(t, []string{"a", "b]"}, tasks)
}

func TestGenerateOnboardingPlan_UndecodableAnswer(t *testing.T) {
	provider := llmtest.NewMockProvider("mock", "m")
	provider.On("Complete", mock.Anything, mock.Anything).
		Return(llmtypes.Response{Text: "Here are some ideas: meet people"}, nil).Once()

	skill, err := NewGenerateOnboardingPlan(provider)
	require.NoError(t, err)

	state := newSessionState(t)
	saveUserData(t, state, UserData{Name: "Alex"})

	_, err = skill.OnRequest(context.Background(), state, progress.Discard, nil, skilltypes.Content{})
	require.Error(t, err)
}

func TestGenerateOnboardingPlan_ProgressFailure(t *testing.T) {
	sendErr := errors.New("stream closed")
	provider := llmtest.NewMockProvider("mock", "m")

	skill, err := NewGenerateOnboardingPlan(provider)
	require.NoError(t, err)

	state := newSessionState(t)
	saveUserData(t, state, UserData{Name: "Alex"})

	failing := progress.SenderFunc(func(context.Context, string) error { return sendErr })
	_, err = skill.OnRequest(context.Background(), state, failing, nil, skilltypes.Content{})
	assert.Equal(t, sendErr, err)
	provider.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestGenerateOnboardingPlan_CorruptProfile(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "session-1", UserDataKey, []byte(`"not a profile"`)))

	provider := llmtest.NewMockProvider("mock", "m")
	skill, err := NewGenerateOnboardingPlan(provider)
	require.NoError(t, err)

	_, err = skill.OnRequest(context.Background(), session.NewState(store, "session-1"), progress.Discard, nil, skilltypes.Content{})
	require.Error(t, err)
	provider.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}
