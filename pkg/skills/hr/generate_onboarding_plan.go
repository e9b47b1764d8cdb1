package hr

import (
	"context"
	"fmt"

	"github.com/jingkaihe/hrskills/pkg/artifacts"
	"github.com/jingkaihe/hrskills/pkg/llm/function"
	"github.com/jingkaihe/hrskills/pkg/logger"
	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
	skilltypes "github.com/jingkaihe/hrskills/pkg/types/skills"
)

const (
	// GenerateOnboardingPlanID is the id of the onboarding plan skill
	GenerateOnboardingPlanID = "generate_onboarding_plan"
	// OnboardingPlanArtifact is the artifact name of the generated plan
	OnboardingPlanArtifact = "onboarding_plan.json"
	// DefaultOnboardingRole is used when the profile names no role
	DefaultOnboardingRole = "Software Engineer"

	onboardingInstructions = "Generate a comprehensive list of onboarding tasks for the provided role. " +
		"Include technical setup, documentation review, and team introductions."

	missingResumeMessage = "Could not find a summarized resume in the current session."
)

// GenerateOnboardingPlan produces a list of onboarding tasks for the new hire
// whose profile was stored in the session by SummarizeResume
type GenerateOnboardingPlan struct {
	tasks       *function.Function[[]string]
	defaultRole string
}

// OnboardingOption customises GenerateOnboardingPlan
type OnboardingOption func(*GenerateOnboardingPlan)

// WithDefaultRole sets the role planned for when the profile names none
func WithDefaultRole(role string) OnboardingOption {
	return func(s *GenerateOnboardingPlan) {
		if role != "" {
			s.defaultRole = role
		}
	}
}

// NewGenerateOnboardingPlan builds the skill and its task generation function.
// It fails when provider is not configured.
func NewGenerateOnboardingPlan(provider llmtypes.Provider, opts ...OnboardingOption) (*GenerateOnboardingPlan, error) {
	tasks, err := function.NewWithSystemInstructions[[]string](provider, onboardingInstructions,
		function.WithName("generate_onboarding_tasks"))
	if err != nil {
		return nil, err
	}

	s := &GenerateOnboardingPlan{
		tasks:       tasks,
		defaultRole: DefaultOnboardingRole,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Metadata implements skills.Handler
func (s *GenerateOnboardingPlan) Metadata() skilltypes.Metadata {
	return skilltypes.Metadata{
		ID:          GenerateOnboardingPlanID,
		Name:        "Onboarding Plan Generator",
		Description: "Generates personalized onboarding plans for new hires",
		Tags:        []string{"hr", "onboarding", "planning"},
		Examples: []string{
			"Generate an onboarding plan for a Software Engineer",
			"Create onboarding tasks for the new hire",
		},
		InputModes:  []string{skilltypes.MimeTypeText, skilltypes.MimeTypeJSON},
		OutputModes: []string{skilltypes.MimeTypeJSON},
	}
}

// OnRequest implements skills.Handler. A session without a summarized resume
// yields a Failed outcome; every other fault is returned as an error.
func (s *GenerateOnboardingPlan) OnRequest(
	ctx context.Context,
	state skilltypes.State,
	progress skilltypes.ProgressSender,
	_ skilltypes.Runtime,
	_ skilltypes.Content,
) (skilltypes.Outcome, error) {
	if err := progress.SendUpdate(ctx, "Looking for user profile..."); err != nil {
		return skilltypes.Outcome{}, err
	}

	var userData UserData
	found, err := state.Load(ctx, UserDataKey, &userData)
	if err != nil {
		return skilltypes.Outcome{}, err
	}
	if !found {
		logger.G(ctx).Info("no summarized resume in session")
		return skilltypes.Failed(skilltypes.TextContent(missingResumeMessage)), nil
	}

	role := userData.Role(s.defaultRole)
	if err := progress.SendUpdate(ctx, fmt.Sprintf("Generating onboarding tasks for %s role...", role)); err != nil {
		return skilltypes.Outcome{}, err
	}

	tasks, err := s.tasks.Run(ctx, role)
	if err != nil {
		return skilltypes.Outcome{}, err
	}

	plan, err := artifacts.FromJSON(OnboardingPlanArtifact, tasks)
	if err != nil {
		return skilltypes.Outcome{}, err
	}

	logger.G(ctx).WithField("tasks", len(tasks)).Info("onboarding plan generated")

	message := skilltypes.TextContent(fmt.Sprintf("Onboarding plan generated for %s.", userData.Name))
	return skilltypes.Completed(&message, plan), nil
}
