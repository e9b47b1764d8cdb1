package hr

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/jingkaihe/hrskills/pkg/artifacts"
	"github.com/jingkaihe/hrskills/pkg/llm/function"
	"github.com/jingkaihe/hrskills/pkg/logger"
	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
	skilltypes "github.com/jingkaihe/hrskills/pkg/types/skills"
)

const (
	// SummarizeResumeID is the id of the resume summarization skill
	SummarizeResumeID = "summarize_resume"
	// UserDataArtifact is the artifact name of the summarized profile
	UserDataArtifact = "user_data.json"

	resumeInstructions = "Extract a structured profile of the candidate from the provided resume. " +
		"Use only facts stated in the resume and leave fields empty when the resume does not mention them."

	missingInputMessage = "No resume text was provided."
)

// SummarizeResume extracts a UserData profile from resume text and stores it
// in the session for later skills
type SummarizeResume struct {
	summarize *function.Function[UserData]
}

// NewSummarizeResume builds the skill and its extraction function. It fails
// when provider is not configured.
func NewSummarizeResume(provider llmtypes.Provider) (*SummarizeResume, error) {
	summarize, err := function.NewWithSystemInstructions[UserData](provider, resumeInstructions,
		function.WithName("summarize_resume"))
	if err != nil {
		return nil, err
	}
	return &SummarizeResume{summarize: summarize}, nil
}

// Metadata implements skills.Handler
func (s *SummarizeResume) Metadata() skilltypes.Metadata {
	return skilltypes.Metadata{
		ID:          SummarizeResumeID,
		Name:        "Resume Summarizer",
		Description: "Summarizes a candidate resume into a structured profile for later HR skills",
		Tags:        []string{"hr", "resume", "profile"},
		Examples: []string{
			"Summarize this resume",
			"Extract the candidate profile from the attached CV",
		},
		InputModes:  []string{skilltypes.MimeTypeText},
		OutputModes: []string{skilltypes.MimeTypeJSON},
	}
}

// OnRequest implements skills.Handler
func (s *SummarizeResume) OnRequest(
	ctx context.Context,
	state skilltypes.State,
	progress skilltypes.ProgressSender,
	_ skilltypes.Runtime,
	content skilltypes.Content,
) (skilltypes.Outcome, error) {
	if content.IsEmpty() {
		return skilltypes.Failed(skilltypes.TextContent(missingInputMessage)), nil
	}

	if err := progress.SendUpdate(ctx, "Summarizing resume..."); err != nil {
		return skilltypes.Outcome{}, err
	}

	userData, err := s.summarize.Run(ctx, content.String())
	if err != nil {
		return skilltypes.Outcome{}, err
	}
	userData.Name = strings.TrimSpace(userData.Name)
	if userData.Name == "" {
		return skilltypes.Outcome{}, errors.New("summarized profile has no name")
	}

	if err := state.Save(ctx, UserDataKey, userData); err != nil {
		return skilltypes.Outcome{}, err
	}

	profile, err := artifacts.FromJSON(UserDataArtifact, userData)
	if err != nil {
		return skilltypes.Outcome{}, err
	}

	logger.G(ctx).WithField("skills", len(userData.Skills)).Info("resume summarized")

	message := skilltypes.TextContent(fmt.Sprintf("Resume summarized for %s.", userData.Name))
	return skilltypes.Completed(&message, profile), nil
}
