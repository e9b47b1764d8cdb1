package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jingkaihe/hrskills/pkg/presenter"
	"github.com/jingkaihe/hrskills/pkg/progress"
	"github.com/jingkaihe/hrskills/pkg/skills"
	skilltypes "github.com/jingkaihe/hrskills/pkg/types/skills"
)

// RunConfig holds the flags of the run command
type RunConfig struct {
	SessionID string
	InputFile string
	OutputDir string
	Store     storeFlags
}

// NewRunConfig creates a RunConfig with default values
func NewRunConfig() *RunConfig {
	return &RunConfig{}
}

var runCmd = &cobra.Command{
	Use:   "run <skill-id> [text...]",
	Short: "Invoke a skill",
	Long: `Invoke a skill within a session. The request content is the remaining
arguments joined by spaces, or the contents of --input-file.

Examples:
  hrskills run summarize_resume --session new-hire --input-file resume.txt
  hrskills run generate_onboarding_plan --session new-hire --output-dir ./out`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := getRunConfigFromFlags(cmd.Flags())
		return runSkillCmd(cmd.Context(), args[0], args[1:], config)
	},
}

func init() {
	defaults := NewRunConfig()
	runCmd.Flags().String("session", defaults.SessionID, "Session id to run in; a new one is generated when empty")
	runCmd.Flags().String("input-file", defaults.InputFile, "Read the request content from this file (.json files are sent as JSON)")
	runCmd.Flags().String("output-dir", defaults.OutputDir, "Write artifacts into this directory")
	addStoreFlags(runCmd.Flags())
}

func getRunConfigFromFlags(flags *pflag.FlagSet) *RunConfig {
	config := NewRunConfig()
	config.SessionID, _ = flags.GetString("session")
	config.InputFile, _ = flags.GetString("input-file")
	config.OutputDir, _ = flags.GetString("output-dir")
	config.Store = getStoreFlags(flags)
	return config
}

func runSkillCmd(ctx context.Context, skillID string, args []string, config *RunConfig) error {
	content, err := readContent(args, config.InputFile)
	if err != nil {
		return err
	}

	sessionID := config.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
		presenter.Info("Session: " + sessionID)
	}

	provider, err := newProviderFromConfig(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to configure model provider")
	}
	tracker := newUsageTracker(provider)

	registry, err := newRegistry(tracker)
	if err != nil {
		return err
	}

	store, err := config.Store.open(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := skills.NewRunner(registry, store, tracker)
	sender := progress.SenderFunc(func(_ context.Context, message string) error {
		presenter.Progress(message)
		return nil
	})

	outcome, err := runner.Invoke(ctx, skills.Request{
		SessionID: sessionID,
		SkillID:   skillID,
		Content:   content,
	}, sender)
	if err != nil {
		return err
	}

	presenter.Outcome(outcome)
	presenter.Usage(tracker.Usage())

	if outcome.IsFailed() {
		return errSkillFailed
	}

	if config.OutputDir != "" {
		paths, err := writeArtifacts(config.OutputDir, outcome.Artifacts)
		if err != nil {
			return err
		}
		for _, p := range paths {
			presenter.Success("Wrote " + p)
		}
	}
	return nil
}

// readContent builds the request content from an input file or the free-form arguments
func readContent(args []string, inputFile string) (skilltypes.Content, error) {
	if inputFile == "" {
		return skilltypes.TextContent(strings.Join(args, " ")), nil
	}

	data, err := os.ReadFile(inputFile)
	if err != nil {
		return skilltypes.Content{}, errors.Wrapf(err, "failed to read input file %s", inputFile)
	}
	if strings.EqualFold(filepath.Ext(inputFile), ".json") {
		return skilltypes.JSONContent(data), nil
	}
	return skilltypes.TextContent(string(data)), nil
}

// writeArtifacts writes each artifact to dir under its own name and returns the written paths
func writeArtifacts(dir string, artifacts []skilltypes.Artifact) ([]string, error) {
	if len(artifacts) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(dir, filepath.Base(a.Name))
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return paths, errors.Wrapf(err, "failed to write artifact %s", a.Name)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
