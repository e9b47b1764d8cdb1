package main

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jingkaihe/hrskills/pkg/llm"
	"github.com/jingkaihe/hrskills/pkg/logger"
	"github.com/jingkaihe/hrskills/pkg/presenter"
	"github.com/jingkaihe/hrskills/pkg/session"
	"github.com/jingkaihe/hrskills/pkg/skills/hr"
)

// errSkillFailed marks a run whose skill returned a Failed outcome. The outcome
// has already been presented, so main only sets the exit code.
var errSkillFailed = errors.New("skill failed")

var shutdownTracing func(context.Context) error

func init() {
	viper.SetEnvPrefix("HRSKILLS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "fmt")
	viper.SetDefault("session.store", session.StoreTypeSQLite)
	viper.SetDefault("skills.onboarding.default_role", hr.DefaultOnboardingRole)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.hrskills")
	viper.AddConfigPath(".")

	// a missing config file is fine
	_ = viper.ReadInConfig()

	if err := llm.BindEnv(viper.GetViper()); err != nil {
		logger.L.WithError(err).Warn("failed to bind provider environment variables")
	}
}

var rootCmd = &cobra.Command{
	Use:   "hrskills",
	Short: "Run HR assistant skills from the command line",
	Long: `hrskills runs HR assistant skills such as resume summarization and
onboarding plan generation against a persistent session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			return errors.Wrap(err, "invalid log level")
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		presenter.SetQuiet(viper.GetBool("quiet"))

		shutdown, err := initTracing(cmd.Context())
		if err != nil {
			logger.G(cmd.Context()).WithError(err).Warn("failed to initialize tracing")
			return nil
		}
		shutdownTracing = shutdown
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().String("provider", "", "LLM provider to use (anthropic, openai or google)")
	rootCmd.PersistentFlags().String("model", "", "LLM model or alias to use (overrides config)")
	rootCmd.PersistentFlags().Int("max-tokens", 0, "Maximum tokens for model responses (overrides config)")
	rootCmd.PersistentFlags().String("profile", "", "Named configuration profile to apply")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (panic, fatal, error, warn, info, debug, trace)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (json or fmt)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only print errors and failed outcomes")

	viper.BindPFlag("provider", rootCmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("max_tokens", rootCmd.PersistentFlags().Lookup("max-tokens"))
	viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(versionCmd)

	ctx := context.Background()
	err := rootCmd.ExecuteContext(ctx)

	if shutdownTracing != nil {
		if shutdownErr := shutdownTracing(ctx); shutdownErr != nil {
			logger.G(ctx).WithError(shutdownErr).Warn("failed to shut down tracing")
		}
	}

	if err != nil {
		if !errors.Is(err, errSkillFailed) {
			presenter.Error(err, "")
		}
		os.Exit(1)
	}
}
