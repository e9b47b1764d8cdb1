package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jingkaihe/hrskills/pkg/presenter"
	skilltypes "github.com/jingkaihe/hrskills/pkg/types/skills"
)

// SkillShowConfig holds the flags of the skill show command
type SkillShowConfig struct {
	Format string
}

// NewSkillShowConfig creates a SkillShowConfig with default values
func NewSkillShowConfig() *SkillShowConfig {
	return &SkillShowConfig{Format: "yaml"}
}

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Inspect the available skills",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available skills",
	RunE: func(_ *cobra.Command, _ []string) error {
		registry, err := newCatalog()
		if err != nil {
			return err
		}
		return printSkillTable(os.Stdout, registry.List())
	},
}

var skillShowCmd = &cobra.Command{
	Use:   "show <skill-id>",
	Short: "Show the card of a skill",
	Long:  `Show the metadata card of a skill in YAML or JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := NewSkillShowConfig()
		config.Format, _ = cmd.Flags().GetString("format")

		registry, err := newCatalog()
		if err != nil {
			return err
		}
		handler, err := lookupSkill(registry, args[0])
		if err != nil {
			return err
		}
		return writeSkillCard(os.Stdout, handler.Metadata(), config.Format)
	},
}

func init() {
	defaults := NewSkillShowConfig()
	skillShowCmd.Flags().String("format", defaults.Format, "Output format (yaml or json)")

	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillShowCmd)
}

func printSkillTable(w io.Writer, skills []skilltypes.Metadata) error {
	if len(skills) == 0 {
		presenter.Info("No skills registered.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTAGS\tDESCRIPTION")
	for _, s := range skills {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Name, strings.Join(s.Tags, ","), s.Description)
	}
	return tw.Flush()
}

func writeSkillCard(w io.Writer, md skilltypes.Metadata, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(md); err != nil {
			return errors.Wrap(err, "failed to encode skill card")
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(md), "failed to encode skill card")
	default:
		return errors.Errorf("unsupported format %q, use yaml or json", format)
	}
}
