// Package presenter renders skill progress, outcomes and CLI diagnostics to the
// terminal with color support and quiet mode.
package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
	skilltypes "github.com/jingkaihe/hrskills/pkg/types/skills"
)

// Presenter defines the interface for consistent CLI output
type Presenter interface {
	Error(err error, context string)
	Success(message string)
	Warning(message string)
	Info(message string)
	Section(title string)
	Progress(message string)
	Outcome(outcome skilltypes.Outcome)
	Usage(usage llmtypes.Usage)
	Separator()
	SetQuiet(quiet bool)
	IsQuiet() bool
}

// TerminalPresenter implements Presenter for terminal output
type TerminalPresenter struct {
	output      io.Writer
	errorOutput io.Writer
	colorMode   ColorMode
	quiet       bool
}

// ColorMode represents different color output modes
type ColorMode int

const (
	// ColorAuto lets the color package detect terminal support
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output
	ColorAlways
	// ColorNever disables colored output
	ColorNever
)

// ColorEnv selects the color mode: always, force, never, off or auto
const ColorEnv = "HRSKILLS_COLOR"

// New creates a TerminalPresenter writing to stdout and stderr
func New() *TerminalPresenter {
	return NewWithOptions(os.Stdout, os.Stderr, detectColorMode())
}

// NewWithOptions creates a TerminalPresenter with custom settings
func NewWithOptions(output, errorOutput io.Writer, colorMode ColorMode) *TerminalPresenter {
	switch colorMode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	case ColorAuto:
	}

	return &TerminalPresenter{
		output:      output,
		errorOutput: errorOutput,
		colorMode:   colorMode,
	}
}

func detectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}

	switch os.Getenv(ColorEnv) {
	case "always", "force":
		return ColorAlways
	case "never", "off":
		return ColorNever
	default:
		return ColorAuto
	}
}

// Error writes an error to stderr. Quiet mode does not suppress errors.
func (p *TerminalPresenter) Error(err error, context string) {
	if err == nil {
		return
	}

	errorColor := color.New(color.FgRed, color.Bold)
	if context != "" {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %s: %v\n", context, err)
		return
	}
	errorColor.Fprintf(p.errorOutput, "[ERROR] %v\n", err)
}

// Success displays a success message
func (p *TerminalPresenter) Success(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgGreen, color.Bold).Fprintf(p.output, "✓ %s\n", message)
}

// Warning displays a warning message
func (p *TerminalPresenter) Warning(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgYellow, color.Bold).Fprintf(p.output, "⚠ %s\n", message)
}

// Info displays an informational message
func (p *TerminalPresenter) Info(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.output, "%s\n", message)
}

// Section displays a section header
func (p *TerminalPresenter) Section(title string) {
	if p.quiet {
		return
	}

	headerColor := color.New(color.Bold)
	headerColor.Fprintf(p.output, "%s\n", title)
	headerColor.Fprintf(p.output, "%s\n", strings.Repeat("-", len(title)))
}

// Progress displays an in-flight status update from a skill
func (p *TerminalPresenter) Progress(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgCyan).Fprintf(p.output, "… %s\n", message)
}

// Outcome displays the terminal result of a skill invocation. Failed outcomes
// go to stderr and are shown in quiet mode.
func (p *TerminalPresenter) Outcome(outcome skilltypes.Outcome) {
	switch {
	case outcome.IsFailed():
		msg := ""
		if outcome.Error != nil {
			msg = outcome.Error.String()
		}
		color.New(color.FgRed, color.Bold).Fprintf(p.errorOutput, "✗ %s\n", msg)
	case outcome.IsCompleted():
		if outcome.Message != nil {
			p.Success(outcome.Message.String())
		} else {
			p.Success("Skill completed")
		}
		if p.quiet {
			return
		}
		for _, a := range outcome.Artifacts {
			fmt.Fprintf(p.output, "  artifact %s (%s, %d bytes)\n", a.Name, a.MimeType, len(a.Data))
		}
	default:
		p.Warning(fmt.Sprintf("skill returned unknown status %q", outcome.Status))
	}
}

// Usage displays token usage of model calls
func (p *TerminalPresenter) Usage(usage llmtypes.Usage) {
	if p.quiet || usage.TotalTokens() == 0 {
		return
	}
	color.New(color.FgCyan, color.Bold).Fprintf(p.output, "[Usage Stats] Input tokens: %d | Output tokens: %d | Total: %d\n",
		usage.InputTokens, usage.OutputTokens, usage.TotalTokens())
}

// Separator displays a visual separator
func (p *TerminalPresenter) Separator() {
	if p.quiet {
		return
	}
	color.New(color.Faint).Fprintf(p.output, "%s\n", strings.Repeat("-", 60))
}

// SetQuiet enables or disables quiet mode
func (p *TerminalPresenter) SetQuiet(quiet bool) {
	p.quiet = quiet
}

// IsQuiet returns whether quiet mode is enabled
func (p *TerminalPresenter) IsQuiet() bool {
	return p.quiet
}

var defaultPresenter = New()

// Error displays an error message using the default presenter.
func Error(err error, context string) {
	defaultPresenter.Error(err, context)
}

// Success displays a success message using the default presenter.
func Success(message string) {
	defaultPresenter.Success(message)
}

// Warning displays a warning message using the default presenter.
func Warning(message string) {
	defaultPresenter.Warning(message)
}

// Info displays an informational message using the default presenter.
func Info(message string) {
	defaultPresenter.Info(message)
}

// Section displays a section header using the default presenter.
func Section(title string) {
	defaultPresenter.Section(title)
}

// Progress displays a skill status update using the default presenter.
func Progress(message string) {
	defaultPresenter.Progress(message)
}

// Outcome displays a skill outcome using the default presenter.
func Outcome(outcome skilltypes.Outcome) {
	defaultPresenter.Outcome(outcome)
}

// Usage displays token usage using the default presenter.
func Usage(usage llmtypes.Usage) {
	defaultPresenter.Usage(usage)
}

// Separator displays a visual separator using the default presenter.
func Separator() {
	defaultPresenter.Separator()
}

// SetQuiet enables or disables quiet mode for the default presenter.
func SetQuiet(quiet bool) {
	defaultPresenter.SetQuiet(quiet)
}

// IsQuiet returns whether quiet mode is enabled for the default presenter.
func IsQuiet() bool {
	return defaultPresenter.IsQuiet()
}
