// Package presenter provides consistent CLI output functionality for user-facing
// messages, including success, error, warning and label output with color
// support and quiet mode.
package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

// Presenter defines the interface for consistent CLI output
type Presenter interface {
	Error(err error, context string)
	Success(message string)
	Warning(message string)
	Info(message string)
	Section(title string)
	Labels(skill string, labels nlptypes.Labels)
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
	// ColorAuto automatically detects whether to use colored output based on terminal capabilities
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output regardless of terminal capabilities
	ColorAlways
	// ColorNever disables colored output regardless of terminal capabilities
	ColorNever
)

// New creates a new TerminalPresenter with default settings
func New() *TerminalPresenter {
	return NewWithOptions(os.Stdout, os.Stderr, detectColorMode())
}

// NewWithOptions creates a TerminalPresenter with custom settings
func NewWithOptions(output, errorOutput io.Writer, colorMode ColorMode) *TerminalPresenter {
	presenter := &TerminalPresenter{
		output:      output,
		errorOutput: errorOutput,
		colorMode:   colorMode,
	}

	// Configure color package based on mode
	switch colorMode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	case ColorAuto:
		// Let color package auto-detect
	}

	return presenter
}

// detectColorMode determines the appropriate color mode based on environment
func detectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}

	switch os.Getenv("LEXA_COLOR") {
	case "always", "force":
		return ColorAlways
	case "never", "off":
		return ColorNever
	case "auto", "":
		return ColorAuto
	default:
		return ColorAuto
	}
}

// Error displays an error message to stderr
func (p *TerminalPresenter) Error(err error, context string) {
	if err == nil {
		return
	}

	errorColor := color.New(color.FgRed, color.Bold)
	if context != "" {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %s: %v\n", context, err)
	} else {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %v\n", err)
	}
}

// Success displays a success message
func (p *TerminalPresenter) Success(message string) {
	if p.quiet {
		return
	}

	successColor := color.New(color.FgGreen, color.Bold)
	successColor.Fprintf(p.output, "✓ %s\n", message)
}

// Warning displays a warning message
func (p *TerminalPresenter) Warning(message string) {
	if p.quiet {
		return
	}

	warningColor := color.New(color.FgYellow, color.Bold)
	warningColor.Fprintf(p.output, "⚠ %s\n", message)
}

// Info displays an informational message
func (p *TerminalPresenter) Info(message string) {
	if p.quiet {
		return
	}

	fmt.Fprintf(p.output, "%s\n", message)
}

// Section displays a section header with consistent formatting
func (p *TerminalPresenter) Section(title string) {
	if p.quiet {
		return
	}

	headerColor := color.New(color.Bold)
	separator := strings.Repeat("-", len(title))

	headerColor.Fprintf(p.output, "%s\n", title)
	headerColor.Fprintf(p.output, "%s\n", separator)
}

// Labels displays one skill's labels, one line per label: the label name, its
// value when the skill produced one, and the source spans.
func (p *TerminalPresenter) Labels(skill string, labels nlptypes.Labels) {
	if p.quiet {
		return
	}

	p.Section(skill)
	if len(labels) == 0 {
		faint := color.New(color.Faint)
		faint.Fprintf(p.output, "(no results)\n")
		return
	}

	nameColor := color.New(color.FgCyan)
	spanColor := color.New(color.Faint)
	for _, label := range labels {
		nameColor.Fprintf(p.output, "%s", label.Name)
		if label.Value != "" && label.Value != label.Name {
			fmt.Fprintf(p.output, " = %s", label.Value)
		}
		for _, span := range label.Spans {
			spanColor.Fprintf(p.output, "  [%d:%d]", span.Start, span.End)
		}
		fmt.Fprintln(p.output)
	}
}

// Separator displays a visual separator
func (p *TerminalPresenter) Separator() {
	if p.quiet {
		return
	}

	separatorColor := color.New(color.Faint)
	separatorColor.Fprintf(p.output, "%s\n", strings.Repeat("-", 60))
}

// SetQuiet enables or disables quiet mode
func (p *TerminalPresenter) SetQuiet(quiet bool) {
	p.quiet = quiet
}

// IsQuiet returns whether quiet mode is enabled
func (p *TerminalPresenter) IsQuiet() bool {
	return p.quiet
}

// Global presenter instance for convenience
var defaultPresenter = New()

// Error displays an error message using the default presenter instance.
func Error(err error, context string) {
	defaultPresenter.Error(err, context)
}

// Success displays a success message using the default presenter instance.
func Success(message string) {
	defaultPresenter.Success(message)
}

// Warning displays a warning message using the default presenter instance.
func Warning(message string) {
	defaultPresenter.Warning(message)
}

// Info displays an informational message using the default presenter instance.
func Info(message string) {
	defaultPresenter.Info(message)
}

// Section displays a section header using the default presenter instance.
func Section(title string) {
	defaultPresenter.Section(title)
}

// Labels displays one skill's labels using the default presenter instance.
func Labels(skill string, labels nlptypes.Labels) {
	defaultPresenter.Labels(skill, labels)
}

// Separator displays a visual separator using the default presenter instance.
func Separator() {
	defaultPresenter.Separator()
}

// SetQuiet enables or disables quiet mode for the default presenter instance.
func SetQuiet(quiet bool) {
	defaultPresenter.SetQuiet(quiet)
}

// IsQuiet returns whether quiet mode is enabled for the default presenter instance.
func IsQuiet() bool {
	return defaultPresenter.IsQuiet()
}
