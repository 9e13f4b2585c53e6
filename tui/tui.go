// Package tui provides the presentation layer for terminal output.
package tui

import (
	"fmt"
	"io"
	"os"
)

// Format represents the output format.
type Format string

const (
	// FormatTable is the default table format.
	FormatTable Format = "table"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, "":
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table or json)", s)
	}
}

// Presenter defines the interface for output rendering.
type Presenter interface {
	// RenderVerdict renders the outcome of a single evaluation.
	RenderVerdict(verdict *VerdictView) error

	// RenderRules renders the active pattern library.
	RenderRules(rules *RulesView) error

	// RenderInstall renders the installation result.
	RenderInstall(result *InstallView) error

	// RenderUninstall renders the uninstallation result.
	RenderUninstall(result *UninstallView) error

	// RenderStatus renders the tool status.
	RenderStatus(status *StatusView) error

	// RenderConfig renders the configuration.
	RenderConfig(config *ConfigView) error

	// RenderError renders an error message.
	RenderError(err error) error

	// RenderMessage renders a simple message.
	RenderMessage(message string) error
}

// PresenterOptions configures presenter behavior.
type PresenterOptions struct {
	// Writer is the output destination.
	Writer io.Writer
	// UseColors indicates if colors should be used.
	UseColors bool
	// Verbose increases output verbosity.
	Verbose bool
	// TerminalWidth is the width of the terminal for table rendering.
	// If 0, the width will be auto-detected.
	TerminalWidth int
}

// NewPresenter creates a new presenter for the given format.
func NewPresenter(format Format, opts PresenterOptions) Presenter {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch format {
	case FormatJSON:
		return NewJSONPresenter(opts)
	default:
		return NewTablePresenter(opts)
	}
}
