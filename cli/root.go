// Package cli provides the command-line interface for toolgate.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/safedep/dry/log"
	"github.com/safedep/toolgate/agent"
	"github.com/safedep/toolgate/agent/claudecode"
	"github.com/safedep/toolgate/agent/gemini"
	"github.com/safedep/toolgate/config"
	"github.com/safedep/toolgate/core/security"
	"github.com/safedep/toolgate/internal/version"
	"github.com/safedep/toolgate/tui"
	"github.com/spf13/cobra"
)

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	Registry  *agent.Registry
	Presenter tui.Presenter
	Paths     *config.Paths
	Evaluator *security.Evaluator

	out io.Writer
}

// NewApp creates a new App with the given configuration. Output is
// written to out.
func NewApp(cfg *config.Config, paths *config.Paths, out io.Writer) *App {
	registry := agent.NewRegistry()
	claudecode.Register(registry)
	gemini.Register(registry)

	app := &App{
		Config:    cfg,
		Registry:  registry,
		Paths:     paths,
		Evaluator: cfg.Evaluator(),
		out:       out,
	}
	app.Presenter = app.newPresenter(tui.FormatTable)

	return app
}

// SetFormat switches the presenter to the named output format.
func (a *App) SetFormat(name string) error {
	format, err := tui.ParseFormat(name)
	if err != nil {
		return err
	}
	a.Presenter = a.newPresenter(format)
	return nil
}

func (a *App) newPresenter(format tui.Format) tui.Presenter {
	return tui.NewPresenter(format, tui.PresenterOptions{
		Writer:    a.out,
		UseColors: useColors(a.Config, a.out),
		Verbose:   globalFlags.Verbose,
	})
}

// useColors enables colors for terminals only, unless forced by config.
func useColors(cfg *config.Config, w io.Writer) bool {
	switch cfg.Display.Colors {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return tui.IsWriterTerminal(w) && cfg.ShouldUseColors()
	}
}

// GlobalFlags holds the global command flags.
type GlobalFlags struct {
	ConfigPath string
	Verbose    bool
	NoColor    bool
}

var globalFlags GlobalFlags

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "toolgate",
		Short: "Policy gate for AI coding agent tool calls",
		Long: `Toolgate is a pre-execution policy gate for AI coding agents.

It plugs into the native hook systems of agents (Claude Code, Gemini CLI)
and decides, before a tool runs, whether a shell command, file write or
network fetch may proceed. Destructive commands, ad-hoc process
termination, writes outside the workspace and fetches from untrusted
destinations are blocked with an explanation.`,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if os.Getenv("NO_COLOR") != "" {
				globalFlags.NoColor = true
			}

			if os.Getenv("TOOLGATE_NO_COLOR") != "" {
				globalFlags.NoColor = true
			}

			setupInternalLogger()

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "increase output verbosity")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.NoColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		NewHookCmd(),
		NewCheckCmd(),
		NewRulesCmd(),
		NewInstallCmd(),
		NewUninstallCmd(),
		NewStatusCmd(),
		NewConfigCmd(),
		NewSchemaCmd(),
		NewVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// setupInternalLogger sets up the DRY logger.
func setupInternalLogger() {
	// stdout carries hook envelopes and rendered output only.
	_ = os.Setenv("APP_LOG_SKIP_STDOUT_LOGGER", "true")

	log.Init("toolgate", "cli")
}

// resolvePaths applies the --config flag to the platform paths.
func resolvePaths() *config.Paths {
	paths := config.ResolvePaths()
	if globalFlags.ConfigPath != "" {
		paths.ConfigFile = globalFlags.ConfigPath
		paths.ConfigDir = filepath.Dir(globalFlags.ConfigPath)
	}
	return paths
}

// loadApp loads the application with configuration. A configuration that
// cannot be read or fails validation is an error.
func loadApp(cmd *cobra.Command) (*App, error) {
	cfg, err := config.Load(globalFlags.ConfigPath)
	if err != nil {
		return nil, ErrConfig("invalid configuration", err)
	}

	return newApp(cmd, cfg), nil
}

// loadHookApp loads the application for the hook path, where a broken
// configuration must not break the agent: defaults are used instead.
func loadHookApp(cmd *cobra.Command) *App {
	cfg, err := config.Load(globalFlags.ConfigPath)
	if err != nil {
		log.Warnf("failed to load configuration, using defaults: %v", err)
		cfg = config.Default()
	}

	return newApp(cmd, cfg)
}

func newApp(cmd *cobra.Command, cfg *config.Config) *App {
	if globalFlags.NoColor {
		cfg.Display.Colors = config.ColorNever
	}

	return NewApp(cfg, resolvePaths(), cmd.OutOrStdout())
}
