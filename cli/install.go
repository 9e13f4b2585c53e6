package cli

import (
	"context"
	"path/filepath"

	"github.com/safedep/toolgate/agent"
	"github.com/safedep/toolgate/config"
	"github.com/safedep/toolgate/tui"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var (
		agents   []string
		dryRun   bool
		force    bool
		noBackup bool
		format   string
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the gate hooks for AI coding agents",
		Long: `Install the gate hooks for AI coding agents.

Discovers all supported agents on the system and registers toolgate as a
pre-execution hook in their settings file. Hooks of other tools are kept.
The settings file is backed up before it is changed unless --no-backup is
given. Use --dry-run to print the change as a unified diff.`,
		Example: `  toolgate install
  toolgate install --agent claude-code
  toolgate install --dry-run
  toolgate install --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			if err := app.SetFormat(format); err != nil {
				return err
			}

			if !dryRun {
				if err := config.EnsureDirectories(); err != nil {
					return err
				}
			}

			adapters := app.Registry.All()
			if len(agents) > 0 {
				adapters = filterAdapters(adapters, agents)
				if len(adapters) == 0 {
					return ErrAgentNotFound(agents[0])
				}
			}

			view := &tui.InstallView{
				DryRun: dryRun,
				Config: app.Paths.ConfigFile,
			}

			opts := agent.InstallOptions{
				DryRun:    dryRun,
				Force:     force,
				Backup:    !noBackup,
				BackupDir: app.Paths.BackupsDir,
			}

			var failure error
			for _, adapter := range adapters {
				agentView, err := installAgent(ctx, adapter, opts)
				if err != nil && failure == nil {
					failure = err
				}
				view.Agents = append(view.Agents, agentView)
			}

			if err := app.Presenter.RenderInstall(view); err != nil {
				return err
			}

			if failure != nil {
				return ErrHookFailed("failed to install hooks", failure)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&agents, "agent", nil, "install for specific agent only (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be installed")
	cmd.Flags().BoolVar(&force, "force", false, "reinstall hooks even if already present")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip backup of the settings file")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json")

	return cmd
}

func installAgent(ctx context.Context, adapter agent.Adapter, opts agent.InstallOptions) (tui.AgentInstallView, error) {
	agentView := tui.AgentInstallView{
		Name:        adapter.Name(),
		DisplayName: adapter.DisplayName(),
	}

	detection, err := adapter.Detect(ctx)
	if err != nil {
		agentView.Error = err.Error()
		return agentView, err
	}

	agentView.Installed = detection.Installed
	agentView.Version = detection.Version
	agentView.SettingsPath = detection.SettingsPath

	if !detection.Installed {
		return agentView, nil
	}

	result, err := adapter.Install(ctx, opts)
	if err != nil {
		agentView.Error = err.Error()
		return agentView, err
	}

	agentView.HooksInstalled = result.HooksInstalled
	agentView.Warnings = result.Warnings
	agentView.Diff = result.Diff
	if result.SettingsPath != "" {
		agentView.SettingsPath = result.SettingsPath
		agentView.BackupPath = result.BackupPaths[filepath.Base(result.SettingsPath)]
	}

	return agentView, nil
}

func filterAdapters(adapters []agent.Adapter, names []string) []agent.Adapter {
	nameSet := make(map[string]bool)
	for _, name := range names {
		nameSet[name] = true
	}

	filtered := make([]agent.Adapter, 0)
	for _, adapter := range adapters {
		if nameSet[adapter.Name()] {
			filtered = append(filtered, adapter)
		}
	}
	return filtered
}
