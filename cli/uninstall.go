package cli

import (
	"github.com/safedep/toolgate/agent"
	"github.com/safedep/toolgate/tui"
	"github.com/spf13/cobra"
)

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd() *cobra.Command {
	var (
		agents        []string
		purge         bool
		dryRun        bool
		restoreBackup bool
		format        string
	)

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the gate hooks from AI coding agents",
		Long: `Remove the gate hooks from AI coding agents.

Removes the toolgate entries from the settings file of all or the
specified agents, leaving other hooks in place. Optionally removes the
toolgate configuration file as well.`,
		Example: `  toolgate uninstall
  toolgate uninstall --agent gemini
  toolgate uninstall --dry-run
  toolgate uninstall --restore-backup`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			if err := app.SetFormat(format); err != nil {
				return err
			}

			adapters := app.Registry.All()
			if len(agents) > 0 {
				adapters = filterAdapters(adapters, agents)
				if len(adapters) == 0 {
					return ErrAgentNotFound(agents[0])
				}
			}

			view := &tui.UninstallView{DryRun: dryRun}

			opts := agent.UninstallOptions{
				DryRun:        dryRun,
				RestoreBackup: restoreBackup,
				BackupDir:     app.Paths.BackupsDir,
			}

			var failure error
			for _, adapter := range adapters {
				result, err := adapter.Uninstall(ctx, opts)
				if err != nil {
					if failure == nil {
						failure = err
					}
					view.Agents = append(view.Agents, tui.AgentUninstallView{
						Name:        adapter.Name(),
						DisplayName: adapter.DisplayName(),
						Error:       err.Error(),
					})
					continue
				}

				view.Agents = append(view.Agents, tui.AgentUninstallView{
					Name:            adapter.Name(),
					DisplayName:     adapter.DisplayName(),
					SettingsPath:    result.SettingsPath,
					HooksRemoved:    result.HooksRemoved,
					BackupsRestored: result.BackupsRestored,
					Diff:            result.Diff,
				})
			}

			if purge && !dryRun {
				if err := removeConfigFile(app.Paths.ConfigFile); err != nil {
					return err
				}
			}

			if err := app.Presenter.RenderUninstall(view); err != nil {
				return err
			}

			if failure != nil {
				return ErrHookFailed("failed to remove hooks", failure)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&agents, "agent", nil, "uninstall from specific agent only (repeatable)")
	cmd.Flags().BoolVar(&purge, "purge", false, "also remove the configuration file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be removed")
	cmd.Flags().BoolVar(&restoreBackup, "restore-backup", false, "restore the newest settings backup if available")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json")

	return cmd
}
