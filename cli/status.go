package cli

import (
	"os"

	"github.com/safedep/toolgate/internal/version"
	"github.com/safedep/toolgate/tui"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show installation status and effective policy",
		Long: `Show installation status and effective policy.

Displays the current status of the tool including:
- Tool version
- Detected agents and their hook status
- The workspace root resolved from the current directory
- Configuration location and policy settings`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			if err := app.SetFormat(format); err != nil {
				return err
			}

			view := &tui.StatusView{
				Version: version.Version,
			}

			for _, adapter := range app.Registry.All() {
				detection, _ := adapter.Detect(ctx)
				hookStatus, _ := adapter.Status(ctx)

				agentView := tui.AgentStatusView{
					Name:        adapter.Name(),
					DisplayName: adapter.DisplayName(),
				}

				if detection != nil {
					agentView.SettingsPath = detection.SettingsPath
					if detection.Installed {
						agentView.Installed = true
						agentView.Version = detection.Version
					}
				}

				if hookStatus != nil {
					agentView.Hooks = hookStatus.Hooks
					agentView.HooksActive = hookStatus.Installed && hookStatus.Valid
					agentView.Issues = hookStatus.Issues
				}

				view.Agents = append(view.Agents, agentView)
			}

			resolver := app.Config.Resolver()
			wd := resolver.WorkingDir("")
			view.Workspace = tui.WorkspaceView{
				WorkingDir: wd,
				Root:       resolver.Resolve(wd),
				Markers:    resolver.Markers(),
			}

			_, statErr := os.Stat(app.Paths.ConfigFile)
			view.Config = tui.ConfigStatusView{
				Location:       app.Paths.ConfigFile,
				Exists:         statErr == nil,
				Fallback:       string(app.Config.Policy.Fallback),
				RestartCommand: app.Config.Policy.RestartCommand,
				BlockKeyword:   app.Config.Hook.BlockKeyword,
				EmitApprove:    app.Config.Hook.EmitApprove,
			}

			return app.Presenter.RenderStatus(view)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json")

	return cmd
}
