package cli

import (
	"fmt"
	"strings"

	"github.com/safedep/toolgate/core/request"
	"github.com/safedep/toolgate/core/security"
	"github.com/safedep/toolgate/core/workspace"
	"github.com/safedep/toolgate/tui"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	var (
		format string
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "check <shell|write|edit|multiedit|fetch> <target>...",
		Short: "Evaluate a tool call against the policy",
		Long: `Evaluate a tool call against the policy without running it.

The verdict is computed exactly as for a hook invocation, using the
current directory (or --dir) as the process working directory. Shell
commands may be given as several arguments; they are joined with spaces.
Use -- before a command that starts with or contains flags.

Exits with status 2 when the call would be blocked.`,
		Example: `  toolgate check shell 'pkill -f "node server.js"'
  toolgate check shell -- rm -rf /
  toolgate check write ../outside/file.txt
  toolgate check fetch https://example.com/install.sh --format json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			if err := app.SetFormat(format); err != nil {
				return err
			}

			kind, err := request.ParseKind(args[0])
			if err != nil || kind == request.KindOther {
				return fmt.Errorf("unknown kind %q (want shell, write, edit, multiedit or fetch)", args[0])
			}
			target := strings.Join(args[1:], " ")

			req := request.New(kind)
			switch {
			case kind == request.KindShellExecute:
				req.Command = target
			case kind.IsFileModification():
				req.Path = target
			case kind == request.KindNetworkFetch:
				req.URL = target
			}

			opts := []workspace.Option{workspace.WithMarkers(app.Config.Policy.WorkspaceMarkers...)}
			if dir != "" {
				opts = append(opts, workspace.WithGetwd(func() (string, error) { return dir, nil }))
			}
			resolver := workspace.NewResolver(opts...)

			wd := resolver.WorkingDir("")
			req.WorkingDir = wd

			evaluator := security.NewDefault(app.Config.Library(), resolver, app.Config.EvaluatorConfig())
			verdict := evaluator.Evaluate(cmd.Context(), req)

			view := &tui.VerdictView{
				RequestID:     req.ID,
				Kind:          kind.DisplayName(),
				Target:        target,
				Outcome:       verdict.Outcome.String(),
				Check:         verdict.CheckName,
				Reason:        verdict.Reason,
				WorkingDir:    wd,
				WorkspaceRoot: resolver.Resolve(wd),
			}

			if err := app.Presenter.RenderVerdict(view); err != nil {
				return err
			}

			if verdict.IsBlocked() {
				return &exitError{code: ExitBlocked}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json")
	cmd.Flags().StringVar(&dir, "dir", "", "evaluate as if run from this directory")

	return cmd
}
