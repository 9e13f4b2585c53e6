package cli

import (
	"github.com/safedep/toolgate/core/patterns"
	"github.com/safedep/toolgate/tui"
	"github.com/spf13/cobra"
)

// NewRulesCmd creates the rules command.
func NewRulesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the active policy rules",
		Long: `List the active policy rules.

Shows the destructive and termination signatures, the termination
carve-outs, the allowed fetch destinations and the workspace markers in
effect with the current configuration. Use --verbose to include the
regular expressions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			if err := app.SetFormat(format); err != nil {
				return err
			}

			return app.Presenter.RenderRules(buildRulesView(app))
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json")

	return cmd
}

func buildRulesView(app *App) *tui.RulesView {
	lib := app.Config.Library()
	opts := lib.Options()

	view := &tui.RulesView{
		AllowedPrefixes:  lib.AllowedPrefixes(),
		WorkspaceMarkers: app.Config.Policy.WorkspaceMarkers,
		RestartCommand:   app.Config.Policy.RestartCommand,
		MaxPIDDigits:     opts.MaxPIDDigits,
		MinPatternLength: opts.MinPatternLength,
	}

	for _, group := range [][]*patterns.Signature{lib.Destructive(), lib.Termination(), lib.CarveOuts()} {
		for _, sig := range group {
			view.Signatures = append(view.Signatures, tui.SignatureView{
				Name:        sig.Name,
				Class:       string(sig.Class),
				Description: sig.Description,
				Pattern:     sig.Pattern(),
			})
		}
	}

	return view
}
