package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TablePresenter renders output in table format.
type TablePresenter struct {
	w         io.Writer
	color     *Colorizer
	verbose   bool
	termWidth int
}

// NewTablePresenter creates a new table presenter.
func NewTablePresenter(opts PresenterOptions) *TablePresenter {
	termWidth := opts.TerminalWidth
	if termWidth == 0 {
		termWidth = TerminalWidth(opts.Writer)
	}
	return &TablePresenter{
		w:         opts.Writer,
		color:     NewColorizer(opts.UseColors),
		verbose:   opts.Verbose,
		termWidth: termWidth,
	}
}

// cell pads s to width, measuring printable characters only.
func cell(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// row joins cells left to right, indented by two spaces.
func row(cells ...string) string {
	return "  " + strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " ")
}

// wrap word-wraps text to the terminal width with the given indent.
func (p *TablePresenter) wrap(text string, indent int) string {
	width := p.termWidth - indent
	if width < 20 {
		width = 20
	}
	style := lipgloss.NewStyle().Width(width).PaddingLeft(indent)
	lines := strings.Split(style.Render(text), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, "\n")
}

// RenderVerdict renders the outcome of a single evaluation.
func (p *TablePresenter) RenderVerdict(v *VerdictView) error {
	tw := &tableWriter{w: p.w}
	const label = 12

	tw.println(row(cell("Outcome", label), p.color.Outcome(v.Outcome)))
	tw.println(row(cell("Kind", label), v.Kind))
	if v.Target != "" {
		target := v.Target
		if !p.verbose {
			target = TruncateString(target, p.termWidth-label-2)
		}
		tw.println(row(cell("Target", label), target))
	}
	if v.Check != "" {
		tw.println(row(cell("Check", label), v.Check))
	}
	if p.verbose {
		tw.println(row(cell("Request", label), p.color.Dim(v.RequestID)))
		if v.WorkingDir != "" {
			tw.println(row(cell("Working dir", label), p.color.Path(v.WorkingDir)))
		}
		if v.WorkspaceRoot != "" {
			tw.println(row(cell("Workspace", label), p.color.Path(v.WorkspaceRoot)))
		}
	}
	if v.Reason != "" {
		tw.println()
		tw.println(p.wrap(v.Reason, 2))
	}

	return tw.Err()
}

// RenderRules renders the active pattern library.
func (p *TablePresenter) RenderRules(rules *RulesView) error {
	tw := &tableWriter{w: p.w}

	nameWidth := 0
	for _, s := range rules.Signatures {
		nameWidth = max(nameWidth, len(s.Name))
	}
	nameWidth += 2

	var classes []string
	byClass := make(map[string][]SignatureView)
	for _, s := range rules.Signatures {
		if _, ok := byClass[s.Class]; !ok {
			classes = append(classes, s.Class)
		}
		byClass[s.Class] = append(byClass[s.Class], s)
	}

	for _, class := range classes {
		tw.heading(p.color.Header(fmt.Sprintf("Signatures: %s (%d)", class, len(byClass[class]))))
		for _, s := range byClass[class] {
			tw.println(row(cell(s.Name, nameWidth), s.Description))
			if p.verbose && s.Pattern != "" {
				tw.println(row(cell("", nameWidth), p.color.Dim(s.Pattern)))
			}
		}
		tw.println()
	}

	tw.heading(p.color.Header(fmt.Sprintf("Allowed URL prefixes (%d)", len(rules.AllowedPrefixes))))
	for _, prefix := range rules.AllowedPrefixes {
		tw.printf("  %s\n", prefix)
	}
	tw.println()

	const label = 20
	tw.heading(p.color.Header("Policy"))
	tw.println(row(cell("Restart command", label), rules.RestartCommand))
	tw.println(row(cell("Max pid digits", label), fmt.Sprintf("%d", rules.MaxPIDDigits)))
	tw.println(row(cell("Min pattern length", label), fmt.Sprintf("%d", rules.MinPatternLength)))
	tw.println(row(cell("Workspace markers", label), FormatList(rules.WorkspaceMarkers)))

	return tw.Err()
}

// RenderInstall renders the installation result.
func (p *TablePresenter) RenderInstall(result *InstallView) error {
	tw := &tableWriter{w: p.w}

	tw.println("Discovering agents...")
	tw.println()
	for _, agent := range result.Agents {
		if agent.Installed {
			tw.printf("  %s  %s %s\n", p.color.StatusOK(), agent.DisplayName, agent.Version)
			if agent.SettingsPath != "" {
				tw.printf("        %s\n", p.color.Path(agent.SettingsPath))
			}
		} else {
			tw.printf("  %s  %s\n", p.color.StatusSkip(), agent.DisplayName)
			tw.printf("        not installed\n")
		}
	}
	tw.println()

	if result.DryRun {
		tw.println("Dry run, no files were changed.")
		tw.println()
	} else {
		tw.println("Installing hooks...")
		tw.println()
	}

	failed := false
	for _, agent := range result.Agents {
		if !agent.Installed {
			continue
		}
		tw.printf("  %s\n", agent.DisplayName)
		for _, hook := range agent.HooksInstalled {
			tw.println(row(cell("  -> "+hook+" hook", 42), p.color.StatusOK()))
		}
		if agent.BackupPath != "" {
			tw.printf("    -> Backup: %s\n", p.color.Path(agent.BackupPath))
		}
		for _, warning := range agent.Warnings {
			tw.printf("    -> Note: %s\n", warning)
		}
		if agent.Error != "" {
			failed = true
			tw.printf("    -> %s %s\n", p.color.StatusFail(), p.color.Error(agent.Error))
		}
		if agent.Diff != "" {
			tw.println()
			p.renderDiff(tw, agent.Diff)
		}
		tw.println()
	}

	switch {
	case failed:
		tw.println(p.color.Warning("Installation finished with errors."))
	case result.DryRun:
		tw.println("Run without --dry-run to apply.")
	default:
		tw.println(p.color.Success("Installation complete."))
		tw.println()
		tw.printf("  %-11s %s\n", "Config", p.color.Path(result.Config))
		tw.println()
		tw.println("Run 'toolgate status' to verify.")
	}

	return tw.Err()
}

// RenderUninstall renders the uninstallation result.
func (p *TablePresenter) RenderUninstall(result *UninstallView) error {
	tw := &tableWriter{w: p.w}

	if result.DryRun {
		tw.println("Dry run, no files were changed.")
	} else {
		tw.println("Uninstalling hooks...")
	}
	tw.println()

	for _, agent := range result.Agents {
		if len(agent.HooksRemoved) == 0 && !agent.BackupsRestored && agent.Error == "" {
			continue
		}
		tw.printf("  %s\n", agent.DisplayName)
		for _, hook := range agent.HooksRemoved {
			tw.printf("    -> Removed %s hook\n", hook)
		}
		if agent.BackupsRestored {
			tw.printf("    -> Backups restored\n")
		}
		if agent.Error != "" {
			tw.printf("    -> %s %s\n", p.color.StatusFail(), p.color.Error(agent.Error))
		}
		if agent.Diff != "" {
			tw.println()
			p.renderDiff(tw, agent.Diff)
		}
		tw.println()
	}

	if !result.DryRun {
		tw.println(p.color.Success("Uninstallation complete."))
	}
	return tw.Err()
}

// RenderStatus renders the tool status.
func (p *TablePresenter) RenderStatus(status *StatusView) error {
	tw := &tableWriter{w: p.w}

	tw.printf("%s\n\n", p.color.Header("toolgate "+status.Version))

	tw.heading(p.color.Header("Agents"))
	for _, agent := range status.Agents {
		var state, version, hooks string
		if agent.Installed {
			state = "installed"
			version = agent.Version
			if agent.HooksActive {
				hooks = "hooks: " + FormatList(agent.Hooks)
			} else {
				hooks = p.color.Warning("hooks: not active")
			}
		} else {
			state = "not found"
			version = "-"
			hooks = "-"
		}
		tw.println(row(cell(p.color.Agent(agent.DisplayName), 14), cell(state, 12), cell(version, 12), hooks))
		for i, issue := range agent.Issues {
			tw.printf("    %s%s\n", TreePrefix(i == len(agent.Issues)-1), p.color.Dim(issue))
		}
	}
	tw.println()

	const label = 16
	tw.heading(p.color.Header("Workspace"))
	tw.println(row(cell("Working dir", label), p.color.Path(status.Workspace.WorkingDir)))
	tw.println(row(cell("Root", label), p.color.Path(status.Workspace.Root)))
	tw.println(row(cell("Markers", label), FormatList(status.Workspace.Markers)))
	tw.println()

	location := p.color.Path(status.Config.Location)
	if !status.Config.Exists {
		location += p.color.Dim(" (defaults)")
	}
	tw.heading(p.color.Header("Config"))
	tw.println(row(cell("Location", label), location))
	tw.println(row(cell("Fallback", label), status.Config.Fallback))
	tw.println(row(cell("Restart command", label), status.Config.RestartCommand))
	tw.println(row(cell("Block keyword", label), status.Config.BlockKeyword))
	tw.println(row(cell("Emit approve", label), FormatBool(status.Config.EmitApprove)))

	return tw.Err()
}

// RenderConfig renders the configuration.
func (p *TablePresenter) RenderConfig(config *ConfigView) error {
	tw := &tableWriter{w: p.w}

	tw.heading(p.color.Header("Configuration"))
	tw.printf("Location: %s\n", p.color.Path(config.Location))
	tw.println(HorizontalLine(p.termWidth))
	tw.println()

	for _, kv := range flattenConfig(config.Values, "") {
		tw.println(row(cell(kv[0], 36), kv[1]))
	}
	return tw.Err()
}

// flattenConfig returns dotted key/value pairs sorted by key.
func flattenConfig(m map[string]any, prefix string) [][2]string {
	var out [][2]string
	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			out = append(out, flattenConfig(v, fullKey)...)
		default:
			out = append(out, [2]string{fullKey, fmt.Sprintf("%v", v)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func (p *TablePresenter) renderDiff(tw *tableWriter, diff string) {
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			tw.printf("    %s\n", p.color.DiffHeader(line))
		case strings.HasPrefix(line, "+"):
			tw.printf("    %s\n", p.color.DiffAdd(line))
		case strings.HasPrefix(line, "-"):
			tw.printf("    %s\n", p.color.DiffRemove(line))
		default:
			tw.printf("    %s\n", line)
		}
	}
}

// RenderError renders an error message.
func (p *TablePresenter) RenderError(err error) error {
	_, werr := fmt.Fprintf(p.w, "%s %s\n", p.color.Error("error:"), err.Error())
	return werr
}

// RenderMessage renders a simple message.
func (p *TablePresenter) RenderMessage(message string) error {
	_, err := fmt.Fprintln(p.w, message)
	return err
}

var _ Presenter = (*TablePresenter)(nil)
