package claudecode

import (
	"context"
	"fmt"

	"github.com/safedep/toolgate/agent"
	"github.com/safedep/toolgate/agent/utils"
)

// HookTypes are the Claude Code hook types the gate handles.
var HookTypes = []string{
	"PreToolUse",
}

// ToolMatcher limits the hook to the tools the gate has rules for, so the
// default approval never pre-approves tools it does not inspect.
const ToolMatcher = "Bash|Write|Edit|MultiEdit|NotebookEdit|WebFetch"

// GenerateHooksConfig generates the hooks configuration for toolgate.
func GenerateHooksConfig() utils.SettingsHooks {
	hooks := make(utils.SettingsHooks)
	for _, hookType := range HookTypes {
		hooks[hookType] = []utils.HookMatcher{{
			Matcher: ToolMatcher,
			Hooks: []utils.HookCommand{{
				Type:    "command",
				Command: utils.HookCommandLine(AgentName, hookType),
			}},
		}}
	}
	return hooks
}

func settingsFile(detection *agent.DetectionResult) utils.SettingsFile {
	return utils.SettingsFile{
		AgentName: AgentName,
		Path:      detection.SettingsPath,
		HookTypes: HookTypes,
		Hooks:     GenerateHooksConfig(),
	}
}

// InstallHooks installs hooks for Claude Code by modifying settings.json.
func InstallHooks(ctx context.Context, opts agent.InstallOptions) (*agent.InstallResult, error) {
	detection, err := Detect(ctx)
	if err != nil {
		return &agent.InstallResult{Error: err}, err
	}

	if !detection.Installed {
		err := fmt.Errorf("Claude Code is not installed")
		return &agent.InstallResult{Error: err}, err
	}

	return utils.Install(settingsFile(detection), opts)
}

// UninstallHooks removes toolgate hooks from Claude Code.
func UninstallHooks(ctx context.Context, opts agent.UninstallOptions) (*agent.UninstallResult, error) {
	detection, err := Detect(ctx)
	if err != nil {
		return &agent.UninstallResult{Error: err}, err
	}

	if !detection.Installed {
		return &agent.UninstallResult{Success: true}, nil
	}

	return utils.Uninstall(settingsFile(detection), opts)
}

// GetHookStatus checks the current hook state.
func GetHookStatus(ctx context.Context) (*agent.HookStatus, error) {
	detection, err := Detect(ctx)
	if err != nil {
		return &agent.HookStatus{}, err
	}

	if !detection.Installed {
		return &agent.HookStatus{SettingsPath: detection.SettingsPath}, nil
	}

	return utils.Status(settingsFile(detection)), nil
}
