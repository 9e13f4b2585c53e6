package gemini

import (
	"context"
	"fmt"

	"github.com/safedep/toolgate/agent"
	"github.com/safedep/toolgate/agent/utils"
)

var HookTypes = []string{
	"BeforeTool",
}

// ToolMatcher limits the hook to the tools the gate has rules for.
const ToolMatcher = "run_shell_command|write_file|replace|web_fetch"

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

func InstallHooks(ctx context.Context, opts agent.InstallOptions) (*agent.InstallResult, error) {
	detection, err := Detect(ctx)
	if err != nil {
		return &agent.InstallResult{Error: err}, err
	}

	if !detection.Installed {
		err := fmt.Errorf("Gemini CLI is not installed")
		return &agent.InstallResult{Error: err}, err
	}

	return utils.Install(settingsFile(detection), opts)
}

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
