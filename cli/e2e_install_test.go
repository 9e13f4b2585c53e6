package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/safedep/toolgate/cli"
	"github.com/safedep/toolgate/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const existingClaudeSettings = `{
  "model": "opus",
  "hooks": {
    "PreToolUse": [
      {
        "matcher": "Bash",
        "hooks": [
          {"type": "command", "command": "other-tool check"}
        ]
      }
    ]
  }
}
`

func readSettings(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var settings map[string]any
	require.NoError(t, json.Unmarshal(data, &settings))
	return settings
}

func TestInstall_DryRunLeavesSettingsUntouched(t *testing.T) {
	env := newTestEnv(t)
	claudeDir := env.installAgent(".claude")
	settingsPath := filepath.Join(claudeDir, "settings.json")

	stdout, _, err := env.run("install", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Dry run")
	assert.Contains(t, stdout, "+++ settings.json")
	assert.Contains(t, stdout, "toolgate _hook claude-code PreToolUse")
	assert.NoFileExists(t, settingsPath)
}

func TestInstall_StatusUninstall(t *testing.T) {
	env := newTestEnv(t)
	claudeDir := env.installAgent(".claude")
	settingsPath := filepath.Join(claudeDir, "settings.json")
	require.NoError(t, os.WriteFile(settingsPath, []byte(existingClaudeSettings), 0o600))

	stdout, _, err := env.run("install", "--format", "json")
	require.NoError(t, err)

	var install tui.InstallView
	require.NoError(t, json.Unmarshal([]byte(stdout), &install))
	require.Len(t, install.Agents, 2)

	var claude, gemini tui.AgentInstallView
	for _, a := range install.Agents {
		switch a.Name {
		case "claude-code":
			claude = a
		case "gemini":
			gemini = a
		}
	}
	assert.True(t, claude.Installed)
	assert.Equal(t, []string{"PreToolUse"}, claude.HooksInstalled)
	assert.NotEmpty(t, claude.BackupPath)
	assert.FileExists(t, claude.BackupPath)
	assert.False(t, gemini.Installed)

	settings := readSettings(t, settingsPath)
	assert.Equal(t, "opus", settings["model"])
	matchers := settings["hooks"].(map[string]any)["PreToolUse"].([]any)
	assert.Len(t, matchers, 2, "other tools' hooks are kept")

	stdout, _, err = env.run("status", "--format", "json")
	require.NoError(t, err)
	var status tui.StatusView
	require.NoError(t, json.Unmarshal([]byte(stdout), &status))
	for _, a := range status.Agents {
		if a.Name == "claude-code" {
			assert.True(t, a.HooksActive)
			assert.Equal(t, []string{"PreToolUse"}, a.Hooks)
		}
	}
	assert.True(t, status.Config.Exists)
	assert.Equal(t, "approve", status.Config.Fallback)

	stdout, _, err = env.run("install")
	require.NoError(t, err)
	assert.Contains(t, stdout, "already installed")

	stdout, _, err = env.run("uninstall")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed PreToolUse hook")

	settings = readSettings(t, settingsPath)
	matchers = settings["hooks"].(map[string]any)["PreToolUse"].([]any)
	assert.Len(t, matchers, 1)
}

func TestInstall_UnknownAgent(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run("install", "--agent", "cursor")
	assertExitCode(t, err, cli.ExitAgentNotFound)

	_, _, err = env.run("uninstall", "--agent", "cursor")
	assertExitCode(t, err, cli.ExitAgentNotFound)
}

func TestInstall_GeminiOnly(t *testing.T) {
	env := newTestEnv(t)
	env.installAgent(".claude")
	geminiDir := env.installAgent(".gemini")

	_, _, err := env.run("install", "--agent", "gemini")
	require.NoError(t, err)

	settings := readSettings(t, filepath.Join(geminiDir, "settings.json"))
	assert.Contains(t, settings["hooks"], "BeforeTool")
	assert.NoFileExists(t, filepath.Join(env.home, ".claude", "settings.json"))
}

func TestStatus_Table(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run("status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Claude Code")
	assert.Contains(t, stdout, "not found")
	assert.Contains(t, stdout, "Workspace")
	assert.Contains(t, stdout, env.configPath)
}
