// Package agent provides the adapter pattern for agent integrations.
package agent

import (
	"context"

	"github.com/safedep/toolgate/core/request"
	"github.com/safedep/toolgate/core/security"
)

// Standard agent identifiers.
const (
	AgentClaudeCode = "claude-code"
	AgentGemini     = "gemini"
)

// Standard agent display names.
const (
	DisplayClaudeCode = "Claude Code"
	DisplayGemini     = "Gemini CLI"
)

// AgentDisplayName returns the display name for an agent identifier.
func AgentDisplayName(name string) string {
	switch name {
	case AgentClaudeCode:
		return DisplayClaudeCode
	case AgentGemini:
		return DisplayGemini
	default:
		return name
	}
}

// DetectionResult contains information about a detected agent.
type DetectionResult struct {
	// Installed indicates if the agent is installed.
	Installed bool
	// Version is the detected version of the agent.
	Version string
	// Path is the installation path of the agent.
	Path string
	// ConfigPath is the configuration directory path.
	ConfigPath string
	// SettingsPath is the settings file the gate hooks live in.
	SettingsPath string
	// Message provides additional context (e.g., why not installed).
	Message string
}

// InstallOptions configures hook installation.
type InstallOptions struct {
	// DryRun shows what would be installed without making changes.
	DryRun bool
	// Force reinstalls the gate hooks even if they are already present.
	Force bool
	// Backup creates a backup of the settings file before writing.
	Backup bool
	// BackupDir is the directory to store backups. Empty means next to
	// the settings file.
	BackupDir string
}

// InstallResult contains the result of hook installation.
type InstallResult struct {
	// Success indicates if installation was successful.
	Success bool
	// SettingsPath is the file that was (or would be) modified.
	SettingsPath string
	// HooksInstalled is the list of hook types that were installed.
	HooksInstalled []string
	// BackupPaths maps file names to their backup paths.
	BackupPaths map[string]string
	// Diff is the unified diff of the settings file.
	Diff string
	// Warnings contains non-fatal warnings.
	Warnings []string
	// Error contains the error if installation failed.
	Error error
}

// UninstallOptions configures hook removal.
type UninstallOptions struct {
	// DryRun shows what would be removed without making changes.
	DryRun bool
	// RestoreBackup restores the newest backup instead of editing the file.
	RestoreBackup bool
	// BackupDir is the directory containing backups.
	BackupDir string
}

// UninstallResult contains the result of hook removal.
type UninstallResult struct {
	// Success indicates if uninstallation was successful.
	Success bool
	// SettingsPath is the file that was (or would be) modified.
	SettingsPath string
	// HooksRemoved is the list of hook types that were removed.
	HooksRemoved []string
	// BackupsRestored indicates if a backup was restored.
	BackupsRestored bool
	// Diff is the unified diff of the settings file.
	Diff string
	// Error contains the error if uninstallation failed.
	Error error
}

// HookStatus contains the status of installed hooks.
type HookStatus struct {
	// Installed indicates if hooks are installed.
	Installed bool
	// SettingsPath is the inspected settings file.
	SettingsPath string
	// Hooks is the list of installed hook types.
	Hooks []string
	// Valid indicates if all expected hooks are present.
	Valid bool
	// Issues lists any problems with the hooks.
	Issues []string
}

// Adapter defines the interface for agent integrations.
type Adapter interface {
	// Name returns the machine identifier (e.g., "claude-code").
	Name() string

	// DisplayName returns the human-readable name (e.g., "Claude Code").
	DisplayName() string

	// Detect determines if the agent is installed.
	Detect(ctx context.Context) (*DetectionResult, error)

	// Install installs the gate hooks for this agent.
	Install(ctx context.Context, opts InstallOptions) (*InstallResult, error)

	// Uninstall removes the gate hooks from this agent.
	Uninstall(ctx context.Context, opts UninstallOptions) (*UninstallResult, error)

	// Status checks the current hook state.
	Status(ctx context.Context) (*HookStatus, error)

	// ParseRequest decodes an agent hook envelope into a gate request.
	ParseRequest(ctx context.Context, hookType string, rawData []byte) (*request.Request, error)

	// Respond encodes a verdict in the agent's hook response format.
	Respond(verdict security.Verdict, opts ResponseOptions) *HookResponse
}
