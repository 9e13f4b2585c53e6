package tui

// VerdictView is the result of evaluating one request.
type VerdictView struct {
	RequestID     string `json:"request_id"`
	Kind          string `json:"kind"`
	Target        string `json:"target,omitempty"`
	Outcome       string `json:"outcome"`
	Check         string `json:"check,omitempty"`
	Reason        string `json:"reason,omitempty"`
	WorkingDir    string `json:"working_dir,omitempty"`
	WorkspaceRoot string `json:"workspace_root,omitempty"`
}

// RulesView describes the active pattern library.
type RulesView struct {
	Signatures       []SignatureView `json:"signatures"`
	AllowedPrefixes  []string        `json:"allowed_url_prefixes"`
	WorkspaceMarkers []string        `json:"workspace_markers"`
	RestartCommand   string          `json:"restart_command"`
	MaxPIDDigits     int             `json:"max_pid_digits"`
	MinPatternLength int             `json:"min_pattern_length"`
}

// SignatureView is one compiled signature.
type SignatureView struct {
	Name        string `json:"name"`
	Class       string `json:"class"`
	Description string `json:"description"`
	Pattern     string `json:"pattern,omitempty"`
}

// InstallView represents installation results.
type InstallView struct {
	DryRun bool               `json:"dry_run"`
	Agents []AgentInstallView `json:"agents"`
	Config string             `json:"config"`
}

// AgentInstallView represents an agent's installation result.
type AgentInstallView struct {
	Name           string   `json:"name"`
	DisplayName    string   `json:"display_name"`
	Installed      bool     `json:"installed"`
	Version        string   `json:"version,omitempty"`
	SettingsPath   string   `json:"settings_path,omitempty"`
	HooksInstalled []string `json:"hooks_installed,omitempty"`
	BackupPath     string   `json:"backup_path,omitempty"`
	Diff           string   `json:"diff,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// UninstallView represents uninstallation results.
type UninstallView struct {
	DryRun bool                 `json:"dry_run"`
	Agents []AgentUninstallView `json:"agents"`
}

// AgentUninstallView represents an agent's uninstallation result.
type AgentUninstallView struct {
	Name            string   `json:"name"`
	DisplayName     string   `json:"display_name"`
	SettingsPath    string   `json:"settings_path,omitempty"`
	HooksRemoved    []string `json:"hooks_removed,omitempty"`
	BackupsRestored bool     `json:"backups_restored"`
	Diff            string   `json:"diff,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// StatusView represents the status output data.
type StatusView struct {
	Version   string            `json:"version"`
	Agents    []AgentStatusView `json:"agents"`
	Workspace WorkspaceView     `json:"workspace"`
	Config    ConfigStatusView  `json:"config"`
}

// AgentStatusView represents an agent's status.
type AgentStatusView struct {
	Name         string   `json:"name"`
	DisplayName  string   `json:"display_name"`
	Installed    bool     `json:"installed"`
	Version      string   `json:"version,omitempty"`
	SettingsPath string   `json:"settings_path,omitempty"`
	HooksActive  bool     `json:"hooks_active"`
	Hooks        []string `json:"hooks,omitempty"`
	Issues       []string `json:"issues,omitempty"`
}

// WorkspaceView describes how the workspace root resolves from here.
type WorkspaceView struct {
	WorkingDir string   `json:"working_dir"`
	Root       string   `json:"root"`
	Markers    []string `json:"markers"`
}

// ConfigStatusView represents configuration status.
type ConfigStatusView struct {
	Location       string `json:"location"`
	Exists         bool   `json:"exists"`
	Fallback       string `json:"fallback"`
	RestartCommand string `json:"restart_command"`
	BlockKeyword   string `json:"block_keyword"`
	EmitApprove    bool   `json:"emit_approve"`
}

// ConfigView represents configuration for display.
type ConfigView struct {
	Location string         `json:"location"`
	Values   map[string]any `json:"values"`
}
