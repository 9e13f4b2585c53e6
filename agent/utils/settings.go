package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/safedep/toolgate/agent"
)

// HookMatcher is a matcher entry of a hook type in an agent settings file.
type HookMatcher struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []HookCommand `json:"hooks"`
}

// HookCommand is a single hook command configuration.
type HookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout int    `json:"timeout,omitempty"`
}

// SettingsHooks maps hook types to their matchers.
type SettingsHooks map[string][]HookMatcher

// SettingsFile describes where and how an agent stores its hooks.
type SettingsFile struct {
	// AgentName is used for backup sub-directories.
	AgentName string
	// Path is the settings.json location.
	Path string
	// HookTypes are the hook types the gate installs.
	HookTypes []string
	// Hooks is the configuration to install.
	Hooks SettingsHooks
}

const backupTimeFormat = "20060102150405"

// ReadSettings reads a JSON settings file. A missing file yields empty
// settings. The raw content is returned for diffing.
func ReadSettings(path string) (map[string]interface{}, []byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return make(map[string]interface{}), nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	settings := make(map[string]interface{})
	if len(data) == 0 {
		return settings, data, nil
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, nil, err
	}

	return settings, data, nil
}

// EncodeSettings renders settings the way they are written to disk.
func EncodeSettings(settings map[string]interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteSettings writes encoded settings with owner-only permissions.
func WriteSettings(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// BackupSettings copies the settings file to a timestamped backup, either
// next to it or under backupDir/<agent>. When the newest backup under
// backupDir has the same content, its path is returned instead.
func BackupSettings(sf SettingsFile, backupDir string, now time.Time) (string, error) {
	data, err := os.ReadFile(sf.Path)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s.backup.%s", filepath.Base(sf.Path), now.Format(backupTimeFormat))
	backupPath := filepath.Join(filepath.Dir(sf.Path), name)
	if backupDir != "" {
		if latest, ok := LatestBackup(sf, backupDir); ok {
			if prev, err := os.ReadFile(latest); err == nil && HashContent(string(prev)) == HashContent(string(data)) {
				return latest, nil
			}
		}

		dir := filepath.Join(backupDir, sf.AgentName)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return "", err
		}
		backupPath = filepath.Join(dir, name)
	}

	if err := os.WriteFile(backupPath, data, 0600); err != nil {
		return "", err
	}
	return backupPath, nil
}

// LatestBackup returns the newest backup under backupDir/<agent>.
func LatestBackup(sf SettingsFile, backupDir string) (string, bool) {
	pattern := filepath.Join(backupDir, sf.AgentName, filepath.Base(sf.Path)+".backup.*")
	matches, _ := filepath.Glob(pattern)
	if len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[len(matches)-1], true
}

// HasToolgateHooks checks if toolgate hooks are present for any hook type.
func HasToolgateHooks(settings map[string]interface{}, hookTypes []string) bool {
	return len(InstalledHookTypes(settings, hookTypes, nil)) > 0
}

// InstalledHookTypes returns the hook types carrying a toolgate command.
// When expected is given, only commands equal to expected[hookType] count.
func InstalledHookTypes(settings map[string]interface{}, hookTypes []string, expected map[string]string) []string {
	hooks, ok := settings["hooks"].(map[string]interface{})
	if !ok {
		return nil
	}

	var found []string
	for _, hookType := range hookTypes {
		matchers, _ := hooks[hookType].([]interface{})
		if hasCommand(matchers, expected[hookType]) {
			found = append(found, hookType)
		}
	}
	return found
}

func hasCommand(matchers []interface{}, exact string) bool {
	for _, m := range matchers {
		matcher, ok := m.(map[string]interface{})
		if !ok {
			continue
		}
		hooksList, _ := matcher["hooks"].([]interface{})
		for _, h := range hooksList {
			hook, ok := h.(map[string]interface{})
			if !ok {
				continue
			}
			cmd, _ := hook["command"].(string)
			if exact != "" && cmd == exact {
				return true
			}
			if exact == "" && IsToolgateHookCommand(cmd) {
				return true
			}
		}
	}
	return false
}

// MergeHooks adds the generated hooks to settings, after removing any
// previous toolgate entries so that reinstalling never duplicates them.
// Hooks owned by other tools are preserved.
func MergeHooks(settings map[string]interface{}, generated SettingsHooks) ([]string, error) {
	RemoveHooks(settings)

	hooksSection, ok := settings["hooks"].(map[string]interface{})
	if !ok {
		hooksSection = make(map[string]interface{})
		settings["hooks"] = hooksSection
	}

	hookTypes := make([]string, 0, len(generated))
	for hookType := range generated {
		hookTypes = append(hookTypes, hookType)
	}
	sort.Strings(hookTypes)

	for _, hookType := range hookTypes {
		data, err := json.Marshal(generated[hookType])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s matchers: %w", hookType, err)
		}

		var matchers []interface{}
		if err := json.Unmarshal(data, &matchers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s matchers: %w", hookType, err)
		}

		existing, _ := hooksSection[hookType].([]interface{})
		hooksSection[hookType] = append(existing, matchers...)
	}

	return hookTypes, nil
}

// RemoveHooks strips toolgate commands from every hook type, dropping
// matchers and hook types that become empty. It returns the hook types
// from which something was removed.
func RemoveHooks(settings map[string]interface{}) []string {
	hooks, ok := settings["hooks"].(map[string]interface{})
	if !ok {
		return nil
	}

	var removed []string
	for hookType, raw := range hooks {
		matchers, ok := raw.([]interface{})
		if !ok {
			continue
		}

		changed := false
		filtered := []interface{}{}
		for _, m := range matchers {
			matcher, ok := m.(map[string]interface{})
			if !ok {
				filtered = append(filtered, m)
				continue
			}

			hooksList, ok := matcher["hooks"].([]interface{})
			if !ok {
				filtered = append(filtered, m)
				continue
			}

			kept := []interface{}{}
			for _, h := range hooksList {
				hook, ok := h.(map[string]interface{})
				if ok {
					if cmd, _ := hook["command"].(string); IsToolgateHookCommand(cmd) {
						changed = true
						continue
					}
				}
				kept = append(kept, h)
			}

			if len(kept) > 0 {
				matcher["hooks"] = kept
				filtered = append(filtered, matcher)
			}
		}

		if !changed {
			continue
		}
		removed = append(removed, hookType)
		if len(filtered) > 0 {
			hooks[hookType] = filtered
		} else {
			delete(hooks, hookType)
		}
	}

	if len(hooks) == 0 {
		delete(settings, "hooks")
	}

	sort.Strings(removed)
	return removed
}

// Install writes the hooks of sf into its settings file.
func Install(sf SettingsFile, opts agent.InstallOptions) (*agent.InstallResult, error) {
	result := &agent.InstallResult{
		SettingsPath: sf.Path,
		BackupPaths:  make(map[string]string),
	}

	settings, before, err := ReadSettings(sf.Path)
	if err != nil {
		result.Error = fmt.Errorf("failed to read %s: %w", sf.Path, err)
		return result, result.Error
	}

	if HasToolgateHooks(settings, sf.HookTypes) && !opts.Force && !opts.DryRun {
		result.Warnings = append(result.Warnings, "toolgate hooks already installed (use --force to reinstall)")
		result.Success = true
		return result, nil
	}

	installed, err := MergeHooks(settings, sf.Hooks)
	if err != nil {
		result.Error = err
		return result, err
	}
	result.HooksInstalled = installed

	after, err := EncodeSettings(settings)
	if err != nil {
		result.Error = fmt.Errorf("failed to encode settings: %w", err)
		return result, result.Error
	}
	result.Diff = GenerateDiff(filepath.Base(sf.Path), string(before), string(after))

	if opts.DryRun {
		result.Success = true
		return result, nil
	}

	if opts.Backup && before != nil {
		backupPath, err := BackupSettings(sf, opts.BackupDir, time.Now())
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to back up settings: %v", err))
		} else {
			result.BackupPaths[filepath.Base(sf.Path)] = backupPath
		}
	}

	if err := WriteSettings(sf.Path, after); err != nil {
		result.Error = fmt.Errorf("failed to write %s: %w", sf.Path, err)
		return result, result.Error
	}

	status := Status(sf)
	if !status.Valid {
		result.Warnings = append(result.Warnings, "hooks installed but validation failed")
		result.Warnings = append(result.Warnings, status.Issues...)
	}

	result.Success = true
	return result, nil
}

// Uninstall removes toolgate hooks from the settings file of sf.
func Uninstall(sf SettingsFile, opts agent.UninstallOptions) (*agent.UninstallResult, error) {
	result := &agent.UninstallResult{SettingsPath: sf.Path}

	if opts.RestoreBackup && opts.BackupDir != "" {
		if backupPath, ok := LatestBackup(sf, opts.BackupDir); ok {
			return restoreBackup(sf, backupPath, opts.DryRun, result)
		}
	}

	settings, before, err := ReadSettings(sf.Path)
	if err != nil {
		result.Error = fmt.Errorf("failed to read %s: %w", sf.Path, err)
		return result, result.Error
	}

	result.HooksRemoved = RemoveHooks(settings)
	if len(result.HooksRemoved) == 0 {
		result.Success = true
		return result, nil
	}

	after, err := EncodeSettings(settings)
	if err != nil {
		result.Error = fmt.Errorf("failed to encode settings: %w", err)
		return result, result.Error
	}
	result.Diff = GenerateDiff(filepath.Base(sf.Path), string(before), string(after))

	if opts.DryRun {
		result.Success = true
		return result, nil
	}

	if err := WriteSettings(sf.Path, after); err != nil {
		result.Error = fmt.Errorf("failed to write %s: %w", sf.Path, err)
		return result, result.Error
	}

	result.Success = true
	return result, nil
}

func restoreBackup(sf SettingsFile, backupPath string, dryRun bool, result *agent.UninstallResult) (*agent.UninstallResult, error) {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to read backup %s: %w", backupPath, err)
		return result, result.Error
	}

	result.HooksRemoved = sf.HookTypes
	if !dryRun {
		if err := WriteSettings(sf.Path, data); err != nil {
			result.Error = fmt.Errorf("failed to restore %s: %w", sf.Path, err)
			return result, result.Error
		}
		result.BackupsRestored = true
	}

	result.Success = true
	return result, nil
}

// Status reports which of the expected hooks are present in sf.
func Status(sf SettingsFile) *agent.HookStatus {
	status := &agent.HookStatus{SettingsPath: sf.Path}

	settings, _, err := ReadSettings(sf.Path)
	if err != nil {
		status.Issues = append(status.Issues, fmt.Sprintf("cannot read %s: %v", filepath.Base(sf.Path), err))
		return status
	}

	expected := make(map[string]string, len(sf.Hooks))
	for hookType, matchers := range sf.Hooks {
		for _, m := range matchers {
			for _, h := range m.Hooks {
				expected[hookType] = h.Command
			}
		}
	}

	status.Hooks = InstalledHookTypes(settings, sf.HookTypes, expected)
	status.Installed = len(status.Hooks) > 0
	status.Valid = status.Installed

	if status.Installed {
		for _, hookType := range sf.HookTypes {
			if !contains(status.Hooks, hookType) {
				status.Valid = false
				status.Issues = append(status.Issues, fmt.Sprintf("%s: hook not configured", hookType))
			}
		}
	} else if HasToolgateHooks(settings, sf.HookTypes) {
		status.Issues = append(status.Issues, "toolgate hooks present but with an unexpected command (run install --force)")
	}

	return status
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
