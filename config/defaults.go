package config

import (
	"github.com/spf13/viper"

	"github.com/safedep/toolgate/agent"
	"github.com/safedep/toolgate/core/patterns"
	"github.com/safedep/toolgate/core/security"
	"github.com/safedep/toolgate/core/workspace"
)

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	// Policy defaults
	v.SetDefault("policy.restart_command", security.DefaultRestartCommand)
	v.SetDefault("policy.max_pid_digits", patterns.DefaultMaxPIDDigits)
	v.SetDefault("policy.min_pattern_length", patterns.DefaultMinPatternLength)
	v.SetDefault("policy.extra_allowed_url_prefixes", []string{})
	v.SetDefault("policy.workspace_markers", workspace.DefaultMarkers)
	v.SetDefault("policy.fallback", string(FallbackApprove))

	// Hook defaults
	v.SetDefault("hook.emit_approve", true)
	v.SetDefault("hook.block_keyword", agent.BlockKeywordBlock)

	// Display defaults
	v.SetDefault("display.colors", "auto")
}
