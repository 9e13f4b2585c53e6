// Package config provides configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/safedep/toolgate/agent"
	"github.com/safedep/toolgate/core/patterns"
	"github.com/safedep/toolgate/core/security"
	"github.com/safedep/toolgate/core/workspace"
)

// EnvPrefix is the prefix of environment variable overrides,
// e.g. TOOLGATE_POLICY_RESTART_COMMAND.
const EnvPrefix = "TOOLGATE"

// FallbackMode is the verdict used when no rule expresses an opinion.
type FallbackMode string

const (
	// FallbackApprove approves requests no rule objected to.
	FallbackApprove FallbackMode = "approve"
	// FallbackAbstain defers requests no rule objected to.
	FallbackAbstain FallbackMode = "abstain"
)

// ColorMode represents the color output mode.
type ColorMode string

const (
	// ColorAuto automatically detects terminal support.
	ColorAuto ColorMode = "auto"
	// ColorAlways always uses colors.
	ColorAlways ColorMode = "always"
	// ColorNever never uses colors.
	ColorNever ColorMode = "never"
)

// Config holds all configuration values.
type Config struct {
	Policy  PolicyConfig  `mapstructure:"policy"`
	Hook    HookConfig    `mapstructure:"hook"`
	Display DisplayConfig `mapstructure:"display"`
}

// PolicyConfig tunes the rule engine. Defaults reproduce the compiled-in
// policy exactly.
type PolicyConfig struct {
	RestartCommand          string       `mapstructure:"restart_command" validate:"required"`
	MaxPIDDigits            int          `mapstructure:"max_pid_digits" validate:"min=1,max=19"`
	MinPatternLength        int          `mapstructure:"min_pattern_length" validate:"min=1,max=256"`
	ExtraAllowedURLPrefixes []string     `mapstructure:"extra_allowed_url_prefixes" validate:"dive,required"`
	WorkspaceMarkers        []string     `mapstructure:"workspace_markers" validate:"min=1,dive,required"`
	Fallback                FallbackMode `mapstructure:"fallback" validate:"oneof=approve abstain"`
}

// HookConfig controls how verdicts are written back to the agent.
type HookConfig struct {
	EmitApprove  bool   `mapstructure:"emit_approve"`
	BlockKeyword string `mapstructure:"block_keyword" validate:"oneof=block deny"`
}

// DisplayConfig holds display-related settings.
type DisplayConfig struct {
	Colors ColorMode `mapstructure:"colors" validate:"oneof=auto always never"`
}

// Paths holds resolved filesystem paths.
type Paths struct {
	ConfigFile string
	ConfigDir  string
	DataDir    string
	BackupsDir string
}

// Load loads configuration from the given path or default locations.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		paths := ResolvePaths()

		v.SetConfigName("config")
		v.AddConfigPath(paths.ConfigDir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a Config with all default values.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)

	return &cfg
}

// ResolvePaths returns the resolved filesystem paths for the current platform.
func ResolvePaths() *Paths {
	configDir := getConfigDir()
	dataDir := getDataDir()

	return &Paths{
		ConfigFile: filepath.Join(configDir, "config.yaml"),
		ConfigDir:  configDir,
		DataDir:    dataDir,
		BackupsDir: filepath.Join(dataDir, "backups"),
	}
}

// ShouldUseColors returns true if colors should be used based on config and terminal.
func (c *Config) ShouldUseColors() bool {
	switch c.Display.Colors {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		fileInfo, err := os.Stdout.Stat()
		if err != nil {
			return false
		}
		return (fileInfo.Mode() & os.ModeCharDevice) != 0
	}
}

// PatternOptions returns the pattern library options.
func (c *Config) PatternOptions() patterns.Options {
	return patterns.Options{
		MaxPIDDigits:         c.Policy.MaxPIDDigits,
		MinPatternLength:     c.Policy.MinPatternLength,
		ExtraAllowedPrefixes: c.Policy.ExtraAllowedURLPrefixes,
	}
}

// Library builds the pattern library. The shared default library is
// returned when the policy is not tuned.
func (c *Config) Library() *patterns.Library {
	opts := c.PatternOptions()
	if opts.MaxPIDDigits == patterns.DefaultMaxPIDDigits &&
		opts.MinPatternLength == patterns.DefaultMinPatternLength &&
		len(opts.ExtraAllowedPrefixes) == 0 {
		return patterns.Default()
	}
	return patterns.New(opts)
}

// Resolver builds the workspace resolver.
func (c *Config) Resolver() *workspace.Resolver {
	return workspace.NewResolver(workspace.WithMarkers(c.Policy.WorkspaceMarkers...))
}

// EvaluatorConfig returns the rule engine configuration.
func (c *Config) EvaluatorConfig() *security.Config {
	fallback := security.OutcomeApprove
	if c.Policy.Fallback == FallbackAbstain {
		fallback = security.OutcomeAbstain
	}
	return &security.Config{
		Fallback:       fallback,
		RestartCommand: c.Policy.RestartCommand,
	}
}

// Evaluator builds the default rule engine from this configuration.
func (c *Config) Evaluator() *security.Evaluator {
	return security.NewDefault(c.Library(), c.Resolver(), c.EvaluatorConfig())
}

// ResponseOptions returns the verdict encoding options.
func (c *Config) ResponseOptions() agent.ResponseOptions {
	return agent.ResponseOptions{
		EmitApprove:  c.Hook.EmitApprove,
		BlockKeyword: c.Hook.BlockKeyword,
	}
}
