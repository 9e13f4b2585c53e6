package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// structValidator is shared; building a validator is expensive.
var structValidator = validator.New()

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	if err := structValidator.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid %s: %v (failed %q)", configKey(verrs[0].Namespace()), verrs[0].Value(), verrs[0].Tag())
		}
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, prefix := range cfg.Policy.ExtraAllowedURLPrefixes {
		if err := validateURLPrefix(prefix); err != nil {
			return fmt.Errorf("invalid policy.extra_allowed_url_prefixes[%d]: %w", i, err)
		}
	}

	for i, marker := range cfg.Policy.WorkspaceMarkers {
		if strings.ContainsAny(marker, `/\`) || marker == "." || marker == ".." {
			return fmt.Errorf("invalid policy.workspace_markers[%d]: %q must be a plain directory entry name", i, marker)
		}
	}

	return nil
}

// validateURLPrefix requires an http(s) URL with a host and a path that
// ends in "/", so a prefix can never match a longer host name.
func validateURLPrefix(prefix string) error {
	u, err := url.Parse(prefix)
	if err != nil {
		return err
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("%q must use http or https", prefix)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", prefix)
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("%q must end with /", prefix)
	}
	return nil
}

// configKey converts a validator namespace such as
// "Config.Policy.MaxPIDDigits" to the matching config key.
func configKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 0 && parts[0] == "Config" {
		parts = parts[1:]
	}
	for i, p := range parts {
		name, index, _ := strings.Cut(p, "[")
		key, ok := fieldKeys[name]
		if !ok {
			key = strings.ToLower(name)
		}
		if index != "" {
			key += "[" + index
		}
		parts[i] = key
	}
	return strings.Join(parts, ".")
}

var fieldKeys = map[string]string{
	"Policy":                  "policy",
	"Hook":                    "hook",
	"Display":                 "display",
	"RestartCommand":          "restart_command",
	"MaxPIDDigits":            "max_pid_digits",
	"MinPatternLength":        "min_pattern_length",
	"ExtraAllowedURLPrefixes": "extra_allowed_url_prefixes",
	"WorkspaceMarkers":        "workspace_markers",
	"Fallback":                "fallback",
	"EmitApprove":             "emit_approve",
	"BlockKeyword":            "block_keyword",
	"Colors":                  "colors",
}
