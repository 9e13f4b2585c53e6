package cli

import (
	"fmt"
	"os"

	"github.com/safedep/toolgate/config"
	"github.com/safedep/toolgate/tui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCmd creates the config command.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or modify configuration",
		Long: `View or modify configuration.

Subcommands allow viewing and modifying configuration values. Values are
validated before they are written, so an invalid setting never reaches
the configuration file.`,
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
		newConfigResetCmd(),
	)

	return cmd
}

func newConfigManager() (*config.Manager, error) {
	mgr, err := config.NewManager(resolvePaths().ConfigFile)
	if err != nil {
		return nil, ErrConfig("failed to load configuration", err)
	}
	return mgr, nil
}

func newConfigShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newConfigManager()
			if err != nil {
				return err
			}

			if format == "yaml" {
				data, err := yaml.Marshal(mgr.AllSettings())
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			app := newApp(cmd, config.Default())
			if err := app.SetFormat(format); err != nil {
				return err
			}

			view := &tui.ConfigView{
				Location: mgr.ConfigPath(),
				Values:   mgr.AllSettings(),
			}

			return app.Presenter.RenderConfig(view)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json, yaml")

	return cmd
}

func newConfigGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get specific config value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			mgr, err := newConfigManager()
			if err != nil {
				return err
			}

			if !mgr.HasKey(key) {
				return fmt.Errorf("key not found: %s", key)
			}

			switch value := mgr.Get(key).(type) {
			case map[string]interface{}, []interface{}, []string:
				data, err := yaml.Marshal(value)
				if err != nil {
					return fmt.Errorf("failed to marshal value: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			default:
				_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
				return err
			}
		},
	}

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set config value",
		Long: `Set config value.

Booleans, integers and bracketed lists ([a, b]) are recognised; anything
else is stored as a string.`,
		Example: `  toolgate config set policy.restart_command ./bin/restart
  toolgate config set policy.fallback abstain
  toolgate config set policy.extra_allowed_url_prefixes '[https://docs.internal.example/]'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := config.ParseValue(args[1])

			mgr, err := newConfigManager()
			if err != nil {
				return err
			}

			if !mgr.HasKey(key) {
				return fmt.Errorf("unknown config key: %s", key)
			}

			if err := mgr.Set(key, value); err != nil {
				return ErrConfig("failed to set "+key, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, value)
			return err
		},
	}

	return cmd
}

func newConfigResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset to default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := removeConfigFile(resolvePaths().ConfigFile); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
			return err
		},
	}

	return cmd
}

func removeConfigFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config: %w", err)
	}
	return nil
}
