package builtin

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/config"
)

// ConfigOptions configures the config command behavior.
type ConfigOptions struct {
	// Loader must already have loaded the configuration.
	Loader *config.Loader
	Output io.Writer
}

// NewConfigCommand creates a new config command group.
func NewConfigCommand(opts *ConfigOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage bloodline configuration.

Settings are merged from the built-in defaults, the user config file,
BLOODLINE_* environment variables and command-line flags.

Available subcommands:
  show   - Display the effective configuration
  get    - Get a configuration value
  set    - Set a value in the user config file
  unset  - Remove a value from the user config file
  path   - Show the user config file path`,
	}

	cmd.AddCommand(newConfigShowCommand(opts))
	cmd.AddCommand(newConfigGetCommand(opts))
	cmd.AddCommand(newConfigSetCommand(opts))
	cmd.AddCommand(newConfigUnsetCommand(opts))
	cmd.AddCommand(newConfigPathCommand(opts))

	return cmd
}

func configOutput(opts *ConfigOptions, cmd *cobra.Command) io.Writer {
	if opts.Output != nil {
		return opts.Output
	}
	return cmd.OutOrStdout()
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(opts *ConfigOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long:  "Display the effective configuration in YAML format. Secret values are masked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Loader.WriteEffective(configOutput(opts, cmd))
		},
	}
}

// newConfigGetCommand creates the config get subcommand.
func newConfigGetCommand(opts *ConfigOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get an effective configuration value by key.

Examples:
  config get api.base_url
  config get ui.theme`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: keyCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, ok := opts.Loader.Get(args[0])
			if !ok {
				return fmt.Errorf("key not found: %s", args[0])
			}
			_, _ = fmt.Fprintln(configOutput(opts, cmd), value)
			return nil
		},
	}
}

// newConfigSetCommand creates the config set subcommand.
func newConfigSetCommand(opts *ConfigOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a value in the user config file.

Examples:
  config set api.base_url https://social.example.com/api
  config set ui.theme htb
  config set history.persist false`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: keyCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !slices.Contains(opts.Loader.Keys(), key) {
				return fmt.Errorf("unknown key: %s", key)
			}

			path := opts.Loader.UserConfigPath()
			data, err := readUserConfig(path)
			if err != nil {
				return err
			}
			setNestedValue(data, strings.Split(key, "."), parseValue(value))

			if err := checkUserConfig(path, data); err != nil {
				return err
			}
			if err := writeUserConfig(path, data); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(configOutput(opts, cmd), "Set %s = %s\n", key, value)
			return nil
		},
	}
}

// newConfigUnsetCommand creates the config unset subcommand.
func newConfigUnsetCommand(opts *ConfigOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Unset a configuration value",
		Long: `Remove a value from the user config file so the default applies.

Examples:
  config unset ui.theme`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: keyCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			path := opts.Loader.UserConfigPath()
			data, err := readUserConfig(path)
			if err != nil {
				return err
			}
			if !unsetNestedValue(data, strings.Split(key, ".")) {
				return fmt.Errorf("key not set in %s: %s", path, key)
			}
			if err := writeUserConfig(path, data); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(configOutput(opts, cmd), "Unset %s\n", key)
			return nil
		},
	}
}

// newConfigPathCommand creates the config path subcommand.
func newConfigPathCommand(opts *ConfigOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Long:  "Display the path to the user configuration file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprintln(configOutput(opts, cmd), opts.Loader.UserConfigPath())
			return nil
		},
	}
}

func keyCompletion(opts *ConfigOptions) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return opts.Loader.Keys(), cobra.ShellCompDirectiveNoFileComp
	}
}

// readUserConfig returns the user config file as a map. A missing file is
// an empty map.
func readUserConfig(path string) (map[string]any, error) {
	data := make(map[string]any)
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if data == nil {
		data = make(map[string]any)
	}
	return data, nil
}

func encodeUserConfig(data map[string]any) ([]byte, error) {
	var b strings.Builder
	encoder := yaml.NewEncoder(&b)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return []byte(b.String()), nil
}

func writeUserConfig(path string, data map[string]any) error {
	raw, err := encodeUserConfig(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// checkUserConfig loads data as if it were the user config file and
// reports validation failures before anything is written.
func checkUserConfig(path string, data map[string]any) error {
	raw, err := encodeUserConfig(data)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp("", "bloodline-config-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to check config: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to check config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to check config: %w", err)
	}

	if _, err := config.NewLoader("bloodline", config.WithConfigFile(tmp.Name())).Load(); err != nil {
		return fmt.Errorf("refusing to update %s: %w", path, err)
	}
	return nil
}

// parseValue turns booleans and integers into typed YAML values.
func parseValue(value string) any {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

// setNestedValue sets a nested value in a map.
func setNestedValue(data map[string]any, keys []string, value any) {
	if len(keys) == 1 {
		data[keys[0]] = value
		return
	}
	nested, ok := data[keys[0]].(map[string]any)
	if !ok {
		nested = make(map[string]any)
		data[keys[0]] = nested
	}
	setNestedValue(nested, keys[1:], value)
}

// unsetNestedValue removes a nested value, pruning emptied sections. It
// reports whether anything was removed.
func unsetNestedValue(data map[string]any, keys []string) bool {
	if len(keys) == 1 {
		if _, ok := data[keys[0]]; !ok {
			return false
		}
		delete(data, keys[0])
		return true
	}
	nested, ok := data[keys[0]].(map[string]any)
	if !ok {
		return false
	}
	removed := unsetNestedValue(nested, keys[1:])
	if removed && len(nested) == 0 {
		delete(data, keys[0])
	}
	return removed
}
