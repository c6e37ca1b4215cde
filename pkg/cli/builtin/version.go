// Package builtin provides the cobra subcommands of bloodline that sit
// beside the interactive terminal: version, completion, history, config and
// auth.
package builtin

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// VersionInfo describes the binary and the backend it talks to.
type VersionInfo struct {
	ClientVersion string    `json:"client_version" yaml:"client_version"`
	Commit        string    `json:"commit,omitempty" yaml:"commit,omitempty"`
	APIBaseURL    string    `json:"api_base_url,omitempty" yaml:"api_base_url,omitempty"`
	Built         time.Time `json:"built,omitzero" yaml:"built,omitempty"`
	GoVersion     string    `json:"go_version" yaml:"go_version"`
	Platform      string    `json:"platform" yaml:"platform"`
	Compiler      string    `json:"compiler" yaml:"compiler"`
}

// VersionOptions configures the version command behavior.
type VersionOptions struct {
	Version      string
	Commit       string
	BuildTime    time.Time
	APIBaseURL   string
	OutputFormat string
	Output       io.Writer
}

// NewVersionCommand creates a new version command.
func NewVersionCommand(opts *VersionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display version information for the bloodline binary.

The version command shows:
- client version and commit
- the API base URL in use
- build information (build time, Go version, platform)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Output == nil {
				opts.Output = cmd.OutOrStdout()
			}
			return runVersion(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputFormat, "output", "o", "text", "Output format (text|json|yaml)")

	return cmd
}

// runVersion executes the version command.
func runVersion(opts *VersionOptions) error {
	info := &VersionInfo{
		ClientVersion: opts.Version,
		Commit:        opts.Commit,
		APIBaseURL:    opts.APIBaseURL,
		Built:         opts.BuildTime,
		GoVersion:     runtime.Version(),
		Platform:      fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Compiler:      runtime.Compiler,
	}

	switch opts.OutputFormat {
	case "json":
		encoder := json.NewEncoder(opts.Output)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	case "yaml":
		encoder := yaml.NewEncoder(opts.Output)
		encoder.SetIndent(2)
		if err := encoder.Encode(info); err != nil {
			return fmt.Errorf("failed to encode version: %w", err)
		}
		return encoder.Close()
	case "text", "":
		return formatVersionText(info, opts.Output)
	default:
		return fmt.Errorf("unsupported output format: %s", opts.OutputFormat)
	}
}

// formatVersionText formats version info as human-readable text.
func formatVersionText(info *VersionInfo, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "Client Version: %s\n", info.ClientVersion)
	if info.Commit != "" {
		_, _ = fmt.Fprintf(w, "Commit: %s\n", info.Commit)
	}
	if info.APIBaseURL != "" {
		_, _ = fmt.Fprintf(w, "API: %s\n", info.APIBaseURL)
	}
	if !info.Built.IsZero() {
		_, _ = fmt.Fprintf(w, "Built: %s\n", info.Built.Format(time.RFC3339))
	}
	_, _ = fmt.Fprintf(w, "Go: %s\n", info.GoVersion)
	_, _ = fmt.Fprintf(w, "Platform: %s\n", info.Platform)
	_, _ = fmt.Fprintf(w, "Compiler: %s\n", info.Compiler)
	return nil
}

// VersionShort returns a short version string suitable for --version.
func VersionShort(version, commit string) string {
	if commit != "" {
		return fmt.Sprintf("v%s (%s)", version, commit)
	}
	return fmt.Sprintf("v%s", version)
}
