// Package config loads the client configuration from the embedded defaults,
// the user's config file, environment variables and command-line flags.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/secrets"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the effective client configuration.
type Config struct {
	API       APIConfig       `mapstructure:"api" yaml:"api"`
	Auth      AuthConfig      `mapstructure:"auth" yaml:"auth"`
	History   HistoryConfig   `mapstructure:"history" yaml:"history"`
	UI        UIConfig        `mapstructure:"ui" yaml:"ui"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	DevServer DevServerConfig `mapstructure:"devserver" yaml:"devserver"`
}

// APIConfig configures the backend client.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// AuthConfig selects where credentials are kept.
type AuthConfig struct {
	// Storage is one of file, keyring, memory or auto.
	Storage        string `mapstructure:"storage" yaml:"storage"`
	Path           string `mapstructure:"path" yaml:"path"`
	KeyringService string `mapstructure:"keyring_service" yaml:"keyring_service"`
}

// HistoryConfig configures command history persistence.
type HistoryConfig struct {
	Size    int  `mapstructure:"size" yaml:"size"`
	Persist bool `mapstructure:"persist" yaml:"persist"`
}

// UIConfig configures the display surface.
type UIConfig struct {
	Theme   string `mapstructure:"theme" yaml:"theme"`
	Mode    string `mapstructure:"mode" yaml:"mode"`
	Color   bool   `mapstructure:"color" yaml:"color"`
	Spinner bool   `mapstructure:"spinner" yaml:"spinner"`
}

// LogConfig configures the debug log.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// OutputConfig configures one-shot output.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// DevServerConfig configures the in-memory development backend.
type DevServerConfig struct {
	Addr      string        `mapstructure:"addr" yaml:"addr"`
	JWTSecret string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl" yaml:"token_ttl"`
}

// Loader handles loading configurations from various sources.
type Loader struct {
	cliName        string
	envPrefix      string
	userConfigPath string
	v              *viper.Viper
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithConfigFile reads the user configuration from path instead of the
// XDG location.
func WithConfigFile(path string) LoaderOption {
	return func(l *Loader) {
		l.userConfigPath = path
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(cliName string, opts ...LoaderOption) *Loader {
	l := &Loader{
		cliName:   cliName,
		envPrefix: strings.ToUpper(strings.ReplaceAll(cliName, "-", "_")),
		v:         viper.New(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// BindFlag makes a command-line flag override key when it is set.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("flag for %s is not defined", key)
	}
	if err := l.v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
	}
	return nil
}

// Load merges every source and validates the result.
// Priority: flag > env > user config > embedded defaults.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigType("yaml")
	if err := l.v.ReadConfig(bytes.NewReader(defaultsYAML)); err != nil {
		return nil, fmt.Errorf("failed to read embedded defaults: %w", err)
	}

	path := l.UserConfigPath()
	if _, err := os.Stat(path); err == nil {
		l.v.SetConfigFile(path)
		if err := l.v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read user config %s: %w", path, err)
		}
	}

	l.v.SetEnvPrefix(l.envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	l.v.AutomaticEnv()

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UserConfigPath returns the user config file path: the explicit path, then
// $<PREFIX>_CONFIG, then the XDG config directory.
func (l *Loader) UserConfigPath() string {
	if l.userConfigPath != "" {
		return l.userConfigPath
	}
	if customPath := os.Getenv(l.envPrefix + "_CONFIG"); customPath != "" {
		return customPath
	}
	return filepath.Join(xdg.ConfigHome, l.cliName, "config.yaml")
}

// StateDir returns the XDG-compliant state directory.
func (l *Loader) StateDir() string {
	return filepath.Join(xdg.StateHome, l.cliName)
}

// WriteEffective writes the merged settings as YAML with secret values
// masked. It must be called after Load.
func (l *Loader) WriteEffective(w io.Writer) error {
	masked := secrets.NewDetector(secrets.StrategyByName("full")).MaskJSON(l.v.AllSettings())

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(masked); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return encoder.Close()
}

// Keys returns every known configuration key, sorted.
func (l *Loader) Keys() []string {
	keys := l.v.AllKeys()
	sort.Strings(keys)
	return keys
}

// Get returns the effective value of key. It must be called after Load.
func (l *Loader) Get(key string) (any, bool) {
	if !l.v.IsSet(key) {
		return nil, false
	}
	return l.v.Get(key), true
}
