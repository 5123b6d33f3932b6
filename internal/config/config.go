// Package config loads weftctl configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (WEFTCTL_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .weftctl.yaml in current directory
//  2. ~/.config/weftctl/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultArgs holds per-verb default argument tokens. They are parsed
// leniently before the user's own command line, so a typo here warns
// instead of breaking every invocation.
type DefaultArgs struct {
	NewSplit    []string `yaml:"new-split"`
	SendToSplit []string `yaml:"send-to-split"`
}

// Config holds all weftctl configuration.
type Config struct {
	// Class preselects the instance to address. Empty means auto-detect.
	// The --class flag overrides it per invocation.
	Class string `yaml:"class"`

	// SocketDir overrides the directory instance command sockets live in.
	SocketDir string `yaml:"socket_dir"`

	// DialTimeout bounds the delivery attempt. Go duration string, e.g. "3s".
	DialTimeout string `yaml:"dial_timeout"`

	// Defaults supplies per-verb default arguments.
	Defaults DefaultArgs `yaml:"defaults"`

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs, e.g. "Authorization=Basic abc123"

	// Parsed durations (not from YAML, set after loading)
	DialTimeoutDuration time.Duration `yaml:"-"`

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		DialTimeout: "3s",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	// Try to load config file
	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	// Environment variables override everything
	mergeEnv(cfg)

	var err error
	cfg.DialTimeoutDuration, err = time.ParseDuration(cfg.DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid dial timeout %q: %w", cfg.DialTimeout, err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	// 1. Current directory
	if data, err := os.ReadFile(".weftctl.yaml"); err == nil {
		return ".weftctl.yaml", data, nil
	}

	// 2. XDG config dir / ~/.config
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "weftctl", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Class != "" {
		cfg.Class = file.Class
	}
	if file.SocketDir != "" {
		cfg.SocketDir = file.SocketDir
	}
	if file.DialTimeout != "" {
		cfg.DialTimeout = file.DialTimeout
	}
	if len(file.Defaults.NewSplit) > 0 {
		cfg.Defaults.NewSplit = file.Defaults.NewSplit
	}
	if len(file.Defaults.SendToSplit) > 0 {
		cfg.Defaults.SendToSplit = file.Defaults.SendToSplit
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("WEFTCTL_CLASS"); v != "" {
		cfg.Class = v
	}
	if v := os.Getenv("WEFTCTL_SOCKET_DIR"); v != "" {
		cfg.SocketDir = v
	}
	if v := os.Getenv("WEFTCTL_DIAL_TIMEOUT"); v != "" {
		cfg.DialTimeout = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
}
