// Package config loads the optional ifcinspect user configuration file.
// Unlike the teacher's .cie/project.yaml, which a missing config treats
// as a hard error, ifcinspect has sensible built-in defaults for
// everything a config file can set — so an absent file is normal, not
// an error condition.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ifcerrors "github.com/ifcinspect/ifcinspect/internal/errors"
)

const (
	userConfigDirName  = "ifcinspect"
	userConfigFileName = "config.yaml"
	projectConfigName  = ".ifcinspect.yaml"
)

// Config holds user preferences that apply across invocations. Every
// field has a documented zero-value default, so a Config loaded from no
// file at all is perfectly usable.
type Config struct {
	// Color controls whether diagnostic output is colorized. "never"
	// disables color; "auto" (the default) colors only when stdout is a
	// terminal. Any other value, including "always", behaves like "auto".
	Color string `yaml:"color,omitempty"`
	// MetricsAddr is the default bind address for the optional
	// Prometheus metrics endpoint, e.g. "127.0.0.1:9090". Empty means
	// the endpoint is disabled unless overridden by a flag.
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
	// ProgressBar disables the parse progress bar when false.
	ProgressBar bool `yaml:"progress_bar"`
}

// Default returns the built-in configuration used when no config file
// is found or none of its fields are set.
func Default() *Config {
	return &Config{
		Color:       "auto",
		ProgressBar: true,
	}
}

// Load searches, in order, for a project-local .ifcinspect.yaml in the
// current directory and then a user config at
// $XDG_CONFIG_HOME/ifcinspect/config.yaml (or ~/.config/ifcinspect/config.yaml
// when XDG_CONFIG_HOME is unset), merging whichever is found over
// Default(). Finding neither is not an error — Load returns Default().
func Load() (*Config, error) {
	cfg := Default()

	if path := projectConfigPath(); path != "" {
		if err := mergeFrom(cfg, path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if path := userConfigPath(); path != "" {
		if err := mergeFrom(cfg, path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func projectConfigPath() string {
	if _, err := os.Stat(projectConfigName); err == nil {
		return projectConfigName
	}
	return ""
}

func userConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	path := filepath.Join(dir, userConfigDirName, userConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func mergeFrom(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is either a fixed project-relative name or derived from XDG/home, never user input
	if err != nil {
		return ifcerrors.InvalidConfig(path, "failed to read config file", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return ifcerrors.InvalidConfig(path, "invalid YAML", err)
	}
	return nil
}
