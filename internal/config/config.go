// Package config handles loading of rlcomplete settings and helper rule files.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName names the configuration directory
	AppName = "rlcomplete"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "RLCOMPLETE_"
)

// SupportedConfigNames contains supported settings file names (in order of preference)
var SupportedConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

//go:embed defaults.yml
var defaultSettings []byte

// Settings controls the preloaded shim
type Settings struct {
	// Program is the completer to run, a name looked up in PATH or a path
	Program string `koanf:"program"`
	// NameVar is the environment variable carrying rl_readline_name
	NameVar string `koanf:"name_var"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `koanf:"log_level"`
	// LogFile receives shim logs; empty disables logging
	LogFile string `koanf:"log_file"`
	// Disable delegates straight to readline without consulting the completer
	Disable bool `koanf:"disable"`
}

// Dir returns the configuration directory ($XDG_CONFIG_HOME/rlcomplete)
func Dir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName), nil
}

// FindFile returns the first of names present in dir, or "" if none is
func FindFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// parserFor picks a koanf parser from the file extension
func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// LoadSettings loads settings from the default configuration directory.
// See LoadSettingsFrom.
func LoadSettings() (*Settings, string, error) {
	dir, err := Dir()
	if err != nil {
		// No home directory: defaults and environment still apply
		return LoadSettingsFrom("")
	}
	return LoadSettingsFrom(dir)
}

// LoadSettingsFrom layers built-in defaults, the first settings file found
// in dir (if any) and RLCOMPLETE_* environment variables, in that order.
// It returns the settings file that was used ("" when none).
func LoadSettingsFrom(dir string) (*Settings, string, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultSettings), yaml.Parser()); err != nil {
		return nil, "", fmt.Errorf("failed to load default settings: %w", err)
	}

	var path string
	if dir != "" {
		path = FindFile(dir, SupportedConfigNames)
	}
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, path, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, path, fmt.Errorf("failed to load config: %w", err)
		}
	}

	envKey := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, path, fmt.Errorf("failed to load environment: %w", err)
	}

	settings := &Settings{}
	if err := k.Unmarshal("", settings); err != nil {
		return nil, path, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return settings, path, nil
}
