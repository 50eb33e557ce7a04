package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/rlcomplete/internal/cache"
	"github.com/NikitaCOEUR/rlcomplete/internal/config"
	"github.com/NikitaCOEUR/rlcomplete/internal/derrors"
	"github.com/NikitaCOEUR/rlcomplete/internal/logger"
)

// components holds the rules and command cache for one request
type components struct {
	rules *config.Rules
	cache *cache.Cache
}

// initializeComponents loads the rules of configDir and the command cache.
// Broken rules or an unusable cache are logged and left out so completion
// keeps working.
func initializeComponents(configDir, cachePath string, log *logger.Logger) *components {
	c := &components{}

	if configDir != "" {
		if path := config.FindFile(configDir, config.SupportedRuleNames); path != "" {
			rules, err := config.LoadRules(path)
			if err != nil {
				log.Error().Str("path", path).Err(err).Msg("Ignoring rule file")
			} else {
				c.rules = rules
			}
		}
	}

	if cachePath != "" {
		store, err := cache.New(cachePath)
		if err != nil {
			log.Warn().Str("path", cachePath).Err(err).Msg("Command cache unavailable")
		} else {
			c.cache = store
		}
	}

	return c
}

// loadSettings returns the settings in dir, or the defaults when they
// cannot be read
func loadSettings(dir string) *config.Settings {
	settings, _, err := config.LoadSettingsFrom(dir)
	if err == nil {
		return settings
	}
	settings, _, err = config.LoadSettingsFrom("")
	if err != nil {
		return &config.Settings{}
	}
	return settings
}

// resolveRulesPath returns explicit, or the rule file of configDir
func resolveRulesPath(explicit, configDir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	path := config.FindFile(configDir, config.SupportedRuleNames)
	if path == "" {
		return "", derrors.NewNotFoundError(filepath.Join(configDir, "rules.yml"),
			fmt.Sprintf("no rule file found in %s", configDir))
	}
	return path, nil
}

// currentDir returns the working directory, or "" when it is gone
func currentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return dir
}
