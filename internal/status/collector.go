// Package status collects and renders the state of an rlcomplete install.
package status

import (
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/NikitaCOEUR/rlcomplete/internal/cache"
	"github.com/NikitaCOEUR/rlcomplete/internal/config"
	"github.com/NikitaCOEUR/rlcomplete/pkg/version"
)

// Options tells the collector where to look
type Options struct {
	ConfigDir   string
	CachePath   string
	LibraryPath string
}

// Collect gathers status information. Problems are recorded in Data rather
// than returned: status must render even for a broken install.
func Collect(opts Options) *Data {
	data := &Data{
		Version:   version.Version,
		ConfigDir: opts.ConfigDir,
		CachePath: opts.CachePath,
	}

	collectSettings(data, opts.ConfigDir)
	collectInstallation(data, opts.LibraryPath)
	collectRules(data, opts.ConfigDir)
	collectCacheInfo(data)

	return data
}

func collectSettings(data *Data, dir string) {
	settings, path, err := config.LoadSettingsFrom(dir)
	data.SettingsFile = path
	if err != nil {
		data.SettingsError = err.Error()
		settings, _, _ = config.LoadSettingsFrom("")
	}
	if settings == nil {
		return
	}

	data.Program = settings.Program
	data.NameVar = settings.NameVar
	data.LogLevel = settings.LogLevel
	data.LogFile = settings.LogFile
	data.Disabled = settings.Disable
}

func collectInstallation(data *Data, libraryPath string) {
	if data.Program != "" {
		if path, err := exec.LookPath(data.Program); err == nil {
			data.HelperPath = path
			data.HelperFound = true
		} else {
			data.HelperPath = data.Program
		}
	}

	data.LibraryPath, data.LibraryFound = config.FindLibrary(libraryPath)
	data.Preloaded = config.Preloaded(os.Getenv("LD_PRELOAD"))
}

func collectRules(data *Data, dir string) {
	if dir == "" {
		return
	}
	data.RulesFile = config.FindFile(dir, config.SupportedRuleNames)
	if data.RulesFile == "" {
		return
	}

	rules, err := config.LoadRules(data.RulesFile)
	if err != nil {
		data.RulesError = err.Error()
		return
	}

	apps := make([]string, 0, len(rules.Apps))
	for app := range rules.Apps {
		apps = append(apps, app)
	}
	sort.Strings(apps)

	for _, app := range apps {
		entry := AppRules{App: app}
		for _, rule := range rules.Apps[app] {
			entry.Rules = append(entry.Rules, summarize(rule))
		}
		data.Apps = append(data.Apps, entry)
	}
}

func summarize(rule config.Rule) RuleInfo {
	info := RuleInfo{
		Name:   rule.Name,
		Match:  rule.Match,
		When:   rule.When != nil,
		Filter: rule.Filter,
		Cache:  rule.Cache,
	}
	if info.Filter == "" {
		info.Filter = config.FilterPrefix
	}

	if rule.Reject {
		info.Action = "reject"
		return info
	}
	var sources []string
	if len(rule.Words) > 0 {
		sources = append(sources, "words")
	}
	if rule.Command != "" {
		sources = append(sources, "command")
	}
	if rule.Passthrough {
		sources = append(sources, "passthrough")
	}
	if rule.Template != "" {
		sources = append(sources, "template")
	}
	info.Action = strings.Join(sources, "+")
	return info
}

func collectCacheInfo(data *Data) {
	if data.CachePath == "" {
		return
	}
	info, err := cache.GetCacheInfo(data.CachePath)
	if err != nil {
		return
	}
	data.CacheFileSize = info.Size
	data.CacheTotalEntries = info.TotalEntries
	data.CacheUpdated = info.Newest
}
