package config

import (
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// SupportedRuleNames contains supported rule file names (in order of preference)
var SupportedRuleNames = []string{
	"rules.yml",
	"rules.yaml",
	"rules.toml",
	"rules.json",
}

// AnyApp is the application key matching every readline name
const AnyApp = "*"

// Filter modes applied to a rule's candidates
const (
	FilterPrefix = "prefix"
	FilterFuzzy  = "fuzzy"
	FilterNone   = "none"
)

// When describes conditions a rule needs before it applies
type When struct {
	File    string `koanf:"file"`
	Var     string `koanf:"var"`
	Dir     string `koanf:"dir"`
	Command string `koanf:"command"`
	App     string `koanf:"app"`
	Text    string `koanf:"text"`
	All     []When `koanf:"all"`
	Any     []When `koanf:"any"`
}

// Rule answers completion requests whose text matches Match
type Rule struct {
	Name  string `koanf:"name"`
	Match string `koanf:"match"`
	When  *When  `koanf:"when"`

	// Candidate sources, combined in this order
	Words       []string `koanf:"words"`
	Command     string   `koanf:"command"`
	Passthrough bool     `koanf:"passthrough"`

	// Reject makes the helper exit non-zero: no candidates at all
	Reject bool `koanf:"reject"`

	Filter   string        `koanf:"filter"`
	Template string        `koanf:"template"`
	Cache    time.Duration `koanf:"cache"`
}

// Rules maps a readline name to its ordered rules
type Rules struct {
	Apps map[string][]Rule `koanf:"apps"`
}

// For returns the rules for app followed by the rules for every app
func (r *Rules) For(app string) []Rule {
	if r == nil {
		return nil
	}
	var out []Rule
	if app != AnyApp {
		out = append(out, r.Apps[app]...)
	}
	return append(out, r.Apps[AnyApp]...)
}

// Count returns the total number of rules
func (r *Rules) Count() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, rules := range r.Apps {
		n += len(rules)
	}
	return n
}

// FindRules returns the rule file in the default configuration directory
func FindRules() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return FindFile(dir, SupportedRuleNames), nil
}

// LoadRules parses a rule file. Application names may contain dots
// ("python3.12"), so keys are split on "/" instead.
func LoadRules(path string) (*Rules, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New("/")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	rules := &Rules{Apps: make(map[string][]Rule)}
	if err := k.Unmarshal("", rules); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rules: %w", err)
	}

	for app, list := range rules.Apps {
		for i := range list {
			if list[i].Name == "" {
				list[i].Name = fmt.Sprintf("%s#%d", app, i)
			}
		}
	}

	return rules, nil
}
