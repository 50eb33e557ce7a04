package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of rule file validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Validate checks what the schema cannot: expressions compile, templates
// parse, and each rule produces or rejects something.
func Validate(path string) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("rule file not found: %s", path)
	}

	rules, err := LoadRules(path)
	if err != nil {
		result.addError("syntax", fmt.Sprintf("Failed to parse rules: %v", err))
		return result, nil
	}

	apps := make([]string, 0, len(rules.Apps))
	for app := range rules.Apps {
		apps = append(apps, app)
	}
	sort.Strings(apps)

	for _, app := range apps {
		for i, rule := range rules.Apps[app] {
			validateRule(result, fmt.Sprintf("apps/%s[%d]", app, i), rule)
		}
	}

	return result, nil
}

func validateRule(result *ValidationResult, field string, rule Rule) {
	if rule.Match != "" {
		if _, err := regexp.Compile(rule.Match); err != nil {
			result.addError(field+".match", fmt.Sprintf("Invalid regular expression: %v", err))
		}
	}

	hasSource := len(rule.Words) > 0 || strings.TrimSpace(rule.Command) != "" || rule.Passthrough
	switch {
	case rule.Reject && hasSource:
		result.addError(field, "A rejecting rule cannot also provide candidates")
	case !rule.Reject && !hasSource:
		result.addError(field, "Rule needs words, command, passthrough or reject")
	}

	if rule.Template != "" {
		if _, err := template.New(field).Funcs(sprig.TxtFuncMap()).Parse(rule.Template); err != nil {
			result.addError(field+".template", fmt.Sprintf("Invalid template: %v", err))
		}
	}

	if rule.Cache < 0 {
		result.addError(field+".cache", "Cache duration cannot be negative")
	}
	if rule.Cache > 0 && strings.TrimSpace(rule.Command) == "" {
		result.addError(field+".cache", "Cache only applies to rules with a command")
	}

	if rule.When != nil {
		validateWhen(result, field+".when", rule.When)
	}
}

func validateWhen(result *ValidationResult, field string, when *When) {
	if when.Text != "" {
		if _, err := regexp.Compile(when.Text); err != nil {
			result.addError(field+".text", fmt.Sprintf("Invalid regular expression: %v", err))
		}
	}
	for i := range when.All {
		validateWhen(result, fmt.Sprintf("%s.all[%d]", field, i), &when.All[i])
	}
	for i := range when.Any {
		validateWhen(result, fmt.Sprintf("%s.any[%d]", field, i), &when.Any[i])
	}
}
