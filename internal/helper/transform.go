package helper

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/NikitaCOEUR/rlcomplete/internal/config"
)

// render applies the rule's template to every candidate. Candidates that
// render to whitespace are dropped.
func render(rule config.Rule, candidates []string) ([]string, error) {
	if rule.Template == "" {
		return candidates, nil
	}

	tmpl, err := template.New(rule.Name).Funcs(sprig.TxtFuncMap()).Parse(rule.Template)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	out := make([]string, 0, len(candidates))
	var b strings.Builder
	for _, c := range candidates {
		b.Reset()
		if err := tmpl.Execute(&b, c); err != nil {
			return nil, fmt.Errorf("template failed on %q: %w", c, err)
		}
		if s := b.String(); strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// filter narrows candidates by text. Prefix (the default) keeps input order;
// fuzzy orders by match score.
func filter(mode, text string, candidates []string) []string {
	if text == "" {
		return candidates
	}

	switch mode {
	case config.FilterNone:
		return candidates
	case config.FilterFuzzy:
		matches := fuzzy.Find(text, candidates)
		return lo.Map(matches, func(m fuzzy.Match, _ int) string {
			return m.Str
		})
	default:
		return lo.Filter(candidates, func(c string, _ int) bool {
			return strings.HasPrefix(c, text)
		})
	}
}
