package condition

import (
	"fmt"
	"regexp"

	"github.com/NikitaCOEUR/rlcomplete/internal/config"
)

// Parse converts a rule's `when` block into a Condition. Several atomic
// keys at one level are combined with AND; `all` and `any` nest and cannot
// be mixed with atomic keys or with each other.
func Parse(when *config.When) (Condition, error) {
	if when == nil {
		return nil, fmt.Errorf("when is nil")
	}

	atomic, err := atomicConditions(when)
	if err != nil {
		return nil, err
	}

	composite := 0
	if len(when.All) > 0 {
		composite++
	}
	if len(when.Any) > 0 {
		composite++
	}

	switch {
	case len(atomic) == 0 && composite == 0:
		return nil, fmt.Errorf("when block must specify at least one condition")
	case len(atomic) > 0 && composite > 0:
		return nil, fmt.Errorf("cannot mix atomic conditions (file, var, dir, command, app, text) with composite conditions (all, any) at the same level")
	case composite > 1:
		return nil, fmt.Errorf("cannot have both 'all' and 'any' at the same level")
	}

	if len(when.All) > 0 {
		conds, err := parseList("all", when.All)
		if err != nil {
			return nil, err
		}
		return AllCondition{Conditions: conds}, nil
	}
	if len(when.Any) > 0 {
		conds, err := parseList("any", when.Any)
		if err != nil {
			return nil, err
		}
		return AnyCondition{Conditions: conds}, nil
	}

	if len(atomic) == 1 {
		return atomic[0], nil
	}
	return AllCondition{Conditions: atomic}, nil
}

func atomicConditions(when *config.When) ([]Condition, error) {
	var conds []Condition
	if when.File != "" {
		conds = append(conds, FileCondition{Path: when.File})
	}
	if when.Var != "" {
		conds = append(conds, VarCondition{Name: when.Var})
	}
	if when.Dir != "" {
		conds = append(conds, DirCondition{Path: when.Dir})
	}
	if when.Command != "" {
		conds = append(conds, CommandCondition{Name: when.Command})
	}
	if when.App != "" {
		conds = append(conds, AppCondition{Name: when.App})
	}
	if when.Text != "" {
		re, err := regexp.Compile(when.Text)
		if err != nil {
			return nil, fmt.Errorf("text: %w", err)
		}
		conds = append(conds, TextCondition{Pattern: re})
	}
	return conds, nil
}

func parseList(kind string, whens []config.When) ([]Condition, error) {
	conds := make([]Condition, 0, len(whens))
	for i := range whens {
		cond, err := Parse(&whens[i])
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", kind, i, err)
		}
		conds = append(conds, cond)
	}
	return conds, nil
}
