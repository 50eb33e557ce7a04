package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/rlcomplete/internal/config"
)

func TestParse_Atomic(t *testing.T) {
	tests := []struct {
		name string
		when config.When
		want interface{}
	}{
		{"file", config.When{File: "go.mod"}, FileCondition{Path: "go.mod"}},
		{"var", config.When{Var: "HOME"}, VarCondition{Name: "HOME"}},
		{"dir", config.When{Dir: ".git"}, DirCondition{Path: ".git"}},
		{"command", config.When{Command: "git"}, CommandCondition{Name: "git"}},
		{"app", config.When{App: "python"}, AppCondition{Name: "python"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := Parse(&tt.when)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cond)
		})
	}
}

func TestParse_Text(t *testing.T) {
	cond, err := Parse(&config.When{Text: `^\d+$`})
	require.NoError(t, err)

	text, ok := cond.(TextCondition)
	require.True(t, ok)
	assert.Equal(t, `^\d+$`, text.Pattern.String())

	_, err = Parse(&config.When{Text: "(["})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text:")
}

func TestParse_MultipleAtomicAreAnded(t *testing.T) {
	cond, err := Parse(&config.When{Var: "HOME", App: "bc"})
	require.NoError(t, err)

	all, ok := cond.(AllCondition)
	require.True(t, ok)
	assert.Equal(t, []Condition{VarCondition{Name: "HOME"}, AppCondition{Name: "bc"}}, all.Conditions)
}

func TestParse_Composite(t *testing.T) {
	cond, err := Parse(&config.When{
		Any: []config.When{
			{App: "gdb"},
			{All: []config.When{{Var: "HOME"}, {Command: "sh"}}},
		},
	})
	require.NoError(t, err)

	anyCond, ok := cond.(AnyCondition)
	require.True(t, ok)
	require.Len(t, anyCond.Conditions, 2)
	assert.Equal(t, AppCondition{Name: "gdb"}, anyCond.Conditions[0])

	nested, ok := anyCond.Conditions[1].(AllCondition)
	require.True(t, ok)
	assert.Len(t, nested.Conditions, 2)

	ok, _, err = cond.Evaluate(Context{App: "gdb"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		when    *config.When
		wantErr string
	}{
		{"nil", nil, "when is nil"},
		{"empty", &config.When{}, "at least one condition"},
		{"mixed", &config.When{Var: "HOME", All: []config.When{{App: "bc"}}}, "cannot mix"},
		{"all and any", &config.When{All: []config.When{{App: "bc"}}, Any: []config.When{{App: "gdb"}}}, "both 'all' and 'any'"},
		{"nested empty", &config.When{Any: []config.When{{App: "bc"}, {}}}, "any[1]: when block must specify"},
		{"nested bad text", &config.When{All: []config.When{{Text: "(["}}}, "all[0]: text:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.when)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
