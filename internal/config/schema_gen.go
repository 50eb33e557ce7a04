//go:build ignore

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
)

// SchemaRules mirrors Rules with JSON tags for reflection
type SchemaRules struct {
	Apps map[string][]SchemaRule `json:"apps,omitempty" jsonschema:"description=Rules per readline application name (\"*\" matches every application)"`
}

// SchemaRule mirrors Rule
type SchemaRule struct {
	Name        string      `json:"name,omitempty" jsonschema:"description=Rule name used in logs and status output"`
	Match       string      `json:"match,omitempty" jsonschema:"description=Regular expression tested against the text being completed"`
	When        *SchemaWhen `json:"when,omitempty"`
	Words       []string    `json:"words,omitempty" jsonschema:"description=Static candidates"`
	Command     string      `json:"command,omitempty" jsonschema:"minLength=1,description=Shell snippet whose stdout lines are candidates ($1 and $RL_TEXT hold the text)"`
	Passthrough bool        `json:"passthrough,omitempty" jsonschema:"description=Also offer the candidates readline produced"`
	Reject      bool        `json:"reject,omitempty" jsonschema:"description=Offer nothing and suppress readline's default completion"`
	Filter      string      `json:"filter,omitempty" jsonschema:"enum=prefix,enum=fuzzy,enum=none,description=How candidates are narrowed by the text (default prefix)"`
	Template    string      `json:"template,omitempty" jsonschema:"description=Go template (with sprig functions) applied to each candidate"`
	Cache       string      `json:"cache,omitempty" jsonschema:"pattern=^([0-9]+(\\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$,description=How long command output is reused as a Go duration"`
}

// SchemaWhen mirrors When
type SchemaWhen struct {
	File    string       `json:"file,omitempty" jsonschema:"description=File that must exist"`
	Var     string       `json:"var,omitempty" jsonschema:"description=Environment variable that must be set and non-empty"`
	Dir     string       `json:"dir,omitempty" jsonschema:"description=Directory that must exist"`
	Command string       `json:"command,omitempty" jsonschema:"description=Command that must exist in PATH"`
	App     string       `json:"app,omitempty" jsonschema:"description=Readline application name that must match exactly"`
	Text    string       `json:"text,omitempty" jsonschema:"description=Regular expression the text must match"`
	All     []SchemaWhen `json:"all,omitempty" jsonschema:"minItems=1"`
	Any     []SchemaWhen `json:"any,omitempty" jsonschema:"minItems=1"`
}

func main() {
	r := &jsonschema.Reflector{
		DoNotReference:             false,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
	}

	schema := r.Reflect(&SchemaRules{})

	if apps, ok := schema.Properties.Get("apps"); ok {
		apps.PropertyNames = &jsonschema.Schema{Pattern: `^(\*|[A-Za-z0-9_.+-]+)$`}
	}

	schema.Version = "http://json-schema.org/draft-07/schema#"
	schema.ID = "https://github.com/NikitaCOEUR/rlcomplete/schema.json"
	schema.Title = "rlcomplete rules"
	schema.Description = "Completion rules for the rl_custom_complete helper"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling schema: %v\n", err)
		os.Exit(1)
	}

	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Schema generated: %s\n", outputPath)
}
