package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/rlcomplete/internal/derrors"
)

const sampleRules = `# yaml-language-server: $schema=https://github.com/NikitaCOEUR/rlcomplete/schema.json
# rl_custom_complete rules
#
# Rules are grouped by readline application name (READLINE_NAME); "*" applies
# to every application after its own rules. The first rule whose match and
# when both hold answers the request. When no rule matches, readline's own
# candidates are kept.

apps:
  # python:
  #   - name: keywords
  #     match: "^[a-z]"
  #     words: [import, lambda, yield]
  #     passthrough: true      # keep readline's own candidates too

  # bc:
  #   - name: functions
  #     words: [scale, sqrt, length]
  #     filter: fuzzy          # prefix (default) | fuzzy | none

  "*": []
    # - name: hosts
    #   match: "^@"
    #   command: awk '!/^#/ && $2 {print "@" $2}' /etc/hosts
    #   cache: 10m
    #   when: { file: /etc/hosts }

    # - name: no-secrets
    #   match: "^secret"
    #   reject: true           # no candidates at all
`

// Init writes a sample rule file into configDir
func Init(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return derrors.NewConfigurationError(configDir, "failed to create config directory", err)
	}

	rulesPath := filepath.Join(configDir, "rules.yml")
	if _, err := os.Stat(rulesPath); err == nil {
		return derrors.NewAlreadyExistsError(rulesPath, fmt.Sprintf("rule file already exists: %s", rulesPath))
	}

	if err := os.WriteFile(rulesPath, []byte(sampleRules), 0644); err != nil {
		return derrors.NewConfigurationError(rulesPath, "failed to create rule file", err)
	}

	fmt.Printf("Created sample rules: %s\n", rulesPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the rules to suit your programs")
	fmt.Println("  2. Run 'rlcomplete validate' to check them")
	fmt.Println("  3. Run 'rlcomplete env <program>' to start a program with the shim")
	return nil
}
