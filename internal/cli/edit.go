package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/NikitaCOEUR/rlcomplete/internal/config"
)

// Edit opens the rule file of configDir in the user's editor, creating it
// from the sample when missing
func Edit(configDir string) error {
	rulesPath := config.FindFile(configDir, config.SupportedRuleNames)
	if rulesPath == "" {
		if err := Init(configDir); err != nil {
			return err
		}
		rulesPath = filepath.Join(configDir, "rules.yml")
	} else {
		fmt.Printf("Opening rules: %s\n", rulesPath)
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found. Set $EDITOR or $VISUAL environment variable")
	}

	cmd := exec.Command(editor, rulesPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func findEditor() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if editor := os.Getenv(env); editor != "" {
			return editor
		}
	}
	for _, e := range []string{"nano", "vim", "vi"} {
		if _, err := exec.LookPath(e); err == nil {
			return e
		}
	}
	return ""
}
