package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/rlcomplete/internal/config"
	"github.com/NikitaCOEUR/rlcomplete/internal/derrors"
)

// Validate validates a rule file. An empty rulesPath means the rule file
// of configDir.
func Validate(rulesPath, configDir string) error {
	rulesPath, err := resolveRulesPath(rulesPath, configDir)
	if err != nil {
		return err
	}

	fmt.Printf("Validating: %s\n\n", rulesPath)

	content, err := os.ReadFile(rulesPath)
	if err != nil {
		return fmt.Errorf("failed to read rule file: %w", err)
	}

	// Schema first; custom checks assume a well-formed document
	result, err := config.ValidateWithSchema(rulesPath, content)
	if err != nil {
		return err
	}

	if result.Valid {
		customResult, err := config.Validate(rulesPath)
		if err != nil {
			return err
		}
		if !customResult.Valid {
			result.Valid = false
			result.Errors = append(result.Errors, customResult.Errors...)
		}
	}

	if result.Valid {
		fmt.Println("✅ Rules are valid!")
		return nil
	}

	fmt.Println("❌ Rules have errors:")
	for i, validationErr := range result.Errors {
		fmt.Printf("%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}

	fmt.Printf("\nFound %d error(s)\n", len(result.Errors))

	return derrors.NewValidationError(rulesPath, "validation failed", nil)
}
