package derrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolError(t *testing.T) {
	cause := fmt.Errorf("undefined symbol: rl_complete")
	err := NewSymbolError("rl_complete", "failed to resolve original symbol", cause)

	assert.Equal(t, "SYMBOL_ERROR", err.Code())
	assert.Equal(t, "rl_complete", err.Symbol)
	assert.Contains(t, err.Error(), "failed to resolve original symbol")
	assert.Contains(t, err.Error(), "undefined symbol")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestEncodingError(t *testing.T) {
	input := []byte{0xff, 0xfe}
	err := NewEncodingError(input, "completion text is not valid UTF-8")

	assert.Equal(t, "ENCODING_ERROR", err.Code())
	assert.Equal(t, input, err.Input)
	assert.Equal(t, "completion text is not valid UTF-8", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestProtocolError(t *testing.T) {
	cause := fmt.Errorf("invalid UTF-8")
	err := NewProtocolError("rl_custom_complete", 3, "unreadable helper output", cause)

	assert.Equal(t, "PROTOCOL_ERROR", err.Code())
	assert.Equal(t, "rl_custom_complete", err.Program)
	assert.Equal(t, 3, err.Line)
	assert.Contains(t, err.Error(), "unreadable helper output")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestConfigurationError(t *testing.T) {
	cause := fmt.Errorf("invalid YAML")
	err := NewConfigurationError("/path/to/rules.yml", "failed to parse config", cause)

	assert.Equal(t, "CONFIG_ERROR", err.Code())
	assert.Equal(t, "/path/to/rules.yml", err.Path)
	assert.Contains(t, err.Error(), "invalid YAML")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestExecutionError(t *testing.T) {
	cause := fmt.Errorf("exit status 2")
	err := NewExecutionError("ls /nope", "rule command failed", cause)

	assert.Equal(t, "EXEC_ERROR", err.Code())
	assert.Equal(t, "ls /nope", err.Command)
	assert.Contains(t, err.Error(), "exit status 2")
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("apps/python[0].match", "invalid regexp", nil)

	assert.Equal(t, "VALIDATION_ERROR", err.Code())
	assert.Equal(t, "apps/python[0].match", err.Field)
	assert.Equal(t, "invalid regexp", err.Error())
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("rules", "no rule file found")

	assert.Equal(t, "NOT_FOUND", err.Code())
	assert.Equal(t, "rules", err.Resource)
}

func TestAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("rules.yml", "rule file already exists")

	assert.Equal(t, "ALREADY_EXISTS", err.Code())
	assert.Equal(t, "rules.yml", err.Resource)
	assert.Nil(t, err.Unwrap())
}

func TestErrorsAs(t *testing.T) {
	var wrapped error = fmt.Errorf("request aborted: %w", NewEncodingError(nil, "bad text"))

	var encErr *EncodingError
	assert.True(t, errors.As(wrapped, &encErr))

	var derr Error
	assert.True(t, errors.As(wrapped, &derr))
	assert.Equal(t, "ENCODING_ERROR", derr.Code())
}
