package core

import (
	"errors"
	"fmt"
)

// ConfigError represents a configuration-related error with actionable instructions.
type ConfigError struct {
	Code    string // Error code for programmatic handling
	Message string // Human-readable error message
	Action  string // Actionable instruction for resolution
}

func (e *ConfigError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Action)
	}
	return e.Message
}

// Error codes for configuration errors
const (
	ErrCodeEnvFileMissing  = "ENV_FILE_MISSING"
	ErrCodeConfigFile      = "CONFIG_FILE"
	ErrCodeMissingAuth     = "MISSING_AUTH"
	ErrCodeUnknownProvider = "UNKNOWN_PROVIDER"
	ErrCodeInvalidValue    = "INVALID_VALUE"
	ErrCodeMissingConfig   = "MISSING_CONFIG"
)

// ErrEnvFileMissing returns an error for missing .env file
func ErrEnvFileMissing(path string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeEnvFileMissing,
		Message: fmt.Sprintf("Environment file not found: %s", path),
		Action:  "Settings are read from the process environment only",
	}
}

// ErrConfigFile returns an error for an unreadable or malformed YAML config file.
func ErrConfigFile(path, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeConfigFile,
		Message: fmt.Sprintf("Cannot load config file %s: %s", path, reason),
		Action:  "Fix the file or remove the --config flag / FINSUM_CONFIG variable",
	}
}

// ErrMissingAuth returns an error for missing authentication credentials
func ErrMissingAuth(provider string) *ConfigError {
	var action string
	switch provider {
	case ProviderGemini:
		action = "Set GEMINI_API_KEY in your environment or .env file"
	case ProviderOpenAI:
		action = "Set OPENAI_API_KEY in your environment or .env file"
	default:
		action = fmt.Sprintf("Set the API key for %s", provider)
	}
	return &ConfigError{
		Code:    ErrCodeMissingAuth,
		Message: fmt.Sprintf("Missing API key for %s", provider),
		Action:  action,
	}
}

// ErrUnknownProvider returns an error for an unsupported LLM_PROVIDER value.
func ErrUnknownProvider(provider string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeUnknownProvider,
		Message: fmt.Sprintf("Unknown text-generation provider %q", provider),
		Action:  fmt.Sprintf("Set LLM_PROVIDER to %q or %q", ProviderGemini, ProviderOpenAI),
	}
}

// ErrInvalidValue returns an error for a setting with an out-of-range value.
func ErrInvalidValue(varName, value, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidValue,
		Message: fmt.Sprintf("Invalid %s=%s: %s", varName, value, reason),
		Action:  fmt.Sprintf("Correct %s in your environment or config file", varName),
	}
}

// ErrMissingConfig returns an error for missing required configuration
func ErrMissingConfig(varName string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeMissingConfig,
		Message: fmt.Sprintf("Missing required configuration: %s", varName),
		Action:  fmt.Sprintf("Set %s in your environment or config file", varName),
	}
}

// IsConfigError checks if an error is (or wraps) a ConfigError and returns it if so
func IsConfigError(err error) (*ConfigError, bool) {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an error if it's a ConfigError
func GetErrorCode(err error) string {
	if configErr, ok := IsConfigError(err); ok {
		return configErr.Code
	}
	return ""
}
