package config

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigRead     = "CONFIG_READ"
	ErrCodeConfigParse    = "CONFIG_PARSE"
	ErrCodeBaseDirExists  = "BASE_DIRECTORY_EXISTS"
	ErrCodeEnvFile        = "ENV_FILE"
)

// UserError represents a user-friendly error with actionable suggestions.
type UserError struct {
	Code       string // Error code for categorization (e.g., "CONFIG_NOT_FOUND")
	Message    string // User-friendly error message
	Context    string // File path, line number, or other location context
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *UserError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, " (at %s)", e.Context)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain support.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *UserError) Is(target error) bool {
	if t, ok := target.(*UserError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewConfigNotFoundError creates an error for a missing configuration file.
func NewConfigNotFoundError(path string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeConfigNotFound,
		Message:    fmt.Sprintf("configuration file not found: %s", path),
		Context:    path,
		Suggestion: "Pass --config or --base-directory, or run 'etc bootstrap' to clone your configuration repository.",
		Underlying: err,
	}
}

// NewConfigReadError creates an error for a configuration file that exists
// but cannot be read.
func NewConfigReadError(path string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeConfigRead,
		Message:    "failed to read configuration file",
		Context:    path,
		Suggestion: "Check the file permissions.",
		Underlying: err,
	}
}

// NewTOMLParseError creates an error for TOML decoding failures. line and
// column are 1-based; zero means unknown.
func NewTOMLParseError(path string, line, column int, err error) *UserError {
	context := path
	if line > 0 {
		context = fmt.Sprintf("%s:%d:%d", path, line, column)
	}
	return &UserError{
		Code:       ErrCodeConfigParse,
		Message:    "invalid TOML syntax",
		Context:    context,
		Suggestion: "Check your TOML syntax. Common issues: unquoted strings, missing '=' or a duplicated table header.",
		Underlying: err,
	}
}

// NewYAMLParseError translates technical YAML errors into user-friendly messages.
func NewYAMLParseError(path string, err error) *UserError {
	errStr := err.Error()
	var message, suggestion string

	switch {
	case strings.Contains(errStr, "did not find expected key"):
		message = "missing required field or incorrect indentation"
		suggestion = "YAML is sensitive to indentation. Use 2 spaces (not tabs) for each level."

	case strings.Contains(errStr, "mapping values are not allowed"):
		message = "invalid YAML structure"
		suggestion = "Check for missing colons after keys, or incorrect indentation."

	case strings.Contains(errStr, "found character that cannot start"):
		message = "invalid character in YAML"
		suggestion = "Quote string values that contain special characters like ':', '#', or '{'."

	case strings.Contains(errStr, "cannot unmarshal"):
		message = "configuration root must be a mapping"
		suggestion = "Start the document with top-level keys such as 'install:'."

	default:
		message = "invalid YAML syntax"
		suggestion = "Check your YAML syntax. Common issues: incorrect indentation, missing colons, or unquoted special characters."
	}

	context := path
	if parts := strings.SplitN(errStr, "line ", 2); len(parts) == 2 {
		lineInfo := strings.Split(parts[1], ":")[0]
		context = fmt.Sprintf("%s (line %s)", path, lineInfo)
	}

	return &UserError{
		Code:       ErrCodeConfigParse,
		Message:    message,
		Context:    context,
		Suggestion: suggestion,
		Underlying: err,
	}
}

// NewBaseDirectoryExistsError is returned by bootstrap when the target
// directory is already present.
func NewBaseDirectoryExistsError(path string) *UserError {
	return &UserError{
		Code:       ErrCodeBaseDirExists,
		Message:    fmt.Sprintf("base directory already exists: %s", path),
		Context:    path,
		Suggestion: "Run 'etc install' to apply the existing configuration, or choose another --base-directory.",
	}
}

// NewEnvFileError creates an error for an environment file that cannot be parsed.
func NewEnvFileError(path string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeEnvFile,
		Message:    "failed to load environment file",
		Context:    path,
		Suggestion: "Use KEY=VALUE lines; quote values containing spaces.",
		Underlying: err,
	}
}

// IsUserError checks if an error is a UserError with a specific code.
func IsUserError(err error, code string) bool {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Code == code
	}
	return false
}
