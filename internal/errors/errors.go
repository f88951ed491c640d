// Package errors provides structured error handling for the relnotes CLI.
// Every fatal condition of the release note pipeline carries a Code so that
// callers can branch on the kind of failure rather than on message text,
// plus remediation steps that are shown to the user.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	// Argument errors are caused by invalid or missing command arguments.
	Argument ErrorCategory = iota
	// Configuration errors are caused by invalid or missing configuration.
	Configuration
	// Prerequisite errors occur when required files or credentials are missing.
	Prerequisite
	// Runtime errors occur during command execution.
	Runtime
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Prerequisite:
		return "Prerequisite Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// Code identifies a specific failure of the release note pipeline.
type Code int

const (
	// CodeUnknown is the zero value for errors created without a code.
	CodeUnknown Code = iota
	CodeNetworkUnavailable
	CodeMissingCredential
	CodeInvalidGroupSpec
	CodeNoReleasesFound
	CodeChangelogAlreadyExists
	CodeFileWrite
	CodeExternalAPI
	CodeInvalidArgument
	CodeRepositoryNotResolved
)

// String returns the identifier used in debug output.
func (c Code) String() string {
	switch c {
	case CodeNetworkUnavailable:
		return "NetworkUnavailable"
	case CodeMissingCredential:
		return "MissingCredential"
	case CodeInvalidGroupSpec:
		return "InvalidGroupSpec"
	case CodeNoReleasesFound:
		return "NoReleasesFound"
	case CodeChangelogAlreadyExists:
		return "ChangelogAlreadyExists"
	case CodeFileWrite:
		return "FileWriteError"
	case CodeExternalAPI:
		return "ExternalApiError"
	case CodeInvalidArgument:
		return "InvalidArgument"
	case CodeRepositoryNotResolved:
		return "RepositoryNotResolved"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is matching. CLIError.Is compares codes only, so
// errors.Is(err, ErrNoReleasesFound) holds for any NoReleasesFound error.
var (
	ErrNetworkUnavailable     = &CLIError{Code: CodeNetworkUnavailable}
	ErrMissingCredential      = &CLIError{Code: CodeMissingCredential}
	ErrInvalidGroupSpec       = &CLIError{Code: CodeInvalidGroupSpec}
	ErrNoReleasesFound        = &CLIError{Code: CodeNoReleasesFound}
	ErrChangelogAlreadyExists = &CLIError{Code: CodeChangelogAlreadyExists}
	ErrFileWrite              = &CLIError{Code: CodeFileWrite}
	ErrExternalAPI            = &CLIError{Code: CodeExternalAPI}
	ErrInvalidArgument        = &CLIError{Code: CodeInvalidArgument}
	ErrRepositoryNotResolved  = &CLIError{Code: CodeRepositoryNotResolved}
)

// CLIError is a structured error with category and remediation guidance.
type CLIError struct {
	// Category is the type of error (Argument, Configuration, etc.)
	Category ErrorCategory
	// Code identifies the failure kind.
	Code Code
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Usage shows the correct command syntax (optional, for argument errors).
	Usage string
	// Cause is the underlying error, if any. It is returned by Unwrap.
	Cause error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a CLIError with the same non-zero code.
func (e *CLIError) Is(target error) bool {
	t, ok := target.(*CLIError)
	if !ok {
		return false
	}
	return t.Code != CodeUnknown && t.Code == e.Code
}

// NewArgumentError creates a new argument error with the given message and remediation steps.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Argument,
		Code:        CodeInvalidArgument,
		Message:     message,
		Remediation: remediation,
	}
}

// NewArgumentErrorWithUsage creates a new argument error that includes correct usage syntax.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	err := NewArgumentError(message, remediation...)
	err.Usage = usage
	return err
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Configuration,
		Message:     message,
		Remediation: remediation,
	}
}

// NewPrerequisiteError creates a new prerequisite error.
func NewPrerequisiteError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Prerequisite,
		Message:     message,
		Remediation: remediation,
	}
}

// NewRuntimeError creates a new runtime error.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Runtime,
		Message:     message,
		Remediation: remediation,
	}
}

// WithCode sets the error code and returns the same error for chaining.
func (e *CLIError) WithCode(code Code) *CLIError {
	if e == nil {
		return nil
	}
	e.Code = code
	return e
}

// Wrap wraps an existing error with a CLIError, preserving the original message.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
		Cause:       err,
	}
}

// WrapWithMessage wraps an error with a custom message and category.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
		Cause:       err,
	}
}

// IsCLIError checks if an error is, or wraps, a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError finds the first CLIError in the error chain.
// Returns nil if there is none.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}

// CodeOf returns the code of the first CLIError in the chain, or CodeUnknown.
func CodeOf(err error) Code {
	if cliErr := AsCLIError(err); cliErr != nil {
		return cliErr.Code
	}
	return CodeUnknown
}
