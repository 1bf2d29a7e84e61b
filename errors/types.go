package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Project selection errors
	ErrCodeUnknownProject       ErrorCode = "UNKNOWN_PROJECT"
	ErrCodeProjectUnavailable   ErrorCode = "PROJECT_UNAVAILABLE"
	ErrCodeInvalidSelection     ErrorCode = "INVALID_SELECTION"
	ErrCodeAborted              ErrorCode = "ABORTED"
	ErrCodeInstallationDeclined ErrorCode = "INSTALLATION_DECLINED"

	// Workspace errors
	ErrCodeNoRemoteConfigured ErrorCode = "NO_REMOTE_CONFIGURED"
	ErrCodeCloneFailed        ErrorCode = "CLONE_FAILED"

	// Session errors
	ErrCodeDirectoryUnavailable ErrorCode = "DIRECTORY_UNAVAILABLE"
	ErrCodeSessionAlreadyActive ErrorCode = "SESSION_ALREADY_ACTIVE"

	// VCS and provisioning errors
	ErrCodeVCSNotInstalled ErrorCode = "VCS_NOT_INSTALLED"
	ErrCodeNotARepository  ErrorCode = "NOT_A_REPOSITORY"

	// Command execution errors
	ErrCodeCommandFailed ErrorCode = "COMMAND_FAILED"

	// General errors
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
)

// Error represents a structured error with context
type Error struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Detail returns a detail value as a string, or "" if it is not set.
func (e *Error) Detail(key string) string {
	v, ok := e.Details[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// ToJSON converts the error to JSON
func (e *Error) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new Error
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an Error
func Wrap(err error, code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e, true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = unwrapper.Unwrap()
	}
	return nil, false
}

// Is checks if an error is a specific Error code
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && err != nil
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	e, ok := As(err)
	if !ok {
		return ""
	}
	return e.Code
}

// ExitCode maps an error to the process exit status. Deliberate aborts exit
// cleanly; a path that exists but is not a repository exits with 2.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetCode(err) {
	case ErrCodeAborted:
		return 0
	case ErrCodeNotARepository:
		return 2
	default:
		return 1
	}
}
