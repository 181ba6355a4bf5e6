package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// History log errors
	ErrCodeHistoryNotFound ErrorCode = "HISTORY_NOT_FOUND"
	ErrCodeHistoryParse    ErrorCode = "HISTORY_PARSE"

	// Command execution errors
	ErrCodeCommandTimeout  ErrorCode = "COMMAND_TIMEOUT"
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeCommandFailed   ErrorCode = "COMMAND_FAILED"

	// Pipeline stage errors
	ErrCodeExtractFailed      ErrorCode = "EXTRACT_FAILED"
	ErrCodeExtractNoOutput    ErrorCode = "EXTRACT_NO_OUTPUT"
	ErrCodeTranscribeFailed   ErrorCode = "TRANSCRIBE_FAILED"
	ErrCodeTranscribeNoOutput ErrorCode = "TRANSCRIBE_NO_OUTPUT"
	ErrCodeSourceFileNotFound ErrorCode = "SOURCE_FILE_NOT_FOUND"

	// Webhook errors
	ErrCodeWebhookNotConfigured ErrorCode = "WEBHOOK_NOT_CONFIGURED"
	ErrCodeWebhookFailed        ErrorCode = "WEBHOOK_FAILED"

	// Session errors
	ErrCodeSessionActive ErrorCode = "SESSION_ACTIVE"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// ScribeError represents a structured error with context
type ScribeError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *ScribeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ScribeError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *ScribeError) WithDetail(key string, value interface{}) *ScribeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *ScribeError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new ScribeError
func New(code ErrorCode, message string) *ScribeError {
	return &ScribeError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ScribeError
func Wrap(err error, code ErrorCode, message string) *ScribeError {
	return &ScribeError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific ScribeError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	scribeErr, ok := err.(*ScribeError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return scribeErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	scribeErr, ok := err.(*ScribeError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return scribeErr.Code
}
