package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeFetchTimeout   = "FETCH_TIMEOUT"
	ErrCodeFetchFailed    = "FETCH_FAILED"
	ErrCodeSearchNoResult = "SEARCH_NO_RESULT"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeInternal       = "INTERNAL_ERROR"

	// LLM-related error codes for the summary/email/tags/chat surface.
	ErrCodeLLMFailure     = "LLM_FAILURE"
	ErrCodeLLMAuthFailure = "LLM_AUTH_FAILURE"
	ErrCodeLLMRateLimited = "LLM_RATE_LIMITED"
	ErrCodeLLMDisabled    = "LLM_DISABLED"
)

// ErrorDetail is the structured error in API responses and error outcomes.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LeadError is the internal error type carrying an error code.
// It implements the error interface and supports wrapping via Unwrap.
type LeadError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *LeadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LeadError) Unwrap() error {
	return e.Err
}

// NewLeadError creates a new LeadError.
func NewLeadError(code, message string, err error) *LeadError {
	return &LeadError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *LeadError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}
