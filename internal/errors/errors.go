package errors

import "fmt"

// ErrorCode represents a pipeline error code.
type ErrorCode string

const (
	ErrMissingCredential ErrorCode = "MISSING_CREDENTIAL" // fatal setup
	ErrMissingInput      ErrorCode = "MISSING_INPUT"      // fatal setup (required local file absent)
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"    // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrUpstream          ErrorCode = "UPSTREAM"           // 502 (document database)
	ErrRender            ErrorCode = "RENDER"             // per-item render/write failure
	ErrInternal          ErrorCode = "INTERNAL"           // 500
)

// PipelineError is a structured error with code, message, and details.
type PipelineError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Fatal reports whether the error is a setup error that should abort the
// whole run rather than skip a single item.
func (e *PipelineError) Fatal() bool {
	return e.Code == ErrMissingCredential || e.Code == ErrMissingInput
}

// NewMissingCredential creates a fatal setup error with remediation steps.
// The message is user-facing: it tells the operator how to supply the token.
func NewMissingCredential() *PipelineError {
	return &PipelineError{
		Code: ErrMissingCredential,
		Message: "NOTION_TOKEN not found; either add NOTION_TOKEN to a .env file " +
			"in the project root, or export NOTION_TOKEN in your environment",
	}
}

// NewMissingInput creates a fatal setup error for a required local file.
func NewMissingInput(path, remediation string) *PipelineError {
	return &PipelineError{
		Code:    ErrMissingInput,
		Message: fmt.Sprintf("required file not found: %s (%s)", path, remediation),
		Details: map[string]any{"path": path},
	}
}

// NewInvalidRequest creates an error for invalid parameters.
func NewInvalidRequest(msg string) *PipelineError {
	return &PipelineError{
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewNotFound creates an error for a missing record or asset.
func NewNotFound(what string) *PipelineError {
	return &PipelineError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("not found: %s", what),
		Details: map[string]any{"identifier": what},
	}
}

// NewUpstream creates an error for a non-2xx or malformed document-database
// response. The raw payload is preserved in Details so the operator sees
// exactly what the API returned.
func NewUpstream(status int, payload string) *PipelineError {
	return &PipelineError{
		Code:    ErrUpstream,
		Message: fmt.Sprintf("document database returned status %d", status),
		Details: map[string]any{"status": status, "payload": payload},
	}
}

// NewRender creates a per-item error for a failed image render or write.
func NewRender(id string, err error) *PipelineError {
	return &PipelineError{
		Code:    ErrRender,
		Message: fmt.Sprintf("failed to render display for %s: %v", id, err),
		Details: map[string]any{"identifier": id},
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *PipelineError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &PipelineError{
		Code:    ErrInternal,
		Message: msg,
	}
}

// Is checks if an error is a PipelineError with the given code.
func Is(err error, code ErrorCode) bool {
	if pErr, ok := err.(*PipelineError); ok {
		return pErr.Code == code
	}
	return false
}
