package sdk

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for common SDK error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrTaskNotFound indicates the requested task was not found in the dataset.
	ErrTaskNotFound = errors.New("task not found")

	// ErrEvaluatorNotFound indicates an eval config names an evaluator that is
	// not registered.
	ErrEvaluatorNotFound = errors.New("evaluator not found")

	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrParse indicates that input data could not be parsed.
	ErrParse = errors.New("parse failed")

	// ErrStore indicates that persisting or loading a result failed.
	// The underlying error should be wrapped for additional context.
	ErrStore = errors.New("result store operation failed")
)

// Error kinds categorize errors by their type.
const (
	// KindNotFound represents errors where a resource was not found.
	KindNotFound = "not_found"

	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindEvaluation represents errors that occur while running evaluators.
	KindEvaluation = "evaluation"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindStorage represents errors related to result persistence.
	KindStorage = "storage"

	// KindInternal represents internal SDK errors.
	KindInternal = "internal"
)

// SDKError is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of error.
//
// SDKError implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &SDKError{
//		Op:   "Verifier.EvaluateTask",
//		Kind: KindNotFound,
//		Err:  ErrTaskNotFound,
//	}
type SDKError struct {
	// Op is the operation that failed (e.g., "Verifier.EvaluateTask").
	Op string

	// Kind categorizes the error (e.g., KindNotFound, KindValidation).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include task IDs, evaluator names, or other debugging information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *SDKError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sdk: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("sdk: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("sdk: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *SDKError) Unwrap() error {
	return e.Err
}

// Is implements error matching for SDKError, allowing comparison based on
// the underlying error or the SDKError itself.
func (e *SDKError) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check if target is an SDKError with matching Kind
	if t, ok := target.(*SDKError); ok {
		// Match if both Op and Kind are the same, or if Kind matches and Op is empty in target
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	// Delegate to underlying error
	return errors.Is(e.Err, target)
}

// WithContext returns a new SDKError with the provided context added.
// This is useful for adding debugging information to errors.
//
// Example:
//
//	err := &SDKError{
//		Op:   "Verifier.EvaluateTask",
//		Kind: KindNotFound,
//		Err:  ErrTaskNotFound,
//	}
//	err = err.WithContext(map[string]any{
//		"task_id": 42,
//	})
func (e *SDKError) WithContext(ctx map[string]any) *SDKError {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewNotFoundError creates a new SDKError with KindNotFound.
func NewNotFoundError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindNotFound,
		Err:  err,
	}
}

// NewValidationError creates a new SDKError with KindValidation.
func NewValidationError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewEvaluationError creates a new SDKError with KindEvaluation.
func NewEvaluationError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindEvaluation,
		Err:  err,
	}
}

// NewConfigurationError creates a new SDKError with KindConfiguration.
func NewConfigurationError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewStorageError creates a new SDKError with KindStorage.
func NewStorageError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindStorage,
		Err:  err,
	}
}

// NewInternalError creates a new SDKError with KindInternal.
func NewInternalError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements to ensure
// cleanup errors are not silently ignored.
//
// The name parameter should describe the resource being closed (e.g., "file",
// "connection", "result store"). If logger is nil, slog.Default() is used.
//
// Example usage:
//
//	defer sdk.CloseWithLog(store, logger, "result store")
//	defer sdk.CloseWithLog(logFile, logger, "result log")
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
