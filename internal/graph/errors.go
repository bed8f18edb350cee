package graph

import (
	"errors"
	"fmt"
)

// Stable numeric error codes. Values are load-bearing for tests and external
// integrations; never renumber.
const (
	// Connection mutation.
	CodeConnectionNotFound  = 200
	CodeNodeNotFound        = 301
	CodeSourcePortNotFound  = 302
	CodeTargetPortNotFound  = 303
	CodeSelfReference       = 304
	CodeTypeMismatch        = 305
	CodeDuplicateConnection = 306
	CodeDuplicateNode       = 307

	// Structural validation.
	CodeBrokenNodeReference = 510
	CodeBrokenPortReference = 511
	CodeLookupMismatch      = 512
	CodeConnectionTypeError = 513
	CodeAdjacencyMismatch   = 514
	CodeExecutionCycle      = 515
	CodeMissingStart        = 516
	CodeUnreachableNode     = 517

	// Persistence.
	CodeInvalidDocument      = 600
	CodeMissingField         = 601
	CodeInvalidEnum          = 602
	CodeInvalidPropertyValue = 603
	CodeInvalidTypeName      = 604
	CodeInvalidConnection    = 605
	CodeInvalidSchemaVersion = 606
)

// Error is a coded error. Every fallible core operation returns one (possibly
// wrapped) so callers can switch on the stable code.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Errorf builds a coded error with a formatted message.
func Errorf(code int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the numeric code from err, unwrapping as needed.
// Returns 0 when err carries no code.
func CodeOf(err error) int {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return 0
}
