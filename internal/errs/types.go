package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes an error so callers can react without inspecting text.
type Kind uint8

const (
	// KindOperationFailed wraps an underlying store failure (connectivity,
	// constraint violation mid-transaction). The default kind.
	KindOperationFailed Kind = iota

	// KindConflict means a uniqueness constraint would be violated by a create.
	KindConflict

	// KindInvalidReference means a foreign-key target does not exist.
	KindInvalidReference

	// KindNotFound means a point lookup, update, or delete targeted a
	// non-existent row.
	KindNotFound

	// KindInvalidArgument means the caller supplied an empty or malformed
	// field set.
	KindInvalidArgument
)

// String returns a readable name for the kind, mostly for logs.
func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindInvalidReference:
		return "invalid_reference"
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "operation_failed"
	}
}

// Error is the concrete error type returned across the library boundary.
//
// Fields:
//   - Kind: the category callers switch on.
//   - Code: machine-friendly code (e.g. "ORDER_ALREADY_EXISTS").
//   - Message: human-readable message, safe to show to an end user.
type Error struct {
	Kind    Kind
	Code    string
	Message string

	// err is the wrapped cause, reachable via errors.Unwrap.
	err error
}

// Error makes *Error satisfy the built-in error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.err
}

// NewConflict creates a KindConflict error.
func NewConflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

// NewInvalidReference creates a KindInvalidReference error.
func NewInvalidReference(code, message string) *Error {
	return &Error{Kind: KindInvalidReference, Code: code, Message: message}
}

// NewNotFound creates a KindNotFound error.
func NewNotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

// NewInvalidArgument creates a KindInvalidArgument error.
func NewInvalidArgument(code, message string) *Error {
	return &Error{Kind: KindInvalidArgument, Code: code, Message: message}
}

// NewOperationFailed creates a KindOperationFailed error wrapping cause.
func NewOperationFailed(cause error, message string) *Error {
	return &Error{Kind: KindOperationFailed, Code: "OPERATION_FAILED", Message: message, err: cause}
}

// kindOf extracts the Kind from err, or KindOperationFailed with ok=false
// when err is not a *Error.
func kindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindOperationFailed, false
}

// IsConflict reports whether err is a uniqueness conflict.
func IsConflict(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindConflict
}

// IsInvalidReference reports whether err is a missing foreign-key target.
func IsInvalidReference(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindInvalidReference
}

// IsNotFound reports whether err targeted a non-existent row.
func IsNotFound(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindNotFound
}

// IsInvalidArgument reports whether err was caused by bad caller input.
func IsInvalidArgument(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindInvalidArgument
}

// IsOperationFailed reports whether err wraps an underlying store failure.
func IsOperationFailed(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindOperationFailed
}

// CodeOf returns the machine code carried by err, or "" when err is not a
// *Error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
