package catalog

import (
	"errors"
	"fmt"

	"github.com/mbellwood/arcanum/internal/guideline"
)

// Error represents a failure detected by the catalog index.
//
// Two families share this type:
//   - Domain failures callers are expected to branch on:
//     duplicate insert, missing update/lookup target.
//   - Structural failures that indicate a programming error:
//     out-of-range search windows, keys the comparator could not order.
//
// Unknown filter/order fields are NOT errors; the query compiler drops and
// logs them (see internal/querysql).
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Key identifies the affected composite key, when one is involved.
	Key guideline.Key

	// HasKey reports whether Key is meaningful for this error.
	HasKey bool
}

// ErrorCode categorizes catalog errors.
type ErrorCode string

const (
	// ErrCodeDuplicateKey indicates an insert collided with an existing entry.
	ErrCodeDuplicateKey ErrorCode = "DUPLICATE_KEY"

	// ErrCodeNotFound indicates the lookup/update target is absent.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeInvalidRange indicates a search window outside [0, len] or with
	// start > end.
	ErrCodeInvalidRange ErrorCode = "INVALID_RANGE"

	// ErrCodeIncomparableValue indicates the comparator could not order two
	// keys. Malformed key data; always fatal, never resolved to a tie.
	ErrCodeIncomparableValue ErrorCode = "INCOMPARABLE_VALUE"

	// ErrCodeKeyMismatch indicates a replacement entry carried a different
	// key than the lookup key. Key-changing replacements are rejected to
	// protect the sort invariant; callers remove and re-insert instead.
	ErrCodeKeyMismatch ErrorCode = "KEY_MISMATCH"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.HasKey {
		return fmt.Sprintf("%s: %s (key=%s)", e.Code, e.Message, e.Key)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsDuplicateKey reports whether err is a duplicate-key error.
// Uses errors.As to handle wrapped errors.
func IsDuplicateKey(err error) bool {
	return hasCode(err, ErrCodeDuplicateKey)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsInvalidRange reports whether err is an invalid search-window error.
func IsInvalidRange(err error) bool {
	return hasCode(err, ErrCodeInvalidRange)
}

// IsIncomparable reports whether err is an incomparable-value error.
func IsIncomparable(err error) bool {
	return hasCode(err, ErrCodeIncomparableValue)
}

// IsKeyMismatch reports whether err is a key-mismatch error.
func IsKeyMismatch(err error) bool {
	return hasCode(err, ErrCodeKeyMismatch)
}

func hasCode(err error, code ErrorCode) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// newDuplicateKeyError creates an Error for an insert collision.
func newDuplicateKeyError(key guideline.Key) *Error {
	return &Error{
		Code:    ErrCodeDuplicateKey,
		Message: "entry with equal key already exists",
		Key:     key,
		HasKey:  true,
	}
}

// newNotFoundError creates an Error for a missing lookup/update target.
func newNotFoundError(key guideline.Key) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: "no entry with this key",
		Key:     key,
		HasKey:  true,
	}
}

// newInvalidRangeError creates an Error for an out-of-bounds search window.
func newInvalidRangeError(start, end, length int) *Error {
	return &Error{
		Code:    ErrCodeInvalidRange,
		Message: fmt.Sprintf("search window [%d, %d) outside [0, %d]", start, end, length),
	}
}

// newIncomparableError creates an Error for keys the comparator could not order.
func newIncomparableError(key guideline.Key) *Error {
	return &Error{
		Code:    ErrCodeIncomparableValue,
		Message: "comparator could not order keys; malformed key data",
		Key:     key,
		HasKey:  true,
	}
}

// newKeyMismatchError creates an Error for a key-changing replacement.
func newKeyMismatchError(key guideline.Key) *Error {
	return &Error{
		Code:    ErrCodeKeyMismatch,
		Message: "replacement entry must keep the lookup key; remove and re-insert to change keys",
		Key:     key,
		HasKey:  true,
	}
}
