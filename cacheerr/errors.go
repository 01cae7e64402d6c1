// Package cacheerr defines the cache library's error taxonomy:
// InvalidArgument, IllegalState, and OutOfRange. These are kinds, not
// sentinel values, following a lightweight local error style rather than
// pulling in a third-party error-wrapping library — no example in the
// reference corpus reaches for one just to tag a handful of error kinds.
package cacheerr

import (
	"errors"
	"fmt"
)

// Kind identifies which contract was violated.
type Kind int

const (
	// InvalidArgument is raised by constructors and setters on bad input:
	// capacity <= 0, a nil policy, a non-positive global TTL.
	InvalidArgument Kind = iota
	// IllegalState is raised by SelectVictim when called on an empty policy.
	// This cannot arise from normal Put flow (the cache guards SelectVictim
	// with size == capacity >= 1); it signals a contract violation.
	IllegalState
	// OutOfRange is raised by the sharded wrapper for an explicit
	// shard-index query outside [0, ShardCount).
	OutOfRange
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case IllegalState:
		return "IllegalState"
	case OutOfRange:
		return "OutOfRange"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type raised by this module.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Msg) }

// New constructs an *Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err, or any error in its chain, is a *Error of the
// given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
