// Package verrors holds the error taxonomy shared by every
// representation package (trie, smallvec) so that the public vector
// package can re-export a single consistent set of sentinel errors, per
// spec.md §7.
package verrors

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by any mutating or insertional
// operation given an index outside its permitted range. Get-style
// queries never return it; they report absence with an ok bool instead.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrTransientConsumed is returned by any operation on a Transient after
// Persist has been called on it.
var ErrTransientConsumed = errors.New("transient already persisted")

// ErrInvariant marks an internal consistency failure — a bug in this
// module, not a caller error. Code that detects one panics with it
// rather than returning it, per spec.md §7 ("MAY be raised as fatal").
var ErrInvariant = errors.New("vector: internal invariant violated")

// IndexError wraps ErrIndexOutOfRange with the offending index so
// callers can recover it with errors.As.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0:%d]", e.Index, e.Size)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// IndexErr returns an error reporting that index i was out of range for
// a sequence of the given size.
func IndexErr(i, size int) error {
	return &IndexError{Index: i, Size: size}
}

// Invariant panics with ErrInvariant, annotated with msg. It is called
// only where the index arithmetic this module relies on has already
// gone wrong — a defect in this module, never a caller error.
func Invariant(msg string) {
	panic(fmt.Errorf("%w: %s", ErrInvariant, msg))
}
