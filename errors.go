package vector

import "persist.dev/vector/internal/verrors"

// Sentinel errors, matching spec.md §7's error taxonomy. Compare with
// errors.Is, not equality, since index errors carry extra context (see
// errors.As with *IndexError).
var (
	// ErrIndexOutOfRange is returned by Set, Insert, Remove, and the
	// batch/many variants when given an index outside the operation's
	// permitted range. Get never returns it; absence is reported via
	// the ok boolean instead.
	ErrIndexOutOfRange = verrors.ErrIndexOutOfRange

	// ErrTransientConsumed is returned by any Transient method called
	// after Persist.
	ErrTransientConsumed = verrors.ErrTransientConsumed

	// ErrInvariant marks an internal consistency failure. Code that
	// detects one panics with it rather than returning it.
	ErrInvariant = verrors.ErrInvariant
)

// IndexError is returned (wrapped) by operations that reject an
// out-of-range index; use errors.As to recover the offending index and
// the size it was checked against.
type IndexError = verrors.IndexError
