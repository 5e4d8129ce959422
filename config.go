package vector

import (
	"persist.dev/vector/internal/chunk"
	"persist.dev/vector/internal/node"
)

// Config controls the representation thresholds and optional recycling
// resources a Vector[T] uses. The zero Config is not valid; use
// DefaultConfig or newConfig with Options.
type Config[T any] struct {
	// SmallThreshold is S_small: sizes below this use the SMALL tag.
	SmallThreshold int
	// MediumThreshold is S_medium: sizes at or above this use the BIG
	// tag; sizes in [SmallThreshold, MediumThreshold) use CHUNKED.
	MediumThreshold int

	pool  *chunk.Pool[T]
	cache *node.Cache[T]
}

// DefaultConfig returns the Config used when no options are supplied:
// S_small = 31, S_medium = 1024, matching spec.md §4.6's examples and
// resolving its "two conflicting thresholds" open question with a single
// monotone pair (see DESIGN.md). Pooling and caching are disabled.
func DefaultConfig[T any]() Config[T] {
	return Config[T]{
		SmallThreshold:  31,
		MediumThreshold: 1024,
	}
}

// Option configures a Config[T].
type Option[T any] func(*Config[T])

// WithSmallThreshold overrides S_small, the size at and above which a
// Vector leaves the single-buffer SMALL representation.
func WithSmallThreshold[T any](n int) Option[T] {
	return func(c *Config[T]) { c.SmallThreshold = n }
}

// WithMediumThreshold overrides S_medium, the size at and above which a
// Vector uses the BIG (full trie) representation rather than CHUNKED.
func WithMediumThreshold[T any](n int) Option[T] {
	return func(c *Config[T]) { c.MediumThreshold = n }
}

// WithChunkPool attaches a new chunk.Pool (spec component C1's resource
// half) with the given retention ceiling to this Config; new append
// tails are drawn from it. The vector operations never return chunks to
// the pool, so it only hands out recycled chunks that a caller has Put
// into it; otherwise every new tail is freshly allocated, as without
// the option.
func WithChunkPool[T any](ceiling int) Option[T] {
	return func(c *Config[T]) { c.pool = chunk.NewPool[T](ceiling) }
}

// WithNodeCache enables interning of structurally-equal shared trie
// nodes (spec component C2's resource half) with the given retention
// ceiling. A ceiling of 0 (the default) disables interning.
func WithNodeCache[T any](ceiling int) Option[T] {
	return func(c *Config[T]) { c.cache = node.NewCache[T](ceiling) }
}

func newConfig[T any](opts []Option[T]) Config[T] {
	cfg := DefaultConfig[T]()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
