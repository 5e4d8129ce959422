package vector

// This file implements the operation-fusion kernels of spec component
// C7: each visits its input Vector(s) exactly once and builds its
// result without allocating an intermediate Vector, while remaining
// semantically identical to the equivalent sequential composition
// (spec.md §4.7, invariant 8 in §8).

// MapFilter applies f to every element of v, keeps the results for
// which p reports true, and returns them as a new Vector — equivalent
// to Filter(Map(v, f), p) but single-pass.
func MapFilter[T, U any](v Vector[T], f func(T) U, p func(U) bool) Vector[U] {
	src := v.ToSlice()
	out := make([]U, 0, len(src))
	for _, x := range src {
		y := f(x)
		if p(y) {
			out = append(out, y)
		}
	}
	return fromSliceTagged(out, DefaultConfig[U](), DefaultConfig[U]().target(len(out)))
}

// FilterMap keeps the elements of v for which p reports true, applies f
// to each, and returns them as a new Vector — equivalent to
// Map(Filter(v, p), f) but single-pass.
func FilterMap[T, U any](v Vector[T], p func(T) bool, f func(T) U) Vector[U] {
	src := v.ToSlice()
	out := make([]U, 0, len(src))
	for _, x := range src {
		if p(x) {
			out = append(out, f(x))
		}
	}
	return fromSliceTagged(out, DefaultConfig[U](), DefaultConfig[U]().target(len(out)))
}

// MapFilterReduce applies f, keeps results for which p reports true,
// and folds g over the survivors starting from init — equivalent to
// Reduce(Filter(Map(v, f), p), g, init) but single-pass.
func MapFilterReduce[T, U, A any](v Vector[T], f func(T) U, p func(U) bool, g func(A, U) A, init A) A {
	acc := init
	for _, x := range v.ToSlice() {
		y := f(x)
		if p(y) {
			acc = g(acc, y)
		}
	}
	return acc
}

// MapReduce applies f to every element of v and folds g over the
// results starting from init — equivalent to Reduce(Map(v, f), g, init)
// but single-pass.
func MapReduce[T, U, A any](v Vector[T], f func(T) U, g func(A, U) A, init A) A {
	acc := init
	for _, x := range v.ToSlice() {
		acc = g(acc, f(x))
	}
	return acc
}

// FilterReduce keeps the elements of v for which p reports true and
// folds g over the survivors starting from init — equivalent to
// Reduce(Filter(v, p), g, init) but single-pass.
func FilterReduce[T, A any](v Vector[T], p func(T) bool, g func(A, T) A, init A) A {
	acc := init
	for _, x := range v.ToSlice() {
		if p(x) {
			acc = g(acc, x)
		}
	}
	return acc
}

// MapSlice applies f to every element of v and returns the elements of
// the result in [i, j) — equivalent to Map(v, f).Slice(i, j) but
// without materialising the intermediate full-size Vector.
func MapSlice[T, U any](v Vector[T], f func(T) U, i, j int) Vector[U] {
	src := v.ToSlice()
	i, j = normalizeRange(i, j, len(src))
	out := make([]U, 0, j-i)
	for _, x := range src[i:j] {
		out = append(out, f(x))
	}
	return fromSliceTagged(out, DefaultConfig[U](), DefaultConfig[U]().target(len(out)))
}

// SliceMap returns the elements of v in [i, j) with f applied to each
// — equivalent to Map(v.Slice(i, j), f) but without the intermediate
// Vector.
func SliceMap[T, U any](v Vector[T], i, j int, f func(T) U) Vector[U] {
	return MapSlice(v, f, i, j)
}

// FilterSlice keeps the elements of v for which p reports true and
// returns the [i, j) range of survivors — equivalent to
// Filter(v, p).Slice(i, j) but without the intermediate Vector.
func FilterSlice[T any](v Vector[T], p func(T) bool, i, j int) Vector[T] {
	src := v.ToSlice()
	survivors := make([]T, 0, len(src))
	for _, x := range src {
		if p(x) {
			survivors = append(survivors, x)
		}
	}
	i, j = normalizeRange(i, j, len(survivors))
	out := survivors[i:j]
	return fromSliceTagged(out, v.cfg, v.cfg.target(len(out)))
}

// SliceFilter returns the elements of v in [i, j) for which p reports
// true — equivalent to Filter(v.Slice(i, j), p) but without the
// intermediate Vector.
func SliceFilter[T any](v Vector[T], i, j int, p func(T) bool) Vector[T] {
	src := v.ToSlice()
	i, j = normalizeRange(i, j, len(src))
	out := make([]T, 0, j-i)
	for _, x := range src[i:j] {
		if p(x) {
			out = append(out, x)
		}
	}
	return fromSliceTagged(out, v.cfg, v.cfg.target(len(out)))
}

// ConcatMap applies f to every element of a followed by every element
// of b, and returns the results as a new Vector — equivalent to
// Map(a.Concat(b), f) but without the intermediate concatenated Vector.
func ConcatMap[T, U any](a, b Vector[T], f func(T) U) Vector[U] {
	out := make([]U, 0, a.Size()+b.Size())
	for _, x := range a.ToSlice() {
		out = append(out, f(x))
	}
	for _, x := range b.ToSlice() {
		out = append(out, f(x))
	}
	return fromSliceTagged(out, DefaultConfig[U](), DefaultConfig[U]().target(len(out)))
}

// MapConcat applies f to every element of a and b independently and
// concatenates the two results — equivalent to Map(a, f).Concat(Map(b,
// f)) but without either intermediate Vector.
func MapConcat[T, U any](a, b Vector[T], f func(T) U) Vector[U] {
	return ConcatMap(a, b, f)
}

// BatchUpdate is UpdateMany exposed as a free function, for symmetry
// with the other fusion kernels.
func BatchUpdate[T any](v Vector[T], pairs []Pair[T]) (Vector[T], error) {
	return v.UpdateMany(pairs)
}

// BatchInsert is InsertMany exposed as a free function, for symmetry
// with the other fusion kernels.
func BatchInsert[T any](v Vector[T], pairs []Pair[T]) (Vector[T], error) {
	return v.InsertMany(pairs)
}

// BatchRemove is RemoveMany exposed as a free function, for symmetry
// with the other fusion kernels.
func BatchRemove[T any](v Vector[T], indices []int) (Vector[T], error) {
	return v.RemoveMany(indices)
}
