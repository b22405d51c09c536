// Package fields holds the single-purpose recognizers for email, phone and
// experience duration.
package fields

// Optional is a value that may be absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Value returns the value and whether it is present.
func (o Optional[T]) Value() (T, bool) {
	return o.value, o.ok
}

// OK reports whether a value is present.
func (o Optional[T]) OK() bool {
	return o.ok
}

// Or returns the value, or def when absent.
func (o Optional[T]) Or(def T) T {
	if !o.ok {
		return def
	}
	return o.value
}
