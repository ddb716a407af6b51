package messaging

// Optional holds a value that is either unset or set.
// The zero value is unset.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional set to v
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an unset Optional
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is set
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is present
func (o Optional[T]) IsSet() bool {
	return o.set
}

// OrElse returns the value if set, otherwise def
func (o Optional[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}
