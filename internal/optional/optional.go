package optional

// Optional holds a value that may be absent. Iterators use it to signal the
// end of a stream without a sentinel value.
type Optional[T any] struct {
	present bool
	value   T
}

func (self Optional[T]) IsPresent() bool {
	return self.present
}

func (self Optional[T]) Value() T {
	return self.value
}

// ValueOr returns the held value or v when nothing is present.
func (self Optional[T]) ValueOr(v T) T {
	if !self.present {
		return v
	}
	return self.value
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{
		present: true,
		value:   v,
	}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}
