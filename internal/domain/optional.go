package domain

// Optional is one field of a partial update. Set is false when the caller
// omitted the field, so the stored value must be kept.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a supplied field.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Or returns the supplied value, or fallback when the field was omitted.
func (o Optional[T]) Or(fallback T) T {
	if o.Set {
		return o.Value
	}
	return fallback
}
