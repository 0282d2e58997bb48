package services

// Patch is one field of a partial update. An absent patch leaves the column
// alone; a present patch with a nil Value clears it.
type Patch[T any] struct {
	Present bool
	Value   *T
}

func SetTo[T any](value T) Patch[T] {
	return Patch[T]{Present: true, Value: &value}
}

func Cleared[T any]() Patch[T] {
	return Patch[T]{Present: true}
}

// PatchFrom turns an optional pointer into a present patch.
func PatchFrom[T any](value *T) Patch[T] {
	return Patch[T]{Present: true, Value: value}
}

func (patch Patch[T]) applyTo(updates map[string]any, column string) {
	if !patch.Present {
		return
	}
	if patch.Value == nil {
		updates[column] = nil
		return
	}
	updates[column] = *patch.Value
}

// resolve returns the value after the patch is applied to current.
func (patch Patch[T]) resolve(current *T) *T {
	if !patch.Present {
		return current
	}
	return patch.Value
}
