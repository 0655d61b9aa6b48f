package capacity

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
)

// Resize returns s with exactly n elements. Elements past the old length are zeroed.
// Shrinking never allocates and never fails. Growing beyond cap(s) asks a first and
// returns the original slice alongside an error wrapping ErrOutOfMemory if refused.
func Resize[T any](a Allocator, s []T, n int) ([]T, error) {
	if n < 0 {
		return s, errors.Errorf("cannot resize to negative length %d", n)
	}
	if n <= len(s) {
		return s[:n], nil
	}
	if n <= cap(s) {
		old := len(s)
		s = s[:n]
		clear(s[old:])
		return s, nil
	}
	grown, err := allocate(a, s, n, n)
	if err != nil {
		return s, err
	}
	return grown, nil
}

// Reserve returns s with a capacity of at least n and an unchanged length.
func Reserve[T any](a Allocator, s []T, n int) ([]T, error) {
	if n <= cap(s) {
		return s, nil
	}
	return allocate(a, s, len(s), n)
}

// allocate copies s into a fresh backing array of the given length and capacity. The
// allocator is asked for the exact capacity so that columns never grow by doubling.
func allocate[T any](a Allocator, s []T, length, capacity int) (grown []T, err error) {
	var zero T
	if err := a.Allocate(capacity, unsafe.Sizeof(zero)); err != nil {
		return s, err
	}
	defer func() {
		if thePanic := recover(); thePanic != nil {
			grown = s
			err = errors.Wrap(newOutOfMemoryError(capacity, unsafe.Sizeof(zero)), fmt.Sprint(thePanic))
		}
	}()
	grown = make([]T, length, capacity)
	copy(grown, s)
	return grown, nil
}
