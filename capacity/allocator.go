// Package capacity contains allocators that are allowed to fail softly, slice growth helpers
// built on them, and the grow-with-rollback transaction used to resize several columns as a
// single unit.
package capacity

import (
	"math"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
)

// ErrOutOfMemory is returned (wrapped) whenever an allocation is refused.
var ErrOutOfMemory = errors.New("out of memory")

// An Allocator decides whether a slice of elems elements, each elemSize bytes, may be
// allocated. It is consulted before every growth; a non-nil error aborts the growth and
// leaves the caller's slice untouched.
type Allocator interface {
	Allocate(elems int, elemSize uintptr) error
}

// AllocatorFunc adapts a plain function to the Allocator interface.
type AllocatorFunc func(elems int, elemSize uintptr) error

// Allocate calls f.
func (f AllocatorFunc) Allocate(elems int, elemSize uintptr) error {
	return f(elems, elemSize)
}

type heapAllocator struct{}

// Heap returns the default allocator. It admits any request whose byte size is
// representable and lets the runtime do the rest.
func Heap() Allocator {
	return heapAllocator{}
}

func (heapAllocator) Allocate(elems int, elemSize uintptr) error {
	if _, ok := byteSize(elems, elemSize); !ok {
		return newOutOfMemoryError(elems, elemSize)
	}
	return nil
}

type limitAllocator struct {
	maxBytes int64
}

// Limit returns an allocator refusing any single allocation larger than maxBytes.
func Limit(maxBytes int64) Allocator {
	return &limitAllocator{maxBytes: maxBytes}
}

func (la *limitAllocator) Allocate(elems int, elemSize uintptr) error {
	size, ok := byteSize(elems, elemSize)
	if !ok || size > la.maxBytes {
		return errors.Wrapf(newOutOfMemoryError(elems, elemSize), "limit is %s", units.BytesSize(float64(la.maxBytes)))
	}
	return nil
}

func byteSize(elems int, elemSize uintptr) (int64, bool) {
	if elems < 0 {
		return 0, false
	}
	if elemSize == 0 || elems == 0 {
		return 0, true
	}
	if uint64(elems) > math.MaxInt64/uint64(elemSize) {
		return 0, false
	}
	return int64(elems) * int64(elemSize), true
}

func newOutOfMemoryError(elems int, elemSize uintptr) error {
	size, ok := byteSize(elems, elemSize)
	if !ok {
		return errors.Wrapf(ErrOutOfMemory, "cannot allocate %d elements of %d bytes", elems, elemSize)
	}
	return errors.Wrapf(ErrOutOfMemory, "cannot allocate %s for %d elements", units.BytesSize(float64(size)), elems)
}
