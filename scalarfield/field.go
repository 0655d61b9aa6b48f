// Package scalarfield implements a named, independently resizable column of scalar values.
package scalarfield

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"go.viam.com/scalarcloud/capacity"
)

// NaN returns the value used to mark a scalar as invalid.
func NaN() ScalarType {
	return ScalarType(math.NaN())
}

// IsValid returns whether v is a usable value, i.e. not NaN.
func IsValid(v ScalarType) bool {
	return v == v
}

// A ScalarField is a named column of scalar values, one per point of the cloud it belongs to.
// Its min and max are cached and only refreshed by ComputeMinAndMax.
type ScalarField struct {
	name   string
	values []ScalarType
	min    ScalarType
	max    ScalarType
	alloc  capacity.Allocator
}

// Option configures a ScalarField.
type Option func(*ScalarField)

// WithAllocator sets the allocator consulted whenever the field grows.
func WithAllocator(alloc capacity.Allocator) Option {
	return func(sf *ScalarField) {
		sf.alloc = alloc
	}
}

// New returns an empty scalar field with the given name.
func New(name string, opts ...Option) *ScalarField {
	sf := &ScalarField{name: name, alloc: capacity.Heap()}
	for _, opt := range opts {
		opt(sf)
	}
	return sf
}

// Name returns the name of the field.
func (sf *ScalarField) Name() string {
	return sf.name
}

// SetName renames the field. Uniqueness is the owner's concern.
func (sf *ScalarField) SetName(name string) {
	sf.name = name
}

// Len returns the number of values.
func (sf *ScalarField) Len() int {
	return len(sf.values)
}

// Cap returns the number of values the field can hold without growing.
func (sf *ScalarField) Cap() int {
	return cap(sf.values)
}

// Value returns the value at index i. It panics if i is out of range.
func (sf *ScalarField) Value(i int) ScalarType {
	return sf.values[i]
}

// SetValue sets the value at index i. It panics if i is out of range.
func (sf *ScalarField) SetValue(i int, v ScalarType) {
	sf.values[i] = v
}

// AddValue appends v.
func (sf *ScalarField) AddValue(v ScalarType) {
	sf.values = append(sf.values, v)
}

// Values returns the underlying values. The slice is shared with the field and is only
// valid until the next resize.
func (sf *ScalarField) Values() []ScalarType {
	return sf.values
}

// Fill sets every value to v.
func (sf *ScalarField) Fill(v ScalarType) {
	for i := range sf.values {
		sf.values[i] = v
	}
}

// Reserve makes room for at least n values without changing the length. On failure the
// field is unchanged.
func (sf *ScalarField) Reserve(n int) error {
	values, err := capacity.Reserve(sf.alloc, sf.values, n)
	if err != nil {
		return err
	}
	sf.values = values
	return nil
}

// Resize sets the number of values to n; new values are zero. On failure the field is
// unchanged.
func (sf *ScalarField) Resize(n int) error {
	values, err := capacity.Resize(sf.alloc, sf.values, n)
	if err != nil {
		return err
	}
	sf.values = values
	return nil
}

// Stage resizes like Resize and also returns a function that puts back the values held
// before, along with their capacity, and recomputes min and max. It makes the field a
// capacity.Participant.
func (sf *ScalarField) Stage(n int) (func(), error) {
	old := sf.values
	if err := sf.Resize(n); err != nil {
		return nil, err
	}
	return func() {
		sf.values = old
		sf.ComputeMinAndMax()
	}, nil
}

// Swap exchanges the values at i and j.
func (sf *ScalarField) Swap(i, j int) {
	sf.values[i], sf.values[j] = sf.values[j], sf.values[i]
}

// ComputeMinAndMax refreshes the cached bounds from the valid values. Both are zero if
// there is no valid value.
func (sf *ScalarField) ComputeMinAndMax() {
	first := true
	sf.min, sf.max = 0, 0
	for _, v := range sf.values {
		if !IsValid(v) {
			continue
		}
		if first {
			sf.min, sf.max = v, v
			first = false
			continue
		}
		if v < sf.min {
			sf.min = v
		} else if v > sf.max {
			sf.max = v
		}
	}
}

// Min returns the cached minimum.
func (sf *ScalarField) Min() ScalarType {
	return sf.min
}

// Max returns the cached maximum.
func (sf *ScalarField) Max() ScalarType {
	return sf.max
}

// ComputeMeanAndVariance returns the mean and population variance of the valid values.
// Both are zero if there is no valid value.
func (sf *ScalarField) ComputeMeanAndVariance() (float64, float64) {
	valid := make([]float64, 0, len(sf.values))
	for _, v := range sf.values {
		if IsValid(v) {
			valid = append(valid, float64(v))
		}
	}
	if len(valid) == 0 {
		return 0, 0
	}
	return stat.PopMeanVariance(valid, nil)
}

// Release drops the values and their storage.
func (sf *ScalarField) Release() {
	sf.values = nil
	sf.min, sf.max = 0, 0
}
