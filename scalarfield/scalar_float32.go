//go:build !scalar_double

package scalarfield

// ScalarType is the numeric type of every scalar value. Build with the scalar_double tag for
// double precision.
type ScalarType = float32
