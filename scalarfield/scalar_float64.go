//go:build scalar_double

package scalarfield

// ScalarType is the numeric type of every scalar value.
type ScalarType = float64
