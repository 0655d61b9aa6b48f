package pointcloud

import (
	"github.com/golang/geo/r3"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/scalarcloud/scalarfield"
)

// CloudMatrixCol is the header of a CloudMatrix column.
type CloudMatrixCol string

const (
	// CloudMatrixColX is the x column in the cloud matrix.
	CloudMatrixColX CloudMatrixCol = "X"
	// CloudMatrixColY is the y column in the cloud matrix.
	CloudMatrixColY CloudMatrixCol = "Y"
	// CloudMatrixColZ is the z column in the cloud matrix.
	CloudMatrixColZ CloudMatrixCol = "Z"
)

// CloudCentroid returns the centroid of a pointcloud as a vector.
func CloudCentroid(pc *PointCloud) r3.Vector {
	if pc.Size() == 0 {
		// This is done to match the centroid implementation of an empty cloud elsewhere.
		return r3.Vector{}
	}
	var sum r3.Vector
	pc.Iterate(0, 0, func(_ int, p r3.Vector) bool {
		sum = sum.Add(p)
		return true
	})
	return sum.Mul(1 / float64(pc.Size()))
}

// CloudMatrix returns a Dense matrix with one row per point: X, Y, Z and then the value of
// every scalar field long enough to cover all points, in index order. The header names the
// columns. Both are nil for an empty cloud.
func CloudMatrix(pc *PointCloud) (*mat.Dense, []CloudMatrixCol) {
	n := pc.Size()
	if n == 0 {
		return nil, nil
	}

	fields := lo.Filter(pc.fields, func(sf *scalarfield.ScalarField, _ int) bool {
		return sf.Len() >= n
	})
	header := []CloudMatrixCol{CloudMatrixColX, CloudMatrixColY, CloudMatrixColZ}
	header = append(header, lo.Map(fields, func(sf *scalarfield.ScalarField, _ int) CloudMatrixCol {
		return CloudMatrixCol(sf.Name())
	})...)

	width := len(header)
	data := make([]float64, 0, n*width)
	pc.Iterate(0, 0, func(i int, p r3.Vector) bool {
		data = append(data, p.X, p.Y, p.Z)
		for _, sf := range fields {
			data = append(data, float64(sf.Value(i)))
		}
		return true
	})
	return mat.NewDense(n, width, data), header
}
