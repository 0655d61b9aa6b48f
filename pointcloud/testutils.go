package pointcloud

import (
	"github.com/golang/geo/r3"

	"go.viam.com/scalarcloud/scalarfield"
)

// MakeTestPointCloud creates a test point cloud with 3 points and an enabled scalar field
// with the given name holding 0, 1 and 2.
func MakeTestPointCloud(fieldName string) *PointCloud {
	pc := NewWithPrealloc(3)
	pc.AddPoint(r3.Vector{X: 0, Y: 0, Z: 0})
	pc.AddPoint(r3.Vector{X: 1, Y: 0, Z: 0})
	pc.AddPoint(r3.Vector{X: 0, Y: 1, Z: 0})

	index, err := pc.AddScalarField(fieldName)
	if err != nil {
		return nil
	}
	if err := pc.SetCurrentInScalarField(index); err != nil {
		return nil
	}
	if err := pc.EnableScalarField(); err != nil {
		return nil
	}
	for i := 0; i < pc.Size(); i++ {
		pc.SetPointScalarValue(i, scalarfield.ScalarType(i))
	}
	return pc
}
