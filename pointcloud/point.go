package pointcloud

import (
	"github.com/golang/geo/r3"
)

// NewVector convenience method for creating a vector.
func NewVector(x, y, z float64) r3.Vector {
	return r3.Vector{X: x, Y: y, Z: z}
}

// Vectors is a series of three-dimensional vectors.
type Vectors []r3.Vector

// Len returns the number of vectors.
func (vs Vectors) Len() int {
	return len(vs)
}

// Swap swaps two vectors positionally.
func (vs Vectors) Swap(i, j int) {
	vs[i], vs[j] = vs[j], vs[i]
}

// Less returns which vector is less than the other based on
// r3.Vector.Cmp.
func (vs Vectors) Less(i, j int) bool {
	return vs[i].Cmp(vs[j]) < 0
}

// AddPoints appends every vector to the cloud, with the same NaN handling as AddPoint.
func (cloud *PointCloud) AddPoints(vs Vectors) {
	for _, v := range vs {
		cloud.AddPoint(v)
	}
}
