package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/scalarcloud/capacity"
	"go.viam.com/scalarcloud/scalarfield"
)

// Size returns the number of points in the cloud.
func (cloud *PointCloud) Size() int {
	return cloud.points.Len()
}

// Capacity returns the number of points the cloud can hold without growing.
func (cloud *PointCloud) Capacity() int {
	return cap(cloud.points.values)
}

// Point returns the point at index i. The second return is false if i is out of range.
func (cloud *PointCloud) Point(i int) (r3.Vector, bool) {
	if i < 0 || i >= cloud.Size() {
		return r3.Vector{}, false
	}
	return cloud.points.values[i], true
}

// AddPoint appends p to the cloud. A point with any NaN coordinate is stored as the origin
// instead. Scalar fields are left alone; use Resize or EnableScalarField to keep them in step.
func (cloud *PointCloud) AddPoint(p r3.Vector) {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
		cloud.logger.Debugw("replacing NaN point with origin", "index", cloud.Size(), "point", p.String())
		p = r3.Vector{}
	}
	cloud.points.values = append(cloud.points.values, p)
	cloud.bbox.SetValidity(false)
}

// Reserve makes room for at least n points, then in every scalar field. It is advisory: a
// failure may leave some of the structures with a larger capacity than before.
func (cloud *PointCloud) Reserve(n int) error {
	if err := cloud.points.reserve(n); err != nil {
		return errors.Wrapf(err, "reserving %d points", n)
	}
	for _, sf := range cloud.fields {
		if err := sf.Reserve(n); err != nil {
			return errors.Wrapf(err, "reserving %d values of scalar field %q", n, sf.Name())
		}
	}
	if cloud.Capacity() < n {
		return errors.Wrapf(capacity.ErrOutOfMemory, "reserved %d of %d points", cloud.Capacity(), n)
	}
	return nil
}

// Resize sets the number of points, and the length of every scalar field, to n. New points are
// at the origin and new scalar values are zero. Either everything is resized or, on error,
// nothing has changed.
func (cloud *PointCloud) Resize(n int) error {
	oldCount := cloud.Size()

	participants := make([]capacity.Participant, 0, len(cloud.fields)+1)
	participants = append(participants, &cloud.points)
	for _, sf := range cloud.fields {
		participants = append(participants, sf)
	}
	if err := capacity.ResizeAll(n, participants...); err != nil {
		cloud.logger.With("from", oldCount, "to", n).Debugw("resize rolled back", "error", err)
		return errors.Wrapf(err, "resizing cloud from %d to %d points", oldCount, n)
	}

	for _, sf := range cloud.fields {
		sf.ComputeMinAndMax()
	}
	if n != oldCount {
		cloud.bbox.SetValidity(false)
	}
	return nil
}

// SwapPoints exchanges the points at i and j along with their values in every scalar field.
// It does nothing if i equals j or either index is out of range.
func (cloud *PointCloud) SwapPoints(i, j int) {
	n := cloud.Size()
	if i == j || i < 0 || j < 0 || i >= n || j >= n {
		return
	}

	points := cloud.points.values
	points[i], points[j] = points[j], points[i]

	for _, sf := range cloud.fields {
		if i < sf.Len() && j < sf.Len() {
			sf.Swap(i, j)
		}
	}
}

// PlaceIteratorAtBeginning rewinds the cursor used by NextPoint.
func (cloud *PointCloud) PlaceIteratorAtBeginning() {
	cloud.cursor = 0
}

// NextPoint returns the point under the cursor and advances it. The second return is false
// once every point has been visited.
func (cloud *PointCloud) NextPoint() (r3.Vector, bool) {
	if cloud.cursor >= cloud.Size() {
		return r3.Vector{}, false
	}
	p := cloud.points.values[cloud.cursor]
	cloud.cursor++
	return p, true
}

// ForEach calls fn with every point and its value in the current output scalar field. Both
// may be modified in place.
func (cloud *PointCloud) ForEach(fn func(p *r3.Vector, v *scalarfield.ScalarType)) error {
	sf, ok := cloud.CurrentOutScalarField()
	if !ok {
		return errors.Wrap(ErrRoleUnset, "no output scalar field to iterate with")
	}
	n := cloud.Size()
	if sf.Len() < n {
		return errors.Errorf("output scalar field %q has %d values for %d points", sf.Name(), sf.Len(), n)
	}

	points := cloud.points.values
	values := sf.Values()
	for i := 0; i < n; i++ {
		fn(&points[i], &values[i])
	}
	cloud.bbox.SetValidity(false)
	return nil
}

// Iterate calls fn with every point and its index until fn returns false.
// numBatches lets you divide up the work. 0 means don't divide.
// myBatch is used iff numBatches > 0 and is which contiguous batch you want. A batch past the
// end, or a negative one, visits nothing.
func (cloud *PointCloud) Iterate(numBatches, myBatch int, fn func(i int, p r3.Vector) bool) {
	start, end := 0, cloud.Size()
	if numBatches > 0 {
		batchSize := (end + numBatches - 1) / numBatches
		if myBatch < 0 {
			return
		}
		start = min(myBatch*batchSize, end)
		end = min(start+batchSize, end)
	}
	for i := start; i < end; i++ {
		if !fn(i, cloud.points.values[i]) {
			return
		}
	}
}

// Clear removes every point and every scalar field. The point capacity is kept.
func (cloud *PointCloud) Clear() {
	cloud.points.values = cloud.points.values[:0]
	cloud.DeleteAllScalarFields()
	cloud.PlaceIteratorAtBeginning()
	cloud.InvalidateBoundingBox()
}
