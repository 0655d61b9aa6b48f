// Package pointcloud defines a columnar point cloud: an ordered sequence of 3D points plus any
// number of named scalar fields holding one value per point.
//
// Two scalar fields play a role at any time. The current input field receives per point
// writes (SetPointScalarValue) and the current output field serves per point reads
// (PointScalarValue, ForEach). They may be the same field.
//
// A PointCloud is not safe for concurrent use. Read only methods may be called concurrently
// with each other but never alongside a mutation.
package pointcloud

import (
	"github.com/golang/geo/r3"

	"go.viam.com/scalarcloud/capacity"
	"go.viam.com/scalarcloud/logging"
	"go.viam.com/scalarcloud/scalarfield"
)

// NoField is the index of an unset scalar field role.
const NoField = -1

// DefaultScalarFieldName is the name of the field EnableScalarField falls back to.
const DefaultScalarFieldName = "Default"

// PointCloud is an ordered set of points and the scalar fields attached to them.
type PointCloud struct {
	points pointSequence
	bbox   BoundingBox
	cursor int

	fields   []*scalarfield.ScalarField
	inIndex  int
	outIndex int

	alloc  capacity.Allocator
	logger logging.Logger
}

// New returns an empty point cloud.
func New(opts ...Option) *PointCloud {
	return NewWithPrealloc(0, opts...)
}

// NewWithPrealloc returns an empty point cloud with room for size points. The preallocation
// is best effort.
func NewWithPrealloc(size int, opts ...Option) *PointCloud {
	o := defaultCloudOpts()
	o.prealloc = size
	for _, opt := range opts {
		opt.apply(&o)
	}

	cloud := &PointCloud{
		points:   pointSequence{alloc: o.alloc},
		inIndex:  NoField,
		outIndex: NoField,
		alloc:    o.alloc,
		logger:   o.logger,
	}
	if o.prealloc > 0 {
		if err := cloud.points.reserve(o.prealloc); err != nil {
			cloud.logger.Debugw("could not preallocate points", "size", o.prealloc, "error", err)
		}
	}
	return cloud
}

// pointSequence is the point storage. It takes part in resize transactions next to the
// scalar fields.
type pointSequence struct {
	values []r3.Vector
	alloc  capacity.Allocator
}

func (ps *pointSequence) Len() int {
	return len(ps.values)
}

func (ps *pointSequence) Stage(n int) (func(), error) {
	values, err := capacity.Resize(ps.alloc, ps.values, n)
	if err != nil {
		return nil, err
	}
	old := ps.values
	ps.values = values
	return func() { ps.values = old }, nil
}

func (ps *pointSequence) reserve(n int) error {
	values, err := capacity.Reserve(ps.alloc, ps.values, n)
	if err != nil {
		return err
	}
	ps.values = values
	return nil
}
