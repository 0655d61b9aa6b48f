package pointcloud

import (
	"github.com/golang/geo/r3"
)

// BoundingBox is an axis aligned box with a validity flag. An invalid box must be recomputed
// before its corners mean anything.
type BoundingBox struct {
	min, max r3.Vector
	valid    bool
}

// NewBoundingBox returns the valid box spanning the given corners.
func NewBoundingBox(minCorner, maxCorner r3.Vector) BoundingBox {
	return BoundingBox{min: minCorner, max: maxCorner, valid: true}
}

// Clear resets the box to an invalid, empty state.
func (bb *BoundingBox) Clear() {
	*bb = BoundingBox{}
}

// Add extends the box to contain p. Adding to an invalid box starts over from p.
func (bb *BoundingBox) Add(p r3.Vector) {
	if !bb.valid {
		bb.min, bb.max, bb.valid = p, p, true
		return
	}
	bb.min = r3.Vector{X: min(bb.min.X, p.X), Y: min(bb.min.Y, p.Y), Z: min(bb.min.Z, p.Z)}
	bb.max = r3.Vector{X: max(bb.max.X, p.X), Y: max(bb.max.Y, p.Y), Z: max(bb.max.Z, p.Z)}
}

// IsValid returns whether the corners are up to date.
func (bb *BoundingBox) IsValid() bool {
	return bb.valid
}

// SetValidity marks the box as up to date or stale.
func (bb *BoundingBox) SetValidity(valid bool) {
	bb.valid = valid
}

// MinCorner returns the minimum corner.
func (bb *BoundingBox) MinCorner() r3.Vector {
	return bb.min
}

// MaxCorner returns the maximum corner.
func (bb *BoundingBox) MaxCorner() r3.Vector {
	return bb.max
}

// Center returns the middle of the box.
func (bb *BoundingBox) Center() r3.Vector {
	return bb.min.Add(bb.max).Mul(0.5)
}

// Diagonal returns the vector from the minimum to the maximum corner.
func (bb *BoundingBox) Diagonal() r3.Vector {
	return bb.max.Sub(bb.min)
}

// BoundingBox returns the minimum and maximum corners of the cloud, recomputing them if any
// point moved since the last call. Both are the origin for an empty cloud.
func (cloud *PointCloud) BoundingBox() (r3.Vector, r3.Vector) {
	if !cloud.bbox.IsValid() {
		cloud.bbox.Clear()
		for _, p := range cloud.points.values {
			cloud.bbox.Add(p)
		}
	}
	return cloud.bbox.MinCorner(), cloud.bbox.MaxCorner()
}

// InvalidateBoundingBox forces the next BoundingBox call to recompute the corners.
func (cloud *PointCloud) InvalidateBoundingBox() {
	cloud.bbox.SetValidity(false)
}
