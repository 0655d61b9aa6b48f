package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// zeroTolerance is the double precision machine epsilon.
var zeroTolerance = math.Nextafter(1, 2) - 1

// Transformation is a uniform scale followed by a rotation and then a translation.
type Transformation struct {
	// Scale is the uniform scale factor. Start from NewTransformation for a scale of 1; a
	// scale of 0 collapses every point onto the origin.
	Scale float64
	// Rotation is a 3x3 rotation matrix. nil means no rotation.
	Rotation    *mat.Dense
	Translation r3.Vector
}

// NewTransformation returns the identity transformation.
func NewTransformation() Transformation {
	return Transformation{Scale: 1}
}

// RotationFromQuat returns the rotation matrix of q. q does not need to be normalized.
func RotationFromQuat(q quat.Number) (*mat.Dense, error) {
	norm := quat.Abs(q)
	if norm < zeroTolerance {
		return nil, errors.New("cannot build a rotation from a zero quaternion")
	}
	q = quat.Scale(1/norm, q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return mat.NewDense(3, 3, []float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	}), nil
}

func isIdentity(rotation *mat.Dense) bool {
	rows, cols := rotation.Dims()
	if rows != 3 || cols != 3 {
		return false
	}
	return mat.EqualApprox(rotation, mat.NewDiagDense(3, []float64{1, 1, 1}), zeroTolerance)
}

func rotate(rotation *mat.Dense, p r3.Vector) r3.Vector {
	return r3.Vector{
		X: rotation.At(0, 0)*p.X + rotation.At(0, 1)*p.Y + rotation.At(0, 2)*p.Z,
		Y: rotation.At(1, 0)*p.X + rotation.At(1, 1)*p.Y + rotation.At(1, 2)*p.Z,
		Z: rotation.At(2, 0)*p.X + rotation.At(2, 1)*p.Y + rotation.At(2, 2)*p.Z,
	}
}

// ApplyTransformation scales, rotates and then translates every point. Steps that would not
// move any point are skipped.
func (cloud *PointCloud) ApplyTransformation(trans Transformation) error {
	if trans.Rotation != nil {
		if rows, cols := trans.Rotation.Dims(); rows != 3 || cols != 3 {
			return errors.Errorf("rotation must be 3x3, got %dx%d", rows, cols)
		}
	}
	points := cloud.points.values

	// scaling commutes with the rotation but must happen before the translation
	if math.Abs(trans.Scale-1) > zeroTolerance {
		for i := range points {
			points[i] = points[i].Mul(trans.Scale)
		}
		cloud.bbox.SetValidity(false)
	}

	if trans.Rotation != nil && !isIdentity(trans.Rotation) {
		for i := range points {
			points[i] = rotate(trans.Rotation, points[i])
		}
		cloud.bbox.SetValidity(false)
	}

	if trans.Translation.Norm() > zeroTolerance {
		for i := range points {
			points[i] = points[i].Add(trans.Translation)
		}
		cloud.bbox.SetValidity(false)
	}
	return nil
}
