package mesh2rn

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// RnPlane is plane used by road network model for normals, sides and turn angles
const RnPlane = AXIS_PLANE_XY

// Point is position referenced by line strings. Points may be shared between line strings,
// so code which needs to move a point of a single line string clones it first
type Point struct {
	Vector r3.Vector
}

// NewPoint returns new point at v
func NewPoint(v r3.Vector) *Point {
	return &Point{Vector: v}
}

func (point *Point) String() string {
	return fmt.Sprintf("(%f, %f, %f)", point.Vector.X, point.Vector.Y, point.Vector.Z)
}

// Clone returns new point at the same position
func (point *Point) Clone() *Point {
	return &Point{Vector: point.Vector}
}

// IsSamePoint reports whether points are the same object or lie closer than eps
func (point *Point) IsSamePoint(other *Point, eps float64) bool {
	if point == other {
		return true
	}
	if point == nil || other == nil {
		return false
	}
	return point.Vector.Distance(other.Vector) <= eps
}

// Vector2D returns projection of point on RnPlane
func (point *Point) Vector2D() r3.Vector {
	return PutNormal(point.Vector, RnPlane, 0)
}
