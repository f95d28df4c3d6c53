package mesh2rn

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// AxisPlane is the plane used for 2D projections of 3D positions
type AxisPlane uint16

const (
	AXIS_PLANE_XY = AxisPlane(iota + 1)
	AXIS_PLANE_XZ
	AXIS_PLANE_YZ

	AXIS_PLANE_UNDEFINED = AxisPlane(0)
)

func (iotaIdx AxisPlane) String() string {
	return [...]string{"undefined", "xy", "xz", "yz"}[iotaIdx]
}

// ParseAxisPlane returns plane for given name. Defaults to XY
func ParseAxisPlane(s string) AxisPlane {
	switch s {
	case "xz", "XZ":
		return AXIS_PLANE_XZ
	case "yz", "YZ":
		return AXIS_PLANE_YZ
	default:
		return AXIS_PLANE_XY
	}
}

// ToVector2D projects v onto plane
func ToVector2D(v r3.Vector, plane AxisPlane) r2.Point {
	switch plane {
	case AXIS_PLANE_XZ:
		return r2.Point{X: v.X, Y: v.Z}
	case AXIS_PLANE_YZ:
		return r2.Point{X: v.Y, Y: v.Z}
	default:
		return r2.Point{X: v.X, Y: v.Y}
	}
}

// ToVector3D lifts planar point back to 3D using normalValue as the out-of-plane coordinate
func ToVector3D(v r2.Point, plane AxisPlane, normalValue float64) r3.Vector {
	switch plane {
	case AXIS_PLANE_XZ:
		return r3.Vector{X: v.X, Y: normalValue, Z: v.Y}
	case AXIS_PLANE_YZ:
		return r3.Vector{X: normalValue, Y: v.X, Z: v.Y}
	default:
		return r3.Vector{X: v.X, Y: v.Y, Z: normalValue}
	}
}

// GetNormal returns out-of-plane coordinate of v
func GetNormal(v r3.Vector, plane AxisPlane) float64 {
	switch plane {
	case AXIS_PLANE_XZ:
		return v.Y
	case AXIS_PLANE_YZ:
		return v.X
	default:
		return v.Z
	}
}

// PutNormal returns copy of v with out-of-plane coordinate replaced
func PutNormal(v r3.Vector, plane AxisPlane, value float64) r3.Vector {
	switch plane {
	case AXIS_PLANE_XZ:
		v.Y = value
	case AXIS_PLANE_YZ:
		v.X = value
	default:
		v.Z = value
	}
	return v
}

// PutPlane returns copy of v with in-plane coordinates replaced by p
func PutPlane(v r3.Vector, plane AxisPlane, p r2.Point) r3.Vector {
	return ToVector3D(p, plane, GetNormal(v, plane))
}

// NormalVector returns unit vector orthogonal to plane
func NormalVector(plane AxisPlane) r3.Vector {
	switch plane {
	case AXIS_PLANE_XZ:
		return r3.Vector{Y: 1}
	case AXIS_PLANE_YZ:
		return r3.Vector{X: 1}
	default:
		return r3.Vector{Z: 1}
	}
}

// ToVectors2D projects slice of positions
func ToVectors2D(vs []r3.Vector, plane AxisPlane) []r2.Point {
	ans := make([]r2.Point, len(vs))
	for i := range vs {
		ans[i] = ToVector2D(vs[i], plane)
	}
	return ans
}
