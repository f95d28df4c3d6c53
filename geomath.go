package mesh2rn

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

const (
	// Epsilon is generic tolerance for planar computations
	Epsilon = 1e-5
	// PointEpsilon is minimal distance between two consecutive points of LineString (meters)
	PointEpsilon = 1e-3
)

// Cross2D returns z-component of cross product a x b
func Cross2D(a, b r2.Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// SignedAngle2D returns signed angle from a to b (degrees). Positive means counter-clockwise rotation
func SignedAngle2D(a, b r2.Point) float64 {
	if a.Norm() < Epsilon || b.Norm() < Epsilon {
		return 0
	}
	rad := math.Atan2(Cross2D(a, b), a.Dot(b))
	return (s1.Angle(rad) * s1.Radian).Degrees()
}

// Angle2D returns unsigned angle between a and b (degrees)
func Angle2D(a, b r2.Point) float64 {
	return math.Abs(SignedAngle2D(a, b))
}

// Angle3D returns unsigned angle between a and b (degrees)
func Angle3D(a, b r3.Vector) float64 {
	if a.Norm() < Epsilon || b.Norm() < Epsilon {
		return 0
	}
	return a.Angle(b).Degrees()
}

// Lerp3 returns a + (b - a) * t
func Lerp3(a, b r3.Vector, t float64) r3.Vector {
	return a.Add(b.Sub(a).Mul(t))
}

// Lerp2 returns a + (b - a) * t
func Lerp2(a, b r2.Point, t float64) r2.Point {
	return a.Add(b.Sub(a).Mul(t))
}

// InverseLerp returns t such as lerp(a, b, t) == v
func InverseLerp(a, b, v float64) float64 {
	if math.Abs(b-a) < Epsilon {
		return 0
	}
	return (v - a) / (b - a)
}

// Clamp01 clamps v into [0;1]
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Rotate2D rotates vector counter-clockwise by given angle (degrees)
func Rotate2D(vec r2.Point, deg float64) r2.Point {
	rad := (s1.Angle(deg) * s1.Degree).Radians()
	return r2.Point{
		X: vec.X*math.Cos(rad) - vec.Y*math.Sin(rad),
		Y: vec.X*math.Sin(rad) + vec.Y*math.Cos(rad),
	}
}

// LeftNormal2D returns unit vector pointing to the left of dir
func LeftNormal2D(dir r2.Point) r2.Point {
	if dir.Norm() < Epsilon {
		return r2.Point{}
	}
	return dir.Ortho().Normalize()
}

// Centroid3 returns average position of given points
func Centroid3(pts []r3.Vector) r3.Vector {
	if len(pts) == 0 {
		return r3.Vector{}
	}
	sum := r3.Vector{}
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(pts)))
}

// intersect checks if two lines (p1,p2) and (p3,p4) intersect and returns intersection point
func intersect(p1, p2, p3, p4 r2.Point) (r2.Point, bool) {
	a1 := p2.Y - p1.Y
	b1 := p1.X - p2.X
	c1 := a1*p1.X + b1*p1.Y
	a2 := p4.Y - p3.Y
	b2 := p3.X - p4.X
	c2 := a2*p3.X + b2*p3.Y

	det := a1*b2 - a2*b1
	if math.Abs(det) < Epsilon*Epsilon {
		return r2.Point{}, false
	}
	x := (b2*c1 - b1*c2) / det
	y := (a1*c2 - a2*c1) / det
	return r2.Point{X: x, Y: y}, true
}

// offsetCurve shifts line by distance to the left (negative distance means right side). Joints are mitered
func offsetCurve(line []r2.Point, distance float64) []r2.Point {
	if len(line) < 2 {
		return nil
	}
	segments := make([][2]r2.Point, 0, len(line)-1)
	for i := 1; i < len(line); i++ {
		p1 := line[i-1]
		p2 := line[i]
		n := LeftNormal2D(p2.Sub(p1))
		if n.Norm() < Epsilon {
			continue
		}
		offset := n.Mul(distance)
		segments = append(segments, [2]r2.Point{p1.Add(offset), p2.Add(offset)})
	}
	if len(segments) == 0 {
		return nil
	}
	result := make([]r2.Point, 0, len(segments)+1)
	result = append(result, segments[0][0])
	for i := 1; i < len(segments); i++ {
		seg1 := segments[i-1]
		seg2 := segments[i]
		intersection, ok := intersect(seg1[0], seg1[1], seg2[0], seg2[1])
		if !ok {
			result = append(result, seg1[1])
			continue
		}
		result = append(result, intersection)
	}
	result = append(result, segments[len(segments)-1][1])
	return result
}
