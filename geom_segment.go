package mesh2rn

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// LineIntersectionType selects which parametric ranges are accepted by lineIntersection
type LineIntersectionType uint16

const (
	// Both parameters must be in [0;1]
	INTERSECTION_SEGMENT_SEGMENT = LineIntersectionType(iota + 1)
	// First parameter must be >= 0 (ray), second one in [0;1]
	INTERSECTION_HALFLINE_SEGMENT
	// First line is infinite, second parameter in [0;1]
	INTERSECTION_LINE_SEGMENT
	// Both parameters must be >= 0 (two rays)
	INTERSECTION_HALFLINE_HALFLINE

	INTERSECTION_UNDEFINED = LineIntersectionType(0)
)

func (iotaIdx LineIntersectionType) String() string {
	return [...]string{"undefined", "segment_segment", "halfline_segment", "line_segment", "halfline_halfline"}[iotaIdx]
}

// lineIntersection intersects lines (a,b) and (c,d)
// Returns intersection point, parameter on (a,b), parameter on (c,d)
func lineIntersection(a, b, c, d r2.Point, kind LineIntersectionType) (r2.Point, float64, float64, bool) {
	ab := b.Sub(a)
	cd := d.Sub(c)
	deno := Cross2D(ab, cd)
	if math.Abs(deno) < Epsilon*Epsilon {
		return r2.Point{}, 0, 0, false
	}
	t1 := Cross2D(c.Sub(a), cd) / deno
	t2 := Cross2D(ab, a.Sub(c)) / deno
	const tol = 1e-9
	inUnit := func(t float64) bool {
		return t >= -tol && t <= 1+tol
	}
	switch kind {
	case INTERSECTION_SEGMENT_SEGMENT:
		if !inUnit(t1) || !inUnit(t2) {
			return r2.Point{}, 0, 0, false
		}
	case INTERSECTION_HALFLINE_SEGMENT:
		if t1 < -tol || !inUnit(t2) {
			return r2.Point{}, 0, 0, false
		}
	case INTERSECTION_LINE_SEGMENT:
		if !inUnit(t2) {
			return r2.Point{}, 0, 0, false
		}
	case INTERSECTION_HALFLINE_HALFLINE:
		if t1 < -tol || t2 < -tol {
			return r2.Point{}, 0, 0, false
		}
	}
	return Lerp2(a, b, t1), t1, t2, true
}

// Segment2D is planar line segment
type Segment2D struct {
	Start r2.Point
	End   r2.Point
}

func (seg Segment2D) Direction() r2.Point {
	return seg.End.Sub(seg.Start)
}

func (seg Segment2D) Length() float64 {
	return seg.Direction().Norm()
}

func (seg Segment2D) Lerp(t float64) r2.Point {
	return Lerp2(seg.Start, seg.End, t)
}

func (seg Segment2D) Reversed() Segment2D {
	return Segment2D{Start: seg.End, End: seg.Start}
}

// TrySegmentIntersection returns intersection point and parameters on both segments
func (seg Segment2D) TrySegmentIntersection(other Segment2D) (r2.Point, float64, float64, bool) {
	return lineIntersection(seg.Start, seg.End, other.Start, other.End, INTERSECTION_SEGMENT_SEGMENT)
}

// TryHalfLineIntersection treats seg as a ray starting at seg.Start
func (seg Segment2D) TryHalfLineIntersection(other Segment2D) (r2.Point, float64, float64, bool) {
	return lineIntersection(seg.Start, seg.End, other.Start, other.End, INTERSECTION_HALFLINE_SEGMENT)
}

// GetNearestPointParameter returns clamped parameter of the point on segment nearest to v
func (seg Segment2D) GetNearestPointParameter(v r2.Point) float64 {
	dir := seg.Direction()
	l2 := dir.Dot(dir)
	if l2 < Epsilon*Epsilon {
		return 0
	}
	return Clamp01(v.Sub(seg.Start).Dot(dir) / l2)
}

// GetNearestPoint returns point on segment nearest to v
func (seg Segment2D) GetNearestPoint(v r2.Point) r2.Point {
	return seg.Lerp(seg.GetNearestPointParameter(v))
}

// GetDistance returns distance from v to segment
func (seg Segment2D) GetDistance(v r2.Point) float64 {
	return seg.GetNearestPoint(v).Sub(v).Norm()
}

// GetSegmentDistance returns minimal distance between two segments (zero if they intersect)
func (seg Segment2D) GetSegmentDistance(other Segment2D) float64 {
	if _, _, _, ok := seg.TrySegmentIntersection(other); ok {
		return 0
	}
	return math.Min(
		math.Min(seg.GetDistance(other.Start), seg.GetDistance(other.End)),
		math.Min(other.GetDistance(seg.Start), other.GetDistance(seg.End)),
	)
}

// Segment3D is spatial line segment
type Segment3D struct {
	Start r3.Vector
	End   r3.Vector
}

func (seg Segment3D) Direction() r3.Vector {
	return seg.End.Sub(seg.Start)
}

func (seg Segment3D) Length() float64 {
	return seg.Direction().Norm()
}

func (seg Segment3D) Lerp(t float64) r3.Vector {
	return Lerp3(seg.Start, seg.End, t)
}

func (seg Segment3D) Reversed() Segment3D {
	return Segment3D{Start: seg.End, End: seg.Start}
}

// To2D projects segment onto plane
func (seg Segment3D) To2D(plane AxisPlane) Segment2D {
	return Segment2D{Start: ToVector2D(seg.Start, plane), End: ToVector2D(seg.End, plane)}
}

// GetNearestPointParameter returns clamped parameter of the point on segment nearest to v
func (seg Segment3D) GetNearestPointParameter(v r3.Vector) float64 {
	dir := seg.Direction()
	l2 := dir.Norm2()
	if l2 < Epsilon*Epsilon {
		return 0
	}
	return Clamp01(v.Sub(seg.Start).Dot(dir) / l2)
}

// GetNearestPoint returns point on segment nearest to v
func (seg Segment3D) GetNearestPoint(v r3.Vector) r3.Vector {
	return seg.Lerp(seg.GetNearestPointParameter(v))
}

// GetDistance returns distance from v to segment
func (seg Segment3D) GetDistance(v r3.Vector) float64 {
	return seg.GetNearestPoint(v).Distance(v)
}

// GetDistanceBy2D returns distance from v to segment projected on plane
func (seg Segment3D) GetDistanceBy2D(v r3.Vector, plane AxisPlane) float64 {
	return seg.To2D(plane).GetDistance(ToVector2D(v, plane))
}

// TrySegmentIntersectionBy2D intersects segments projected on plane.
// Out-of-plane coordinate is interpolated on both segments; if normalTolerance >= 0 and the gap
// between them exceeds it, segments are considered as non-intersecting.
// Returns 3D point (with averaged out-of-plane coordinate) and parameters on both segments
func (seg Segment3D) TrySegmentIntersectionBy2D(other Segment3D, plane AxisPlane, normalTolerance float64) (r3.Vector, float64, float64, bool) {
	return seg.intersectionBy2D(other, plane, normalTolerance, INTERSECTION_SEGMENT_SEGMENT)
}

// TryHalfLineIntersectionBy2D same as TrySegmentIntersectionBy2D, but treats seg as a ray
func (seg Segment3D) TryHalfLineIntersectionBy2D(other Segment3D, plane AxisPlane, normalTolerance float64) (r3.Vector, float64, float64, bool) {
	return seg.intersectionBy2D(other, plane, normalTolerance, INTERSECTION_HALFLINE_SEGMENT)
}

// TryLineIntersectionBy2D same as TrySegmentIntersectionBy2D, but treats seg as infinite line
func (seg Segment3D) TryLineIntersectionBy2D(other Segment3D, plane AxisPlane, normalTolerance float64) (r3.Vector, float64, float64, bool) {
	return seg.intersectionBy2D(other, plane, normalTolerance, INTERSECTION_LINE_SEGMENT)
}

// TryHalfLinesIntersectionBy2D treats both segments as rays starting at their Start points
func (seg Segment3D) TryHalfLinesIntersectionBy2D(other Segment3D, plane AxisPlane, normalTolerance float64) (r3.Vector, float64, float64, bool) {
	return seg.intersectionBy2D(other, plane, normalTolerance, INTERSECTION_HALFLINE_HALFLINE)
}

func (seg Segment3D) intersectionBy2D(other Segment3D, plane AxisPlane, normalTolerance float64, kind LineIntersectionType) (r3.Vector, float64, float64, bool) {
	a := seg.To2D(plane)
	b := other.To2D(plane)
	p, t1, t2, ok := lineIntersection(a.Start, a.End, b.Start, b.End, kind)
	if !ok {
		return r3.Vector{}, 0, 0, false
	}
	y1 := GetNormal(seg.Lerp(t1), plane)
	y2 := GetNormal(other.Lerp(t2), plane)
	if normalTolerance >= 0 && math.Abs(y2-y1) > normalTolerance {
		return r3.Vector{}, 0, 0, false
	}
	return ToVector3D(p, plane, (y1+y2)/2), t1, t2, true
}
