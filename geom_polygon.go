package mesh2rn

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// ComputeConvexHull returns convex hull of given points projected on plane.
// Points closer than epsilon (in plane) are treated as duplicates.
// Result is counter-clockwise loop (first point is not repeated). Returns empty slice for degenerate input
func ComputeConvexHull(points []r3.Vector, plane AxisPlane, epsilon float64) []r3.Vector {
	if len(points) <= 2 {
		return []r3.Vector{}
	}
	sorted := make([]r3.Vector, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		a := ToVector2D(sorted[i], plane)
		b := ToVector2D(sorted[j], plane)
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	unique := make([]r3.Vector, 0, len(sorted))
	for _, p := range sorted {
		if len(unique) > 0 && ToVector2D(unique[len(unique)-1], plane).Sub(ToVector2D(p, plane)).Norm() <= epsilon {
			continue
		}
		unique = append(unique, p)
	}
	if len(unique) <= 2 {
		return []r3.Vector{}
	}
	turn := func(o, a, b r3.Vector) float64 {
		o2 := ToVector2D(o, plane)
		return Cross2D(ToVector2D(a, plane).Sub(o2), ToVector2D(b, plane).Sub(o2))
	}
	lower := make([]r3.Vector, 0, len(unique))
	for _, p := range unique {
		for len(lower) >= 2 && turn(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	upper := make([]r3.Vector, 0, len(unique))
	for i := len(unique) - 1; i >= 0; i-- {
		p := unique[i]
		for len(upper) >= 2 && turn(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		// All points are collinear
		return []r3.Vector{}
	}
	return hull
}

// DetectAndRemoveSelfCrossing removes self crossings of polyline.
// Whenever segments (i,i+1) and (j,j+1) cross, points i+1..j are replaced with single point produced by makeIntersectionPoint
// and scan restarts. Input with less than 4 points is returned as is
func DetectAndRemoveSelfCrossing[T any](points []T, getTangent func(T) r2.Point, makeIntersectionPoint func(p1, p2, p3, p4 T, inter r2.Point, t1, t2 float64) T) []T {
	if len(points) < 4 {
		return points
	}
	ans := make([]T, len(points))
	copy(ans, points)
	for {
		i, j, inter, t1, t2, found := findFirstSelfCrossing(ans, getTangent)
		if !found {
			return ans
		}
		p := makeIntersectionPoint(ans[i], ans[i+1], ans[j], ans[j+1], inter, t1, t2)
		next := make([]T, 0, len(ans)-(j-i)+1)
		next = append(next, ans[:i+1]...)
		next = append(next, p)
		next = append(next, ans[j+1:]...)
		ans = next
		if len(ans) < 4 {
			return ans
		}
	}
}

func findFirstSelfCrossing[T any](points []T, getTangent func(T) r2.Point) (int, int, r2.Point, float64, float64, bool) {
	for i := 0; i < len(points)-1; i++ {
		a := getTangent(points[i])
		b := getTangent(points[i+1])
		for j := i + 2; j < len(points)-1; j++ {
			c := getTangent(points[j])
			d := getTangent(points[j+1])
			inter, t1, t2, ok := lineIntersection(a, b, c, d, INTERSECTION_SEGMENT_SEGMENT)
			if ok {
				return i, j, inter, t1, t2, true
			}
		}
	}
	return 0, 0, r2.Point{}, 0, 0, false
}

// RemoveSelfCrossingVectors is DetectAndRemoveSelfCrossing for plain positions: crossing point gets interpolated out-of-plane coordinate
func RemoveSelfCrossingVectors(points []r3.Vector, plane AxisPlane) []r3.Vector {
	return DetectAndRemoveSelfCrossing(points,
		func(v r3.Vector) r2.Point { return ToVector2D(v, plane) },
		func(p1, p2, p3, p4 r3.Vector, inter r2.Point, t1, t2 float64) r3.Vector {
			y1 := GetNormal(Lerp3(p1, p2, t1), plane)
			y2 := GetNormal(Lerp3(p3, p4, t2), plane)
			return ToVector3D(inter, plane, (y1+y2)/2)
		},
	)
}

// HasSelfCrossing reports whether any two non-adjacent segments of polyline intersect
func HasSelfCrossing(points []r3.Vector, plane AxisPlane) bool {
	_, _, _, _, _, found := findFirstSelfCrossing(points, func(v r3.Vector) r2.Point { return ToVector2D(v, plane) })
	return found
}

// HasLoopSelfCrossing reports whether any two non-adjacent edges of closed loop intersect
func HasLoopSelfCrossing(loop []r3.Vector, plane AxisPlane) bool {
	n := len(loop)
	if n < 4 {
		return false
	}
	for i := 0; i < n; i++ {
		a := ToVector2D(loop[i], plane)
		b := ToVector2D(loop[(i+1)%n], plane)
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			c := ToVector2D(loop[j], plane)
			d := ToVector2D(loop[(j+1)%n], plane)
			if _, _, _, ok := lineIntersection(a, b, c, d, INTERSECTION_SEGMENT_SEGMENT); ok {
				return true
			}
		}
	}
	return false
}

// IsCollinear checks whether b lies on a straight line between a and c.
// If angleEpsilonDeg >= 0 then angle (a,b,c) within angleEpsilonDeg of 180 degrees is enough.
// If distEpsilon > 0 then distance from b to segment (a,c) not greater than distEpsilon is enough.
// Negative tolerance disables corresponding test
func IsCollinear(a, b, c r3.Vector, angleEpsilonDeg, distEpsilon float64) bool {
	if angleEpsilonDeg >= 0 {
		ang := Angle3D(a.Sub(b), c.Sub(b))
		if math.Abs(180-ang) <= angleEpsilonDeg {
			return true
		}
	}
	if distEpsilon > 0 {
		seg := Segment3D{Start: a, End: c}
		if seg.GetDistance(b) <= distEpsilon {
			return true
		}
	}
	return false
}

// SignedArea2D returns signed area of polygon projected on plane (positive for counter-clockwise order)
func SignedArea2D(loop []r3.Vector, plane AxisPlane) float64 {
	area := 0.0
	for i := range loop {
		a := ToVector2D(loop[i], plane)
		b := ToVector2D(loop[(i+1)%len(loop)], plane)
		area += Cross2D(a, b)
	}
	return area / 2
}

// IsClockwise reports whether loop is ordered clockwise on plane
func IsClockwise(loop []r3.Vector, plane AxisPlane) bool {
	return SignedArea2D(loop, plane) < 0
}

// CalcTotalAngle returns sum of signed exterior angles of loop (degrees). Approximately +360 for counter-clockwise simple polygon
func CalcTotalAngle(loop []r3.Vector, plane AxisPlane) float64 {
	n := len(loop)
	if n < 3 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		p0 := ToVector2D(loop[(i+n-1)%n], plane)
		p1 := ToVector2D(loop[i], plane)
		p2 := ToVector2D(loop[(i+1)%n], plane)
		total += SignedAngle2D(p1.Sub(p0), p2.Sub(p1))
	}
	return total
}

// IsConvex reports whether loop turns in one direction only
func IsConvex(loop []r3.Vector, plane AxisPlane) bool {
	n := len(loop)
	if n < 3 {
		return false
	}
	sign := 0.0
	for i := 0; i < n; i++ {
		p0 := ToVector2D(loop[(i+n-1)%n], plane)
		p1 := ToVector2D(loop[i], plane)
		p2 := ToVector2D(loop[(i+1)%n], plane)
		c := Cross2D(p1.Sub(p0), p2.Sub(p1))
		if math.Abs(c) < Epsilon {
			continue
		}
		if sign == 0 {
			sign = math.Copysign(1, c)
			continue
		}
		if math.Copysign(1, c) != sign {
			return false
		}
	}
	return sign != 0
}

// PolygonContains2D is even-odd test of point against loop on plane
func PolygonContains2D(loop []r3.Vector, plane AxisPlane, v r3.Vector) bool {
	p := ToVector2D(v, plane)
	inside := false
	for i, j := 0, len(loop)-1; i < len(loop); j, i = i, i+1 {
		a := ToVector2D(loop[i], plane)
		b := ToVector2D(loop[j], plane)
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}
