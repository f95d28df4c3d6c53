package mesh2rn

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

// PolylineLength returns length of polyline
func PolylineLength(points []r3.Vector) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i].Distance(points[i-1])
	}
	return total
}

// PolylinePointAt returns position at fractional point index (e.g. 1.5 is middle of second segment)
func PolylinePointAt(points []r3.Vector, index float64) r3.Vector {
	if len(points) == 0 {
		return r3.Vector{}
	}
	if index <= 0 {
		return points[0]
	}
	if index >= float64(len(points)-1) {
		return points[len(points)-1]
	}
	i := int(math.Floor(index))
	return Lerp3(points[i], points[i+1], index-float64(i))
}

// PolylineDistanceAt returns distance along polyline from the first point to fractional index
func PolylineDistanceAt(points []r3.Vector, index float64) float64 {
	if len(points) < 2 || index <= 0 {
		return 0
	}
	i := int(math.Floor(index))
	if i >= len(points)-1 {
		return PolylineLength(points)
	}
	return PolylineLength(points[:i+1]) + points[i].Distance(points[i+1])*(index-float64(i))
}

// PolylineNearestPoint returns fractional index and position of polyline point nearest (on plane) to v
func PolylineNearestPoint(points []r3.Vector, v r3.Vector, plane AxisPlane) (float64, r3.Vector) {
	if len(points) == 0 {
		return -1, r3.Vector{}
	}
	if len(points) == 1 {
		return 0, points[0]
	}
	bestIdx := 0.0
	bestPt := points[0]
	bestDist := math.MaxFloat64
	for i := 1; i < len(points); i++ {
		seg := Segment3D{Start: points[i-1], End: points[i]}
		t := seg.To2D(plane).GetNearestPointParameter(ToVector2D(v, plane))
		p := seg.Lerp(t)
		d := ToVector2D(p, plane).Sub(ToVector2D(v, plane)).Norm()
		if d < bestDist {
			bestDist = d
			bestIdx = float64(i-1) + t
			bestPt = p
		}
	}
	return bestIdx, bestPt
}

// PolylinePointByDistance returns position located at given distance from the first point (clamped) and fractional index
func PolylinePointByDistance(points []r3.Vector, distance float64) (float64, r3.Vector) {
	if len(points) == 0 {
		return -1, r3.Vector{}
	}
	if distance <= 0 {
		return 0, points[0]
	}
	for i := 1; i < len(points); i++ {
		l := points[i].Distance(points[i-1])
		if distance <= l && l > 0 {
			t := distance / l
			return float64(i-1) + t, Lerp3(points[i-1], points[i], t)
		}
		distance -= l
	}
	return float64(len(points) - 1), points[len(points)-1]
}

// GetInnerLerpSegments builds polyline lying between left and right polylines.
// p is the rate: 0 gives left side, 1 gives right side. Left polyline is sampled at its vertices,
// every checkMeter along its segments and at projections of right vertices; each sample is paired with the nearest right point
func GetInnerLerpSegments(left, right []r3.Vector, plane AxisPlane, p, checkMeter float64) []r3.Vector {
	if len(left) < 2 || len(right) < 2 {
		return []r3.Vector{}
	}
	if len(left) == 2 && len(right) == 2 {
		return []r3.Vector{Lerp3(left[0], right[0], p), Lerp3(left[1], right[1], p)}
	}
	indices := make([]float64, 0, len(left)*2+len(right))
	for i := 0; i < len(left)-1; i++ {
		indices = append(indices, float64(i))
		segLen := left[i].Distance(left[i+1])
		if checkMeter > 0 && segLen > checkMeter {
			steps := int(segLen / checkMeter)
			for k := 1; k <= steps; k++ {
				t := float64(k) * checkMeter / segLen
				if t >= 1 {
					break
				}
				indices = append(indices, float64(i)+t)
			}
		}
	}
	indices = append(indices, float64(len(left)-1))
	for i := 1; i < len(right)-1; i++ {
		idx, _ := PolylineNearestPoint(left, right[i], plane)
		indices = append(indices, idx)
	}
	sort.Float64s(indices)

	ans := make([]r3.Vector, 0, len(indices))
	prevRight := 0.0
	for _, idx := range indices {
		l := PolylinePointAt(left, idx)
		rIdx, r := PolylineNearestPoint(right, l, plane)
		// keep right side monotonic, otherwise inner line may fold back
		if rIdx < prevRight {
			rIdx = prevRight
			r = PolylinePointAt(right, rIdx)
		}
		prevRight = rIdx
		v := Lerp3(l, r, p)
		if len(ans) > 0 && ans[len(ans)-1].Distance(v) < PointEpsilon {
			continue
		}
		ans = append(ans, v)
	}
	return ans
}
