package mesh2rn

import (
	"math"

	"github.com/golang/geo/r3"
)

// LineString is ordered sequence of points. It may be referenced by several ways at once:
// modification made through one of them is visible to all of them
type LineString struct {
	Points []*Point
}

// NewLineString returns line string over given points (points are not copied)
func NewLineString(points ...*Point) *LineString {
	ls := &LineString{Points: make([]*Point, 0, len(points))}
	for _, p := range points {
		ls.AddPointOrSkip(p, PointEpsilon)
	}
	return ls
}

// NewLineStringFromVectors creates new points for given positions
func NewLineStringFromVectors(vs []r3.Vector) *LineString {
	ls := &LineString{Points: make([]*Point, 0, len(vs))}
	for _, v := range vs {
		ls.AddPointOrSkip(NewPoint(v), PointEpsilon)
	}
	return ls
}

// Count returns number of points
func (ls *LineString) Count() int {
	if ls == nil {
		return 0
	}
	return len(ls.Points)
}

// IsValid reports whether line string has at least two points
func (ls *LineString) IsValid() bool {
	return ls.Count() >= 2
}

// Vectors returns positions of points
func (ls *LineString) Vectors() []r3.Vector {
	ans := make([]r3.Vector, ls.Count())
	for i := range ans {
		ans[i] = ls.Points[i].Vector
	}
	return ans
}

// Clone returns copy of line string. If cloneVertex is set then points are copied too
func (ls *LineString) Clone(cloneVertex bool) *LineString {
	ans := &LineString{Points: make([]*Point, len(ls.Points))}
	for i, p := range ls.Points {
		if cloneVertex {
			ans.Points[i] = p.Clone()
		} else {
			ans.Points[i] = p
		}
	}
	return ans
}

// AddPointOrSkip appends point unless it is the same as the last one (within eps). Returns true if point has been added
func (ls *LineString) AddPointOrSkip(p *Point, eps float64) bool {
	if p == nil {
		return false
	}
	if n := len(ls.Points); n > 0 && ls.Points[n-1].IsSamePoint(p, eps) {
		return false
	}
	ls.Points = append(ls.Points, p)
	return true
}

// AddPointFrontOrSkip prepends point unless it is the same as the first one (within eps)
func (ls *LineString) AddPointFrontOrSkip(p *Point, eps float64) bool {
	if p == nil {
		return false
	}
	if len(ls.Points) > 0 && ls.Points[0].IsSamePoint(p, eps) {
		return false
	}
	ls.Points = append([]*Point{p}, ls.Points...)
	return true
}

// ReplacePoint replaces every occurrence of point old with p
func (ls *LineString) ReplacePoint(old, p *Point) int {
	n := 0
	for i := range ls.Points {
		if ls.Points[i] == old {
			ls.Points[i] = p
			n++
		}
	}
	return n
}

// CalcLength returns length of line string
func (ls *LineString) CalcLength() float64 {
	return PolylineLength(ls.Vectors())
}

// GetEdgeNormal returns unit vector (on RnPlane) pointing to the left of edge (i, i+1)
func (ls *LineString) GetEdgeNormal(i int) r3.Vector {
	if i < 0 || i+1 >= len(ls.Points) {
		return r3.Vector{}
	}
	dir := ToVector2D(ls.Points[i+1].Vector, RnPlane).Sub(ToVector2D(ls.Points[i].Vector, RnPlane))
	return ToVector3D(LeftNormal2D(dir), RnPlane, 0)
}

// GetVertexNormal returns average of normals of edges adjacent to vertex i
func (ls *LineString) GetVertexNormal(i int) r3.Vector {
	n := len(ls.Points)
	if n < 2 || i < 0 || i >= n {
		return r3.Vector{}
	}
	if i == 0 {
		return ls.GetEdgeNormal(0)
	}
	if i == n-1 {
		return ls.GetEdgeNormal(n - 2)
	}
	sum := ls.GetEdgeNormal(i - 1).Add(ls.GetEdgeNormal(i))
	if sum.Norm() < Epsilon {
		return ls.GetEdgeNormal(i)
	}
	return sum.Normalize()
}

// GetNearestPoint returns fractional index and position nearest (on RnPlane) to v
func (ls *LineString) GetNearestPoint(v r3.Vector) (float64, r3.Vector) {
	return PolylineNearestPoint(ls.Vectors(), v, RnPlane)
}

// GetAdvancedPointFromFront returns position located at distance from the first point
func (ls *LineString) GetAdvancedPointFromFront(distance float64) (float64, r3.Vector) {
	return PolylinePointByDistance(ls.Vectors(), distance)
}

// GetAdvancedPointFromBack returns position located at distance from the last point. Index is counted from the back
func (ls *LineString) GetAdvancedPointFromBack(distance float64) (float64, r3.Vector) {
	vs := ls.Vectors()
	reverseVectors(vs)
	return PolylinePointByDistance(vs, distance)
}

// Equals reports whether line strings have the same positions in the same order
func (ls *LineString) Equals(other *LineString) bool {
	if ls.Count() != other.Count() {
		return false
	}
	for i := range ls.Points {
		if !ls.Points[i].IsSamePoint(other.Points[i], PointEpsilon) {
			return false
		}
	}
	return true
}

// EqualsReversed reports whether other has the same positions in the reverse order
func (ls *LineString) EqualsReversed(other *LineString) bool {
	n := ls.Count()
	if n != other.Count() {
		return false
	}
	for i := range ls.Points {
		if !ls.Points[i].IsSamePoint(other.Points[n-1-i], PointEpsilon) {
			return false
		}
	}
	return true
}

// LineStringIntersection describes crossing of two line strings
type LineStringIntersection struct {
	Vector r3.Vector
	// Index is fractional index on the first line string
	Index float64
	// OtherIndex is fractional index on the second line string
	OtherIndex float64
}

// GetIntersectionBy2D returns every crossing with other line string on RnPlane (ordered by Index)
func (ls *LineString) GetIntersectionBy2D(other *LineString, normalTolerance float64) []LineStringIntersection {
	ans := []LineStringIntersection{}
	for i := 0; i+1 < ls.Count(); i++ {
		a := Segment3D{Start: ls.Points[i].Vector, End: ls.Points[i+1].Vector}
		for j := 0; j+1 < other.Count(); j++ {
			b := Segment3D{Start: other.Points[j].Vector, End: other.Points[j+1].Vector}
			p, t1, t2, ok := a.TrySegmentIntersectionBy2D(b, RnPlane, normalTolerance)
			if !ok {
				continue
			}
			ans = append(ans, LineStringIntersection{Vector: p, Index: float64(i) + t1, OtherIndex: float64(j) + t2})
		}
	}
	return ans
}

// Split cuts line string into num pieces by length. rateSelector returns relative length of piece i (nil means equal pieces).
// Cuts closer than min(0.1m, half of segment) to an existing vertex reuse it. If insertNewPoint is false,
// every cut snaps to the nearest existing vertex. Consecutive pieces share the cut point
func (ls *LineString) Split(num int, insertNewPoint bool, rateSelector func(i int) float64) []*LineString {
	if num <= 1 || !ls.IsValid() {
		return []*LineString{ls.Clone(false)}
	}
	rates := make([]float64, num)
	sum := 0.0
	for i := range rates {
		rates[i] = 1
		if rateSelector != nil {
			rates[i] = math.Max(0, rateSelector(i))
		}
		sum += rates[i]
	}
	if sum <= 0 {
		return []*LineString{ls.Clone(false)}
	}
	total := ls.CalcLength()
	targets := make([]float64, 0, num-1)
	acc := 0.0
	for i := 0; i < num-1; i++ {
		acc += rates[i] / sum * total
		targets = append(targets, acc)
	}

	ans := make([]*LineString, 0, num)
	cur := NewLineString(ls.Points[0])
	passed := 0.0
	k := 0
	for i := 0; i+1 < len(ls.Points); i++ {
		p0 := ls.Points[i]
		p1 := ls.Points[i+1]
		segLen := p0.Vector.Distance(p1.Vector)
		for k < len(targets) && (targets[k] <= passed+segLen || i+2 == len(ls.Points)) {
			t := Clamp01(InverseLerp(passed, passed+segLen, targets[k]))
			pos := Lerp3(p0.Vector, p1.Vector, t)
			snap := math.Min(0.1, segLen*0.5)
			var cut *Point
			switch {
			case pos.Distance(p0.Vector) <= snap:
				cut = p0
			case pos.Distance(p1.Vector) <= snap:
				cut = p1
			case !insertNewPoint && t < 0.5:
				cut = p0
			case !insertNewPoint:
				cut = p1
			default:
				cut = NewPoint(pos)
			}
			cur.AddPointOrSkip(cut, 0)
			ans = append(ans, cur)
			cur = NewLineString(cut)
			k++
		}
		cur.AddPointOrSkip(p1, 0)
		passed += segLen
	}
	ans = append(ans, cur)
	return ans
}

// SplitByIndex cuts line string at given point indices. Pieces share cut points
func (ls *LineString) SplitByIndex(indices []int) []*LineString {
	ans := []*LineString{}
	start := 0
	for _, idx := range indices {
		if idx <= start || idx >= len(ls.Points)-1 {
			continue
		}
		ans = append(ans, &LineString{Points: append([]*Point{}, ls.Points[start:idx+1]...)})
		start = idx
	}
	ans = append(ans, &LineString{Points: append([]*Point{}, ls.Points[start:]...)})
	return ans
}

func reverseVectors(vs []r3.Vector) {
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
}
