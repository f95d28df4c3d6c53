package mesh2rn

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Way is directed view over LineString. Several ways may reference the same line string.
//
// Normal of a way points to the left of its direction. IsReverseNormal flips it
type Way struct {
	LineString      *LineString
	IsReversed      bool
	IsReverseNormal bool
}

// NewWay returns way over given line string
func NewWay(ls *LineString, isReversed, isReverseNormal bool) *Way {
	return &Way{LineString: ls, IsReversed: isReversed, IsReverseNormal: isReverseNormal}
}

func (way *Way) String() string {
	return fmt.Sprintf("Way(count=%d, reversed=%t, reverseNormal=%t)", way.Count(), way.IsReversed, way.IsReverseNormal)
}

// IsValid reports whether way references line string with at least two points
func (way *Way) IsValid() bool {
	return way != nil && way.LineString.IsValid()
}

// Count returns number of points
func (way *Way) Count() int {
	if way == nil {
		return 0
	}
	return way.LineString.Count()
}

// ToRawIndex converts index in way order into index of underlying line string.
// Negative index is counted from the end (-1 is the last point)
func (way *Way) ToRawIndex(index int) int {
	n := way.Count()
	if index < 0 {
		index += n
	}
	if way.IsReversed {
		return n - 1 - index
	}
	return index
}

// GetPoint returns i-th point in way order
func (way *Way) GetPoint(index int) *Point {
	return way.LineString.Points[way.ToRawIndex(index)]
}

// SetPoint replaces i-th point in way order
func (way *Way) SetPoint(index int, p *Point) {
	way.LineString.Points[way.ToRawIndex(index)] = p
}

// GetVector returns position of i-th point in way order
func (way *Way) GetVector(index int) r3.Vector {
	return way.GetPoint(index).Vector
}

// Points returns points in way order
func (way *Way) Points() []*Point {
	n := way.Count()
	ans := make([]*Point, n)
	for i := 0; i < n; i++ {
		ans[i] = way.GetPoint(i)
	}
	return ans
}

// Vectors returns positions in way order
func (way *Way) Vectors() []r3.Vector {
	n := way.Count()
	ans := make([]r3.Vector, n)
	for i := 0; i < n; i++ {
		ans[i] = way.GetVector(i)
	}
	return ans
}

// ReversedWay returns new view over the same line string with opposite direction. Normal keeps its side in space
func (way *Way) ReversedWay() *Way {
	return &Way{LineString: way.LineString, IsReversed: !way.IsReversed, IsReverseNormal: !way.IsReverseNormal}
}

// Reverse flips direction in place. If keepNormalDir is set, normal keeps its side in space
func (way *Way) Reverse(keepNormalDir bool) {
	way.IsReversed = !way.IsReversed
	if keepNormalDir {
		way.IsReverseNormal = !way.IsReverseNormal
	}
}

// Clone returns copy of way. If cloneLineString is set, points are copied too
func (way *Way) Clone(cloneLineString bool) *Way {
	ls := way.LineString
	if cloneLineString {
		ls = ls.Clone(true)
	}
	return &Way{LineString: ls, IsReversed: way.IsReversed, IsReverseNormal: way.IsReverseNormal}
}

// CalcLength returns length of way
func (way *Way) CalcLength() float64 {
	return way.LineString.CalcLength()
}

// GetEdgeNormal returns unit normal of edge (i, i+1) in way order
func (way *Way) GetEdgeNormal(index int) r3.Vector {
	if way.Count() < 2 {
		return r3.Vector{}
	}
	if index < 0 {
		index += way.Count() - 1
	}
	raw := index
	if way.IsReversed {
		raw = way.Count() - 2 - index
	}
	n := way.LineString.GetEdgeNormal(raw)
	if way.IsReversed != way.IsReverseNormal {
		n = n.Mul(-1)
	}
	return n
}

// GetVertexNormal returns unit normal at i-th point in way order
func (way *Way) GetVertexNormal(index int) r3.Vector {
	n := way.LineString.GetVertexNormal(way.ToRawIndex(index))
	if way.IsReversed != way.IsReverseNormal {
		n = n.Mul(-1)
	}
	return n
}

// GetLerpPoint returns fractional index and position located at rate p (0..1) of way length
func (way *Way) GetLerpPoint(p float64) (float64, r3.Vector) {
	vs := way.Vectors()
	return PolylinePointByDistance(vs, PolylineLength(vs)*Clamp01(p))
}

// GetNearestPoint returns fractional index (way order) and position nearest to v
func (way *Way) GetNearestPoint(v r3.Vector) (float64, r3.Vector) {
	return PolylineNearestPoint(way.Vectors(), v, RnPlane)
}

// GetAdvancedPointFromFront returns position located at distance from the first point of way
func (way *Way) GetAdvancedPointFromFront(distance float64) (float64, r3.Vector) {
	return PolylinePointByDistance(way.Vectors(), distance)
}

// GetAdvancedPointFromBack returns position located at distance from the last point of way
func (way *Way) GetAdvancedPointFromBack(distance float64) (float64, r3.Vector) {
	vs := way.Vectors()
	reverseVectors(vs)
	return PolylinePointByDistance(vs, distance)
}

// MoveAlongNormal moves every point of the underlying line string by offset along way normal (joints are mitered).
// Points are modified in place, so every way sharing them sees the change
func (way *Way) MoveAlongNormal(offset float64) {
	vs := way.Vectors()
	distance := offset
	if way.IsReverseNormal {
		distance = -offset
	}
	moved := offsetCurve(ToVectors2D(vs, RnPlane), distance)
	if len(moved) == len(vs) {
		for i, p := range moved {
			pt := way.GetPoint(i)
			pt.Vector = PutPlane(pt.Vector, RnPlane, p)
		}
		return
	}
	normals := make([]r3.Vector, len(vs))
	for i := range normals {
		normals[i] = way.GetVertexNormal(i)
	}
	for i, n := range normals {
		p := way.GetPoint(i)
		p.Vector = p.Vector.Add(n.Mul(offset))
	}
}

// IsOutSide reports whether v lies on the normal side of way
func (way *Way) IsOutSide(v r3.Vector) bool {
	idx, nearest := way.GetNearestPoint(v)
	i := int(idx)
	if i >= way.Count()-1 {
		i = way.Count() - 2
	}
	diff := PutNormal(v.Sub(nearest), RnPlane, 0)
	return diff.Dot(way.GetEdgeNormal(i)) > 0
}

// IsSameLineReference reports whether ways reference the same line string
func (way *Way) IsSameLineReference(other *Way) bool {
	if way == nil || other == nil {
		return false
	}
	return way.LineString == other.LineString
}

// IsSameLineSequence reports whether ways have the same positions in way order (within 1mm)
func (way *Way) IsSameLineSequence(other *Way) bool {
	if way.Count() != other.Count() {
		return false
	}
	for i := 0; i < way.Count(); i++ {
		if way.GetVector(i).Distance(other.GetVector(i)) > 0.001 {
			return false
		}
	}
	return true
}

// AppendBack appends points of other (in other's way order) to the end of way
func (way *Way) AppendBack(other *Way) {
	for _, p := range other.Points() {
		if way.IsReversed {
			way.LineString.AddPointFrontOrSkip(p, PointEpsilon)
		} else {
			way.LineString.AddPointOrSkip(p, PointEpsilon)
		}
	}
}

// AppendFront prepends points of other (in other's way order) to the beginning of way
func (way *Way) AppendFront(other *Way) {
	pts := other.Points()
	for i := len(pts) - 1; i >= 0; i-- {
		if way.IsReversed {
			way.LineString.AddPointOrSkip(pts[i], PointEpsilon)
		} else {
			way.LineString.AddPointFrontOrSkip(pts[i], PointEpsilon)
		}
	}
}

// ContainsPoint reports whether way references given point
func (way *Way) ContainsPoint(p *Point) bool {
	for _, q := range way.LineString.Points {
		if q == p {
			return true
		}
	}
	return false
}

// CreateInnerLerpWay builds way lying at rate p between left and right ways. Both ways are expected to run in the same direction.
// start and end, when set, replace the first and the last points. Self crossings of the result are cut off
func CreateInnerLerpWay(left, right *Way, start, end *Point, p float64) *Way {
	vs := GetInnerLerpSegments(left.Vectors(), right.Vectors(), RnPlane, p, 1.0)
	ls := &LineString{Points: make([]*Point, 0, len(vs)+2)}
	if start != nil {
		ls.AddPointOrSkip(start, PointEpsilon)
	}
	for i, v := range vs {
		if (i == 0 && start != nil) || (i == len(vs)-1 && end != nil) {
			continue
		}
		ls.AddPointOrSkip(NewPoint(v), PointEpsilon)
	}
	if end != nil {
		ls.AddPointOrSkip(end, PointEpsilon)
	}
	ls.Points = DetectAndRemoveSelfCrossing(ls.Points,
		func(p *Point) r2.Point { return ToVector2D(p.Vector, RnPlane) },
		func(p1, p2, _, _ *Point, _ r2.Point, t1, _ float64) *Point { return NewPoint(Lerp3(p1.Vector, p2.Vector, t1)) },
	)
	return NewWay(ls, false, false)
}
