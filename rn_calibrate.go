package mesh2rn

import (
	"math"

	"github.com/golang/geo/r3"
)

// calibrateSkipAngle is deviation from right angle (degrees) below which border is kept as is
const calibrateSkipAngle = 5.0

// CalibrateIntersectionBorder moves borders between roads and intersections maxOffset meters into roads,
// replacing skewed borders with straight ones. Cut off parts of road sides become outline edges of intersection.
// Roads shorter than needRoadLength (after cutting) are not touched. Returns number of moved borders
func (model *Model) CalibrateIntersectionBorder(maxOffset, needRoadLength float64) int {
	if maxOffset <= 0 {
		return 0
	}
	n := 0
	for _, road := range append([]*Road{}, model.roads...) {
		if calibrateRoadBorder(road, LANE_BORDER_PREV, maxOffset, needRoadLength) {
			n++
		}
		if calibrateRoadBorder(road, LANE_BORDER_NEXT, maxOffset, needRoadLength) {
			n++
		}
	}
	return n
}

func calibrateRoadBorder(road *Road, borderType LaneBorderType, maxOffset, needRoadLength float64) bool {
	inter := asIntersection(road.GetNeighbor(borderType))
	if inter == nil || !road.IsValid() {
		return false
	}
	if borderType == LANE_BORDER_NEXT {
		road.Reverse()
		defer road.Reverse()
	}
	left, okLeft := road.TryGetMergedSideWay(SIDE_LEFT)
	right, okRight := road.TryGetMergedSideWay(SIDE_RIGHT)
	if !okLeft || !okRight {
		return false
	}
	if math.Min(left.CalcLength(), right.CalcLength())-maxOffset < needRoadLength {
		return false
	}
	if isPerpendicularBorder(road, left) {
		return false
	}
	medianRate := (&RoadGroup{Roads: []*Road{road}}).GetMedianWidthRate()
	req := laneCountRequest{left: road.GetLeftLaneCount(), right: road.GetRightLaneCount(), medianRate: medianRate}

	leftIdx, leftPos, rightIdx, rightPos := findCalibrationCut(left, right, maxOffset)
	leftCut, leftPiece := cutWayFront(left, leftIdx, leftPos)
	rightCut, rightPiece := cutWayFront(right, rightIdx, rightPos)
	border := NewWay(NewLineString(leftCut, rightCut), false, false)
	layout, ok := planRoadLaneCount(road, req, nil, border)
	if !ok {
		return false
	}
	layout.apply(road)
	inter.AddEdge(nil, NewWay(leftPiece, false, false))
	inter.AddEdge(nil, NewWay(rightPiece, false, false))
	inter.Align()
	return true
}

// findCalibrationCut returns positions on both sides at least maxOffset away from their starts, one of them projected on the other side
func findCalibrationCut(left, right *Way, maxOffset float64) (float64, r3.Vector, float64, r3.Vector) {
	leftIdx, leftPos := left.GetAdvancedPointFromFront(maxOffset)
	rightIdx, rightPos := right.GetNearestPoint(leftPos)
	if PolylineDistanceAt(right.Vectors(), rightIdx) >= maxOffset-Epsilon {
		return leftIdx, leftPos, rightIdx, rightPos
	}
	rightIdx, rightPos = right.GetAdvancedPointFromFront(maxOffset)
	leftIdx, leftPos = left.GetNearestPoint(rightPos)
	return leftIdx, leftPos, rightIdx, rightPos
}

// isPerpendicularBorder reports whether prev border of road is straight and perpendicular to left side
func isPerpendicularBorder(road *Road, left *Way) bool {
	border := road.GetMergedBorder(LANE_BORDER_PREV, LANE_BORDER_DIR_LEFT2RIGHT)
	if !border.IsValid() {
		return false
	}
	vs := border.Vectors()
	for i := 1; i+1 < len(vs); i++ {
		if !IsCollinear(vs[i-1], vs[i], vs[i+1], 1, -1) {
			return false
		}
	}
	borderDir := ToVector2D(vs[len(vs)-1].Sub(vs[0]), RnPlane)
	sideDir := ToVector2D(left.GetVector(1).Sub(left.GetVector(0)), RnPlane)
	return math.Abs(math.Abs(SignedAngle2D(sideDir, borderDir))-90) < calibrateSkipAngle
}

// cutWayFront shortens way (in place, visible to every way sharing its line string) so that it starts at pos.
// Returns new first point and removed front part (in way order)
func cutWayFront(way *Way, index float64, pos r3.Vector) (*Point, *LineString) {
	pts := way.Points()
	i := int(math.Floor(index))
	if i >= len(pts)-1 {
		i = len(pts) - 2
	}
	cut := NewPoint(pos)
	switch {
	case pts[i].Vector.Distance(pos) < PointEpsilon:
		cut = pts[i]
	case pts[i+1].Vector.Distance(pos) < PointEpsilon:
		cut = pts[i+1]
		i++
	}
	piece := NewLineString(pts[:i+1]...)
	piece.AddPointOrSkip(cut, PointEpsilon)
	rest := NewLineString(cut)
	for _, p := range pts[i+1:] {
		rest.AddPointOrSkip(p, PointEpsilon)
	}
	if way.IsReversed {
		for a, b := 0, len(rest.Points)-1; a < b; a, b = a+1, b-1 {
			rest.Points[a], rest.Points[b] = rest.Points[b], rest.Points[a]
		}
	}
	way.LineString.Points = rest.Points
	return cut, piece
}
