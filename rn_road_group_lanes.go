package mesh2rn

import (
	"math"
)

// laneCountRequest describes lane layout of road: left lanes, optional median, right lanes (left to right)
type laneCountRequest struct {
	left, right int
	// medianRate is relative width of median (zero means no median)
	medianRate float64
}

func (req laneCountRequest) hasMedian() bool {
	return req.medianRate > 0
}

func (req laneCountRequest) num() int {
	n := req.left + req.right
	if req.hasMedian() {
		n++
	}
	return n
}

// rate returns relative width of i-th slice
func (req laneCountRequest) rate(i int) float64 {
	n := req.num()
	if !req.hasMedian() {
		return 1.0 / float64(n)
	}
	if i == req.left {
		return req.medianRate
	}
	return (1 - req.medianRate) / float64(n-1)
}

// SetLaneCount rebuilds lanes of every road keeping current median (with its width rate) if there is one
func (group *RoadGroup) SetLaneCount(left, right int) bool {
	if group.HasMedian() {
		return group.SetLaneCountWithMedian(left, right, group.GetMedianWidthRate())
	}
	return group.SetLaneCountWithoutMedian(left, right)
}

// SetLaneCountWithoutMedian rebuilds lanes of every road with uniform width and without median
func (group *RoadGroup) SetLaneCountWithoutMedian(left, right int) bool {
	return group.setLaneCountImpl(laneCountRequest{left: left, right: right}, nil)
}

// SetLaneCountWithMedian rebuilds lanes of every road with median of given relative width between left and right lanes
func (group *RoadGroup) SetLaneCountWithMedian(left, right int, medianWidthRate float64) bool {
	if medianWidthRate <= 0 || medianWidthRate >= 1 {
		return group.SetLaneCountWithoutMedian(left, right)
	}
	return group.setLaneCountImpl(laneCountRequest{left: left, right: right, medianRate: medianWidthRate}, nil)
}

// CreateMedianOrSkip inserts median of width medianWidth (limited by maxMedianLaneRate of road width) keeping lane counts.
// Returns false if group already has median or has lanes on one side only
func (group *RoadGroup) CreateMedianOrSkip(medianWidth, maxMedianLaneRate float64) bool {
	if group.HasMedian() || medianWidth <= 0 {
		return false
	}
	left, right := group.GetLeftLaneCount(), group.GetRightLaneCount()
	if left == 0 || right == 0 {
		return false
	}
	width := group.GetMinWidth()
	if width <= 0 {
		return false
	}
	rate := math.Min(medianWidth/width, maxMedianLaneRate)
	if rate <= 0 {
		return false
	}
	return group.SetLaneCountWithMedian(left, right, rate)
}

// setLaneCountImpl rebuilds lanes of every road. Inner borders between consecutive roads are shared.
// prevOverride replaces prev border of the first road when set.
// Layouts of all roads are computed before any road changes, so on failure the group is left untouched
func (group *RoadGroup) setLaneCountImpl(req laneCountRequest, prevOverride *Way) bool {
	if req.num() == 0 || len(group.Roads) == 0 {
		return false
	}
	group.Align()
	layouts := make([]roadLaneLayout, 0, len(group.Roads))
	var sharedPrev []*LineString
	for i, road := range group.Roads {
		override := prevOverride
		if i > 0 {
			override = nil
		}
		layout, ok := planRoadLaneCount(road, req, sharedPrev, override)
		if !ok {
			return false
		}
		layouts = append(layouts, layout)
		sharedPrev = layout.nextPieces
	}
	for i, road := range group.Roads {
		layouts[i].apply(road)
	}
	return true
}

// roadLaneLayout is new set of lanes of single road waiting to be applied
type roadLaneLayout struct {
	mainLanes  []*Lane
	median     *Lane
	nextPieces []*LineString
}

func (layout roadLaneLayout) apply(road *Road) {
	road.ReplaceLanes(layout.mainLanes)
	road.SetMedianLane(layout.median)
	rewireBorders(road, LANE_BORDER_PREV)
	rewireBorders(road, LANE_BORDER_NEXT)
}

// planRoadLaneCount builds lanes of single road without touching it. Next border pieces go left to right
func planRoadLaneCount(road *Road, req laneCountRequest, prevPieces []*LineString, prevOverride *Way) (roadLaneLayout, bool) {
	leftSide, okLeft := road.TryGetMergedSideWay(SIDE_LEFT)
	rightSide, okRight := road.TryGetMergedSideWay(SIDE_RIGHT)
	if !okLeft || !okRight {
		return roadLaneLayout{}, false
	}
	num := req.num()

	prevBorder := prevOverride
	if prevBorder == nil {
		prevBorder = road.GetMergedBorder(LANE_BORDER_PREV, LANE_BORDER_DIR_LEFT2RIGHT)
	}
	if !prevBorder.IsValid() {
		prevBorder = NewWay(NewLineString(leftSide.GetPoint(0), rightSide.GetPoint(0)), false, false)
	}
	nextBorder := road.GetMergedBorder(LANE_BORDER_NEXT, LANE_BORDER_DIR_LEFT2RIGHT)
	if !nextBorder.IsValid() {
		nextBorder = NewWay(NewLineString(leftSide.GetPoint(-1), rightSide.GetPoint(-1)), false, false)
	}
	if len(prevPieces) != num {
		prevPieces = NewLineString(prevBorder.Points()...).Split(num, true, req.rate)
	}
	nextPieces := NewLineString(nextBorder.Points()...).Split(num, true, req.rate)
	if len(prevPieces) != num || len(nextPieces) != num {
		return roadLaneLayout{}, false
	}

	// separators from left side to right side in road direction
	seps := make([]*Way, num+1)
	seps[0] = leftSide
	seps[num] = rightSide
	acc := 0.0
	for k := 1; k < num; k++ {
		acc += req.rate(k - 1)
		start := prevPieces[k].Points[0]
		end := nextPieces[k].Points[0]
		seps[k] = CreateInnerLerpWay(leftSide, rightSide, start, end, acc)
	}

	layout := roadLaneLayout{
		mainLanes:  make([]*Lane, 0, num),
		nextPieces: nextPieces,
	}
	for i := 0; i < num; i++ {
		lane := NewLane(
			NewWay(seps[i].LineString, seps[i].IsReversed, false),
			NewWay(seps[i+1].LineString, seps[i+1].IsReversed, true),
			NewWay(prevPieces[i], false, false),
			NewWay(nextPieces[i], false, false),
		)
		switch {
		case i < req.left:
			layout.mainLanes = append(layout.mainLanes, lane)
		case req.hasMedian() && i == req.left:
			layout.median = lane
		default:
			lane.Reverse()
			layout.mainLanes = append(layout.mainLanes, lane)
		}
	}
	return layout, true
}

// rewireBorders replaces intersection edges leading to road with current lane borders
func rewireBorders(road *Road, borderType LaneBorderType) {
	inter := asIntersection(road.GetNeighbor(borderType))
	if inter == nil {
		return
	}
	inter.ReplaceEdges(road, road.GetBorderWays(borderType))
}
