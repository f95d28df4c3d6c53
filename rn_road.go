package mesh2rn

import (
	"fmt"
)

// Road is part of road network between two road bases (intersections or other roads).
// Road direction goes from Prev to Next. MainLanes are ordered from left to right in road direction
type Road struct {
	roadBase
	MainLanes  []*Lane
	MedianLane *Lane
	Prev       RoadBase
	Next       RoadBase
}

// NewRoad returns road built from given features
func NewRoad(features ...*Feature) *Road {
	road := &Road{}
	for _, f := range features {
		road.AddTargetFeature(f)
	}
	return road
}

// CreateIsolatedRoad returns road with single lane without neighbours
func CreateIsolatedRoad(feature *Feature, lane *Lane) *Road {
	road := NewRoad(feature)
	road.AddMainLane(lane)
	return road
}

func (road *Road) String() string {
	return fmt.Sprintf("Road(id=%d, lanes=%d/%d, median=%t, prev=%s, next=%s)", road.ID, road.GetLeftLaneCount(), road.GetRightLaneCount(), road.MedianLane != nil, roadBaseName(road.Prev), roadBaseName(road.Next))
}

func roadBaseName(rb RoadBase) string {
	switch v := rb.(type) {
	case *Road:
		if v != nil {
			return fmt.Sprintf("road#%d", v.ID)
		}
	case *Intersection:
		if v != nil {
			return fmt.Sprintf("intersection#%d", v.ID)
		}
	}
	return "none"
}

// AddMainLane appends lane to the right side of road
func (road *Road) AddMainLane(lane *Lane) {
	lane.Parent = road
	road.MainLanes = append(road.MainLanes, lane)
}

// ReplaceLanes replaces every main lane
func (road *Road) ReplaceLanes(lanes []*Lane) {
	road.MainLanes = nil
	for _, lane := range lanes {
		road.AddMainLane(lane)
	}
}

// SetMedianLane replaces median lane (nil removes it)
func (road *Road) SetMedianLane(lane *Lane) {
	if lane != nil {
		lane.Parent = road
	}
	road.MedianLane = lane
}

// IsLeftLane reports whether lane flows in road direction
func (road *Road) IsLeftLane(lane *Lane) bool {
	return !lane.IsReversed
}

// IsRightLane reports whether lane flows against road direction
func (road *Road) IsRightLane(lane *Lane) bool {
	return lane.IsReversed
}

// GetLeftLanes returns lanes flowing in road direction
func (road *Road) GetLeftLanes() []*Lane {
	ans := []*Lane{}
	for _, lane := range road.MainLanes {
		if road.IsLeftLane(lane) {
			ans = append(ans, lane)
		}
	}
	return ans
}

// GetRightLanes returns lanes flowing against road direction
func (road *Road) GetRightLanes() []*Lane {
	ans := []*Lane{}
	for _, lane := range road.MainLanes {
		if road.IsRightLane(lane) {
			ans = append(ans, lane)
		}
	}
	return ans
}

// GetLanes returns lanes of given side
func (road *Road) GetLanes(side Side) []*Lane {
	if side == SIDE_LEFT {
		return road.GetLeftLanes()
	}
	return road.GetRightLanes()
}

// GetLeftLaneCount returns number of lanes flowing in road direction
func (road *Road) GetLeftLaneCount() int {
	return len(road.GetLeftLanes())
}

// GetRightLaneCount returns number of lanes flowing against road direction
func (road *Road) GetRightLaneCount() int {
	return len(road.GetRightLanes())
}

// GetAllLanes returns main lanes and median
func (road *Road) GetAllLanes() []*Lane {
	ans := append([]*Lane{}, road.MainLanes...)
	if road.MedianLane != nil {
		ans = append(ans, road.MedianLane)
	}
	return ans
}

// GetAllLanesWithMedian returns lanes from left to right with median placed between left and right lanes
func (road *Road) GetAllLanesWithMedian() []*Lane {
	if road.MedianLane == nil {
		return append([]*Lane{}, road.MainLanes...)
	}
	left := road.GetLeftLanes()
	ans := append([]*Lane{}, left...)
	ans = append(ans, road.MedianLane)
	return append(ans, road.GetRightLanes()...)
}

// IsValid reports whether every lane has valid side ways
func (road *Road) IsValid() bool {
	if len(road.MainLanes) == 0 {
		return false
	}
	for _, lane := range road.GetAllLanes() {
		if !lane.IsValidWay() {
			return false
		}
	}
	return true
}

// IsAllBothConnectedLane reports whether every main lane has both borders
func (road *Road) IsAllBothConnectedLane() bool {
	for _, lane := range road.MainLanes {
		if !lane.IsBothConnectedLane() {
			return false
		}
	}
	return len(road.MainLanes) > 0
}

// IsAllLaneValid reports whether every main lane has valid ways and borders
func (road *Road) IsAllLaneValid() bool {
	return road.IsValid() && road.IsAllBothConnectedLane()
}

// GetNeighbors returns prev and next road bases (when present)
func (road *Road) GetNeighbors() []RoadBase {
	ans := []RoadBase{}
	for _, rb := range []RoadBase{road.Prev, road.Next} {
		if !isNilRoadBase(rb) {
			ans = append(ans, rb)
		}
	}
	return ans
}

// GetNeighbor returns neighbour on given border (road frame)
func (road *Road) GetNeighbor(borderType LaneBorderType) RoadBase {
	if borderType == LANE_BORDER_PREV {
		return road.Prev
	}
	return road.Next
}

// SetPrevNext replaces neighbours
func (road *Road) SetPrevNext(prev, next RoadBase) {
	road.Prev = prev
	road.Next = next
}

// ReplaceNeighbor replaces every link to from with to
func (road *Road) ReplaceNeighbor(from, to RoadBase) {
	if isNilRoadBase(from) {
		return
	}
	if road.Prev == from {
		road.Prev = to
	}
	if road.Next == from {
		road.Next = to
	}
}

// DisConnect removes links between road and its neighbours
func (road *Road) DisConnect() {
	for _, rb := range road.GetNeighbors() {
		switch n := rb.(type) {
		case *Intersection:
			n.ReplaceEdgeLink(road, nil)
		case *Road:
			n.ReplaceNeighbor(road, nil)
		}
	}
	road.Prev = nil
	road.Next = nil
}

// GetBorderWay returns border of lane at given road-frame border type oriented by dir (road frame)
func (road *Road) GetBorderWay(lane *Lane, borderType LaneBorderType, dir LaneBorderDir) *Way {
	laneType := borderType
	if lane.IsReversed {
		laneType = borderType.Opposite()
	}
	way := lane.GetBorder(laneType)
	if !way.IsValid() {
		return nil
	}
	current := lane.GetBorderDir(laneType)
	if lane.IsReversed {
		current = current.Opposite()
	}
	if current != dir {
		return way.ReversedWay()
	}
	return way
}

// GetBorderWays returns borders of every lane (with median) at given road-frame border type oriented from left to right
func (road *Road) GetBorderWays(borderType LaneBorderType) []*Way {
	ans := []*Way{}
	for _, lane := range road.GetAllLanesWithMedian() {
		if w := road.GetBorderWay(lane, borderType, LANE_BORDER_DIR_LEFT2RIGHT); w != nil {
			ans = append(ans, w)
		}
	}
	return ans
}

// GetMergedBorder returns single way through borders of every lane at given border type
func (road *Road) GetMergedBorder(borderType LaneBorderType, dir LaneBorderDir) *Way {
	ls := &LineString{}
	for _, w := range road.GetBorderWays(borderType) {
		for _, p := range w.Points() {
			ls.AddPointOrSkip(p, PointEpsilon)
		}
	}
	if !ls.IsValid() {
		return nil
	}
	way := NewWay(ls, false, false)
	if dir == LANE_BORDER_DIR_RIGHT2LEFT {
		way.Reverse(true)
	}
	return way
}

// TryGetMergedSideWay returns outer way of road on given side in road direction.
// Its normal points out of road
func (road *Road) TryGetMergedSideWay(side Side) (*Way, bool) {
	lanes := road.GetAllLanesWithMedian()
	if len(lanes) == 0 {
		return nil, false
	}
	lane := lanes[0]
	if side == SIDE_RIGHT {
		lane = lanes[len(lanes)-1]
	}
	laneSide := side
	if lane.IsReversed {
		laneSide = side.Opposite()
	}
	way := lane.GetSideWay(laneSide)
	if !way.IsValid() {
		return nil, false
	}
	if lane.IsReversed {
		return way.ReversedWay(), true
	}
	return way, true
}

// GetLaneSideWay returns side way of lane in road direction (normal keeps its side in space)
func (road *Road) GetLaneSideWay(lane *Lane, side Side) *Way {
	if !lane.IsReversed {
		return lane.GetSideWay(side)
	}
	way := lane.GetSideWay(side.Opposite())
	if way == nil {
		return nil
	}
	return way.ReversedWay()
}

// Reverse flips road direction: neighbours swap and lane order is reversed.
// Lanes keep their geometry and traffic direction, only their relation to road direction changes
func (road *Road) Reverse() {
	road.Prev, road.Next = road.Next, road.Prev
	for i, j := 0, len(road.MainLanes)-1; i < j; i, j = i+1, j-1 {
		road.MainLanes[i], road.MainLanes[j] = road.MainLanes[j], road.MainLanes[i]
	}
	for _, lane := range road.GetAllLanes() {
		lane.IsReversed = !lane.IsReversed
	}
	for _, sw := range road.sideWalks {
		sw.ReverseLaneType()
	}
}

// CalcLength returns average length of outer side ways
func (road *Road) CalcLength() float64 {
	sum := 0.0
	n := 0
	for _, side := range []Side{SIDE_LEFT, SIDE_RIGHT} {
		if w, ok := road.TryGetMergedSideWay(side); ok {
			sum += w.CalcLength()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// GetAllWays returns ways of lanes and side walks
func (road *Road) GetAllWays() []*Way {
	ans := []*Way{}
	for _, lane := range road.GetAllLanes() {
		ans = append(ans, lane.GetAllWays()...)
	}
	return append(ans, road.sideWalkWays()...)
}
