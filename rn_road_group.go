package mesh2rn

import (
	"fmt"
)

// RoadGroup is chain of roads between two intersections (either end may be nil for dead ends)
type RoadGroup struct {
	PrevIntersection *Intersection
	NextIntersection *Intersection
	Roads            []*Road
}

func (group *RoadGroup) String() string {
	return fmt.Sprintf("RoadGroup(prev=%s, next=%s, roads=%d)", roadBaseName(group.PrevIntersection), roadBaseName(group.NextIntersection), len(group.Roads))
}

func asIntersection(rb RoadBase) *Intersection {
	if it, ok := rb.(*Intersection); ok && it != nil {
		return it
	}
	return nil
}

func asRoad(rb RoadBase) *Road {
	if r, ok := rb.(*Road); ok && r != nil {
		return r
	}
	return nil
}

// CreateRoadGroup returns aligned chain of roads linked directly to given road
func CreateRoadGroup(road *Road) *RoadGroup {
	visited := map[*Road]struct{}{road: {}}
	walk := func(start RoadBase) []*Road {
		ans := []*Road{}
		for r := asRoad(start); r != nil; {
			if _, ok := visited[r]; ok {
				break
			}
			visited[r] = struct{}{}
			ans = append(ans, r)
			var next *Road
			for _, n := range r.GetNeighbors() {
				if c := asRoad(n); c != nil {
					if _, ok := visited[c]; !ok {
						next = c
						break
					}
				}
			}
			r = next
		}
		return ans
	}
	backward := walk(road.Prev)
	forward := walk(road.Next)
	chain := make([]*Road, 0, len(backward)+len(forward)+1)
	for i := len(backward) - 1; i >= 0; i-- {
		chain = append(chain, backward[i])
	}
	chain = append(chain, road)
	chain = append(chain, forward...)
	group := &RoadGroup{Roads: chain}
	group.Align()
	return group
}

// CreateRoadGroupOrDefault returns group of roads connecting prev and next intersections oriented from prev to next.
// Returns nil if there is no such chain
func CreateRoadGroupOrDefault(prev, next *Intersection) *RoadGroup {
	if prev == nil {
		return nil
	}
	for _, n := range prev.GetNeighbors() {
		road := asRoad(n)
		if road == nil {
			continue
		}
		group := CreateRoadGroup(road)
		if group.PrevIntersection == prev && group.NextIntersection == next {
			return group
		}
		if group.NextIntersection == prev && group.PrevIntersection == next {
			group.Reverse()
			return group
		}
	}
	return nil
}

// IsAligned reports whether every road's Next is the following road of the chain
func (group *RoadGroup) IsAligned() bool {
	for i := 0; i+1 < len(group.Roads); i++ {
		a, b := group.Roads[i], group.Roads[i+1]
		if a.Next != RoadBase(b) || b.Prev != RoadBase(a) {
			return false
		}
	}
	return true
}

// Align reverses member roads so that direction of every road follows the chain. Returns number of reversed roads
func (group *RoadGroup) Align() int {
	reversed := 0
	n := len(group.Roads)
	for i := 0; i+1 < n; i++ {
		a, b := group.Roads[i], group.Roads[i+1]
		if a.Next != RoadBase(b) && a.Prev == RoadBase(b) {
			a.Reverse()
			reversed++
		}
		if b.Prev != RoadBase(a) && b.Next == RoadBase(a) {
			b.Reverse()
			reversed++
		}
	}
	if n > 0 {
		group.PrevIntersection = asIntersection(group.Roads[0].Prev)
		group.NextIntersection = asIntersection(group.Roads[n-1].Next)
	}
	return reversed
}

// Reverse flips chain direction
func (group *RoadGroup) Reverse() {
	for i, j := 0, len(group.Roads)-1; i < j; i, j = i+1, j-1 {
		group.Roads[i], group.Roads[j] = group.Roads[j], group.Roads[i]
	}
	for _, r := range group.Roads {
		r.Reverse()
	}
	group.PrevIntersection, group.NextIntersection = group.NextIntersection, group.PrevIntersection
}

// GetLeftLaneCount returns number of left lanes of the first road
func (group *RoadGroup) GetLeftLaneCount() int {
	if len(group.Roads) == 0 {
		return 0
	}
	return group.Roads[0].GetLeftLaneCount()
}

// GetRightLaneCount returns number of right lanes of the first road
func (group *RoadGroup) GetRightLaneCount() int {
	if len(group.Roads) == 0 {
		return 0
	}
	return group.Roads[0].GetRightLaneCount()
}

// HasMedian reports whether every road of group has median
func (group *RoadGroup) HasMedian() bool {
	if len(group.Roads) == 0 {
		return false
	}
	for _, r := range group.Roads {
		if r.MedianLane == nil {
			return false
		}
	}
	return true
}

// IsSameLaneStructure reports whether every road has the same lane counts and median presence
func (group *RoadGroup) IsSameLaneStructure() bool {
	if len(group.Roads) == 0 {
		return true
	}
	first := group.Roads[0]
	for _, r := range group.Roads[1:] {
		if r.GetLeftLaneCount() != first.GetLeftLaneCount() || r.GetRightLaneCount() != first.GetRightLaneCount() || (r.MedianLane == nil) != (first.MedianLane == nil) {
			return false
		}
	}
	return true
}

// GetMedianWidthRate returns median width relative to road width of the first road (0 without median)
func (group *RoadGroup) GetMedianWidthRate() float64 {
	if len(group.Roads) == 0 {
		return 0
	}
	road := group.Roads[0]
	if road.MedianLane == nil {
		return 0
	}
	total := 0.0
	for _, lane := range road.GetAllLanes() {
		total += lane.CalcWidth()
	}
	if total <= 0 {
		return 0
	}
	return road.MedianLane.CalcWidth() / total
}

// GetMinWidth returns the smallest width of roads of group
func (group *RoadGroup) GetMinWidth() float64 {
	ans := -1.0
	for _, r := range group.Roads {
		for _, bt := range []LaneBorderType{LANE_BORDER_PREV, LANE_BORDER_NEXT} {
			b := r.GetMergedBorder(bt, LANE_BORDER_DIR_LEFT2RIGHT)
			if b == nil {
				continue
			}
			if l := b.CalcLength(); ans < 0 || l < ans {
				ans = l
			}
		}
	}
	if ans < 0 {
		return 0
	}
	return ans
}

// GetRoads returns roads of group
func (group *RoadGroup) GetRoads() []*Road {
	return group.Roads
}
