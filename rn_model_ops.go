package mesh2rn

import (
	"math"
)

// GetRoadGroups returns aligned chains of roads (each road belongs to exactly one group)
func (model *Model) GetRoadGroups() []*RoadGroup {
	visited := map[*Road]struct{}{}
	ans := []*RoadGroup{}
	for _, road := range model.roads {
		if _, ok := visited[road]; ok {
			continue
		}
		group := CreateRoadGroup(road)
		for _, r := range group.Roads {
			visited[r] = struct{}{}
		}
		ans = append(ans, group)
	}
	return ans
}

// MergeRoadGroup merges every chain of directly linked roads into single road. Returns number of removed roads
func (model *Model) MergeRoadGroup() int {
	before := len(model.roads)
	for _, group := range model.GetRoadGroups() {
		group.MergeRoads()
	}
	return before - len(model.roads)
}

// SeparateContinuousBorder separates adjacent borders of different neighbours of every intersection
func (model *Model) SeparateContinuousBorder() int {
	n := 0
	for _, inter := range model.intersections {
		n += inter.SeparateContinuousBorder()
	}
	return n
}

// SplitLaneByWidth sets lane counts of every road group so that each lane is about roadWidth wide.
// Roads with lanes on both sides are split per side. One-sided roads become two-way roads when they fit more than one lane
func (model *Model) SplitLaneByWidth(roadWidth float64) int {
	if roadWidth <= 0 {
		return 0
	}
	changed := 0
	for _, group := range model.GetRoadGroups() {
		if len(group.Roads) == 0 {
			continue
		}
		road := group.Roads[0]
		leftCount, rightCount := group.GetLeftLaneCount(), group.GetRightLaneCount()
		var left, right int
		if leftCount > 0 && rightCount > 0 {
			left = max(1, int(sideWidth(road, SIDE_LEFT)/roadWidth))
			right = max(1, int(sideWidth(road, SIDE_RIGHT)/roadWidth))
		} else {
			num := int((sideWidth(road, SIDE_LEFT) + sideWidth(road, SIDE_RIGHT)) / roadWidth)
			if num <= 1 {
				continue
			}
			left = (num + 1) / 2
			right = num - left
		}
		if left == leftCount && right == rightCount {
			continue
		}
		if group.SetLaneCount(left, right) {
			changed++
		}
	}
	return changed
}

// sideWidth returns total width of lanes of given side
func sideWidth(road *Road, side Side) float64 {
	w := 0.0
	for _, lane := range road.GetLanes(side) {
		w += lane.CalcWidth()
	}
	return w
}

// SetLaneCountFromFaces sets lane counts of road group containing road from number of lane faces.
// Median is created when medianWidth is positive and the road is wide enough to carry it
func (model *Model) SetLaneCountFromFaces(road *Road, laneFaces int, medianWidth, maxMedianLaneRate float64) bool {
	if laneFaces <= 0 {
		return false
	}
	group := CreateRoadGroup(road)
	left := (laneFaces + 1) / 2
	right := laneFaces / 2
	if !group.SetLaneCountWithoutMedian(left, right) {
		return false
	}
	if medianWidth > 0 && group.GetMinWidth() > medianWidth {
		group.CreateMedianOrSkip(medianWidth, maxMedianLaneRate)
	}
	return true
}

// AdjustBorders closes lane outlines of every road
func (model *Model) AdjustBorders() int {
	n := 0
	for _, group := range model.GetRoadGroups() {
		n += group.AdjustBorder()
	}
	return n
}

// CalcTotalLength returns sum of road lengths
func (model *Model) CalcTotalLength() float64 {
	total := 0.0
	for _, r := range model.roads {
		total += r.CalcLength()
	}
	return math.Round(total*1000) / 1000
}
