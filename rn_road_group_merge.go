package mesh2rn

// MergeRoads collapses chain into its first road: lane ways are concatenated, side walks with coincident
// edge ways are merged and intersection edges are re-pointed to the surviving road. Returns false if nothing has been merged
func (group *RoadGroup) MergeRoads() bool {
	if len(group.Roads) < 2 {
		return false
	}
	group.Align()
	if !group.IsSameLaneStructure() {
		left, right := 0, 0
		for _, r := range group.Roads {
			left = max(left, r.GetLeftLaneCount())
			right = max(right, r.GetRightLaneCount())
		}
		if !group.SetLaneCount(left, right) {
			return false
		}
	}
	dst := group.Roads[0]
	model := dst.ParentModel()
	extended := map[*LineString]struct{}{}
	for _, src := range group.Roads[1:] {
		mergeRoadInto(dst, src, extended)
		for _, f := range src.TargetFeatures() {
			dst.AddTargetFeature(f)
		}
		for _, sw := range append([]*SideWalk{}, src.SideWalks()...) {
			if model != nil {
				model.SetSideWalkParent(sw, dst)
			} else {
				src.removeSideWalk(sw)
				sw.Parent = dst
				dst.addSideWalk(sw)
			}
		}
		next := src.Next
		if inter := asIntersection(next); inter != nil {
			inter.ReplaceEdgeLink(src, dst)
		} else if r := asRoad(next); r != nil {
			r.ReplaceNeighbor(src, dst)
		}
		dst.Next = next
		src.Prev, src.Next = nil, nil
		if model != nil {
			model.RemoveRoad(src)
		}
	}
	mergeSideWalks(dst)
	group.Roads = []*Road{dst}
	group.Align()
	return true
}

// mergeRoadInto appends lanes of src (which follows dst) to lanes of dst
func mergeRoadInto(dst, src *Road, extended map[*LineString]struct{}) {
	dstLanes := dst.GetAllLanesWithMedian()
	srcLanes := src.GetAllLanesWithMedian()
	for i := range dstLanes {
		if i >= len(srcLanes) {
			break
		}
		a, b := dstLanes[i], srcLanes[i]
		for _, side := range []Side{SIDE_LEFT, SIDE_RIGHT} {
			wa := a.GetSideWay(side)
			wb := b.GetSideWay(side)
			if !wa.IsValid() || !wb.IsValid() {
				continue
			}
			if _, ok := extended[wa.LineString]; ok {
				continue
			}
			extended[wa.LineString] = struct{}{}
			if a.IsReversed {
				wa.AppendFront(wb)
			} else {
				wa.AppendBack(wb)
			}
		}
		if a.IsReversed {
			a.SetBorder(LANE_BORDER_PREV, b.PrevBorder)
		} else {
			a.SetBorder(LANE_BORDER_NEXT, b.NextBorder)
		}
	}
}

// mergeSideWalks joins side walks of road whose edge ways coincide
func mergeSideWalks(road *Road) {
	model := road.ParentModel()
	for merged := true; merged; {
		merged = false
		sws := road.SideWalks()
		for i := 0; i < len(sws) && !merged; i++ {
			for j := 0; j < len(sws) && !merged; j++ {
				if i == j || sws[i].LaneType != sws[j].LaneType {
					continue
				}
				if tryMergeSideWalk(sws[i], sws[j]) {
					if model != nil {
						model.RemoveSideWalk(sws[j])
					} else {
						road.removeSideWalk(sws[j])
					}
					merged = true
				}
			}
		}
	}
}

// tryMergeSideWalk appends b to a when end edge of a coincides with start edge of b
func tryMergeSideWalk(a, b *SideWalk) bool {
	if !a.IsValid() || !b.IsValid() || !a.EndEdgeWay.IsValid() || !b.StartEdgeWay.IsValid() {
		return false
	}
	if !a.EndEdgeWay.IsSameLineSequence(b.StartEdgeWay) && !a.EndEdgeWay.IsSameLineSequence(b.StartEdgeWay.ReversedWay()) {
		return false
	}
	a.OutsideWay.AppendBack(orientAfter(a.OutsideWay, b.OutsideWay))
	a.InsideWay.AppendBack(orientAfter(a.InsideWay, b.InsideWay))
	a.EndEdgeWay = b.EndEdgeWay
	return true
}

// AdjustBorder snaps ends of lane side ways to the ends of lane borders, so that every lane outline is closed
func (group *RoadGroup) AdjustBorder() int {
	moved := 0
	for _, road := range group.Roads {
		for _, lane := range road.GetAllLanes() {
			moved += adjustLaneBorder(lane)
		}
	}
	return moved
}

func adjustLaneBorder(lane *Lane) int {
	if !lane.IsValidWay() {
		return 0
	}
	moved := 0
	snap := func(way *Way, index int, border *Way, borderIndex int) {
		if !border.IsValid() {
			return
		}
		target := border.GetPoint(borderIndex)
		if way.GetPoint(index) == target {
			return
		}
		way.SetPoint(index, target)
		moved++
	}
	lane.AlignBorder()
	snap(lane.LeftWay, 0, lane.PrevBorder, 0)
	snap(lane.RightWay, 0, lane.PrevBorder, -1)
	snap(lane.LeftWay, -1, lane.NextBorder, 0)
	snap(lane.RightWay, -1, lane.NextBorder, -1)
	if moved > 0 {
		lane.centerWay = nil
	}
	return moved
}

// orientAfter returns next (or its reversed view) so that it starts where way ends
func orientAfter(way, next *Way) *Way {
	tail := way.GetVector(-1)
	if next.GetVector(-1).Distance(tail) < next.GetVector(0).Distance(tail) {
		return next.ReversedWay()
	}
	return next
}
