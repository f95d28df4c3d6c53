package mesh2rn

// CreateSideWalk adds side walks of width lod1Size along both sides of every road without side walks.
// Road sides are moved inward by lod1Size, previous sides become outer edges of side walks.
// Roads narrower than minRoadWidth are skipped. Returns number of created side walks
func (model *Model) CreateSideWalk(lod1Size, minRoadWidth float64) int {
	if lod1Size <= 0 {
		return 0
	}
	created := 0
	for _, road := range model.roads {
		if len(road.SideWalks()) > 0 || !road.IsValid() {
			continue
		}
		width := (&RoadGroup{Roads: []*Road{road}}).GetMinWidth()
		if width < minRoadWidth || width <= lod1Size*2 {
			continue
		}
		for _, side := range []Side{SIDE_LEFT, SIDE_RIGHT} {
			if sw := createLod1SideWalk(road, side, lod1Size); sw != nil {
				model.AddSideWalk(sw)
				created++
			}
		}
	}
	return created
}

func createLod1SideWalk(road *Road, side Side, lod1Size float64) *SideWalk {
	way, ok := road.TryGetMergedSideWay(side)
	if !ok {
		return nil
	}
	outside := NewWay(NewLineStringFromVectors(way.Vectors()), false, way.IsReverseNormal)
	way.MoveAlongNormal(-lod1Size)
	inside := NewWay(way.LineString, way.IsReversed, way.IsReverseNormal)
	start := NewWay(NewLineString(inside.GetPoint(0), outside.GetPoint(0)), false, false)
	end := NewWay(NewLineString(inside.GetPoint(-1), outside.GetPoint(-1)), false, false)
	laneType := SIDEWALK_LEFT_LANE
	if side == SIDE_RIGHT {
		laneType = SIDEWALK_RIGHT_LANE
	}
	return NewSideWalk(road, outside, inside, start, end, laneType)
}
