package mesh2rn

import (
	"github.com/golang/geo/r3"
)

// ExportKind tells which part of model exported way comes from
type ExportKind uint16

const (
	EXPORT_LANE_LEFT = ExportKind(iota + 1)
	EXPORT_LANE_RIGHT
	EXPORT_LANE_BORDER
	EXPORT_MEDIAN
	EXPORT_INTERSECTION_BORDER
	EXPORT_INTERSECTION_EDGE
	EXPORT_TRACK
	EXPORT_SIDEWALK

	EXPORT_UNDEFINED = ExportKind(0)
)

func (iotaIdx ExportKind) String() string {
	return [...]string{"undefined", "lane_left", "lane_right", "lane_border", "median", "intersection_border", "intersection_edge", "track", "sidewalk"}[iotaIdx]
}

// ExportedWay is polyline of model with description of its owner
type ExportedWay struct {
	Kind ExportKind
	// OwnerID is ID of road, intersection or side walk
	OwnerID int
	// Lane is index of lane in road from left to right. -1 for everything else
	Lane   int
	Turn   TurnType
	Points []*Point
}

// Vectors returns positions of way points
func (ew *ExportedWay) Vectors() []r3.Vector {
	ans := make([]r3.Vector, len(ew.Points))
	for i, p := range ew.Points {
		ans[i] = p.Vector
	}
	return ans
}

// CollectExportedWays walks model in stable order: roads, intersections (edges then tracks), side walks
func CollectExportedWays(model *Model) []ExportedWay {
	ans := []ExportedWay{}
	add := func(kind ExportKind, owner, lane int, turn TurnType, way *Way) {
		if !way.IsValid() {
			return
		}
		ans = append(ans, ExportedWay{Kind: kind, OwnerID: owner, Lane: lane, Turn: turn, Points: way.Points()})
	}
	for _, road := range model.Roads() {
		for i, lane := range road.GetAllLanesWithMedian() {
			if lane.IsMedianLane() {
				add(EXPORT_MEDIAN, road.ID, i, TURN_UNDEFINED, lane.LeftWay)
				add(EXPORT_MEDIAN, road.ID, i, TURN_UNDEFINED, lane.RightWay)
				continue
			}
			add(EXPORT_LANE_LEFT, road.ID, i, TURN_UNDEFINED, lane.LeftWay)
			add(EXPORT_LANE_RIGHT, road.ID, i, TURN_UNDEFINED, lane.RightWay)
			add(EXPORT_LANE_BORDER, road.ID, i, TURN_UNDEFINED, lane.PrevBorder)
			add(EXPORT_LANE_BORDER, road.ID, i, TURN_UNDEFINED, lane.NextBorder)
		}
	}
	for _, inter := range model.Intersections() {
		for _, edge := range inter.Edges {
			kind := EXPORT_INTERSECTION_EDGE
			if edge.IsBorder() {
				kind = EXPORT_INTERSECTION_BORDER
			}
			add(kind, inter.ID, -1, TURN_UNDEFINED, edge.Border)
		}
		for _, track := range inter.Tracks {
			if track.Spline.IsValid() {
				add(EXPORT_TRACK, inter.ID, -1, track.TurnType, NewWay(track.Spline, false, false))
			}
		}
	}
	for _, sw := range model.SideWalks() {
		for _, way := range sw.GetAllWays() {
			add(EXPORT_SIDEWALK, sw.ID, -1, TURN_UNDEFINED, way)
		}
	}
	return ans
}
