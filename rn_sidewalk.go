package mesh2rn

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// SideWalkLaneType tells which side of parent road side walk is attached to
type SideWalkLaneType uint16

const (
	SIDEWALK_LEFT_LANE = SideWalkLaneType(iota + 1)
	SIDEWALK_RIGHT_LANE
	SIDEWALK_UNDEFINED = SideWalkLaneType(0)
)

func (iotaIdx SideWalkLaneType) String() string {
	return [...]string{"undefined", "left", "right"}[iotaIdx]
}

// SideWalk is pedestrian area along road or intersection.
// InsideWay touches the road, OutsideWay is the far edge. Edge ways close the shape at both ends
type SideWalk struct {
	ID           int
	Parent       RoadBase
	OutsideWay   *Way
	InsideWay    *Way
	StartEdgeWay *Way
	EndEdgeWay   *Way
	LaneType     SideWalkLaneType
	Feature      *Feature
}

// NewSideWalk returns side walk over given ways. Attach it to parent with Model.AddSideWalk
func NewSideWalk(parent RoadBase, outsideWay, insideWay, startEdgeWay, endEdgeWay *Way, laneType SideWalkLaneType) *SideWalk {
	sw := &SideWalk{
		Parent:       parent,
		OutsideWay:   outsideWay,
		InsideWay:    insideWay,
		StartEdgeWay: startEdgeWay,
		EndEdgeWay:   endEdgeWay,
		LaneType:     laneType,
	}
	sw.TryAlign()
	return sw
}

func (sw *SideWalk) String() string {
	return fmt.Sprintf("SideWalk(id=%d, lane=%s, parent=%s)", sw.ID, sw.LaneType, roadBaseName(sw.Parent))
}

// IsValid reports whether side walk has valid inside and outside ways
func (sw *SideWalk) IsValid() bool {
	return sw.OutsideWay.IsValid() && sw.InsideWay.IsValid()
}

// TryAlign orients inside way along outside way and edge ways from inside to outside.
// Returns false if ways are missing
func (sw *SideWalk) TryAlign() bool {
	if !sw.IsValid() {
		return false
	}
	out0 := sw.OutsideWay.GetVector(0)
	in0 := sw.InsideWay.GetVector(0)
	in1 := sw.InsideWay.GetVector(-1)
	if in1.Distance(out0) < in0.Distance(out0) {
		sw.InsideWay.Reverse(true)
	}
	start := sw.InsideWay.GetVector(0)
	end := sw.InsideWay.GetVector(-1)
	if sw.StartEdgeWay.IsValid() && sw.EndEdgeWay.IsValid() {
		sd := minDistToWayEnds(sw.StartEdgeWay, start)
		ed := minDistToWayEnds(sw.EndEdgeWay, start)
		if ed < sd {
			sw.StartEdgeWay, sw.EndEdgeWay = sw.EndEdgeWay, sw.StartEdgeWay
		}
	}
	if sw.StartEdgeWay.IsValid() && sw.StartEdgeWay.GetVector(-1).Distance(start) < sw.StartEdgeWay.GetVector(0).Distance(start) {
		sw.StartEdgeWay.Reverse(true)
	}
	if sw.EndEdgeWay.IsValid() && sw.EndEdgeWay.GetVector(-1).Distance(end) < sw.EndEdgeWay.GetVector(0).Distance(end) {
		sw.EndEdgeWay.Reverse(true)
	}
	return true
}

func minDistToWayEnds(way *Way, v r3.Vector) float64 {
	return math.Min(way.GetVector(0).Distance(v), way.GetVector(-1).Distance(v))
}

// ReverseLaneType swaps left and right side (used when parent road is reversed)
func (sw *SideWalk) ReverseLaneType() {
	switch sw.LaneType {
	case SIDEWALK_LEFT_LANE:
		sw.LaneType = SIDEWALK_RIGHT_LANE
	case SIDEWALK_RIGHT_LANE:
		sw.LaneType = SIDEWALK_LEFT_LANE
	}
}

// GetAllWays returns every valid way of side walk
func (sw *SideWalk) GetAllWays() []*Way {
	ans := make([]*Way, 0, 4)
	for _, w := range []*Way{sw.OutsideWay, sw.InsideWay, sw.StartEdgeWay, sw.EndEdgeWay} {
		if w.IsValid() {
			ans = append(ans, w)
		}
	}
	return ans
}
