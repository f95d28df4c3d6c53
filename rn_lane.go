package mesh2rn

import (
	"math"
)

// LaneBorderType is kind of lane border
type LaneBorderType uint16

const (
	LANE_BORDER_PREV = LaneBorderType(iota + 1)
	LANE_BORDER_NEXT
	LANE_BORDER_UNDEFINED = LaneBorderType(0)
)

func (iotaIdx LaneBorderType) String() string {
	return [...]string{"undefined", "prev", "next"}[iotaIdx]
}

// Opposite returns the other border type
func (iotaIdx LaneBorderType) Opposite() LaneBorderType {
	switch iotaIdx {
	case LANE_BORDER_PREV:
		return LANE_BORDER_NEXT
	case LANE_BORDER_NEXT:
		return LANE_BORDER_PREV
	default:
		return LANE_BORDER_UNDEFINED
	}
}

// LaneBorderDir is direction of border way across lane
type LaneBorderDir uint16

const (
	LANE_BORDER_DIR_LEFT2RIGHT = LaneBorderDir(iota + 1)
	LANE_BORDER_DIR_RIGHT2LEFT
	LANE_BORDER_DIR_UNDEFINED = LaneBorderDir(0)
)

func (iotaIdx LaneBorderDir) String() string {
	return [...]string{"undefined", "left2right", "right2left"}[iotaIdx]
}

// Opposite returns the other direction
func (iotaIdx LaneBorderDir) Opposite() LaneBorderDir {
	switch iotaIdx {
	case LANE_BORDER_DIR_LEFT2RIGHT:
		return LANE_BORDER_DIR_RIGHT2LEFT
	case LANE_BORDER_DIR_RIGHT2LEFT:
		return LANE_BORDER_DIR_LEFT2RIGHT
	default:
		return LANE_BORDER_DIR_UNDEFINED
	}
}

// Side is left or right hand side
type Side uint16

const (
	SIDE_LEFT = Side(iota + 1)
	SIDE_RIGHT
	SIDE_UNDEFINED = Side(0)
)

func (iotaIdx Side) String() string {
	return [...]string{"undefined", "left", "right"}[iotaIdx]
}

// Opposite returns the other side
func (iotaIdx Side) Opposite() Side {
	switch iotaIdx {
	case SIDE_LEFT:
		return SIDE_RIGHT
	case SIDE_RIGHT:
		return SIDE_LEFT
	default:
		return SIDE_UNDEFINED
	}
}

// Lane is single lane of road. Left and right ways run from prev border to next border in lane direction.
// Normal of LeftWay points to the left (outside of lane), normal of RightWay points to the right
type Lane struct {
	LeftWay    *Way
	RightWay   *Way
	PrevBorder *Way
	NextBorder *Way
	// IsReversed is set when lane direction is opposite to direction of its parent road
	IsReversed bool
	Parent     *Road

	centerWay *Way
}

// NewLane returns lane over given ways
func NewLane(leftWay, rightWay, prevBorder, nextBorder *Way) *Lane {
	return &Lane{
		LeftWay:    leftWay,
		RightWay:   rightWay,
		PrevBorder: prevBorder,
		NextBorder: nextBorder,
	}
}

// CreateOneWayLane returns lane without borders bounded by given side ways
func CreateOneWayLane(leftWay, rightWay *Way) *Lane {
	return NewLane(leftWay, rightWay, nil, nil)
}

// CreateEmptyLane returns lane between two borders without side ways (used for dead-end placeholders)
func CreateEmptyLane(prevBorder, nextBorder *Way) *Lane {
	return NewLane(nil, nil, prevBorder, nextBorder)
}

// IsValidWay reports whether both side ways are valid
func (lane *Lane) IsValidWay() bool {
	return lane.LeftWay.IsValid() && lane.RightWay.IsValid()
}

// IsBothConnectedLane reports whether lane has both borders
func (lane *Lane) IsBothConnectedLane() bool {
	return lane.PrevBorder.IsValid() && lane.NextBorder.IsValid()
}

// IsMedianLane reports whether lane is the median of its parent road
func (lane *Lane) IsMedianLane() bool {
	return lane.Parent != nil && lane.Parent.MedianLane == lane
}

// GetBorder returns border of given type in lane direction
func (lane *Lane) GetBorder(borderType LaneBorderType) *Way {
	switch borderType {
	case LANE_BORDER_PREV:
		return lane.PrevBorder
	case LANE_BORDER_NEXT:
		return lane.NextBorder
	default:
		return nil
	}
}

// SetBorder replaces border of given type
func (lane *Lane) SetBorder(borderType LaneBorderType, border *Way) {
	switch borderType {
	case LANE_BORDER_PREV:
		lane.PrevBorder = border
	case LANE_BORDER_NEXT:
		lane.NextBorder = border
	}
	lane.centerWay = nil
}

// GetSideWay returns side way of given side in lane direction
func (lane *Lane) GetSideWay(side Side) *Way {
	switch side {
	case SIDE_LEFT:
		return lane.LeftWay
	case SIDE_RIGHT:
		return lane.RightWay
	default:
		return nil
	}
}

// SetSideWay replaces side way of given side
func (lane *Lane) SetSideWay(side Side, way *Way) {
	switch side {
	case SIDE_LEFT:
		lane.LeftWay = way
	case SIDE_RIGHT:
		lane.RightWay = way
	}
	lane.centerWay = nil
}

// GetBorderDir returns direction of border of given type.
// Border is Left2Right if its first point belongs to the left way end adjacent to this border
func (lane *Lane) GetBorderDir(borderType LaneBorderType) LaneBorderDir {
	border := lane.GetBorder(borderType)
	if !border.IsValid() || !lane.LeftWay.IsValid() {
		return LANE_BORDER_DIR_UNDEFINED
	}
	var leftEnd *Point
	if borderType == LANE_BORDER_PREV {
		leftEnd = lane.LeftWay.GetPoint(0)
	} else {
		leftEnd = lane.LeftWay.GetPoint(-1)
	}
	first := border.GetPoint(0)
	last := border.GetPoint(-1)
	if first.IsSamePoint(leftEnd, PointEpsilon) {
		return LANE_BORDER_DIR_LEFT2RIGHT
	}
	if last.IsSamePoint(leftEnd, PointEpsilon) {
		return LANE_BORDER_DIR_RIGHT2LEFT
	}
	if first.Vector.Distance(leftEnd.Vector) <= last.Vector.Distance(leftEnd.Vector) {
		return LANE_BORDER_DIR_LEFT2RIGHT
	}
	return LANE_BORDER_DIR_RIGHT2LEFT
}

// AlignBorder makes both borders run from left to right
func (lane *Lane) AlignBorder() {
	for _, bt := range []LaneBorderType{LANE_BORDER_PREV, LANE_BORDER_NEXT} {
		if lane.GetBorderDir(bt) == LANE_BORDER_DIR_RIGHT2LEFT {
			lane.GetBorder(bt).Reverse(true)
		}
	}
}

// Reverse flips lane direction: borders and side ways swap and every way is reversed keeping its normal side
func (lane *Lane) Reverse() {
	lane.IsReversed = !lane.IsReversed
	lane.PrevBorder, lane.NextBorder = lane.NextBorder, lane.PrevBorder
	lane.LeftWay, lane.RightWay = lane.RightWay, lane.LeftWay
	for _, w := range []*Way{lane.LeftWay, lane.RightWay, lane.PrevBorder, lane.NextBorder} {
		if w != nil {
			w.Reverse(true)
		}
	}
	lane.centerWay = nil
}

// CalcWidth returns the smaller of border lengths
func (lane *Lane) CalcWidth() float64 {
	w := math.Inf(1)
	for _, b := range []*Way{lane.PrevBorder, lane.NextBorder} {
		if b.IsValid() {
			w = math.Min(w, b.CalcLength())
		}
	}
	if math.IsInf(w, 1) {
		return 0
	}
	return w
}

// CalcMinWidth returns the smallest distance from points of left way to right way
func (lane *Lane) CalcMinWidth() float64 {
	if !lane.IsValidWay() {
		return lane.CalcWidth()
	}
	w := math.Inf(1)
	right := lane.RightWay.Vectors()
	for _, v := range lane.LeftWay.Vectors() {
		_, p := PolylineNearestPoint(right, v, RnPlane)
		w = math.Min(w, PutNormal(p.Sub(v), RnPlane, 0).Norm())
	}
	return w
}

// CenterWay returns way in the middle of lane. It is built lazily and rebuilt after lane modification
func (lane *Lane) CenterWay() *Way {
	if lane.centerWay == nil {
		lane.BuildCenterWay()
	}
	return lane.centerWay
}

// BuildCenterWay rebuilds center way of lane
func (lane *Lane) BuildCenterWay() {
	if !lane.IsValidWay() {
		lane.centerWay = nil
		return
	}
	var start, end *Point
	if lane.PrevBorder.IsValid() {
		_, v := lane.PrevBorder.GetLerpPoint(0.5)
		start = NewPoint(v)
	}
	if lane.NextBorder.IsValid() {
		_, v := lane.NextBorder.GetLerpPoint(0.5)
		end = NewPoint(v)
	}
	lane.centerWay = CreateInnerLerpWay(lane.LeftWay, lane.RightWay, start, end, 0.5)
}

// GetAllWays returns every valid way of lane
func (lane *Lane) GetAllWays() []*Way {
	ans := make([]*Way, 0, 4)
	for _, w := range []*Way{lane.LeftWay, lane.RightWay, lane.PrevBorder, lane.NextBorder} {
		if w.IsValid() {
			ans = append(ans, w)
		}
	}
	return ans
}
