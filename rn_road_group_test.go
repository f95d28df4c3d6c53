package mesh2rn

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeRoad returns single lane road along center line from start to end
func makeRoad(start, end r2.Point, width float64) *Road {
	dir := end.Sub(start).Normalize()
	n := LeftNormal2D(dir).Mul(width / 2)
	at := func(p r2.Point) *Point {
		return NewPoint(ToVector3D(p, RnPlane, 0))
	}
	lt0, lt1 := at(start.Add(n)), at(end.Add(n))
	rt0, rt1 := at(start.Sub(n)), at(end.Sub(n))
	lane := NewLane(
		NewWay(NewLineString(lt0, lt1), false, false),
		NewWay(NewLineString(rt0, rt1), false, true),
		NewWay(NewLineString(lt0, rt0), false, false),
		NewWay(NewLineString(lt1, rt1), false, false),
	)
	return CreateIsolatedRoad(nil, lane)
}

func sumWidth(lanes []*Lane) float64 {
	total := 0.0
	for _, lane := range lanes {
		total += lane.CalcWidth()
	}
	return total
}

func TestSetLaneCountWidthConservation(t *testing.T) {
	road := makeRoad(r2.Point{X: 0, Y: 5}, r2.Point{X: 50, Y: 5}, 10)
	model := NewModel()
	model.AddRoad(road)
	group := CreateRoadGroup(road)

	require.True(t, group.SetLaneCountWithoutMedian(2, 1))
	assert.Equal(t, 2, road.GetLeftLaneCount())
	assert.Equal(t, 1, road.GetRightLaneCount())
	assert.InDelta(t, 10, sumWidth(road.GetAllLanes()), 1e-6)
	for _, lane := range road.MainLanes {
		assert.InDelta(t, 10.0/3, lane.CalcWidth(), 1e-6)
		assert.InDelta(t, 10.0/3, lane.CalcMinWidth(), 1e-6)
		assert.Same(t, road, lane.Parent)
	}
	assert.True(t, road.MainLanes[2].IsReversed)

	// neighbour lanes share separator line string
	assert.True(t, road.MainLanes[0].RightWay.IsSameLineReference(road.MainLanes[1].LeftWay))

	require.True(t, group.SetLaneCountWithMedian(1, 1, 0.2))
	require.NotNil(t, road.MedianLane)
	assert.InDelta(t, 2, road.MedianLane.CalcWidth(), 1e-6)
	assert.InDelta(t, 10, sumWidth(road.GetAllLanes()), 1e-6)
	assert.True(t, group.HasMedian())
	assert.InDelta(t, 0.2, group.GetMedianWidthRate(), 1e-6)

	// median survives plain lane count change
	require.True(t, group.SetLaneCount(2, 2))
	require.NotNil(t, road.MedianLane)
	assert.InDelta(t, 2, road.MedianLane.CalcWidth(), 1e-6)
	assert.Len(t, road.MainLanes, 4)
	assert.NoError(t, model.Check())
}

func TestCreateMedianOrSkip(t *testing.T) {
	road := makeRoad(r2.Point{X: 0, Y: 0}, r2.Point{X: 30, Y: 0}, 8)
	group := CreateRoadGroup(road)
	assert.False(t, group.CreateMedianOrSkip(1, 0.5), "one-sided road can't carry median")
	require.True(t, group.SetLaneCountWithoutMedian(1, 1))
	assert.True(t, group.CreateMedianOrSkip(4, 0.25))
	require.NotNil(t, road.MedianLane)
	assert.InDelta(t, 2, road.MedianLane.CalcWidth(), 1e-6)
	assert.False(t, group.CreateMedianOrSkip(1, 0.5))
}

func TestRoadReverse(t *testing.T) {
	road := makeRoad(r2.Point{X: 0, Y: 0}, r2.Point{X: 30, Y: 0}, 8)
	require.True(t, CreateRoadGroup(road).SetLaneCountWithoutMedian(2, 1))
	left, ok := road.TryGetMergedSideWay(SIDE_LEFT)
	require.True(t, ok)
	assert.InDelta(t, 4, left.GetVector(0).Y, 1e-9)

	road.Reverse()
	assert.Equal(t, 1, road.GetLeftLaneCount())
	assert.Equal(t, 2, road.GetRightLaneCount())
	left, ok = road.TryGetMergedSideWay(SIDE_LEFT)
	require.True(t, ok)
	assert.InDelta(t, -4, left.GetVector(0).Y, 1e-9)
	assert.InDelta(t, 30, left.GetVector(0).X, 1e-9)
	// outer normal still points out of road
	assert.InDelta(t, -1, left.GetEdgeNormal(0).Y, 1e-9)

	border := road.GetMergedBorder(LANE_BORDER_PREV, LANE_BORDER_DIR_LEFT2RIGHT)
	require.NotNil(t, border)
	assert.InDelta(t, -4, border.GetVector(0).Y, 1e-9)
	assert.InDelta(t, 4, border.GetVector(-1).Y, 1e-9)
	assert.InDelta(t, 8, border.CalcLength(), 1e-9)
}

func TestMergeRoadGroup(t *testing.T) {
	a := makeRoad(r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0}, 6)
	b := makeRoad(r2.Point{X: 10, Y: 0}, r2.Point{X: 20, Y: 0}, 6)
	// b starts where a ends
	b.MainLanes[0].PrevBorder = a.MainLanes[0].NextBorder
	b.MainLanes[0].LeftWay.SetPoint(0, a.MainLanes[0].LeftWay.GetPoint(-1))
	b.MainLanes[0].RightWay.SetPoint(0, a.MainLanes[0].RightWay.GetPoint(-1))
	a.SetPrevNext(nil, b)
	b.SetPrevNext(a, nil)

	model := NewModel()
	model.AddRoad(a)
	model.AddRoad(b)
	model.AddSideWalk(NewSideWalk(b, NewWay(NewLineStringFromVectors([]r3.Vector{{X: 10, Y: 5}, {X: 20, Y: 5}}), false, false),
		NewWay(NewLineStringFromVectors([]r3.Vector{{X: 10, Y: 3}, {X: 20, Y: 3}}), false, false), nil, nil, SIDEWALK_LEFT_LANE))

	assert.Len(t, model.GetRoadGroups(), 1)
	assert.Equal(t, 1, model.MergeRoadGroup())
	require.Len(t, model.Roads(), 1)
	merged := model.Roads()[0]
	assert.Same(t, a, merged)
	assert.Nil(t, merged.Next)
	assert.InDelta(t, 20, merged.MainLanes[0].LeftWay.CalcLength(), 1e-9)
	assert.InDelta(t, 20, merged.CalcLength(), 1e-9)
	assert.InDelta(t, 20, merged.MainLanes[0].NextBorder.GetVector(0).X, 1e-9)
	assert.Len(t, merged.SideWalks(), 1)
	assert.NoError(t, model.Check())
}

func TestSetLaneCountFailureKeepsGroup(t *testing.T) {
	a := makeRoad(r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0}, 6)
	b := makeRoad(r2.Point{X: 10, Y: 0}, r2.Point{X: 20, Y: 0}, 6)
	b.MainLanes[0].PrevBorder = a.MainLanes[0].NextBorder
	b.MainLanes[0].LeftWay.SetPoint(0, a.MainLanes[0].LeftWay.GetPoint(-1))
	b.MainLanes[0].RightWay.SetPoint(0, a.MainLanes[0].RightWay.GetPoint(-1))
	a.SetPrevNext(nil, b)
	b.SetPrevNext(a, nil)
	// second road has broken right side
	b.MainLanes[0].RightWay = NewWay(NewLineString(b.MainLanes[0].RightWay.GetPoint(0)), false, true)

	group := CreateRoadGroup(a)
	require.Len(t, group.Roads, 2)
	laneA, laneB := a.MainLanes[0], b.MainLanes[0]
	nextA := laneA.NextBorder

	assert.False(t, group.SetLaneCountWithoutMedian(2, 1))
	require.Len(t, a.MainLanes, 1)
	assert.Same(t, laneA, a.MainLanes[0])
	assert.Same(t, nextA, a.MainLanes[0].NextBorder)
	assert.Nil(t, a.MedianLane)
	require.Len(t, b.MainLanes, 1)
	assert.Same(t, laneB, b.MainLanes[0])
	assert.Same(t, laneB.PrevBorder, nextA)
}

func TestSplitLaneByWidth(t *testing.T) {
	model := NewModel()
	wide := makeRoad(r2.Point{X: 0, Y: 0}, r2.Point{X: 40, Y: 0}, 12)
	narrow := makeRoad(r2.Point{X: 0, Y: 50}, r2.Point{X: 40, Y: 50}, 4)
	model.AddRoad(wide)
	model.AddRoad(narrow)

	assert.Equal(t, 1, model.SplitLaneByWidth(3))
	assert.Equal(t, 2, wide.GetLeftLaneCount())
	assert.Equal(t, 2, wide.GetRightLaneCount())
	assert.Equal(t, 1, narrow.GetLeftLaneCount())
	assert.Equal(t, 0, narrow.GetRightLaneCount())

	// two-way road is split per side
	assert.Equal(t, 0, model.SplitLaneByWidth(3))
	assert.Equal(t, 1, model.SplitLaneByWidth(6))
	assert.Equal(t, 1, wide.GetLeftLaneCount())
	assert.Equal(t, 1, wide.GetRightLaneCount())
}

func TestCreateLod1SideWalk(t *testing.T) {
	model := NewModel()
	road := makeRoad(r2.Point{X: 0, Y: 0}, r2.Point{X: 40, Y: 0}, 12)
	model.AddRoad(road)
	assert.Equal(t, 2, model.CreateSideWalk(2, 5))
	assert.Len(t, road.SideWalks(), 2)
	assert.InDelta(t, 8, road.MainLanes[0].CalcWidth(), 1e-9)
	for _, sw := range road.SideWalks() {
		assert.True(t, sw.IsValid())
		assert.InDelta(t, 2, sw.StartEdgeWay.CalcLength(), 1e-9)
	}
	assert.Equal(t, 0, model.CreateSideWalk(2, 5), "road already has side walks")
	assert.NoError(t, model.Check())
}
