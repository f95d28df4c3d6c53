package mesh2rn

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type featuresProvider []*Feature

func (provider featuresProvider) Features() ([]FeatureResult, error) {
	ans := make([]FeatureResult, 0, len(provider))
	for _, f := range provider {
		ans = append(ans, FeatureResult{Name: f.Name, Feature: f})
	}
	return ans, nil
}

func plainFactory(options ...func(*Factory)) *Factory {
	return NewFactory(append([]func(*Factory){
		WithAddSideWalk(false, 0, 0),
		WithCalibration(false, 0, 0),
	}, options...)...)
}

func TestFactoryIsolatedRectangle(t *testing.T) {
	nodes := []*MeshNode{{Name: "road", Mesh: quadMesh(0, 0, 20, 10, 0)}}
	attrs := AttributeMap{"road": {Function: "車道部", Class: "Road", Lod: 2}}
	model, report := plainFactory().CreateRnModel(NewTreeMeshProvider(nodes, attrs))
	require.NoError(t, report.Err)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, FactoryVersion, model.FactoryVersion)

	require.Len(t, model.Roads(), 1)
	assert.Empty(t, model.Intersections())
	road := model.Roads()[0]
	assert.Nil(t, road.Prev)
	assert.Nil(t, road.Next)
	require.Len(t, road.MainLanes, 1)
	lane := road.MainLanes[0]
	assert.InDelta(t, 20, lane.LeftWay.CalcLength(), 1e-6)
	assert.InDelta(t, 20, lane.RightWay.CalcLength(), 1e-6)
	assert.InDelta(t, 10, lane.PrevBorder.CalcLength(), 1e-6)
	assert.InDelta(t, 10, lane.NextBorder.CalcLength(), 1e-6)
	assert.Equal(t, LANE_BORDER_DIR_LEFT2RIGHT, lane.GetBorderDir(LANE_BORDER_PREV))
	assert.Equal(t, LANE_BORDER_DIR_LEFT2RIGHT, lane.GetBorderDir(LANE_BORDER_NEXT))

	// left way lies on the left of road direction
	dir := lane.LeftWay.GetVector(-1).Sub(lane.LeftWay.GetVector(0))
	toRight := lane.RightWay.GetVector(0).Sub(lane.LeftWay.GetVector(0))
	assert.Less(t, Cross2D(r2.Point{X: dir.X, Y: dir.Y}, r2.Point{X: toRight.X, Y: toRight.Y}), 0.0)
	assert.NoError(t, model.Check())
}

func TestFactoryIsolatedWithSideWalks(t *testing.T) {
	features := featuresProvider{
		quadFeature("road", ROAD_TYPE_ROAD, 0, 0, 20, 10),
		quadFeature("north", ROAD_TYPE_SIDEWALK, 0, 10, 20, 13),
		quadFeature("south", ROAD_TYPE_SIDEWALK, 0, -3, 20, 0),
	}
	model, report := plainFactory().CreateRnModel(features)
	require.NoError(t, report.Err)
	require.Len(t, model.Roads(), 1)
	road := model.Roads()[0]
	require.Len(t, model.SideWalks(), 2)
	assert.Len(t, road.SideWalks(), 2)
	types := map[SideWalkLaneType]int{}
	for _, sw := range model.SideWalks() {
		assert.True(t, sw.IsValid())
		assert.Equal(t, road, sw.Parent)
		assert.InDelta(t, 20, sw.InsideWay.CalcLength(), 1e-6)
		assert.InDelta(t, 20, sw.OutsideWay.CalcLength(), 1e-6)
		assert.InDelta(t, 3, sw.StartEdgeWay.CalcLength(), 1e-6)
		types[sw.LaneType]++
	}
	assert.Equal(t, 1, types[SIDEWALK_LEFT_LANE])
	assert.Equal(t, 1, types[SIDEWALK_RIGHT_LANE])
	assert.NoError(t, model.Check())
}

func TestFactoryLod1SideWalk(t *testing.T) {
	factory := NewFactory(WithAddSideWalk(true, 2, 8), WithCalibration(false, 0, 0))
	model, report := factory.CreateRnModel(featuresProvider{quadFeature("road", ROAD_TYPE_ROAD, 0, 0, 20, 10)})
	require.NoError(t, report.Err)
	require.Len(t, model.Roads(), 1)
	assert.Len(t, model.SideWalks(), 2)
	assert.InDelta(t, 6, model.Roads()[0].MainLanes[0].CalcWidth(), 1e-6)
}

func TestFactoryLod1SideWalkDefaultsKeepNarrowRoad(t *testing.T) {
	factory := NewFactory(WithCalibration(false, 0, 0))
	model, report := factory.CreateRnModel(featuresProvider{quadFeature("road", ROAD_TYPE_ROAD, 0, 0, 20, 10)})
	require.NoError(t, report.Err)
	require.Len(t, model.Roads(), 1)
	assert.Empty(t, model.SideWalks())
	assert.InDelta(t, 10, model.Roads()[0].MainLanes[0].CalcWidth(), 1e-6)

	model, report = factory.CreateRnModel(featuresProvider{quadFeature("road", ROAD_TYPE_ROAD, 0, 0, 20, 14)})
	require.NoError(t, report.Err)
	require.Len(t, model.Roads(), 1)
	assert.Len(t, model.SideWalks(), 2)
	assert.InDelta(t, 8, model.Roads()[0].MainLanes[0].CalcWidth(), 1e-6)
}

func TestFactoryMedianOnly(t *testing.T) {
	model, report := plainFactory().CreateRnModel(featuresProvider{quadFeature("median", ROAD_TYPE_ROAD|ROAD_TYPE_MEDIAN, 0, 0, 20, 2)})
	require.NoError(t, report.Err)
	assert.True(t, model.IsEmpty())
	require.Len(t, report.Skipped, 1)
	assert.ErrorIs(t, report.Skipped[0].Reason, ErrUnclassifiable)
}

func TestFactoryReport(t *testing.T) {
	nodes := []*MeshNode{
		{Name: "road", Mesh: quadMesh(0, 0, 20, 10, 0)},
		{Name: "unknown", Mesh: quadMesh(100, 0, 120, 10, 0)},
	}
	attrs := AttributeMap{"road": {Function: "road", Lod: 1}}
	model, report := plainFactory().CreateRnModel(NewTreeMeshProvider(nodes, attrs))
	require.NoError(t, report.Err)
	require.Len(t, report.FeatureErrors, 1)
	assert.Equal(t, "unknown", report.FeatureErrors[0].Name)
	assert.ErrorIs(t, report.FeatureErrors[0].Err, ErrNoAttribute)
	assert.Len(t, model.Roads(), 1)
	assert.NotEmpty(t, report.Timings)

	model, report = plainFactory().CreateRnModel(NewTreeMeshProvider(nil, attrs))
	assert.ErrorIs(t, report.Err, ErrNoFeatures)
	assert.True(t, model.IsEmpty())
	assert.Equal(t, FactoryVersion, model.FactoryVersion)
}

// tJunctionFeatures returns intersection [0;10]x[0;10] with roads attached from west, east and south
func tJunctionFeatures() featuresProvider {
	return featuresProvider{
		quadFeature("intersection", ROAD_TYPE_ROAD, 0, 0, 10, 10),
		quadFeature("west", ROAD_TYPE_ROAD, -30, 0, 0, 10),
		quadFeature("east", ROAD_TYPE_ROAD, 10, 0, 40, 10),
		quadFeature("south", ROAD_TYPE_ROAD, 0, -30, 10, 0),
	}
}

func TestFactoryClassification(t *testing.T) {
	model, report := plainFactory(WithSeparateContinuousBorder(false)).CreateRnModel(tJunctionFeatures())
	require.NoError(t, report.Err)
	assert.Empty(t, report.Skipped)
	require.Len(t, model.Intersections(), 1)
	require.Len(t, model.Roads(), 3)
	inter := model.Intersections()[0]
	assert.True(t, inter.IsAligned())

	borders := 0
	for _, edge := range inter.Edges {
		if edge.IsBorder() {
			borders++
			road, ok := edge.Road.(*Road)
			require.True(t, ok)
			// border line string is shared with the road lane
			lane := edge.GetConnectedLane()
			require.NotNil(t, lane)
			assert.Equal(t, road, lane.Parent)
		}
	}
	assert.Equal(t, 3, borders)
	assert.Len(t, inter.Edges, 4)
	for _, road := range model.Roads() {
		assert.Nil(t, road.Prev)
		assert.Equal(t, inter, road.Next)
		assert.InDelta(t, 30, road.CalcLength(), 1e-6)
	}
	assert.NoError(t, model.Check())
}

func TestFactoryTracks(t *testing.T) {
	model, report := plainFactory(WithRoadSize(4)).CreateRnModel(tJunctionFeatures())
	require.NoError(t, report.Err)
	require.Len(t, model.Intersections(), 1)
	require.Len(t, model.Roads(), 3)
	inter := model.Intersections()[0]
	for _, road := range model.Roads() {
		assert.Equal(t, 1, road.GetLeftLaneCount())
		assert.Equal(t, 1, road.GetRightLaneCount())
	}
	borders := 0
	for _, edge := range inter.Edges {
		if edge.IsBorder() {
			borders++
		}
	}
	assert.Equal(t, 6, borders)
	assert.Len(t, inter.Tracks, 6)
	assert.NoError(t, model.Check())
}

func TestWorkCreateWay(t *testing.T) {
	graph := NewGraph()
	a := graph.AddVertex(r3.Vector{})
	b := graph.AddVertex(r3.Vector{X: 1})
	c := graph.AddVertex(r3.Vector{X: 2, Y: 1})
	w := newWork(graph)
	forward := w.CreateWay([]VertexID{a, b, c})
	backward := w.CreateWay([]VertexID{c, b, a})
	assert.Same(t, forward.LineString, backward.LineString)
	assert.False(t, forward.IsReversed)
	assert.True(t, backward.IsReversed)
	assert.Same(t, forward.GetPoint(0), backward.GetPoint(-1))

	other := w.CreateWay([]VertexID{b, c})
	assert.NotSame(t, forward.LineString, other.LineString)
	assert.Same(t, forward.GetPoint(1), other.GetPoint(0))
	assert.Nil(t, w.CreateWay([]VertexID{a}))
}

func TestFindBorderEdges(t *testing.T) {
	// U-shaped free line around target at origin, cap is the far side
	points := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	s, e, ok := FindBorderEdges(points, r2.Point{X: -1, Y: 5})
	require.True(t, ok)
	assert.Equal(t, 1, s)
	assert.Equal(t, 2, e)

	_, _, ok = FindBorderEdges(points[:3], r2.Point{})
	assert.False(t, ok)
}

func TestPrincipalAxis(t *testing.T) {
	axis := principalAxis2D([]r2.Point{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 10}, {X: 0, Y: 10}})
	assert.InDelta(t, 1, axis.X, 1e-9)
	assert.InDelta(t, 0, axis.Y, 1e-9)
	axis = principalAxis2D([]r2.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 10}, {X: 0, Y: 10}})
	assert.InDelta(t, 0, axis.X, 1e-9)
	assert.InDelta(t, 1, axis.Y, 1e-9)
}
