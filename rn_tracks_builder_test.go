package mesh2rn

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnTypeBuckets(t *testing.T) {
	cases := []struct {
		angle    float64
		expected TurnType
	}{
		{0, TURN_U_TURN},
		{9.99, TURN_U_TURN},
		{10, TURN_LEFT_BACK},
		{67.5, TURN_LEFT},
		{112.5, TURN_LEFT_FRONT},
		{157.5, TURN_STRAIGHT},
		{180, TURN_STRAIGHT},
		{202.5, TURN_RIGHT_FRONT},
		{247.5, TURN_RIGHT},
		{292.5, TURN_RIGHT_BACK},
		{337.5, TURN_U_TURN},
		{-90, TURN_RIGHT},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, GetTurnTypeByAngle(c.angle), "angle %f", c.angle)
	}
}

func TestGetTurnType(t *testing.T) {
	south := r3.Vector{Y: -1}
	assert.Equal(t, TURN_STRAIGHT, GetTurnType(south, r3.Vector{Y: 1}, RnPlane))
	assert.Equal(t, TURN_LEFT, GetTurnType(south, r3.Vector{X: -1}, RnPlane))
	assert.Equal(t, TURN_RIGHT, GetTurnType(south, r3.Vector{X: 1}, RnPlane))
	assert.Equal(t, TURN_U_TURN, GetTurnType(south, south, RnPlane))
	// only exactly opposite normals give straight movement through the middle of bucket
	assert.InDelta(t, 180, GetTurnAngle(south, r3.Vector{Y: 1}, RnPlane), 1e-9)
	assert.NotEqual(t, 180.0, GetTurnAngle(south, r3.Vector{X: 0.1, Y: 1}.Normalize(), RnPlane))
}

func TestLaneConnections(t *testing.T) {
	// edge centered at cx on line y; running westward its outward normal points south
	edgeAt := func(cx, y float64) *IntersectionEdge {
		return &IntersectionEdge{Border: NewWay(NewLineStringFromVectors([]r3.Vector{{X: cx + 1.5, Y: y}, {X: cx - 1.5, Y: y}}), false, false)}
	}
	inbound := func(n int) []*IntersectionEdge {
		ans := make([]*IntersectionEdge, n)
		for i := range ans {
			ans[i] = edgeAt(1.5+3*float64(i), 0)
		}
		return ans
	}
	exits := func(turnType TurnType, xs ...float64) []outBound {
		ans := make([]outBound, len(xs))
		for i, x := range xs {
			ans[i] = outBound{edge: edgeAt(x, 20), turnType: turnType}
		}
		return ans
	}

	// excess inbound go to the rightmost exit
	assert.Equal(t, []connectionPair{{0, 0}, {1, 1}, {2, 1}}, getLaneConnections(inbound(3), exits(TURN_STRAIGHT, 1.5, 4.5)))
	assert.Equal(t, []connectionPair{{0, 0}, {1, 1}}, getLaneConnections(inbound(2), exits(TURN_LEFT, 1.5, 4.5)))
	// single inbound feeds every exit
	assert.Equal(t, []connectionPair{{0, 0}, {0, 1}, {0, 2}}, getLaneConnections(inbound(1), exits(TURN_RIGHT, 0, 3, 6)))
	assert.Nil(t, getLaneConnections(nil, exits(TURN_STRAIGHT, 1.5)))

	// straight exit switches to the next inbound edge when that one points at it more directly
	assert.Equal(t, []connectionPair{{0, 0}, {1, 1}, {1, 2}}, getLaneConnections(inbound(2), exits(TURN_STRAIGHT, 1.5, 4.5, 4.6)))
	// equal deviation keeps current inbound edge
	assert.Equal(t, []connectionPair{{0, 0}, {0, 1}, {1, 2}}, getLaneConnections(inbound(2), exits(TURN_STRAIGHT, 1.5, 3, 4.5)))
	// turning exits keep current inbound edge until the rest must be matched one to one
	assert.Equal(t, []connectionPair{{0, 0}, {0, 1}, {1, 2}}, getLaneConnections(inbound(2), exits(TURN_LEFT, 1.5, 4.5, 4.6)))

	// exits of several destinations are matched as one left to right list
	mixed := append(exits(TURN_LEFT, -10), exits(TURN_STRAIGHT, 4.5)...)
	assert.Equal(t, []connectionPair{{0, 0}, {1, 1}}, getLaneConnections(inbound(2), mixed))
}

// makeTJunction returns intersection [0;10]x[0;10] with roads attached from south, north and west
func makeTJunction(t *testing.T) (*Model, *Intersection, *Road, *Road, *Road) {
	south := makeRoad(r2.Point{X: 5, Y: -20}, r2.Point{X: 5, Y: 0}, 10)
	north := makeRoad(r2.Point{X: 5, Y: 10}, r2.Point{X: 5, Y: 30}, 10)
	west := makeRoad(r2.Point{X: -20, Y: 5}, r2.Point{X: 0, Y: 5}, 10)

	inter := NewIntersection()
	model := NewModel()
	for _, r := range []*Road{south, north, west} {
		model.AddRoad(r)
	}
	model.AddIntersection(inter)

	inter.AddEdge(south, south.MainLanes[0].NextBorder)
	inter.AddEdge(north, north.MainLanes[0].PrevBorder)
	inter.AddEdge(west, west.MainLanes[0].NextBorder)
	east := NewLineString(north.MainLanes[0].PrevBorder.GetPoint(-1), south.MainLanes[0].NextBorder.GetPoint(-1))
	inter.AddEdge(nil, NewWay(east, false, false))
	south.SetPrevNext(nil, inter)
	north.SetPrevNext(inter, nil)
	west.SetPrevNext(nil, inter)
	inter.Align()
	require.True(t, inter.IsAligned())

	for _, r := range []*Road{south, north, west} {
		require.True(t, CreateRoadGroup(r).SetLaneCountWithoutMedian(1, 1))
	}
	require.NoError(t, model.Check())
	return model, inter, south, north, west
}

func TestBuildTracks(t *testing.T) {
	model, inter, south, _, west := makeTJunction(t)
	assert.Len(t, inter.Edges, 7)
	groups := inter.CreateEdgeGroups()
	assert.Len(t, groups, 4)
	for _, g := range groups {
		if g.Key == RoadBase(south) {
			n := g.GetNormal()
			assert.InDelta(t, -1, n.Y, 1e-9)
			assert.Len(t, g.InBoundEdges(), 1)
			assert.Len(t, g.OutBoundEdges(), 1)
		}
	}

	builder := NewRnTracksBuilder()
	assert.Equal(t, 6, builder.BuildTracks(inter))
	counts := map[TurnType]int{}
	for _, track := range inter.Tracks {
		counts[track.TurnType]++
		assert.True(t, track.Spline.IsValid())
	}
	assert.Equal(t, 2, counts[TURN_STRAIGHT])
	assert.Equal(t, 2, counts[TURN_LEFT])
	assert.Equal(t, 2, counts[TURN_RIGHT])

	// rebuilding replaces tracks
	assert.Equal(t, 6, builder.BuildTracks(inter))
	assert.Equal(t, 9, NewRnTracksBuilder(WithSelfTrack(true)).BuildTracks(inter))

	// lane count change re-wires intersection and drops stale tracks
	require.True(t, CreateRoadGroup(west).SetLaneCountWithoutMedian(2, 1))
	assert.Len(t, inter.FindEdges(west), 3)
	assert.NoError(t, model.Check())
	for _, track := range inter.Tracks {
		assert.True(t, inter.hasBorder(track.FromBorder))
		assert.True(t, inter.hasBorder(track.ToBorder))
	}
}

func TestBuildTracksMultiLaneInbound(t *testing.T) {
	model, inter, south, _, _ := makeTJunction(t)
	require.True(t, CreateRoadGroup(south).SetLaneCountWithoutMedian(2, 2))
	require.NoError(t, model.Check())

	assert.Equal(t, 8, NewRnTracksBuilder().BuildTracks(inter))
	fromSouth := map[TurnType]*Track{}
	used := map[*Way]int{}
	for _, track := range inter.Tracks {
		if trackRoad(inter, track.FromBorder) != RoadBase(south) {
			continue
		}
		_, exists := fromSouth[track.TurnType]
		assert.False(t, exists, "turn type %s is used twice", track.TurnType)
		fromSouth[track.TurnType] = track
		used[track.FromBorder]++
	}
	require.Len(t, fromSouth, 2)
	require.Contains(t, fromSouth, TURN_LEFT)
	require.Contains(t, fromSouth, TURN_STRAIGHT)
	assert.Len(t, used, 2)

	// left lane turns west while right lane keeps going north
	_, leftFrom := fromSouth[TURN_LEFT].FromBorder.GetLerpPoint(0.5)
	_, straightFrom := fromSouth[TURN_STRAIGHT].FromBorder.GetLerpPoint(0.5)
	assert.Less(t, leftFrom.X, straightFrom.X)
}

func TestSeparateContinuousBorder(t *testing.T) {
	_, inter, _, _, _ := makeTJunction(t)
	// west border touches south border and north border directly
	assert.Equal(t, 2, inter.SeparateContinuousBorder())
	assert.True(t, inter.IsAligned())
	assert.Len(t, inter.Edges, 9)
	for i, e := range inter.Edges {
		next := inter.Edges[(i+1)%len(inter.Edges)]
		if e.IsBorder() && next.IsBorder() {
			assert.Equal(t, e.Road, next.Road)
		}
	}
	assert.Equal(t, 0, inter.SeparateContinuousBorder())
}

func TestCalibrateIntersectionBorder(t *testing.T) {
	model, inter, south, _, _ := makeTJunction(t)
	// borders are already straight and perpendicular
	assert.Equal(t, 0, model.CalibrateIntersectionBorder(2, 5))

	// skew south border by moving its corner shared with east outline edge
	right, ok := south.TryGetMergedSideWay(SIDE_RIGHT)
	require.True(t, ok)
	right.GetPoint(-1).Vector.Y = 1
	assert.Equal(t, 1, model.CalibrateIntersectionBorder(2, 5))
	assert.NoError(t, model.Check())
	merged := south.GetMergedBorder(LANE_BORDER_NEXT, LANE_BORDER_DIR_LEFT2RIGHT)
	require.NotNil(t, merged)
	assert.InDelta(t, -2, merged.GetVector(0).Y, 1e-6)
	assert.InDelta(t, -2, merged.GetVector(-1).Y, 1e-6)
	assert.True(t, inter.IsAligned())
	assert.Len(t, inter.FindEdges(nil), 3)
}
