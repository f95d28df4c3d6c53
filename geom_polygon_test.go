package mesh2rn

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvexHull(t *testing.T) {
	points := []r3.Vector{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		{X: 5, Y: 5}, {X: 2, Y: 7}, {X: 10, Y: 10.0000001},
	}
	hull := ComputeConvexHull(points, AXIS_PLANE_XY, 1e-3)
	require.Len(t, hull, 4)
	assert.False(t, IsClockwise(hull, AXIS_PLANE_XY))
	assert.InDelta(t, 100.0, SignedArea2D(hull, AXIS_PLANE_XY), 1e-6)
	assert.True(t, IsConvex(hull, AXIS_PLANE_XY))
	assert.InDelta(t, 360.0, CalcTotalAngle(hull, AXIS_PLANE_XY), 1e-6)

	assert.Empty(t, ComputeConvexHull(points[:2], AXIS_PLANE_XY, 1e-3))
	collinear := []r3.Vector{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
	assert.Empty(t, ComputeConvexHull(collinear, AXIS_PLANE_XY, 1e-3))
	dups := []r3.Vector{{X: 0}, {X: 0.0001}, {X: 5, Y: 5}}
	assert.Empty(t, ComputeConvexHull(dups, AXIS_PLANE_XY, 1e-3))
}

func TestRemoveSelfCrossing(t *testing.T) {
	// figure-eight like zig-zag: segment 0 crosses segment 2
	points := []r3.Vector{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}, {X: 5, Y: -5}, {X: 5, Y: -10},
	}
	require.True(t, HasSelfCrossing(points, AXIS_PLANE_XY))
	cleaned := RemoveSelfCrossingVectors(points, AXIS_PLANE_XY)
	assert.False(t, HasSelfCrossing(cleaned, AXIS_PLANE_XY))
	require.Len(t, cleaned, 4)
	assert.InDelta(t, 7.5, cleaned[1].X, 1e-9)
	assert.InDelta(t, 0.0, cleaned[1].Y, 1e-9)

	short := points[:3]
	assert.Equal(t, short, RemoveSelfCrossingVectors(short, AXIS_PLANE_XY))
}

func TestRemoveSelfCrossingSharedPoints(t *testing.T) {
	// bow-tie: first side crosses the third one at (5, 5)
	p0 := NewPoint(r3.Vector{X: 0, Y: 0, Z: 0})
	p1 := NewPoint(r3.Vector{X: 10, Y: 10, Z: 4})
	p2 := NewPoint(r3.Vector{X: 10, Y: 0, Z: 0})
	p3 := NewPoint(r3.Vector{X: 0, Y: 10, Z: 0})
	calls := 0
	cleaned := DetectAndRemoveSelfCrossing([]*Point{p0, p1, p2, p3},
		func(p *Point) r2.Point { return ToVector2D(p.Vector, AXIS_PLANE_XY) },
		func(a, b, c, d *Point, inter r2.Point, t1, t2 float64) *Point {
			calls++
			assert.Same(t, p0, a)
			assert.Same(t, p1, b)
			assert.Same(t, p2, c)
			assert.Same(t, p3, d)
			assert.InDelta(t, 5, inter.X, 1e-9)
			assert.InDelta(t, 5, inter.Y, 1e-9)
			assert.InDelta(t, 0.5, t1, 1e-9)
			assert.InDelta(t, 0.5, t2, 1e-9)
			return NewPoint(Lerp3(a.Vector, b.Vector, t1))
		},
	)
	assert.Equal(t, 1, calls)
	require.Len(t, cleaned, 3)
	assert.Same(t, p0, cleaned[0])
	assert.Same(t, p3, cleaned[2])
	assert.InDelta(t, 0, cleaned[1].Vector.Distance(r3.Vector{X: 5, Y: 5, Z: 2}), 1e-9)
}

func TestRemoveSelfCrossingRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for k := 0; k < 50; k++ {
		points := make([]r3.Vector, 12)
		for i := range points {
			points[i] = r3.Vector{X: rnd.Float64() * 100, Y: rnd.Float64() * 100}
		}
		cleaned := RemoveSelfCrossingVectors(points, AXIS_PLANE_XY)
		assert.False(t, HasSelfCrossing(cleaned, AXIS_PLANE_XY), "polyline #%d still crosses itself", k)
		assert.Equal(t, points[0], cleaned[0])
		assert.Equal(t, points[len(points)-1], cleaned[len(cleaned)-1])
	}
}

func TestIsCollinear(t *testing.T) {
	a := r3.Vector{X: 0, Y: 0}
	b := r3.Vector{X: 5, Y: 0.01}
	c := r3.Vector{X: 10, Y: 0}
	assert.True(t, IsCollinear(a, b, c, 1, -1))
	assert.True(t, IsCollinear(a, b, c, -1, 0.02))
	assert.False(t, IsCollinear(a, b, c, -1, 0.001))
	assert.False(t, IsCollinear(a, b, c, 0.1, -1))
	assert.False(t, IsCollinear(a, r3.Vector{X: 5, Y: 5}, c, 1, 0.5))
}

func TestPolygonContains(t *testing.T) {
	square := []r3.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	assert.True(t, PolygonContains2D(square, AXIS_PLANE_XY, r3.Vector{X: 5, Y: 5}))
	assert.False(t, PolygonContains2D(square, AXIS_PLANE_XY, r3.Vector{X: 15, Y: 5}))
}
