package mesh2rn

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentIntersection2D(t *testing.T) {
	a := Segment2D{Start: r2.Point{X: 0, Y: 0}, End: r2.Point{X: 10, Y: 0}}
	b := Segment2D{Start: r2.Point{X: 5, Y: -5}, End: r2.Point{X: 5, Y: 5}}
	p, t1, t2, ok := a.TrySegmentIntersection(b)
	require.True(t, ok)
	assert.InDelta(t, 5.0, p.X, 1e-9)
	assert.InDelta(t, 0.0, p.Y, 1e-9)
	assert.InDelta(t, 0.5, t1, 1e-9)
	assert.InDelta(t, 0.5, t2, 1e-9)

	c := Segment2D{Start: r2.Point{X: 20, Y: -5}, End: r2.Point{X: 20, Y: 5}}
	_, _, _, ok = a.TrySegmentIntersection(c)
	assert.False(t, ok)
	_, t1, _, ok = a.TryHalfLineIntersection(c)
	require.True(t, ok)
	assert.InDelta(t, 2.0, t1, 1e-9)

	parallel := Segment2D{Start: r2.Point{X: 0, Y: 1}, End: r2.Point{X: 10, Y: 1}}
	_, _, _, ok = a.TrySegmentIntersection(parallel)
	assert.False(t, ok)
	assert.InDelta(t, 1.0, a.GetSegmentDistance(parallel), 1e-9)
	assert.InDelta(t, 0.0, a.GetSegmentDistance(b), 1e-9)
}

func TestSegmentIntersectionBy2DNormalTolerance(t *testing.T) {
	a := Segment3D{Start: r3.Vector{X: 0, Y: 0, Z: 0}, End: r3.Vector{X: 10, Y: 0, Z: 0}}
	b := Segment3D{Start: r3.Vector{X: 5, Y: -5, Z: 1}, End: r3.Vector{X: 5, Y: 5, Z: 1}}

	p, _, _, ok := a.TrySegmentIntersectionBy2D(b, AXIS_PLANE_XY, -1)
	require.True(t, ok)
	assert.InDelta(t, 0.5, p.Z, 1e-9)

	_, _, _, ok = a.TrySegmentIntersectionBy2D(b, AXIS_PLANE_XY, 0.5)
	assert.False(t, ok)

	_, _, _, ok = a.TrySegmentIntersectionBy2D(b, AXIS_PLANE_XY, 1.5)
	assert.True(t, ok)
}

func TestSegmentNearestPoint(t *testing.T) {
	seg := Segment3D{Start: r3.Vector{}, End: r3.Vector{X: 10}}
	assert.Equal(t, r3.Vector{X: 3}, seg.GetNearestPoint(r3.Vector{X: 3, Y: 4}))
	assert.Equal(t, r3.Vector{X: 10}, seg.GetNearestPoint(r3.Vector{X: 30, Y: 4}))
	assert.InDelta(t, 5.0, seg.GetDistance(r3.Vector{X: -3, Y: 4}), 1e-9)
	assert.Equal(t, seg, seg.Reversed().Reversed())
}
