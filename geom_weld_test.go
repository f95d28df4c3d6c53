package mesh2rn

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeldVertices(t *testing.T) {
	points := []r3.Vector{
		{X: 0.01, Y: 0.01}, {X: 0.02, Y: 0.03},
		{X: 5.01, Y: 5.01},
	}
	welded := WeldVertices(points, 0.1, 1)
	require.Len(t, welded, 3)
	assert.Equal(t, welded[points[0]], welded[points[1]])
	assert.InDelta(t, 0.015, welded[points[0]].X, 1e-9)
	assert.Equal(t, points[2], welded[points[2]])
}

func TestWeldVerticesNeighbourCells(t *testing.T) {
	// points lie in adjacent cells
	points := []r3.Vector{{X: 0.09}, {X: 0.11}}
	welded := WeldVertices(points, 0.1, 1)
	assert.Equal(t, welded[points[0]], welded[points[1]])

	welded = WeldVertices(points, 0.1, 0)
	assert.NotEqual(t, welded[points[0]], welded[points[1]])
}

func TestWeldVerticesIdempotence(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	points := make([]r3.Vector, 200)
	for i := range points {
		points[i] = r3.Vector{X: rnd.Float64() * 5, Y: rnd.Float64() * 5, Z: rnd.Float64() * 0.2}
	}
	first := WeldVerticesFixedPoint(points, 0.3, 1)
	welded := make([]r3.Vector, 0, len(points))
	for _, p := range points {
		welded = append(welded, first[p])
	}
	second := WeldVerticesFixedPoint(welded, 0.3, 1)
	for _, p := range welded {
		assert.Equal(t, p, second[p])
	}
}

func TestRemoveCollinearPoints(t *testing.T) {
	line := []r3.Vector{{X: 0}, {X: 5, Y: 0.01}, {X: 10}, {X: 10, Y: 10}}
	ans := RemoveCollinearPoints(line, 1, -1)
	assert.Equal(t, []r3.Vector{{X: 0}, {X: 10}, {X: 10, Y: 10}}, ans)
}

func TestInnerLerpSegments(t *testing.T) {
	left := []r3.Vector{{X: 0, Y: 10}, {X: 10, Y: 10}}
	right := []r3.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}}
	mid := GetInnerLerpSegments(left, right, AXIS_PLANE_XY, 0.5, 3)
	assert.Equal(t, []r3.Vector{{X: 0, Y: 5}, {X: 10, Y: 5}}, mid)

	left = []r3.Vector{{X: 0, Y: 10}, {X: 5, Y: 10}, {X: 10, Y: 10}}
	mid = GetInnerLerpSegments(left, right, AXIS_PLANE_XY, 0.25, 3)
	require.NotEmpty(t, mid)
	for _, p := range mid {
		assert.InDelta(t, 7.5, p.Y, 1e-9)
	}
	assert.InDelta(t, 10.0, PolylineLength(mid), 1e-9)
}
