package mesh2rn

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWayDoubleReversal(t *testing.T) {
	ls := NewLineStringFromVectors([]r3.Vector{{X: 0}, {X: 5, Y: 1}, {X: 10}})
	way := NewWay(ls, false, false)
	back := way.ReversedWay().ReversedWay()
	assert.True(t, way.IsSameLineSequence(back))
	assert.True(t, way.IsSameLineReference(back))
	assert.Equal(t, way.IsReverseNormal, back.IsReverseNormal)

	reversed := way.ReversedWay()
	assert.Equal(t, r3.Vector{X: 10}, reversed.GetVector(0))
	assert.Equal(t, r3.Vector{X: 0}, reversed.GetVector(-1))
	// normal keeps its side in space
	assert.InDelta(t, way.GetEdgeNormal(0).Y, reversed.GetEdgeNormal(-1).Y, 1e-9)
}

func TestWayToRawIndex(t *testing.T) {
	ls := NewLineStringFromVectors([]r3.Vector{{X: 0}, {X: 1}, {X: 2}, {X: 3}})
	way := NewWay(ls, false, false)
	assert.Equal(t, 3, way.ToRawIndex(-1))
	assert.Equal(t, 1, way.ToRawIndex(1))
	way.Reverse(false)
	assert.Equal(t, 0, way.ToRawIndex(-1))
	assert.Equal(t, 3, way.ToRawIndex(0))
	assert.Equal(t, r3.Vector{X: 2}, way.GetVector(1))
}

func TestWayNormals(t *testing.T) {
	ls := NewLineStringFromVectors([]r3.Vector{{X: 0}, {X: 10}})
	left := NewWay(ls, false, false)
	right := NewWay(ls, false, true)
	assert.InDelta(t, 1, left.GetEdgeNormal(0).Y, 1e-9)
	assert.InDelta(t, -1, right.GetEdgeNormal(0).Y, 1e-9)
	assert.True(t, left.IsOutSide(r3.Vector{X: 5, Y: 1}))
	assert.False(t, left.IsOutSide(r3.Vector{X: 5, Y: -1}))
	assert.True(t, right.IsOutSide(r3.Vector{X: 5, Y: -1}))
}

func TestWayMoveAlongNormal(t *testing.T) {
	ls := NewLineStringFromVectors([]r3.Vector{{X: 0}, {X: 10}, {X: 10, Y: 10}})
	way := NewWay(ls, false, false)
	other := NewWay(ls, true, false)
	way.MoveAlongNormal(1)
	assert.InDelta(t, 1, way.GetVector(0).Y, 1e-9)
	assert.InDelta(t, 9, way.GetVector(1).X, 1e-9)
	assert.InDelta(t, 1, way.GetVector(1).Y, 1e-9)
	// shared line string sees the change
	assert.InDelta(t, 9, other.GetVector(1).X, 1e-9)
}

func TestWayAppend(t *testing.T) {
	shared := NewPoint(r3.Vector{X: 10})
	a := NewWay(NewLineString(NewPoint(r3.Vector{X: 0}), shared), false, false)
	b := NewWay(NewLineString(shared, NewPoint(r3.Vector{X: 20})), false, false)
	a.AppendBack(b)
	require.Equal(t, 3, a.Count())
	assert.InDelta(t, 20, a.CalcLength(), 1e-9)

	c := NewWay(NewLineString(NewPoint(r3.Vector{X: 30}), NewPoint(r3.Vector{X: 20})), true, false)
	d := NewWay(NewLineString(NewPoint(r3.Vector{X: 30}), NewPoint(r3.Vector{X: 40})), false, false)
	c.AppendBack(d)
	assert.Equal(t, []r3.Vector{{X: 20}, {X: 30}, {X: 40}}, c.Vectors())
}

func TestLineStringSplit(t *testing.T) {
	ls := NewLineStringFromVectors([]r3.Vector{{Y: 10}, {Y: 0}})
	pieces := ls.Split(3, true, nil)
	require.Len(t, pieces, 3)
	total := 0.0
	for i, p := range pieces {
		assert.InDelta(t, 10.0/3, p.CalcLength(), 1e-9)
		total += p.CalcLength()
		if i > 0 {
			assert.Same(t, pieces[i-1].Points[len(pieces[i-1].Points)-1], p.Points[0])
		}
	}
	assert.InDelta(t, 10, total, 1e-9)

	rated := ls.Split(2, true, func(i int) float64 {
		return []float64{1, 3}[i]
	})
	require.Len(t, rated, 2)
	assert.InDelta(t, 2.5, rated[0].CalcLength(), 1e-9)
	assert.InDelta(t, 7.5, rated[1].CalcLength(), 1e-9)

	// cut lying near existing vertex reuses it
	bent := NewLineStringFromVectors([]r3.Vector{{X: 0}, {X: 5.05}, {X: 10}})
	halves := bent.Split(2, true, nil)
	require.Len(t, halves, 2)
	assert.Same(t, bent.Points[1], halves[0].Points[1])
}
