package mesh2rn

import (
	"strconv"
	"strings"
)

// work is per-run context of model construction. It makes ways built over the same vertex sequence
// share one line string and every graph vertex map to single point
type work struct {
	graph  *Graph
	points map[VertexID]*Point
	lines  map[string]*LineString
}

func newWork(graph *Graph) *work {
	return &work{
		graph:  graph,
		points: make(map[VertexID]*Point),
		lines:  make(map[string]*LineString),
	}
}

// point returns shared point of vertex
func (w *work) point(vid VertexID) *Point {
	if p, ok := w.points[vid]; ok {
		return p
	}
	p := NewPoint(w.graph.Position(vid))
	w.points[vid] = p
	return p
}

func vertexSequenceKey(vertices []VertexID) string {
	var key strings.Builder
	for i, vid := range vertices {
		if i > 0 {
			key.WriteByte(',')
		}
		key.WriteString(strconv.Itoa(int(vid)))
	}
	return key.String()
}

// CreateWay returns way over vertex sequence. Sequences equal forward or reversed share one line string,
// the reversed one gets IsReversed view
func (w *work) CreateWay(vertices []VertexID) *Way {
	if len(vertices) < 2 {
		return nil
	}
	if ls, ok := w.lines[vertexSequenceKey(vertices)]; ok {
		return NewWay(ls, false, false)
	}
	reversed := make([]VertexID, len(vertices))
	for i, vid := range vertices {
		reversed[len(vertices)-1-i] = vid
	}
	if ls, ok := w.lines[vertexSequenceKey(reversed)]; ok {
		return NewWay(ls, true, false)
	}
	points := make([]*Point, 0, len(vertices))
	for _, vid := range vertices {
		points = append(points, w.point(vid))
	}
	ls := &LineString{Points: points}
	w.lines[vertexSequenceKey(vertices)] = ls
	return NewWay(ls, false, false)
}
