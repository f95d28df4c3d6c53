package mesh2rn

import (
	"github.com/pkg/errors"
)

// buildRoad handles group between two neighbours. Outline must alternate: prev border, left line, next border, right line
func (t *tran) buildRoad(w *work) (RoadBase, error) {
	t.rotateLines()
	if len(t.lines) != 4 || t.lines[1].neighbor != nil || t.lines[2].neighbor == nil || t.lines[3].neighbor != nil {
		return nil, errors.Wrap(ErrUnclassifiable, "road borders are not separated by side lines")
	}
	t.prevLine = t.lines[0]
	t.nextLine = t.lines[2]
	road := newRoadFromChains(w, t.group.Feature, t.lines[1].vertices, t.lines[3].vertices, t.prevLine.vertices, t.nextLine.vertices)
	return road, nil
}

// buildIntersection turns every outline line into intersection edge. Links to neighbours are set by BuildConnection
func (t *tran) buildIntersection(w *work) (RoadBase, error) {
	inter := NewIntersection(t.group.Feature)
	t.edges = make(map[*tranLine]*IntersectionEdge, len(t.lines))
	for _, line := range t.lines {
		edge := inter.AddEdge(nil, w.CreateWay(line.vertices))
		if edge == nil {
			continue
		}
		t.edges[line] = edge
	}
	if len(inter.Edges) < 3 {
		return nil, errors.Wrapf(ErrUnclassifiable, "intersection has %d edges", len(inter.Edges))
	}
	return inter, nil
}

// lineNeighbor returns road base across line. Untyped nil when there is none
func lineNeighbor(line *tranLine) RoadBase {
	if line == nil || line.neighbor == nil || line.neighbor.roadBase == nil {
		return nil
	}
	return line.neighbor.roadBase
}

// BuildConnection adds built road bases to model and links them with their neighbours. Returns number of added road bases
func BuildConnection(model *Model, trans []*tran) int {
	added := 0
	for _, t := range trans {
		switch rb := t.roadBase.(type) {
		case *Road:
			model.AddRoad(rb)
			added++
		case *Intersection:
			model.AddIntersection(rb)
			added++
		}
	}
	for _, t := range trans {
		switch rb := t.roadBase.(type) {
		case *Road:
			rb.SetPrevNext(lineNeighbor(t.prevLine), lineNeighbor(t.nextLine))
		case *Intersection:
			for _, line := range t.lines {
				edge, ok := t.edges[line]
				if !ok {
					continue
				}
				if nb := lineNeighbor(line); nb != nil {
					edge.Road = nb
				}
			}
			rb.Align()
		}
	}
	return added
}
