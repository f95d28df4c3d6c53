package mesh2rn

import (
	"sort"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// OutlineResult is output of outline tracing
type OutlineResult struct {
	// Loops are closed vertex loops (first vertex is not repeated), one per connected component, counter-clockwise on graph plane
	Loops [][]VertexID
	// HasCrossing is set when some loop passes the same vertex twice or intersects itself
	HasCrossing bool
	// Failed is set when tracing could not close a loop (e.g. dangling edge)
	Failed bool
}

// Ok reports whether outline is a set of simple closed loops
func (res OutlineResult) Ok() bool {
	return !res.Failed && !res.HasCrossing && len(res.Loops) > 0
}

// ComputeOutline traces outer boundary of union of given faces
func (graph *Graph) ComputeOutline(faces []FaceID) OutlineResult {
	return graph.ComputeOutlineFiltered(faces, nil)
}

// ComputeOutlineFiltered traces outer boundary of union of given faces using only edges accepted by keep (nil keeps everything).
// Starting from the lowest-leftmost vertex of each connected component, walk always takes the sharpest right-hand turn
func (graph *Graph) ComputeOutlineFiltered(faces []FaceID, keep func(*Edge) bool) OutlineResult {
	adjacency := make(map[VertexID][]VertexID)
	edgeCount := 0
	seenEdges := make(map[EdgeID]struct{})
	for _, fid := range faces {
		face := graph.Face(fid)
		if face == nil {
			continue
		}
		for _, eid := range face.Edges {
			if _, ok := seenEdges[eid]; ok {
				continue
			}
			seenEdges[eid] = struct{}{}
			e := graph.edges[eid]
			if keep != nil && !keep(e) {
				continue
			}
			adjacency[e.V0], _ = insertSorted(adjacency[e.V0], e.V1)
			adjacency[e.V1], _ = insertSorted(adjacency[e.V1], e.V0)
			edgeCount++
		}
	}
	res := OutlineResult{}
	if edgeCount == 0 {
		res.Failed = true
		return res
	}
	for _, component := range graph.vertexComponents(adjacency) {
		loop, ok := graph.traceOutline(adjacency, component, edgeCount)
		if !ok {
			res.Failed = true
			continue
		}
		if hasRepeatedVertex(loop) || HasLoopSelfCrossing(graph.LoopPositions(loop), graph.plane()) {
			res.HasCrossing = true
		}
		res.Loops = append(res.Loops, loop)
	}
	return res
}

// ComputeOutlineVertices returns the first loop of outline as positions, clockwise on graph plane
func (graph *Graph) ComputeOutlineVertices(faces []FaceID, keep func(*Edge) bool) ([]VertexID, bool) {
	res := graph.ComputeOutlineFiltered(faces, keep)
	if !res.Ok() {
		return nil, false
	}
	// the component with the largest area wins
	loop := res.Loops[0]
	best := SignedArea2D(graph.LoopPositions(loop), graph.plane())
	for _, l := range res.Loops[1:] {
		if area := SignedArea2D(graph.LoopPositions(l), graph.plane()); area > best {
			best = area
			loop = l
		}
	}
	return reverseVertexLoop(loop), true
}

// LoopPositions returns positions of vertex loop
func (graph *Graph) LoopPositions(loop []VertexID) []r3.Vector {
	ans := make([]r3.Vector, len(loop))
	for i, vid := range loop {
		ans[i] = graph.Position(vid)
	}
	return ans
}

func (graph *Graph) vertexComponents(adjacency map[VertexID][]VertexID) [][]VertexID {
	keys := make([]VertexID, 0, len(adjacency))
	for k := range adjacency {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	visited := make(map[VertexID]struct{}, len(keys))
	ans := [][]VertexID{}
	for _, seed := range keys {
		if _, ok := visited[seed]; ok {
			continue
		}
		visited[seed] = struct{}{}
		component := []VertexID{}
		queue := []VertexID{seed}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			component = append(component, cur)
			for _, nb := range adjacency[cur] {
				if _, ok := visited[nb]; ok {
					continue
				}
				visited[nb] = struct{}{}
				queue = append(queue, nb)
			}
		}
		ans = append(ans, component)
	}
	return ans
}

func (graph *Graph) traceOutline(adjacency map[VertexID][]VertexID, component []VertexID, edgeCount int) ([]VertexID, bool) {
	plane := graph.plane()
	start := component[0]
	for _, vid := range component[1:] {
		p := ToVector2D(graph.Position(vid), plane)
		s := ToVector2D(graph.Position(start), plane)
		if p.X < s.X || (p.X == s.X && p.Y < s.Y) {
			start = vid
		}
	}
	type directed struct{ from, to VertexID }
	var first directed
	prev := NoVertex
	cur := start
	prevDir := r2.Point{X: 0, Y: -1}
	loop := []VertexID{}
	for step := 0; step <= 2*edgeCount+1; step++ {
		next := NoVertex
		bestAngle := 0.0
		curPos := ToVector2D(graph.Position(cur), plane)
		for _, nb := range adjacency[cur] {
			if nb == prev {
				continue
			}
			dir := ToVector2D(graph.Position(nb), plane).Sub(curPos)
			ang := SignedAngle2D(prevDir, dir)
			if ang <= -180+Epsilon {
				ang = 180
			}
			if next == NoVertex || ang < bestAngle {
				next = nb
				bestAngle = ang
			}
		}
		if next == NoVertex {
			// dead end
			return nil, false
		}
		d := directed{cur, next}
		if step == 0 {
			first = d
		} else if d == first {
			return loop, true
		}
		loop = append(loop, cur)
		prevDir = ToVector2D(graph.Position(next), plane).Sub(curPos)
		prev = cur
		cur = next
	}
	return nil, false
}

func hasRepeatedVertex(loop []VertexID) bool {
	seen := make(map[VertexID]struct{}, len(loop))
	for _, v := range loop {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

func reverseVertexLoop(loop []VertexID) []VertexID {
	ans := make([]VertexID, len(loop))
	for i := range loop {
		ans[len(loop)-1-i] = loop[i]
	}
	return ans
}
