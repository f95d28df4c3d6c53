package mesh2rn

import (
	"github.com/golang/geo/r3"
)

// DisconnectEdge removes edge from its faces and vertices and frees its slot
func (graph *Graph) DisconnectEdge(eid EdgeID) {
	edge := graph.Edge(eid)
	if edge == nil {
		return
	}
	for _, fid := range cloneIDs(edge.Faces) {
		graph.RemoveEdgeFromFace(fid, eid)
	}
	for _, vid := range []VertexID{edge.V0, edge.V1} {
		if v := graph.Vertex(vid); v != nil {
			v.Edges, _ = removeSorted(v.Edges, eid)
		}
	}
	edge.V0, edge.V1 = NoVertex, NoVertex
	graph.edges[eid] = nil
}

// DisconnectVertex removes vertex together with all incident edges
func (graph *Graph) DisconnectVertex(vid VertexID) {
	vertex := graph.Vertex(vid)
	if vertex == nil {
		return
	}
	for _, eid := range cloneIDs(vertex.Edges) {
		graph.DisconnectEdge(eid)
	}
	graph.vertices[vid] = nil
}

// RemoveFace unlinks face from its edges and frees its slot. Edges are kept
func (graph *Graph) RemoveFace(fid FaceID) {
	face := graph.Face(fid)
	if face == nil {
		return
	}
	for _, eid := range cloneIDs(face.Edges) {
		graph.RemoveEdgeFromFace(fid, eid)
	}
	graph.faces[fid] = nil
}

// ChangeVertex re-points edge endpoint from -> to.
// Returns false and leaves graph untouched if it would produce a loop edge
func (graph *Graph) ChangeVertex(eid EdgeID, from, to VertexID) bool {
	edge := graph.Edge(eid)
	vTo := graph.Vertex(to)
	if edge == nil || vTo == nil || !edge.HasVertex(from) || edge.Opposite(from) == to {
		return false
	}
	if vFrom := graph.Vertex(from); vFrom != nil {
		vFrom.Edges, _ = removeSorted(vFrom.Edges, eid)
	}
	if edge.V0 == from {
		edge.V0 = to
	} else {
		edge.V1 = to
	}
	vTo.Edges, _ = insertSorted(vTo.Edges, eid)
	return true
}

// MergeEdge moves all faces of src onto dst and disconnects src. Edges should connect the same vertices
func (graph *Graph) MergeEdge(src, dst EdgeID) {
	eSrc := graph.Edge(src)
	eDst := graph.Edge(dst)
	if eSrc == nil || eDst == nil || src == dst {
		return
	}
	for _, fid := range cloneIDs(eSrc.Faces) {
		graph.RemoveEdgeFromFace(fid, src)
		graph.AddEdgeToFace(fid, dst)
	}
	graph.DisconnectEdge(src)
}

// MergeVertex re-points every edge of src onto dst and removes src.
// Edge between src and dst collapses. If checkEdgeMerge is set, edges which become duplicates are merged into the existing ones
func (graph *Graph) MergeVertex(src, dst VertexID, checkEdgeMerge bool) {
	vSrc := graph.Vertex(src)
	vDst := graph.Vertex(dst)
	if vSrc == nil || vDst == nil || src == dst {
		return
	}
	for _, eid := range cloneIDs(vSrc.Edges) {
		edge := graph.edges[eid]
		if edge.Opposite(src) == dst {
			graph.DisconnectEdge(eid)
			continue
		}
		other := edge.Opposite(src)
		var existing EdgeID = NoEdge
		if checkEdgeMerge {
			existing = graph.FindEdge(other, dst)
		}
		graph.ChangeVertex(eid, src, dst)
		if existing != NoEdge {
			graph.MergeEdge(eid, existing)
		}
	}
	graph.vertices[src] = nil
}

// SplitEdge inserts vertex v into edge: edge keeps its first vertex and ends at v, another edge goes from v to former second vertex.
// Every face of edge receives the second edge. If either half coincides with an existing edge, they are merged.
// Returns the far half or NoEdge if split is not possible
func (graph *Graph) SplitEdge(eid EdgeID, v VertexID) EdgeID {
	edge := graph.Edge(eid)
	vertex := graph.Vertex(v)
	if edge == nil || vertex == nil || edge.HasVertex(v) || edge.State() == EDGE_STATE_DISCONNECTED {
		return NoEdge
	}
	far := edge.V1
	if !graph.ChangeVertex(eid, far, v) {
		return NoEdge
	}
	newID := graph.GetOrCreateEdge(v, far)
	for _, fid := range cloneIDs(edge.Faces) {
		graph.AddEdgeToFace(fid, newID)
	}
	if dup := graph.findOtherEdge(edge.V0, v, eid); dup != NoEdge {
		graph.MergeEdge(eid, dup)
	}
	return newID
}

// findOtherEdge returns edge connecting a and b other than exclude
func (graph *Graph) findOtherEdge(a, b VertexID, exclude EdgeID) EdgeID {
	va := graph.Vertex(a)
	if va == nil {
		return NoEdge
	}
	for _, eid := range va.Edges {
		if eid == exclude {
			continue
		}
		if e := graph.edges[eid]; e != nil && e.IsSameVertices(a, b) {
			return eid
		}
	}
	return NoEdge
}

// SplitEdgeAt creates vertex at pos and inserts it into edge. Returns new vertex and new edge
func (graph *Graph) SplitEdgeAt(eid EdgeID, pos r3.Vector) (VertexID, EdgeID) {
	if graph.Edge(eid) == nil {
		return NoVertex, NoEdge
	}
	v := graph.AddVertex(pos)
	newEdge := graph.SplitEdge(eid, v)
	if newEdge == NoEdge {
		graph.vertices[v] = nil
		return NoVertex, NoEdge
	}
	return v, newEdge
}

// RemoveIsolatedEdge removes edges without faces and vertices without edges. Returns number of removed edges
func (graph *Graph) RemoveIsolatedEdge() int {
	removed := 0
	for _, e := range graph.Edges() {
		if e.State() == EDGE_STATE_ISOLATED {
			graph.DisconnectEdge(e.ID)
			removed++
		}
	}
	for _, v := range graph.Vertices() {
		if len(v.Edges) == 0 {
			graph.vertices[v.ID] = nil
		}
	}
	return removed
}

// RemoveIsolatedEdgeFromFace removes dangling edges of faces: edges with endpoint touched by no other edge of the same face.
// Repeats until nothing changes. Returns number of unlinked (face, edge) pairs
func (graph *Graph) RemoveIsolatedEdgeFromFace() int {
	removed := 0
	for {
		changed := false
		for _, face := range graph.Faces() {
			degree := make(map[VertexID]int, len(face.Edges)*2)
			for _, eid := range face.Edges {
				e := graph.edges[eid]
				degree[e.V0]++
				degree[e.V1]++
			}
			for _, eid := range cloneIDs(face.Edges) {
				e := graph.edges[eid]
				if degree[e.V0] > 1 && degree[e.V1] > 1 {
					continue
				}
				graph.RemoveEdgeFromFace(face.ID, eid)
				degree[e.V0]--
				degree[e.V1]--
				removed++
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	graph.RemoveIsolatedEdge()
	return removed
}

// RemoveInnerVertex removes vertices of face which are not on its outline and belong to this face only.
// Edges of such vertices are removed too. Repeats until nothing changes. Returns number of removed vertices
func (graph *Graph) RemoveInnerVertex(fid FaceID) int {
	removed := 0
	for {
		face := graph.Face(fid)
		if face == nil {
			return removed
		}
		outline := graph.ComputeOutline([]FaceID{fid})
		if outline.Failed {
			return removed
		}
		onOutline := make(map[VertexID]struct{})
		for _, loop := range outline.Loops {
			for _, v := range loop {
				onOutline[v] = struct{}{}
			}
		}
		candidate := NoVertex
		for _, vid := range graph.FaceVertices(fid) {
			if _, ok := onOutline[vid]; ok {
				continue
			}
			faces := graph.VertexFaces(vid)
			if len(faces) == 1 && faces[0] == fid {
				candidate = vid
				break
			}
		}
		if candidate == NoVertex {
			return removed
		}
		graph.DisconnectVertex(candidate)
		removed++
	}
}

// MergeIsolatedVertex bridges every vertex of face having exactly two edges whose other ends are not connected:
// the other ends get a direct edge shared by faces of both old edges and the vertex is removed.
// Returns number of removed vertices
func (graph *Graph) MergeIsolatedVertex(fid FaceID) int {
	removed := 0
	for _, vid := range graph.FaceVertices(fid) {
		vertex := graph.Vertex(vid)
		if vertex == nil || len(vertex.Edges) != 2 {
			continue
		}
		e0 := graph.edges[vertex.Edges[0]]
		e1 := graph.edges[vertex.Edges[1]]
		a, c := e0.Opposite(vid), e1.Opposite(vid)
		if a == NoVertex || c == NoVertex || a == c || graph.FindEdge(a, c) != NoEdge {
			continue
		}
		faces := cloneIDs(e0.Faces)
		for _, f := range e1.Faces {
			faces, _ = insertSorted(faces, f)
		}
		bridge := graph.GetOrCreateEdge(a, c)
		for _, f := range faces {
			graph.AddEdgeToFace(f, bridge)
		}
		graph.DisconnectVertex(vid)
		removed++
	}
	return removed
}

// MergeIsolatedVertices runs MergeIsolatedVertex for every face. Returns number of removed vertices
func (graph *Graph) MergeIsolatedVertices() int {
	removed := 0
	for _, face := range graph.Faces() {
		removed += graph.MergeIsolatedVertex(face.ID)
	}
	return removed
}

// RemoveCollinearVertex joins two edges of vertex v into one if v has exactly two edges with the same faces
// and v is collinear with its neighbours. Returns true if vertex has been removed
func (graph *Graph) RemoveCollinearVertex(v VertexID, angleEpsilonDeg, distEpsilon float64) bool {
	vertex := graph.Vertex(v)
	if vertex == nil || len(vertex.Edges) != 2 {
		return false
	}
	e0 := graph.edges[vertex.Edges[0]]
	e1 := graph.edges[vertex.Edges[1]]
	if !sameFaces(e0.Faces, e1.Faces) {
		return false
	}
	a := e0.Opposite(v)
	c := e1.Opposite(v)
	if a == c || graph.FindEdge(a, c) != NoEdge {
		return false
	}
	if !IsCollinear(graph.Position(a), vertex.Position, graph.Position(c), angleEpsilonDeg, distEpsilon) {
		return false
	}
	graph.DisconnectEdge(e1.ID)
	graph.ChangeVertex(e0.ID, v, c)
	graph.vertices[v] = nil
	return true
}

// EdgeReduction removes collinear midpoints until nothing changes. Returns number of removed vertices
func (graph *Graph) EdgeReduction(angleEpsilonDeg, distEpsilon float64) int {
	removed := 0
	for {
		changed := false
		for _, v := range graph.Vertices() {
			if graph.RemoveCollinearVertex(v.ID, angleEpsilonDeg, distEpsilon) {
				removed++
				changed = true
			}
		}
		if !changed {
			return removed
		}
	}
}

func sameFaces(a, b []FaceID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
