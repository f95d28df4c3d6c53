package mesh2rn

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// EdgeState is lifecycle state of graph Edge
type EdgeState uint16

const (
	// Edge has both vertices and at least one face
	EDGE_STATE_CONNECTED = EdgeState(iota + 1)
	// Edge has both vertices, but no faces
	EDGE_STATE_ISOLATED
	// Edge has been removed from its vertices
	EDGE_STATE_DISCONNECTED

	EDGE_STATE_UNDEFINED = EdgeState(0)
)

func (iotaIdx EdgeState) String() string {
	return [...]string{"undefined", "connected", "isolated", "disconnected"}[iotaIdx]
}

// Vertex is graph node. Edges is sorted set of incident edges
type Vertex struct {
	ID       VertexID
	Position r3.Vector
	Edges    []EdgeID
}

// Edge connects two vertices and is shared by faces. Faces is sorted set
type Edge struct {
	ID    EdgeID
	V0    VertexID
	V1    VertexID
	Faces []FaceID
}

// State returns current lifecycle state of edge
func (edge *Edge) State() EdgeState {
	if edge.V0 == NoVertex || edge.V1 == NoVertex {
		return EDGE_STATE_DISCONNECTED
	}
	if len(edge.Faces) == 0 {
		return EDGE_STATE_ISOLATED
	}
	return EDGE_STATE_CONNECTED
}

// HasVertex reports whether v is one of edge endpoints
func (edge *Edge) HasVertex(v VertexID) bool {
	return edge.V0 == v || edge.V1 == v
}

// Opposite returns other endpoint of edge. Returns NoVertex if v is not an endpoint
func (edge *Edge) Opposite(v VertexID) VertexID {
	switch v {
	case edge.V0:
		return edge.V1
	case edge.V1:
		return edge.V0
	default:
		return NoVertex
	}
}

// IsSameVertices reports whether edge connects a and b (in any order)
func (edge *Edge) IsSameVertices(a, b VertexID) bool {
	return (edge.V0 == a && edge.V1 == b) || (edge.V0 == b && edge.V1 == a)
}

// Face is polygonal area of single source feature. Edges is sorted set of boundary edges
type Face struct {
	ID       FaceID
	Edges    []EdgeID
	RoadType RoadType
	LodLevel int
	Feature  *Feature
}

// Graph is planar subdivision. Vertices, edges and faces live in arenas addressed by IDs; removed entity leaves nil slot
type Graph struct {
	// Plane is used for every planar computation on graph. Zero value means XY
	Plane AxisPlane

	vertices []*Vertex
	edges    []*Edge
	faces    []*Face
}

// NewGraph returns empty graph
func NewGraph() *Graph {
	return &Graph{}
}

func (graph *Graph) String() string {
	return fmt.Sprintf("Graph(vertices: %d, edges: %d, faces: %d)", graph.VertexCount(), graph.EdgeCount(), graph.FaceCount())
}

func (graph *Graph) plane() AxisPlane {
	if graph.Plane == AXIS_PLANE_UNDEFINED {
		return AXIS_PLANE_XY
	}
	return graph.Plane
}

// AddVertex creates new vertex at pos
func (graph *Graph) AddVertex(pos r3.Vector) VertexID {
	id := VertexID(len(graph.vertices))
	graph.vertices = append(graph.vertices, &Vertex{ID: id, Position: pos})
	return id
}

// Vertex returns vertex by ID or nil if it does not exist
func (graph *Graph) Vertex(id VertexID) *Vertex {
	if id < 0 || int(id) >= len(graph.vertices) {
		return nil
	}
	return graph.vertices[id]
}

// Edge returns edge by ID or nil if it does not exist
func (graph *Graph) Edge(id EdgeID) *Edge {
	if id < 0 || int(id) >= len(graph.edges) {
		return nil
	}
	return graph.edges[id]
}

// Face returns face by ID or nil if it does not exist
func (graph *Graph) Face(id FaceID) *Face {
	if id < 0 || int(id) >= len(graph.faces) {
		return nil
	}
	return graph.faces[id]
}

// Vertices returns alive vertices ordered by ID
func (graph *Graph) Vertices() []*Vertex {
	ans := make([]*Vertex, 0, len(graph.vertices))
	for _, v := range graph.vertices {
		if v != nil {
			ans = append(ans, v)
		}
	}
	return ans
}

// Edges returns alive edges ordered by ID
func (graph *Graph) Edges() []*Edge {
	ans := make([]*Edge, 0, len(graph.edges))
	for _, e := range graph.edges {
		if e != nil {
			ans = append(ans, e)
		}
	}
	return ans
}

// Faces returns alive faces ordered by ID
func (graph *Graph) Faces() []*Face {
	ans := make([]*Face, 0, len(graph.faces))
	for _, f := range graph.faces {
		if f != nil {
			ans = append(ans, f)
		}
	}
	return ans
}

func (graph *Graph) VertexCount() int {
	n := 0
	for _, v := range graph.vertices {
		if v != nil {
			n++
		}
	}
	return n
}

func (graph *Graph) EdgeCount() int {
	n := 0
	for _, e := range graph.edges {
		if e != nil {
			n++
		}
	}
	return n
}

func (graph *Graph) FaceCount() int {
	n := 0
	for _, f := range graph.faces {
		if f != nil {
			n++
		}
	}
	return n
}

// Position returns position of vertex (zero vector for missing one)
func (graph *Graph) Position(id VertexID) r3.Vector {
	if v := graph.Vertex(id); v != nil {
		return v.Position
	}
	return r3.Vector{}
}

// FindEdge returns edge connecting a and b or NoEdge
func (graph *Graph) FindEdge(a, b VertexID) EdgeID {
	va := graph.Vertex(a)
	if va == nil {
		return NoEdge
	}
	for _, eid := range va.Edges {
		if e := graph.edges[eid]; e != nil && e.IsSameVertices(a, b) {
			return eid
		}
	}
	return NoEdge
}

// GetOrCreateEdge returns existing edge between a and b or creates new one. Returns NoEdge for degenerate input
func (graph *Graph) GetOrCreateEdge(a, b VertexID) EdgeID {
	if a == b || graph.Vertex(a) == nil || graph.Vertex(b) == nil {
		return NoEdge
	}
	if eid := graph.FindEdge(a, b); eid != NoEdge {
		return eid
	}
	id := EdgeID(len(graph.edges))
	graph.edges = append(graph.edges, &Edge{ID: id, V0: a, V1: b})
	graph.vertices[a].Edges, _ = insertSorted(graph.vertices[a].Edges, id)
	graph.vertices[b].Edges, _ = insertSorted(graph.vertices[b].Edges, id)
	return id
}

// AddFace creates face bounded by given edges
func (graph *Graph) AddFace(edges []EdgeID, roadType RoadType, lod int, feature *Feature) FaceID {
	id := FaceID(len(graph.faces))
	face := &Face{ID: id, RoadType: roadType, LodLevel: lod, Feature: feature}
	graph.faces = append(graph.faces, face)
	for _, eid := range edges {
		graph.AddEdgeToFace(id, eid)
	}
	return id
}

// AddFaceFromLoop creates edges along closed vertex loop and face bounded by them
func (graph *Graph) AddFaceFromLoop(loop []VertexID, roadType RoadType, lod int, feature *Feature) FaceID {
	edges := make([]EdgeID, 0, len(loop))
	for i := range loop {
		eid := graph.GetOrCreateEdge(loop[i], loop[(i+1)%len(loop)])
		if eid != NoEdge {
			edges = append(edges, eid)
		}
	}
	return graph.AddFace(edges, roadType, lod, feature)
}

// AddEdgeToFace links edge and face symmetrically
func (graph *Graph) AddEdgeToFace(fid FaceID, eid EdgeID) {
	face := graph.Face(fid)
	edge := graph.Edge(eid)
	if face == nil || edge == nil {
		return
	}
	face.Edges, _ = insertSorted(face.Edges, eid)
	edge.Faces, _ = insertSorted(edge.Faces, fid)
}

// RemoveEdgeFromFace unlinks edge and face symmetrically. Edge stays in graph
func (graph *Graph) RemoveEdgeFromFace(fid FaceID, eid EdgeID) {
	face := graph.Face(fid)
	edge := graph.Edge(eid)
	if face == nil || edge == nil {
		return
	}
	face.Edges, _ = removeSorted(face.Edges, eid)
	edge.Faces, _ = removeSorted(edge.Faces, fid)
}

// NeighborVertices returns vertices sharing an edge with v
func (graph *Graph) NeighborVertices(v VertexID) []VertexID {
	vertex := graph.Vertex(v)
	if vertex == nil {
		return nil
	}
	ans := make([]VertexID, 0, len(vertex.Edges))
	for _, eid := range vertex.Edges {
		if e := graph.edges[eid]; e != nil {
			if o := e.Opposite(v); o != NoVertex {
				ans, _ = insertSorted(ans, o)
			}
		}
	}
	return ans
}

// VertexFaces returns faces touching vertex v
func (graph *Graph) VertexFaces(v VertexID) []FaceID {
	vertex := graph.Vertex(v)
	if vertex == nil {
		return nil
	}
	ans := []FaceID{}
	for _, eid := range vertex.Edges {
		for _, fid := range graph.edges[eid].Faces {
			ans, _ = insertSorted(ans, fid)
		}
	}
	return ans
}

// FaceVertices returns vertices of face edges ordered by ID
func (graph *Graph) FaceVertices(fid FaceID) []VertexID {
	face := graph.Face(fid)
	if face == nil {
		return nil
	}
	ans := []VertexID{}
	for _, eid := range face.Edges {
		e := graph.edges[eid]
		ans, _ = insertSorted(ans, e.V0)
		ans, _ = insertSorted(ans, e.V1)
	}
	return ans
}

// NeighborFaces returns faces sharing at least one edge with face fid
func (graph *Graph) NeighborFaces(fid FaceID) []FaceID {
	face := graph.Face(fid)
	if face == nil {
		return nil
	}
	ans := []FaceID{}
	for _, eid := range face.Edges {
		for _, other := range graph.edges[eid].Faces {
			if other != fid {
				ans, _ = insertSorted(ans, other)
			}
		}
	}
	return ans
}

// EdgeSegment returns geometry of edge
func (graph *Graph) EdgeSegment(eid EdgeID) Segment3D {
	e := graph.Edge(eid)
	if e == nil {
		return Segment3D{}
	}
	return Segment3D{Start: graph.Position(e.V0), End: graph.Position(e.V1)}
}

// Validate panics if any cross reference between vertices, edges and faces is broken
func (graph *Graph) Validate() {
	for _, v := range graph.vertices {
		if v == nil {
			continue
		}
		for _, eid := range v.Edges {
			e := graph.Edge(eid)
			if e == nil || !e.HasVertex(v.ID) {
				panic(fmt.Sprintf("structural invariant violation: vertex %d references edge %d which does not reference it", v.ID, eid))
			}
		}
	}
	for _, e := range graph.edges {
		if e == nil {
			continue
		}
		for _, vid := range []VertexID{e.V0, e.V1} {
			v := graph.Vertex(vid)
			if v == nil || !containsSorted(v.Edges, e.ID) {
				panic(fmt.Sprintf("structural invariant violation: edge %d references vertex %d which does not reference it", e.ID, vid))
			}
		}
		if e.V0 == e.V1 {
			panic(fmt.Sprintf("structural invariant violation: edge %d is a loop", e.ID))
		}
		for _, fid := range e.Faces {
			f := graph.Face(fid)
			if f == nil || !containsSorted(f.Edges, e.ID) {
				panic(fmt.Sprintf("structural invariant violation: edge %d references face %d which does not reference it", e.ID, fid))
			}
		}
	}
	for _, f := range graph.faces {
		if f == nil {
			continue
		}
		for _, eid := range f.Edges {
			e := graph.Edge(eid)
			if e == nil || !containsSorted(e.Faces, f.ID) {
				panic(fmt.Sprintf("structural invariant violation: face %d references edge %d which does not reference it", f.ID, eid))
			}
		}
	}
}
