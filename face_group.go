package mesh2rn

import (
	"sort"
)

// FaceGroup is connected set of faces of one source feature, which are equivalent by some predicate
type FaceGroup struct {
	Graph   *Graph
	Feature *Feature
	Faces   []FaceID
}

// RoadTypes returns union of road types of group faces
func (group *FaceGroup) RoadTypes() RoadType {
	mask := ROAD_TYPE_EMPTY
	for _, fid := range group.Faces {
		if f := group.Graph.Face(fid); f != nil {
			mask |= f.RoadType
		}
	}
	return mask
}

// LodLevel returns maximal LOD among faces
func (group *FaceGroup) LodLevel() int {
	lod := 0
	for _, fid := range group.Faces {
		if f := group.Graph.Face(fid); f != nil && f.LodLevel > lod {
			lod = f.LodLevel
		}
	}
	return lod
}

// Contains reports whether face is in group
func (group *FaceGroup) Contains(fid FaceID) bool {
	return containsSorted(group.Faces, fid)
}

// Edges returns union of face edges ordered by ID
func (group *FaceGroup) Edges() []EdgeID {
	ans := []EdgeID{}
	for _, fid := range group.Faces {
		if f := group.Graph.Face(fid); f != nil {
			for _, eid := range f.Edges {
				ans, _ = insertSorted(ans, eid)
			}
		}
	}
	return ans
}

// CountFaces returns number of faces carrying given road type bits
func (group *FaceGroup) CountFaces(flag RoadType) int {
	n := 0
	for _, fid := range group.Faces {
		if f := group.Graph.Face(fid); f != nil && f.RoadType.HasAny(flag) {
			n++
		}
	}
	return n
}

// ComputeOutline traces outline of the group
func (group *FaceGroup) ComputeOutline() OutlineResult {
	return group.Graph.ComputeOutline(group.Faces)
}

// GroupBy splits faces into connected groups: two faces end in the same group when they have the same source feature,
// share an edge and isMatch holds for them. Groups and their faces are ordered by face ID
func GroupBy(graph *Graph, isMatch func(a, b *Face) bool) []*FaceGroup {
	if isMatch == nil {
		return nil
	}
	visited := make(map[FaceID]struct{})
	ans := []*FaceGroup{}
	for _, seed := range graph.Faces() {
		if _, ok := visited[seed.ID]; ok {
			continue
		}
		visited[seed.ID] = struct{}{}
		group := &FaceGroup{Graph: graph, Feature: seed.Feature}
		queue := []FaceID{seed.ID}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			group.Faces, _ = insertSorted(group.Faces, cur)
			curFace := graph.faces[cur]
			for _, nb := range graph.NeighborFaces(cur) {
				if _, ok := visited[nb]; ok {
					continue
				}
				nbFace := graph.faces[nb]
				if nbFace.Feature != curFace.Feature || !isMatch(curFace, nbFace) {
					continue
				}
				visited[nb] = struct{}{}
				queue = append(queue, nb)
			}
		}
		ans = append(ans, group)
	}
	return ans
}

// GroupBySameClass groups faces with IsSameClass predicate
func GroupBySameClass(graph *Graph) []*FaceGroup {
	return GroupBy(graph, func(a, b *Face) bool {
		return IsSameClass(a.RoadType, b.RoadType)
	})
}

// SeparateFaces splits every face whose edges form several connected components.
// The face keeps the first component (by smallest edge ID), new faces with the same attributes are created for others.
// Returns number of created faces
func (graph *Graph) SeparateFaces() int {
	created := 0
	for _, face := range graph.Faces() {
		components := graph.edgeComponents(face.Edges)
		if len(components) < 2 {
			continue
		}
		for _, component := range components[1:] {
			for _, eid := range component {
				graph.RemoveEdgeFromFace(face.ID, eid)
			}
			graph.AddFace(component, face.RoadType, face.LodLevel, face.Feature)
			created++
		}
	}
	return created
}

// edgeComponents splits edges into components connected through shared vertices
func (graph *Graph) edgeComponents(edges []EdgeID) [][]EdgeID {
	byVertex := make(map[VertexID][]EdgeID)
	for _, eid := range edges {
		e := graph.edges[eid]
		byVertex[e.V0] = append(byVertex[e.V0], eid)
		byVertex[e.V1] = append(byVertex[e.V1], eid)
	}
	visited := make(map[EdgeID]struct{}, len(edges))
	ans := [][]EdgeID{}
	for _, seed := range edges {
		if _, ok := visited[seed]; ok {
			continue
		}
		visited[seed] = struct{}{}
		component := []EdgeID{}
		queue := []EdgeID{seed}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			component = append(component, cur)
			e := graph.edges[cur]
			for _, vid := range []VertexID{e.V0, e.V1} {
				for _, nb := range byVertex[vid] {
					if _, ok := visited[nb]; ok {
						continue
					}
					visited[nb] = struct{}{}
					queue = append(queue, nb)
				}
			}
		}
		sort.Slice(component, func(i, j int) bool { return component[i] < component[j] })
		ans = append(ans, component)
	}
	return ans
}
