package mesh2rn

import (
	"sort"

	"github.com/golang/geo/r3"
	"github.com/peterstace/simplefeatures/rtree"
)

func boxAround(v r3.Vector, plane AxisPlane, radius float64) rtree.Box {
	p := ToVector2D(v, plane)
	return rtree.Box{MinX: p.X - radius, MinY: p.Y - radius, MaxX: p.X + radius, MaxY: p.Y + radius}
}

func segmentBox(seg Segment3D, plane AxisPlane, pad float64) rtree.Box {
	a := ToVector2D(seg.Start, plane)
	b := ToVector2D(seg.End, plane)
	return rtree.Box{
		MinX: min(a.X, b.X) - pad,
		MinY: min(a.Y, b.Y) - pad,
		MaxX: max(a.X, b.X) + pad,
		MaxY: max(a.Y, b.Y) + pad,
	}
}

// vertexIndex is static spatial index over graph vertices
type vertexIndex struct {
	graph *Graph
	tree  *rtree.RTree
}

func newVertexIndex(graph *Graph) *vertexIndex {
	items := []rtree.BulkItem{}
	for _, v := range graph.Vertices() {
		items = append(items, rtree.BulkItem{Box: boxAround(v.Position, graph.plane(), 0), RecordID: int(v.ID)})
	}
	return &vertexIndex{graph: graph, tree: rtree.BulkLoad(items)}
}

// nearest visits vertices within radius (on plane) ordered by distance until accept returns true
func (index *vertexIndex) nearest(v r3.Vector, radius float64, accept func(VertexID) bool) {
	plane := index.graph.plane()
	origin := ToVector2D(v, plane)
	_ = index.tree.PrioritySearch(boxAround(v, plane, 0), func(recordID int) error {
		other := index.graph.Vertex(VertexID(recordID))
		if other == nil {
			return nil
		}
		if ToVector2D(other.Position, plane).Sub(origin).Norm() > radius {
			return rtree.Stop
		}
		if accept(other.ID) {
			return rtree.Stop
		}
		return nil
	})
}

// edgeIndex is static spatial index over graph edges
func newEdgeIndex(graph *Graph, pad float64) *rtree.RTree {
	items := []rtree.BulkItem{}
	for _, e := range graph.Edges() {
		items = append(items, rtree.BulkItem{Box: segmentBox(graph.EdgeSegment(e.ID), graph.plane(), pad), RecordID: int(e.ID)})
	}
	return rtree.BulkLoad(items)
}

type edgeSplit struct {
	t      float64
	vertex VertexID
}

// applySplits inserts vertices into edges in ascending order of parameter
func applySplits(graph *Graph, splits map[EdgeID][]edgeSplit) int {
	keys := make([]EdgeID, 0, len(splits))
	for k := range splits {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	inserted := 0
	for _, eid := range keys {
		items := splits[eid]
		sort.SliceStable(items, func(i, j int) bool { return items[i].t < items[j].t })
		current := eid
		for _, item := range items {
			if graph.Edge(current) == nil {
				break
			}
			next := graph.SplitEdge(current, item.vertex)
			if next == NoEdge {
				continue
			}
			inserted++
			current = next
		}
	}
	return inserted
}

const splitParamEpsilon = 1e-6

// InsertVerticesInEdgeIntersection inserts shared vertex at every interior crossing of two edges
// whose out-of-plane gap at the crossing does not exceed heightTolerance. Returns number of performed splits
func InsertVerticesInEdgeIntersection(graph *Graph, heightTolerance float64) int {
	plane := graph.plane()
	tree := newEdgeIndex(graph, 0)
	splits := make(map[EdgeID][]edgeSplit)
	created := make(map[r3.Vector]VertexID)
	for _, e := range graph.Edges() {
		segA := graph.EdgeSegment(e.ID)
		_ = tree.RangeSearch(segmentBox(segA, plane, 0), func(recordID int) error {
			other := EdgeID(recordID)
			if other <= e.ID {
				return nil
			}
			f := graph.Edge(other)
			if f == nil || f.HasVertex(e.V0) || f.HasVertex(e.V1) {
				return nil
			}
			segB := graph.EdgeSegment(other)
			p, t1, t2, ok := segA.TrySegmentIntersectionBy2D(segB, plane, heightTolerance)
			if !ok {
				return nil
			}
			if t1 <= splitParamEpsilon || t1 >= 1-splitParamEpsilon || t2 <= splitParamEpsilon || t2 >= 1-splitParamEpsilon {
				return nil
			}
			vid, ok := created[p]
			if !ok {
				vid = graph.AddVertex(p)
				created[p] = vid
			}
			splits[e.ID] = append(splits[e.ID], edgeSplit{t: t1, vertex: vid})
			splits[other] = append(splits[other], edgeSplit{t: t2, vertex: vid})
			return nil
		})
	}
	inserted := applySplits(graph, splits)
	for _, vid := range created {
		if v := graph.Vertex(vid); v != nil && len(v.Edges) == 0 {
			graph.vertices[vid] = nil
		}
	}
	return inserted
}

// InsertVertexInNearEdge inserts vertex into every edge passing (on plane) closer than tolerance,
// when out-of-plane gap does not exceed heightTolerance. Returns number of performed splits
func InsertVertexInNearEdge(graph *Graph, tolerance, heightTolerance float64) int {
	plane := graph.plane()
	tree := newEdgeIndex(graph, tolerance)
	splits := make(map[EdgeID][]edgeSplit)
	for _, v := range graph.Vertices() {
		_ = tree.RangeSearch(boxAround(v.Position, plane, 0), func(recordID int) error {
			eid := EdgeID(recordID)
			e := graph.Edge(eid)
			if e == nil || e.HasVertex(v.ID) {
				return nil
			}
			seg := graph.EdgeSegment(eid)
			seg2 := seg.To2D(plane)
			t := seg2.GetNearestPointParameter(ToVector2D(v.Position, plane))
			if t <= splitParamEpsilon || t >= 1-splitParamEpsilon {
				return nil
			}
			if seg2.GetDistance(ToVector2D(v.Position, plane)) > tolerance {
				return nil
			}
			if heightTolerance >= 0 {
				gap := GetNormal(seg.Lerp(t), plane) - GetNormal(v.Position, plane)
				if gap > heightTolerance || gap < -heightTolerance {
					return nil
				}
			}
			splits[eid] = append(splits[eid], edgeSplit{t: t, vertex: v.ID})
			return nil
		})
	}
	return applySplits(graph, splits)
}
