package mesh2rn

import (
	"math"
)

// createSideWalksFromGroups builds side walk for every side walk face group touching built road base.
// Inside way is the longest outline run bordering road faces, the rest of outline becomes outside and edge ways
func createSideWalksFromGroups(w *work, model *Model, groups []*FaceGroup, trans []*tran) int {
	byFace := make(map[FaceID]*tran)
	for _, t := range trans {
		if t.roadBase == nil || t.roadBase.ParentModel() != model {
			continue
		}
		for _, fid := range t.group.Faces {
			byFace[fid] = t
		}
	}
	created := 0
	for _, group := range groups {
		if !group.RoadTypes().IsSideWalk() {
			continue
		}
		loop, ok := w.graph.ComputeOutlineVertices(group.Faces, nil)
		if !ok {
			continue
		}
		if sw := createSideWalkFromLoop(w, group, loop, byFace); sw != nil {
			model.AddSideWalk(sw)
			created++
		}
	}
	return created
}

func createSideWalkFromLoop(w *work, group *FaceGroup, loop []VertexID, byFace map[FaceID]*tran) *SideWalk {
	n := len(loop)
	if n < 3 {
		return nil
	}
	owners := outlineNeighbors(w.graph, loop, group, byFace)
	lengths := make([]float64, n)
	for i := range lengths {
		lengths[i] = w.graph.Position(loop[i]).Distance(w.graph.Position(loop[(i+1)%n]))
	}

	// longest cyclic run of edges touching road bases
	start := -1
	for i := 0; i < n; i++ {
		if owners[i] == nil && owners[(i+1)%n] != nil {
			start = (i + 1) % n
			break
		}
	}
	if start < 0 {
		// whole outline touches roads or nothing at all
		return nil
	}
	bestS, bestE, bestLen := -1, -1, 0.0
	for k := 0; k < n; {
		i := (start + k) % n
		if owners[i] == nil {
			k++
			continue
		}
		s, runLen := k, 0.0
		for k < n && owners[(start+k)%n] != nil {
			runLen += lengths[(start+k)%n]
			k++
		}
		if runLen > bestLen {
			bestS, bestE, bestLen = s, k-1, runLen
		}
	}
	if bestS < 0 {
		return nil
	}

	// parent is the road base with the largest touching length within the run
	touch := make(map[*tran]float64)
	var parent *tran
	for k := bestS; k <= bestE; k++ {
		i := (start + k) % n
		touch[owners[i]] += lengths[i]
		if parent == nil || touch[owners[i]] > touch[parent] {
			parent = owners[i]
		}
	}

	seq := func(from, to int) []VertexID {
		ans := make([]VertexID, 0, to-from+1)
		for k := from; k <= to; k++ {
			ans = append(ans, loop[(start+k)%n])
		}
		return ans
	}
	inside := w.CreateWay(seq(bestS, bestE+1))
	// outside edges go from bestE+1 up to bestS-1 (cyclic)
	outFrom, outTo := bestE+1, bestS-1+n
	var outside, startEdge, endEdge *Way
	if outTo-outFrom+1 >= 3 {
		startEdge = w.CreateWay(seq(outFrom, outFrom+1))
		outside = w.CreateWay(seq(outFrom+1, outTo))
		endEdge = w.CreateWay(seq(outTo, outTo+1))
	} else {
		outside = w.CreateWay(seq(outFrom, outTo+1))
	}
	sw := NewSideWalk(parent.roadBase, outside, inside, startEdge, endEdge, sideWalkLaneType(parent.roadBase, inside))
	sw.Feature = group.Feature
	return sw
}

// sideWalkLaneType tells on which side of road the inside way lies. Side walks of intersections are undefined
func sideWalkLaneType(parent RoadBase, inside *Way) SideWalkLaneType {
	road, ok := parent.(*Road)
	if !ok || !inside.IsValid() {
		return SIDEWALK_UNDEFINED
	}
	center := Centroid3(inside.Vectors())
	dist := func(side Side) float64 {
		way, ok := road.TryGetMergedSideWay(side)
		if !ok {
			return math.Inf(1)
		}
		_, nearest := way.GetNearestPoint(center)
		return nearest.Distance(center)
	}
	if dist(SIDE_LEFT) <= dist(SIDE_RIGHT) {
		return SIDEWALK_LEFT_LANE
	}
	return SIDEWALK_RIGHT_LANE
}
