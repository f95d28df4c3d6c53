package mesh2rn

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// FlowType is mask of traffic directions through intersection edge
type FlowType uint16

const (
	FLOW_INBOUND  = FlowType(1)
	FLOW_OUTBOUND = FlowType(2)
	FLOW_BOTH     = FLOW_INBOUND | FLOW_OUTBOUND
	FLOW_EMPTY    = FlowType(0)
)

func (flow FlowType) String() string {
	return [...]string{"empty", "inbound", "outbound", "both"}[flow&FLOW_BOTH]
}

// Has reports whether every bit of other is set
func (flow FlowType) Has(other FlowType) bool {
	return flow&other == other
}

// IntersectionEdge is part of intersection outline. Border edges are shared with neighbour road bases
type IntersectionEdge struct {
	Parent *Intersection
	Road   RoadBase
	Border *Way
}

// IsBorder reports whether edge leads to neighbour road base
func (edge *IntersectionEdge) IsBorder() bool {
	return !isNilRoadBase(edge.Road)
}

// IsValid reports whether border way is valid
func (edge *IntersectionEdge) IsValid() bool {
	return edge.Border.IsValid()
}

// IsMedianBorder reports whether edge is border of median lane of neighbour road
func (edge *IntersectionEdge) IsMedianBorder() bool {
	road, ok := edge.Road.(*Road)
	if !ok || road == nil || road.MedianLane == nil {
		return false
	}
	m := road.MedianLane
	return edge.Border.IsSameLineReference(m.PrevBorder) || edge.Border.IsSameLineReference(m.NextBorder)
}

// GetConnectedLane returns lane of neighbour road using this edge as border
func (edge *IntersectionEdge) GetConnectedLane() *Lane {
	road, ok := edge.Road.(*Road)
	if !ok || road == nil {
		return nil
	}
	for _, lane := range road.MainLanes {
		if edge.Border.IsSameLineReference(lane.PrevBorder) || edge.Border.IsSameLineReference(lane.NextBorder) {
			return lane
		}
	}
	return nil
}

// GetFlowType returns traffic direction through edge relative to intersection
func (edge *IntersectionEdge) GetFlowType() FlowType {
	switch rb := edge.Road.(type) {
	case *Intersection:
		if rb != nil {
			return FLOW_BOTH
		}
	case *Road:
		if rb == nil {
			return FLOW_EMPTY
		}
		ans := FLOW_EMPTY
		for _, lane := range rb.MainLanes {
			if edge.Border.IsSameLineReference(lane.NextBorder) {
				ans |= FLOW_INBOUND
			}
			if edge.Border.IsSameLineReference(lane.PrevBorder) {
				ans |= FLOW_OUTBOUND
			}
		}
		return ans
	}
	return FLOW_EMPTY
}

// IsInbound reports whether traffic enters intersection through edge
func (edge *IntersectionEdge) IsInbound() bool {
	return edge.GetFlowType().Has(FLOW_INBOUND)
}

// IsOutbound reports whether traffic leaves intersection through edge
func (edge *IntersectionEdge) IsOutbound() bool {
	return edge.GetFlowType().Has(FLOW_OUTBOUND)
}

// GetNormal returns outward normal of edge (edges are expected to be aligned)
func (edge *IntersectionEdge) GetNormal() r3.Vector {
	n := edge.Border.Count()
	if n < 2 {
		return r3.Vector{}
	}
	return edge.Border.GetEdgeNormal((n - 2) / 2)
}

// CalcCenter returns middle point of edge
func (edge *IntersectionEdge) CalcCenter() r3.Vector {
	_, v := edge.Border.GetLerpPoint(0.5)
	return v
}

// Intersection is junction of several road bases. Its edges form clockwise loop
type Intersection struct {
	roadBase
	Edges  []*IntersectionEdge
	Tracks []*Track
}

// NewIntersection returns intersection built from given features
func NewIntersection(features ...*Feature) *Intersection {
	inter := &Intersection{}
	for _, f := range features {
		inter.AddTargetFeature(f)
	}
	return inter
}

func (inter *Intersection) String() string {
	return fmt.Sprintf("Intersection(id=%d, edges=%d, tracks=%d)", inter.ID, len(inter.Edges), len(inter.Tracks))
}

// AddEdge appends edge leading to road (nil for plain outline edge). Edge gets its own view over border line string
func (inter *Intersection) AddEdge(road RoadBase, border *Way) *IntersectionEdge {
	if !border.IsValid() {
		return nil
	}
	edge := &IntersectionEdge{
		Parent: inter,
		Road:   road,
		Border: NewWay(border.LineString, border.IsReversed, false),
	}
	inter.Edges = append(inter.Edges, edge)
	return edge
}

// RemoveEdges removes every edge matching predicate. Returns number of removed edges
func (inter *Intersection) RemoveEdges(pred func(edge *IntersectionEdge) bool) int {
	kept := inter.Edges[:0]
	removed := 0
	for _, e := range inter.Edges {
		if pred(e) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	inter.Edges = kept
	return removed
}

// RemoveEdge removes edges leading to road which share line string with given border
func (inter *Intersection) RemoveEdge(road RoadBase, border *Way) int {
	return inter.RemoveEdges(func(e *IntersectionEdge) bool {
		return e.Road == road && e.Border.IsSameLineReference(border)
	})
}

// FindEdges returns edges leading to road
func (inter *Intersection) FindEdges(road RoadBase) []*IntersectionEdge {
	ans := []*IntersectionEdge{}
	for _, e := range inter.Edges {
		if e.Road == road {
			ans = append(ans, e)
		}
	}
	return ans
}

// ReplaceEdges replaces every edge leading to road with new borders (placed where the first old edge was)
func (inter *Intersection) ReplaceEdges(road RoadBase, borders []*Way) {
	at := -1
	kept := make([]*IntersectionEdge, 0, len(inter.Edges)+len(borders))
	for _, e := range inter.Edges {
		if e.Road == road {
			if at < 0 {
				at = len(kept)
			}
			continue
		}
		kept = append(kept, e)
	}
	if at < 0 {
		at = len(kept)
	}
	added := make([]*IntersectionEdge, 0, len(borders))
	for _, b := range borders {
		if !b.IsValid() {
			continue
		}
		added = append(added, &IntersectionEdge{Parent: inter, Road: road, Border: NewWay(b.LineString, b.IsReversed, false)})
	}
	ans := append([]*IntersectionEdge{}, kept[:at]...)
	ans = append(ans, added...)
	inter.Edges = append(ans, kept[at:]...)
	inter.RemoveTracks(func(t *Track) bool {
		return !inter.hasBorder(t.FromBorder) || !inter.hasBorder(t.ToBorder)
	})
	inter.Align()
}

// ReplaceEdgeLink replaces every link to from with to (to may be nil)
func (inter *Intersection) ReplaceEdgeLink(from, to RoadBase) {
	for _, e := range inter.Edges {
		if e.Road == from {
			e.Road = to
		}
	}
}

// ReplaceNeighbor replaces every link to from with to
func (inter *Intersection) ReplaceNeighbor(from, to RoadBase) {
	if isNilRoadBase(from) {
		return
	}
	inter.ReplaceEdgeLink(from, to)
}

// GetNeighbors returns unique neighbour road bases in edge order
func (inter *Intersection) GetNeighbors() []RoadBase {
	ans := []RoadBase{}
	seen := map[RoadBase]struct{}{}
	for _, e := range inter.Edges {
		if !e.IsBorder() {
			continue
		}
		if _, ok := seen[e.Road]; ok {
			continue
		}
		seen[e.Road] = struct{}{}
		ans = append(ans, e.Road)
	}
	return ans
}

func (inter *Intersection) hasBorder(way *Way) bool {
	for _, e := range inter.Edges {
		if e.Border.IsSameLineReference(way) {
			return true
		}
	}
	return false
}

// Align orders edges into clockwise chain where every edge ends where the next one starts.
// Normals of aligned edges point out of intersection
func (inter *Intersection) Align() {
	edges := make([]*IntersectionEdge, 0, len(inter.Edges))
	for _, e := range inter.Edges {
		if e.IsValid() {
			edges = append(edges, e)
		}
	}
	if len(edges) == 0 {
		inter.Edges = edges
		return
	}
	ordered := []*IntersectionEdge{edges[0]}
	used := make([]bool, len(edges))
	used[0] = true
	for len(ordered) < len(edges) {
		tail := ordered[len(ordered)-1].Border.GetVector(-1)
		best, bestDist, bestReverse := -1, 0.0, false
		for i, e := range edges {
			if used[i] {
				continue
			}
			ds := e.Border.GetVector(0).Distance(tail)
			de := e.Border.GetVector(-1).Distance(tail)
			d, rev := ds, false
			if de < ds {
				d, rev = de, true
			}
			if best < 0 || d < bestDist {
				best, bestDist, bestReverse = i, d, rev
			}
		}
		if bestReverse {
			edges[best].Border.Reverse(false)
		}
		used[best] = true
		ordered = append(ordered, edges[best])
	}
	loop := []r3.Vector{}
	for _, e := range ordered {
		vs := e.Border.Vectors()
		if len(loop) > 0 && loop[len(loop)-1].Distance(vs[0]) < PointEpsilon {
			vs = vs[1:]
		}
		loop = append(loop, vs...)
	}
	if len(loop) >= 3 && !IsClockwise(loop, RnPlane) {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
		for _, e := range ordered {
			e.Border.Reverse(false)
		}
	}
	for _, e := range ordered {
		e.Border.IsReverseNormal = false
	}
	inter.Edges = ordered
}

// IsAligned reports whether every edge ends where the next one starts
func (inter *Intersection) IsAligned() bool {
	for i, e := range inter.Edges {
		next := inter.Edges[(i+1)%len(inter.Edges)]
		if e.Border.GetVector(-1).Distance(next.Border.GetVector(0)) > PointEpsilon {
			return false
		}
	}
	return true
}

// CreateEdgeGroups groups consecutive edges leading to the same road base. Edges are expected to be aligned
func (inter *Intersection) CreateEdgeGroups() []*EdgeGroup {
	groups := []*EdgeGroup{}
	for _, e := range inter.Edges {
		if n := len(groups); n > 0 && groups[n-1].Key == e.Road {
			groups[n-1].Edges = append(groups[n-1].Edges, e)
			continue
		}
		groups = append(groups, &EdgeGroup{Parent: inter, Key: e.Road, Edges: []*IntersectionEdge{e}})
	}
	if n := len(groups); n > 1 && groups[0].Key == groups[n-1].Key {
		groups[0].Edges = append(groups[n-1].Edges, groups[0].Edges...)
		groups = groups[:n-1]
	}
	for i, g := range groups {
		n := len(groups)
		g.LeftSide = groups[(i-1+n)%n]
		g.RightSide = groups[(i+1)%n]
	}
	return groups
}

// TryAddOrUpdateTrack adds track or replaces existing one with the same borders. Returns true if new track has been added
func (inter *Intersection) TryAddOrUpdateTrack(track *Track) bool {
	for i, t := range inter.Tracks {
		if t.FromBorder.IsSameLineSequence(track.FromBorder) && t.ToBorder.IsSameLineSequence(track.ToBorder) {
			inter.Tracks[i] = track
			return false
		}
	}
	inter.Tracks = append(inter.Tracks, track)
	return true
}

// RemoveTracks removes every track matching predicate
func (inter *Intersection) RemoveTracks(pred func(t *Track) bool) int {
	kept := inter.Tracks[:0]
	removed := 0
	for _, t := range inter.Tracks {
		if pred(t) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	inter.Tracks = kept
	return removed
}

// separateBorderLength is length of gap edge inserted between continuous borders of different road bases
const separateBorderLength = 0.01

// SeparateContinuousBorder inserts short outline edge between adjacent borders of different neighbours,
// so that every pair of neighbour groups is separated by a non-border edge. Returns number of inserted edges
func (inter *Intersection) SeparateContinuousBorder() int {
	inter.Align()
	n := len(inter.Edges)
	if n < 2 {
		return 0
	}
	ans := make([]*IntersectionEdge, 0, n*2)
	inserted := 0
	for i, e := range inter.Edges {
		ans = append(ans, e)
		next := inter.Edges[(i+1)%n]
		if !e.IsBorder() || !next.IsBorder() || e.Road == next.Road {
			continue
		}
		shared := e.Border.GetPoint(-1)
		if !shared.IsSamePoint(next.Border.GetPoint(0), PointEpsilon) {
			continue
		}
		length := e.Border.CalcLength()
		if length <= separateBorderLength*2 {
			continue
		}
		_, pos := e.Border.GetAdvancedPointFromBack(separateBorderLength)
		cut := NewPoint(pos)
		e.Border.SetPoint(-1, cut)
		gap := NewWay(NewLineString(cut, shared), false, false)
		ans = append(ans, &IntersectionEdge{Parent: inter, Border: gap})
		inserted++
	}
	inter.Edges = ans
	return inserted
}

// GetAllWays returns outline ways and ways of side walks
func (inter *Intersection) GetAllWays() []*Way {
	ans := make([]*Way, 0, len(inter.Edges))
	for _, e := range inter.Edges {
		ans = append(ans, e.Border)
	}
	return append(ans, inter.sideWalkWays()...)
}

// EdgeGroup is run of consecutive intersection edges leading to the same road base
type EdgeGroup struct {
	Parent    *Intersection
	Key       RoadBase
	Edges     []*IntersectionEdge
	LeftSide  *EdgeGroup
	RightSide *EdgeGroup
}

// IsBorder reports whether group leads to neighbour road base
func (group *EdgeGroup) IsBorder() bool {
	return !isNilRoadBase(group.Key)
}

// InBoundEdges returns edges through which traffic enters intersection
func (group *EdgeGroup) InBoundEdges() []*IntersectionEdge {
	ans := []*IntersectionEdge{}
	for _, e := range group.Edges {
		if e.IsInbound() && !e.IsMedianBorder() {
			ans = append(ans, e)
		}
	}
	return ans
}

// OutBoundEdges returns edges through which traffic leaves intersection
func (group *EdgeGroup) OutBoundEdges() []*IntersectionEdge {
	ans := []*IntersectionEdge{}
	for _, e := range group.Edges {
		if e.IsOutbound() && !e.IsMedianBorder() {
			ans = append(ans, e)
		}
	}
	return ans
}

// GetNormal returns average outward normal of group edges
func (group *EdgeGroup) GetNormal() r3.Vector {
	sum := r3.Vector{}
	for _, e := range group.Edges {
		sum = sum.Add(e.GetNormal().Mul(e.Border.CalcLength()))
	}
	if sum.Norm() < Epsilon {
		return sum
	}
	return sum.Normalize()
}
