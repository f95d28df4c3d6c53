package mesh2rn

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// TranKind is classification of road face group by number of neighbour groups
type TranKind uint16

const (
	TRAN_ISOLATED = TranKind(iota + 1)
	TRAN_TERMINATE
	TRAN_ROAD
	TRAN_INTERSECTION

	TRAN_UNDEFINED = TranKind(0)
)

func (iotaIdx TranKind) String() string {
	return [...]string{"undefined", "isolated", "terminate", "road", "intersection"}[iotaIdx]
}

// capAngle is max deviation (degrees) of edge joining cap from direction of cap seed edge
const capAngle = 20.0

// tranLine is maximal run of group outline bordering the same neighbour (nil for free run)
type tranLine struct {
	vertices []VertexID
	neighbor *tran
}

// tran is road face group on its way to road base
type tran struct {
	group    *FaceGroup
	outline  []VertexID
	lines    []*tranLine
	kind     TranKind
	roadBase RoadBase
	err      error

	prevLine *tranLine
	nextLine *tranLine
	edges    map[*tranLine]*IntersectionEdge
}

func (t *tran) String() string {
	return fmt.Sprintf("Tran(%s, kind=%s, lines=%d)", t.group.Feature, t.kind, len(t.lines))
}

// neighborCount returns number of lines bordering another group
func (t *tran) neighborCount() int {
	n := 0
	for _, line := range t.lines {
		if line.neighbor != nil {
			n++
		}
	}
	return n
}

// isTargetGroup reports whether face group should become road base
func (factory *Factory) isTargetGroup(group *FaceGroup) bool {
	types := group.RoadTypes()
	if !types.IsRoad() || types.IsSideWalk() {
		return false
	}
	if factory.ignoreHighway && types.IsHighWay() {
		return false
	}
	return true
}

// createTrans computes outlines of road face groups and splits them by neighbour groups
func (factory *Factory) createTrans(w *work, groups []*FaceGroup, report *Report) []*tran {
	trans := []*tran{}
	byFace := make(map[FaceID]*tran)
	for _, group := range groups {
		if !factory.isTargetGroup(group) {
			continue
		}
		loop, ok := w.graph.ComputeOutlineVertices(group.Faces, nil)
		if !ok {
			reason := ErrOutlineNotClosed
			if res := group.ComputeOutline(); !res.Failed && res.HasCrossing {
				reason = ErrOutlineCrossing
			}
			report.Skipped = append(report.Skipped, SkippedGroup{Feature: group.Feature, Reason: reason})
			factory.logger.Warn("Face group skipped", "feature", group.Feature, "err", reason)
			continue
		}
		t := &tran{group: group, outline: loop}
		for _, fid := range group.Faces {
			byFace[fid] = t
		}
		trans = append(trans, t)
	}
	for _, t := range trans {
		t.splitLines(w.graph, byFace)
		t.classify()
	}
	return trans
}

// outlineNeighbors returns owner of face across every outline edge (nil if none)
func outlineNeighbors(graph *Graph, loop []VertexID, group *FaceGroup, byFace map[FaceID]*tran) []*tran {
	n := len(loop)
	ans := make([]*tran, n)
	for i := 0; i < n; i++ {
		eid := graph.FindEdge(loop[i], loop[(i+1)%n])
		edge := graph.Edge(eid)
		if edge == nil {
			continue
		}
		for _, fid := range edge.Faces {
			if group.Contains(fid) {
				continue
			}
			if other, ok := byFace[fid]; ok && other.group != group {
				ans[i] = other
				break
			}
		}
	}
	return ans
}

// splitLines cuts closed outline into lines wherever neighbour group changes
func (t *tran) splitLines(graph *Graph, byFace map[FaceID]*tran) {
	loop := t.outline
	n := len(loop)
	owners := outlineNeighbors(graph, loop, t.group, byFace)
	start := -1
	for i := 0; i < n; i++ {
		if owners[i] != owners[(i+n-1)%n] {
			start = i
			break
		}
	}
	t.lines = nil
	if start < 0 {
		vertices := append(append([]VertexID{}, loop...), loop[0])
		t.lines = append(t.lines, &tranLine{vertices: vertices, neighbor: owners[0]})
		return
	}
	cur := &tranLine{vertices: []VertexID{loop[start]}, neighbor: owners[start]}
	for k := 0; k < n; k++ {
		i := (start + k) % n
		if owners[i] != cur.neighbor {
			t.lines = append(t.lines, cur)
			cur = &tranLine{vertices: []VertexID{loop[i]}, neighbor: owners[i]}
		}
		cur.vertices = append(cur.vertices, loop[(i+1)%n])
	}
	t.lines = append(t.lines, cur)
}

func (t *tran) classify() {
	switch n := t.neighborCount(); {
	case n == 0:
		t.kind = TRAN_ISOLATED
	case n == 1:
		t.kind = TRAN_TERMINATE
	case n == 2:
		t.kind = TRAN_ROAD
	default:
		t.kind = TRAN_INTERSECTION
	}
}

// build creates road base of tran. On failure err is set and road base stays nil
func (t *tran) build(w *work) {
	var rb RoadBase
	var err error
	switch t.kind {
	case TRAN_ISOLATED:
		rb, err = t.buildIsolated(w)
	case TRAN_TERMINATE:
		rb, err = t.buildTerminate(w)
	case TRAN_ROAD:
		rb, err = t.buildRoad(w)
	case TRAN_INTERSECTION:
		rb, err = t.buildIntersection(w)
	default:
		err = ErrUnclassifiable
	}
	if err != nil {
		t.err = errors.Wrapf(err, "Can't build %s", t.kind)
		return
	}
	t.roadBase = rb
}

// newRoadFromChains builds single-lane road. left runs from prev to next border,
// right runs from next to prev border (as it goes along clockwise outline)
func newRoadFromChains(w *work, feature *Feature, left, right, prevBorder, nextBorder []VertexID) *Road {
	leftWay := w.CreateWay(left)
	rightWay := w.CreateWay(right)
	rightWay.Reverse(true)
	lane := NewLane(leftWay, rightWay, w.CreateWay(prevBorder), w.CreateWay(nextBorder))
	lane.AlignBorder()
	road := NewRoad(feature)
	road.AddMainLane(lane)
	return road
}

func (t *tran) buildIsolated(w *work) (RoadBase, error) {
	if t.group.CountFaces(ROAD_TYPE_MEDIAN) == len(t.group.Faces) {
		return nil, errors.Wrap(ErrUnclassifiable, "median only group")
	}
	n := len(t.outline)
	if n < 4 {
		return nil, errors.Wrapf(ErrUnclassifiable, "outline has %d vertices", n)
	}
	positions := w.graph.LoopPositions(t.outline)
	pts := ToVectors2D(positions, w.graph.plane())
	axis := principalAxis2D(pts)
	if hull := ComputeConvexHull(positions, w.graph.plane(), PointEpsilon); len(hull) >= 3 {
		axis = principalAxis2D(ToVectors2D(hull, w.graph.plane()))
	}
	minI, maxI := 0, 0
	minP, maxP := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		proj := pts[i].Add(pts[(i+1)%n]).Mul(0.5).Dot(axis)
		if proj < minP {
			minP, minI = proj, i
		}
		if proj > maxP {
			maxP, maxI = proj, i
		}
	}
	// work in loop rotated so the start cap seed is edge 0 and the end cap seed is edge m
	loop := make([]VertexID, n)
	rotated := make([]r2.Point, n)
	for i := 0; i < n; i++ {
		loop[i] = t.outline[(i+minI)%n]
		rotated[i] = pts[(i+minI)%n]
	}
	m := (maxI - minI + n) % n
	if m < 2 || n-m < 2 {
		return nil, errors.Wrap(ErrUnclassifiable, "no side chains")
	}
	dirs := edgeDirections(rotated, true)
	similar := func(i, seed int) bool {
		return Angle2D(dirs[(i%n+n)%n], dirs[seed]) < capAngle
	}
	a0, b0 := 0, 0
	for b0+1 <= m-2 && similar(b0+1, 0) {
		b0++
	}
	for a0-1 >= m+2-n && similar(a0-1, 0) {
		a0--
	}
	a1, b1 := m, m
	for a1-1 >= b0+2 && similar(a1-1, m) {
		a1--
	}
	for b1+1 <= n+a0-2 && similar(b1+1, m) {
		b1++
	}
	seq := func(from, to int) []VertexID {
		ans := make([]VertexID, 0, to-from+1)
		for i := from; i <= to; i++ {
			ans = append(ans, loop[(i%n+n)%n])
		}
		return ans
	}
	road := newRoadFromChains(w, t.group.Feature, seq(b0+1, a1), seq(b1+1, n+a0), seq(a0, b0+1), seq(a1, b1+1))
	return road, nil
}

func (t *tran) buildTerminate(w *work) (RoadBase, error) {
	t.rotateLines()
	if len(t.lines) != 2 || t.lines[1].neighbor != nil {
		return nil, errors.Wrap(ErrUnclassifiable, "terminate without free line")
	}
	border := t.lines[0]
	free := t.lines[1].vertices
	pts := ToVectors2D(w.graph.LoopPositions(free), w.graph.plane())
	target := Centroid3(w.graph.LoopPositions(border.vertices))
	s, e, ok := FindBorderEdges(pts, ToVector2D(target, w.graph.plane()))
	if !ok {
		return nil, errors.Wrap(ErrUnclassifiable, "can't find cap")
	}
	t.nextLine = border
	road := newRoadFromChains(w, t.group.Feature, free[e+1:], free[:s+1], free[s:e+2], border.vertices)
	return road, nil
}

// rotateLines makes the first line border neighbour group
func (t *tran) rotateLines() {
	for i, line := range t.lines {
		if line.neighbor != nil {
			t.lines = append(t.lines[i:], t.lines[:i]...)
			return
		}
	}
}

// FindBorderEdges picks cap of open free line: run of edges farthest from target point.
// Returns inclusive range of edge indices. Cap never takes the first or the last edge
func FindBorderEdges(points []r2.Point, target r2.Point) (int, int, bool) {
	m := len(points) - 1
	if m < 3 {
		return 0, 0, false
	}
	seed := 1
	best := -1.0
	for i := 1; i < m-1; i++ {
		mid := points[i].Add(points[i+1]).Mul(0.5)
		if d := mid.Sub(target).Norm(); d > best {
			best, seed = d, i
		}
	}
	dirs := edgeDirections(points, false)
	s, e := seed, seed
	for s-1 >= 1 && Angle2D(dirs[s-1], dirs[seed]) < capAngle {
		s--
	}
	for e+1 <= m-2 && Angle2D(dirs[e+1], dirs[seed]) < capAngle {
		e++
	}
	return s, e, true
}

// edgeDirections returns unit direction of every edge of polyline (closed when cyclic)
func edgeDirections(points []r2.Point, cyclic bool) []r2.Point {
	n := len(points)
	m := n - 1
	if cyclic {
		m = n
	}
	ans := make([]r2.Point, m)
	for i := 0; i < m; i++ {
		d := points[(i+1)%n].Sub(points[i])
		if d.Norm() > 0 {
			d = d.Normalize()
		}
		ans[i] = d
	}
	return ans
}

// principalAxis2D returns unit direction of the largest variance of points
func principalAxis2D(points []r2.Point) r2.Point {
	if len(points) == 0 {
		return r2.Point{X: 1}
	}
	c := r2.Point{}
	for _, p := range points {
		c = c.Add(p)
	}
	c = c.Mul(1 / float64(len(points)))
	var sxx, syy, sxy float64
	for _, p := range points {
		d := p.Sub(c)
		sxx += d.X * d.X
		syy += d.Y * d.Y
		sxy += d.X * d.Y
	}
	angle := 0.5 * math.Atan2(2*sxy, sxx-syy)
	return r2.Point{X: math.Cos(angle), Y: math.Sin(angle)}
}
