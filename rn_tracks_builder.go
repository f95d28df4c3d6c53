package mesh2rn

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
)

// RnTracksBuilder synthesizes tracks through intersections
type RnTracksBuilder struct {
	allowSelfTrack bool
	logger         *slog.Logger
}

// NewRnTracksBuilder returns tracks builder
func NewRnTracksBuilder(options ...func(*RnTracksBuilder)) *RnTracksBuilder {
	builder := &RnTracksBuilder{
		logger: discardLogger(),
	}
	for _, o := range options {
		o(builder)
	}
	return builder
}

func (builder *RnTracksBuilder) String() string {
	var str strings.Builder
	str.WriteString("RnTracksBuilder is:\n")
	str.WriteString(fmt.Sprintf("\tAllow self track: %t\n", builder.allowSelfTrack))
	return str.String()
}

// WithSelfTrack allows tracks leaving intersection through the same road they entered from
func WithSelfTrack(allow bool) func(*RnTracksBuilder) {
	return func(builder *RnTracksBuilder) {
		builder.allowSelfTrack = allow
	}
}

// WithTracksLogger sets logger
func WithTracksLogger(logger *slog.Logger) func(*RnTracksBuilder) {
	return func(builder *RnTracksBuilder) {
		builder.logger = logger
	}
}

type connectionPair struct {
	first  int
	second int
}

// outBound is candidate exit of intersection together with turn type of movement leading to it
type outBound struct {
	edge     *IntersectionEdge
	turnType TurnType
}

// BuildTracks replaces tracks of intersection. Returns number of built tracks
func (builder *RnTracksBuilder) BuildTracks(inter *Intersection) int {
	inter.Align()
	inter.Tracks = nil
	groups := []*EdgeGroup{}
	for _, g := range inter.CreateEdgeGroups() {
		if g.IsBorder() {
			groups = append(groups, g)
		}
	}
	for fromIdx, from := range groups {
		inbound := from.InBoundEdges()
		if len(inbound) == 0 {
			continue
		}
		// edges go clockwise, which is right to left for entering traffic
		reverseEdges(inbound)
		outbounds := builder.collectOutBounds(groups, fromIdx)
		for _, pair := range getLaneConnections(inbound, outbounds) {
			out := outbounds[pair.second]
			inter.TryAddOrUpdateTrack(NewTrack(inbound[pair.first], out.edge, out.turnType))
		}
	}
	builder.logger.Debug("Tracks", slog.Int("intersection", inter.ID), slog.Int("tracks", len(inter.Tracks)))
	return len(inter.Tracks)
}

// collectOutBounds returns exits for traffic entering through groups[fromIdx] ordered left to right.
// Groups are walked clockwise starting after the source one, so the source group itself (U-turn) is the last
func (builder *RnTracksBuilder) collectOutBounds(groups []*EdgeGroup, fromIdx int) []outBound {
	from := groups[fromIdx]
	fromNormal := from.GetNormal()
	size := len(groups) - 1
	if builder.allowSelfTrack {
		size = len(groups)
	}
	ans := []outBound{}
	for i := 0; i < size; i++ {
		to := groups[(fromIdx+i+1)%len(groups)]
		edges := to.OutBoundEdges()
		if len(edges) == 0 {
			continue
		}
		turnType := GetTurnType(fromNormal, to.GetNormal(), RnPlane)
		if to == from {
			turnType = TURN_U_TURN
		}
		for _, e := range edges {
			ans = append(ans, outBound{edge: e, turnType: turnType})
		}
	}
	return ans
}

// getLaneConnections pairs inbound edges with exits, both ordered left to right.
// Excess inbound edges go to the rightmost exit. When exits outnumber inbound edges, a single inbound cursor walks
// the exits: it advances when remaining inbound edges would be left unused, and for straight exits it advances
// when the next inbound edge points at the exit more directly. Other exits keep the current inbound edge
func getLaneConnections(inbound []*IntersectionEdge, outbounds []outBound) []connectionPair {
	inCount, outCount := len(inbound), len(outbounds)
	if inCount == 0 || outCount == 0 {
		return nil
	}
	connections := make([]connectionPair, 0, max(inCount, outCount))
	if inCount > outCount {
		for i := 0; i < inCount; i++ {
			connections = append(connections, connectionPair{i, min(i, outCount-1)})
		}
		return connections
	}
	cur := 0
	for j := 0; j < outCount; j++ {
		if j > 0 && cur < inCount-1 {
			if inCount-cur > outCount-j {
				cur++
			} else if outbounds[j].turnType == TURN_STRAIGHT {
				to := outbounds[j].edge
				if laneDeviation(inbound[cur], to) > laneDeviation(inbound[cur+1], to) {
					cur++
				}
			}
		}
		connections = append(connections, connectionPair{cur, j})
	}
	return connections
}

// laneDeviation returns angle (degrees) between forward direction of inbound edge and direction to outbound edge
func laneDeviation(in, out *IntersectionEdge) float64 {
	forward := ToVector2D(in.GetNormal().Mul(-1), RnPlane)
	dir := ToVector2D(out.CalcCenter().Sub(in.CalcCenter()), RnPlane)
	return math.Abs(SignedAngle2D(forward, dir))
}

func reverseEdges(edges []*IntersectionEdge) {
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
}
