package mesh2rn

import (
	"fmt"

	"github.com/golang/geo/r3"
)

const (
	// trackSplineSegments is number of segments of track spline
	trackSplineSegments = 8
)

// Track is movement through intersection from inbound border to outbound border
type Track struct {
	FromBorder *Way
	ToBorder   *Way
	TurnType   TurnType
	Spline     *LineString
}

// NewTrack returns track between borders with spline built from outward normals of borders
func NewTrack(from, to *IntersectionEdge, turnType TurnType) *Track {
	track := &Track{
		FromBorder: from.Border,
		ToBorder:   to.Border,
		TurnType:   turnType,
	}
	track.Spline = buildTrackSpline(from.CalcCenter(), from.GetNormal().Mul(-1), to.CalcCenter(), to.GetNormal())
	return track
}

func (track *Track) String() string {
	return fmt.Sprintf("Track(%s, points=%d)", track.TurnType, track.Spline.Count())
}

// buildTrackSpline returns quadratic Bezier curve from start to end. Control point is crossing of
// start ray (along startDir) and backward end ray, or the middle point when rays do not meet
func buildTrackSpline(start, startDir, end, endDir r3.Vector) *LineString {
	control := Lerp3(start, end, 0.5)
	a := Segment3D{Start: start, End: start.Add(startDir)}
	b := Segment3D{Start: end, End: end.Sub(endDir)}
	if p, _, _, ok := a.TryHalfLinesIntersectionBy2D(b, RnPlane, -1); ok {
		control = p
	}
	ls := &LineString{Points: make([]*Point, 0, trackSplineSegments+1)}
	for i := 0; i <= trackSplineSegments; i++ {
		t := float64(i) / trackSplineSegments
		p0 := Lerp3(start, control, t)
		p1 := Lerp3(control, end, t)
		ls.AddPointOrSkip(NewPoint(Lerp3(p0, p1, t)), PointEpsilon)
	}
	return ls
}
