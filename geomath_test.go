package mesh2rn

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

func lineAsString(l []r2.Point) string {
	agg := []string{}
	for _, pt := range l {
		agg = append(agg, fmt.Sprintf("[%f, %f]", pt.X, pt.Y))
	}
	return "[" + strings.Join(agg, ",") + "]"
}

func TestOffset(t *testing.T) {
	line := []r2.Point{{X: 10.0, Y: 10.0}, {X: 15.0, Y: 10.0}, {X: 18.0, Y: 15.0}, {X: 18.0, Y: 20.0}, {X: 15.0, Y: 24.0}, {X: 12.0, Y: 24.0}, {X: 10.0, Y: 18.0}, {X: 10.0, Y: 15.0}, {X: 13.0, Y: 12.0}, {X: 15.0, Y: 16.0}}
	distance := 1.0

	leftL := lineAsString(offsetCurve(line, distance))
	rightL := lineAsString(offsetCurve(line, -distance))

	correctLeft := "[[10.000000, 11.000000],[14.433810, 11.000000],[17.000000, 15.276984],[17.000000, 19.666667],[14.500000, 23.000000],[12.720759, 23.000000],[11.000000, 17.837722],[11.000000, 15.414214],[12.726049, 13.688165],[14.105573, 16.447214]]"
	if leftL != correctLeft {
		t.Errorf("Left offset line should be '%s' but got '%s'", correctLeft, leftL)
	}
	correctRight := "[[10.000000, 9.000000],[15.566190, 9.000000],[19.000000, 14.723016],[19.000000, 20.333333],[15.500000, 25.000000],[11.279241, 25.000000],[9.000000, 18.162278],[9.000000, 14.585786],[13.273951, 10.311835],[15.894427, 15.552786]]"
	if rightL != correctRight {
		t.Errorf("Right offset line should be '%s' but got '%s'", correctRight, rightL)
	}
}

func TestSignedAngle(t *testing.T) {
	ang := SignedAngle2D(r2.Point{X: 1}, r2.Point{Y: 1})
	if math.Abs(ang-90) > 1e-9 {
		t.Errorf("Angle must be %f, but got %f", 90.0, ang)
	}
	ang = SignedAngle2D(r2.Point{X: 1}, r2.Point{Y: -1})
	if math.Abs(ang+90) > 1e-9 {
		t.Errorf("Angle must be %f, but got %f", -90.0, ang)
	}
	ang = SignedAngle2D(r2.Point{}, r2.Point{Y: -1})
	if ang != 0 {
		t.Errorf("Angle for zero vector must be 0, but got %f", ang)
	}
}

func TestRotate(t *testing.T) {
	v := Rotate2D(r2.Point{X: 1}, 90)
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-1) > 1e-9 {
		t.Errorf("Rotated vector must be (0, 1), but got %v", v)
	}
}

func TestAxisPlaneRoundTrip(t *testing.T) {
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	for _, plane := range []AxisPlane{AXIS_PLANE_XY, AXIS_PLANE_XZ, AXIS_PLANE_YZ} {
		back := ToVector3D(ToVector2D(v, plane), plane, GetNormal(v, plane))
		if back != v {
			t.Errorf("Round trip for plane %s must give %v, but got %v", plane, v, back)
		}
		if PutNormal(v, plane, 10).Dot(NormalVector(plane)) != 10 {
			t.Errorf("Normal coordinate for plane %s must be replaced", plane)
		}
	}
}
