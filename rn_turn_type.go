package mesh2rn

import (
	"math"

	"github.com/golang/geo/r3"
)

// TurnType is kind of movement through intersection
type TurnType uint16

const (
	TURN_LEFT_BACK = TurnType(iota + 1)
	TURN_LEFT
	TURN_LEFT_FRONT
	TURN_STRAIGHT
	TURN_RIGHT_FRONT
	TURN_RIGHT
	TURN_RIGHT_BACK
	TURN_U_TURN
	TURN_UNDEFINED = TurnType(0)
)

func (iotaIdx TurnType) String() string {
	return [...]string{"undefined", "left_back", "left", "left_front", "straight", "right_front", "right", "right_back", "uturn"}[iotaIdx]
}

// IsLeft reports whether turn goes to the left side
func (iotaIdx TurnType) IsLeft() bool {
	return iotaIdx == TURN_LEFT_BACK || iotaIdx == TURN_LEFT || iotaIdx == TURN_LEFT_FRONT
}

// IsRight reports whether turn goes to the right side
func (iotaIdx TurnType) IsRight() bool {
	return iotaIdx == TURN_RIGHT_FRONT || iotaIdx == TURN_RIGHT || iotaIdx == TURN_RIGHT_BACK
}

// turnTypeRanges holds closed-open angle ranges (degrees, 180 means straight). Angles outside every range are U-turns
var turnTypeRanges = []struct {
	from, to float64
	turnType TurnType
}{
	{10, 67.5, TURN_LEFT_BACK},
	{67.5, 112.5, TURN_LEFT},
	{112.5, 157.5, TURN_LEFT_FRONT},
	{157.5, 202.5, TURN_STRAIGHT},
	{202.5, 247.5, TURN_RIGHT_FRONT},
	{247.5, 292.5, TURN_RIGHT},
	{292.5, 337.5, TURN_RIGHT_BACK},
}

// GetTurnTypeByAngle returns turn type for angle in degrees where 180 is straight and angles below 180 are left turns
func GetTurnTypeByAngle(angle float64) TurnType {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	for _, r := range turnTypeRanges {
		if r.from <= angle && angle < r.to {
			return r.turnType
		}
	}
	return TURN_U_TURN
}

// GetTurnAngle returns angle between inbound direction (opposite to fromNormal) and outbound direction toNormal.
// Both normals point out of intersection. 180 means straight movement
func GetTurnAngle(fromNormal, toNormal r3.Vector, plane AxisPlane) float64 {
	in := ToVector2D(fromNormal.Mul(-1), plane)
	out := ToVector2D(toNormal, plane)
	angle := 180 - SignedAngle2D(in, out)
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

// GetTurnType returns turn type of movement entering intersection through border with outward normal fromNormal
// and leaving it through border with outward normal toNormal
func GetTurnType(fromNormal, toNormal r3.Vector, plane AxisPlane) TurnType {
	return GetTurnTypeByAngle(GetTurnAngle(fromNormal, toNormal, plane))
}
