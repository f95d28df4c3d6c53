package mesh2rn

import (
	"math"

	"github.com/golang/geo/r3"
)

const (
	earthR = 20037508.34
)

// Projection converts model coordinates to longitude and latitude for geographic exports.
// Nil projection writes X and Y as is
type Projection func(v r3.Vector) (lon, lat float64)

// WebMercatorProjection treats XY plane of model as EPSG:3857 meters
func WebMercatorProjection(v r3.Vector) (float64, float64) {
	return epsg3857To4326(v.X, v.Y)
}

func (proj Projection) apply(v r3.Vector) (float64, float64) {
	if proj == nil {
		return v.X, v.Y
	}
	return proj(v)
}

func epsg3857To4326(x, y float64) (float64, float64) {
	lon := x * 180 / earthR
	lat := math.Atan(math.Exp(y*math.Pi/earthR))*360/math.Pi - 90
	return lon, lat
}
