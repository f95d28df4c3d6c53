package mesh2rn

import (
	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// toOrbLineString projects positions onto road network plane
func toOrbLineString(vs []r3.Vector) orb.LineString {
	ls := make(orb.LineString, len(vs))
	for i, v := range vs {
		p := ToVector2D(v, RnPlane)
		ls[i] = orb.Point{p.X, p.Y}
	}
	return ls
}

// PrepareWKTLinestring returns WKT representation of polyline
func PrepareWKTLinestring(vs []r3.Vector) string {
	return wkt.MarshalString(toOrbLineString(vs))
}

// PrepareWKTPoint returns WKT representation of point
func PrepareWKTPoint(v r3.Vector) string {
	p := ToVector2D(v, RnPlane)
	return wkt.MarshalString(orb.Point{p.X, p.Y})
}

// ExportWKT returns one WKT line string per exported way of model
func ExportWKT(model *Model) []string {
	ways := CollectExportedWays(model)
	ans := make([]string, 0, len(ways))
	for i := range ways {
		ans = append(ans, PrepareWKTLinestring(ways[i].Vectors()))
	}
	return ans
}
