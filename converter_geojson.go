package mesh2rn

import (
	"github.com/golang/geo/r3"
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

func geoJSONCoordinates(vs []r3.Vector, proj Projection) [][]float64 {
	ans := make([][]float64, len(vs))
	for i, v := range vs {
		x, y := proj.apply(v)
		ans[i] = []float64{x, y, v.Z}
	}
	return ans
}

// PrepareGeoJSONLinestring returns GeoJSON geometry of polyline
func PrepareGeoJSONLinestring(vs []r3.Vector) (string, error) {
	b, err := geojson.NewLineStringGeometry(geoJSONCoordinates(vs, nil)).MarshalJSON()
	if err != nil {
		return "", errors.Wrap(err, "Can't convert geometry to geojson format")
	}
	return string(b), nil
}

// ExportGeoJSON returns feature collection with one line string feature per exported way.
// Properties are kind, id (owner), lane (lane index or -1) and turn (for tracks)
func ExportGeoJSON(model *Model, proj Projection) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, ew := range CollectExportedWays(model) {
		f := geojson.NewLineStringFeature(geoJSONCoordinates(ew.Vectors(), proj))
		f.SetProperty("kind", ew.Kind.String())
		f.SetProperty("id", ew.OwnerID)
		f.SetProperty("lane", ew.Lane)
		if ew.Kind == EXPORT_TRACK {
			f.SetProperty("turn", ew.Turn.String())
		}
		fc.AddFeature(f)
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "Can't marshal feature collection")
	}
	return b, nil
}
