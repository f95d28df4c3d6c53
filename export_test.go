package mesh2rn

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolatedRectangleModel(t *testing.T) *Model {
	model, report := plainFactory().CreateRnModel(featuresProvider{quadFeature("road", ROAD_TYPE_ROAD, 0, 0, 20, 10)})
	require.NoError(t, report.Err)
	require.Len(t, model.Roads(), 1)
	return model
}

func TestExportWKT(t *testing.T) {
	model := isolatedRectangleModel(t)
	lines := ExportWKT(model)
	require.Len(t, lines, 4)
	lengths := []float64{}
	for _, line := range lines {
		geom, err := wkt.Unmarshal(line)
		require.NoError(t, err)
		ls, ok := geom.(orb.LineString)
		require.True(t, ok)
		lengths = append(lengths, planar.Length(ls))
	}
	assert.InDeltaSlice(t, []float64{20, 20, 10, 10}, lengths, 1e-6)
	assert.Equal(t, "POINT(1 2)", PrepareWKTPoint(r3.Vector{X: 1, Y: 2, Z: 3}))
}

func TestExportGeoJSON(t *testing.T) {
	model := isolatedRectangleModel(t)
	b, err := ExportGeoJSON(model, nil)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(b)
	require.NoError(t, err)
	require.Len(t, fc.Features, 4)
	kinds := map[string]int{}
	for _, f := range fc.Features {
		kind, err := f.PropertyString("kind")
		require.NoError(t, err)
		kinds[kind]++
		lane, err := f.PropertyFloat64("lane")
		require.NoError(t, err)
		assert.Equal(t, 0.0, lane)
		assert.True(t, f.Geometry.IsLineString())
	}
	assert.Equal(t, map[string]int{"lane_left": 1, "lane_right": 1, "lane_border": 2}, kinds)

	geom, err := PrepareGeoJSONLinestring([]r3.Vector{{X: 0, Y: 0, Z: 1}, {X: 2, Y: 0, Z: 1}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"LineString","coordinates":[[0,0,1],[2,0,1]]}`, geom)
}

func TestExportOSM(t *testing.T) {
	model := isolatedRectangleModel(t)
	doc := BuildOSM(model, nil)
	assert.Equal(t, 0.6, doc.Version)
	assert.Len(t, doc.Nodes, 4)
	require.Len(t, doc.Ways, 4)
	for _, way := range doc.Ways {
		assert.Len(t, way.Nodes, 2)
		assert.Equal(t, "0", way.Tags.Find("mesh2rn:lane"))
		assert.NotEmpty(t, way.Tags.Find("mesh2rn:kind"))
	}
	projected := BuildOSM(model, WebMercatorProjection)
	require.Len(t, projected.Nodes, 4)
	for _, node := range projected.Nodes {
		assert.InDelta(t, 0, node.Lon, 1e-3)
		assert.InDelta(t, 0, node.Lat, 1e-3)
	}

	b, err := ExportOSM(model, nil)
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(string(b)), "<osm")
	assert.Contains(t, string(b), "mesh2rn:kind")
	assert.Contains(t, string(b), `version="0.6"`)
}

func TestWebMercatorProjection(t *testing.T) {
	lon, lat := WebMercatorProjection(r3.Vector{X: 0, Y: 0})
	assert.InDelta(t, 0, lon, 1e-9)
	assert.InDelta(t, 0, lat, 1e-9)
	lon, lat = WebMercatorProjection(r3.Vector{X: earthR, Y: 0})
	assert.InDelta(t, 180, lon, 1e-9)
	assert.InDelta(t, 0, lat, 1e-9)
	// 1 degree of latitude near equator is ~111km
	_, lat = WebMercatorProjection(r3.Vector{Y: 111325})
	assert.InDelta(t, 1, lat, 1e-2)
	lon, lat = Projection(nil).apply(r3.Vector{X: 3, Y: 4})
	assert.Equal(t, 3.0, lon)
	assert.Equal(t, 4.0, lat)
}

func readCSV(t *testing.T, fname string) [][]string {
	file, err := os.Open(fname)
	require.NoError(t, err)
	defer file.Close()
	reader := csv.NewReader(file)
	reader.Comma = ';'
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportToCSV(t *testing.T) {
	model, report := plainFactory(WithRoadSize(4)).CreateRnModel(tJunctionFeatures())
	require.NoError(t, report.Err)
	dir := t.TempDir()
	require.NoError(t, ExportToCSV(model, filepath.Join(dir, "net.csv")))

	lanes := readCSV(t, filepath.Join(dir, "net_lanes.csv"))
	require.Len(t, lanes, 7)
	assert.Equal(t, "road_id", lanes[0][0])
	for _, row := range lanes[1:] {
		assert.Equal(t, "intersection#1", row[7])
	}

	tracks := readCSV(t, filepath.Join(dir, "net_tracks.csv"))
	require.Len(t, tracks, 7)
	for _, row := range tracks[1:] {
		assert.NotEqual(t, row[3], row[4])
		assert.Contains(t, row[6], "LINESTRING")
	}
}
