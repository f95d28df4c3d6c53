package mesh2rn

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadMesh returns two-triangle mesh of axis aligned rectangle
func quadMesh(x0, y0, x1, y1, z float64) *Mesh {
	return &Mesh{
		Vertices:  [][3]float64{{x0, y0, z}, {x1, y0, z}, {x1, y1, z}, {x0, y1, z}},
		SubMeshes: [][]int{{0, 1, 2, 0, 2, 3}},
	}
}

func quadFeature(name string, roadType RoadType, x0, y0, x1, y1 float64) *Feature {
	return &Feature{
		Name:      name,
		RoadType:  roadType,
		Attribute: Attribute{Lod: 2},
		Mesh:      quadMesh(x0, y0, x1, y1, 0),
	}
}

func TestCreateFacesFromMesh(t *testing.T) {
	graph, err := BuildGraph([]*Feature{quadFeature("a", ROAD_TYPE_ROAD, 0, 0, 10, 10)},
		WithVertexWeld(false, 0, 0),
		WithMergeIsolatedVertices(false),
	)
	require.NoError(t, err)
	graph.Validate()
	require.Equal(t, 1, graph.FaceCount())
	assert.Len(t, graph.Faces()[0].Edges, 4)
	assert.Equal(t, 4, graph.VertexCount())

	_, err = BuildGraph(nil)
	assert.ErrorIs(t, err, ErrNoFeatures)
}

func TestMergeIsolatedVerticesStage(t *testing.T) {
	features := []*Feature{quadFeature("a", ROAD_TYPE_ROAD, 0, 0, 10, 10)}
	graph := NewGraphBuilder().Build(features)
	assert.Equal(t, 4, graph.VertexCount())

	graph = NewGraphBuilder(WithMergeIsolatedVertices(true)).Build(features)
	graph.Validate()
	assert.Equal(t, 3, graph.VertexCount())
	require.Equal(t, 1, graph.FaceCount())
	assert.Len(t, graph.Faces()[0].Edges, 3)
}

func TestCreateFacesIslands(t *testing.T) {
	mesh := &Mesh{
		Vertices: [][3]float64{
			{0, 0, 0}, {10, 0, 0}, {10, 10, 0}, {0, 10, 0},
			{50, 0, 0}, {60, 0, 0}, {60, 10, 0},
		},
		SubMeshes: [][]int{{0, 1, 2, 0, 2, 3, 4, 5, 6}},
	}
	feature := &Feature{Name: "two islands", RoadType: ROAD_TYPE_ROAD, Mesh: mesh}
	graph := NewGraphBuilder().Build([]*Feature{feature})
	assert.Equal(t, 2, graph.FaceCount())
}

func TestSharedVerticesBetweenFeatures(t *testing.T) {
	a := quadFeature("a", ROAD_TYPE_ROAD, 0, 0, 10, 10)
	b := quadFeature("b", ROAD_TYPE_ROAD, 10, 0, 20, 10)
	graph := NewGraphBuilder().Build([]*Feature{a, b})
	graph.Validate()
	assert.Equal(t, 6, graph.VertexCount())
	assert.Equal(t, 7, graph.EdgeCount())
	faces := graph.Faces()
	require.Len(t, faces, 2)
	assert.Equal(t, []FaceID{faces[1].ID}, graph.NeighborFaces(faces[0].ID))
}

func TestWeldJoinsNearFeatures(t *testing.T) {
	a := quadFeature("a", ROAD_TYPE_ROAD, 0, 0, 10, 10)
	b := quadFeature("b", ROAD_TYPE_ROAD, 10.02, 0.01, 20, 10.01)
	graph := NewGraphBuilder(WithVertexWeld(true, 0.1, 1)).Build([]*Feature{a, b})
	graph.Validate()
	assert.Equal(t, 6, graph.VertexCount())
	faces := graph.Faces()
	require.Len(t, faces, 2)
	assert.Len(t, graph.NeighborFaces(faces[0].ID), 1)
}

func TestInsertVertexInNearEdge(t *testing.T) {
	// T-junction: small square touches middle of the big square's right side
	a := quadFeature("a", ROAD_TYPE_ROAD, 0, 0, 10, 20)
	b := quadFeature("b", ROAD_TYPE_ROAD, 10, 5, 20, 15)
	graph := NewGraphBuilder(
		WithVertexWeld(false, 0, 0),
		WithMergeIsolatedVertices(false),
		WithInsertEdgeIntersection(false, 0),
	).Build([]*Feature{a, b})
	graph.Validate()
	faces := graph.Faces()
	require.Len(t, faces, 2)
	// the big square gets two extra vertices on its right side, and both faces share the middle edge
	assert.Len(t, faces[0].Edges, 6)
	assert.Len(t, graph.NeighborFaces(faces[0].ID), 1)
}

func TestInsertVerticesInEdgeIntersection(t *testing.T) {
	graph := NewGraph()
	a := graph.AddVertex(r3.Vector{X: 0, Y: 5})
	b := graph.AddVertex(r3.Vector{X: 10, Y: 5})
	c := graph.AddVertex(r3.Vector{X: 5, Y: 0, Z: 0.2})
	d := graph.AddVertex(r3.Vector{X: 5, Y: 10, Z: 0.2})
	e1 := graph.GetOrCreateEdge(a, b)
	e2 := graph.GetOrCreateEdge(c, d)
	f1 := graph.AddFace([]EdgeID{e1}, ROAD_TYPE_ROAD, 2, nil)
	f2 := graph.AddFace([]EdgeID{e2}, ROAD_TYPE_ROAD, 2, nil)

	assert.Equal(t, 0, InsertVerticesInEdgeIntersection(graph, 0.1))
	assert.Equal(t, 2, InsertVerticesInEdgeIntersection(graph, 0.5))
	graph.Validate()
	assert.Len(t, graph.Face(f1).Edges, 2)
	assert.Len(t, graph.Face(f2).Edges, 2)
	assert.Equal(t, 5, graph.VertexCount())
	// idempotence
	assert.Equal(t, 0, InsertVerticesInEdgeIntersection(graph, 0.5))
}

func TestAdjustSmallLodHeight(t *testing.T) {
	detailed := quadFeature("lod2", ROAD_TYPE_ROAD, 0, 0, 10, 10)
	detailed.Mesh = quadMesh(0, 0, 10, 10, 3)
	coarse := quadFeature("lod1", ROAD_TYPE_ROAD, 12, 0, 20, 10)
	coarse.Attribute.Lod = 1
	graph := NewGraphBuilder(
		WithVertexWeld(false, 0, 0),
		WithMergeIsolatedVertices(false),
		WithAdjustSmallLodHeight(true, 20),
	).Build([]*Feature{detailed, coarse})
	for _, v := range graph.Vertices() {
		assert.InDelta(t, 3.0, v.Position.Z, 1e-9)
	}
}

func TestFileMeshProvider(t *testing.T) {
	dir := t.TempDir()
	content := `
nodes:
  - name: tran_1
    children:
      - name: tran_1_lod2
        mesh:
          vertices: [[0, 0, 0], [10, 0, 0], [10, 10, 0], [0, 10, 0]]
          submeshes: [[0, 1, 2, 0, 2, 3]]
  - name: broken
    mesh:
      vertices: [[0, 0, 0]]
      submeshes: [[0, 1, 2]]
attributes:
  tran_1:
    function: 車道部
    class: Road
    lod: 2
  broken:
    function: 歩道部
`
	fileName := filepath.Join(dir, "mesh.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte(content), 0o644))

	results, err := NewFileMeshProvider(fileName).Features()
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "tran_1_lod2", results[0].Feature.Name)
	assert.Equal(t, ROAD_TYPE_ROAD, results[0].Feature.RoadType)
	assert.Equal(t, 2, results[0].Feature.Attribute.Lod)
	assert.Error(t, results[1].Err)

	_, err = NewFileMeshProvider(filepath.Join(dir, "mesh.txt")).Features()
	assert.Error(t, err)
}
