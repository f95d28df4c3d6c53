package mesh2rn

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/golang/geo/r3"
)

// GraphBuilder converts features into planar graph and applies reduction pipeline
type GraphBuilder struct {
	plane AxisPlane

	useVertexWeld   bool
	cellSize        float64
	mergeCellRadius int
	collinearAngle  float64
	collinearDist   float64

	useMergeIsolatedVertices bool

	useEdgeIntersection bool
	heightTolerance     float64

	useNearEdge       bool
	nearEdgeTolerance float64

	useSeparateFaces      bool
	useRemoveIsolatedEdge bool
	useRemoveInnerVertex  bool

	useAdjustSmallLodHeight bool
	lodHeightRadius         float64

	logger *slog.Logger
}

// NewGraphBuilder returns builder with default parameters
func NewGraphBuilder(options ...func(*GraphBuilder)) *GraphBuilder {
	builder := &GraphBuilder{
		plane:                    AXIS_PLANE_XY,
		useVertexWeld:            true,
		cellSize:                 0.1,
		mergeCellRadius:          1,
		collinearAngle:           0.5,
		collinearDist:            -1,
		useMergeIsolatedVertices: false,
		useEdgeIntersection:      true,
		heightTolerance:          1,
		useNearEdge:              true,
		nearEdgeTolerance:        0.1,
		useSeparateFaces:         true,
		useRemoveIsolatedEdge:    true,
		useRemoveInnerVertex:     true,
		useAdjustSmallLodHeight:  true,
		lodHeightRadius:          5,
		logger:                   discardLogger(),
	}
	for _, option := range options {
		option(builder)
	}
	return builder
}

func (builder *GraphBuilder) String() string {
	return fmt.Sprintf(`
Graph builder parameters:
	plane: '%s'
	vertex weld enabled?: %t
	cell_size: %f
	merge_cell_radius: %d
	collinear_angle: %f
	collinear_distance: %f
	merge isolated vertices?: %t
	insert edge intersections?: %t
	height_tolerance: %f
	insert near edge vertices?: %t
	near_edge_tolerance: %f
	separate faces?: %t
	remove isolated edges?: %t
	remove inner vertices?: %t
	adjust small LOD height?: %t
	lod_height_radius: %f
	`,
		builder.plane,
		builder.useVertexWeld,
		builder.cellSize,
		builder.mergeCellRadius,
		builder.collinearAngle,
		builder.collinearDist,
		builder.useMergeIsolatedVertices,
		builder.useEdgeIntersection,
		builder.heightTolerance,
		builder.useNearEdge,
		builder.nearEdgeTolerance,
		builder.useSeparateFaces,
		builder.useRemoveIsolatedEdge,
		builder.useRemoveInnerVertex,
		builder.useAdjustSmallLodHeight,
		builder.lodHeightRadius,
	)
}

func WithPlane(plane AxisPlane) func(*GraphBuilder) {
	return func(builder *GraphBuilder) {
		builder.plane = plane
	}
}

// WithVertexWeld enables/disables welding with given grid cell size and merge radius (in cells)
func WithVertexWeld(enabled bool, cellSize float64, mergeCellRadius int) func(*GraphBuilder) {
	return func(builder *GraphBuilder) {
		builder.useVertexWeld = enabled
		builder.cellSize = cellSize
		builder.mergeCellRadius = mergeCellRadius
	}
}

// WithCollinearTolerance sets tolerances for collinear midpoint removal. Negative value disables corresponding test
func WithCollinearTolerance(angleDeg, distance float64) func(*GraphBuilder) {
	return func(builder *GraphBuilder) {
		builder.collinearAngle = angleDeg
		builder.collinearDist = distance
	}
}

// WithMergeIsolatedVertices enables/disables bridging of vertices having exactly two edges. Disabled by default:
// it cuts corners of faces which are not shared with other faces
func WithMergeIsolatedVertices(enabled bool) func(*GraphBuilder) {
	return func(builder *GraphBuilder) {
		builder.useMergeIsolatedVertices = enabled
	}
}

// WithInsertEdgeIntersection enables/disables vertex insertion at edge crossings within heightTolerance
func WithInsertEdgeIntersection(enabled bool, heightTolerance float64) func(*GraphBuilder) {
	return func(builder *GraphBuilder) {
		builder.useEdgeIntersection = enabled
		builder.heightTolerance = heightTolerance
	}
}

// WithInsertNearEdge enables/disables vertex insertion into edges passing closer than tolerance
func WithInsertNearEdge(enabled bool, tolerance float64) func(*GraphBuilder) {
	return func(builder *GraphBuilder) {
		builder.useNearEdge = enabled
		builder.nearEdgeTolerance = tolerance
	}
}

func WithSeparateFaces(enabled bool) func(*GraphBuilder) {
	return func(builder *GraphBuilder) {
		builder.useSeparateFaces = enabled
	}
}

func WithRemoveIsolatedEdge(enabled bool) func(*GraphBuilder) {
	return func(builder *GraphBuilder) {
		builder.useRemoveIsolatedEdge = enabled
	}
}

// WithRemoveInnerVertex enables/disables removal of face vertices lying off face outline
func WithRemoveInnerVertex(enabled bool) func(*GraphBuilder) {
	return func(builder *GraphBuilder) {
		builder.useRemoveInnerVertex = enabled
	}
}

// WithAdjustSmallLodHeight enables/disables height adjustment of LOD1 vertices using vertices of detailed faces within radius
func WithAdjustSmallLodHeight(enabled bool, radius float64) func(*GraphBuilder) {
	return func(builder *GraphBuilder) {
		builder.useAdjustSmallLodHeight = enabled
		builder.lodHeightRadius = radius
	}
}

func WithGraphLogger(logger *slog.Logger) func(*GraphBuilder) {
	return func(builder *GraphBuilder) {
		if logger != nil {
			builder.logger = logger
		}
	}
}

// BuildGraph builds graph for features with given builder options
func BuildGraph(features []*Feature, options ...func(*GraphBuilder)) (*Graph, error) {
	if len(features) == 0 {
		return nil, ErrNoFeatures
	}
	return NewGraphBuilder(options...).Build(features), nil
}

// Build runs pipeline: faces creation, welding, edge intersections, near edges, cleanup and LOD height adjustment
func (builder *GraphBuilder) Build(features []*Feature) *Graph {
	logger := builder.logger
	logger.Debug(builder.String())
	graph := NewGraph()
	graph.Plane = builder.plane

	done := logStage(logger, "faces")
	builder.CreateFaces(graph, features)
	done("vertices", graph.VertexCount(), "edges", graph.EdgeCount(), "faces", graph.FaceCount())

	if builder.useVertexWeld {
		done = logStage(logger, "vertex weld")
		builder.Weld(graph)
		done("vertices", graph.VertexCount())
	}
	if builder.useEdgeIntersection {
		done = logStage(logger, "edge intersections")
		n := InsertVerticesInEdgeIntersection(graph, builder.heightTolerance)
		done("inserted", n)
	}
	if builder.useNearEdge {
		done = logStage(logger, "near edge vertices")
		n := InsertVertexInNearEdge(graph, builder.nearEdgeTolerance, builder.heightTolerance)
		done("inserted", n)
	}
	if builder.useSeparateFaces {
		done = logStage(logger, "faces separation")
		n := graph.SeparateFaces()
		done("created", n)
	}
	if builder.useRemoveIsolatedEdge {
		done = logStage(logger, "isolated edges removal")
		n := graph.RemoveIsolatedEdgeFromFace()
		n += graph.RemoveIsolatedEdge()
		done("removed", n)
	}
	if builder.useRemoveInnerVertex {
		done = logStage(logger, "inner vertices removal")
		n := 0
		for _, face := range graph.Faces() {
			n += graph.RemoveInnerVertex(face.ID)
		}
		done("removed", n)
	}
	if builder.useMergeIsolatedVertices {
		done = logStage(logger, "isolated vertices merge")
		n := graph.MergeIsolatedVertices()
		done("merged", n)
	}
	if builder.useAdjustSmallLodHeight {
		done = logStage(logger, "small LOD height adjustment")
		n := builder.AdjustSmallLodHeight(graph)
		done("adjusted", n)
	}
	return graph
}

// CreateFaces adds one face per mesh island of every feature. Vertices with identical positions are shared between features
func (builder *GraphBuilder) CreateFaces(graph *Graph, features []*Feature) {
	byPosition := make(map[r3.Vector]VertexID)
	for _, v := range graph.Vertices() {
		byPosition[v.Position] = v.ID
	}
	for _, feature := range features {
		if feature == nil || feature.Mesh == nil {
			continue
		}
		for _, island := range feature.Mesh.islands() {
			loops := ComputeMeshOutlineVertices(island.triangles)
			if len(loops) == 0 {
				continue
			}
			// holes are dropped: the face is bounded by the largest loop only
			outer := loops[0]
			outerArea := math.Abs(SignedArea2D(outer, builder.plane))
			for _, loop := range loops[1:] {
				if area := math.Abs(SignedArea2D(loop, builder.plane)); area > outerArea {
					outer = loop
					outerArea = area
				}
			}
			if outerArea < Epsilon {
				continue
			}
			outer = RemoveSelfCrossingVectors(outer, builder.plane)
			ids := make([]VertexID, 0, len(outer))
			for _, p := range outer {
				id, ok := byPosition[p]
				if !ok {
					id = graph.AddVertex(p)
					byPosition[p] = id
				}
				ids = append(ids, id)
			}
			graph.AddFaceFromLoop(ids, feature.RoadType, feature.Attribute.Lod, feature)
		}
	}
}

// Weld merges near-duplicate vertices and removes collinear midpoints until vertex count stabilizes
func (builder *GraphBuilder) Weld(graph *Graph) {
	for {
		before := graph.VertexCount()
		vertices := graph.Vertices()
		positions := make([]r3.Vector, len(vertices))
		for i, v := range vertices {
			positions[i] = v.Position
		}
		welded := WeldVerticesFixedPoint(positions, builder.cellSize, builder.mergeCellRadius)
		targets := make(map[r3.Vector][]VertexID)
		order := []r3.Vector{}
		for _, v := range vertices {
			to := welded[v.Position]
			if _, ok := targets[to]; !ok {
				order = append(order, to)
			}
			targets[to] = append(targets[to], v.ID)
		}
		for _, to := range order {
			group := targets[to]
			dst := group[0]
			for _, src := range group[1:] {
				graph.MergeVertex(src, dst, true)
			}
			graph.Vertex(dst).Position = to
		}
		graph.EdgeReduction(builder.collinearAngle, builder.collinearDist)
		if graph.VertexCount() == before {
			return
		}
	}
}

// AdjustSmallLodHeight moves vertices used only by LOD <= 1 faces to height of the nearest vertex used by more detailed faces.
// Returns number of adjusted vertices
func (builder *GraphBuilder) AdjustSmallLodHeight(graph *Graph) int {
	maxLod := func(vid VertexID) int {
		lod := -1
		for _, fid := range graph.VertexFaces(vid) {
			if l := graph.Face(fid).LodLevel; l > lod {
				lod = l
			}
		}
		return lod
	}
	index := newVertexIndex(graph)
	radius := builder.lodHeightRadius
	adjusted := 0
	for _, v := range graph.Vertices() {
		lod := maxLod(v.ID)
		if lod < 0 || lod > 1 {
			continue
		}
		index.nearest(v.Position, radius, func(other VertexID) bool {
			if other == v.ID || maxLod(other) <= 1 {
				return false
			}
			v.Position = PutNormal(v.Position, graph.plane(), GetNormal(graph.Position(other), graph.plane()))
			adjusted++
			return true
		})
	}
	return adjusted
}
