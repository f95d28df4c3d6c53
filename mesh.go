package mesh2rn

import (
	"fmt"
	"sort"

	"github.com/golang/geo/r3"
)

// Mesh is triangle mesh. Every submesh is a flat list of vertex indices, three per triangle
type Mesh struct {
	Vertices  [][3]float64 `json:"vertices" yaml:"vertices"`
	SubMeshes [][]int      `json:"submeshes" yaml:"submeshes"`
}

// MeshNode is node of source feature tree
type MeshNode struct {
	Name     string      `json:"name" yaml:"name"`
	Mesh     *Mesh       `json:"mesh,omitempty" yaml:"mesh,omitempty"`
	Children []*MeshNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Attribute is typed attribute record of source feature
type Attribute struct {
	// Function is transport classification, e.g. "車道部", "歩道部", "島"
	Function string `json:"function" yaml:"function"`
	// Class is feature class name, e.g. "Road", "Track"
	Class string `json:"class" yaml:"class"`
	Lod   int    `json:"lod" yaml:"lod"`
}

// AttributeLookup maps node name to attribute record
type AttributeLookup interface {
	Lookup(name string) (Attribute, bool)
}

// AttributeMap is in-memory AttributeLookup
type AttributeMap map[string]Attribute

func (m AttributeMap) Lookup(name string) (Attribute, bool) {
	attr, ok := m[name]
	return attr, ok
}

// Feature is single land feature ready for graph building
type Feature struct {
	Name      string
	Attribute Attribute
	RoadType  RoadType
	Mesh      *Mesh
}

func (feature *Feature) String() string {
	if feature == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s, lod%d)", feature.Name, feature.RoadType, feature.Attribute.Lod)
}

// Validate checks that mesh indices are consistent
func (mesh *Mesh) Validate() error {
	if mesh == nil {
		return ErrEmptyMesh
	}
	for i, sub := range mesh.SubMeshes {
		if len(sub)%3 != 0 {
			return fmt.Errorf("submesh #%d has %d indices which is not a multiple of 3", i, len(sub))
		}
		for _, idx := range sub {
			if idx < 0 || idx >= len(mesh.Vertices) {
				return fmt.Errorf("submesh #%d references vertex %d, but mesh has %d vertices", i, idx, len(mesh.Vertices))
			}
		}
	}
	return nil
}

// Vertex returns position of vertex by index
func (mesh *Mesh) Vertex(idx int) r3.Vector {
	v := mesh.Vertices[idx]
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// meshIsland is set of triangles connected through shared (by position) vertices
type meshIsland struct {
	triangles [][3]r3.Vector
}

// islands splits every submesh into islands. Vertices with identical position are treated as one
func (mesh *Mesh) islands() []meshIsland {
	ans := []meshIsland{}
	for _, sub := range mesh.SubMeshes {
		triangles := make([][3]r3.Vector, 0, len(sub)/3)
		for i := 0; i+2 < len(sub); i += 3 {
			tri := [3]r3.Vector{mesh.Vertex(sub[i]), mesh.Vertex(sub[i+1]), mesh.Vertex(sub[i+2])}
			if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
				continue
			}
			triangles = append(triangles, tri)
		}
		parent := make([]int, len(triangles))
		for i := range parent {
			parent[i] = i
		}
		var find func(int) int
		find = func(i int) int {
			for parent[i] != i {
				parent[i] = parent[parent[i]]
				i = parent[i]
			}
			return i
		}
		byPosition := make(map[r3.Vector]int)
		for i, tri := range triangles {
			for _, p := range tri {
				if j, ok := byPosition[p]; ok {
					ri, rj := find(i), find(j)
					if ri != rj {
						parent[ri] = rj
					}
					continue
				}
				byPosition[p] = i
			}
		}
		groups := make(map[int][]int)
		roots := []int{}
		for i := range triangles {
			r := find(i)
			if _, ok := groups[r]; !ok {
				roots = append(roots, r)
			}
			groups[r] = append(groups[r], i)
		}
		sort.Ints(roots)
		for _, r := range roots {
			island := meshIsland{}
			for _, i := range groups[r] {
				island.triangles = append(island.triangles, triangles[i])
			}
			ans = append(ans, island)
		}
	}
	return ans
}

// ComputeMeshOutlineVertices returns boundary loops of triangle set: edges used by exactly one triangle chained into loops
func ComputeMeshOutlineVertices(triangles [][3]r3.Vector) [][]r3.Vector {
	type key struct{ a, b r3.Vector }
	count := make(map[key]int)
	norm := func(a, b r3.Vector) key {
		if a.Cmp(b) < 0 {
			return key{a, b}
		}
		return key{b, a}
	}
	ordered := []key{}
	for _, tri := range triangles {
		for i := 0; i < 3; i++ {
			k := norm(tri[i], tri[(i+1)%3])
			if _, ok := count[k]; !ok {
				ordered = append(ordered, k)
			}
			count[k]++
		}
	}
	next := make(map[r3.Vector][]r3.Vector)
	boundary := []key{}
	for _, k := range ordered {
		if count[k] != 1 {
			continue
		}
		boundary = append(boundary, k)
		next[k.a] = append(next[k.a], k.b)
		next[k.b] = append(next[k.b], k.a)
	}
	used := make(map[key]struct{}, len(boundary))
	loops := [][]r3.Vector{}
	for _, k := range boundary {
		if _, ok := used[k]; ok {
			continue
		}
		used[k] = struct{}{}
		loop := []r3.Vector{k.a}
		prev, cur := k.a, k.b
		for cur != k.a {
			loop = append(loop, cur)
			moved := false
			for _, nb := range next[cur] {
				nk := norm(cur, nb)
				if _, ok := used[nk]; ok || nb == prev {
					continue
				}
				used[nk] = struct{}{}
				prev, cur = cur, nb
				moved = true
				break
			}
			if !moved {
				break
			}
		}
		if cur == k.a && len(loop) >= 3 {
			loops = append(loops, loop)
		}
	}
	return loops
}
