package mesh2rn

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

type weldCell [3]int

func (c weldCell) less(o weldCell) bool {
	for i := 0; i < 3; i++ {
		if c[i] != o[i] {
			return c[i] < o[i]
		}
	}
	return false
}

func (c weldCell) manhattan(o weldCell) int {
	d := 0
	for i := 0; i < 3; i++ {
		v := c[i] - o[i]
		if v < 0 {
			v = -v
		}
		d += v
	}
	return d
}

// WeldVertices buckets points into uniform grid of cellSize.
// Cells reachable from a seed cell through occupied neighbour cells within mergeCellRadius (manhattan distance, in cells) form a cluster;
// every point of a cluster with more than one point is mapped to the cluster centroid.
// Result maps every input point to its welded position
func WeldVertices(points []r3.Vector, cellSize float64, mergeCellRadius int) map[r3.Vector]r3.Vector {
	ans := make(map[r3.Vector]r3.Vector, len(points))
	if cellSize <= 0 {
		for _, p := range points {
			ans[p] = p
		}
		return ans
	}
	cells := make(map[weldCell][]r3.Vector)
	seen := make(map[r3.Vector]struct{}, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		key := weldCell{
			int(math.Floor(p.X / cellSize)),
			int(math.Floor(p.Y / cellSize)),
			int(math.Floor(p.Z / cellSize)),
		}
		cells[key] = append(cells[key], p)
	}
	keys := make([]weldCell, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	visited := make(map[weldCell]struct{}, len(cells))
	for _, seed := range keys {
		if _, ok := visited[seed]; ok {
			continue
		}
		visited[seed] = struct{}{}
		cluster := []r3.Vector{}
		queue := []weldCell{seed}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			cluster = append(cluster, cells[cur]...)
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					for dz := -1; dz <= 1; dz++ {
						if dx == 0 && dy == 0 && dz == 0 {
							continue
						}
						nb := weldCell{cur[0] + dx, cur[1] + dy, cur[2] + dz}
						if _, ok := cells[nb]; !ok {
							continue
						}
						if _, ok := visited[nb]; ok {
							continue
						}
						if nb.manhattan(seed) > mergeCellRadius {
							continue
						}
						visited[nb] = struct{}{}
						queue = append(queue, nb)
					}
				}
			}
		}
		if len(cluster) == 1 {
			ans[cluster[0]] = cluster[0]
			continue
		}
		center := Centroid3(cluster)
		for _, p := range cluster {
			ans[p] = center
		}
	}
	return ans
}

// WeldVerticesFixedPoint repeats WeldVertices until number of distinct positions stops decreasing.
// Result maps every input point to its final position
func WeldVerticesFixedPoint(points []r3.Vector, cellSize float64, mergeCellRadius int) map[r3.Vector]r3.Vector {
	ans := make(map[r3.Vector]r3.Vector, len(points))
	for _, p := range points {
		ans[p] = p
	}
	current := uniqueVectors(points)
	for {
		step := WeldVertices(current, cellSize, mergeCellRadius)
		next := make([]r3.Vector, 0, len(current))
		for _, p := range current {
			next = append(next, step[p])
		}
		next = uniqueVectors(next)
		for k, v := range ans {
			ans[k] = step[v]
		}
		if len(next) == len(current) {
			return ans
		}
		current = next
	}
}

func uniqueVectors(points []r3.Vector) []r3.Vector {
	seen := make(map[r3.Vector]struct{}, len(points))
	ans := make([]r3.Vector, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		ans = append(ans, p)
	}
	return ans
}

// RemoveCollinearPoints drops inner points of polyline which are collinear with their neighbours
func RemoveCollinearPoints(points []r3.Vector, angleEpsilonDeg, distEpsilon float64) []r3.Vector {
	if len(points) < 3 {
		return points
	}
	ans := []r3.Vector{points[0]}
	for i := 1; i < len(points)-1; i++ {
		if IsCollinear(ans[len(ans)-1], points[i], points[i+1], angleEpsilonDeg, distEpsilon) {
			continue
		}
		ans = append(ans, points[i])
	}
	return append(ans, points[len(points)-1])
}
