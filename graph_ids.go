package mesh2rn

import (
	"sort"
)

// VertexID is index of Vertex in Graph arena
type VertexID int

// EdgeID is index of Edge in Graph arena
type EdgeID int

// FaceID is index of Face in Graph arena
type FaceID int

const (
	NoVertex = VertexID(-1)
	NoEdge   = EdgeID(-1)
	NoFace   = FaceID(-1)
)

type arenaID interface {
	~int
}

// insertSorted adds id into sorted set. Returns updated set and false if id has been there already
func insertSorted[T arenaID](set []T, id T) ([]T, bool) {
	idx := sort.Search(len(set), func(i int) bool { return set[i] >= id })
	if idx < len(set) && set[idx] == id {
		return set, false
	}
	set = append(set, id)
	copy(set[idx+1:], set[idx:])
	set[idx] = id
	return set, true
}

// removeSorted deletes id from sorted set. Returns updated set and false if there was no such id
func removeSorted[T arenaID](set []T, id T) ([]T, bool) {
	idx := sort.Search(len(set), func(i int) bool { return set[i] >= id })
	if idx >= len(set) || set[idx] != id {
		return set, false
	}
	return append(set[:idx], set[idx+1:]...), true
}

func containsSorted[T arenaID](set []T, id T) bool {
	idx := sort.Search(len(set), func(i int) bool { return set[i] >= id })
	return idx < len(set) && set[idx] == id
}

func cloneIDs[T arenaID](set []T) []T {
	ans := make([]T, len(set))
	copy(ans, set)
	return ans
}
