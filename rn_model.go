package mesh2rn

import (
	"fmt"

	"github.com/pkg/errors"
)

// Model is road network. It owns roads, intersections and side walks and is the only place adding or removing them
type Model struct {
	FactoryVersion string

	roads         []*Road
	intersections []*Intersection
	sideWalks     []*SideWalk

	lastRoadBaseID int
	lastSideWalkID int
}

// NewModel returns empty model
func NewModel() *Model {
	return &Model{}
}

func (model *Model) String() string {
	return fmt.Sprintf("Model(version=%s, roads=%d, intersections=%d, sidewalks=%d)", model.FactoryVersion, len(model.roads), len(model.intersections), len(model.sideWalks))
}

// IsEmpty reports whether model has no roads and no intersections
func (model *Model) IsEmpty() bool {
	return len(model.roads) == 0 && len(model.intersections) == 0
}

// Roads returns roads of model
func (model *Model) Roads() []*Road {
	return model.roads
}

// Intersections returns intersections of model
func (model *Model) Intersections() []*Intersection {
	return model.intersections
}

// SideWalks returns every side walk of model
func (model *Model) SideWalks() []*SideWalk {
	return model.sideWalks
}

// RoadBases returns roads followed by intersections
func (model *Model) RoadBases() []RoadBase {
	ans := make([]RoadBase, 0, len(model.roads)+len(model.intersections))
	for _, r := range model.roads {
		ans = append(ans, r)
	}
	for _, i := range model.intersections {
		ans = append(ans, i)
	}
	return ans
}

func (model *Model) attach(rb RoadBase) {
	b := rb.base()
	b.parent = model
	model.lastRoadBaseID++
	b.ID = model.lastRoadBaseID
}

// AddRoad adds road to model
func (model *Model) AddRoad(road *Road) {
	if road == nil || road.parent == model {
		return
	}
	model.attach(road)
	model.roads = append(model.roads, road)
}

// RemoveRoad removes road from model. Links from neighbours are not touched
func (model *Model) RemoveRoad(road *Road) bool {
	for i, r := range model.roads {
		if r == road {
			model.roads = append(model.roads[:i], model.roads[i+1:]...)
			model.detachSideWalks(road)
			road.parent = nil
			return true
		}
	}
	return false
}

// AddIntersection adds intersection to model
func (model *Model) AddIntersection(inter *Intersection) {
	if inter == nil || inter.parent == model {
		return
	}
	model.attach(inter)
	model.intersections = append(model.intersections, inter)
}

// RemoveIntersection removes intersection from model. Links from neighbours are not touched
func (model *Model) RemoveIntersection(inter *Intersection) bool {
	for i, it := range model.intersections {
		if it == inter {
			model.intersections = append(model.intersections[:i], model.intersections[i+1:]...)
			model.detachSideWalks(inter)
			inter.parent = nil
			return true
		}
	}
	return false
}

// AddSideWalk adds side walk to model and attaches it to its parent
func (model *Model) AddSideWalk(sw *SideWalk) {
	if sw == nil {
		return
	}
	for _, s := range model.sideWalks {
		if s == sw {
			return
		}
	}
	model.lastSideWalkID++
	sw.ID = model.lastSideWalkID
	model.sideWalks = append(model.sideWalks, sw)
	if !isNilRoadBase(sw.Parent) {
		sw.Parent.base().addSideWalk(sw)
	}
}

// RemoveSideWalk removes side walk from model and from its parent
func (model *Model) RemoveSideWalk(sw *SideWalk) bool {
	for i, s := range model.sideWalks {
		if s == sw {
			model.sideWalks = append(model.sideWalks[:i], model.sideWalks[i+1:]...)
			if !isNilRoadBase(sw.Parent) {
				sw.Parent.base().removeSideWalk(sw)
			}
			return true
		}
	}
	return false
}

// SetSideWalkParent moves side walk to another road base
func (model *Model) SetSideWalkParent(sw *SideWalk, parent RoadBase) {
	if !isNilRoadBase(sw.Parent) {
		sw.Parent.base().removeSideWalk(sw)
	}
	sw.Parent = parent
	if !isNilRoadBase(parent) {
		parent.base().addSideWalk(sw)
	}
}

func (model *Model) detachSideWalks(rb RoadBase) {
	for _, sw := range append([]*SideWalk{}, rb.SideWalks()...) {
		model.RemoveSideWalk(sw)
	}
}

// GetRoadBy returns road built from given source feature
func (model *Model) GetRoadBy(feature *Feature) *Road {
	for _, r := range model.roads {
		for _, f := range r.targets {
			if f == feature {
				return r
			}
		}
	}
	return nil
}

// GetIntersectionBy returns intersection built from given source feature
func (model *Model) GetIntersectionBy(feature *Feature) *Intersection {
	for _, it := range model.intersections {
		for _, f := range it.targets {
			if f == feature {
				return it
			}
		}
	}
	return nil
}

// GetRoadBasesBy returns every road base built from given source feature
func (model *Model) GetRoadBasesBy(feature *Feature) []RoadBase {
	ans := []RoadBase{}
	for _, rb := range model.RoadBases() {
		for _, f := range rb.TargetFeatures() {
			if f == feature {
				ans = append(ans, rb)
				break
			}
		}
	}
	return ans
}

// GetNeighborRoadBases returns neighbours of road base which belong to model
func (model *Model) GetNeighborRoadBases(rb RoadBase) []RoadBase {
	ans := []RoadBase{}
	for _, n := range rb.GetNeighbors() {
		if n.ParentModel() == model {
			ans = append(ans, n)
		}
	}
	return ans
}

// GetConnectedRoadBasesRecursive returns every road base reachable from start (start included) in breadth-first order
func (model *Model) GetConnectedRoadBasesRecursive(start RoadBase) []RoadBase {
	if isNilRoadBase(start) {
		return nil
	}
	visited := map[RoadBase]struct{}{start: {}}
	ans := []RoadBase{start}
	for queue := []RoadBase{start}; len(queue) > 0; {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range model.GetNeighborRoadBases(cur) {
			if _, ok := visited[n]; ok {
				continue
			}
			visited[n] = struct{}{}
			ans = append(ans, n)
			queue = append(queue, n)
		}
	}
	return ans
}

// GetAllWays returns ways of every road, intersection and side walk without parent
func (model *Model) GetAllWays() []*Way {
	ans := []*Way{}
	for _, rb := range model.RoadBases() {
		ans = append(ans, rb.GetAllWays()...)
	}
	for _, sw := range model.sideWalks {
		if isNilRoadBase(sw.Parent) {
			ans = append(ans, sw.GetAllWays()...)
		}
	}
	return ans
}

// Check verifies cross references of model: neighbours must belong to model
// and every intersection border leading to road must be border of one of its lanes
func (model *Model) Check() error {
	for _, r := range model.roads {
		for _, n := range r.GetNeighbors() {
			if n.ParentModel() != model {
				return errors.Wrapf(ErrBrokenReference, "road #%d links to road base outside of model", r.ID)
			}
		}
		for _, lane := range r.GetAllLanes() {
			if lane.Parent != r {
				return errors.Wrapf(ErrBrokenReference, "lane of road #%d has wrong parent", r.ID)
			}
		}
	}
	for _, it := range model.intersections {
		for _, e := range it.Edges {
			if !e.IsBorder() {
				continue
			}
			if e.Road.ParentModel() != model {
				return errors.Wrapf(ErrBrokenReference, "intersection #%d links to road base outside of model", it.ID)
			}
			road, ok := e.Road.(*Road)
			if !ok {
				continue
			}
			found := false
			for _, lane := range road.GetAllLanes() {
				if e.Border.IsSameLineReference(lane.PrevBorder) || e.Border.IsSameLineReference(lane.NextBorder) {
					found = true
					break
				}
			}
			if !found {
				return errors.Wrapf(ErrBrokenReference, "intersection #%d has stale border of road #%d", it.ID, road.ID)
			}
		}
	}
	for _, sw := range model.sideWalks {
		if !isNilRoadBase(sw.Parent) && sw.Parent.ParentModel() != model {
			return errors.Wrapf(ErrBrokenReference, "side walk #%d is attached to road base outside of model", sw.ID)
		}
	}
	return nil
}
