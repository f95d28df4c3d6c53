package mesh2rn

// RoadBase is common part of roads and intersections
type RoadBase interface {
	GetID() int
	ParentModel() *Model
	SideWalks() []*SideWalk
	TargetFeatures() []*Feature
	GetNeighbors() []RoadBase
	ReplaceNeighbor(from, to RoadBase)
	GetAllWays() []*Way
	base() *roadBase
}

type roadBase struct {
	ID        int
	parent    *Model
	sideWalks []*SideWalk
	targets   []*Feature
}

func (rb *roadBase) base() *roadBase {
	return rb
}

// GetID returns identifier assigned by parent model (zero if the object has not been added to a model)
func (rb *roadBase) GetID() int {
	return rb.ID
}

// ParentModel returns model owning the object
func (rb *roadBase) ParentModel() *Model {
	return rb.parent
}

// SideWalks returns side walks attached to the object
func (rb *roadBase) SideWalks() []*SideWalk {
	return rb.sideWalks
}

// TargetFeatures returns source features the object has been built from
func (rb *roadBase) TargetFeatures() []*Feature {
	return rb.targets
}

// AddTargetFeature appends source feature unless it is already present
func (rb *roadBase) AddTargetFeature(feature *Feature) {
	if feature == nil {
		return
	}
	for _, f := range rb.targets {
		if f == feature {
			return
		}
	}
	rb.targets = append(rb.targets, feature)
}

func (rb *roadBase) addSideWalk(sw *SideWalk) {
	for _, s := range rb.sideWalks {
		if s == sw {
			return
		}
	}
	rb.sideWalks = append(rb.sideWalks, sw)
}

func (rb *roadBase) removeSideWalk(sw *SideWalk) {
	for i, s := range rb.sideWalks {
		if s == sw {
			rb.sideWalks = append(rb.sideWalks[:i], rb.sideWalks[i+1:]...)
			return
		}
	}
}

func (rb *roadBase) sideWalkWays() []*Way {
	ans := []*Way{}
	for _, sw := range rb.sideWalks {
		ans = append(ans, sw.GetAllWays()...)
	}
	return ans
}

// isNilRoadBase reports whether rb is nil interface or typed nil pointer
func isNilRoadBase(rb RoadBase) bool {
	switch v := rb.(type) {
	case nil:
		return true
	case *Road:
		return v == nil
	case *Intersection:
		return v == nil
	default:
		return false
	}
}
