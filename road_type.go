package mesh2rn

import (
	"strings"
)

// RoadType is bitmask of land feature kinds carried by a graph Face
type RoadType uint16

const (
	ROAD_TYPE_ROAD = RoadType(1 << iota)
	ROAD_TYPE_SIDEWALK
	ROAD_TYPE_MEDIAN
	ROAD_TYPE_HIGHWAY
	ROAD_TYPE_LANE
	ROAD_TYPE_UNDEFINED

	ROAD_TYPE_EMPTY = RoadType(0)
	ROAD_TYPE_ALL   = ROAD_TYPE_ROAD | ROAD_TYPE_SIDEWALK | ROAD_TYPE_MEDIAN | ROAD_TYPE_HIGHWAY | ROAD_TYPE_LANE | ROAD_TYPE_UNDEFINED
)

var roadTypeNames = [...]string{"road", "sidewalk", "median", "highway", "lane", "undefined"}

func (mask RoadType) String() string {
	if mask == ROAD_TYPE_EMPTY {
		return "empty"
	}
	names := make([]string, 0, len(roadTypeNames))
	for i, name := range roadTypeNames {
		if mask&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// Has reports whether every bit of flag is set
func (mask RoadType) Has(flag RoadType) bool {
	return mask&flag == flag
}

// HasAny reports whether at least one bit of flag is set
func (mask RoadType) HasAny(flag RoadType) bool {
	return mask&flag != 0
}

// IsSideWalk reports whether mask denotes sidewalk
func (mask RoadType) IsSideWalk() bool {
	return mask.HasAny(ROAD_TYPE_SIDEWALK)
}

// IsRoad reports whether mask denotes carriageway (median included)
func (mask RoadType) IsRoad() bool {
	return mask.HasAny(ROAD_TYPE_ROAD)
}

// IsMedian reports whether mask denotes median strip
func (mask RoadType) IsMedian() bool {
	return mask.HasAny(ROAD_TYPE_MEDIAN)
}

// IsHighWay reports whether mask denotes highway
func (mask RoadType) IsHighWay() bool {
	return mask.HasAny(ROAD_TYPE_HIGHWAY)
}

// IsSameClass is default face-group equivalence: masks are equal after clearing road, median, lane and undefined bits
func IsSameClass(a, b RoadType) bool {
	ignore := ROAD_TYPE_ROAD | ROAD_TYPE_MEDIAN | ROAD_TYPE_LANE | ROAD_TYPE_UNDEFINED
	return a&^ignore == b&^ignore
}

// roadTypeByFunction maps well-known values of transportation "function" attribute to mask bits
var roadTypeByFunction = map[string]RoadType{
	"車道部":        ROAD_TYPE_ROAD,
	"車道交差部":      ROAD_TYPE_ROAD,
	"road":       ROAD_TYPE_ROAD,
	"carriageway": ROAD_TYPE_ROAD,
	"歩道部":        ROAD_TYPE_SIDEWALK,
	"歩道":         ROAD_TYPE_SIDEWALK,
	"sidewalk":   ROAD_TYPE_SIDEWALK,
	"島":          ROAD_TYPE_ROAD | ROAD_TYPE_MEDIAN,
	"中央帯":        ROAD_TYPE_ROAD | ROAD_TYPE_MEDIAN,
	"median":     ROAD_TYPE_ROAD | ROAD_TYPE_MEDIAN,
	"自動車専用道路":    ROAD_TYPE_ROAD | ROAD_TYPE_HIGHWAY,
	"highway":    ROAD_TYPE_ROAD | ROAD_TYPE_HIGHWAY,
	"車線":         ROAD_TYPE_ROAD | ROAD_TYPE_LANE,
	"lane":       ROAD_TYPE_ROAD | ROAD_TYPE_LANE,
}

// ParseRoadType converts attribute classification string to mask. Unknown values give undefined bit
func ParseRoadType(function string) RoadType {
	key := strings.TrimSpace(function)
	if mask, ok := roadTypeByFunction[key]; ok {
		return mask
	}
	if mask, ok := roadTypeByFunction[strings.ToLower(key)]; ok {
		return mask
	}
	return ROAD_TYPE_UNDEFINED
}
