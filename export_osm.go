package mesh2rn

import (
	"encoding/xml"
	"strconv"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// BuildOSM converts model into OSM document. Every distinct point becomes node positioned by proj (nil keeps
// lon=X, lat=Y). Every exported way is tagged with mesh2rn:kind, mesh2rn:id, mesh2rn:lane and mesh2rn:turn
func BuildOSM(model *Model, proj Projection) *osm.OSM {
	doc := &osm.OSM{
		Version:   0.6,
		Generator: "mesh2rn " + model.FactoryVersion,
	}
	nodeIDs := make(map[*Point]osm.NodeID)
	nodeID := func(p *Point) osm.NodeID {
		if id, ok := nodeIDs[p]; ok {
			return id
		}
		id := osm.NodeID(len(nodeIDs) + 1)
		nodeIDs[p] = id
		lon, lat := proj.apply(p.Vector)
		doc.Nodes = append(doc.Nodes, &osm.Node{
			ID:      id,
			Lat:     lat,
			Lon:     lon,
			Visible: true,
			Version: 1,
			Tags:    osm.Tags{{Key: "ele", Value: strconv.FormatFloat(p.Vector.Z, 'f', 3, 64)}},
		})
		return id
	}
	for i, ew := range CollectExportedWays(model) {
		way := &osm.Way{
			ID:      osm.WayID(i + 1),
			Visible: true,
			Version: 1,
			Tags: osm.Tags{
				{Key: "mesh2rn:kind", Value: ew.Kind.String()},
				{Key: "mesh2rn:id", Value: strconv.Itoa(ew.OwnerID)},
			},
		}
		if ew.Lane >= 0 {
			way.Tags = append(way.Tags, osm.Tag{Key: "mesh2rn:lane", Value: strconv.Itoa(ew.Lane)})
		}
		if ew.Kind == EXPORT_TRACK {
			way.Tags = append(way.Tags, osm.Tag{Key: "mesh2rn:turn", Value: ew.Turn.String()})
		}
		for _, p := range ew.Points {
			way.Nodes = append(way.Nodes, osm.WayNode{ID: nodeID(p)})
		}
		doc.Ways = append(doc.Ways, way)
	}
	return doc
}

// ExportOSM returns OSM XML document of model
func ExportOSM(model *Model, proj Projection) ([]byte, error) {
	b, err := xml.MarshalIndent(BuildOSM(model, proj), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "Can't marshal OSM document")
	}
	return append([]byte(xml.Header), b...), nil
}
