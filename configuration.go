package mesh2rn

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Configuration is file representation of factory and graph builder parameters
type Configuration struct {
	// Plane is one of 'xy', 'xz', 'yz'
	Plane string `yaml:"plane" toml:"plane"`

	Weld struct {
		Enabled         bool    `yaml:"enabled" toml:"enabled"`
		CellSize        float64 `yaml:"cell_size" toml:"cell_size"`
		MergeCellRadius int     `yaml:"merge_cell_radius" toml:"merge_cell_radius"`
	} `yaml:"weld" toml:"weld"`
	// Negative value disables corresponding collinearity test
	CollinearAngle    float64 `yaml:"collinear_angle" toml:"collinear_angle"`
	CollinearDistance float64 `yaml:"collinear_distance" toml:"collinear_distance"`
	HeightTolerance   float64 `yaml:"height_tolerance" toml:"height_tolerance"`
	NearEdgeTolerance float64 `yaml:"near_edge_tolerance" toml:"near_edge_tolerance"`

	IgnoreHighway bool `yaml:"ignore_highway" toml:"ignore_highway"`

	SideWalk struct {
		Enabled     bool    `yaml:"enabled" toml:"enabled"`
		Size        float64 `yaml:"size" toml:"size"`
		MinRoadSize float64 `yaml:"min_road_size" toml:"min_road_size"`
	} `yaml:"sidewalk" toml:"sidewalk"`

	Median struct {
		Enabled     bool    `yaml:"enabled" toml:"enabled"`
		Width       float64 `yaml:"width" toml:"width"`
		MaxLaneRate float64 `yaml:"max_lane_rate" toml:"max_lane_rate"`
	} `yaml:"median" toml:"median"`

	Calibration struct {
		Enabled       bool    `yaml:"enabled" toml:"enabled"`
		MaxOffset     float64 `yaml:"max_offset" toml:"max_offset"`
		MinRoadLength float64 `yaml:"min_road_length" toml:"min_road_length"`
	} `yaml:"calibration" toml:"calibration"`

	SeparateContinuousBorder bool    `yaml:"separate_continuous_border" toml:"separate_continuous_border"`
	MergeRoadGroup           bool    `yaml:"merge_road_group" toml:"merge_road_group"`
	AllowSelfTrack           bool    `yaml:"allow_self_track" toml:"allow_self_track"`
	RoadSize                 float64 `yaml:"road_size" toml:"road_size"`
}

// DefaultConfiguration returns configuration matching defaults of NewFactory and NewGraphBuilder
func DefaultConfiguration() *Configuration {
	cfg := &Configuration{
		Plane:                    "xy",
		CollinearAngle:           0.5,
		CollinearDistance:        -1,
		HeightTolerance:          1,
		NearEdgeTolerance:        0.1,
		SeparateContinuousBorder: true,
		MergeRoadGroup:           true,
	}
	cfg.Weld.Enabled = true
	cfg.Weld.CellSize = 0.1
	cfg.Weld.MergeCellRadius = 1
	cfg.SideWalk.Enabled = true
	cfg.SideWalk.Size = 3
	cfg.SideWalk.MinRoadSize = 12
	cfg.Median.Enabled = true
	cfg.Median.Width = 1
	cfg.Median.MaxLaneRate = 0.5
	cfg.Calibration.Enabled = true
	cfg.Calibration.MaxOffset = 10
	cfg.Calibration.MinRoadLength = 10
	return cfg
}

// LoadConfiguration reads configuration file on top of defaults. Format is picked by extension: .yaml/.yml or .toml
func LoadConfiguration(fileName string) (*Configuration, error) {
	cfg := DefaultConfiguration()
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read configuration file")
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "Can't read configuration '%s'", fileName)
	}
	if err != nil {
		return nil, errors.Wrap(err, "Can't decode configuration")
	}
	return cfg, nil
}

// GraphOptions converts configuration to graph builder options
func (cfg *Configuration) GraphOptions() []func(*GraphBuilder) {
	return []func(*GraphBuilder){
		WithPlane(ParseAxisPlane(cfg.Plane)),
		WithVertexWeld(cfg.Weld.Enabled, cfg.Weld.CellSize, cfg.Weld.MergeCellRadius),
		WithCollinearTolerance(cfg.CollinearAngle, cfg.CollinearDistance),
		WithInsertEdgeIntersection(true, cfg.HeightTolerance),
		WithInsertNearEdge(cfg.NearEdgeTolerance > 0, cfg.NearEdgeTolerance),
	}
}

// FactoryOptions converts configuration to factory options
func (cfg *Configuration) FactoryOptions() []func(*Factory) {
	return []func(*Factory){
		WithGraphOptions(cfg.GraphOptions()...),
		WithIgnoreHighway(cfg.IgnoreHighway),
		WithAddSideWalk(cfg.SideWalk.Enabled, cfg.SideWalk.Size, cfg.SideWalk.MinRoadSize),
		WithMedian(cfg.Median.Enabled, cfg.Median.Width, cfg.Median.MaxLaneRate),
		WithCalibration(cfg.Calibration.Enabled, cfg.Calibration.MaxOffset, cfg.Calibration.MinRoadLength),
		WithSeparateContinuousBorder(cfg.SeparateContinuousBorder),
		WithMergeRoadGroup(cfg.MergeRoadGroup),
		WithAllowSelfTrack(cfg.AllowSelfTrack),
		WithRoadSize(cfg.RoadSize),
	}
}
