package mesh2rn

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// FactoryVersion is stamped into every produced model
const FactoryVersion = "1.0.0"

// Factory converts source features into road network model
type Factory struct {
	ignoreHighway bool

	addSideWalk             bool
	lod1SideWalkSize        float64
	lod1SideWalkMinRoadSize float64

	checkMedian       bool
	medianWidth       float64
	maxMedianLaneRate float64

	calibrateIntersection   bool
	calibrateMaxOffset      float64
	calibrateNeedRoadLength float64

	separateContinuousBorder bool
	mergeRoadGroup           bool
	allowSelfTrack           bool
	roadSize                 float64

	graphOptions []func(*GraphBuilder)
	logger       *slog.Logger
}

// NewFactory returns factory with default parameters
func NewFactory(options ...func(*Factory)) *Factory {
	factory := &Factory{
		ignoreHighway:            false,
		addSideWalk:              true,
		lod1SideWalkSize:         3,
		lod1SideWalkMinRoadSize:  12,
		checkMedian:              true,
		medianWidth:              1,
		maxMedianLaneRate:        0.5,
		calibrateIntersection:    true,
		calibrateMaxOffset:       10,
		calibrateNeedRoadLength:  10,
		separateContinuousBorder: true,
		mergeRoadGroup:           true,
		allowSelfTrack:           false,
		roadSize:                 0,
		logger:                   discardLogger(),
	}
	for _, option := range options {
		option(factory)
	}
	return factory
}

func (factory *Factory) String() string {
	return fmt.Sprintf(`
Factory parameters:
	ignore highway?: %t
	add LOD1 side walks?: %t
	lod1_sidewalk_size: %f
	lod1_sidewalk_min_road_size: %f
	check median?: %t
	median_width: %f
	max_median_lane_rate: %f
	calibrate intersections?: %t
	calibrate_max_offset: %f
	calibrate_need_road_length: %f
	separate continuous borders?: %t
	merge road groups?: %t
	allow self tracks?: %t
	road_size: %f
	graph options: %d
	`,
		factory.ignoreHighway,
		factory.addSideWalk,
		factory.lod1SideWalkSize,
		factory.lod1SideWalkMinRoadSize,
		factory.checkMedian,
		factory.medianWidth,
		factory.maxMedianLaneRate,
		factory.calibrateIntersection,
		factory.calibrateMaxOffset,
		factory.calibrateNeedRoadLength,
		factory.separateContinuousBorder,
		factory.mergeRoadGroup,
		factory.allowSelfTrack,
		factory.roadSize,
		len(factory.graphOptions),
	)
}

// WithIgnoreHighway skips face groups of highways
func WithIgnoreHighway(ignore bool) func(*Factory) {
	return func(factory *Factory) {
		factory.ignoreHighway = ignore
	}
}

// WithAddSideWalk enables LOD1 side walk synthesis for roads wider than minRoadSize
func WithAddSideWalk(enabled bool, size, minRoadSize float64) func(*Factory) {
	return func(factory *Factory) {
		factory.addSideWalk = enabled
		factory.lod1SideWalkSize = size
		factory.lod1SideWalkMinRoadSize = minRoadSize
	}
}

// WithMedian configures median creation from lane faces
func WithMedian(enabled bool, width, maxLaneRate float64) func(*Factory) {
	return func(factory *Factory) {
		factory.checkMedian = enabled
		factory.medianWidth = width
		factory.maxMedianLaneRate = maxLaneRate
	}
}

// WithCalibration configures intersection border calibration
func WithCalibration(enabled bool, maxOffset, needRoadLength float64) func(*Factory) {
	return func(factory *Factory) {
		factory.calibrateIntersection = enabled
		factory.calibrateMaxOffset = maxOffset
		factory.calibrateNeedRoadLength = needRoadLength
	}
}

func WithSeparateContinuousBorder(enabled bool) func(*Factory) {
	return func(factory *Factory) {
		factory.separateContinuousBorder = enabled
	}
}

func WithMergeRoadGroup(enabled bool) func(*Factory) {
	return func(factory *Factory) {
		factory.mergeRoadGroup = enabled
	}
}

// WithAllowSelfTrack allows U-turn tracks into the same road
func WithAllowSelfTrack(allow bool) func(*Factory) {
	return func(factory *Factory) {
		factory.allowSelfTrack = allow
	}
}

// WithRoadSize sets nominal lane width used to split lanes by road width. Non-positive value disables splitting
func WithRoadSize(size float64) func(*Factory) {
	return func(factory *Factory) {
		factory.roadSize = size
	}
}

// WithGraphOptions passes options to graph builder
func WithGraphOptions(options ...func(*GraphBuilder)) func(*Factory) {
	return func(factory *Factory) {
		factory.graphOptions = append(factory.graphOptions, options...)
	}
}

// WithLogger sets logger for factory and graph builder
func WithLogger(logger *slog.Logger) func(*Factory) {
	return func(factory *Factory) {
		if logger != nil {
			factory.logger = logger
		}
	}
}

// FeatureError is feature which could not be read
type FeatureError struct {
	Name string
	Err  error
}

// SkippedGroup is face group left out of model
type SkippedGroup struct {
	Feature *Feature
	Reason  error
}

// StageTiming is duration of single pipeline stage
type StageTiming struct {
	Stage   string
	Elapsed time.Duration
}

// Report collects problems and timings of single conversion
type Report struct {
	FeatureErrors []FeatureError
	Skipped       []SkippedGroup
	Timings       []StageTiming
	Err           error
}

func (report *Report) String() string {
	var str strings.Builder
	str.WriteString("Report is:\n")
	if report.Err != nil {
		str.WriteString(fmt.Sprintf("\tError: %v\n", report.Err))
	}
	str.WriteString(fmt.Sprintf("\tFeature errors: %d\n", len(report.FeatureErrors)))
	for _, fe := range report.FeatureErrors {
		str.WriteString(fmt.Sprintf("\t\t%s: %v\n", fe.Name, fe.Err))
	}
	str.WriteString(fmt.Sprintf("\tSkipped groups: %d\n", len(report.Skipped)))
	for _, sg := range report.Skipped {
		str.WriteString(fmt.Sprintf("\t\t%s: %v\n", sg.Feature, sg.Reason))
	}
	for _, st := range report.Timings {
		str.WriteString(fmt.Sprintf("\t%s: %v\n", st.Stage, st.Elapsed))
	}
	return str.String()
}

// stage runs fn and records its duration
func (factory *Factory) stage(report *Report, name string, fn func() []any) {
	done := logStage(factory.logger, name)
	st := time.Now()
	args := fn()
	report.Timings = append(report.Timings, StageTiming{Stage: name, Elapsed: time.Since(st)})
	done(args...)
}

func emptyModel() *Model {
	model := NewModel()
	model.FactoryVersion = FactoryVersion
	return model
}

// CreateRnModel reads features from provider and builds road network model.
// Model is never nil: on failure it is empty and Report.Err tells why
func (factory *Factory) CreateRnModel(provider MeshProvider) (*Model, *Report) {
	report := &Report{}
	factory.logger.Debug(factory.String())

	features := []*Feature{}
	var loadErr error
	factory.stage(report, "features loading", func() []any {
		results, err := provider.Features()
		if err != nil {
			loadErr = errors.Wrap(err, "Can't load features")
			return nil
		}
		for _, res := range results {
			if res.Err != nil {
				report.FeatureErrors = append(report.FeatureErrors, FeatureError{Name: res.Name, Err: res.Err})
				factory.logger.Warn("Feature skipped", "name", res.Name, "err", res.Err)
				continue
			}
			features = append(features, res.Feature)
		}
		return []any{"features", len(features), "errors", len(report.FeatureErrors)}
	})
	if loadErr != nil {
		report.Err = loadErr
		return emptyModel(), report
	}
	if len(features) == 0 {
		report.Err = ErrNoFeatures
		return emptyModel(), report
	}

	var graph *Graph
	factory.stage(report, "graph", func() []any {
		options := append([]func(*GraphBuilder){WithGraphLogger(factory.logger)}, factory.graphOptions...)
		graph, loadErr = BuildGraph(features, options...)
		if loadErr != nil {
			return nil
		}
		return []any{"vertices", graph.VertexCount(), "edges", graph.EdgeCount(), "faces", graph.FaceCount()}
	})
	if loadErr != nil {
		report.Err = errors.Wrap(loadErr, "Can't build graph")
		return emptyModel(), report
	}
	return factory.CreateRnModelFromGraph(graph, report), report
}

// CreateRnModelFromGraph runs classification and lane/track synthesis over prepared graph
func (factory *Factory) CreateRnModelFromGraph(graph *Graph, report *Report) *Model {
	if report == nil {
		report = &Report{}
	}
	model := emptyModel()
	w := newWork(graph)

	groups := GroupBySameClass(graph)
	var trans []*tran
	factory.stage(report, "classification", func() []any {
		trans = factory.createTrans(w, groups, report)
		for _, t := range trans {
			t.build(w)
			if t.err != nil {
				report.Skipped = append(report.Skipped, SkippedGroup{Feature: t.group.Feature, Reason: t.err})
				factory.logger.Warn("Face group skipped", "feature", t.group.Feature, "err", t.err)
			}
		}
		return []any{"groups", len(trans), "skipped", len(report.Skipped)}
	})

	factory.stage(report, "connections", func() []any {
		n := BuildConnection(model, trans)
		return []any{"road_bases", n}
	})
	if model.IsEmpty() {
		factory.logger.Warn("No face group classified")
		return model
	}

	factory.stage(report, "side walks", func() []any {
		n := createSideWalksFromGroups(w, model, groups, trans)
		if factory.addSideWalk {
			n += model.CreateSideWalk(factory.lod1SideWalkSize, factory.lod1SideWalkMinRoadSize)
		}
		return []any{"side_walks", n}
	})

	if factory.separateContinuousBorder {
		factory.stage(report, "continuous borders separation", func() []any {
			return []any{"inserted", model.SeparateContinuousBorder()}
		})
	}

	factory.stage(report, "lane counts", func() []any {
		medianWidth := 0.0
		if factory.checkMedian {
			medianWidth = factory.medianWidth
		}
		n := 0
		for _, t := range trans {
			road, ok := t.roadBase.(*Road)
			if !ok || road.ParentModel() != model {
				continue
			}
			lanes := t.group.CountFaces(ROAD_TYPE_LANE)
			if lanes < 2 {
				continue
			}
			if model.SetLaneCountFromFaces(road, lanes, medianWidth, factory.maxMedianLaneRate) {
				n++
			}
		}
		return []any{"roads", n}
	})

	if factory.mergeRoadGroup {
		factory.stage(report, "road groups merge", func() []any {
			return []any{"removed", model.MergeRoadGroup()}
		})
	}

	if factory.calibrateIntersection {
		factory.stage(report, "intersection calibration", func() []any {
			return []any{"calibrated", model.CalibrateIntersectionBorder(factory.calibrateMaxOffset, factory.calibrateNeedRoadLength)}
		})
	}

	if factory.roadSize > 0 {
		factory.stage(report, "lanes split", func() []any {
			return []any{"roads", model.SplitLaneByWidth(factory.roadSize)}
		})
	}

	factory.stage(report, "tracks", func() []any {
		builder := NewRnTracksBuilder(WithSelfTrack(factory.allowSelfTrack), WithTracksLogger(factory.logger))
		n := 0
		for _, inter := range model.Intersections() {
			n += builder.BuildTracks(inter)
		}
		return []any{"tracks", n}
	})

	if err := model.Check(); err != nil {
		factory.logger.Warn("Model check failed", "err", err)
	}
	return model
}
