package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/LdDl/mesh2rn"
	"github.com/pkg/errors"
)

var (
	inFiles    = flag.String("file", "roads.json", "Mesh files (.json / .yaml / .yml) separated by commas. Every file is converted independently")
	out        = flag.String("out", "", "Output directory. Defaults to directory of input file")
	outFormats = flag.String("format", "geojson", "Output formats separated by commas. Expected values: wkt / geojson / osm / csv")
	configFile = flag.String("config", "", "Optional configuration file (.yaml / .yml / .toml)")
	roadSize   = flag.Float64("road_size", -1, "Nominal lane width for lanes split. Overrides configuration when non-negative")
	selfTrack  = flag.Bool("self_track", false, "Allow U-turn tracks into the same road")
	mercator   = flag.Bool("web_mercator", false, "Treat XY of mesh as EPSG:3857 meters and write lon/lat in geojson and osm outputs")
	verbose    = flag.Bool("verbose", false, "Print pipeline stages")
)

func main() {
	flag.Parse()

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg := mesh2rn.DefaultConfiguration()
	if *configFile != "" {
		var err error
		cfg, err = mesh2rn.LoadConfiguration(*configFile)
		if err != nil {
			fmt.Println(err)
			return
		}
	}
	if *roadSize >= 0 {
		cfg.RoadSize = *roadSize
	}
	if *selfTrack {
		cfg.AllowSelfTrack = true
	}
	options := cfg.FactoryOptions()
	formats := strings.Split(*outFormats, ",")

	wg := sync.WaitGroup{}
	for _, fileName := range strings.Split(*inFiles, ",") {
		fileName = strings.TrimSpace(fileName)
		if fileName == "" {
			continue
		}
		wg.Add(1)
		go func(fileName string) {
			defer wg.Done()
			err := convert(fileName, formats, options, logger.With("file", fileName))
			if err != nil {
				fmt.Printf("%s: %v\n", fileName, err)
			}
		}(fileName)
	}
	wg.Wait()
}

func convert(fileName string, formats []string, options []func(*mesh2rn.Factory), logger *slog.Logger) error {
	factory := mesh2rn.NewFactory(append(options[:len(options):len(options)], mesh2rn.WithLogger(logger))...)
	model, report := factory.CreateRnModel(mesh2rn.NewFileMeshProvider(fileName))
	if report.Err != nil {
		return errors.Wrap(report.Err, "Can't create road network")
	}
	logger.Info("Model is ready", "model", model.String())
	if *verbose {
		fmt.Println(report)
	}

	dir := *out
	if dir == "" {
		dir = filepath.Dir(fileName)
	}
	var proj mesh2rn.Projection
	if *mercator {
		proj = mesh2rn.WebMercatorProjection
	}
	base := filepath.Join(dir, strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName)))
	for _, format := range formats {
		var err error
		switch strings.ToLower(strings.TrimSpace(format)) {
		case "wkt":
			err = os.WriteFile(base+".wkt", []byte(strings.Join(mesh2rn.ExportWKT(model), "\n")), 0644)
		case "geojson":
			var b []byte
			if b, err = mesh2rn.ExportGeoJSON(model, proj); err == nil {
				err = os.WriteFile(base+".geojson", b, 0644)
			}
		case "osm":
			var b []byte
			if b, err = mesh2rn.ExportOSM(model, proj); err == nil {
				err = os.WriteFile(base+".osm", b, 0644)
			}
		case "csv":
			err = mesh2rn.ExportToCSV(model, base+".csv")
		default:
			err = errors.Wrapf(mesh2rn.ErrUnsupportedFormat, "Output format '%s'", format)
		}
		if err != nil {
			return errors.Wrapf(err, "Can't export %s", format)
		}
	}
	return nil
}
