package mesh2rn

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ExportToCSV writes lanes and tracks of model. E.g. for 'net.csv' files 'net_lanes.csv' and 'net_tracks.csv' are created
func ExportToCSV(model *Model, fname string) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameLanes := fnameParts[0] + "_lanes.csv"
	fnameTracks := fnameParts[0] + "_tracks.csv"

	err := exportLanesToCSV(model, fnameLanes)
	if err != nil {
		return errors.Wrap(err, "Can't export lanes")
	}

	err = exportTracksToCSV(model, fnameTracks)
	if err != nil {
		return errors.Wrap(err, "Can't export tracks")
	}
	return nil
}

func newCSVFile(fname string) (*os.File, *csv.Writer, error) {
	file, err := os.Create(fname)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't create file")
	}
	writer := csv.NewWriter(file)
	writer.Comma = ';'
	return file, writer, nil
}

func exportLanesToCSV(model *Model, fname string) error {
	file, writer, err := newCSVFile(fname)
	if err != nil {
		return err
	}
	defer file.Close()

	err = writer.Write([]string{"road_id", "lane_index", "is_reversed", "is_median", "width", "length_meters", "prev_road_base", "next_road_base", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, road := range model.Roads() {
		for i, lane := range road.GetAllLanesWithMedian() {
			center := lane.CenterWay()
			geom, length := "", 0.0
			if center.IsValid() {
				geom = PrepareWKTLinestring(center.Vectors())
				length = center.CalcLength()
			}
			err = writer.Write([]string{
				fmt.Sprintf("%d", road.ID),
				fmt.Sprintf("%d", i),
				fmt.Sprintf("%t", lane.IsReversed),
				fmt.Sprintf("%t", lane.IsMedianLane()),
				fmt.Sprintf("%f", lane.CalcWidth()),
				fmt.Sprintf("%f", length),
				roadBaseName(road.Prev),
				roadBaseName(road.Next),
				geom,
			})
			if err != nil {
				return errors.Wrap(err, "Can't write lane")
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// trackRoad returns road base owning border of intersection
func trackRoad(inter *Intersection, border *Way) RoadBase {
	for _, edge := range inter.Edges {
		if edge.Border.IsSameLineReference(border) {
			return edge.Road
		}
	}
	return nil
}

func exportTracksToCSV(model *Model, fname string) error {
	file, writer, err := newCSVFile(fname)
	if err != nil {
		return err
	}
	defer file.Close()

	err = writer.Write([]string{"intersection_id", "track_index", "turn_type", "from_road_base", "to_road_base", "length_meters", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, inter := range model.Intersections() {
		for i, track := range inter.Tracks {
			err = writer.Write([]string{
				fmt.Sprintf("%d", inter.ID),
				fmt.Sprintf("%d", i),
				track.TurnType.String(),
				roadBaseName(trackRoad(inter, track.FromBorder)),
				roadBaseName(trackRoad(inter, track.ToBorder)),
				fmt.Sprintf("%f", track.Spline.CalcLength()),
				PrepareWKTLinestring(track.Spline.Vectors()),
			})
			if err != nil {
				return errors.Wrap(err, "Can't write track")
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
