package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"gridmap/config"
	"gridmap/geo"
	"gridmap/grid"
)

// parseBounds reads "north,south,east,west" in degrees.
func parseBounds(s string) (geo.Viewport, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geo.Viewport{}, fmt.Errorf("bounds %q: want north,south,east,west", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geo.Viewport{}, fmt.Errorf("bounds %q: %w", s, err)
		}
		v[i] = f
	}
	vp := geo.Viewport{North: v[0], South: v[1], East: v[2], West: v[3]}
	if !vp.Valid() {
		return vp, fmt.Errorf("bounds %q: not a valid viewport", s)
	}
	return vp, nil
}

// parseCenter reads "lat,lon" in degrees.
func parseCenter(s string) (orb.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("center %q: want lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("center %q: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("center %q: %w", s, err)
	}
	return orb.Point{lon, lat}, nil
}

// featureCollection turns a grid result into GeoJSON: a LineString per
// grid line and a Point per label.
func featureCollection(system grid.System, res grid.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, l := range res.Lines {
		f := geojson.NewFeature(l.Path)
		f.Properties["system"] = system.String()
		f.Properties["kind"] = l.Kind.String()
		f.Properties["color"] = l.Style.Color
		f.Properties["opacity"] = l.Style.Opacity
		f.Properties["weight"] = l.Style.Weight
		fc.Append(f)
	}
	for _, lb := range res.Labels {
		f := geojson.NewFeature(lb.Point)
		f.Properties["system"] = system.String()
		f.Properties["label"] = lb.Text
		fc.Append(f)
	}
	fc.ExtraMembers = geojson.Properties{
		"zoom":     res.State.Zoom,
		"interval": res.State.Spacing.Interval,
	}
	if res.State.Spacing.Label != "" {
		fc.ExtraMembers["spacing"] = res.State.Spacing.Label
	}
	return fc
}

// exportGrid computes one grid for a fixed view. Redraw errors are logged
// and whatever could be drawn is exported, the same as on screen.
func exportGrid(conf config.Config, req grid.Request) (*geojson.FeatureCollection, error) {
	opts, err := conf.GridOptions()
	if err != nil {
		return nil, err
	}
	g, err := grid.New(conf.System(), opts)
	if err != nil {
		return nil, err
	}
	res, err := g.Compute(req)
	for _, e := range multierr.Errors(err) {
		log.Printf("export %s: skipped: %v", conf.System(), e)
	}
	log.Printf("export %s: zoom %d, %d lines", conf.System(), res.State.Zoom, len(res.Lines))
	return featureCollection(conf.System(), res), nil
}

func newExportCmd(configPath *string) *cobra.Command {
	var (
		system string
		bounds string
		center string
		zoom   int
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the grid for a fixed view as GeoJSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(os.Stderr)

			conf, err := loadConfig(*configPath, system, -1)
			if err != nil {
				return err
			}
			vp, err := parseBounds(bounds)
			if err != nil {
				return err
			}
			req := grid.Request{Visible: vp, Zoom: grid.ClampZoom(zoom), Center: vp.Center()}
			if center != "" {
				if req.Center, err = parseCenter(center); err != nil {
					return err
				}
			}

			fc, err := exportGrid(conf, req)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(fc)
		},
	}
	cmd.Flags().StringVarP(&system, "system", "s", "", "grid system: dd, dms, utm, mgrs, metric, imperial")
	cmd.Flags().StringVarP(&bounds, "bounds", "b", "", "visible bounds as north,south,east,west")
	cmd.Flags().StringVar(&center, "center", "", "view centre as lat,lon (default: middle of bounds)")
	cmd.Flags().IntVarP(&zoom, "zoom", "z", 10, "zoom level")
	cmd.MarkFlagRequired("bounds")
	return cmd
}
