package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/kyotoguide/spot-utils/pkg/spots"
)

func main() {
	log.SetFlags(0)
	csvFile := flag.String("csv", "", "Name or URL of the facility CSV to process")
	snapshot := flag.String("snapshot", "", "Name of a gob snapshot to load instead of a CSV")
	outFile := flag.String("out", "spots_map.html", "Name of the HTML file to write")
	flag.Parse()
	all, err := loadSpots(*csvFile, *snapshot)
	if err != nil {
		log.Fatal(err)
	}
	if err := plotSpots(all, *outFile); err != nil {
		log.Fatal(err)
	}
	log.Printf("Plotted %d spots to %s", len(all), *outFile)
}

func loadSpots(csvFile, snapshot string) ([]spots.Spot, error) {
	if csvFile != "" {
		return spots.NewBuilder().Collect(csvFile)
	}
	if snapshot != "" {
		return spots.LoadFile(snapshot)
	}
	return nil, errors.New("one of --csv or --snapshot is required")
}

// plotSpots renders a scatter map with one series per congestion level, so
// the chart legend doubles as a congestion key.
func plotSpots(all []spots.Spot, filename string) error {
	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Tourist Spots",
			Width:     "1200px",
			Height:    "800px",
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)
	for lvl := spots.MinCongestionLevel; lvl <= spots.MaxCongestionLevel; lvl++ {
		var points []opts.GeoData
		for _, s := range all {
			if s.CongestionLevel != lvl {
				continue
			}
			points = append(points, opts.GeoData{
				Name:  s.Name,
				Value: []float64{s.Location.Longitude, s.Location.Latitude, float64(s.CongestionLevel)},
			})
		}
		if len(points) == 0 {
			continue
		}
		geo.AddSeries(fmt.Sprintf("congestion %d", lvl), types.ChartScatter, points)
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating output file %s: %v", filename, err)
	}
	defer f.Close()
	if err := geo.Render(f); err != nil {
		return fmt.Errorf("error rendering chart to %s: %v", filename, err)
	}
	return nil
}
