package main

import (
	"encoding/xml"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/twpayne/go-gpx"

	"github.com/kyotoguide/spot-utils/pkg/spots"
)

func main() {
	log.SetFlags(0)
	csvFile := flag.String("csv", "", "Name or URL of the facility CSV to process")
	snapshot := flag.String("snapshot", "", "Name of a gob snapshot to load instead of a CSV")
	outFile := flag.String("out", "", "Name of the GPX file to write (default stdout)")
	flag.Parse()
	all, err := loadSpots(*csvFile, *snapshot)
	if err != nil {
		log.Fatal(err)
	}
	if *outFile == "" {
		if err := writeGPX(all, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}
	wc, err := os.OpenFile(*outFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("error creating output file %s: %v", *outFile, err)
	}
	if err := writeGPX(all, wc); err != nil {
		wc.Close()
		log.Fatalf("error writing GPX to %s: %v", *outFile, err)
	}
	if err := wc.Close(); err != nil {
		log.Fatalf("error closing file %s: %v", *outFile, err)
	}
	log.Printf("Wrote %d waypoints to %s", len(all), *outFile)
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

func writeGPX(all []spots.Spot, w io.Writer) error {
	g := &gpx.GPX{
		Version: "1.1",
		Creator: "export-gpx",
		Wpt:     make([]*gpx.WptType, len(all)),
	}
	for i, s := range all {
		g.Wpt[i] = &gpx.WptType{
			Lat:  s.Location.Latitude,
			Lon:  s.Location.Longitude,
			Name: s.Name,
			Desc: s.Description,
			Cmt:  fmt.Sprintf("congestion %d/%d", s.CongestionLevel, spots.MaxCongestionLevel),
		}
	}
	if _, err := fmt.Fprint(w, xml.Header); err != nil {
		return err
	}
	return g.WriteIndent(w, "", "  ")
}
