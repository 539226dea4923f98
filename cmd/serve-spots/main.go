package main

import (
	"errors"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/kyotoguide/spot-utils/pkg/server"
	"github.com/kyotoguide/spot-utils/pkg/spots"
)

func main() {
	csvFile := flag.String("csv", "", "Name or URL of the facility CSV to process")
	snapshot := flag.String("snapshot", "", "Name of a gob snapshot to load instead of a CSV")
	flag.Parse()
	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8000"
	}
	all, err := loadSpots(*csvFile, *snapshot)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Serving %d spots on %s", len(all), listenAddr)
	router := server.NewRouter(server.NewSpotsHandler(all))
	log.Fatal(http.ListenAndServe(listenAddr, router))
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
