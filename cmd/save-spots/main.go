package main

import (
	"log"
	"os"

	"github.com/kyotoguide/spot-utils/pkg/spots"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) != 3 {
		log.Fatalf("Usage: %s CSV_FILE_OR_URL OUTFILE", os.Args[0])
	}
	b := spots.NewBuilder()
	all, err := b.Collect(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	if err := spots.SaveFile(os.Args[2], all); err != nil {
		log.Fatal(err)
	}
	stats := b.Stats()
	log.Printf("Kept %d of %d rows, saved to %s", stats.Kept, stats.Rows, os.Args[2])
}
