package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/kyotoguide/spot-utils/pkg/opendata"
	"github.com/kyotoguide/spot-utils/pkg/spots"
)

func main() {
	log.SetFlags(0)
	list := flag.Bool("list", false, "List the rows that survive filtering instead of summarizing")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("Usage: %s [--list] CSV_FILE_OR_URL", os.Args[0])
	}
	var err error
	if *list {
		err = listRows(flag.Arg(0))
	} else {
		err = summarize(flag.Arg(0))
	}
	if err != nil {
		log.Fatal(err)
	}
}

func listRows(src string) error {
	var rows []opendata.Row
	err := opendata.ProcessSource(
		src,
		func(r opendata.Row) error {
			rows = append(rows, r)
			return nil
		},
		opendata.FilterNameContains(spots.DefaultExcludeKeywords...).Complement(),
		opendata.FilterHasName(),
		opendata.FilterHasCoordinates(),
	)
	if err != nil {
		return err
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Field(opendata.ColName) < rows[j].Field(opendata.ColName)
	})
	for _, r := range rows {
		fmt.Printf("%s,%s,%s\n", r.Field(opendata.ColName), r.Field(opendata.ColLatitude), r.Field(opendata.ColLongitude))
	}
	return nil
}

func summarize(src string) error {
	b := spots.NewBuilder()
	all, err := b.Collect(src)
	if err != nil {
		return err
	}
	stats := b.Stats()
	fmt.Printf("Rows read: %d\n", stats.Rows)
	fmt.Printf("Spots kept: %d\n", stats.Kept)
	fmt.Printf("Rows dropped: %d\n", stats.Rows-stats.Kept)
	for _, reason := range spots.Reasons {
		if n := stats.Dropped[reason]; n > 0 {
			fmt.Printf("  %s: %d\n", reason, n)
		}
	}
	hist := make(map[int]int)
	for _, s := range all {
		hist[s.CongestionLevel]++
	}
	fmt.Println("Congestion levels:")
	for lvl := spots.MinCongestionLevel; lvl <= spots.MaxCongestionLevel; lvl++ {
		fmt.Printf("  %d: %d\n", lvl, hist[lvl])
	}
	return nil
}
