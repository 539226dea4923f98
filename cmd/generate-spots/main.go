package main

import (
	"log"
	"math/rand"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kyotoguide/spot-utils/pkg/gen"
	"github.com/kyotoguide/spot-utils/pkg/spots"
)

func main() {
	log.SetFlags(0)
	app := &cli.App{
		Name:  "generate-spots",
		Usage: "Generate a Go data module from a municipal tourist facility CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "csv",
				Aliases:  []string{"c"},
				Usage:    "Name or URL of the facility CSV to process",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "Name of the Go source file to write",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "package",
				Usage: "Package name for the generated file",
				Value: "spotdata",
			},
			&cli.StringFlag{
				Name:  "var",
				Usage: "Name of the generated spot slice",
				Value: "Spots",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "Seed for congestion levels, set for reproducible output",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Replace the default exclusion keywords",
			},
		},
		Action: generate,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(c *cli.Context) error {
	var opts []spots.Option
	if c.IsSet("seed") {
		opts = append(opts, spots.WithRand(rand.New(rand.NewSource(c.Int64("seed")))))
	}
	if c.IsSet("exclude") {
		opts = append(opts, spots.WithExcludeKeywords(c.StringSlice("exclude")...))
	}
	b := spots.NewBuilder(opts...)
	all, err := b.Collect(c.String("csv"))
	if err != nil {
		return err
	}
	stats := b.Stats()
	log.Printf("Read %d rows, kept %d, dropped %d", stats.Rows, stats.Kept, stats.Rows-stats.Kept)
	m := gen.Module{
		Package: c.String("package"),
		Var:     c.String("var"),
		Source:  c.String("csv"),
		Spots:   all,
	}
	if err := m.WriteFile(c.String("out")); err != nil {
		return err
	}
	log.Printf("Wrote %d spots to %s", len(all), c.String("out"))
	return nil
}
