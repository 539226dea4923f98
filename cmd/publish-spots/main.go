package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/go-redis/redis/v8"

	"github.com/kyotoguide/spot-utils/pkg/geostore"
	"github.com/kyotoguide/spot-utils/pkg/spots"
)

func main() {
	log.SetFlags(0)
	csvFile := flag.String("csv", "", "Name or URL of the facility CSV to process")
	snapshot := flag.String("snapshot", "", "Name of a gob snapshot to load instead of a CSV")
	redisAddr := flag.String("redis", "localhost:6379", "Address of the Redis server")
	redisPassword := flag.String("password", "", "Password for the Redis server")
	redisDB := flag.Int("db", 0, "Redis database number")
	flag.Parse()
	all, err := loadSpots(*csvFile, *snapshot)
	if err != nil {
		log.Fatal(err)
	}
	client := geostore.NewRedisClient(redis.NewClient(&redis.Options{
		Addr:     *redisAddr,
		Password: *redisPassword,
		DB:       *redisDB,
	}))
	ctx := context.Background()
	if err := client.Ping(ctx); err != nil {
		log.Fatalf("error connecting to redis at %s: %v", *redisAddr, err)
	}
	store := geostore.NewSpotStore(client)
	if err := store.Publish(ctx, all); err != nil {
		log.Fatal(err)
	}
	log.Printf("Published %d spots to %s", len(all), *redisAddr)
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
