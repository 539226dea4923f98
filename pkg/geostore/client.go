// Package geostore publishes the spot collection to a Redis geo set so that
// application backends can query it without compiling the data in.
package geostore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// GeoClient is the slice of Redis this package needs. The Redis
// implementation is below; tests use MockClient.
type GeoClient interface {
	Ping(ctx context.Context) error
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	AddLocation(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error
	LocationsWithinRadius(ctx context.Context, geoKey string, lat, lon, radiusKm float64) ([]string, error)
}

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisClient) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

// AddLocation stores the member in the geo set and its JSON document under
// the member key.
func (r *RedisClient) AddLocation(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %v", err)
	}
	if _, err := r.client.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      memberKey,
		Latitude:  lat,
		Longitude: lon,
	}).Result(); err != nil {
		return fmt.Errorf("failed to add geolocation: %v", err)
	}
	if err := r.Set(ctx, memberKey, string(jsonData)); err != nil {
		return fmt.Errorf("failed to set JSON data: %v", err)
	}
	return nil
}

// LocationsWithinRadius returns the JSON documents of the members within
// radiusKm of the given point.
func (r *RedisClient) LocationsWithinRadius(ctx context.Context, geoKey string, lat, lon, radiusKm float64) ([]string, error) {
	results, err := r.client.GeoRadius(ctx, geoKey, lon, lat, &redis.GeoRadiusQuery{
		Radius: radiusKm,
		Unit:   "km",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get nearby locations: %v", err)
	}
	var docs []string
	for _, loc := range results {
		data, err := r.client.Get(ctx, loc.Name).Result()
		if err != nil {
			// The geo entry outlived its document; skip it.
			continue
		}
		docs = append(docs, data)
	}
	return docs, nil
}
