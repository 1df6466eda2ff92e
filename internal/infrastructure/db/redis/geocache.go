package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobhive/jobboard-api/internal/core/ports"
)

const geocacheTTL = 24 * time.Hour

// GeoCache caches geocoding results in Redis. Provider results are stable
// per query string, so entries live for a day.
// Key format: geocode:<lowercased query>
type GeoCache struct {
	client *redis.Client
}

// NewGeoCache creates a GeoCache wrapping the given Redis client.
func NewGeoCache(client *redis.Client) *GeoCache {
	return &GeoCache{client: client}
}

// Get returns the cached result for query, or (nil, nil) on a miss.
func (c *GeoCache) Get(ctx context.Context, query string) (*ports.GeocodeResult, error) {
	raw, err := c.client.Get(ctx, c.key(query)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("geocache get: %w", err)
	}

	var res ports.GeocodeResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("geocache decode: %w", err)
	}
	return &res, nil
}

// Put stores a resolved result (expires after geocacheTTL).
func (c *GeoCache) Put(ctx context.Context, query string, res *ports.GeocodeResult) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("geocache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(query), raw, geocacheTTL).Err()
}

func (c *GeoCache) key(query string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(query))
}
