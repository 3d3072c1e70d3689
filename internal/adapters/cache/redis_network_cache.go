package cache

import (
	"context"
	"encoding/json"
	"errors"
	"freight-route-service/internal/domain"
	"freight-route-service/internal/ports"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "freight:network:"

// LookupRecorder receives cache hit/miss events. platform/metrics implements it.
type LookupRecorder interface {
	ObserveCacheLookup(kind string, hit bool)
}

// RedisNetworkCache is a read-through cache in front of another NetworkLoader.
// Redis failures are logged and fall through to the wrapped loader.
type RedisNetworkCache struct {
	next     ports.NetworkLoader
	rdb      redis.UniversalClient
	ttl      time.Duration
	prefix   string
	recorder LookupRecorder
}

func NewRedisNetworkCache(next ports.NetworkLoader, rdb redis.UniversalClient, ttl time.Duration) (*RedisNetworkCache, error) {
	if next == nil {
		return nil, errors.New("redis network cache: next loader is nil")
	}
	if rdb == nil {
		return nil, errors.New("redis network cache: client is nil")
	}

	return &RedisNetworkCache{next: next, rdb: rdb, ttl: ttl, prefix: defaultKeyPrefix}, nil
}

// WithRecorder reports cache lookups to r and returns c.
func (c *RedisNetworkCache) WithRecorder(r LookupRecorder) *RedisNetworkCache {
	c.recorder = r
	return c
}

type cachedEdge struct {
	Found bool           `json:"found"`
	Attr  ports.EdgeAttr `json:"attr"`
}

func (c *RedisNetworkCache) LoadCityBase(ctx context.Context, pair domain.CityPair) (ports.CityBase, error) {
	key := c.prefix + "base:" + pair.String()

	var out ports.CityBase
	if c.get(ctx, "base", key, &out) {
		return out, nil
	}

	out, err := c.next.LoadCityBase(ctx, pair)
	if err != nil {
		return ports.CityBase{}, err
	}
	c.put(ctx, key, out)

	return out, nil
}

func (c *RedisNetworkCache) LoadEdgeAttr(ctx context.Context, mode domain.Mode, pair domain.CityPair) (ports.EdgeAttr, bool, error) {
	key := c.prefix + "edge:" + string(mode) + ":" + pair.String()

	var hit cachedEdge
	if c.get(ctx, "edge", key, &hit) {
		return hit.Attr, hit.Found, nil
	}

	attr, ok, err := c.next.LoadEdgeAttr(ctx, mode, pair)
	if err != nil {
		return ports.EdgeAttr{}, false, err
	}
	c.put(ctx, key, cachedEdge{Found: ok, Attr: attr})

	return attr, ok, nil
}

func (c *RedisNetworkCache) LoadReachableCities(ctx context.Context, from string) ([]string, error) {
	key := c.prefix + "reach:" + from

	var out []string
	if c.get(ctx, "reach", key, &out) {
		return out, nil
	}

	out, err := c.next.LoadReachableCities(ctx, from)
	if err != nil {
		return nil, err
	}
	c.put(ctx, key, out)

	return out, nil
}

// ListCities passes through to the wrapped loader when it can list cities.
// Otherwise it returns no cities and the caller falls back to its seeds.
func (c *RedisNetworkCache) ListCities(ctx context.Context) ([]domain.City, error) {
	lister, ok := c.next.(ports.CityLister)
	if !ok {
		return nil, nil
	}
	return lister.ListCities(ctx)
}

func (c *RedisNetworkCache) get(ctx context.Context, kind, key string, v any) bool {
	data, err := c.rdb.Get(ctx, key).Bytes()
	hit := err == nil
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("network cache read failed key=%s err=%v", key, err)
	}
	if hit {
		if err := json.Unmarshal(data, v); err != nil {
			log.Printf("network cache decode failed key=%s err=%v", key, err)
			hit = false
		}
	}

	if c.recorder != nil {
		c.recorder.ObserveCacheLookup(kind, hit)
	}
	return hit
}

func (c *RedisNetworkCache) put(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("network cache encode failed key=%s err=%v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("network cache write failed key=%s err=%v", key, err)
	}
}
