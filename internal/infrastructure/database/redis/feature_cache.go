package redis

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/graph"
)

var ErrCacheMiss = errors.New(errors.ErrCodeCacheError, "cache miss")

// FeatureCache stores assembled graph records keyed by the input geometry and
// the featurization settings, so unchanged polyhedra skip recomputation.
type FeatureCache struct {
	client *Client
	logger logging.Logger
	prefix string
	ttl    time.Duration
	group  singleflight.Group
}

type FeatureCacheOption func(*FeatureCache)

func WithPrefix(prefix string) FeatureCacheOption {
	return func(c *FeatureCache) { c.prefix = prefix }
}

func WithTTL(ttl time.Duration) FeatureCacheOption {
	return func(c *FeatureCache) { c.ttl = ttl }
}

func NewFeatureCache(client *Client, log logging.Logger, opts ...FeatureCacheOption) *FeatureCache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	c := &FeatureCache{
		client: client,
		logger: log.Named("feature_cache"),
		prefix: client.config.Prefix,
		ttl:    client.config.TTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key hashes the settings fingerprint and the exact vertex coordinates.
func (c *FeatureCache) Key(fingerprint string, vertices [][3]float64) string {
	h := sha256.New()
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	var buf [8]byte
	for _, v := range vertices {
		for _, x := range v {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
			h.Write(buf[:])
		}
	}
	return c.prefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached record or ErrCacheMiss.
func (c *FeatureCache) Get(ctx context.Context, key string) (*graph.GraphRecord, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to get from cache")
	}
	var rec graph.GraphRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		c.logger.Warn("dropping undecodable cache entry", logging.String("key", key), logging.Err(err))
		_ = c.client.Del(ctx, key).Err()
		return nil, ErrCacheMiss
	}
	return &rec, nil
}

// Set stores rec under key with the configured TTL.
func (c *FeatureCache) Set(ctx context.Context, key string, rec *graph.GraphRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode cache entry")
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to set cache entry")
	}
	return nil
}

// GetOrCompute returns the cached record, or runs compute once per key across
// concurrent callers and caches its result.  cached reports a hit.  Cache
// failures are logged and never fail the call.
func (c *FeatureCache) GetOrCompute(ctx context.Context, key string, compute func() (*graph.GraphRecord, error)) (rec *graph.GraphRecord, cached bool, err error) {
	rec, err = c.Get(ctx, key)
	if err == nil {
		return rec, true, nil
	}
	if err != ErrCacheMiss {
		c.logger.Warn("feature cache read failed", logging.String("key", key), logging.Err(err))
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		computed, err := compute()
		if err != nil {
			return nil, err
		}
		if setErr := c.Set(ctx, key, computed); setErr != nil {
			c.logger.Warn("feature cache write failed", logging.String("key", key), logging.Err(setErr))
		}
		return computed, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*graph.GraphRecord), false, nil
}

// Purge deletes every entry under the cache prefix and returns the count.
func (c *FeatureCache) Purge(ctx context.Context) (int64, error) {
	var cursor uint64
	var total int64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", 500).Result()
		if err != nil {
			return total, errors.Wrap(err, errors.ErrCodeCacheError, "failed to scan cache keys")
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return total, errors.Wrap(err, errors.ErrCodeCacheError, "failed to delete cache keys")
			}
			total += n
		}
		if next == 0 {
			return total, nil
		}
		cursor = next
	}
}

//Personal.AI order the ending
