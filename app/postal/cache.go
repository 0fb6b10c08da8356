package postal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	defaultCacheTTL = 24 * time.Hour
	cacheKeyPrefix  = "postal:locality:"
)

// CachedLookup keeps resolved localities in Redis. Redis failures fall back to
// the wrapped lookup; misses of the wrapped lookup are never cached.
type CachedLookup struct {
	next   Lookup
	client *redis.Client
	ttl    time.Duration
	logger logrus.FieldLogger
}

func NewCachedLookup(next Lookup, client *redis.Client, ttl time.Duration, logger logrus.FieldLogger) *CachedLookup {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CachedLookup{next: next, client: client, ttl: ttl, logger: logger}
}

func (c *CachedLookup) Lookup(ctx context.Context, postalCode string) (*Locality, error) {
	key := cacheKeyPrefix + NormalizeCode(postalCode)

	cached, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var item Locality
		if jsonErr := json.Unmarshal(cached, &item); jsonErr == nil {
			return &item, nil
		}
		c.logger.WithField("key", key).Warn("Discarding malformed cached locality")
	case !errors.Is(err, redis.Nil):
		c.logger.WithError(err).WithField("key", key).Warn("Postal cache read failed")
	}

	item, err := c.next.Lookup(ctx, postalCode)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(item); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.WithError(err).WithField("key", key).Warn("Postal cache write failed")
		}
	}

	return item, nil
}
