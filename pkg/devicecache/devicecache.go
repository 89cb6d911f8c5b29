// Package devicecache provides the hot-path cache in front of the handler
// chain: UA -> DeviceID, so repeated lookups for the same UA skip the
// cascade entirely. An in-process LRU is always present; an optional Redis
// tier sits behind it so multiple instances of this service can share one
// match cache instead of each warming its own.
package devicecache

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/carlosabalde/wurfl-go/config"
	"github.com/carlosabalde/wurfl-go/pkg/deviceid"
	"github.com/carlosabalde/wurfl-go/pkg/logger"
	"github.com/carlosabalde/wurfl-go/pkg/redis"
)

const redisKeyPrefix = "wurfl:match:"

var (
	once       sync.Once
	cache      *lru.Cache[string, deviceid.ID]
	redisTTL   time.Duration
	redisReady bool
)

// Init builds the process-wide LRU cache with the given capacity and, if
// Redis is enabled in config, enables the distributed second tier behind
// it. It is idempotent; only the first call's settings take effect.
func Init(size int) {
	once.Do(func() {
		if size <= 0 {
			size = 4096
		}
		c, err := lru.New[string, deviceid.ID](size)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to initialize device match cache, running uncached")
			return
		}
		cache = c

		ttlSecs := config.Get().Device.MatchCacheTTLSecs
		if ttlSecs <= 0 {
			ttlSecs = 300
		}
		redisTTL = time.Duration(ttlSecs) * time.Second
		redisReady = config.Get().Redis.Enabled

		logger.Info().
			Int("size", size).
			Bool("redis_tier", redisReady).
			Dur("redis_ttl", redisTTL).
			Msg("Device match cache initialized")
	})
}

// Get returns the cached id for ua, checking the in-process LRU first and
// falling back to the Redis tier (if enabled) on a miss, populating the
// LRU from whatever Redis returns.
func Get(ua string) (deviceid.ID, bool) {
	if cache == nil {
		return deviceid.NoMatch, false
	}
	if id, ok := cache.Get(ua); ok {
		return id, true
	}
	if !redisReady {
		return deviceid.NoMatch, false
	}

	val, err := redis.Get(context.Background(), redisKeyPrefix+ua)
	if err != nil || val == "" {
		return deviceid.NoMatch, false
	}
	id := deviceid.ID(val)
	cache.Add(ua, id)
	return id, true
}

// Put records ua -> id in the LRU and, if enabled, mirrors it into the
// Redis tier with the configured TTL.
func Put(ua string, id deviceid.ID) {
	if cache == nil {
		return
	}
	cache.Add(ua, id)

	if !redisReady {
		return
	}
	if err := redis.Set(context.Background(), redisKeyPrefix+ua, string(id), redisTTL); err != nil {
		logger.Debug().Err(err).Msg("Failed to mirror device match into Redis cache tier")
	}
}

// Len returns the number of entries currently cached in the in-process
// LRU tier, for health/metrics reporting. Returns an error if the cache
// was never initialized.
func Len() (int, error) {
	if cache == nil {
		return 0, fmt.Errorf("devicecache: not initialized")
	}
	return cache.Len(), nil
}
