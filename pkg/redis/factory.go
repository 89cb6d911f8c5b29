package redis

import (
	"fmt"
	"time"

	"github.com/carlosabalde/wurfl-go/config"
	"github.com/carlosabalde/wurfl-go/pkg/logger"
)

// convertToRedisPoolConfig converts config.PoolConfig to the duration-typed PoolConfig
func convertToRedisPoolConfig(poolCfg config.PoolConfig) PoolConfig {
	timeout, _ := time.ParseDuration(poolCfg.Timeout)
	dialTimeout, _ := time.ParseDuration(poolCfg.DialTimeout)
	readTimeout, _ := time.ParseDuration(poolCfg.ReadTimeout)
	writeTimeout, _ := time.ParseDuration(poolCfg.WriteTimeout)

	if poolCfg.Size <= 0 {
		poolCfg.Size = 10
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if dialTimeout <= 0 {
		dialTimeout = 10 * time.Second
	}
	if readTimeout <= 0 {
		readTimeout = 5 * time.Second
	}
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}

	return PoolConfig{
		Size:         poolCfg.Size,
		Timeout:      timeout,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}

// buildRedisConfig creates a RedisConfig from application config
func buildRedisConfig() RedisConfig {
	cfg := config.Get()

	mode := cfg.Redis.Mode
	if mode == "" {
		mode = string(ModeSingle)
	}

	return RedisConfig{
		Mode:    mode,
		Single:  SingleConfig{Host: cfg.Redis.Host, Port: cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB},
		Cluster: ClusterConfig{Nodes: cfg.Redis.Cluster.Nodes, Password: cfg.Redis.Cluster.Password},
		Pool:    convertToRedisPoolConfig(cfg.Redis.Pool),
	}
}

// NewClientForMatchCache returns the Redis client backing the distributed
// tier of the device-match cache (pkg/devicecache's optional second level).
func NewClientForMatchCache() (Client, error) {
	redisConfig := buildRedisConfig()

	var keyPrefix string
	var db int

	switch RedisMode(redisConfig.Mode) {
	case ModeSingle:
		db = redisConfig.Single.DB
		keyPrefix = ""
	case ModeCluster:
		db = 0 // Cluster doesn't use DB selection
		keyPrefix = PrefixMatchCache
	default:
		return nil, fmt.Errorf("unsupported Redis mode: %s", redisConfig.Mode)
	}

	client, err := NewRedisClient(redisConfig, keyPrefix, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create match-cache Redis client: %w", err)
	}

	logger.Info().
		Str("mode", redisConfig.Mode).
		Str("prefix", keyPrefix).
		Int("db", db).
		Msg("Match-cache Redis client initialized")

	return client, nil
}
