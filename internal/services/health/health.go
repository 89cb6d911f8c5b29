package health

import (
	"fmt"
	"sync"
	"time"

	"github.com/carlosabalde/wurfl-go/config"
	"github.com/carlosabalde/wurfl-go/pkg/devicecache"
	"github.com/carlosabalde/wurfl-go/pkg/engine"
	"github.com/carlosabalde/wurfl-go/pkg/redis"
	"github.com/carlosabalde/wurfl-go/pkg/system"
	"github.com/carlosabalde/wurfl-go/pkg/utils"
)

var (
	startTime = time.Now()

	// Cache for health checks
	healthCache      *HealthStatus
	healthCacheTime  time.Time
	healthCacheMutex sync.RWMutex

	readinessCache      *ReadinessStatus
	readinessCacheTime  time.Time
	readinessCacheMutex sync.RWMutex

	cacheValidDuration = 10 * time.Second
)

type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Uptime    string                   `json:"uptime"`
	Services  map[string]ServiceHealth `json:"services"`
	System    SystemHealth             `json:"system"`
}

type ServiceHealth struct {
	Status       string                 `json:"status"`
	ResponseTime string                 `json:"response_time"`
	LastCheck    time.Time              `json:"last_check"`
	Error        string                 `json:"error,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

type SystemHealth struct {
	MemoryUsageSystem string                `json:"memory_usage_system"`
	MemoryApp         system.AppMemoryStats `json:"memory_app"`
	CPUUsage          string                `json:"cpu_usage"`
	DiskUsage         string                `json:"disk_usage"`
	GoroutineCount    int                   `json:"goroutine_count"`
}

type ReadinessStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Services  map[string]ServiceHealth `json:"services"`
}

// CheckHealth performs comprehensive health checks and returns status with 10s cache
func CheckHealth() (*HealthStatus, error) {
	// Check cache first
	healthCacheMutex.RLock()
	if healthCache != nil && time.Since(healthCacheTime) < cacheValidDuration {
		cached := *healthCache // Copy to avoid race conditions
		healthCacheMutex.RUnlock()
		return &cached, nil
	}
	healthCacheMutex.RUnlock()

	// Cache miss - perform actual health check
	cfg := config.Get()

	status := &HealthStatus{
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Uptime:    time.Since(startTime).String(),
		Services:  make(map[string]ServiceHealth),
		System:    getSystemMetrics(),
	}

	overallHealthy := true

	// Check the device identification engine (handler chain + registry)
	engineHealth := checkEngine()
	status.Services["engine"] = engineHealth
	if engineHealth.Status != "healthy" {
		overallHealthy = false
	}

	// Check Redis (optional distributed match-cache tier)
	redisHealth := checkRedis()
	status.Services["redis"] = redisHealth
	// Redis is optional: an unreachable Redis is reported as "degraded" in
	// its own entry (a disabled one as "disabled") and does not change the
	// overall status, since devicecache still serves matches in-process.
	if redisHealth.Status == "unhealthy" {
		status.Services["redis"] = ServiceHealth{
			Status:       "degraded",
			ResponseTime: redisHealth.ResponseTime,
			LastCheck:    redisHealth.LastCheck,
			Error:        redisHealth.Error,
		}
	}

	// Determine overall status
	if overallHealthy {
		status.Status = "healthy"
	} else {
		status.Status = "degraded"
	}

	// Update cache
	healthCacheMutex.Lock()
	healthCache = status
	healthCacheTime = time.Now()
	healthCacheMutex.Unlock()

	return status, nil
}

// checkEngine verifies the handler chain has been built and sealed, and
// reports the hot-path match cache's current occupancy.
func checkEngine() ServiceHealth {
	start := utils.Now()

	chain := engine.Chain()
	if chain == nil || !chain.Sealed() {
		return ServiceHealth{
			Status:       "unhealthy",
			ResponseTime: "0ms",
			LastCheck:    utils.Now(),
			Error:        "handler chain not initialized",
		}
	}

	responseTime := time.Since(start)
	metadata := map[string]interface{}{
		"handlers":      len(chain.Handlers()),
		"devices_known": engine.Registry().Len(),
	}
	if size, err := devicecache.Len(); err == nil {
		metadata["match_cache_entries"] = size
	}

	return ServiceHealth{
		Status:       "healthy",
		ResponseTime: responseTime.String(),
		LastCheck:    utils.Now(),
		Metadata:     metadata,
	}
}

// checkRedis performs Redis connectivity check
func checkRedis() ServiceHealth {
	start := utils.Now()

	if !config.Get().Redis.Enabled {
		return ServiceHealth{
			Status:       "disabled",
			ResponseTime: "0ms",
			LastCheck:    utils.Now(),
		}
	}

	err := redis.Health()
	responseTime := time.Since(start)

	if err != nil {
		return ServiceHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime.String(),
			LastCheck:    utils.Now(),
			Error:        err.Error(),
		}
	}

	return ServiceHealth{
		Status:       "healthy",
		ResponseTime: responseTime.String(),
		LastCheck:    utils.Now(),
	}
}

// getSystemMetrics collects current system performance metrics
func getSystemMetrics() SystemHealth {
	// Get system metrics using pure Go implementation
	metrics := system.GetSystemMetrics()

	return SystemHealth{
		CPUUsage:          fmt.Sprintf("%.1f%%", metrics.CPUUsage),
		MemoryUsageSystem: fmt.Sprintf("%.1f%%", metrics.MemoryUsage),
		MemoryApp:         metrics.AppMemory,
		DiskUsage:         fmt.Sprintf("%.1f%%", metrics.DiskUsage),
		GoroutineCount:    metrics.GoroutineCount,
	}
}

// CheckReadiness performs readiness checks for critical services with 10s cache
func CheckReadiness() (*ReadinessStatus, error) {
	// Check cache first
	readinessCacheMutex.RLock()
	if readinessCache != nil && time.Since(readinessCacheTime) < cacheValidDuration {
		cached := *readinessCache // Copy to avoid race conditions
		readinessCacheMutex.RUnlock()
		return &cached, nil
	}
	readinessCacheMutex.RUnlock()

	// Cache miss - perform actual readiness check
	status := &ReadinessStatus{
		Timestamp: time.Now(),
		Services:  make(map[string]ServiceHealth),
	}

	overallReady := true

	// The engine is the only hard dependency for readiness: it must be
	// built and sealed before this instance can serve a match.
	engineHealth := checkEngine()
	status.Services["engine"] = engineHealth
	if engineHealth.Status != "healthy" {
		overallReady = false
	}

	// Determine overall readiness
	if overallReady {
		status.Status = "ready"
	} else {
		status.Status = "not_ready"
	}

	// Update cache
	readinessCacheMutex.Lock()
	readinessCache = status
	readinessCacheTime = time.Now()
	readinessCacheMutex.Unlock()

	return status, nil
}

// ClearHealthCache clears health check cache (useful for testing/debugging)
func ClearHealthCache() {
	healthCacheMutex.Lock()
	healthCache = nil
	healthCacheTime = time.Time{}
	healthCacheMutex.Unlock()
}

// ClearReadinessCache clears readiness check cache (useful for testing/debugging)
func ClearReadinessCache() {
	readinessCacheMutex.Lock()
	readinessCache = nil
	readinessCacheTime = time.Time{}
	readinessCacheMutex.Unlock()
}
