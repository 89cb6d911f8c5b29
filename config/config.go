package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type (
	app struct {
		Name     string `json:"name" mapstructure:"name"`
		Env      string `json:"env" mapstructure:"env"`
		Port     int    `json:"port" mapstructure:"port"`
		Timezone string `json:"timezone" mapstructure:"timezone"`
		Version  string `json:"version" mapstructure:"version"`
	}

	redis struct {
		Enabled  bool   `json:"enabled" mapstructure:"enabled"`
		Mode     string `json:"mode" mapstructure:"mode"` // "single", "cluster"
		Host     string `json:"host" mapstructure:"host"`
		Port     int    `json:"port" mapstructure:"port"`
		Password string `json:"password" mapstructure:"password"`
		DB       int    `json:"db" mapstructure:"db"`
		Cluster  struct {
			Nodes    []string `json:"nodes" mapstructure:"nodes"`
			Password string   `json:"password" mapstructure:"password"`
		} `json:"cluster" mapstructure:"cluster"`
		Pool PoolConfig `json:"pool" mapstructure:"pool"`
	}

	auth struct {
		Enabled   bool           `json:"enabled" mapstructure:"enabled"`
		Algorithm string         `json:"algorithm" mapstructure:"algorithm"`
		Clients   []ClientConfig `json:"clients" mapstructure:"clients"`
	}

	// device holds the device-identification engine configuration
	device struct {
		RegistryPath      string `json:"registry_path" mapstructure:"registry_path"`
		LDTolerance       int    `json:"ld_tolerance" mapstructure:"ld_tolerance"`
		MatchCacheSize    int    `json:"match_cache_size" mapstructure:"match_cache_size"`
		MatchCacheTTLSecs int    `json:"match_cache_ttl_secs" mapstructure:"match_cache_ttl_secs"`
	}

	// PoolConfig holds connection pool tuning; its timeouts are duration
	// strings (unlike device.match_cache_ttl_secs, an integer of seconds).
	PoolConfig struct {
		Size         int    `json:"size" mapstructure:"size"`
		Timeout      string `json:"timeout" mapstructure:"timeout"`
		DialTimeout  string `json:"dial_timeout" mapstructure:"dial_timeout"`
		ReadTimeout  string `json:"read_timeout" mapstructure:"read_timeout"`
		WriteTimeout string `json:"write_timeout" mapstructure:"write_timeout"`
	}

	ClientConfig struct {
		ClientID    string   `json:"client_id" mapstructure:"client_id"`
		ClientName  string   `json:"client_name" mapstructure:"client_name"`
		AuthType    string   `json:"auth_type" mapstructure:"auth_type"`             // "rsa" or "hmac"
		KeyPath     string   `json:"key_path,omitempty" mapstructure:"key_path"`     // for RSA public key
		SecretKey   string   `json:"secret_key,omitempty" mapstructure:"secret_key"` // for HMAC
		Permissions []string `json:"permissions" mapstructure:"permissions"`
		Active      bool     `json:"active" mapstructure:"active"`
	}

	Config struct {
		App    app    `json:"app" mapstructure:"app"`
		Redis  redis  `json:"redis" mapstructure:"redis"`
		Auth   auth   `json:"auth" mapstructure:"auth"`
		Device device `json:"device" mapstructure:"device"`
	}

	// RedisConfig is an alias for the internal redis struct for external access
	RedisConfig = redis
)

var cfg *Config

// defaults applied when the loaded config omits them, so the engine and its
// CLI remain usable with a minimal or absent .config file.
func (c *Config) applyDefaults() {
	if c.Device.LDTolerance <= 0 {
		c.Device.LDTolerance = 7
	}
	if c.Device.MatchCacheSize <= 0 {
		c.Device.MatchCacheSize = 4096
	}
	if c.Device.MatchCacheTTLSecs <= 0 {
		c.Device.MatchCacheTTLSecs = 300
	}
	if c.App.Port == 0 {
		c.App.Port = 3000
	}
}

// Init loads configuration from .config file
func Init() error {
	viper.SetConfigName(".config")
	viper.SetConfigType("json")
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyDefaults()
	return nil
}

// InitDefaults builds a configuration from built-in defaults only, for CLI
// paths and tests that need the engine without a .config file on disk.
func InitDefaults() {
	cfg = &Config{}
	cfg.applyDefaults()
}

// Get returns the current configuration instance
func Get() *Config {
	if cfg == nil {
		InitDefaults()
	}
	return cfg
}
