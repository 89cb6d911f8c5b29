package cmd

import (
	"os"

	"github.com/carlosabalde/wurfl-go/config"
	"github.com/carlosabalde/wurfl-go/pkg/auth"
	"github.com/carlosabalde/wurfl-go/pkg/devicecache"
	"github.com/carlosabalde/wurfl-go/pkg/engine"
	"github.com/carlosabalde/wurfl-go/pkg/logger"
	"github.com/carlosabalde/wurfl-go/pkg/redis"
	"github.com/carlosabalde/wurfl-go/pkg/utils"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wurfl-go",
	Short: "Device identification engine",
	Long:  `HTTP User-Agent device-identification engine: matches a UA string against a chain of manufacturer/browser handlers to produce a stable device id.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Failed to execute command")
		os.Exit(1)
	}
}

// init initializes all application dependencies and registers commands,
// following the same sequential bring-up idiom throughout this codebase:
// panic on a dependency nothing can run without, warn-and-continue on an
// optional one.
func init() {
	// Initialize config
	if err := config.Init(); err != nil {
		logger.Warn().Err(err).Msg("No .config file found, running with built-in defaults")
		config.InitDefaults()
	}

	// Initialize logger
	logger.Init(config.Get().App.Timezone, config.Get().App.Env)

	// Initialize timezone
	if err := utils.InitTimezone(); err != nil {
		logger.Warn().Err(err).Msg("Timezone initialization failed, continuing with UTC")
	}

	// Initialize Redis (optional distributed cache tier)
	if err := redis.Init(); err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, device match cache will run in-process only")
	}

	// Initialize device match cache (in-process LRU, optionally backed by Redis)
	devicecache.Init(config.Get().Device.MatchCacheSize)

	// Build and seal the handler chain
	engine.Init()

	// Initialize auth system (JWT/signature clients for the HTTP surface)
	if err := auth.InitAuth(); err != nil {
		logger.Error().Err(err).Msg("Failed to initialize auth system")
		panic(err)
	}

	// Add commands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(handlersCmd)
	rootCmd.AddCommand(registryCmd)
}
