package cmd

import (
	"github.com/carlosabalde/wurfl-go/config"
	"github.com/carlosabalde/wurfl-go/pkg/logger"
	"github.com/carlosabalde/wurfl-go/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP Server",
	Long:  `Starts the device-identification HTTP server`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := server.Start(config.Get().App.Port); err != nil {
			logger.WithScope("serveCmd").Error().Err(err).Msg("Failed to start server")
		}
	},
}
