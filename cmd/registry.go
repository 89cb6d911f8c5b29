package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/carlosabalde/wurfl-go/internal/services/identify"
	"github.com/carlosabalde/wurfl-go/pkg/engine"
)

// registryCmd inspects the device registry directly by id, bypassing the
// handler chain entirely.
var registryCmd = &cobra.Command{
	Use:   "registry <device-id>",
	Short: "Look up a registered device record by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := identify.Find(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "device %q not found (%d devices registered)\n", args[0], engine.Registry().Len())
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Field", "Value"})
		table.Append([]string{"ID", dev.ID})
		table.Append([]string{"User-Agent", dev.UA})
		for k, v := range dev.Capabilities {
			table.Append([]string{"  " + k, v})
		}
		table.Render()
		return nil
	},
}
