package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/carlosabalde/wurfl-go/internal/services/identify"
)

// identifyCmd matches a user-agent string against the handler chain from
// the command line, for ad-hoc debugging without the HTTP surface.
var identifyCmd = &cobra.Command{
	Use:   "identify <user-agent>",
	Short: "Identify the device family behind a User-Agent string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := identify.Identify(args[0])

		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Field", "Value"})
		table.Append([]string{"User-Agent", result.UserAgent})
		table.Append([]string{"Device ID", result.ID})
		for k, v := range result.Capabilities {
			table.Append([]string{"  " + k, v})
		}
		table.Render()

		if identify.NoMatch(result.ID) {
			return fmt.Errorf("no match found")
		}
		return nil
	},
}
