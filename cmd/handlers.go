package cmd

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/carlosabalde/wurfl-go/pkg/engine"
)

// handlersCmd lists the handler chain in its fixed order, along with how
// many user-agents each handler currently owns — useful for sanity
// checking that a loaded catalogue partitioned the way §4.5 expects.
var handlersCmd = &cobra.Command{
	Use:   "handlers",
	Short: "List the device-identification handler chain, in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"#", "Handler", "UAs owned"})

		for i, h := range engine.Chain().Handlers() {
			table.Append([]string{
				strconv.Itoa(i + 1),
				h.Name,
				strconv.Itoa(len(h.SortedKeys())),
			})
		}

		table.Render()
		return nil
	},
}
