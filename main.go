package main

import (
	"github.com/carlosabalde/wurfl-go/cmd"

	_ "github.com/carlosabalde/wurfl-go/http/v1/route"
)

// main hands off to the cobra root command; see cmd/root.go for the
// sequential bring-up of config, logger, cache and the device engine.
func main() {
	cmd.Execute()
}
