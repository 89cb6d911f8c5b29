// Package engine wires the handler chain (pkg/handler) to the device
// registry (pkg/registry) and the hot-path match cache (pkg/devicecache)
// into the single object the CLI and HTTP surface call into: Identify
// takes a raw user-agent and returns the matched device record.
package engine

import (
	"fmt"
	"sync"

	"github.com/carlosabalde/wurfl-go/pkg/deviceid"
	"github.com/carlosabalde/wurfl-go/pkg/devicecache"
	"github.com/carlosabalde/wurfl-go/pkg/handler"
	"github.com/carlosabalde/wurfl-go/pkg/logger"
	"github.com/carlosabalde/wurfl-go/pkg/registry"
)

var (
	once    sync.Once
	chain   *handler.Chain
	devices *registry.Registry
)

// Init builds the default handler chain, loads the built-in seed
// catalogue into it and the registry, and seals both for read-only
// querying. Idempotent: only the first call does any work.
func Init() {
	once.Do(func() {
		log := logger.WithScope("engine.Init")

		chain = handler.NewDefaultChain()
		devices = registry.New()

		loaded, skipped := loadSeedCatalogue(chain, devices)
		chain.Seal()

		log.Info().
			Int("devices_loaded", loaded).
			Int("devices_skipped", skipped).
			Int("handlers", len(chain.Handlers())).
			Msg("Device identification engine ready")
	})
}

// Identify resolves ua to a device id through the handler chain, checking
// the in-process match cache first and populating it on a miss.
func Identify(ua string) deviceid.ID {
	if id, ok := devicecache.Get(ua); ok {
		return id
	}
	id := chain.Match(ua)
	devicecache.Put(ua, id)
	return id
}

// Find returns the registered device record for id, with one level of
// parent-capability inheritance resolved.
func Find(id string) (*registry.Device, bool) {
	return devices.Find(id)
}

// Chain exposes the underlying handler chain, for the CLI's "handlers"
// introspection subcommand. Callers must not mutate it.
func Chain() *handler.Chain {
	return chain
}

// Registry exposes the underlying device registry, for the CLI's
// "registry" introspection subcommand.
func Registry() *registry.Registry {
	return devices
}

// Register adds a single device to both the registry and the handler
// chain's ingest path. Exposed so the CLI/tests can extend the built-in
// seed catalogue without re-running Init.
func Register(id, ua string, actualDeviceRoot bool, capabilities map[string]string, parent string) error {
	if err := devices.Register(id, ua, actualDeviceRoot, capabilities, parent); err != nil {
		return fmt.Errorf("engine: register %q: %w", id, err)
	}
	chain.Filter(ua, deviceid.ID(id))
	return nil
}
