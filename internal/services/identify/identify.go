// Package identify is the thin service layer between the HTTP/CLI surface
// and the device engine: it resolves a user-agent to a device id and looks
// up the registered record behind that id.
package identify

import (
	"errors"

	identityentity "github.com/carlosabalde/wurfl-go/internal/entities/identify"
	"github.com/carlosabalde/wurfl-go/pkg/deviceid"
	"github.com/carlosabalde/wurfl-go/pkg/engine"
)

// ErrDeviceNotFound is returned by Find when no device is registered
// under the given id.
var ErrDeviceNotFound = errors.New("identify: device not found")

// Identify matches ua against the handler chain and returns the resolved
// device record. The cascade always returns some id (GENERIC at worst, per
// spec.md §7), so this never fails on an unrecognized UA.
func Identify(ua string) identityentity.Response {
	id := engine.Identify(ua)
	resp := identityentity.Response{ID: string(id), UserAgent: ua}
	if dev, ok := engine.Find(string(id)); ok {
		resp.Capabilities = dev.Capabilities
	}
	return resp
}

// Find looks up a device record directly by id, independent of any UA
// match.
func Find(id string) (identityentity.Response, error) {
	dev, ok := engine.Find(id)
	if !ok {
		return identityentity.Response{}, ErrDeviceNotFound
	}
	return identityentity.Response{
		ID:           dev.ID,
		UserAgent:    dev.UA,
		Capabilities: dev.Capabilities,
	}, nil
}

// NoMatch reports whether id is the engine's empty-match sentinel.
func NoMatch(id string) bool {
	return deviceid.ID(id) == deviceid.NoMatch
}
