package engine

import (
	"testing"

	"github.com/carlosabalde/wurfl-go/pkg/deviceid"
)

// TestInitIsIdempotentAndBuildsANonEmptyChain confirms repeated Init calls
// don't rebuild the chain/registry and that the seed catalogue actually
// loaded something.
func TestInitIsIdempotentAndBuildsANonEmptyChain(t *testing.T) {
	Init()
	firstChain := Chain()
	firstRegistry := Registry()

	Init()
	if Chain() != firstChain || Registry() != firstRegistry {
		t.Fatalf("Init is not idempotent: a second call rebuilt the engine")
	}

	if Registry().Len() == 0 {
		t.Fatalf("expected the seed catalogue to have registered at least one device")
	}
	if !Chain().Sealed() {
		t.Fatalf("expected Init to seal the chain")
	}
}

// TestIdentifyNeverReturnsEmptyID confirms the cascade's universal
// catch-all guarantee holds through the full engine: every UA, known or
// not, resolves to a non-empty id.
func TestIdentifyNeverReturnsEmptyID(t *testing.T) {
	Init()

	uas := []string{
		"Mozilla/5.0 (Linux; Android 9; SM-G960F) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.120 Mobile Safari/537.36",
		"Completely unrecognized user agent string 123456",
		"",
	}
	for _, ua := range uas {
		if id := Identify(ua); id == deviceid.NoMatch {
			t.Fatalf("Identify(%q) returned the empty NoMatch id", ua)
		}
	}
}

// TestIdentifyIsCachedAndStable confirms repeated Identify calls for the
// same UA return the same id, whether or not the cache is populated.
func TestIdentifyIsCachedAndStable(t *testing.T) {
	Init()

	ua := "Mozilla/5.0 (iPhone; CPU iPhone OS 14_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0.3 Mobile/15E148 Safari/604.1"
	first := Identify(ua)
	for i := 0; i < 3; i++ {
		if got := Identify(ua); got != first {
			t.Fatalf("Identify is not stable across repeated calls: run %d got %q, first was %q", i, got, first)
		}
	}
}

// TestFindResolvesASeededDevice confirms at least one seeded device can be
// looked up directly by id with its capabilities intact.
func TestFindResolvesASeededDevice(t *testing.T) {
	Init()

	dev, ok := Find("generic")
	if !ok {
		t.Fatalf("expected the generic taxonomy root to be registered by the seed catalogue")
	}
	if dev.Capabilities["brand_name"] != "Generic" {
		t.Fatalf("expected generic's brand_name capability to survive seeding, got %q", dev.Capabilities["brand_name"])
	}
}

// TestRegisterExtendsBothRegistryAndChain confirms Register makes a new
// device both findable by id and resolvable by its UA.
func TestRegisterExtendsBothRegistryAndChain(t *testing.T) {
	Init()

	const id = "test_engine_custom_device"
	const ua = "CustomTestAgent/1.0 UniqueMarker/42"

	if err := Register(id, ua, true, map[string]string{"brand_name": "Test"}, "generic"); err != nil {
		t.Fatalf("unexpected error registering a new device: %v", err)
	}

	if dev, ok := Find(id); !ok || dev.Capabilities["brand_name"] != "Test" {
		t.Fatalf("expected the newly registered device to be findable, got %+v (ok=%v)", dev, ok)
	}

	if got := Identify(ua); got != deviceid.ID(id) {
		t.Fatalf("expected %q to resolve to the newly registered id %q, got %q", ua, id, got)
	}
}
