package handler

import (
	"testing"

	"github.com/carlosabalde/wurfl-go/pkg/classifier"
	"github.com/carlosabalde/wurfl-go/pkg/deviceid"
)

// TestNewDefaultChainOrderMatchesSpec confirms the fixed handler order is
// built exactly as declared, since order is load-bearing for partitioning.
func TestNewDefaultChainOrderMatchesSpec(t *testing.T) {
	chain := NewDefaultChain()
	handlers := chain.Handlers()

	if len(handlers) != len(chainOrder) {
		t.Fatalf("expected %d handlers, got %d", len(chainOrder), len(handlers))
	}
	for i, name := range chainOrder {
		if handlers[i].Name != name {
			t.Fatalf("handler %d: expected %q, got %q", i, name, handlers[i].Name)
		}
	}
	if handlers[len(handlers)-1].Name != "CatchAll" {
		t.Fatalf("expected CatchAll to be the terminal handler")
	}
}

// TestNewDefaultChainPartitionsExactlyOnce confirms each UA in a small
// representative set has an owner: walking the chain in order, some handler
// (at worst CatchAll) accepts it, and the walk stops at that first owner.
func TestNewDefaultChainPartitionsExactlyOnce(t *testing.T) {
	samples := []string{
		"Mozilla/5.0 (Linux; Android 9; SM-G960F) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.120 Mobile Safari/537.36",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 14_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0.3 Mobile/15E148 Safari/604.1",
		"BlackBerry9000/4.6.0.167 Profile/MIDP-2.0 Configuration/CLDC-1.1 VendorID/102",
		"Mozilla/4.0 (compatible; MSIE 9.0; Windows NT 6.1; Trident/5.0)",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	}

	chain := NewDefaultChain()
	for _, ua := range samples {
		owners := 0
		ctx := classifier.New(ua)
		for _, h := range chain.Handlers() {
			if h.CanHandle(ua, ctx) {
				owners++
				break
			}
		}
		if owners == 0 {
			t.Fatalf("UA %q was not accepted by any handler, including CatchAll", ua)
		}
	}
}

// TestChainFilterThenMatchRecall confirms the chain-level Filter/Match
// round trip resolves a registered UA back to its own id.
func TestChainFilterThenMatchRecall(t *testing.T) {
	chain := NewDefaultChain()

	ua := "BlackBerry9000/4.6.0.167 Profile/MIDP-2.0 Configuration/CLDC-1.1 VendorID/102"
	chain.Filter(ua, "blackberry_9000")
	chain.Seal()

	if got := chain.Match(ua); got != "blackberry_9000" {
		t.Fatalf("Match(%q) = %q, want blackberry_9000", ua, got)
	}
}

// TestChainMatchUnknownUAFallsBackToGenericFamily confirms an entirely
// unknown UA never returns the empty NoMatch id once CatchAll is wired —
// it always resolves to one of the generic sentinel ids.
func TestChainMatchUnknownUAFallsBackToGenericFamily(t *testing.T) {
	chain := NewDefaultChain()
	chain.Seal()

	got := chain.Match("TotallyUnknownDevice/1.0 Something/2.0")
	if got == deviceid.NoMatch {
		t.Fatalf("expected a non-empty fallback id for an unknown UA, got empty")
	}
}

// TestChainHandlerLookupByName confirms Handler(name) resolves registered
// handlers and returns nil for unknown names.
func TestChainHandlerLookupByName(t *testing.T) {
	chain := NewDefaultChain()
	if h := chain.Handler("CatchAll"); h == nil {
		t.Fatalf("expected CatchAll handler to be registered")
	}
	if h := chain.Handler("NotARealHandler"); h != nil {
		t.Fatalf("expected nil for an unregistered handler name, got %v", h)
	}
}
