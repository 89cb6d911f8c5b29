package devicecache

import (
	"testing"

	"github.com/carlosabalde/wurfl-go/config"
	"github.com/carlosabalde/wurfl-go/pkg/deviceid"
)

func TestMain(m *testing.M) {
	config.InitDefaults()
	m.Run()
}

func TestGetBeforeInitIsAlwaysAMiss(t *testing.T) {
	if _, ok := Get("anything"); ok {
		t.Fatalf("expected a miss before Init is called")
	}
}

func TestPutThenGetRoundTrips(t *testing.T) {
	Init(16)

	Put("Mozilla/5.0 Foo/1.0", "foo_one")
	id, ok := Get("Mozilla/5.0 Foo/1.0")
	if !ok {
		t.Fatalf("expected a cache hit after Put")
	}
	if id != deviceid.ID("foo_one") {
		t.Fatalf("expected cached id foo_one, got %q", id)
	}
}

func TestGetUnknownUAIsAMiss(t *testing.T) {
	Init(16)
	if _, ok := Get("never seen this before"); ok {
		t.Fatalf("expected a miss for a UA that was never Put")
	}
}

func TestLenReflectsEntryCount(t *testing.T) {
	Init(16)
	Put("UA-A", "a")
	Put("UA-B", "b")

	n, err := Len()
	if err != nil {
		t.Fatalf("unexpected error from Len: %v", err)
	}
	if n == 0 {
		t.Fatalf("expected at least the entries just inserted, got 0")
	}
}
