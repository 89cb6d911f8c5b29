package handler

import (
	"github.com/carlosabalde/wurfl-go/pkg/classifier"
	"github.com/carlosabalde/wurfl-go/pkg/deviceid"
)

// Chain is the ordered handler sequence built once at startup. Handler
// order is load-bearing: the first handler whose CanHandle accepts a UA
// owns it, both at ingest and at query time.
type Chain struct {
	head   *Handler
	tail   *Handler
	sealed bool
	byName map[string]*Handler
}

// NewChain returns an empty chain ready for AddHandler calls.
func NewChain() *Chain {
	return &Chain{byName: make(map[string]*Handler)}
}

// AddHandler appends h to the chain, linking the previous tail's Next
// pointer. The first handler added becomes the entry point.
func (c *Chain) AddHandler(h *Handler) {
	if c.head == nil {
		c.head = h
	} else {
		c.tail.Next = h
	}
	c.tail = h
	c.byName[h.Name] = h
}

// Filter presents one (ua, id) pair from the registry's ingest phase to
// the chain, starting a fresh classification context.
func (c *Chain) Filter(ua string, id deviceid.ID) {
	if c.head == nil {
		return
	}
	c.head.Filter(ua, id, classifier.New(ua))
}

// Match resolves ua to a device id by walking the chain from the head,
// with a fresh per-query classification context.
func (c *Chain) Match(ua string) deviceid.ID {
	if c.head == nil {
		return deviceid.NoMatch
	}
	return c.head.Match(ua, classifier.New(ua))
}

// Seal builds every handler's sorted-keys view up front, so the first
// query after ingest doesn't pay for it.
func (c *Chain) Seal() {
	for h := c.head; h != nil; h = h.Next {
		h.Seal()
	}
	c.sealed = true
}

// Sealed reports whether Seal has run.
func (c *Chain) Sealed() bool { return c.sealed }

// Handler returns the handler registered under name, or nil.
func (c *Chain) Handler(name string) *Handler { return c.byName[name] }

// Handlers returns the chain's handlers in their fixed order.
func (c *Chain) Handlers() []*Handler {
	var out []*Handler
	for h := c.head; h != nil; h = h.Next {
		out = append(out, h)
	}
	return out
}
