// Package handler implements the chain-of-responsibility cascade that
// partitions user-agents by vendor/browser family and resolves each one to
// a device id through the exact/conclusive/recovery/catch-all tiers.
package handler

import (
	"sort"
	"strings"
	"sync"

	"github.com/carlosabalde/wurfl-go/pkg/classifier"
	"github.com/carlosabalde/wurfl-go/pkg/deviceid"
	"github.com/carlosabalde/wurfl-go/pkg/matcher"
	"github.com/carlosabalde/wurfl-go/pkg/normalizer"
)

// ConclusiveFunc runs a handler's conclusive-tier match against its sorted
// key table. h is passed explicitly so the default implementation and
// overrides share the same signature without a receiver-bound closure.
type ConclusiveFunc func(h *Handler, ua string) deviceid.ID

// RecoveryFunc runs a handler's recovery tier, synthesizing a generic
// family id from classification context when the conclusive tier failed.
type RecoveryFunc func(h *Handler, ua string, ctx *classifier.Context) deviceid.ID

// Handler is the single capability-set value every concrete family is
// built from: a can_handle predicate, a normalizer pipeline, its own
// normalized-UA-to-id table, and two optional cascade overrides. There is
// no inheritance hierarchy — every "subclass" in the system this was
// ported from is just a Handler value with different fields populated.
type Handler struct {
	Name string

	// CanHandle decides whether this handler owns ua. It must be pure
	// beyond reading ctx's memoized classification.
	CanHandle func(ua string, ctx *classifier.Context) bool

	Pipeline normalizer.Pipeline

	// Conclusive overrides the default RIS-first-slash tolerance rule.
	// Nil means use the default.
	Conclusive ConclusiveFunc

	// Recovery synthesizes a fallback id when conclusive fails. Nil means
	// no recovery tier for this handler.
	Recovery RecoveryFunc

	// ConstantIDs validates ids returned by Recovery; a recovered id not
	// in this set is replaced by Default. Nil/empty disables validation
	// (Recovery's return value is trusted as-is).
	ConstantIDs map[deviceid.ID]bool

	// Default is returned when Recovery produces an id outside
	// ConstantIDs. The catch-all tier does not consult it.
	Default deviceid.ID

	Next *Handler

	mu         sync.Mutex
	table      map[string]deviceid.ID
	sortedKeys []string
	keysDirty  bool
}

// NewHandler builds a Handler with an empty table, ready to be linked into
// a Chain.
func NewHandler(name string, canHandle func(ua string, ctx *classifier.Context) bool, pipeline normalizer.Pipeline) *Handler {
	return &Handler{
		Name:      name,
		CanHandle: canHandle,
		Pipeline:  pipeline,
		table:     make(map[string]deviceid.ID),
		keysDirty: true,
	}
}

// Normalize runs ua through this handler's pipeline.
func (h *Handler) Normalize(ua string) string {
	return h.Pipeline.Normalize(ua)
}

// put records a normalized-UA -> id mapping and marks the sorted view
// stale. Safe for concurrent ingest callers (ingest is still conceptually
// single-threaded, but this keeps seal-time builds race-free regardless).
func (h *Handler) put(normalized string, id deviceid.ID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.table[normalized] = id
	h.keysDirty = true
}

// SortedKeys returns the lazily-built, memoized ascending view of this
// handler's table keys, rebuilding it if the table changed since the last
// read.
func (h *Handler) SortedKeys() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.keysDirty {
		keys := make([]string, 0, len(h.table))
		for k := range h.table {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		h.sortedKeys = keys
		h.keysDirty = false
	}
	return h.sortedKeys
}

// Seal forces the sorted-keys view to be built now rather than on first
// query, avoiding first-query contention once ingest completes.
func (h *Handler) Seal() {
	h.SortedKeys()
}

func (h *Handler) lookup(normalized string) (deviceid.ID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id, ok := h.table[normalized]
	return id, ok
}

// Filter is the ingest-time operation: if this handler accepts ua, record
// normalize(ua) -> id in its table; otherwise forward to the next handler.
// The terminal CatchAll handler's CanHandle always returns true.
func (h *Handler) Filter(ua string, id deviceid.ID, ctx *classifier.Context) {
	if h.CanHandle(ua, ctx) {
		h.put(h.Normalize(ua), id)
		return
	}
	if h.Next != nil {
		h.Next.Filter(ua, id, ctx)
	}
}

// Match is the query-time operation: if this handler accepts ua, run the
// cascade; otherwise forward to the next handler. Returns deviceid.NoMatch
// only if no handler in the chain accepts ua (which never happens once
// CatchAll is wired, since it always accepts).
func (h *Handler) Match(ua string, ctx *classifier.Context) deviceid.ID {
	if h.CanHandle(ua, ctx) {
		return h.applyMatch(ua, ctx)
	}
	if h.Next != nil {
		return h.Next.Match(ua, ctx)
	}
	return deviceid.NoMatch
}

// applyMatch runs the four-tier cascade, returning the first id that is
// non-blank and non-generic.
func (h *Handler) applyMatch(ua string, ctx *classifier.Context) deviceid.ID {
	normalized := h.Normalize(ua)

	if id, ok := h.lookup(normalized); ok && !deviceid.IsBlankOrGeneric(id) {
		return id
	}

	if id := h.applyConclusiveMatch(normalized); !deviceid.IsBlankOrGeneric(id) {
		return id
	}

	if h.Recovery != nil {
		id := h.Recovery(h, normalized, ctx)
		if len(h.ConstantIDs) > 0 && id != deviceid.NoMatch && !h.ConstantIDs[id] {
			id = h.Default
		}
		if !deviceid.IsBlankOrGeneric(id) {
			return id
		}
	}

	return h.applyRecoveryCatchAllMatch(normalized, ctx)
}

// applyConclusiveMatch runs the override if one is set, otherwise the
// default rule: RIS match with tolerance equal to the index of the first
// '/' in the normalized UA (or its full length if there's no slash).
func (h *Handler) applyConclusiveMatch(normalized string) deviceid.ID {
	if h.Conclusive != nil {
		return h.Conclusive(h, normalized)
	}
	tolerance := IndexOfOrLength(normalized, "/", 0)
	match, ok := matcher.RISMatch(h.SortedKeys(), normalized, tolerance)
	if !ok {
		return deviceid.NoMatch
	}
	id, _ := h.lookup(match)
	return id
}

// applyRecoveryCatchAllMatch is the universal fallback every handler falls
// through to if its own conclusive/recovery tiers didn't produce a usable
// id: heavy-duty desktop analysis first, then mobile/desktop/smart-TV
// classification, then the mobile catch-all table, then the final generic
// sentinel chain.
func (h *Handler) applyRecoveryCatchAllMatch(normalized string, ctx *classifier.Context) deviceid.ID {
	if ctx.IsDesktopBrowserHeavyDutyAnalysis() {
		return deviceid.GenericWebBrowser
	}

	if ctx.IsMobileBrowser() {
		if id := ctx.GetMobileCatchAllID(); id != "" {
			return deviceid.ID(id)
		}
		return deviceid.GenericMobile
	}

	if ctx.IsDesktopBrowser() {
		return deviceid.GenericWebBrowser
	}

	return deviceid.Generic
}

// IndexOfOrLength returns the index of the first occurrence of target in
// s at or after from, or len(s) if target does not occur. This is the
// canonical argument order (s, target, from) every conclusive matcher in
// this package uses.
func IndexOfOrLength(s, target string, from int) int {
	if from > len(s) {
		from = len(s)
	}
	if from < 0 {
		from = 0
	}
	idx := strings.Index(s[from:], target)
	if idx < 0 {
		return len(s)
	}
	return from + idx
}

// IndexOfAnyOrLength returns the lowest index at or after from of any of
// the given targets, or len(s) if none occur.
func IndexOfAnyOrLength(s string, targets []string, from int) int {
	best := len(s)
	for _, t := range targets {
		if idx := IndexOfOrLength(s, t, from); idx < best {
			best = idx
		}
	}
	return best
}
