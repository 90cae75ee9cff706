// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package netrecords

import (
	"log/slog"
	"net/netip"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/cilium/dedupmulti/pkg/dedupmulti"
	"github.com/cilium/dedupmulti/pkg/dedupmulti/dmmetrics"
	"github.com/cilium/dedupmulti/pkg/lock"
	"github.com/cilium/dedupmulti/pkg/logging/logfields"
)

// routeKey identifies a route within one interface's partition the same
// way RouteByInterfaceDescriptor's identity equality does — destination
// plus priority — so Resync can recognize a caller-supplied duplicate
// before it ever reaches the MultiIndex.
type routeKey struct {
	Prefix   netip.Prefix
	Priority uint32
}

// RouteCache caches Routes indexed per interface, the way a per-link
// daemon would use a MultiIndex to hold the routing table it's
// converging toward. It adds a coarse RWMutex around the MultiIndex,
// because — unlike the MultiIndex itself, which is single-threaded by
// design — a cache like this is typically populated by one goroutine
// (a netlink listener) and read by others.
type RouteCache struct {
	mu     lock.RWMutex
	logger *slog.Logger

	mi         *dedupmulti.MultiIndex[Route]
	byIfIndex  *dedupmulti.IndexType[Route]
}

// NewRouteCache constructs an empty RouteCache. metrics may be nil.
func NewRouteCache(logger *slog.Logger, metrics *dmmetrics.Collector) *RouteCache {
	if logger == nil {
		logger = slog.Default()
	}
	mi := dedupmulti.New[Route](RouteObjectDescriptor{}, metrics)
	return &RouteCache{
		logger:    logger,
		mi:        mi,
		byIfIndex: mi.NewIndexType(RouteByInterfaceDescriptor{}),
	}
}

// Upsert adds or replaces route in the cache, appending it to its
// interface's route list. The displaced record, if any, is released
// immediately — RouteCache callers never hold onto Records themselves,
// they only ever see Route values.
func (c *RouteCache) Upsert(route Route) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, displaced, err := c.byIfIndex.Add(route, dedupmulti.Append, nil)
	if err != nil {
		return err
	}
	if displaced != nil {
		displaced.Unref()
	}
	return nil
}

// Remove drops route's entry, if present, reporting whether anything
// was removed.
func (c *RouteCache) Remove(route Route) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.byIfIndex.RemoveObject(route)
}

// Routes returns every route currently cached for ifIndex, in
// insertion order.
func (c *RouteCache) Routes(ifIndex int) []Route {
	c.mu.RLock()
	defer c.mu.RUnlock()

	probe := Route{IfIndex: ifIndex}
	head := c.byIfIndex.LookupHead(probe)
	if c.byIfIndex.HeadMissing() == head {
		return nil
	}

	recs := dedupmulti.Snapshot(head, func(Route) bool { return true })
	out := make([]Route, len(recs))
	for i, r := range recs {
		out[i] = r.Value()
	}
	return out
}

// Resync reconciles ifIndex's cached routes against a freshly-read
// authoritative set (e.g. a netlink route dump): every route in fresh
// is upserted, and every previously-cached route not present in fresh
// is evicted — a dirty-sweep scoped to one interface's partition rather
// than a whole index type. The set of fresh destinations is tracked
// with k8s.io/apimachinery's sets.Set.
func (c *RouteCache) Resync(ifIndex int, fresh []Route) (evicted int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := sets.New[routeKey]()
	probe := Route{IfIndex: ifIndex}
	c.byIfIndex.DirtySetHead(probe)

	for _, r := range fresh {
		r.IfIndex = ifIndex
		key := routeKey{Prefix: r.Prefix, Priority: r.Priority}
		if seen.Has(key) {
			c.logger.Warn("duplicate route in resync snapshot, ignoring",
				slog.Int(logfields.IfIndex, ifIndex),
				slog.String(logfields.Prefix, r.Prefix.String()),
			)
			continue
		}
		seen.Insert(key)

		_, displaced, addErr := c.byIfIndex.Add(r, dedupmulti.Append, nil)
		if addErr != nil {
			err = addErr
			continue
		}
		if displaced != nil {
			displaced.Unref()
		}
	}

	head := c.byIfIndex.LookupHead(probe)
	if c.byIfIndex.HeadMissing() == head {
		return 0, err
	}

	before := head.Len()
	evicted = c.sweepDirty(head)
	c.logger.Debug("resynced interface routes",
		slog.Int(logfields.IfIndex, ifIndex),
		slog.Int("before", before),
		slog.Int(logfields.Evicted, evicted),
	)
	return evicted, err
}

func (c *RouteCache) sweepDirty(head *dedupmulti.Head[Route]) int {
	n := 0
	it := head.Iterator()
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		if e.Dirty() {
			e.Remove()
			n++
		}
	}
	return n
}
