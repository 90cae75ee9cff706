// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package netrecords is a worked example of dedupmulti.MultiIndex
// wired up to a concrete record shape: IPv4/IPv6 routes and addresses,
// the record types NetworkManager's dedup-multi-index was originally
// built to cache (see nm-dedup-multi.h). It is demonstration/reference
// code exercising the generic container, not a route manager, DHCP
// client, or neighbor-discovery daemon — those remain out of scope, per
// the container spec's Non-goals.
package netrecords

import (
	"encoding/binary"
	"net/netip"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Route is one routing table entry: a destination prefix reachable
// through an optional gateway, on a given interface. Two Routes are
// identical records (full equality) only if every field matches; two
// Routes identify the same logical route (id equality, within the
// per-interface index below) if they share a destination and priority,
// regardless of gateway — the usual "replace the route to this prefix"
// semantics a route cache needs.
type Route struct {
	Prefix   netip.Prefix
	Gateway  netip.Addr
	IfIndex  int
	Priority uint32
	Owner    string // e.g. "static", "dhcp4", "ra" — a label, not a live subsystem
}

// RouteObjectDescriptor implements dedupmulti.ObjectDescriptor[Route].
// Route is a small value type with no borrowed storage, so cloning is
// just a copy and nothing needs destroying.
type RouteObjectDescriptor struct{}

func (RouteObjectDescriptor) FullHash(r Route) uint64 {
	h := xxhash.New()
	writePrefix(h, r.Prefix)
	writeAddr(h, r.Gateway)
	writeUint64(h, uint64(r.IfIndex))
	writeUint64(h, uint64(r.Priority))
	h.WriteString(r.Owner)
	return h.Sum64()
}

func (RouteObjectDescriptor) FullEqual(a, b Route) bool {
	return a.Prefix == b.Prefix &&
		a.Gateway == b.Gateway &&
		a.IfIndex == b.IfIndex &&
		a.Priority == b.Priority &&
		a.Owner == b.Owner
}

func (RouteObjectDescriptor) NeedsClone(Route) bool { return false }
func (RouteObjectDescriptor) Clone(r Route) Route   { return r }
func (RouteObjectDescriptor) Destroy(Route)         {}

// RouteByInterfaceDescriptor implements dedupmulti.IndexTypeDescriptor
// and dedupmulti.Partitioner for Route, indexing routes per interface:
// each interface's routes form one partition (head), ordered the way
// the caller adds them — the shape a route cache actually wants when
// reconciling "what should this link's routing table look like now"
// against a freshly-read netlink dump.
type RouteByInterfaceDescriptor struct{}

// IDHash/IDEqual: a route's identity within an interface's partition is
// its destination plus its priority — re-adding the same destination at
// the same priority with a new gateway replaces the old entry rather
// than duplicating it.
func (RouteByInterfaceDescriptor) IDHash(r Route) uint64 {
	h := xxhash.New()
	writePrefix(h, r.Prefix)
	writeUint64(h, uint64(r.Priority))
	return h.Sum64()
}

func (RouteByInterfaceDescriptor) IDEqual(a, b Route) bool {
	return a.Prefix == b.Prefix && a.Priority == b.Priority
}

func (RouteByInterfaceDescriptor) Partitionable(Route) bool { return true }

func (RouteByInterfaceDescriptor) PartitionHash(r Route) uint64 {
	return xxhash.Sum64String(strconv.Itoa(r.IfIndex))
}

func (RouteByInterfaceDescriptor) PartitionEqual(a, b Route) bool {
	return a.IfIndex == b.IfIndex
}

func writePrefix(h *xxhash.Digest, p netip.Prefix) {
	if a := p.Addr(); a.IsValid() {
		b := a.As16()
		h.Write(b[:])
	}
	writeUint64(h, uint64(p.Bits()))
}

func writeAddr(h *xxhash.Digest, a netip.Addr) {
	if a.IsValid() {
		b := a.As16()
		h.Write(b[:])
	}
}

func writeUint64(h *xxhash.Digest, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}
