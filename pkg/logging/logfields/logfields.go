// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package logfields defines the slog attribute keys used consistently
// across this module's diagnostics, the same role cilium's own
// pkg/logging/logfields plays for the full agent: a shared vocabulary so
// two packages logging about the same kind of thing (an interface index,
// a prefix) use the same key and a log aggregator can group on it.
package logfields

const (
	// IfIndex is the key for a network interface index.
	IfIndex = "ifindex"

	// Prefix is the key for a netip.Prefix identifying a route or
	// address.
	Prefix = "prefix"

	// IndexType is the key for the name of a dedupmulti index type.
	IndexType = "index-type"

	// Evicted is the key for a count of entries removed by a dirty
	// sweep.
	Evicted = "evicted"
)
