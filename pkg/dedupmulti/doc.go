// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package dedupmulti implements a deduplicating multi-index container:
// a data structure that interns immutable, reference-counted value
// objects by structural equality and simultaneously indexes them under
// any number of caller-defined index types, each of which may further
// partition its members into ordered sub-lists keyed by a caller-defined
// partition hash.
//
// This is the generic core originally factored out of NetworkManager's
// dedup-multi-index (see nm-dedup-multi.h) so that route tables,
// address caches, and neighbor-discovery record sets could all share one
// canonicalization and indexing implementation instead of each
// reimplementing it. pkg/netrecords shows it wired up to a concrete
// record type.
//
// A MultiIndex is built around four pieces, listed leaves-first:
//
//   - ObjectDescriptor describes how to clone, destroy, and compare a
//     record type by full structural equality (Clone, Destroy,
//     NeedsClone, FullHash, FullEqual).
//   - IndexTypeDescriptor describes identity within one index type
//     (IDHash, IDEqual); implementing the optional Partitioner interface
//     additionally buckets members into partitions (PartitionHash,
//     PartitionEqual, Partitionable).
//   - The interning table canonicalizes records: any two records that
//     compare FullEqual end up sharing one heap allocation.
//   - MultiIndex ties a registered IndexType's heads and entries back to
//     the interning table and exposes Add / the Lookup* and Remove*
//     families / the Dirty* sweep protocol / a look-ahead iterator.
//
// Concurrency. A MultiIndex is built for use from a single goroutine at
// a time; it performs no internal locking of its own data. Descriptor
// callbacks (FullHash, PartitionEqual, ...) must not call back into the
// MultiIndex that invoked them — doing so is a contract violation that
// StrictMode catches via a reentrancy guard (see contract.go). Callers
// that need cross-goroutine access must serialize externally.
package dedupmulti
