// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package dedupmulti

import "sync/atomic"

// Entry represents one membership fact: the record it points to is
// present in its head's partition, at a specific position in insertion
// order. A single canonical Record may be referenced by many distinct
// Entry values simultaneously — one per (index-type, partition)
// membership.
//
// Entry fields other than the dirty bit are immutable from the caller's
// point of view; mutation only happens through the package's own
// Add/Remove/Dirty* operations. The dirty bit is the one piece of
// interior mutability an Entry exposes deliberately: it is metadata
// about sweep participation, not part of the entry's identity, so it is
// backed by an atomic.Bool cell rather than by casting away immutability
// elsewhere on the struct.
type Entry[R any] struct {
	record *Record[R]
	head   *Head[R]
	idHash uint64

	prev, next *Entry[R] // head's doubly-linked member list
	idNext     *Entry[R] // head's byID collision chain
	globalNext *Entry[R] // instance-wide byID chain, StrictMode cross-partition check only

	dirty   atomic.Bool
	removed bool
}

// Record returns the canonical record this entry is a membership fact
// about.
func (e *Entry[R]) Record() *Record[R] {
	return e.record
}

// Head returns the head entry owning this membership.
func (e *Entry[R]) Head() *Head[R] {
	return e.head
}

// Dirty reports the entry's current dirty bit.
func (e *Entry[R]) Dirty() bool {
	return e.dirty.Load()
}

// SetDirty sets the entry's dirty bit directly. Exposed for callers that
// want finer control than the Dirty* sweep family; most callers should
// prefer IndexType.DirtySetHead / DirtySetInstance.
func (e *Entry[R]) SetDirty(dirty bool) {
	e.dirty.Store(dirty)
}

// Remove drops this membership entry: it is unlinked from its head, and
// if that empties the head, the head is destroyed too. The underlying
// record's reference count is decremented, which may in turn evict it
// from the interning table.
//
// Remove must not be called twice on the same Entry; doing so is a
// contract violation under StrictMode.
func (e *Entry[R]) Remove() {
	if StrictMode && e.removed {
		panic(reportViolation("Entry removed twice"))
	}
	e.head.removeEntry(e)
}
