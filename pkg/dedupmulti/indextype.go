// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package dedupmulti

// InsertMode selects where Add places a brand-new member within its
// partition, and whether an id-equal predecessor is repositioned when
// replaced:
//
//	mode          new member goes    existing id-equal member
//	Prepend       front              left in place, record replaced
//	PrependForce  front              moved to front, record replaced
//	Append        back               left in place, record replaced
//	AppendForce   back               moved to back, record replaced
type InsertMode int

const (
	// Prepend inserts a new member at the head of its partition; an
	// id-equal predecessor is left in place and its record replaced.
	Prepend InsertMode = iota
	// PrependForce inserts a new member at the head of its partition;
	// an id-equal predecessor is moved to the head too.
	PrependForce
	// Append inserts a new member at the tail of its partition; an
	// id-equal predecessor is left in place and its record replaced.
	Append
	// AppendForce inserts a new member at the tail of its partition;
	// an id-equal predecessor is moved to the tail too.
	AppendForce
)

// IndexType is one registered use of an IndexTypeDescriptor against one
// MultiIndex (C2 instance). It owns the set of heads currently alive
// under it.
type IndexType[R any] struct {
	mi          *MultiIndex[R]
	desc        IndexTypeDescriptor[R]
	partitioner Partitioner[R] // nil if desc does not implement Partitioner

	heads     map[uint64]*Head[R] // partition hash -> head of collision chain
	liveHeads map[*Head[R]]struct{}

	// globalByID indexes every live entry in the instance by IDHash,
	// independent of which head it lives in. It exists solely so
	// StrictMode can catch a descriptor whose IDEqual doesn't refine
	// PartitionEqual: two id-equal records landing in different heads.
	// It plays no role in ordinary lookups, which stay scoped to a
	// single head's byID map.
	globalByID map[uint64]*Entry[R]

	entryMissing *Entry[R]
	headMissing  *Head[R]
}

// newIndexType constructs an instance bound to mi. Partitioning is
// enabled automatically when desc additionally implements Partitioner:
// no separate flag, just a type assertion on the descriptor the caller
// already supplied.
func newIndexType[R any](mi *MultiIndex[R], desc IndexTypeDescriptor[R]) *IndexType[R] {
	it := &IndexType[R]{
		mi:         mi,
		desc:       desc,
		heads:      make(map[uint64]*Head[R]),
		liveHeads:  make(map[*Head[R]]struct{}),
		globalByID: make(map[uint64]*Entry[R]),
	}
	it.partitioner, _ = desc.(Partitioner[R])
	it.entryMissing = &Entry[R]{}
	it.headMissing = &Head[R]{instance: it}
	return it
}

// EntryMissing returns the distinguished sentinel LookupEntry and Add's
// hint machinery use to mean "looked, and confirmed absent" — distinct
// from nil, which means "never looked". Callers may stash this value in
// their own fast-path caches alongside real *Entry pointers.
func (it *IndexType[R]) EntryMissing() *Entry[R] { return it.entryMissing }

// HeadMissing is EntryMissing's counterpart for LookupHead.
func (it *IndexType[R]) HeadMissing() *Head[R] { return it.headMissing }

func (it *IndexType[R]) isMissingEntry(e *Entry[R]) bool { return e == it.entryMissing }
func (it *IndexType[R]) isMissingHead(h *Head[R]) bool   { return h == it.headMissing }

// partitionHash computes the partition hash of r, honoring
// non-partitioning descriptors (single implicit partition, hash 0, for
// everything).
func (it *IndexType[R]) partitionHash(r R) uint64 {
	if it.partitioner == nil {
		return 0
	}
	return it.partitioner.PartitionHash(r)
}

func (it *IndexType[R]) partitionEqual(a, b R) bool {
	if it.partitioner == nil {
		return true
	}
	return it.partitioner.PartitionEqual(a, b)
}

func (it *IndexType[R]) partitionable(r R) bool {
	if it.partitioner == nil {
		return true
	}
	return it.partitioner.Partitionable(r)
}

// findHead locates the head containing r's partition, without creating
// one. Returns nil if no such head currently exists.
func (it *IndexType[R]) findHead(r R) *Head[R] {
	ph := it.partitionHash(r)
	for h := it.heads[ph]; h != nil; h = h.hashNext {
		if it.partitionEqual(r, h.representative()) {
			return h
		}
	}
	return nil
}

// ensureHead locates or creates the head for r's partition.
func (it *IndexType[R]) ensureHead(r R) *Head[R] {
	if h := it.findHead(r); h != nil {
		return h
	}
	ph := it.partitionHash(r)
	h := newHead(it, ph)
	h.hashNext = it.heads[ph]
	it.heads[ph] = h
	it.liveHeads[h] = struct{}{}
	it.mi.metricHeadCreated()
	return h
}

func (it *IndexType[R]) destroyHead(h *Head[R]) {
	ph := h.partHash
	if it.heads[ph] == h {
		it.heads[ph] = h.hashNext
	} else {
		for c := it.heads[ph]; c != nil; c = c.hashNext {
			if c.hashNext == h {
				c.hashNext = h.hashNext
				break
			}
		}
	}
	h.hashNext = nil
	delete(it.liveHeads, h)
	it.mi.metricHeadDestroyed()
}

// checkPartitionRefinement panics under StrictMode if some other live
// entry in the instance is IDEqual to candidate but lives in a
// different head than expectedHead — the descriptor's IDEqual does not
// refine its PartitionEqual.
func (it *IndexType[R]) checkPartitionRefinement(candidate R, idHash uint64, expectedHead *Head[R]) {
	if !StrictMode {
		return
	}
	for e := it.globalByID[idHash]; e != nil; e = e.globalNext {
		if e.head != expectedHead && it.desc.IDEqual(candidate, e.record.value) {
			panic(reportViolation("IDEqual does not refine PartitionEqual: two id-equal records landed in different partitions"))
		}
	}
}

func (it *IndexType[R]) addToGlobalByID(e *Entry[R]) {
	e.globalNext = it.globalByID[e.idHash]
	it.globalByID[e.idHash] = e
}

func (it *IndexType[R]) removeFromGlobalByID(e *Entry[R]) {
	if it.globalByID[e.idHash] == e {
		it.globalByID[e.idHash] = e.globalNext
	} else {
		for c := it.globalByID[e.idHash]; c != nil; c = c.globalNext {
			if c.globalNext == e {
				c.globalNext = e.globalNext
				break
			}
		}
	}
	e.globalNext = nil
}

// representative returns any member's record value, used only to probe
// PartitionEqual against a candidate. Heads are never empty outside of
// the instant they're being created or destroyed, so this is always
// available when findHead needs it.
func (h *Head[R]) representative() (zero R) {
	if h.first != nil {
		return h.first.record.value
	}
	return zero
}
