// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package dedupmulti

import (
	"errors"

	"github.com/cilium/dedupmulti/pkg/dedupmulti/dmmetrics"
)

// ErrNotPartitionable is returned by Add when the index type's
// Partitioner reports the candidate record as not partitionable under
// that index type.
var ErrNotPartitionable = errors.New("dedupmulti: record is not partitionable under this index type")

// MultiIndex is the top-level container (C4). It owns the interning
// table; each IndexType created by NewIndexType points back to it, but
// the MultiIndex itself keeps no list of its IndexType instances. The
// zero value is not usable; construct with New.
type MultiIndex[R any] struct {
	intern *internTable[R]

	reentry int // reentrancy guard depth, see contract.go

	metrics *dmmetrics.Collector
}

// New constructs a MultiIndex whose interning table is driven by desc.
// metrics may be nil, in which case no Prometheus instrumentation is
// recorded.
func New[R any](desc ObjectDescriptor[R], metrics *dmmetrics.Collector) *MultiIndex[R] {
	return &MultiIndex[R]{
		intern:  newInternTable[R](desc),
		metrics: metrics,
	}
}

// NewIndexType creates a new, empty IndexType instance bound to mi.
// Partitioning is enabled automatically if desc also implements
// Partitioner[R].
func (mi *MultiIndex[R]) NewIndexType(desc IndexTypeDescriptor[R]) *IndexType[R] {
	return newIndexType(mi, desc)
}

// InternedCount returns the number of distinct canonical records
// currently interned, for tests and diagnostics.
func (mi *MultiIndex[R]) InternedCount() int {
	return mi.intern.count
}

func (mi *MultiIndex[R]) enter() {
	if StrictMode && mi.reentry > 0 {
		panic(reportViolation("descriptor callback re-entered its own MultiIndex"))
	}
	mi.reentry++
}

func (mi *MultiIndex[R]) leave() {
	mi.reentry--
}

func (mi *MultiIndex[R]) metricHeadCreated() {
	if mi.metrics != nil {
		mi.metrics.Heads.Inc()
	}
}

func (mi *MultiIndex[R]) metricHeadDestroyed() {
	if mi.metrics != nil {
		mi.metrics.Heads.Dec()
	}
}

func (mi *MultiIndex[R]) metricEntryCreated() {
	if mi.metrics != nil {
		mi.metrics.Entries.Inc()
	}
}

func (mi *MultiIndex[R]) metricEntryRemoved() {
	if mi.metrics != nil {
		mi.metrics.Entries.Dec()
	}
}

func (mi *MultiIndex[R]) metricRecordInterned() {
	if mi.metrics != nil {
		mi.metrics.Records.Inc()
	}
}

func (mi *MultiIndex[R]) metricRecordReleased() {
	if mi.metrics != nil {
		mi.metrics.Records.Dec()
	}
}

func (mi *MultiIndex[R]) metricDirtySwept(n int) {
	if mi.metrics != nil {
		mi.metrics.DirtyEvicted.Add(float64(n))
	}
}

// AddHint carries the fast-path lookups a caller may have already
// performed for an upcoming Add call. The MultiIndex verifies each
// hint before trusting it; a stale or mismatched hint is silently
// ignored and recomputed rather than trusted blindly.
type AddHint[R any] struct {
	// Order, when non-nil, is an existing entry in the same partition
	// that a brand-new member should be inserted immediately before
	// (Prepend/PrependForce) or after (Append/AppendForce), instead of
	// at the head/tail of the partition.
	Order *Entry[R]

	// Entry, when non-nil and not the index type's EntryMissing
	// sentinel, is the caller's belief about the id-equal predecessor
	// of the candidate. EntryMissing means "already looked, confirmed
	// absent".
	Entry *Entry[R]

	// Head, when non-nil and not the index type's HeadMissing
	// sentinel, is the caller's belief about the candidate's partition
	// head.
	Head *Head[R]
}

// Add interns candidate and inserts or updates a membership entry for
// it under it, per mode. It returns the resulting entry and, if an
// id-equal predecessor's record was replaced, the now-displaced
// canonical record — the caller owns that reference and must Unref it
// once done (see Record.Unref).
//
// Add fails with ErrNotPartitionable, changing no state, if it has a
// Partitioner and Partitionable(candidate) is false.
func (it *IndexType[R]) Add(candidate R, mode InsertMode, hint *AddHint[R]) (*Entry[R], *Record[R], error) {
	mi := it.mi
	mi.enter()
	defer mi.leave()

	if !it.partitionable(candidate) {
		return nil, nil, ErrNotPartitionable
	}

	head := it.resolveHead(candidate, hint)
	predecessor := it.resolvePredecessor(head, candidate, hint)

	before := mi.intern.count
	canonical := mi.intern.intern(candidate, mi)
	if mi.intern.count != before {
		mi.metricRecordInterned()
	}

	if predecessor != nil {
		// Read the displaced record before replaceOrMove overwrites
		// predecessor.record with canonical.
		displaced := displacedOrNil(predecessor, canonical)
		return it.replaceOrMove(head, predecessor, canonical, mode), displaced, nil
	}

	entry := it.insertNew(head, canonical, mode, hint)
	return entry, nil, nil
}

// displacedOrNil implements the "same pointer means no displacement"
// rule: a replace that interns back to the record already in place
// reports nothing as displaced.
func displacedOrNil[R any](predecessor *Entry[R], canonical *Record[R]) *Record[R] {
	if predecessor.record == canonical {
		return nil
	}
	return predecessor.record
}

// resolveHead finds (or, for a brand-new partition, lazily creates) the
// head candidate belongs to, trusting hint.Head only after verifying it
// actually matches candidate's partition.
func (it *IndexType[R]) resolveHead(candidate R, hint *AddHint[R]) *Head[R] {
	if hint != nil && hint.Head != nil && !it.isMissingHead(hint.Head) {
		if _, live := it.liveHeads[hint.Head]; live && it.partitionEqual(candidate, hint.Head.representative()) {
			return hint.Head
		}
	}
	return it.ensureHead(candidate)
}

// resolvePredecessor finds the id-equal member already present in head,
// trusting hint.Entry only after verifying it belongs to head and is
// actually id-equal to candidate.
func (it *IndexType[R]) resolvePredecessor(head *Head[R], candidate R, hint *AddHint[R]) *Entry[R] {
	if hint != nil && hint.Entry != nil && !it.isMissingEntry(hint.Entry) {
		e := hint.Entry
		if e.head == head && !e.removed && it.desc.IDEqual(candidate, e.record.value) {
			return e
		}
	}
	return head.findByID(candidate, it.desc)
}

func (it *IndexType[R]) replaceOrMove(head *Head[R], predecessor *Entry[R], canonical *Record[R], mode InsertMode) *Entry[R] {
	switch mode {
	case PrependForce:
		head.moveToFirst(predecessor)
	case AppendForce:
		head.moveToLast(predecessor)
	}
	if predecessor.record != canonical {
		canonical.Ref()
		predecessor.record = canonical
	}
	predecessor.dirty.Store(false)
	return predecessor
}

func (it *IndexType[R]) insertNew(head *Head[R], canonical *Record[R], mode InsertMode, hint *AddHint[R]) *Entry[R] {
	idHash := it.desc.IDHash(canonical.value)
	it.checkPartitionRefinement(canonical.value, idHash, head)

	canonical.Ref()
	e := &Entry[R]{
		record: canonical,
		head:   head,
		idHash: idHash,
	}

	var order *Entry[R]
	if hint != nil && hint.Order != nil && hint.Order.head == head && !hint.Order.removed {
		order = hint.Order
	}

	switch mode {
	case Prepend, PrependForce:
		if order != nil {
			head.linkBefore(e, order)
		} else {
			head.linkFirst(e)
		}
	case Append, AppendForce:
		if order != nil {
			head.linkAfter(e, order)
		} else {
			head.linkLast(e)
		}
	}
	head.addToByID(e)
	it.addToGlobalByID(e)
	it.mi.metricEntryCreated()
	return e
}
