// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package dedupmulti

// DirtySetHead marks every entry in the partition containing record
// dirty. It is a no-op if that partition has no current members.
func (it *IndexType[R]) DirtySetHead(record R) {
	it.mi.enter()
	defer it.mi.leave()

	h := it.LookupHead(record)
	if it.isMissingHead(h) {
		return
	}
	markHeadDirty(h, true)
}

// DirtySetInstance marks every entry in every head of it dirty. This is
// phase one of a mark-and-sweep resync: mark everything, let the caller
// re-Add each record it still considers authoritative (which clears
// that entry's dirty bit), then call DirtyRemoveInstance to evict
// whatever wasn't re-added.
func (it *IndexType[R]) DirtySetInstance() {
	it.mi.enter()
	defer it.mi.leave()

	for h := range it.liveHeads {
		markHeadDirty(h, true)
	}
}

func markHeadDirty(h *Head[R], dirty bool) {
	for e := h.first; e != nil; e = e.next {
		e.dirty.Store(dirty)
	}
}

// DirtyRemoveInstance removes every still-dirty entry across every head
// of it. If markSurvivorsDirty is true, surviving entries are re-marked
// dirty immediately afterward, priming the next sweep cycle. It returns
// the number of entries evicted.
func (it *IndexType[R]) DirtyRemoveInstance(markSurvivorsDirty bool) int {
	it.mi.enter()
	defer it.mi.leave()

	heads := make([]*Head[R], 0, len(it.liveHeads))
	for h := range it.liveHeads {
		heads = append(heads, h)
	}

	evicted := 0
	for _, h := range heads {
		for e := h.first; e != nil; {
			next := e.next
			if e.dirty.Load() {
				e.Remove()
				evicted++
			}
			e = next
		}
	}

	if markSurvivorsDirty {
		for h := range it.liveHeads {
			markHeadDirty(h, true)
		}
	}

	it.mi.metricDirtySwept(evicted)
	return evicted
}
