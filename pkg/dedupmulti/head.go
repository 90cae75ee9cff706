// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package dedupmulti

// Head anchors the ordered list of member entries sharing one partition
// within one IndexType instance. A head is created lazily the first
// time a member enters its partition and destroyed the instant its last
// member leaves: no empty head ever outlives a public operation.
type Head[R any] struct {
	instance   *IndexType[R]
	partHash   uint64
	first, last *Entry[R]
	length     int

	byID map[uint64]*Entry[R] // idHash -> head of byID collision chain, for O(1) predecessor lookup

	hashNext *Head[R] // instance's partition-hash collision chain
}

// Instance returns the IndexType instance this head belongs to.
func (h *Head[R]) Instance() *IndexType[R] {
	return h.instance
}

// Len returns the number of member entries currently in h.
func (h *Head[R]) Len() int {
	return h.length
}

func newHead[R any](inst *IndexType[R], partHash uint64) *Head[R] {
	return &Head[R]{
		instance: inst,
		partHash: partHash,
		byID:     make(map[uint64]*Entry[R]),
	}
}

// findByID returns the member entry whose record is IDEqual to
// candidate, if any.
func (h *Head[R]) findByID(candidate R, desc IndexTypeDescriptor[R]) *Entry[R] {
	idHash := desc.IDHash(candidate)
	for e := h.byID[idHash]; e != nil; e = e.idNext {
		if desc.IDEqual(candidate, e.record.value) {
			return e
		}
	}
	return nil
}

func (h *Head[R]) addToByID(e *Entry[R]) {
	e.idNext = h.byID[e.idHash]
	h.byID[e.idHash] = e
}

func (h *Head[R]) removeFromByID(e *Entry[R]) {
	if h.byID[e.idHash] == e {
		h.byID[e.idHash] = e.idNext
	} else {
		for c := h.byID[e.idHash]; c != nil; c = c.idNext {
			if c.idNext == e {
				c.idNext = e.idNext
				break
			}
		}
	}
	e.idNext = nil
}

// linkFirst inserts e at the head of the member list.
func (h *Head[R]) linkFirst(e *Entry[R]) {
	e.prev = nil
	e.next = h.first
	if h.first != nil {
		h.first.prev = e
	}
	h.first = e
	if h.last == nil {
		h.last = e
	}
	h.length++
}

// linkLast inserts e at the tail of the member list.
func (h *Head[R]) linkLast(e *Entry[R]) {
	e.next = nil
	e.prev = h.last
	if h.last != nil {
		h.last.next = e
	}
	h.last = e
	if h.first == nil {
		h.first = e
	}
	h.length++
}

// linkBefore inserts e immediately before mark, which must already be a
// member of h.
func (h *Head[R]) linkBefore(e, mark *Entry[R]) {
	e.next = mark
	e.prev = mark.prev
	if mark.prev != nil {
		mark.prev.next = e
	} else {
		h.first = e
	}
	mark.prev = e
	h.length++
}

// linkAfter inserts e immediately after mark, which must already be a
// member of h.
func (h *Head[R]) linkAfter(e, mark *Entry[R]) {
	e.prev = mark
	e.next = mark.next
	if mark.next != nil {
		mark.next.prev = e
	} else {
		h.last = e
	}
	mark.next = e
	h.length++
}

// unlink removes e from the member list without touching byID, the
// record refcount, or head destruction. Callers needing the full
// removal semantics should use removeEntry or moveToFirst/moveToLast.
func (h *Head[R]) unlink(e *Entry[R]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		h.first = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		h.last = e.prev
	}
	e.prev, e.next = nil, nil
	h.length--
}

// moveToFirst relocates an existing member entry to the head of the
// list, used by the *_force insertion modes.
func (h *Head[R]) moveToFirst(e *Entry[R]) {
	if h.first == e {
		return
	}
	h.unlink(e)
	h.linkFirst(e)
}

// moveToLast relocates an existing member entry to the tail of the
// list, used by the *_force insertion modes.
func (h *Head[R]) moveToLast(e *Entry[R]) {
	if h.last == e {
		return
	}
	h.unlink(e)
	h.linkLast(e)
}

// removeEntry drops e from h, decrements its record's reference count,
// and destroys h if that was its last member.
func (h *Head[R]) removeEntry(e *Entry[R]) {
	h.unlink(e)
	h.removeFromByID(e)
	h.instance.removeFromGlobalByID(e)
	e.removed = true
	rec := e.record
	e.record = nil
	e.head = nil
	if h.length == 0 {
		h.instance.destroyHead(h)
	}
	h.instance.mi.metricEntryRemoved()
	rec.Unref()
}
