// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package dedupmulti

// RemoveObject looks up the member entry for record (by identity, within
// its partition) and removes it if present. It reports whether anything
// was removed.
func (it *IndexType[R]) RemoveObject(record R) bool {
	it.mi.enter()
	defer it.mi.leave()

	e := it.LookupEntry(record)
	if it.isMissingEntry(e) {
		return false
	}
	e.Remove()
	return true
}

// RemoveHead removes every member of the partition containing record. It
// reports how many entries were removed.
func (it *IndexType[R]) RemoveHead(record R) int {
	it.mi.enter()
	defer it.mi.leave()

	h := it.LookupHead(record)
	if it.isMissingHead(h) {
		return 0
	}
	return it.removeAllFromHead(h)
}

// removeAllFromHead removes every member currently in h, taking the
// look-ahead-one stance the public Iterator also uses so head
// destruction mid-removal never invalidates the walk.
func (it *IndexType[R]) removeAllFromHead(h *Head[R]) int {
	n := 0
	for e := h.first; e != nil; {
		next := e.next
		e.Remove()
		n++
		e = next
	}
	return n
}

// RemoveInstance removes every head currently registered under it,
// leaving it empty. After this call it may be discarded by its owner.
// It reports the total number of entries removed.
func (it *IndexType[R]) RemoveInstance() int {
	it.mi.enter()
	defer it.mi.leave()

	heads := make([]*Head[R], 0, len(it.liveHeads))
	for h := range it.liveHeads {
		heads = append(heads, h)
	}

	n := 0
	for _, h := range heads {
		n += it.removeAllFromHead(h)
	}
	return n
}
