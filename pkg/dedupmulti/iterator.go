// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package dedupmulti

// Iterator walks a Head's member list in order with look-ahead-one
// semantics: the successor is captured before Next returns the current
// entry, so the caller may call Entry.Remove on the entry Next just
// returned without invalidating the walk. Removing any *other* entry of
// the same head mid-iteration is undefined behavior from the caller's
// side — the iterator does not defend against it.
//
// The zero Iterator is not usable; obtain one from Head.Iterator.
type Iterator[R any] struct {
	head       *Head[R]
	lookahead  *Entry[R]
}

// Iterator returns a fresh Iterator positioned before h's first member.
func (h *Head[R]) Iterator() *Iterator[R] {
	return &Iterator[R]{head: h, lookahead: h.first}
}

// Next advances the iterator and returns the next entry, or (nil, false)
// once the walk is exhausted. An empty head yields false immediately.
func (it *Iterator[R]) Next() (*Entry[R], bool) {
	e := it.lookahead
	if e == nil {
		return nil, false
	}
	it.lookahead = e.next
	return e, true
}

// Rewind restarts the walk from h's current first member. If every
// member was removed during the prior walk (including the last one
// Next returned), h has been destroyed and Rewind yields an iterator
// over zero entries rather than reusing stale state — a deliberately
// safer relaxation of rewind-after-total-removal than leaving it
// undefined.
func (it *Iterator[R]) Rewind() {
	it.lookahead = it.head.first
}
