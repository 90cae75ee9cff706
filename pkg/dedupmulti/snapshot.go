// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package dedupmulti

// Snapshot returns the records of h's members for which pred returns
// true, in head order. The returned records are non-owning: Snapshot
// does not Ref them, so a caller that wants to retain one past the
// next mutation of h must Ref it explicitly.
func Snapshot[R any](h *Head[R], pred func(R) bool) []*Record[R] {
	out := make([]*Record[R], 0, h.length)
	for e := h.first; e != nil; e = e.next {
		if pred(e.record.value) {
			out = append(out, e.record)
		}
	}
	return out
}
