// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package dedupmulti

// internTable is the process-internal canonicalization table (C3). It
// maps the full-hash class of a record to the one canonical owned copy,
// using separate chaining keyed by hash — the same shape as restic's
// internal/index chained hash map, adapted here to support deletion
// (release) since records are evicted the instant their reference count
// reaches zero, not just appended to for the table's lifetime.
type internTable[R any] struct {
	desc    ObjectDescriptor[R]
	buckets map[uint64]*Record[R] // hash -> head of collision chain
	count   int
}

func newInternTable[R any](desc ObjectDescriptor[R]) *internTable[R] {
	return &internTable[R]{
		desc:    desc,
		buckets: make(map[uint64]*Record[R]),
	}
}

// intern returns the canonical Record for candidate, creating it if no
// structurally-equal record is already interned. The returned record's
// reference count is unchanged by this call alone — callers that intend
// to hold onto it must Ref it (Add does this for the entry it creates).
func (t *internTable[R]) intern(candidate R, mi *MultiIndex[R]) *Record[R] {
	h := t.desc.FullHash(candidate)
	for c := t.buckets[h]; c != nil; c = c.tableNext {
		if t.desc.FullEqual(candidate, c.value) {
			return c
		}
	}

	v := candidate
	if t.desc.NeedsClone(candidate) {
		v = t.desc.Clone(candidate)
	}

	rec := &Record[R]{
		value: v,
		hash:  h,
		owner: mi,
	}
	rec.tableNext = t.buckets[h]
	t.buckets[h] = rec
	t.count++
	return rec
}

// release removes rec from the table and destroys its value. Called
// only once rec's external+entry reference count has reached zero.
func (t *internTable[R]) release(rec *Record[R]) {
	h := rec.hash
	if t.buckets[h] == rec {
		t.buckets[h] = rec.tableNext
	} else {
		for c := t.buckets[h]; c != nil; c = c.tableNext {
			if c.tableNext == rec {
				c.tableNext = rec.tableNext
				break
			}
		}
	}
	rec.tableNext = nil
	t.count--
	t.desc.Destroy(rec.value)
}
