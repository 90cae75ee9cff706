// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package dedupmulti

// LookupEntry returns the member entry in record's partition whose
// stored record is IDEqual to record, or it.EntryMissing() if no such
// entry exists. It never interns record and never allocates.
func (it *IndexType[R]) LookupEntry(record R) *Entry[R] {
	if !it.partitionable(record) {
		return it.entryMissing
	}
	head := it.findHead(record)
	if head == nil {
		return it.entryMissing
	}
	if e := head.findByID(record, it.desc); e != nil {
		return e
	}
	return it.entryMissing
}

// LookupHead returns the head entry of the partition containing record,
// or it.HeadMissing() if no member currently occupies that partition.
// For a non-partitioning index type, it returns the single implicit
// head if it currently exists, regardless of what record's own fields
// are, since every record shares that one head.
func (it *IndexType[R]) LookupHead(record R) *Head[R] {
	if h := it.findHead(record); h != nil {
		return h
	}
	return it.headMissing
}
