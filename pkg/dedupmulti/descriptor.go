// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package dedupmulti

// ObjectDescriptor is the per-record-type capability set (C1). It tells
// the interning table how to hash, compare, clone, and destroy values of
// type R. Implementations must satisfy:
//
//   - FullEqual is a true equivalence relation (reflexive, symmetric,
//     transitive).
//   - FullEqual(a, b) implies FullHash(a) == FullHash(b).
//   - FullHash is deterministic within a process lifetime.
//
// None of these methods may call back into the MultiIndex they were
// invoked from; see the package doc.
type ObjectDescriptor[R any] interface {
	// FullHash returns a structural hash of r, consistent with FullEqual.
	FullHash(r R) uint64

	// FullEqual reports whether a and b are structurally identical, i.e.
	// interchangeable as far as this record type is concerned.
	FullEqual(a, b R) bool

	// NeedsClone reports whether candidate borrows storage that must be
	// deep-copied before the interning table retains it long-term. A
	// caller may present a "shallow" candidate purely for hashing and
	// probing; if NeedsClone returns true the table calls Clone before
	// inserting.
	NeedsClone(candidate R) bool

	// Clone returns an owned deep copy of r suitable for long-term
	// retention by the interning table.
	Clone(r R) R

	// Destroy releases any resources held by r. Called exactly once,
	// when r's reference count reaches zero.
	Destroy(r R)
}

// IndexTypeDescriptor is the identity half of the per-index-type
// capability set (C2): which record replaces which within one index.
// Two records for which IDEqual holds cannot coexist in the same
// (instance, partition); adding one displaces the other.
//
// If IDEqual(a, b) holds, PartitionEqual(a, b) must also hold whenever
// the descriptor additionally implements Partitioner — identity must
// refine partitioning. Violating this is a programming error that
// StrictMode may catch at Add time.
type IndexTypeDescriptor[R any] interface {
	// IDHash returns a hash consistent with IDEqual.
	IDHash(r R) uint64

	// IDEqual reports whether a and b identify the same logical member
	// within an index type (not necessarily FullEqual).
	IDEqual(a, b R) bool
}

// Partitioner is the optional partitioning half of the index-type
// capability set (C2). An IndexTypeDescriptor that does not implement
// Partitioner declares itself non-partitioning: every record added under
// that index type shares a single implicit head, and partition ordering
// plays no role in lookups.
//
// Partitioning is all-or-nothing per descriptor: either every method
// here is meaningful, or the descriptor doesn't implement the interface
// at all. There is no partial-partitioning mode.
type Partitioner[R any] interface {
	// Partitionable reports whether r may be added under this index
	// type at all. A false result makes Add fail with
	// ErrNotPartitionable and changes no state.
	Partitionable(r R) bool

	// PartitionHash returns a hash consistent with PartitionEqual.
	PartitionHash(r R) uint64

	// PartitionEqual reports whether a and b belong to the same
	// partition (the same ordered head) within an index type.
	PartitionEqual(a, b R) bool
}
