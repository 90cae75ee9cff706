// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package dedupmulti

import (
	"encoding/binary"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// rec is a minimal {id, payload} fixture record used throughout this
// package's tests. IDHash/IDEqual key off ID alone; FullHash/FullEqual
// key off both fields, so two records with the same ID but different
// Payload are distinct canonical values but still displace one another
// within an index type.
type rec struct {
	ID      int
	Payload string
}

type recObjectDescriptor struct{}

func (recObjectDescriptor) FullHash(r rec) uint64 {
	h := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(r.ID))
	h.Write(buf[:])
	h.WriteString(r.Payload)
	return h.Sum64()
}

func (recObjectDescriptor) FullEqual(a, b rec) bool {
	return a.ID == b.ID && a.Payload == b.Payload
}

func (recObjectDescriptor) NeedsClone(rec) bool { return false }
func (recObjectDescriptor) Clone(r rec) rec     { return r }
func (recObjectDescriptor) Destroy(rec)         {}

// recByID is a non-partitioning index type: every rec shares one head,
// identity is ID alone.
type recByID struct{}

func (recByID) IDHash(r rec) uint64   { return xxhash.Sum64String(strconv.Itoa(r.ID)) }
func (recByID) IDEqual(a, b rec) bool { return a.ID == b.ID }

// recByParity partitions records into two heads (even/odd ID), identity
// still keyed on ID alone — used to exercise Partitioner.
type recByParity struct{}

func (recByParity) IDHash(r rec) uint64   { return xxhash.Sum64String(strconv.Itoa(r.ID)) }
func (recByParity) IDEqual(a, b rec) bool { return a.ID == b.ID }

func (recByParity) Partitionable(rec) bool { return true }
func (recByParity) PartitionHash(r rec) uint64 {
	return uint64(r.ID % 2)
}
func (recByParity) PartitionEqual(a, b rec) bool {
	return a.ID%2 == b.ID%2
}

// recByParityOddOnly rejects even IDs outright, for ErrNotPartitionable
// coverage.
type recByParityOddOnly struct{}

func (recByParityOddOnly) IDHash(r rec) uint64   { return xxhash.Sum64String(strconv.Itoa(r.ID)) }
func (recByParityOddOnly) IDEqual(a, b rec) bool { return a.ID == b.ID }

func (recByParityOddOnly) Partitionable(r rec) bool { return r.ID%2 != 0 }
func (recByParityOddOnly) PartitionHash(r rec) uint64 {
	return uint64(r.ID % 2)
}
func (recByParityOddOnly) PartitionEqual(a, b rec) bool {
	return a.ID%2 == b.ID%2
}

func payloads(recs []*Record[rec]) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Value().Payload
	}
	return out
}

func headPayloads(h *Head[rec]) []string {
	var out []string
	for e := h.first; e != nil; e = e.next {
		out = append(out, e.record.value.Payload)
	}
	return out
}
