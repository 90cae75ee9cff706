// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package netrecords

import (
	"net/netip"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Address is one interface address: a prefix (address + mask) assigned
// to an interface, with an optional scope label ("global", "link",
// "host", mirroring the rtnetlink address scopes NetworkManager's
// address cache tracks).
type Address struct {
	Prefix  netip.Prefix
	IfIndex int
	Scope   string
}

// AddressObjectDescriptor implements dedupmulti.ObjectDescriptor[Address].
type AddressObjectDescriptor struct{}

func (AddressObjectDescriptor) FullHash(a Address) uint64 {
	h := xxhash.New()
	writePrefix(h, a.Prefix)
	writeUint64(h, uint64(a.IfIndex))
	h.WriteString(a.Scope)
	return h.Sum64()
}

func (AddressObjectDescriptor) FullEqual(a, b Address) bool {
	return a.Prefix == b.Prefix && a.IfIndex == b.IfIndex && a.Scope == b.Scope
}

func (AddressObjectDescriptor) NeedsClone(Address) bool  { return false }
func (AddressObjectDescriptor) Clone(a Address) Address  { return a }
func (AddressObjectDescriptor) Destroy(Address)          {}

// AddressByInterfaceDescriptor implements dedupmulti.IndexTypeDescriptor
// and dedupmulti.Partitioner for Address: one partition per interface,
// identity is the prefix alone (an interface cannot carry the same
// prefix twice, even with different scopes — re-adding it updates the
// scope in place instead of duplicating the membership).
type AddressByInterfaceDescriptor struct{}

func (AddressByInterfaceDescriptor) IDHash(a Address) uint64 {
	h := xxhash.New()
	writePrefix(h, a.Prefix)
	return h.Sum64()
}

func (AddressByInterfaceDescriptor) IDEqual(a, b Address) bool {
	return a.Prefix == b.Prefix
}

func (AddressByInterfaceDescriptor) Partitionable(Address) bool { return true }

func (AddressByInterfaceDescriptor) PartitionHash(a Address) uint64 {
	return xxhash.Sum64String(strconv.Itoa(a.IfIndex))
}

func (AddressByInterfaceDescriptor) PartitionEqual(a, b Address) bool {
	return a.IfIndex == b.IfIndex
}
