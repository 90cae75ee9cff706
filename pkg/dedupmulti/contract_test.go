// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package dedupmulti

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withStrictMode restores the package-level StrictMode switch after the
// test, so tests toggling it don't leak state to the rest of the suite.
func withStrictMode(t *testing.T, v bool) {
	t.Helper()
	prev := StrictMode
	StrictMode = v
	t.Cleanup(func() { StrictMode = prev })
}

func TestDoubleUnrefPanicsUnderStrictMode(t *testing.T) {
	withStrictMode(t, true)
	_, it := newTestIndex(t)

	e, _, err := it.Add(rec{ID: 1, Payload: "a"}, Append, nil)
	require.NoError(t, err)
	canonical := e.Record()
	canonical.Ref()
	canonical.Unref()

	assert.PanicsWithValue(t, ContractViolation{Msg: "Unref called on a record with no outstanding references"}, func() {
		canonical.Unref()
		canonical.Unref()
	})
}

func TestDoubleRemovePanicsUnderStrictMode(t *testing.T) {
	withStrictMode(t, true)
	_, it := newTestIndex(t)

	e, _, err := it.Add(rec{ID: 1, Payload: "a"}, Append, nil)
	require.NoError(t, err)

	e.Remove()
	assert.PanicsWithValue(t, ContractViolation{Msg: "Entry removed twice"}, func() {
		e.Remove()
	})
}

func TestReentrancyGuardPanicsUnderStrictMode(t *testing.T) {
	withStrictMode(t, true)
	mi := New[rec](recObjectDescriptor{}, nil)

	assert.Panics(t, func() {
		mi.enter()
		mi.enter()
	})
}

func TestPartitionRefinementViolationPanics(t *testing.T) {
	withStrictMode(t, true)
	mi := New[rec](recObjectDescriptor{}, nil)
	// A descriptor whose IDEqual does not refine PartitionEqual: two
	// records with the same ID can land in different partitions because
	// PartitionHash depends on Payload, not ID.
	it := mi.NewIndexType(badRefinementDescriptor{})

	_, _, err := it.Add(rec{ID: 1, Payload: "p1"}, Append, nil)
	require.NoError(t, err)

	assert.Panics(t, func() {
		it.Add(rec{ID: 1, Payload: "p2"}, Append, nil)
	})
}

func TestSetLoggerReplacesContractLogger(t *testing.T) {
	prev := contractLogger
	t.Cleanup(func() { contractLogger = prev })

	custom := slog.Default()
	SetLogger(custom)
	assert.Same(t, custom, contractLogger)

	SetLogger(nil)
	assert.Same(t, custom, contractLogger, "SetLogger(nil) must be a no-op")
}

// badRefinementDescriptor partitions by Payload while identifying
// members by ID alone, violating "IDEqual must refine PartitionEqual".
type badRefinementDescriptor struct{}

func (badRefinementDescriptor) IDHash(r rec) uint64   { return recByID{}.IDHash(r) }
func (badRefinementDescriptor) IDEqual(a, b rec) bool { return a.ID == b.ID }

func (badRefinementDescriptor) Partitionable(rec) bool { return true }
func (badRefinementDescriptor) PartitionHash(r rec) uint64 {
	return recObjectDescriptor{}.FullHash(rec{Payload: r.Payload})
}
func (badRefinementDescriptor) PartitionEqual(a, b rec) bool {
	return a.Payload == b.Payload
}
