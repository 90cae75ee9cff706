// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package dedupmulti

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Iterator uses look-ahead-one semantics: removing the entry Next just
// returned must not disturb the rest of the walk.
func TestIteratorSurvivesRemovalOfCurrentEntry(t *testing.T) {
	_, it := newTestIndex(t)

	e1, _, _ := it.Add(rec{ID: 1, Payload: "a"}, Append, nil)
	_, _, _ = it.Add(rec{ID: 2, Payload: "b"}, Append, nil)
	_, _, _ = it.Add(rec{ID: 3, Payload: "c"}, Append, nil)

	head := e1.Head()
	var seen []string
	iter := head.Iterator()
	for {
		e, ok := iter.Next()
		if !ok {
			break
		}
		seen = append(seen, e.Record().Value().Payload)
		if e.Record().Value().ID == 2 {
			e.Remove()
		}
	}

	assert.Equal(t, []string{"a", "b", "c"}, seen)
	assert.Equal(t, []string{"a", "c"}, headPayloads(head))
}

func TestIteratorEmptyHead(t *testing.T) {
	_, it := newTestIndex(t)
	e, _, _ := it.Add(rec{ID: 1, Payload: "a"}, Append, nil)
	head := e.Head()

	iter := head.Iterator()
	ent, ok := iter.Next()
	require.True(t, ok)
	ent.Remove() // empties and destroys head

	_, ok = iter.Next()
	assert.False(t, ok)
}

func TestIteratorRewindAfterTotalRemovalYieldsEmptyWalk(t *testing.T) {
	_, it := newTestIndex(t)
	e, _, _ := it.Add(rec{ID: 1, Payload: "a"}, Append, nil)
	head := e.Head()

	iter := head.Iterator()
	ent, _ := iter.Next()
	ent.Remove()

	iter.Rewind()
	_, ok := iter.Next()
	assert.False(t, ok, "rewinding a walk that emptied its head yields zero entries, not stale state")
}

func TestIteratorRewindRestartsFromCurrentFirst(t *testing.T) {
	_, it := newTestIndex(t)
	e1, _, _ := it.Add(rec{ID: 1, Payload: "a"}, Append, nil)
	_, _, _ = it.Add(rec{ID: 2, Payload: "b"}, Append, nil)
	head := e1.Head()

	iter := head.Iterator()
	iter.Next()
	iter.Next()

	iter.Rewind()
	e, ok := iter.Next()
	require.True(t, ok)
	assert.Equal(t, "a", e.Record().Value().Payload)
}
