// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package lock provides drop-in replacements for sync.Mutex and
// sync.RWMutex. By default they behave exactly like their standard
// library counterparts. Building with the "lockdebug" tag swaps the
// implementation for github.com/sasha-s/go-deadlock, which tracks lock
// acquisition order across goroutines and panics with a lock-graph
// dump instead of hanging forever.
//
// pkg/dedupmulti itself has no locking needs — it is single-threaded by
// design (see its package doc), and guards against its one
// concurrency-shaped hazard, a descriptor callback re-entering the
// MultiIndex that invoked it, with a plain int depth counter instead
// (see pkg/dedupmulti/contract.go), since a Mutex can't distinguish
// reentrant use from genuine contention on the same goroutine.
//
// The real consumer of these types is a caller that wraps a MultiIndex
// for concurrent use, the way netrecords.RouteCache guards its
// MultiIndex with an RWMutex so one goroutine can populate it from a
// netlink feed while others read the cached routes.
package lock
