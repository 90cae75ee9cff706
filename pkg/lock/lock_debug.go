//go:build lockdebug

// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package lock

import "github.com/sasha-s/go-deadlock"

// Mutex is a deadlock.Mutex under the "lockdebug" build tag.
type Mutex struct {
	deadlock.Mutex
}

// RWMutex is a deadlock.RWMutex under the "lockdebug" build tag.
type RWMutex struct {
	deadlock.RWMutex
}
