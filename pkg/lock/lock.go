//go:build !lockdebug

// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package lock

import "sync"

// Mutex wraps sync.Mutex, and is swapped for a deadlock-detecting
// implementation when built with the "lockdebug" tag.
type Mutex struct {
	sync.Mutex
}

// RWMutex wraps sync.RWMutex, and is swapped for a deadlock-detecting
// implementation when built with the "lockdebug" tag.
type RWMutex struct {
	sync.RWMutex
}
