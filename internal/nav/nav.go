// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package nav is a stack of screens.
package nav

import "sync"

// Route names a screen.
type Route string

const (
	RouteAccounts       Route = "Accounts"
	RouteRecoverAccount Route = "RecoverAccount"
	RouteNetworkList    Route = "NetworkList"
	RouteAccountPin     Route = "AccountPin"
	RouteAccountDetails Route = "AccountDetails"
)

// Params are passed to the destination screen.
type Params struct {
	// IsNew tells the PIN screen it is saving a new account.
	IsNew bool
}

// Entry is one screen on the stack.
type Entry struct {
	Route  Route
	Params Params
}

// Navigator is a route stack. The first entry is never popped.
type Navigator struct {
	mu    sync.Mutex
	stack []Entry
}

// NewNavigator creates a navigator positioned at root.
func NewNavigator(root Route) *Navigator {
	return &Navigator{stack: []Entry{{Route: root}}}
}

// Navigate pushes route.
func (n *Navigator) Navigate(route Route, params Params) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stack = append(n.stack, Entry{Route: route, Params: params})
}

// Back pops the current screen. It reports false at the root.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.stack) <= 1 {
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return true
}

// Reset drops everything above the root and pushes route on top, or just
// returns to the root when route is the root.
func (n *Navigator) Reset(route Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stack = n.stack[:1]
	if n.stack[0].Route != route {
		n.stack = append(n.stack, Entry{Route: route})
	}
}

// Current returns the screen on top of the stack.
func (n *Navigator) Current() Entry {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}

// Depth returns the number of screens on the stack.
func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.stack)
}
