// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package alert holds the single modal alert a screen may raise.
package alert

import "sync"

// Kind distinguishes blocking errors from warnings the user may accept.
type Kind int

const (
	KindError Kind = iota
	KindRisks
)

// Alert is a raised alert. Accept is nil for errors.
type Alert struct {
	Kind    Kind
	Title   string
	Message string
	accept  func()
}

// Acceptable reports whether the alert offers a Proceed action.
func (a Alert) Acceptable() bool {
	return a.accept != nil
}

// Store holds at most one alert. Raising a new alert replaces the old one.
type Store struct {
	mu      sync.Mutex
	current *Alert
}

// NewStore creates an empty alert store.
func NewStore() *Store {
	return &Store{}
}

// AlertError raises a blocking error.
func (s *Store) AlertError(message string) {
	s.set(&Alert{Kind: KindError, Title: "Error", Message: message})
}

// AlertRisks raises a warning; accept runs if the user chooses Proceed.
func (s *Store) AlertRisks(message string, accept func()) {
	if accept == nil {
		accept = func() {}
	}
	s.set(&Alert{Kind: KindRisks, Title: "Warning", Message: message, accept: accept})
}

func (s *Store) set(a *Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = a
}

// Current returns the raised alert, if any.
func (s *Store) Current() (Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Alert{}, false
	}
	return *s.current, true
}

// Accept clears the alert and runs its accept action. It reports whether an
// action ran.
func (s *Store) Accept() bool {
	s.mu.Lock()
	a := s.current
	s.current = nil
	s.mu.Unlock()

	if a == nil || a.accept == nil {
		return false
	}
	a.accept()
	return true
}

// Dismiss clears the alert without running its action.
func (s *Store) Dismiss() {
	s.set(nil)
}
