// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplane-algo/aprecover/internal/account"
	"github.com/aplane-algo/aprecover/internal/crypto"
	"github.com/aplane-algo/aprecover/internal/recovery"
)

// Form-scoped messages carry the form they were issued for; results that
// arrive after the screen was left and re-entered are dropped.

// seedDebounceMsg fires when the secret phrase input has been quiet for the
// debounce period since edit seq.
type seedDebounceMsg struct {
	form *recovery.Form
	seq  uint64
}

// seedCheckedMsg carries the verdict of a seed check.
type seedCheckedMsg struct {
	form   *recovery.Form
	result recovery.SeedResult
}

// addressGeneratedMsg carries a derived address.
type addressGeneratedMsg struct {
	form   *recovery.Form
	result recovery.GenerationResult
}

// accountSavedMsg reports the outcome of saving the draft.
type accountSavedMsg struct {
	account account.Account
	err     error
}

// accountUnsealedMsg carries the secret of a saved account.
type accountUnsealedMsg struct {
	networkKey string
	address    string
	seed       []byte
	err        error
}

// NetworksChangedMsg tells the TUI the network registry was reloaded.
type NetworksChangedMsg struct{}

// debounceCmd waits out the quiet period for seed edit seq.
func debounceCmd(form *recovery.Form, seq uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return seedDebounceMsg{form: form, seq: seq}
	})
}

// checkSeedCmd runs a seed check off the update loop.
func checkSeedCmd(form *recovery.Form, d recovery.Deriver, chk recovery.SeedCheck) tea.Cmd {
	return func() tea.Msg {
		return seedCheckedMsg{form: form, result: recovery.CheckSeed(context.Background(), d, chk)}
	}
}

// generateCmd derives an address off the update loop.
func generateCmd(form *recovery.Form, d recovery.Deriver, g recovery.Generation) tea.Cmd {
	return func() tea.Msg {
		return addressGeneratedMsg{form: form, result: recovery.Generate(context.Background(), d, g)}
	}
}

// saveAccountCmd seals and writes the draft. Argon2 takes a noticeable
// moment, so it runs off the update loop.
func saveAccountCmd(store *account.Store, draft account.Draft, pin []byte) tea.Cmd {
	return func() tea.Msg {
		a, err := store.Save(draft, pin)
		crypto.ZeroBytes(pin)
		return accountSavedMsg{account: a, err: err}
	}
}

// unsealAccountCmd opens a saved account's sealed secret with pin.
func unsealAccountCmd(store *account.Store, a account.Account, pin []byte) tea.Cmd {
	return func() tea.Msg {
		seed, err := store.Unseal(a.NetworkKey, a.Address, pin)
		crypto.ZeroBytes(pin)
		return accountUnsealedMsg{networkKey: a.NetworkKey, address: a.Address, seed: seed, err: err}
	}
}
