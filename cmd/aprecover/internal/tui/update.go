// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

// Core update loop and message handling.
// Screen-specific handlers are in update_*.go files.

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplane-algo/aprecover/internal/account"
	"github.com/aplane-algo/aprecover/internal/nav"
)

// Update handles all TUI events and messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case seedDebounceMsg:
		if msg.form != m.form {
			return m, nil
		}
		chk, ok := m.form.SeedCheck(msg.seq)
		if !ok {
			// Superseded by a later keystroke
			return m, nil
		}
		return m, checkSeedCmd(m.form, m.opts.Deriver, chk)

	case seedCheckedMsg:
		if msg.form != m.form {
			return m, nil
		}
		if g, ok := m.form.ApplySeedCheck(msg.result); ok {
			return m, generateCmd(m.form, m.opts.Deriver, g)
		}
		return m, nil

	case addressGeneratedMsg:
		if msg.form != m.form {
			return m, nil
		}
		m.form.ApplyGeneration(msg.result)
		return m, nil

	case accountSavedMsg:
		m.saving = false
		if msg.err != nil {
			if errors.Is(msg.err, account.ErrAccountExists) {
				m.pinError = "An account with this secret phrase already exists."
			} else {
				m.pinError = msg.err.Error()
			}
			m.log.Error("failed to save account", "error", msg.err)
			return m, nil
		}
		m.opts.Accounts.UpdateNew(func(d *account.Draft) {
			*d = account.EmptyAccount("", "")
		})
		label := msg.account.Name
		if label == "" {
			label = msg.account.Address
		}
		m.lastInfo = fmt.Sprintf("Recovered %s on %s", label, msg.account.NetworkKey)
		m.lastError = ""
		m.log.Info("account recovered", "network", msg.account.NetworkKey, "address", msg.account.Address)
		m.nav.Reset(nav.RouteAccounts)
		return m.syncRoute()

	case accountUnsealedMsg:
		return m.handleAccountUnsealed(msg), nil

	case NetworksChangedMsg:
		return m.handleNetworksChanged()
	}

	return m, nil
}

// handleKeyPress handles keyboard input based on current view
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit handling
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	var next Model
	switch m.currentView() {
	case ViewAlert:
		next, cmd = m.handleAlertKeys(msg)
	case ViewRecover:
		next, cmd = m.handleRecoverKeys(msg)
	case ViewNetworkList:
		next, cmd = m.handleNetworkListKeys(msg)
	case ViewAccountPin:
		next, cmd = m.handlePinKeys(msg)
	case ViewAccountDetails:
		next, cmd = m.handleDetailsKeys(msg)
	default:
		next, cmd = m.handleAccountsKeys(msg)
	}
	if next.quitting {
		return next, cmd
	}

	// Handlers may have moved the navigator; set up the new screen.
	synced, syncCmd := next.syncRoute()
	return synced, tea.Batch(cmd, syncCmd)
}

// handleAlertKeys handles the modal alert
func (m Model) handleAlertKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	a, _ := m.alerts.Current()
	switch msg.String() {
	case "enter", "y":
		if a.Acceptable() {
			m.alerts.Accept()
		} else {
			m.alerts.Dismiss()
		}
	case "esc", "n", "q":
		m.alerts.Dismiss()
	}
	return m, nil
}

// syncRoute initializes screen state when the navigator has moved.
func (m Model) syncRoute() (Model, tea.Cmd) {
	cur := m.nav.Current().Route
	if cur == m.route {
		return m, nil
	}
	prev := m.route
	m.route = cur

	switch cur {
	case nav.RouteRecoverAccount:
		if prev == nav.RouteAccounts {
			return m.enterRecover()
		}
		cmd := m.focusRecoverField(m.recoverFocus)
		return m, cmd
	case nav.RouteNetworkList:
		return m.enterNetworkList(), nil
	case nav.RouteAccountPin:
		return m.enterPin()
	case nav.RouteAccountDetails:
		return m.enterDetails()
	case nav.RouteAccounts:
		m.form = nil
		m.revealedSeed = ""
		if n := len(m.opts.Accounts.List()); m.selectedAccount >= n {
			m.selectedAccount = max(n-1, 0)
		}
	}
	return m, nil
}
