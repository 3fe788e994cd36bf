// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplane-algo/aprecover/internal/nav"
)

// handleAccountsKeys handles keyboard input on the accounts list
func (m Model) handleAccountsKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "r", "n":
		m.nav.Navigate(nav.RouteRecoverAccount, nav.Params{})

	case "enter":
		list := m.opts.Accounts.List()
		if m.selectedAccount >= len(list) {
			m.nav.Navigate(nav.RouteRecoverAccount, nav.Params{})
			break
		}
		m.detailsAccount = list[m.selectedAccount]
		m.nav.Navigate(nav.RouteAccountDetails, nav.Params{})

	case "up", "k":
		if m.selectedAccount > 0 {
			m.selectedAccount--
		}

	case "down", "j":
		if m.selectedAccount < len(m.opts.Accounts.List())-1 {
			m.selectedAccount++
		}
	}
	return m, nil
}
