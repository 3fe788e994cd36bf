// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

// Account details screen: shows a saved account and reveals its secret
// after the PIN opens it.

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplane-algo/aprecover/internal/account"
	"github.com/aplane-algo/aprecover/internal/crypto"
	"github.com/aplane-algo/aprecover/internal/nav"
)

func (m Model) enterDetails() (Model, tea.Cmd) {
	m.detailsPIN = newPINInput("PIN")
	m.detailsError = ""
	m.revealedSeed = ""
	m.unsealing = false
	cmd := m.detailsPIN.Focus()
	return m, cmd
}

// handleDetailsKeys handles keyboard input on the account details screen
func (m Model) handleDetailsKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.unsealing {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.revealedSeed = ""
		m.detailsPIN.Reset()
		m.nav.Back()
		return m, nil

	case "enter":
		if m.revealedSeed != "" {
			return m, nil
		}
		if m.detailsPIN.Value() == "" {
			m.detailsError = "Enter the account PIN."
			return m, nil
		}
		pin := []byte(m.detailsPIN.Value())
		m.detailsPIN.Reset()
		m.detailsError = ""
		m.unsealing = true
		return m, unsealAccountCmd(m.opts.Accounts, m.detailsAccount, pin)
	}

	if m.revealedSeed != "" {
		return m, nil
	}
	var cmd tea.Cmd
	m.detailsPIN, cmd = m.detailsPIN.Update(msg)
	m.detailsError = ""
	return m, cmd
}

// handleAccountUnsealed shows the opened secret if the details screen is
// still open for the same account.
func (m Model) handleAccountUnsealed(msg accountUnsealedMsg) Model {
	m.unsealing = false
	defer crypto.ZeroBytes(msg.seed)

	if m.nav.Current().Route != nav.RouteAccountDetails ||
		msg.address != m.detailsAccount.Address || msg.networkKey != m.detailsAccount.NetworkKey {
		return m
	}

	if msg.err != nil {
		switch {
		case errors.Is(msg.err, crypto.ErrWrongPIN):
			m.detailsError = "Incorrect PIN."
		case errors.Is(msg.err, account.ErrAccountNotFound):
			m.detailsError = "This account no longer exists."
		default:
			m.detailsError = msg.err.Error()
		}
		m.log.Warn("failed to unseal account", "network", msg.networkKey, "address", msg.address, "error", msg.err)
		return m
	}

	m.revealedSeed = string(msg.seed)
	m.log.Info("account secret revealed", "network", msg.networkKey, "address", msg.address)
	return m
}
