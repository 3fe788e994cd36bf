// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) enterPin() (Model, tea.Cmd) {
	m.pinInput = newPINInput("PIN")
	m.pinConfirmInput = newPINInput("repeat PIN")
	m.pinError = ""
	m.saving = false
	m.pinFocus = 0
	cmd := m.pinInput.Focus()
	return m, cmd
}

// ValidatePIN checks a PIN and its confirmation.
func ValidatePIN(pin, confirm string, minLength int) error {
	if len(pin) < minLength {
		return fmt.Errorf("PIN must be at least %d digits", minLength)
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return fmt.Errorf("PIN must contain only digits")
		}
	}
	if pin != confirm {
		return fmt.Errorf("PINs do not match")
	}
	return nil
}

// handlePinKeys handles keyboard input on the PIN screen
func (m Model) handlePinKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.pinInput.Reset()
		m.pinConfirmInput.Reset()
		m.nav.Back()
		return m, nil

	case "tab", "shift+tab", "up", "down":
		cmd := m.togglePinFocus()
		return m, cmd

	case "enter":
		if m.pinFocus == 0 {
			cmd := m.togglePinFocus()
			return m, cmd
		}
		if err := ValidatePIN(m.pinInput.Value(), m.pinConfirmInput.Value(), m.opts.MinPINLength); err != nil {
			m.pinError = err.Error()
			return m, nil
		}
		pin := []byte(m.pinInput.Value())
		m.pinInput.Reset()
		m.pinConfirmInput.Reset()
		m.pinError = ""
		m.saving = true
		return m, saveAccountCmd(m.opts.Accounts, m.opts.Accounts.NewAccount(), pin)
	}

	var cmd tea.Cmd
	if m.pinFocus == 0 {
		m.pinInput, cmd = m.pinInput.Update(msg)
	} else {
		m.pinConfirmInput, cmd = m.pinConfirmInput.Update(msg)
	}
	m.pinError = ""
	return m, cmd
}

func (m *Model) togglePinFocus() tea.Cmd {
	if m.pinFocus == 0 {
		m.pinFocus = 1
		m.pinInput.Blur()
		return m.pinConfirmInput.Focus()
	}
	m.pinFocus = 0
	m.pinConfirmInput.Blur()
	return m.pinInput.Focus()
}
