// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

import (
	"fmt"
	"strings"
)

// renderPinView renders the PIN entry screen
func (m Model) renderPinView() string {
	draft := m.opts.Accounts.NewAccount()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Set Account PIN"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Address: %s\n", draft.Address))
	sb.WriteString(fmt.Sprintf("Network: %s\n\n", draft.NetworkKey))

	sb.WriteString(subtitleStyle.Render(fmt.Sprintf("The secret phrase is encrypted with this PIN (at least %d digits).", m.opts.MinPINLength)))
	sb.WriteString("\n\n")

	sb.WriteString(labelStyle.Render("PIN"))
	sb.WriteString("\n")
	sb.WriteString(renderInput(m.pinInput.View(), m.pinFocus == 0))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Confirm PIN"))
	sb.WriteString("\n")
	sb.WriteString(renderInput(m.pinConfirmInput.View(), m.pinFocus == 1))
	sb.WriteString("\n")

	if m.pinError != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.pinError))
		sb.WriteString("\n")
	}
	if m.saving {
		sb.WriteString("\n")
		sb.WriteString(subtitleStyle.Render("Encrypting and saving..."))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Tab: Switch field | Enter: Save | Esc: Back"))
	return sb.String()
}
