// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

import (
	"fmt"
	"strings"
)

// renderDetailsView renders a saved account
func (m Model) renderDetailsView() string {
	a := m.detailsAccount
	name := a.Name
	if name == "" {
		name = "<no name>"
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(name))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Network: %s\n", a.NetworkKey))
	sb.WriteString(fmt.Sprintf("Address: %s\n", a.Address))
	if a.DerivationPath != "" {
		sb.WriteString(fmt.Sprintf("Derivation path: %s\n", a.DerivationPath))
	}
	if a.HasPassword {
		sb.WriteString("Derivation password: set\n")
	}
	if !a.ValidBip39Seed {
		sb.WriteString(subtitleStyle.Render("Legacy brain wallet phrase"))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Recovered: %s\n\n", a.CreatedAt.Local().Format("2006-01-02 15:04")))

	if m.revealedSeed != "" {
		sb.WriteString(warningStyle.Render("Secret (anyone who sees this controls the account):"))
		sb.WriteString("\n")
		sb.WriteString(cardStyle.Render(maskDerivationPassword(m.revealedSeed)))
		sb.WriteString("\n\n")
		sb.WriteString(helpStyle.Render("Esc: Hide and go back"))
		return sb.String()
	}

	sb.WriteString(labelStyle.Render("PIN to reveal the secret"))
	sb.WriteString("\n")
	sb.WriteString(renderInput(m.detailsPIN.View(), true))
	sb.WriteString("\n")
	if m.detailsError != "" {
		sb.WriteString(errorStyle.Render(m.detailsError))
		sb.WriteString("\n")
	}
	if m.unsealing {
		sb.WriteString(subtitleStyle.Render("Decrypting..."))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Enter: Reveal | Esc: Back"))
	return sb.String()
}
