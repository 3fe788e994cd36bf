// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

import (
	"fmt"
	"strings"

	"github.com/aplane-algo/aprecover/internal/util"
)

// renderAccountsView renders the list of recovered accounts
func (m Model) renderAccountsView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Accounts"))
	sb.WriteString("\n")

	accounts := m.opts.Accounts.List()
	if len(accounts) == 0 {
		sb.WriteString(subtitleStyle.Render("No accounts yet. Press r to recover one from a secret phrase."))
		sb.WriteString("\n")
	}

	for i, a := range accounts {
		name := a.Name
		if name == "" {
			name = "<no name>"
		}
		line := fmt.Sprintf("%-20s %-10s %s", name, a.NetworkKey, util.FormatAddressShort(a.Address))
		if a.DerivationPath != "" {
			line += " " + a.DerivationPath
		}
		if !a.ValidBip39Seed {
			line += " (legacy)"
		}
		if i == m.selectedAccount {
			sb.WriteString(selectedStyle.Render(line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("r: Recover account | Enter: Details | ↑/↓: Move | q: Quit"))
	return sb.String()
}
