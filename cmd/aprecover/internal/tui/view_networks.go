// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aplane-algo/aprecover/internal/network"
)

// renderNetworkList renders the network selection screen
func (m Model) renderNetworkList() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Select Network"))
	sb.WriteString("\n")

	if len(m.networks) == 0 {
		sb.WriteString(subtitleStyle.Render("No networks configured."))
		sb.WriteString("\n")
	}

	for i, p := range m.networks {
		marker := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
		line := fmt.Sprintf("%s %s", p.Title, subtitleStyle.Render(describeNetwork(p)))
		if i == m.selectedNetwork {
			sb.WriteString(marker + " " + selectedStyle.Render(p.Title) + " " + subtitleStyle.Render(describeNetwork(p)))
		} else {
			sb.WriteString(marker + " " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("↑/↓: Move | Enter: Select | Esc: Back"))
	return sb.String()
}

func describeNetwork(p network.Params) string {
	if p.Kind == network.KindSubstrate {
		return fmt.Sprintf("(%s, prefix %d)", p.Kind, p.Prefix)
	}
	return fmt.Sprintf("(%s)", p.Kind)
}
