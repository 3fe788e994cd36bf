// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aplane-algo/aprecover/internal/recovery"
)

// renderRecoverView renders the Recover Account screen
func (m Model) renderRecoverView() string {
	if m.form == nil {
		return ""
	}
	v := m.form.View()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Recover Account"))
	sb.WriteString("\n")

	sb.WriteString(labelStyle.Render("Name"))
	sb.WriteString("\n")
	sb.WriteString(renderInput(m.nameInput.View(), m.recoverFocus == focusName))
	sb.WriteString("\n\n")

	sb.WriteString(labelStyle.Render("Network"))
	sb.WriteString("\n")
	sb.WriteString(m.renderNetworkCard(v))
	sb.WriteString("\n\n")

	sb.WriteString(labelStyle.Render("Secret Phrase"))
	if v.SeedValid {
		sb.WriteString(" " + validStyle.Render("✓ BIP-39"))
	}
	sb.WriteString("\n")
	sb.WriteString(renderInput(m.seedInput.View(), m.recoverFocus == focusSeed))
	sb.WriteString("\n")
	if v.State == recovery.StateInvalid && v.Reason != "" {
		sb.WriteString(subtitleStyle.Render(v.Reason))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if v.ShowDerivationField {
		sb.WriteString(labelStyle.Render("Derivation Path"))
		sb.WriteString("\n")
		pathView := m.pathInput.View()
		if m.recoverFocus != focusPath && v.DerivationValue != "" {
			// Hide the password when not editing
			pathView = maskDerivationPassword(v.DerivationValue)
		}
		sb.WriteString(renderInput(pathView, m.recoverFocus == focusPath))
		sb.WriteString("\n\n")
	}

	if v.ShowAddressPreview {
		title := v.Name
		if title == "" {
			title = "<no name>"
		}
		card := labelStyle.Render(title) + "\n" + v.Address
		if v.ShowDerivationField && v.DerivationValue != "" {
			card += "\n" + subtitleStyle.Render(maskDerivationPassword(v.DerivationValue))
		}
		sb.WriteString(cardStyle.BorderForeground(m.networkColor(v.NetworkKey)).Render(card))
		sb.WriteString("\n\n")
	}

	if v.ShowDuplicateWarning {
		sb.WriteString(errorStyle.Render("An account with this secret phrase already exists."))
		sb.WriteString("\n\n")
	}
	if v.ShowPathWarning {
		sb.WriteString(errorStyle.Render("Invalid derivation path."))
		sb.WriteString("\n\n")
	}

	var btn string
	switch {
	case !v.ConfirmEnabled:
		btn = buttonDisabledStyle.Render("Recover")
	case m.recoverFocus == focusRecover:
		btn = buttonActiveStyle.Render("Recover")
	default:
		btn = buttonInactiveStyle.Render("Recover")
	}
	sb.WriteString(btn)
	if v.State == recovery.StateValidating {
		sb.WriteString("  " + subtitleStyle.Render("checking..."))
	}
	sb.WriteString("\n\n")

	sb.WriteString(helpStyle.Render("Tab: Next field | Enter: Select | Esc: Back"))
	return sb.String()
}

// renderNetworkCard renders the selected network
func (m Model) renderNetworkCard(v recovery.View) string {
	style := cardStyle
	if m.recoverFocus == focusNetwork {
		style = style.BorderForeground(lipgloss.Color("42"))
	} else {
		style = style.BorderForeground(m.networkColor(v.NetworkKey))
	}
	return style.Render(v.NetworkTitle)
}

func (m Model) networkColor(key string) lipgloss.Color {
	if p, ok := m.opts.Networks.Get(key); ok && p.Color != "" {
		return lipgloss.Color(p.Color)
	}
	return lipgloss.Color("241")
}

// maskDerivationPassword replaces the password part of a derivation field
// value with asterisks.
func maskDerivationPassword(value string) string {
	path, password, found := strings.Cut(value, "///")
	if !found {
		return value
	}
	return path + "///" + strings.Repeat("*", len(password))
}
