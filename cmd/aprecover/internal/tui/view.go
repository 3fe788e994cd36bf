// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

// Core view rendering and styles.
// Screen-specific renderers are in view_*.go files.

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aplane-algo/aprecover/internal/alert"
	"github.com/aplane-algo/aprecover/internal/nav"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Bold(true)

	validStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	inputActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("42")). // Green border when active
				Padding(0, 1)

	inputInactiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("241")). // Gray border when inactive
				Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder())

	buttonActiveStyle = buttonStyle.
				BorderForeground(lipgloss.Color("42")).
				Foreground(lipgloss.Color("42"))

	buttonInactiveStyle = buttonStyle.
				BorderForeground(lipgloss.Color("241")).
				Foreground(lipgloss.Color("241"))

	buttonDisabledStyle = buttonStyle.
				BorderForeground(lipgloss.Color("238")).
				Foreground(lipgloss.Color("238"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 2).
			Width(70)
)

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var content string
	switch m.nav.Current().Route {
	case nav.RouteRecoverAccount:
		content = m.renderRecoverView()
	case nav.RouteNetworkList:
		content = m.renderNetworkList()
	case nav.RouteAccountPin:
		content = m.renderPinView()
	case nav.RouteAccountDetails:
		content = m.renderDetailsView()
	default:
		content = m.renderAccountsView()
	}

	if m.currentView() == ViewAlert {
		content = content + "\n" + m.renderAlert()
	}

	return content + "\n" + m.renderStatusBar()
}

// renderAlert renders the modal alert
func (m Model) renderAlert() string {
	a, ok := m.alerts.Current()
	if !ok {
		return ""
	}

	var sb strings.Builder
	if a.Kind == alert.KindError {
		sb.WriteString(errorStyle.Render(a.Title))
	} else {
		sb.WriteString(warningStyle.Render(a.Title))
	}
	sb.WriteString("\n\n")
	sb.WriteString(a.Message)
	sb.WriteString("\n\n")

	if a.Acceptable() {
		sb.WriteString(buttonActiveStyle.Render("Proceed (y)"))
		sb.WriteString("  ")
		sb.WriteString(buttonInactiveStyle.Render("Back (n)"))
	} else {
		sb.WriteString(buttonActiveStyle.Render("OK"))
	}
	return popupStyle.Render(sb.String())
}

// renderStatusBar renders the bottom status bar
func (m Model) renderStatusBar() string {
	var parts []string
	parts = append(parts, subtitleStyle.Render(string(m.nav.Current().Route)))
	if m.lastInfo != "" {
		parts = append(parts, infoStyle.Render(m.lastInfo))
	}
	if m.lastError != "" {
		parts = append(parts, errorStyle.Render("Error: "+m.lastError))
	}
	return helpStyle.Render(strings.Join(parts, " | "))
}

// renderInput wraps an input in an active or inactive border
func renderInput(view string, focused bool) string {
	if focused {
		return inputActiveStyle.Render(view)
	}
	return inputInactiveStyle.Render(view)
}
