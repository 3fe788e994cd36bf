// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) enterNetworkList() Model {
	m.networks = m.opts.Networks.List()
	m.selectedNetwork = 0
	current := m.opts.Accounts.NewAccount().NetworkKey
	for i, p := range m.networks {
		if p.Key == current {
			m.selectedNetwork = i
			break
		}
	}
	return m
}

// handleNetworkListKeys handles keyboard input on the network list
func (m Model) handleNetworkListKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.nav.Back()

	case "up", "k":
		if m.selectedNetwork > 0 {
			m.selectedNetwork--
		}

	case "down", "j":
		if m.selectedNetwork < len(m.networks)-1 {
			m.selectedNetwork++
		}

	case "enter", " ":
		if m.selectedNetwork >= len(m.networks) || m.form == nil {
			return m, nil
		}
		key := m.networks[m.selectedNetwork].Key
		seq := m.form.SelectNetwork(key)
		m.nav.Back()
		return m, m.recheckSeed(seq)
	}
	return m, nil
}

// handleNetworksChanged refreshes the list after a reload and re-derives
// the address, since the selected network's prefix may have changed.
func (m Model) handleNetworksChanged() (tea.Model, tea.Cmd) {
	m.networks = m.opts.Networks.List()
	if m.selectedNetwork >= len(m.networks) {
		m.selectedNetwork = max(len(m.networks)-1, 0)
	}
	if m.form == nil {
		return m, nil
	}
	key := m.opts.Accounts.NewAccount().NetworkKey
	if key == "" {
		return m, nil
	}
	return m, m.recheckSeed(m.form.SelectNetwork(key))
}
