// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

// Recover Account screen handlers.

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplane-algo/aprecover/internal/account"
	"github.com/aplane-algo/aprecover/internal/nav"
	"github.com/aplane-algo/aprecover/internal/network"
	"github.com/aplane-algo/aprecover/internal/recovery"
)

// enterRecover starts a fresh recovery: new form, empty draft, cleared inputs.
func (m Model) enterRecover() (Model, tea.Cmd) {
	m.form = recovery.New(recovery.Deps{
		Deriver:   m.opts.Deriver,
		Accounts:  m.opts.Accounts,
		Networks:  m.opts.Networks,
		Alerts:    m.alerts,
		Navigator: m.nav,
		Logger:    m.log,
	})
	m.nameInput = newTextInput("new name", 40)
	m.seedInput = newTextInput("secret phrase", 72)
	m.seedInput.CharLimit = 0
	m.pathInput = newTextInput("//hard/soft///password", 40)
	m.lastInfo = ""
	m.lastError = ""

	var cmds []tea.Cmd
	if key := m.opts.DefaultNetwork; key != "" {
		if _, ok := m.opts.Networks.Get(key); ok {
			cmds = append(cmds, m.recheckSeed(m.form.SelectNetwork(key)))
		} else {
			m.log.Warn("default network not found", "network", key)
		}
	}
	cmds = append(cmds, m.focusRecoverField(focusSeed))
	m.recoverFocus = focusSeed
	return m, tea.Batch(cmds...)
}

// recheckSeed runs the seed check for seq right away. Used after a network
// change, where there is no typing to wait out.
func (m Model) recheckSeed(seq uint64) tea.Cmd {
	chk, ok := m.form.SeedCheck(seq)
	if !ok {
		return nil
	}
	return checkSeedCmd(m.form, m.opts.Deriver, chk)
}

// isSubstrate reports whether the draft's network takes a derivation path.
func (m Model) isSubstrate() bool {
	p, ok := m.opts.Networks.Get(m.opts.Accounts.NewAccount().NetworkKey)
	return ok && network.IsSubstrate(p)
}

// focusRecoverField moves focus to field, returning the cursor blink command.
func (m *Model) focusRecoverField(field int) tea.Cmd {
	m.recoverFocus = field
	m.nameInput.Blur()
	m.seedInput.Blur()
	m.pathInput.Blur()
	switch field {
	case focusName:
		return m.nameInput.Focus()
	case focusSeed:
		return m.seedInput.Focus()
	case focusPath:
		return m.pathInput.Focus()
	}
	return nil
}

// stepFocus moves focus by delta, skipping the path field on networks
// without derivation paths.
func (m *Model) stepFocus(delta int) tea.Cmd {
	field := m.recoverFocus
	for {
		field = (field + delta + focusCount) % focusCount
		if field != focusPath || m.isSubstrate() {
			break
		}
	}
	return m.focusRecoverField(field)
}

// handleRecoverKeys handles keyboard input on the recover screen
func (m Model) handleRecoverKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.opts.Accounts.UpdateNew(func(d *account.Draft) { d.Zero() })
		m.nav.Back()
		return m, nil

	case "tab", "down":
		cmd := m.stepFocus(1)
		return m, cmd

	case "shift+tab", "up":
		cmd := m.stepFocus(-1)
		return m, cmd

	case "enter":
		switch m.recoverFocus {
		case focusNetwork:
			m.nav.Navigate(nav.RouteNetworkList, nav.Params{})
			return m, nil
		case focusRecover:
			if !m.form.View().ConfirmEnabled {
				return m, nil
			}
			outcome := m.form.Confirm()
			m.log.Debug("recover pressed", "outcome", outcome.String())
			return m, nil
		}
		cmd := m.stepFocus(1)
		return m, cmd

	case " ":
		if m.recoverFocus == focusNetwork {
			m.nav.Navigate(nav.RouteNetworkList, nav.Params{})
			return m, nil
		}
	}

	return m.updateRecoverInput(msg)
}

// updateRecoverInput forwards a key to the focused input and reacts to
// changes in its value.
func (m Model) updateRecoverInput(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.recoverFocus {
	case focusName:
		before := m.nameInput.Value()
		m.nameInput, cmd = m.nameInput.Update(msg)
		if v := m.nameInput.Value(); v != before {
			m.form.SetName(v)
		}
		return m, cmd

	case focusSeed:
		before := m.seedInput.Value()
		m.seedInput, cmd = m.seedInput.Update(msg)
		if v := m.seedInput.Value(); v != before {
			seq := m.form.SetSeedText(v)
			return m, tea.Batch(cmd, debounceCmd(m.form, seq, m.opts.Debounce))
		}
		return m, cmd

	case focusPath:
		before := m.pathInput.Value()
		m.pathInput, cmd = m.pathInput.Update(msg)
		if v := m.pathInput.Value(); v != before {
			if g, ok := m.form.SetDerivationText(v); ok {
				return m, tea.Batch(cmd, generateCmd(m.form, m.opts.Deriver, g))
			}
		}
		return m, cmd
	}
	return m, nil
}
