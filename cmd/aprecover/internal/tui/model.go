// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplane-algo/aprecover/internal/account"
	"github.com/aplane-algo/aprecover/internal/alert"
	"github.com/aplane-algo/aprecover/internal/nav"
	"github.com/aplane-algo/aprecover/internal/network"
	"github.com/aplane-algo/aprecover/internal/recovery"
	"github.com/aplane-algo/aprecover/internal/util"
)

// ViewState represents the current UI state
type ViewState int

const (
	ViewAccounts ViewState = iota
	ViewRecover
	ViewNetworkList
	ViewAccountPin
	ViewAccountDetails
	ViewAlert // modal over the current screen
)

// Fields of the recover screen in focus order.
const (
	focusName = iota
	focusNetwork
	focusSeed
	focusPath
	focusRecover
	focusCount
)

// Options configures the TUI.
type Options struct {
	Accounts       *account.Store
	Networks       *network.Registry
	Deriver        recovery.Deriver
	Debounce       time.Duration
	MinPINLength   int
	DefaultNetwork string
	Logger         *slog.Logger
}

// Model is the main TUI application model
type Model struct {
	opts   Options
	log    *slog.Logger
	alerts *alert.Store
	nav    *nav.Navigator

	// Route the screen state below was initialized for
	route nav.Route

	// Recover Account screen
	form         *recovery.Form
	nameInput    textinput.Model
	seedInput    textinput.Model
	pathInput    textinput.Model
	recoverFocus int

	// Network list
	networks        []network.Params
	selectedNetwork int

	// Account PIN screen
	pinInput        textinput.Model
	pinConfirmInput textinput.Model
	pinFocus        int // 0 = PIN, 1 = confirmation
	pinError        string
	saving          bool

	// Accounts screen
	selectedAccount int

	// Account details screen
	detailsAccount account.Account
	detailsPIN     textinput.Model
	detailsError   string
	revealedSeed   string
	unsealing      bool

	lastError string
	lastInfo  string

	width  int
	height int

	quitting bool
}

// NewModel creates a new TUI model positioned on the accounts list.
func NewModel(opts Options) Model {
	if opts.Debounce <= 0 {
		opts.Debounce = util.DefaultDebounce
	}
	if opts.MinPINLength <= 0 {
		opts.MinPINLength = 6
	}
	log := opts.Logger
	if log == nil {
		log = util.Logger
	}

	m := Model{
		opts:   opts,
		log:    log,
		alerts: alert.NewStore(),
		nav:    nav.NewNavigator(nav.RouteAccounts),
		route:  nav.RouteAccounts,
	}
	m.networks = opts.Networks.List()
	return m
}

// Init starts the program.
func (m Model) Init() tea.Cmd {
	return nil
}

// currentView maps the navigator and alert state to a view.
func (m Model) currentView() ViewState {
	if _, ok := m.alerts.Current(); ok {
		return ViewAlert
	}
	switch m.nav.Current().Route {
	case nav.RouteRecoverAccount:
		return ViewRecover
	case nav.RouteNetworkList:
		return ViewNetworkList
	case nav.RouteAccountPin:
		return ViewAccountPin
	case nav.RouteAccountDetails:
		return ViewAccountDetails
	}
	return ViewAccounts
}

func newTextInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = width
	return ti
}

func newPINInput(placeholder string) textinput.Model {
	ti := newTextInput(placeholder, 20)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.CharLimit = 32
	return ti
}
