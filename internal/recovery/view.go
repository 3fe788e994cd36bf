// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package recovery

import (
	"github.com/aplane-algo/aprecover/internal/network"
	"github.com/aplane-algo/aprecover/internal/suri"
)

// State is what the screen is currently showing, in order of precedence.
type State int

const (
	// StateEmpty: no phrase entered.
	StateEmpty State = iota
	// StateValidating: a seed check or address generation is outstanding.
	StateValidating
	// StateInvalid: the phrase is not BIP-39, no network is selected, or no
	// address could be derived.
	StateInvalid
	// StatePathInvalid: the derivation path is malformed.
	StatePathInvalid
	// StateDuplicateFound: the address is already saved on this network.
	StateDuplicateFound
	// StateReady: Recover is enabled.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StatePathInvalid:
		return "path-invalid"
	case StateDuplicateFound:
		return "duplicate"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// View is everything the screen renders, computed once per update.
type View struct {
	State State

	Name         string
	NetworkKey   string
	NetworkTitle string
	Address      string // empty unless derived from the current input
	SeedValid    bool   // BIP-39 indicator on the phrase field
	Reason       string
	RiskAllowed  bool // the phrase may be recovered once the warning is accepted

	ShowDerivationField  bool
	DerivationValue      string
	ShowAddressPreview   bool
	ShowDuplicateWarning bool
	ShowPathWarning      bool
	ConfirmEnabled       bool
}

// View computes the rendering state.
func (f *Form) View() View {
	draft := f.deps.Accounts.NewAccount()
	net := f.network()

	hasAddress := f.hasCurrentAddress(draft.Address)
	v := View{
		Name:       draft.Name,
		NetworkKey: draft.NetworkKey,
		SeedValid:  f.validity.Bip39,
		Reason:     f.validity.Reason,
	}
	v.RiskAllowed = !f.validity.Valid && f.validity.AccountRecoveryAllowed
	if hasAddress {
		v.Address = draft.Address
	}
	if net != nil {
		v.NetworkTitle = net.Title
	} else {
		v.NetworkTitle = "Select Network"
	}

	hasNetwork := net != nil
	duplicate := hasNetwork && hasAddress && f.deps.Accounts.AccountExists(draft.Address, draft.NetworkKey)
	validating := f.checkedSeq != f.seedSeq || f.genPending

	v.ShowDerivationField = network.IsSubstrate(net)
	v.DerivationValue = suri.Derivation{Path: f.derivationPath, Password: f.derivationPassword}.String()
	v.ShowAddressPreview = f.validity.Bip39 && hasNetwork && hasAddress && !duplicate
	v.ShowDuplicateWarning = duplicate
	v.ShowPathWarning = !f.pathValid

	switch {
	case f.seedText == "":
		v.State = StateEmpty
	case validating:
		v.State = StateValidating
	case !f.validity.Bip39 || !hasNetwork:
		v.State = StateInvalid
	case !f.pathValid:
		v.State = StatePathInvalid
	case !hasAddress:
		v.State = StateInvalid
	case duplicate:
		v.State = StateDuplicateFound
	default:
		v.State = StateReady
	}
	v.ConfirmEnabled = v.State == StateReady

	return v
}
