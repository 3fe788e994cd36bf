// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package account holds the account being recovered and the accounts that
// have already been saved.
package account

// Draft is the account being recovered. The recovery form fills it in and
// the PIN screen saves it.
type Draft struct {
	Address            string
	Name               string
	NetworkKey         string
	Seed               string // phrase, or the full SURI on Substrate networks
	SeedPhrase         string
	ValidBip39Seed     bool
	DerivationPath     string
	DerivationPassword string
}

// EmptyAccount returns a blank draft for address on networkKey.
func EmptyAccount(address, networkKey string) Draft {
	return Draft{Address: address, NetworkKey: networkKey}
}

// Zero clears the secret fields of the draft.
func (d *Draft) Zero() {
	d.Seed = ""
	d.SeedPhrase = ""
	d.DerivationPassword = ""
}
