// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package network describes the networks an account can be recovered on.
package network

import (
	"fmt"
	"regexp"
)

// Kind selects how addresses are derived on a network.
type Kind string

const (
	// KindEthereum derives the address directly from the phrase: BIP-44 for
	// BIP-39 phrases, the legacy brain-wallet scheme otherwise.
	KindEthereum Kind = "ethereum"

	// KindSubstrate derives the address from a SURI (phrase, derivation path
	// and password) and encodes it with the network's SS58 prefix.
	KindSubstrate Kind = "substrate"

	// KindAlgorand derives the address from a 25-word Algorand mnemonic.
	KindAlgorand Kind = "algorand"
)

// MaxSS58Prefix is the largest prefix the two-byte SS58 form can carry.
const MaxSS58Prefix = 16383

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Params describes one network.
type Params struct {
	Key    string `yaml:"key"`
	Title  string `yaml:"title"`
	Kind   Kind   `yaml:"kind"`
	Prefix uint16 `yaml:"prefix,omitempty"` // SS58 prefix (substrate only)
	Color  string `yaml:"color,omitempty"`  // lipgloss color for the network card
	Order  int    `yaml:"order,omitempty"`  // position in the network list
}

// IsSubstrate reports whether the network uses hierarchical SURI derivation.
// A nil network is not Substrate.
func IsSubstrate(p *Params) bool {
	return p != nil && p.Kind == KindSubstrate
}

// Validate checks the params for consistency.
func (p *Params) Validate() error {
	if !keyPattern.MatchString(p.Key) {
		return fmt.Errorf("invalid network key %q (lowercase letters, digits, '-' and '_')", p.Key)
	}
	if p.Title == "" {
		return fmt.Errorf("network %q: title is required", p.Key)
	}
	switch p.Kind {
	case KindEthereum, KindAlgorand:
		if p.Prefix != 0 {
			return fmt.Errorf("network %q: prefix only applies to substrate networks", p.Key)
		}
	case KindSubstrate:
		if p.Prefix > MaxSS58Prefix {
			return fmt.Errorf("network %q: SS58 prefix %d out of range", p.Key, p.Prefix)
		}
	default:
		return fmt.Errorf("network %q: unknown kind %q", p.Key, p.Kind)
	}
	return nil
}

// Defaults returns the built-in network list.
func Defaults() []Params {
	return []Params{
		{Key: "ethereum", Title: "Ethereum", Kind: KindEthereum, Color: "63", Order: 0},
		{Key: "polkadot", Title: "Polkadot", Kind: KindSubstrate, Prefix: 0, Color: "198", Order: 1},
		{Key: "kusama", Title: "Kusama", Kind: KindSubstrate, Prefix: 2, Color: "244", Order: 2},
		{Key: "westend", Title: "Westend", Kind: KindSubstrate, Prefix: 42, Color: "203", Order: 3},
		{Key: "algorand", Title: "Algorand", Kind: KindAlgorand, Color: "39", Order: 4},
	}
}
