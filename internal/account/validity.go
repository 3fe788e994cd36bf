// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package account

import "strings"

// Reasons reported by ValidateSeed.
const (
	ReasonEmpty       = "A secret phrase is required."
	ReasonWhitespace  = "Extra whitespace found."
	ReasonBrainWallet = "This recovery phrase will be treated as a legacy Parity brain wallet."
)

// SeedValidity is the verdict on a secret phrase.
type SeedValidity struct {
	Valid bool
	Bip39 bool
	// AccountRecoveryAllowed lets the user proceed past a risk warning when
	// the phrase is not Valid.
	AccountRecoveryAllowed bool
	Reason                 string
}

// ValidateSeed judges seed given whether the derivation service recognized
// it as a BIP-39 phrase. ValidateSeed("", false) is the default verdict.
func ValidateSeed(seed string, bip39 bool) SeedValidity {
	if seed == "" {
		return SeedValidity{Reason: ReasonEmpty}
	}

	for _, word := range strings.Split(seed, " ") {
		if word == "" {
			return SeedValidity{AccountRecoveryAllowed: true, Reason: ReasonWhitespace}
		}
	}

	if !bip39 {
		return SeedValidity{AccountRecoveryAllowed: true, Reason: ReasonBrainWallet}
	}

	return SeedValidity{Valid: true, Bip39: true, AccountRecoveryAllowed: true}
}
