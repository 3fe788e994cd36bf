// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package account

import "testing"

func TestValidateSeed(t *testing.T) {
	tests := []struct {
		name  string
		seed  string
		bip39 bool
		want  SeedValidity
	}{
		{
			name: "empty",
			want: SeedValidity{Reason: ReasonEmpty},
		},
		{
			name:  "empty ignores flag",
			bip39: true,
			want:  SeedValidity{Reason: ReasonEmpty},
		},
		{
			name:  "double space",
			seed:  "abandon  about",
			bip39: true,
			want:  SeedValidity{AccountRecoveryAllowed: true, Reason: ReasonWhitespace},
		},
		{
			name: "leading space",
			seed: " abandon",
			want: SeedValidity{AccountRecoveryAllowed: true, Reason: ReasonWhitespace},
		},
		{
			name: "brain wallet",
			seed: "correct horse battery staple",
			want: SeedValidity{AccountRecoveryAllowed: true, Reason: ReasonBrainWallet},
		},
		{
			name:  "bip39",
			seed:  "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
			bip39: true,
			want:  SeedValidity{Valid: true, Bip39: true, AccountRecoveryAllowed: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateSeed(tt.seed, tt.bip39); got != tt.want {
				t.Errorf("ValidateSeed(%q, %v) = %+v, want %+v", tt.seed, tt.bip39, got, tt.want)
			}
		})
	}
}

func TestEmptyAccount(t *testing.T) {
	d := EmptyAccount("", "")
	if d != (Draft{}) {
		t.Errorf("EmptyAccount(\"\", \"\") = %+v, want zero draft", d)
	}

	d = EmptyAccount("addr", "kusama")
	if d.Address != "addr" || d.NetworkKey != "kusama" || d.Seed != "" {
		t.Errorf("Unexpected draft %+v", d)
	}
}
