// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package derive

import (
	"errors"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/crypto"

	"github.com/aplane-algo/aprecover/internal/network"
)

func TestVerifyAddress(t *testing.T) {
	ethereum := &network.Params{Key: "ethereum", Title: "Ethereum", Kind: network.KindEthereum}
	westend := &network.Params{Key: "westend", Title: "Westend", Kind: network.KindSubstrate, Prefix: 42}
	polkadot := &network.Params{Key: "polkadot", Title: "Polkadot", Kind: network.KindSubstrate}
	algorand := &network.Params{Key: "algorand", Title: "Algorand", Kind: network.KindAlgorand}
	algoAccount := crypto.GenerateAccount()

	tests := []struct {
		name    string
		net     *network.Params
		address string
		wantErr bool
	}{
		{"checksummed", ethereum, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", false},
		{"lowercase", ethereum, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", false},
		{"bad checksum", ethereum, "0x5AAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", true},
		{"no prefix", ethereum, "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"short", ethereum, "0x5aaeb6", true},
		{"ss58", westend, "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", false},
		{"ss58 wrong prefix", polkadot, "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", true},
		{"algorand", algorand, algoAccount.Address.String(), false},
		{"algorand garbage", algorand, "NOTANADDRESS", true},
		{"no network", nil, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyAddress(tt.net, tt.address)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyAddress() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && tt.net != nil && tt.net.Kind == network.KindEthereum && !errors.Is(err, ErrInvalidAddress) {
				t.Errorf("error %v does not wrap ErrInvalidAddress", err)
			}
		})
	}
}
