// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package derive

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/aplane-algo/aprecover/internal/network"
)

// ErrInvalidAddress is returned by VerifyAddress.
var ErrInvalidAddress = errors.New("invalid address")

// VerifyAddress checks that address is well formed for net.
func VerifyAddress(net *network.Params, address string) error {
	if net == nil {
		return fmt.Errorf("%w: no network", ErrInvalidAddress)
	}

	switch net.Kind {
	case network.KindSubstrate:
		return VerifySubstrateAddress(address, net.Prefix)

	case network.KindEthereum:
		return verifyEthereumAddress(address)

	case network.KindAlgorand:
		if _, err := types.DecodeAddress(address); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
		}
		return nil
	}
	return fmt.Errorf("unsupported network kind %q", net.Kind)
}

// verifyEthereumAddress accepts all-lowercase, all-uppercase and correctly
// checksummed addresses.
func verifyEthereumAddress(address string) error {
	digits, ok := strings.CutPrefix(address, "0x")
	if !ok || len(digits) != 40 {
		return fmt.Errorf("%w: expected 0x and 40 hex digits", ErrInvalidAddress)
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if digits == strings.ToLower(digits) || digits == strings.ToUpper(digits) {
		return nil
	}
	if checksumAddress(raw) != address {
		return fmt.Errorf("%w: bad checksum", ErrInvalidAddress)
	}
	return nil
}
