// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package derive turns secret phrases into network addresses.
//
// Ethereum-style networks accept any phrase: BIP-39 mnemonics follow BIP-44,
// everything else is treated as a legacy Parity brain wallet. Substrate
// networks take a SURI and derive an ed25519 key along hard junctions.
// Algorand networks take the 25-word Algorand mnemonic.
package derive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"github.com/aplane-algo/aprecover/internal/crypto"
	"github.com/aplane-algo/aprecover/internal/network"
	"github.com/aplane-algo/aprecover/internal/suri"
)

// ErrInvalidPhrase is returned when a phrase cannot be used on a network.
var ErrInvalidPhrase = errors.New("invalid secret phrase")

// BrainWallet is the result of checking a phrase against a network.
type BrainWallet struct {
	Address string
	// Bip39 reports whether the phrase is a valid mnemonic for the network.
	Bip39 bool
}

// Service derives addresses. The zero value is ready to use.
type Service struct{}

// NewService creates a derivation service.
func NewService() *Service {
	return &Service{}
}

// BrainWalletAddress checks phrase against net and derives its address.
// Without a network only the BIP-39 check runs and Address is empty.
func (s *Service) BrainWalletAddress(ctx context.Context, net *network.Params, phrase string) (BrainWallet, error) {
	if phrase == "" {
		return BrainWallet{}, fmt.Errorf("%w: empty phrase", ErrInvalidPhrase)
	}
	if net == nil {
		return BrainWallet{Bip39: IsBip39(phrase)}, nil
	}

	switch net.Kind {
	case network.KindAlgorand:
		addr, err := algorandAddress(phrase)
		if err != nil {
			return BrainWallet{}, err
		}
		return BrainWallet{Address: addr, Bip39: true}, nil

	case network.KindEthereum, network.KindSubstrate:
		if IsBip39(phrase) {
			addr, err := bip44EthereumAddress(phrase)
			if err != nil {
				return BrainWallet{}, err
			}
			return BrainWallet{Address: addr, Bip39: true}, nil
		}
		addr, err := brainWalletAddress(ctx, phrase)
		if err != nil {
			return BrainWallet{}, err
		}
		return BrainWallet{Address: addr}, nil
	}

	return BrainWallet{}, fmt.Errorf("unsupported network kind %q", net.Kind)
}

// SubstrateAddress derives the SS58 address of a SURI.
func (s *Service) SubstrateAddress(ctx context.Context, uri string, prefix uint16) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	parts, err := suri.Parse(uri)
	if err != nil {
		return "", err
	}
	parts.Phrase = strings.TrimSpace(parts.Phrase)

	key, err := substrateKeyPair(parts)
	if err != nil {
		return "", err
	}
	defer crypto.ZeroBytes(key)

	pub := key[32:]
	return EncodeSS58(pub, prefix)
}

// IsBip39 reports whether phrase is a BIP-39 mnemonic with a valid checksum.
func IsBip39(phrase string) bool {
	return bip39.IsMnemonicValid(phrase)
}
