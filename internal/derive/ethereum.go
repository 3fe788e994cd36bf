// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package derive

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/sha3"

	"github.com/aplane-algo/aprecover/internal/crypto"
)

// Brain wallets hash the phrase this many times before looking for a key.
const brainWalletRounds = 16384

// ethereumPath is m/44'/60'/0'/0/0.
var ethereumPath = []uint32{
	hdkeychain.HardenedKeyStart + 44,
	hdkeychain.HardenedKeyStart + 60,
	hdkeychain.HardenedKeyStart + 0,
	0,
	0,
}

// bip44EthereumAddress derives the first account of a BIP-39 phrase.
func bip44EthereumAddress(phrase string) (string, error) {
	seed, err := bip39.NewSeedWithErrorChecking(phrase, "")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhrase, err)
	}
	defer crypto.ZeroBytes(seed)

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return "", fmt.Errorf("failed to create master key: %w", err)
	}
	for _, index := range ethereumPath {
		key, err = key.Derive(index)
		if err != nil {
			return "", fmt.Errorf("failed to derive child %d: %w", index, err)
		}
	}

	pub, err := key.ECPubKey()
	if err != nil {
		return "", fmt.Errorf("failed to get public key: %w", err)
	}
	return ethereumAddress(pub), nil
}

// brainWalletAddress implements the legacy Parity brain wallet: keccak the
// phrase, keep hashing for brainWalletRounds, then continue until the secret
// is a valid key whose address starts with a zero byte.
func brainWalletAddress(ctx context.Context, phrase string) (string, error) {
	secret := keccak256([]byte(phrase))
	defer crypto.ZeroBytes(secret)

	for i := 0; ; {
		next := keccak256(secret)
		crypto.ZeroBytes(secret)
		secret = next

		if i <= brainWalletRounds {
			i++
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		var scalar btcec.ModNScalar
		if overflow := scalar.SetByteSlice(secret); overflow || scalar.IsZero() {
			continue
		}
		priv, pub := btcec.PrivKeyFromBytes(secret)
		addr := addressBytes(pub)
		priv.Zero()
		if addr[0] == 0 {
			return checksumAddress(addr), nil
		}
	}
}

func ethereumAddress(pub *btcec.PublicKey) string {
	return checksumAddress(addressBytes(pub))
}

func addressBytes(pub *btcec.PublicKey) []byte {
	uncompressed := pub.SerializeUncompressed()
	return keccak256(uncompressed[1:])[12:]
}

// checksumAddress renders a 20-byte address with the EIP-55 mixed-case
// checksum.
func checksumAddress(addr []byte) string {
	lower := hex.EncodeToString(addr)
	hash := keccak256([]byte(lower))

	var b strings.Builder
	b.Grow(2 + len(lower))
	b.WriteString("0x")
	for i, c := range lower {
		nibble := hash[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if c >= 'a' && nibble&0x0f >= 8 {
			c -= 'a' - 'A'
		}
		b.WriteRune(c)
	}
	return b.String()
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}
