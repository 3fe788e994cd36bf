// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package derive

import (
	"crypto/ed25519"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/pbkdf2"

	"github.com/aplane-algo/aprecover/internal/crypto"
	"github.com/aplane-algo/aprecover/internal/suri"
)

// ErrSoftJunction is returned for soft ("/") junctions, which ed25519 keys
// cannot be derived along.
var ErrSoftJunction = errors.New("soft derivation is not supported for ed25519 keys")

const (
	miniSecretIterations = 2048
	chainCodeLen         = 32
)

var ed25519HDKDTag = scaleString("Ed25519HDKD")

// substrateKeyPair turns a parsed SURI into an ed25519 key pair. The phrase
// must be a valid BIP-39 mnemonic; the mini secret is derived from its
// entropy, not from the BIP-39 seed.
func substrateKeyPair(parts suri.Parts) (ed25519.PrivateKey, error) {
	seed, err := miniSecret(parts.Phrase, parts.Password)
	if err != nil {
		return nil, err
	}
	defer func() { crypto.ZeroBytes(seed) }()

	junctions, err := suri.ParseJunctions(parts.DerivePath)
	if err != nil {
		return nil, err
	}
	for _, j := range junctions {
		if !j.Hard {
			return nil, fmt.Errorf("%w: %s", ErrSoftJunction, j)
		}
		next := hardDeriveEd25519(seed, chainCode(j.Value))
		crypto.ZeroBytes(seed)
		seed = next[:]
	}

	return ed25519.NewKeyFromSeed(seed), nil
}

func miniSecret(phrase, password string) ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(phrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhrase, err)
	}
	defer crypto.ZeroBytes(entropy)

	key := pbkdf2.Key(entropy, []byte("mnemonic"+password), miniSecretIterations, 64, sha512.New)
	defer crypto.ZeroBytes(key)

	out := make([]byte, ed25519.SeedSize)
	copy(out, key[:ed25519.SeedSize])
	return out, nil
}

func hardDeriveEd25519(seed []byte, cc [chainCodeLen]byte) [32]byte {
	buf := make([]byte, 0, len(ed25519HDKDTag)+len(seed)+chainCodeLen)
	buf = append(buf, ed25519HDKDTag...)
	buf = append(buf, seed...)
	buf = append(buf, cc[:]...)
	defer crypto.ZeroBytes(buf)
	return blake2b.Sum256(buf)
}

// chainCode encodes a junction value: numbers as little-endian u64, anything
// else as a SCALE string. Encodings longer than 32 bytes are hashed.
func chainCode(value string) [chainCodeLen]byte {
	var encoded []byte
	if n, err := strconv.ParseUint(value, 10, 64); err == nil {
		encoded = binary.LittleEndian.AppendUint64(nil, n)
	} else {
		encoded = scaleString(value)
	}

	var cc [chainCodeLen]byte
	if len(encoded) > chainCodeLen {
		cc = blake2b.Sum256(encoded)
		return cc
	}
	copy(cc[:], encoded)
	return cc
}

func scaleString(s string) []byte {
	return append(scaleCompact(uint64(len(s))), s...)
}

func scaleCompact(n uint64) []byte {
	switch {
	case n < 1<<6:
		return []byte{byte(n << 2)}
	case n < 1<<14:
		return binary.LittleEndian.AppendUint16(nil, uint16(n<<2|0b01))
	case n < 1<<30:
		return binary.LittleEndian.AppendUint32(nil, uint32(n<<2|0b10))
	}
	var raw []byte
	raw = binary.LittleEndian.AppendUint64(raw, n)
	for len(raw) > 4 && raw[len(raw)-1] == 0 {
		raw = raw[:len(raw)-1]
	}
	return append([]byte{byte(len(raw)-4)<<2 | 0b11}, raw...)
}
