// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package derive

import (
	"bytes"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/blake2b"
)

const (
	ss58ChecksumLen = 2
	publicKeyLen    = 32
	maxSS58Prefix   = 16383
)

var ss58Preimage = []byte("SS58PRE")

var (
	ErrInvalidSS58     = errors.New("invalid SS58 address")
	ErrSS58Checksum    = errors.New("SS58 checksum mismatch")
	ErrNotEd25519Point = errors.New("public key is not a valid ed25519 point")
)

// EncodeSS58 encodes a 32-byte public key as an SS58 address for prefix.
func EncodeSS58(pub []byte, prefix uint16) (string, error) {
	if len(pub) != publicKeyLen {
		return "", fmt.Errorf("public key must be %d bytes, got %d", publicKeyLen, len(pub))
	}
	if prefix > maxSS58Prefix {
		return "", fmt.Errorf("SS58 prefix %d out of range", prefix)
	}

	var payload []byte
	if prefix < 64 {
		payload = append(payload, byte(prefix))
	} else {
		first := byte((prefix&0xFC)>>2) | 0x40
		second := byte(prefix>>8) | byte((prefix&0x03)<<6)
		payload = append(payload, first, second)
	}
	payload = append(payload, pub...)

	sum := ss58Checksum(payload)
	payload = append(payload, sum[:ss58ChecksumLen]...)
	return base58.Encode(payload), nil
}

// DecodeSS58 returns the public key and prefix carried by address. It checks
// the checksum but not whether the key is a valid curve point.
func DecodeSS58(address string) ([]byte, uint16, error) {
	data := base58.Decode(address)
	if len(data) == 0 {
		return nil, 0, ErrInvalidSS58
	}

	var prefix uint16
	var prefixLen int
	switch {
	case data[0] < 64:
		prefix = uint16(data[0])
		prefixLen = 1
	case data[0] < 128:
		if len(data) < 2 {
			return nil, 0, ErrInvalidSS58
		}
		lower := (data[0] << 2) | (data[1] >> 6)
		upper := data[1] & 0x3F
		prefix = uint16(lower) | uint16(upper)<<8
		prefixLen = 2
	default:
		return nil, 0, fmt.Errorf("%w: reserved prefix byte %d", ErrInvalidSS58, data[0])
	}

	if len(data) != prefixLen+publicKeyLen+ss58ChecksumLen {
		return nil, 0, fmt.Errorf("%w: unexpected length %d", ErrInvalidSS58, len(data))
	}

	body := data[:prefixLen+publicKeyLen]
	sum := ss58Checksum(body)
	if !bytes.Equal(sum[:ss58ChecksumLen], data[prefixLen+publicKeyLen:]) {
		return nil, 0, ErrSS58Checksum
	}

	pub := make([]byte, publicKeyLen)
	copy(pub, data[prefixLen:prefixLen+publicKeyLen])
	return pub, prefix, nil
}

// IsEd25519PublicKey reports whether pub decodes to a point on edwards25519.
func IsEd25519PublicKey(pub []byte) bool {
	if len(pub) != publicKeyLen {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(pub)
	return err == nil
}

// VerifySubstrateAddress checks that address is a well-formed SS58 address
// for prefix whose key is an ed25519 point.
func VerifySubstrateAddress(address string, prefix uint16) error {
	pub, got, err := DecodeSS58(address)
	if err != nil {
		return err
	}
	if got != prefix {
		return fmt.Errorf("%w: prefix %d, expected %d", ErrInvalidSS58, got, prefix)
	}
	if !IsEd25519PublicKey(pub) {
		return ErrNotEd25519Point
	}
	return nil
}

func ss58Checksum(payload []byte) [blake2b.Size]byte {
	buf := make([]byte, 0, len(ss58Preimage)+len(payload))
	buf = append(buf, ss58Preimage...)
	buf = append(buf, payload...)
	return blake2b.Sum512(buf)
}
