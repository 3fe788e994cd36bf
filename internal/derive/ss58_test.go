// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package derive

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"testing"
)

// sr25519 public key of the well-known development account Alice.
const alicePub = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"

func TestEncodeSS58KnownAddresses(t *testing.T) {
	pub, _ := hex.DecodeString(alicePub)

	tests := []struct {
		prefix uint16
		want   string
	}{
		{42, "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"},
		{0, "15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5"},
	}
	for _, tt := range tests {
		got, err := EncodeSS58(pub, tt.prefix)
		if err != nil {
			t.Fatalf("EncodeSS58(prefix %d) failed: %v", tt.prefix, err)
		}
		if got != tt.want {
			t.Errorf("EncodeSS58(prefix %d) = %s, want %s", tt.prefix, got, tt.want)
		}
	}
}

func TestSS58RoundTripPrefixes(t *testing.T) {
	pub, _ := hex.DecodeString(alicePub)

	for _, prefix := range []uint16{0, 2, 42, 63, 64, 255, 1284, 16383} {
		addr, err := EncodeSS58(pub, prefix)
		if err != nil {
			t.Fatalf("prefix %d: encode failed: %v", prefix, err)
		}
		gotPub, gotPrefix, err := DecodeSS58(addr)
		if err != nil {
			t.Fatalf("prefix %d: decode failed: %v", prefix, err)
		}
		if gotPrefix != prefix {
			t.Errorf("prefix %d: decoded prefix %d", prefix, gotPrefix)
		}
		if !bytes.Equal(gotPub, pub) {
			t.Errorf("prefix %d: public key mismatch", prefix)
		}
	}
}

func TestEncodeSS58Errors(t *testing.T) {
	if _, err := EncodeSS58(make([]byte, 31), 42); err == nil {
		t.Error("Expected error for short key")
	}
	if _, err := EncodeSS58(make([]byte, 32), 16384); err == nil {
		t.Error("Expected error for prefix out of range")
	}
}

func TestDecodeSS58Errors(t *testing.T) {
	if _, _, err := DecodeSS58(""); !errors.Is(err, ErrInvalidSS58) {
		t.Errorf("Expected ErrInvalidSS58 for empty address, got %v", err)
	}
	if _, _, err := DecodeSS58("5GrwvaEF5zXb26Fz9rcQ"); err == nil {
		t.Error("Expected error for truncated address")
	}

	// Flip the last character to break the checksum.
	addr := []byte("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY")
	addr[len(addr)-1] = 'Z'
	if _, _, err := DecodeSS58(string(addr)); err == nil {
		t.Error("Expected error for corrupted address")
	}
}

func TestVerifySubstrateAddress(t *testing.T) {
	pub := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{7}, 32)).Public().(ed25519.PublicKey)
	addr, err := EncodeSS58(pub, 2)
	if err != nil {
		t.Fatalf("EncodeSS58 failed: %v", err)
	}

	if err := VerifySubstrateAddress(addr, 2); err != nil {
		t.Errorf("VerifySubstrateAddress failed: %v", err)
	}
	if err := VerifySubstrateAddress(addr, 0); !errors.Is(err, ErrInvalidSS58) {
		t.Errorf("Expected prefix mismatch error, got %v", err)
	}
	if !IsEd25519PublicKey(pub) {
		t.Error("ed25519 public key should be a valid point")
	}
	if IsEd25519PublicKey(pub[:31]) {
		t.Error("short key should not be a valid point")
	}
}
