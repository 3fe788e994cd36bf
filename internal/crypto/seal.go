// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package crypto seals recovered account secrets under the user's PIN.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	// Argon2id parameters (OWASP recommended)
	argon2Time    = 1         // iterations
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4         // parallelism
	argon2KeyLen  = 32        // AES-256

	saltLen = 32

	// SealVersion is the envelope version written by Seal.
	SealVersion = 1
)

// ErrWrongPIN is returned by Open when the PIN does not decrypt the envelope.
var ErrWrongPIN = errors.New("incorrect PIN")

// Sealed is a self-contained encrypted secret. Each envelope embeds its own
// Argon2id salt so it can be opened with only the envelope and the PIN.
type Sealed struct {
	EnvelopeVersion int    `json:"envelope_version"`
	Salt            string `json:"salt"`       // Base64-encoded 32-byte random salt
	Nonce           string `json:"nonce"`      // Base64-encoded 12-byte nonce for AES-GCM
	Ciphertext      string `json:"ciphertext"` // Base64-encoded encrypted data
}

// DeriveKey derives an AES-256 key from the PIN and salt using Argon2id.
// Caller is responsible for zeroing the returned key when done.
func DeriveKey(pin, salt []byte) []byte {
	return argon2.IDKey(pin, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}

// Seal encrypts plaintext under a PIN-derived key.
func Seal(plaintext, pin []byte) (*Sealed, error) {
	if len(pin) == 0 {
		return nil, fmt.Errorf("PIN is required")
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := DeriveKey(pin, salt)
	defer ZeroBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	return &Sealed{
		EnvelopeVersion: SealVersion,
		Salt:            base64.StdEncoding.EncodeToString(salt),
		Nonce:           base64.StdEncoding.EncodeToString(nonce),
		Ciphertext:      base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// Open decrypts a sealed envelope with the PIN.
func Open(s *Sealed, pin []byte) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("no sealed data")
	}
	if s.EnvelopeVersion != SealVersion {
		return nil, fmt.Errorf("envelope_version %d not supported (expected %d)", s.EnvelopeVersion, SealVersion)
	}

	salt, err := base64.StdEncoding.DecodeString(s.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(s.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(s.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	key := DeriveKey(pin, salt)
	defer ZeroBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("invalid nonce length %d", len(nonce))
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrWrongPIN
	}
	return plaintext, nil
}

// MarshalSealed encodes an envelope as indented JSON.
func MarshalSealed(s *Sealed) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}
