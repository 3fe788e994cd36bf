// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aplane-algo/aprecover/internal/crypto"
	"github.com/aplane-algo/aprecover/internal/fsutil"
)

var (
	// ErrAccountExists is returned when saving an address already stored
	// for the same network.
	ErrAccountExists = errors.New("account already exists")

	// ErrAccountNotFound is returned when no account matches.
	ErrAccountNotFound = errors.New("account not found")

	// ErrIncompleteDraft is returned when a draft lacks an address,
	// network or seed.
	ErrIncompleteDraft = errors.New("account draft is incomplete")
)

// Account is a saved account. The seed (phrase or SURI) is sealed with the
// account PIN.
type Account struct {
	Name           string         `json:"name"`
	NetworkKey     string         `json:"network_key"`
	Address        string         `json:"address"`
	DerivationPath string         `json:"derivation_path,omitempty"`
	HasPassword    bool           `json:"has_password,omitempty"`
	ValidBip39Seed bool           `json:"valid_bip39_seed"`
	CreatedAt      time.Time      `json:"created_at"`
	SealedSeed     *crypto.Sealed `json:"sealed_seed"`
}

// Validator checks a loaded account, e.g. that its address matches its
// network's encoding. Accounts that fail are skipped.
type Validator func(Account) error

// Store holds the draft being recovered and the saved accounts under
// <dir>/accounts. It is safe for concurrent use.
type Store struct {
	dir string

	mu       sync.RWMutex
	draft    Draft
	accounts map[string]Account // key: network/address
}

// NewStore creates a store rooted at dir. Call Load to read saved accounts.
func NewStore(dir string) *Store {
	return &Store{
		dir:      dir,
		accounts: make(map[string]Account),
	}
}

func accountKey(networkKey, address string) string {
	return networkKey + "/" + address
}

func (s *Store) accountsDir() string {
	return filepath.Join(s.dir, "accounts")
}

func (s *Store) accountPath(a Account) string {
	return filepath.Join(s.accountsDir(), a.NetworkKey+"-"+a.Address+".json")
}

// Load reads all saved accounts. Files that fail to parse or validate are
// skipped and reported in the returned slice of errors; only I/O failures on
// the directory itself are returned as err.
func (s *Store) Load(validate Validator) (skipped []error, err error) {
	entries, err := os.ReadDir(s.accountsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read accounts directory: %w", err)
	}

	loaded := make(map[string]Account, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.accountsDir(), entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", entry.Name(), err))
			continue
		}
		var a Account
		if err := json.Unmarshal(data, &a); err != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", entry.Name(), err))
			continue
		}
		if a.Address == "" || a.NetworkKey == "" || a.SealedSeed == nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", entry.Name(), ErrIncompleteDraft))
			continue
		}
		if validate != nil {
			if err := validate(a); err != nil {
				skipped = append(skipped, fmt.Errorf("%s: %w", entry.Name(), err))
				continue
			}
		}
		loaded[accountKey(a.NetworkKey, a.Address)] = a
	}

	s.mu.Lock()
	s.accounts = loaded
	s.mu.Unlock()

	return skipped, nil
}

// NewAccount returns the current draft.
func (s *Store) NewAccount() Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// UpdateNew applies fn to the draft. Fields fn does not touch are kept.
func (s *Store) UpdateNew(fn func(*Draft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.draft)
}

// AccountExists reports whether address is already saved for networkKey.
func (s *Store) AccountExists(address, networkKey string) bool {
	if address == "" || networkKey == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[accountKey(networkKey, address)]
	return ok
}

// Save seals the draft's seed with pin and writes the account.
func (s *Store) Save(d Draft, pin []byte) (Account, error) {
	if d.Address == "" || d.NetworkKey == "" || d.Seed == "" {
		return Account{}, ErrIncompleteDraft
	}
	if s.AccountExists(d.Address, d.NetworkKey) {
		return Account{}, ErrAccountExists
	}

	seed := []byte(d.Seed)
	sealed, err := crypto.Seal(seed, pin)
	crypto.ZeroBytes(seed)
	if err != nil {
		return Account{}, fmt.Errorf("failed to seal seed: %w", err)
	}

	a := Account{
		Name:           d.Name,
		NetworkKey:     d.NetworkKey,
		Address:        d.Address,
		DerivationPath: d.DerivationPath,
		HasPassword:    d.DerivationPassword != "",
		ValidBip39Seed: d.ValidBip39Seed,
		CreatedAt:      time.Now().UTC(),
		SealedSeed:     sealed,
	}

	path := s.accountPath(a)
	if _, err := os.Stat(path); err == nil {
		return Account{}, ErrAccountExists
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return Account{}, fmt.Errorf("failed to encode account: %w", err)
	}
	if err := fsutil.MkdirAll(s.accountsDir()); err != nil {
		return Account{}, fmt.Errorf("failed to create accounts directory: %w", err)
	}
	if err := fsutil.WriteFileAtomic(path, data); err != nil {
		return Account{}, fmt.Errorf("failed to write account file: %w", err)
	}

	s.mu.Lock()
	s.accounts[accountKey(a.NetworkKey, a.Address)] = a
	s.mu.Unlock()

	return a, nil
}

// List returns saved accounts ordered by network, then name, then address.
func (s *Store) List() []Account {
	s.mu.RLock()
	list := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		list = append(list, a)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].NetworkKey != list[j].NetworkKey {
			return list[i].NetworkKey < list[j].NetworkKey
		}
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].Address < list[j].Address
	})
	return list
}

// Unseal returns the seed of a saved account. Callers should zero it.
func (s *Store) Unseal(networkKey, address string, pin []byte) ([]byte, error) {
	s.mu.RLock()
	a, ok := s.accounts[accountKey(networkKey, address)]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrAccountNotFound
	}
	return crypto.Open(a.SealedSeed, pin)
}
