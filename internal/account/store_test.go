// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package account

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aplane-algo/aprecover/internal/crypto"
)

func testDraft() Draft {
	return Draft{
		Address:            "5FA9nQDVg267DEd8m1ZypXLBnvN7SFxYwV7ndqSYGiN9TTpu",
		Name:               "Alice",
		NetworkKey:         "westend",
		Seed:               "bottom drive obey lake curtain smoke basket hold race lonely fit walk//Alice///pw",
		SeedPhrase:         "bottom drive obey lake curtain smoke basket hold race lonely fit walk",
		ValidBip39Seed:     true,
		DerivationPath:     "//Alice",
		DerivationPassword: "pw",
	}
}

func TestUpdateNewMerges(t *testing.T) {
	s := NewStore(t.TempDir())
	s.UpdateNew(func(d *Draft) { *d = EmptyAccount("", "") })
	s.UpdateNew(func(d *Draft) { d.NetworkKey = "polkadot" })
	s.UpdateNew(func(d *Draft) { d.Address = "addr" })

	d := s.NewAccount()
	if d.NetworkKey != "polkadot" || d.Address != "addr" {
		t.Errorf("UpdateNew did not merge: %+v", d)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	pin := []byte("123456")

	draft := testDraft()
	a, err := s.Save(draft, pin)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !a.HasPassword || a.DerivationPath != "//Alice" || a.CreatedAt.IsZero() {
		t.Errorf("Unexpected account %+v", a)
	}

	path := filepath.Join(dir, "accounts", "westend-"+draft.Address+".json")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("account file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("account file mode %o, want 0600", info.Mode().Perm())
	}

	if !s.AccountExists(draft.Address, "westend") {
		t.Error("AccountExists should be true after Save")
	}
	if s.AccountExists(draft.Address, "polkadot") {
		t.Error("AccountExists should be scoped to the network")
	}

	if _, err := s.Save(draft, pin); !errors.Is(err, ErrAccountExists) {
		t.Errorf("Expected ErrAccountExists, got %v", err)
	}

	reloaded := NewStore(dir)
	skipped, err := reloaded.Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("Unexpected skipped files: %v", skipped)
	}
	if list := reloaded.List(); len(list) != 1 || list[0].Name != "Alice" {
		t.Fatalf("Unexpected list %+v", list)
	}

	seed, err := reloaded.Unseal("westend", draft.Address, pin)
	if err != nil {
		t.Fatalf("Unseal failed: %v", err)
	}
	if string(seed) != draft.Seed {
		t.Errorf("Unsealed seed %q, want %q", seed, draft.Seed)
	}

	if _, err := reloaded.Unseal("westend", draft.Address, []byte("654321")); !errors.Is(err, crypto.ErrWrongPIN) {
		t.Errorf("Expected ErrWrongPIN, got %v", err)
	}
	if _, err := reloaded.Unseal("kusama", draft.Address, pin); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("Expected ErrAccountNotFound, got %v", err)
	}
}

func TestSaveIncompleteDraft(t *testing.T) {
	s := NewStore(t.TempDir())
	d := testDraft()
	d.Address = ""
	if _, err := s.Save(d, []byte("123456")); !errors.Is(err, ErrIncompleteDraft) {
		t.Errorf("Expected ErrIncompleteDraft, got %v", err)
	}
}

func TestLoadSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	accountsDir := filepath.Join(dir, "accounts")
	if err := os.MkdirAll(accountsDir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(accountsDir, "broken.json"), []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(accountsDir, "empty.json"), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(accountsDir, "notes.txt"), []byte("ignored"), 0600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(dir)
	skipped, err := s.Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(skipped) != 2 {
		t.Errorf("Expected 2 skipped files, got %d: %v", len(skipped), skipped)
	}
	if len(s.List()) != 0 {
		t.Error("No account should be loaded")
	}
}

func TestLoadValidator(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewStore(dir).Save(testDraft(), []byte("123456")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s := NewStore(dir)
	reject := errors.New("rejected")
	skipped, err := s.Load(func(Account) error { return reject })
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(skipped) != 1 || !errors.Is(skipped[0], reject) {
		t.Errorf("Expected the account to be rejected, got %v", skipped)
	}
}

func TestLoadMissingDir(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent"))
	skipped, err := s.Load(nil)
	if err != nil || skipped != nil {
		t.Errorf("Load on missing dir = %v, %v", skipped, err)
	}
}
