// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplane-algo/aprecover/internal/account"
	"github.com/aplane-algo/aprecover/internal/derive"
	"github.com/aplane-algo/aprecover/internal/network"
	"github.com/aplane-algo/aprecover/internal/recovery"
)

const testPhrase = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

type fakeDeriver struct {
	bip39 map[string]bool

	brainCalls []string
	prefixes   []uint16
}

func fakeAddress(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:20])
}

func (d *fakeDeriver) BrainWalletAddress(_ context.Context, net *network.Params, phrase string) (derive.BrainWallet, error) {
	d.brainCalls = append(d.brainCalls, phrase)
	if phrase == "" {
		return derive.BrainWallet{}, derive.ErrInvalidPhrase
	}
	w := derive.BrainWallet{Bip39: d.bip39[phrase]}
	if net != nil {
		w.Address = "0x" + fakeAddress(phrase)
	}
	return w, nil
}

func (d *fakeDeriver) SubstrateAddress(_ context.Context, uri string, prefix uint16) (string, error) {
	d.prefixes = append(d.prefixes, prefix)
	return fakeAddress(uri), nil
}

func newTestModel(t *testing.T, defaultNetwork string) (Model, *fakeDeriver) {
	t.Helper()
	d := &fakeDeriver{bip39: map[string]bool{testPhrase: true}}
	m := NewModel(Options{
		Accounts:       account.NewStore(t.TempDir()),
		Networks:       network.NewDefaultRegistry(),
		Deriver:        d,
		Debounce:       time.Millisecond,
		MinPINLength:   6,
		DefaultNetwork: defaultNetwork,
	})
	return m, d
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends keys and drops the resulting commands.
func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

// runCmd executes cmd and feeds its messages back until nothing is left.
// Only use it with commands that do not wait on timers.
func runCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = runCmd(t, m, c)
		}
		return m
	}
	next, cmd := m.Update(msg)
	return runCmd(t, next.(Model), cmd)
}

// settle delivers the debounce message for the latest seed edit and runs
// the check and generation it starts.
func settle(t *testing.T, m Model) Model {
	t.Helper()
	for seq := uint64(1); seq < 256; seq++ {
		next, cmd := m.Update(seedDebounceMsg{form: m.form, seq: seq})
		m = next.(Model)
		if cmd != nil {
			return runCmd(t, m, cmd)
		}
	}
	t.Fatal("no pending seed check")
	return m
}

func TestDebounceCoalescesKeystrokes(t *testing.T) {
	m, d := newTestModel(t, "ethereum")
	m = press(m, "r")
	if m.currentView() != ViewRecover {
		t.Fatalf("view = %v, want recover", m.currentView())
	}

	// Network selection took seq 1; the keystrokes take 2..4.
	m = press(m, "a", "b", "c")

	var fired []uint64
	var check tea.Cmd
	for seq := uint64(1); seq <= 4; seq++ {
		next, cmd := m.Update(seedDebounceMsg{form: m.form, seq: seq})
		m = next.(Model)
		if cmd != nil {
			fired = append(fired, seq)
			check = cmd
		}
	}
	if len(fired) != 1 || fired[0] != 4 {
		t.Fatalf("checks fired for %v, want only the last edit", fired)
	}

	m = runCmd(t, m, check)
	if len(d.brainCalls) != 2 || d.brainCalls[0] != "abc" {
		t.Errorf("deriver calls = %q, want one check and one generation for abc", d.brainCalls)
	}
	if m.form.SeedText() != "abc" {
		t.Errorf("SeedText = %q", m.form.SeedText())
	}
}

func TestRecoverSubstrateAccount(t *testing.T) {
	m, d := newTestModel(t, "polkadot")
	m = press(m, "r")
	if m.recoverFocus != focusSeed {
		t.Fatalf("focus = %d, want seed", m.recoverFocus)
	}
	m = press(m, "shift+tab", "shift+tab")
	if m.recoverFocus != focusName {
		t.Fatalf("focus = %d, want name", m.recoverFocus)
	}
	m = press(m, "Alice", "tab", "tab", testPhrase)
	m = settle(t, m)

	v := m.form.View()
	if v.State != recovery.StateReady {
		t.Fatalf("state = %v, want ready", v.State)
	}
	if v.Address != fakeAddress(testPhrase) {
		t.Errorf("address = %q", v.Address)
	}
	if len(d.prefixes) == 0 || d.prefixes[len(d.prefixes)-1] != 0 {
		t.Errorf("prefixes = %v, want polkadot prefix 0", d.prefixes)
	}
	if out := m.View(); !strings.Contains(out, "Polkadot") || !strings.Contains(out, v.Address) {
		t.Errorf("view missing network or address:\n%s", out)
	}

	// seed -> path -> recover
	m = press(m, "tab", "tab")
	if m.recoverFocus != focusRecover {
		t.Fatalf("focus = %d, want recover", m.recoverFocus)
	}
	m = press(m, "enter")
	if m.currentView() != ViewAccountPin {
		t.Fatalf("view = %v, want PIN entry", m.currentView())
	}

	m = press(m, "123456", "enter", "123456")
	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	if !m.saving {
		t.Fatalf("not saving, pinError = %q", m.pinError)
	}
	m = runCmd(t, m, cmd)

	if m.currentView() != ViewAccounts {
		t.Fatalf("view = %v, want accounts", m.currentView())
	}
	list := m.opts.Accounts.List()
	if len(list) != 1 {
		t.Fatalf("saved %d accounts, want 1", len(list))
	}
	if list[0].Name != "Alice" || list[0].NetworkKey != "polkadot" {
		t.Errorf("account = %+v", list[0])
	}
	if !strings.Contains(m.lastInfo, "Recovered Alice") {
		t.Errorf("lastInfo = %q", m.lastInfo)
	}
	if d := m.opts.Accounts.NewAccount(); d.Seed != "" || d.Address != "" {
		t.Errorf("draft not cleared after save: %+v", d)
	}

	// Recovering the same phrase again is flagged as a duplicate.
	m = press(m, "r", testPhrase)
	m = settle(t, m)
	v = m.form.View()
	if v.State != recovery.StateDuplicateFound || v.ConfirmEnabled {
		t.Errorf("state = %v enabled = %v, want duplicate", v.State, v.ConfirmEnabled)
	}
	if !strings.Contains(m.View(), "already exists") {
		t.Error("duplicate warning not rendered")
	}
}

func TestRecoverDisabledWithoutPhrase(t *testing.T) {
	m, _ := newTestModel(t, "ethereum")
	m = press(m, "r", "tab")
	if m.recoverFocus != focusRecover {
		t.Fatalf("focus = %d, want recover (path skipped on ethereum)", m.recoverFocus)
	}
	m = press(m, "enter")
	if m.currentView() != ViewRecover {
		t.Errorf("view = %v, want recover", m.currentView())
	}
}

func TestRiskAlertFlow(t *testing.T) {
	m, _ := newTestModel(t, "ethereum")
	m = press(m, "r", "correct horse battery staple")
	m = settle(t, m)

	if got := m.form.Confirm(); got != recovery.RiskPrompted {
		t.Fatalf("Confirm = %v, want risk prompt", got)
	}
	if m.currentView() != ViewAlert {
		t.Fatalf("view = %v, want alert", m.currentView())
	}
	if out := m.View(); !strings.Contains(out, "Warning") || !strings.Contains(out, "Proceed") {
		t.Errorf("alert not rendered:\n%s", out)
	}

	m = press(m, "n")
	if m.currentView() != ViewRecover {
		t.Fatalf("view after dismiss = %v, want recover", m.currentView())
	}

	m.form.Confirm()
	m = press(m, "y")
	if m.currentView() != ViewAccountPin {
		t.Errorf("view after accept = %v, want PIN entry", m.currentView())
	}
}

func TestSelectNetworkFromList(t *testing.T) {
	m, d := newTestModel(t, "")
	m = press(m, "r", testPhrase)
	m = settle(t, m)
	if v := m.form.View(); v.State != recovery.StateInvalid || v.NetworkTitle != "Select Network" {
		t.Fatalf("state = %v title = %q", v.State, v.NetworkTitle)
	}

	m = press(m, "shift+tab")
	if m.recoverFocus != focusNetwork {
		t.Fatalf("focus = %d, want network", m.recoverFocus)
	}
	m = press(m, "enter")
	if m.currentView() != ViewNetworkList {
		t.Fatalf("view = %v, want network list", m.currentView())
	}

	idx := -1
	for i, p := range m.networks {
		if p.Key == "kusama" {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("kusama not listed")
	}
	for i := 0; i < idx; i++ {
		m = press(m, "down")
	}
	m = press(m, "enter")
	if m.currentView() != ViewRecover {
		t.Fatalf("view = %v, want recover", m.currentView())
	}
	if got := m.opts.Accounts.NewAccount().NetworkKey; got != "kusama" {
		t.Fatalf("network = %q, want kusama", got)
	}

	m = settle(t, m)
	if len(d.prefixes) != 1 || d.prefixes[0] != 2 {
		t.Errorf("prefixes = %v, want [2]", d.prefixes)
	}
	if v := m.form.View(); v.State != recovery.StateReady {
		t.Errorf("state = %v, want ready", v.State)
	}
}

func TestNetworksChangedRederives(t *testing.T) {
	m, d := newTestModel(t, "polkadot")
	m = press(m, "r", testPhrase)
	m = settle(t, m)

	nets := network.Defaults()
	for i := range nets {
		if nets[i].Key == "polkadot" {
			nets[i].Prefix = 5
		}
	}
	if err := m.opts.Networks.Replace(nets); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	next, cmd := m.Update(NetworksChangedMsg{})
	m = runCmd(t, next.(Model), cmd)

	if got := d.prefixes[len(d.prefixes)-1]; got != 5 {
		t.Errorf("prefix = %d, want 5", got)
	}
	if v := m.form.View(); v.State != recovery.StateReady {
		t.Errorf("state = %v, want ready", v.State)
	}
}

func TestStaleFormMessagesDropped(t *testing.T) {
	m, _ := newTestModel(t, "ethereum")
	m = press(m, "r")
	old := m.form
	m = press(m, "esc", "r")
	if m.form == old {
		t.Fatal("re-entering did not create a new form")
	}

	next, cmd := m.Update(seedCheckedMsg{form: old, result: recovery.SeedResult{Seq: 1, Phrase: testPhrase, Bip39: true}})
	m = next.(Model)
	if cmd != nil {
		t.Error("stale seed check started a generation")
	}
	if m.form.Validity().Bip39 {
		t.Error("stale seed check applied to the new form")
	}
}

func TestEscZeroesDraftSecrets(t *testing.T) {
	m, _ := newTestModel(t, "ethereum")
	m = press(m, "r", testPhrase)
	m = settle(t, m)
	if m.opts.Accounts.NewAccount().Seed == "" {
		t.Fatal("seed not set")
	}
	m = press(m, "esc")
	if m.currentView() != ViewAccounts || m.form != nil {
		t.Errorf("view = %v form = %v, want accounts", m.currentView(), m.form)
	}
	if d := m.opts.Accounts.NewAccount(); d.Seed != "" || d.SeedPhrase != "" {
		t.Errorf("secrets left in draft: %+v", d)
	}
}

func TestPinMismatch(t *testing.T) {
	m, _ := newTestModel(t, "ethereum")
	m = press(m, "r", testPhrase)
	m = settle(t, m)
	m = press(m, "tab", "enter")
	if m.currentView() != ViewAccountPin {
		t.Fatalf("view = %v, want PIN entry", m.currentView())
	}
	m = press(m, "123456", "enter", "654321", "enter")
	if m.pinError != "PINs do not match" {
		t.Errorf("pinError = %q", m.pinError)
	}
	if m.saving || m.currentView() != ViewAccountPin {
		t.Error("saved with mismatched PINs")
	}

	m = press(m, "esc")
	if m.currentView() != ViewRecover {
		t.Errorf("view after esc = %v, want recover", m.currentView())
	}
}

func TestValidatePIN(t *testing.T) {
	tests := []struct {
		name    string
		pin     string
		confirm string
		wantErr string
	}{
		{"valid", "123456", "123456", ""},
		{"too short", "12345", "12345", "at least 6"},
		{"letters", "12345a", "12345a", "only digits"},
		{"mismatch", "123456", "123457", "do not match"},
		{"empty", "", "", "at least 6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePIN(tt.pin, tt.confirm, 6)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestMaskDerivationPassword(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"//hard", "//hard"},
		{"//hard///pw", "//hard///**"},
		{"///secret", "///******"},
	}
	for _, tt := range tests {
		if got := maskDerivationPassword(tt.in); got != tt.want {
			t.Errorf("maskDerivationPassword(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAccountDetailsRevealsSecret(t *testing.T) {
	m, _ := newTestModel(t, "ethereum")
	_, err := m.opts.Accounts.Save(account.Draft{
		Name:           "savings",
		NetworkKey:     "ethereum",
		Address:        "0x" + fakeAddress(testPhrase),
		Seed:           testPhrase,
		ValidBip39Seed: true,
	}, []byte("123456"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	m = press(m, "enter")
	if m.currentView() != ViewAccountDetails {
		t.Fatalf("view = %v, want account details", m.currentView())
	}
	if !strings.Contains(m.View(), "savings") {
		t.Error("details view does not show the account name")
	}

	m = press(m, "654321")
	next, cmd := m.Update(key("enter"))
	m = runCmd(t, next.(Model), cmd)
	if m.detailsError != "Incorrect PIN." || m.revealedSeed != "" {
		t.Fatalf("wrong PIN: error = %q revealed = %q", m.detailsError, m.revealedSeed)
	}

	m = press(m, "123456")
	next, cmd = m.Update(key("enter"))
	m = runCmd(t, next.(Model), cmd)
	if m.revealedSeed != testPhrase {
		t.Fatalf("revealed = %q, want the saved phrase", m.revealedSeed)
	}
	if !strings.Contains(m.View(), "Secret") {
		t.Error("revealed secret not rendered")
	}

	m = press(m, "esc")
	if m.currentView() != ViewAccounts || m.revealedSeed != "" {
		t.Errorf("view = %v revealed = %q after esc", m.currentView(), m.revealedSeed)
	}
}

func TestAccountDetailsRequiresPIN(t *testing.T) {
	m, _ := newTestModel(t, "ethereum")
	if _, err := m.opts.Accounts.Save(account.Draft{
		NetworkKey: "ethereum",
		Address:    "0x" + fakeAddress(testPhrase),
		Seed:       testPhrase,
	}, []byte("123456")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	m = press(m, "enter", "enter")
	if m.unsealing || m.detailsError == "" {
		t.Errorf("empty PIN: unsealing = %v error = %q", m.unsealing, m.detailsError)
	}
}

func TestAccountUnsealedAfterLeavingIsDropped(t *testing.T) {
	m, _ := newTestModel(t, "ethereum")
	a, err := m.opts.Accounts.Save(account.Draft{
		NetworkKey: "ethereum",
		Address:    "0x" + fakeAddress(testPhrase),
		Seed:       testPhrase,
	}, []byte("123456"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	m = press(m, "enter", "123456")
	_, cmd := m.Update(key("enter"))
	msg := cmd()

	m = press(m, "esc")
	next, _ := m.Update(msg)
	m = next.(Model)
	if m.revealedSeed != "" {
		t.Errorf("secret for %s revealed after the details screen closed", a.Address)
	}
}

func TestEnterWithoutAccountsStartsRecovery(t *testing.T) {
	m, _ := newTestModel(t, "ethereum")
	m = press(m, "enter")
	if m.currentView() != ViewRecover {
		t.Errorf("view = %v, want recover", m.currentView())
	}
}
