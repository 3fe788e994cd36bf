// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package recovery implements the Recover Account form: it checks the secret
// phrase, derives the address for the selected network into the account
// draft, and decides what the Recover action does.
//
// The form is not safe for concurrent use. Hosts call it from a single loop
// and run CheckSeed and Generate elsewhere, feeding results back through
// ApplySeedCheck and ApplyGeneration. Every result carries the sequence
// number of the request it answers; results for superseded requests are
// dropped.
package recovery

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/aplane-algo/aprecover/internal/account"
	"github.com/aplane-algo/aprecover/internal/nav"
	"github.com/aplane-algo/aprecover/internal/network"
	"github.com/aplane-algo/aprecover/internal/suri"
	"github.com/aplane-algo/aprecover/internal/util"
)

// Outcome is the result of pressing Recover.
type Outcome int

const (
	// Proceeded navigated to PIN entry.
	Proceeded Outcome = iota
	// RiskPrompted raised a warning; PIN entry follows if it is accepted.
	RiskPrompted
	// Blocked raised an error.
	Blocked
)

func (o Outcome) String() string {
	switch o {
	case Proceeded:
		return "proceeded"
	case RiskPrompted:
		return "risk-prompted"
	case Blocked:
		return "blocked"
	}
	return "unknown"
}

// SeedCheck asks whether Phrase is a valid phrase on Network.
type SeedCheck struct {
	Seq     uint64
	Phrase  string
	Network *network.Params
}

// SeedResult answers a SeedCheck.
type SeedResult struct {
	Seq    uint64
	Phrase string
	Bip39  bool
	Err    error
}

// Form is the state of the Recover Account screen.
type Form struct {
	deps Deps
	log  *slog.Logger

	seedText   string // trimmed
	seedSeq    uint64
	checkedSeq uint64
	validity   account.SeedValidity

	derivationPath     string
	derivationPassword string
	pathValid          bool

	genSeq     uint64
	genPending bool
	// addrSeq is the generation whose address is in the draft. The draft
	// address describes the current input only while addrSeq == genSeq.
	addrSeq uint64
}

// New creates the form and resets the account draft.
func New(deps Deps) *Form {
	log := deps.Logger
	if log == nil {
		log = util.Logger
	}
	f := &Form{
		deps:      deps,
		log:       log,
		validity:  account.ValidateSeed("", false),
		pathValid: true,
	}
	deps.Accounts.UpdateNew(func(d *account.Draft) {
		*d = account.EmptyAccount("", "")
	})
	return f
}

// SetSeedText stores the phrase without trailing whitespace and returns the
// sequence number the host must pass to SeedCheck once the input settles.
func (f *Form) SetSeedText(text string) uint64 {
	f.seedText = strings.TrimRightFunc(text, unicode.IsSpace)
	f.seedSeq++
	f.invalidateAddress()
	return f.seedSeq
}

// SeedText returns the stored phrase.
func (f *Form) SeedText() string {
	return f.seedText
}

// IsCurrentSeed reports whether seq is the latest seed edit.
func (f *Form) IsCurrentSeed(seq uint64) bool {
	return seq == f.seedSeq
}

// SeedCheck returns the check to run for seq, or false if newer input has
// arrived since.
func (f *Form) SeedCheck(seq uint64) (SeedCheck, bool) {
	if !f.IsCurrentSeed(seq) {
		return SeedCheck{}, false
	}
	return SeedCheck{Seq: seq, Phrase: f.seedText, Network: f.network()}, true
}

// ApplySeedCheck records the verdict of a seed check. On success it returns
// the address generation that continues the check. Stale results change
// nothing.
func (f *Form) ApplySeedCheck(res SeedResult) (Generation, bool) {
	if !f.IsCurrentSeed(res.Seq) {
		f.log.Debug("dropping stale seed check", "seq", res.Seq, "current", f.seedSeq)
		return Generation{}, false
	}
	f.checkedSeq = res.Seq

	if res.Err != nil {
		f.log.Debug("seed check failed", "error", res.Err)
		f.validity = account.ValidateSeed("", false)
		return Generation{}, false
	}

	f.validity = account.ValidateSeed(res.Phrase, res.Bip39)
	if !f.pathValid {
		return Generation{}, false
	}
	return f.GenerationRequest()
}

// Validity returns the current verdict on the phrase.
func (f *Form) Validity() account.SeedValidity {
	return f.validity
}

// SetDerivation stores the derivation field. If the phrase is BIP-39 and the
// path is valid it returns a new address generation.
func (f *Form) SetDerivation(path, password string, valid bool) (Generation, bool) {
	f.derivationPath = path
	f.derivationPassword = password
	f.pathValid = valid
	f.invalidateAddress()

	if !f.validity.Bip39 || !f.pathValid {
		return Generation{}, false
	}
	return f.GenerationRequest()
}

// SetDerivationText parses raw derivation field input ("//hard///password")
// and stores it.
func (f *Form) SetDerivationText(input string) (Generation, bool) {
	d, err := suri.ParseDerivationPath(input)
	return f.SetDerivation(d.Path, d.Password, err == nil)
}

// SetName stores the account name in the draft.
func (f *Form) SetName(name string) {
	f.deps.Accounts.UpdateNew(func(d *account.Draft) {
		d.Name = name
	})
}

// SelectNetwork switches the draft to networkKey. The previous address
// belongs to the old network and is cleared. The phrase has to be checked
// again because validity depends on the network; the returned sequence
// number is scheduled like a seed edit.
func (f *Form) SelectNetwork(networkKey string) uint64 {
	f.deps.Accounts.UpdateNew(func(d *account.Draft) {
		if d.NetworkKey != networkKey {
			d.Address = ""
		}
		d.NetworkKey = networkKey
	})
	f.seedSeq++
	f.invalidateAddress()
	return f.seedSeq
}

// network returns the selected network, or nil.
func (f *Form) network() *network.Params {
	key := f.deps.Accounts.NewAccount().NetworkKey
	if key == "" {
		return nil
	}
	p, ok := f.deps.Networks.Get(key)
	if !ok {
		return nil
	}
	return p
}

// Confirm runs the Recover action.
func (f *Form) Confirm() Outcome {
	if !f.validity.Valid {
		if f.validity.AccountRecoveryAllowed {
			f.deps.Alerts.AlertRisks(f.validity.Reason, f.goToPin)
			return RiskPrompted
		}
		f.deps.Alerts.AlertError(f.validity.Reason)
		return Blocked
	}

	f.goToPin()
	return Proceeded
}

func (f *Form) goToPin() {
	f.deps.Navigator.Navigate(nav.RouteAccountPin, nav.Params{IsNew: true})
}
