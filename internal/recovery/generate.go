// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package recovery

import (
	"context"

	"github.com/aplane-algo/aprecover/internal/account"
	"github.com/aplane-algo/aprecover/internal/network"
	"github.com/aplane-algo/aprecover/internal/suri"
)

// Generation is one address derivation request.
type Generation struct {
	Seq       uint64
	Network   network.Params
	Substrate bool
	Phrase    string

	// Substrate only.
	SURI               string
	DerivationPath     string
	DerivationPassword string
}

// GenerationResult answers a Generation.
type GenerationResult struct {
	Generation Generation
	Address    string
	Bip39      bool
	Err        error
}

// CheckSeed asks the deriver whether the phrase is valid for the network.
func CheckSeed(ctx context.Context, d Deriver, c SeedCheck) SeedResult {
	res := SeedResult{Seq: c.Seq, Phrase: c.Phrase}
	wallet, err := d.BrainWalletAddress(ctx, c.Network, c.Phrase)
	if err != nil {
		res.Err = err
		return res
	}
	res.Bip39 = wallet.Bip39
	return res
}

// Generate derives the address for g.
func Generate(ctx context.Context, d Deriver, g Generation) GenerationResult {
	res := GenerationResult{Generation: g}
	if g.Substrate {
		res.Address, res.Err = d.SubstrateAddress(ctx, g.SURI, g.Network.Prefix)
		res.Bip39 = res.Err == nil
		return res
	}

	net := g.Network
	wallet, err := d.BrainWalletAddress(ctx, &net, g.Phrase)
	if err != nil {
		res.Err = err
		return res
	}
	res.Address = wallet.Address
	res.Bip39 = wallet.Bip39
	return res
}

// GenerationRequest builds the address generation for the current input. It
// reports false when there is nothing to derive: no network, an empty phrase
// on a Substrate network, or a SURI that cannot be built. Each request
// supersedes the previous one.
func (f *Form) GenerationRequest() (Generation, bool) {
	net := f.network()
	if net == nil {
		f.log.Warn("No network selected")
		return Generation{}, false
	}

	if !network.IsSubstrate(net) {
		return f.issue(Generation{Network: *net, Phrase: f.seedText}), true
	}

	if f.seedText == "" {
		return Generation{}, false
	}

	uri, err := suri.Construct(suri.Parts{
		Phrase:     f.seedText,
		DerivePath: f.derivationPath,
		Password:   f.derivationPassword,
	})
	if err != nil {
		f.log.Error("invalid phrase or path", "error", err)
		return Generation{}, false
	}

	return f.issue(Generation{
		Network:            *net,
		Substrate:          true,
		Phrase:             f.seedText,
		SURI:               uri,
		DerivationPath:     f.derivationPath,
		DerivationPassword: f.derivationPassword,
	}), true
}

// invalidateAddress supersedes any generation in flight. The draft address
// no longer matches the input until a new generation succeeds.
func (f *Form) invalidateAddress() {
	f.genSeq++
	f.genPending = false
}

// hasCurrentAddress reports whether the draft address was derived from the
// current phrase, path and network.
func (f *Form) hasCurrentAddress(address string) bool {
	return address != "" && f.addrSeq == f.genSeq
}

func (f *Form) issue(g Generation) Generation {
	f.genSeq++
	f.genPending = true
	g.Seq = f.genSeq
	return g
}

// ApplyGeneration merges a derived address into the draft. It reports
// whether the draft changed; stale and failed results do not change it. After
// a failure the draft keeps its old address but View no longer counts it.
func (f *Form) ApplyGeneration(res GenerationResult) bool {
	g := res.Generation
	if g.Seq != f.genSeq {
		f.log.Debug("dropping stale address generation", "seq", g.Seq, "current", f.genSeq)
		return false
	}
	f.genPending = false

	if res.Err != nil {
		if g.Substrate {
			f.log.Error("invalid phrase", "network", g.Network.Key, "error", res.Err)
		} else {
			f.log.Error("address generation failed", "network", g.Network.Key, "error", res.Err)
		}
		return false
	}

	f.addrSeq = g.Seq
	f.deps.Accounts.UpdateNew(func(d *account.Draft) {
		d.Address = res.Address
		d.SeedPhrase = g.Phrase
		if g.Substrate {
			d.DerivationPassword = g.DerivationPassword
			d.DerivationPath = g.DerivationPath
			d.Seed = g.SURI
			d.ValidBip39Seed = true
			return
		}
		d.Seed = g.Phrase
		d.ValidBip39Seed = res.Bip39
	})
	return true
}

// Settle runs the seed check for seq and the generation it continues with
// in the calling goroutine. It is for hosts without an event loop.
func (f *Form) Settle(ctx context.Context, seq uint64) {
	chk, ok := f.SeedCheck(seq)
	if !ok {
		return
	}
	g, ok := f.ApplySeedCheck(CheckSeed(ctx, f.deps.Deriver, chk))
	if ok {
		f.ApplyGeneration(Generate(ctx, f.deps.Deriver, g))
	}
}
