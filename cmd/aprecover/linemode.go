// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

// Line mode recovers a single account with plain prompts, for terminals
// where the full-screen TUI is not wanted.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/aplane-algo/aprecover/cmd/aprecover/internal/tui"
	"github.com/aplane-algo/aprecover/internal/account"
	"github.com/aplane-algo/aprecover/internal/crypto"
	"github.com/aplane-algo/aprecover/internal/nav"
	"github.com/aplane-algo/aprecover/internal/network"
	"github.com/aplane-algo/aprecover/internal/recovery"
	"github.com/aplane-algo/aprecover/internal/util"
)

// errAborted is returned when the user declines to continue.
var errAborted = errors.New("recovery aborted")

// maxPINAttempts bounds the PIN prompt loop.
const maxPINAttempts = 3

// prompter reads answers from the user.
type prompter interface {
	Line(prompt string) (string, error)
	Secret(prompt string) (string, error)
}

type lineOptions struct {
	Accounts       *account.Store
	Networks       *network.Registry
	Deriver        recovery.Deriver
	MinPINLength   int
	DefaultNetwork string
	Logger         *slog.Logger
}

// lineSession hosts the recovery form. It is the form's alerter and
// navigator: alerts are printed and PIN entry is a prompt.
type lineSession struct {
	opts  lineOptions
	in    prompter
	out   io.Writer
	route nav.Route
}

func (s *lineSession) AlertError(message string) {
	fmt.Fprintf(s.out, "Error: %s\n", message)
}

func (s *lineSession) AlertRisks(message string, accept func()) {
	fmt.Fprintf(s.out, "Warning: %s\n", message)
	answer, err := s.in.Line("Proceed anyway? [y/N]: ")
	if err == nil && strings.EqualFold(strings.TrimSpace(answer), "y") {
		accept()
	}
}

func (s *lineSession) Navigate(route nav.Route, _ nav.Params) {
	s.route = route
}

// run walks through the recover screen once and saves the account.
func (s *lineSession) run(ctx context.Context) (account.Account, error) {
	s.route = nav.RouteRecoverAccount
	form := recovery.New(recovery.Deps{
		Deriver:   s.opts.Deriver,
		Accounts:  s.opts.Accounts,
		Networks:  s.opts.Networks,
		Alerts:    s,
		Navigator: s,
		Logger:    s.opts.Logger,
	})
	defer s.opts.Accounts.UpdateNew(func(d *account.Draft) { d.Zero() })

	net, err := s.chooseNetwork()
	if err != nil {
		return account.Account{}, err
	}
	form.SelectNetwork(net.Key)

	name, err := s.in.Line("Name (optional): ")
	if err != nil {
		return account.Account{}, err
	}
	form.SetName(strings.TrimSpace(name))

	phrase, err := s.in.Secret("Secret phrase: ")
	if err != nil {
		return account.Account{}, err
	}
	form.Settle(ctx, form.SetSeedText(phrase))

	if network.IsSubstrate(net) {
		if err := s.readDerivation(ctx, form); err != nil {
			return account.Account{}, err
		}
	}

	v := form.View()
	s.printView(v)
	// A legacy phrase with an address can still be recovered after the
	// risk warning; Confirm asks for it.
	risky := v.State == recovery.StateInvalid && v.RiskAllowed && v.Address != ""
	if !v.ConfirmEnabled && !risky {
		switch v.State {
		case recovery.StateDuplicateFound:
			return account.Account{}, account.ErrAccountExists
		case recovery.StateInvalid:
			if v.Reason != "" {
				return account.Account{}, fmt.Errorf("cannot recover: %s", v.Reason)
			}
		}
		return account.Account{}, fmt.Errorf("cannot recover: no address for this phrase on %s", net.Title)
	}

	outcome := form.Confirm()
	s.opts.Logger.Debug("recover confirmed", "outcome", outcome.String())
	if s.route != nav.RouteAccountPin {
		return account.Account{}, errAborted
	}

	pin, err := s.readPIN()
	if err != nil {
		return account.Account{}, err
	}
	a, err := s.opts.Accounts.Save(s.opts.Accounts.NewAccount(), pin)
	crypto.ZeroBytes(pin)
	return a, err
}

func (s *lineSession) chooseNetwork() (*network.Params, error) {
	fmt.Fprintln(s.out, "Networks:")
	for _, p := range s.opts.Networks.List() {
		fmt.Fprintf(s.out, "  %-12s %s\n", p.Key, p.Title)
	}

	prompt := "Network: "
	if s.opts.DefaultNetwork != "" {
		prompt = fmt.Sprintf("Network [%s]: ", s.opts.DefaultNetwork)
	}
	for {
		key, err := s.in.Line(prompt)
		if err != nil {
			return nil, err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			key = s.opts.DefaultNetwork
		}
		if p, ok := s.opts.Networks.Get(key); ok {
			return p, nil
		}
		fmt.Fprintf(s.out, "Unknown network %q\n", key)
	}
}

func (s *lineSession) readDerivation(ctx context.Context, form *recovery.Form) error {
	for {
		input, err := s.in.Secret("Derivation path (//hard///password, empty for none): ")
		if err != nil {
			return err
		}
		g, ok := form.SetDerivationText(strings.TrimSpace(input))
		if form.View().ShowPathWarning {
			fmt.Fprintln(s.out, "Invalid derivation path.")
			continue
		}
		if ok {
			form.ApplyGeneration(recovery.Generate(ctx, s.opts.Deriver, g))
		}
		return nil
	}
}

func (s *lineSession) readPIN() ([]byte, error) {
	for attempt := 0; attempt < maxPINAttempts; attempt++ {
		pin, err := s.in.Secret("PIN: ")
		if err != nil {
			return nil, err
		}
		confirm, err := s.in.Secret("Confirm PIN: ")
		if err != nil {
			return nil, err
		}
		if err := tui.ValidatePIN(pin, confirm, s.opts.MinPINLength); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		return []byte(pin), nil
	}
	return nil, errAborted
}

func (s *lineSession) printView(v recovery.View) {
	fmt.Fprintf(s.out, "Network: %s\n", v.NetworkTitle)
	if v.Address != "" {
		color := ""
		if p, ok := s.opts.Networks.Get(v.NetworkKey); ok {
			color = p.Color
		}
		fmt.Fprintf(s.out, "Address: %s\n", util.FormatAddressColor(v.Address, color))
	}
	if v.Reason != "" {
		fmt.Fprintf(s.out, "Note: %s\n", v.Reason)
	}
	if v.ShowDuplicateWarning {
		fmt.Fprintln(s.out, "An account with this secret phrase already exists.")
	}
}

// readlinePrompter reads lines through readline. Secrets are read without
// echo when stdin is a terminal.
type readlinePrompter struct {
	rl *readline.Instance
}

func (p *readlinePrompter) Line(prompt string) (string, error) {
	p.rl.SetPrompt(prompt)
	line, err := p.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", errAborted
	}
	return line, err
}

func (p *readlinePrompter) Secret(prompt string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) { // #nosec G115 - file descriptors are small integers
		return p.Line(prompt)
	}
	b, err := p.rl.ReadPassword(prompt)
	if errors.Is(err, readline.ErrInterrupt) {
		return "", errAborted
	}
	return string(b), err
}

// runLineMode recovers one account using line prompts on stdin.
func runLineMode(ctx context.Context, opts lineOptions) error {
	rl, err := readline.NewEx(&readline.Config{
		HistoryLimit:           -1, // never keep secrets in history
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s := &lineSession{opts: opts, in: &readlinePrompter{rl: rl}, out: os.Stdout}
	a, err := s.run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Recovered %s on %s\n", a.Address, a.NetworkKey)
	return nil
}
