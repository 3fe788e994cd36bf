// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplane-algo/aprecover/cmd/aprecover/internal/tui"
	"github.com/aplane-algo/aprecover/internal/account"
	"github.com/aplane-algo/aprecover/internal/derive"
	"github.com/aplane-algo/aprecover/internal/fsutil"
	"github.com/aplane-algo/aprecover/internal/network"
	"github.com/aplane-algo/aprecover/internal/util"
	"github.com/aplane-algo/aprecover/internal/version"
)

func main() {
	// Handle early-exit flags before any other processing
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" {
			fmt.Printf("aprecover %s\n", version.String())
			os.Exit(0)
		}
	}

	dataDir := flag.String("d", "", "Data directory (or set APRECOVER_DATA)")
	batchMode := flag.Bool("batch", false, "Recover one account with line prompts instead of the TUI")
	flag.Parse()

	resolvedDataDir := util.RequireDataDir(*dataDir)
	if err := fsutil.MkdirAll(resolvedDataDir); err != nil {
		fatalf("failed to create data directory: %v", err)
	}

	config, err := util.LoadConfig(resolvedDataDir)
	if err != nil {
		fatalf("%v", err)
	}

	logFile, err := util.OpenLogFile(config.LogFile)
	if err != nil {
		fatalf("failed to open log file: %v", err)
	}
	defer func() { _ = logFile.Close() }()
	util.InitLogger(logFile)
	log := util.Logger
	log.Info("aprecover starting", "version", version.Version, "data_dir", resolvedDataDir)

	debounce, _ := config.DebounceDuration() // validated by LoadConfig

	networks, err := network.LoadFile(config.NetworksFile)
	if err != nil {
		fatalf("%v", err)
	}
	registry, err := network.NewRegistry(networks)
	if err != nil {
		fatalf("invalid networks file %s: %v", config.NetworksFile, err)
	}

	store := account.NewStore(config.StoreDir)
	skipped, err := store.Load(accountValidator(registry))
	if err != nil {
		fatalf("failed to load accounts: %v", err)
	}
	for _, e := range skipped {
		log.Warn("skipping account file", "error", e)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	deriver := derive.NewService()

	if *batchMode {
		if err := runLineMode(ctx, lineOptions{
			Accounts:       store,
			Networks:       registry,
			Deriver:        deriver,
			MinPINLength:   config.MinPINLength,
			DefaultNetwork: config.DefaultNetwork,
			Logger:         log,
		}); err != nil {
			cancel()
			fatalf("%v", err)
		}
		return
	}

	if config.ShouldWatchNetworks() && config.NetworksFile != "" {
		if err := fsutil.MkdirAll(filepath.Dir(config.NetworksFile)); err != nil {
			log.Warn("cannot watch networks file", "error", err)
		} else if err := registry.Watch(ctx, config.NetworksFile, log); err != nil {
			log.Warn("cannot watch networks file", "error", err)
		}
	}

	model := tui.NewModel(tui.Options{
		Accounts:       store,
		Networks:       registry,
		Deriver:        deriver,
		Debounce:       debounce,
		MinPINLength:   config.MinPINLength,
		DefaultNetwork: config.DefaultNetwork,
		Logger:         log,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	registry.OnChange(func() {
		p.Send(tui.NetworksChangedMsg{})
	})

	if _, err := p.Run(); err != nil {
		log.Error("tui exited", "error", err)
		cancel()
		fatalf("error running TUI: %v", err)
	}
}

// accountValidator rejects stored accounts whose network is unknown or whose
// address is not valid for it.
func accountValidator(registry *network.Registry) account.Validator {
	return func(a account.Account) error {
		p, ok := registry.Get(a.NetworkKey)
		if !ok {
			return fmt.Errorf("unknown network %q", a.NetworkKey)
		}
		return derive.VerifyAddress(p, a.Address)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
