// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package recovery

import (
	"context"
	"log/slog"

	"github.com/aplane-algo/aprecover/internal/account"
	"github.com/aplane-algo/aprecover/internal/derive"
	"github.com/aplane-algo/aprecover/internal/nav"
	"github.com/aplane-algo/aprecover/internal/network"
)

// Deriver checks phrases and derives addresses.
type Deriver interface {
	BrainWalletAddress(ctx context.Context, net *network.Params, phrase string) (derive.BrainWallet, error)
	SubstrateAddress(ctx context.Context, suri string, prefix uint16) (string, error)
}

// Accounts holds the draft and knows which accounts already exist.
type Accounts interface {
	NewAccount() account.Draft
	UpdateNew(fn func(*account.Draft))
	AccountExists(address, networkKey string) bool
}

// Networks resolves network keys.
type Networks interface {
	Get(key string) (*network.Params, bool)
}

// Alerter raises modal alerts.
type Alerter interface {
	AlertError(message string)
	AlertRisks(message string, accept func())
}

// Navigator moves between screens.
type Navigator interface {
	Navigate(route nav.Route, params nav.Params)
}

// Deps are the collaborators of the recovery form.
type Deps struct {
	Deriver   Deriver
	Accounts  Accounts
	Networks  Networks
	Alerts    Alerter
	Navigator Navigator
	Logger    *slog.Logger
}
