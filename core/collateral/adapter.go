// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package collateral

import (
	"context"

	"code.vegaprotocol.io/synth/libs/num"
	"code.vegaprotocol.io/synth/logging"

	"github.com/pkg/errors"
)

const namedLogger = "collateral"

// Adapter gives an engine instance safe deposit and withdraw semantics on
// its collateral asset. Deposits report the amount actually received as a
// balance delta, tolerating fee-on-transfer assets. Withdrawals are best
// effort exact.
type Adapter struct {
	log   *logging.Logger
	asset Asset
	// vault is the account holding the collateral backing the instance.
	vault string
}

// NewAdapter returns an adapter moving funds between parties and the given
// vault account.
func NewAdapter(log *logging.Logger, cfg Config, asset Asset, vault string) *Adapter {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	return &Adapter{
		log:   log,
		asset: asset,
		vault: vault,
	}
}

func (a *Adapter) Symbol() string { return a.asset.Symbol() }

// Vault returns the vault account identity.
func (a *Adapter) Vault() string { return a.vault }

// VaultBalance returns the collateral currently held by the vault.
func (a *Adapter) VaultBalance() *num.Uint {
	return a.asset.BalanceOf(a.vault)
}

// BalanceOf returns the collateral balance of any party.
func (a *Adapter) BalanceOf(owner string) *num.Uint {
	return a.asset.BalanceOf(owner)
}

// TransferIn moves qty from the party into the vault and returns the
// amount the vault actually received.
func (a *Adapter) TransferIn(ctx context.Context, from string, qty *num.Uint) (*num.Uint, error) {
	before := a.asset.BalanceOf(a.vault)
	if err := a.asset.Transfer(from, a.vault, qty); err != nil {
		return nil, errors.Wrap(err, "collateral transfer in failed")
	}
	after := a.asset.BalanceOf(a.vault)
	received := num.UintZero().Sub(after, before)
	if a.log.IsDebug() && received.NEQ(qty) {
		a.log.Debug("transfer friction on deposit",
			logging.String("requested", qty.String()),
			logging.String("received", received.String()),
		)
	}
	return received, nil
}

// TransferOut moves qty from the vault to the party.
func (a *Adapter) TransferOut(ctx context.Context, to string, qty *num.Uint) error {
	if err := a.asset.Transfer(a.vault, to, qty); err != nil {
		return errors.Wrap(err, "collateral transfer out failed")
	}
	return nil
}
