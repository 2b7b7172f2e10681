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
	"errors"
	"sync"

	"code.vegaprotocol.io/synth/libs/num"
)

var (
	// ErrInsufficientAssetBalance is returned when a transfer exceeds the
	// sender's balance.
	ErrInsufficientAssetBalance = errors.New("insufficient collateral asset balance")
	// ErrInvalidTransferFee is returned when the configured transfer fee is
	// not expressible in basis points.
	ErrInvalidTransferFee = errors.New("transfer fee must be expressed in basis points (0-10000)")
)

// Asset is the collateral asset ledger the adapter moves funds on. The
// amount credited to the receiver may be less than the amount debited from
// the sender (fee-on-transfer assets), which is why the adapter works on
// balance deltas.
type Asset interface {
	Symbol() string
	Transfer(from, to string, amount *num.Uint) error
	BalanceOf(owner string) *num.Uint
}

// BuiltinAsset is an in-memory Asset with an optional transfer fee, used
// to model fee-on-transfer collateral in tests and local runs.
type BuiltinAsset struct {
	symbol         string
	transferFeeBps uint64

	mu       sync.Mutex
	balances map[string]*num.Uint
}

// NewBuiltinAsset creates a builtin asset. transferFeeBps is the share of
// every transfer withheld by the asset itself, zero for a well behaved
// asset.
func NewBuiltinAsset(symbol string, transferFeeBps uint64) (*BuiltinAsset, error) {
	if transferFeeBps > 10000 {
		return nil, ErrInvalidTransferFee
	}
	return &BuiltinAsset{
		symbol:         symbol,
		transferFeeBps: transferFeeBps,
		balances:       map[string]*num.Uint{},
	}, nil
}

func (a *BuiltinAsset) Symbol() string { return a.symbol }

// Deposit credits an account out of thin air, the builtin asset equivalent
// of a faucet.
func (a *BuiltinAsset) Deposit(to string, amount *num.Uint) {
	a.mu.Lock()
	defer a.mu.Unlock()
	bal, ok := a.balances[to]
	if !ok {
		bal = num.UintZero()
		a.balances[to] = bal
	}
	bal.Add(bal, amount)
}

func (a *BuiltinAsset) BalanceOf(owner string) *num.Uint {
	a.mu.Lock()
	defer a.mu.Unlock()
	if b, ok := a.balances[owner]; ok {
		return b.Clone()
	}
	return num.UintZero()
}

// Transfer debits amount from the sender and credits the receiver with
// amount minus the asset's own transfer fee. The fee simply disappears,
// matching the behavior of fee-on-transfer tokens.
func (a *BuiltinAsset) Transfer(from, to string, amount *num.Uint) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	sender, ok := a.balances[from]
	if !ok || sender.LT(amount) {
		return ErrInsufficientAssetBalance
	}
	credited := amount.Clone()
	if a.transferFeeBps > 0 {
		fee := num.UintZero().Mul(amount, num.NewUint(a.transferFeeBps))
		fee.Div(fee, num.NewUint(10000))
		credited.Sub(credited, fee)
	}
	receiver, ok := a.balances[to]
	if !ok {
		receiver = num.UintZero()
		a.balances[to] = receiver
	}
	sender.Sub(sender, amount)
	receiver.Add(receiver, credited)
	return nil
}
