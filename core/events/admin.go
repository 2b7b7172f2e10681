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

package events

import (
	"context"

	"code.vegaprotocol.io/synth/libs/num"
)

// InstanceCreated is emitted by the factory once an instance is wired up.
type InstanceCreated struct {
	*Base
	symbol string
}

func NewInstanceCreatedEvent(ctx context.Context, instanceID, symbol string) *InstanceCreated {
	return &InstanceCreated{
		Base:   newBase(ctx, instanceID, InstanceCreatedEvent),
		symbol: symbol,
	}
}

func (i InstanceCreated) Symbol() string { return i.symbol }

// FeesUpdated is emitted when the owner updates the fee configuration.
type FeesUpdated struct {
	*Base
	issuanceBps uint64
	redeemBps   uint64
}

func NewFeesUpdatedEvent(ctx context.Context, instanceID string, issuanceBps, redeemBps uint64) *FeesUpdated {
	return &FeesUpdated{
		Base:        newBase(ctx, instanceID, FeesUpdatedEvent),
		issuanceBps: issuanceBps,
		redeemBps:   redeemBps,
	}
}

func (f FeesUpdated) IssuanceFeeBps() uint64 { return f.issuanceBps }
func (f FeesUpdated) RedeemFeeBps() uint64   { return f.redeemBps }

// ActiveToggled is emitted when the owner flips the active gate.
type ActiveToggled struct {
	*Base
	active bool
}

func NewActiveToggledEvent(ctx context.Context, instanceID string, active bool) *ActiveToggled {
	return &ActiveToggled{
		Base:   newBase(ctx, instanceID, ActiveToggledEvent),
		active: active,
	}
}

func (a ActiveToggled) Active() bool { return a.active }

// MinimumCollateralUpdated is emitted on minimum collateral changes.
type MinimumCollateralUpdated struct {
	*Base
	qty *num.Uint
}

func NewMinimumCollateralUpdatedEvent(ctx context.Context, instanceID string, qty *num.Uint) *MinimumCollateralUpdated {
	return &MinimumCollateralUpdated{
		Base: newBase(ctx, instanceID, MinimumCollateralUpdatedEvent),
		qty:  qty.Clone(),
	}
}

func (m MinimumCollateralUpdated) Qty() *num.Uint { return m.qty.Clone() }

// PositionTokenUpdated is emitted when one of the paired tokens is swapped.
type PositionTokenUpdated struct {
	*Base
	inverse bool
	symbol  string
}

func NewPositionTokenUpdatedEvent(ctx context.Context, instanceID string, inverse bool, symbol string) *PositionTokenUpdated {
	return &PositionTokenUpdated{
		Base:    newBase(ctx, instanceID, PositionTokenUpdatedEvent),
		inverse: inverse,
		symbol:  symbol,
	}
}

func (p PositionTokenUpdated) Inverse() bool  { return p.inverse }
func (p PositionTokenUpdated) Symbol() string { return p.symbol }

// PauseToggled is emitted when the paired tokens are paused or unpaused.
type PauseToggled struct {
	*Base
	paused bool
}

func NewPauseToggledEvent(ctx context.Context, instanceID string, paused bool) *PauseToggled {
	return &PauseToggled{
		Base:   newBase(ctx, instanceID, PauseToggledEvent),
		paused: paused,
	}
}

func (p PauseToggled) Paused() bool { return p.paused }

// ApprovalUpdated is emitted when a contract caller is added to or removed
// from the block lock allow list.
type ApprovalUpdated struct {
	*Base
	party    string
	approved bool
}

func NewApprovalUpdatedEvent(ctx context.Context, instanceID, party string, approved bool) *ApprovalUpdated {
	return &ApprovalUpdated{
		Base:     newBase(ctx, instanceID, ApprovalUpdatedEvent),
		party:    party,
		approved: approved,
	}
}

func (a ApprovalUpdated) Party() string  { return a.party }
func (a ApprovalUpdated) Approved() bool { return a.approved }
