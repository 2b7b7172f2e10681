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

	"code.vegaprotocol.io/synth/core/types"
	"code.vegaprotocol.io/synth/libs/num"
)

// Collateralized is emitted on every successful collateralize call.
type Collateralized struct {
	*Base
	party        types.Party
	effectiveQty *num.Uint
	mintedQty    *num.Uint
	fee          *num.Uint
}

func NewCollateralizedEvent(ctx context.Context, instanceID string, party types.Party, effectiveQty, mintedQty, fee *num.Uint) *Collateralized {
	return &Collateralized{
		Base:         newBase(ctx, instanceID, CollateralizedEvent),
		party:        party,
		effectiveQty: effectiveQty.Clone(),
		mintedQty:    mintedQty.Clone(),
		fee:          fee.Clone(),
	}
}

func (c Collateralized) Party() types.Party { return c.party }
func (c Collateralized) EffectiveQty() *num.Uint { return c.effectiveQty.Clone() }
func (c Collateralized) MintedQty() *num.Uint { return c.mintedQty.Clone() }
func (c Collateralized) Fee() *num.Uint { return c.fee.Clone() }
func (c Collateralized) IsParty(id string) bool { return c.party.Origin == id }

// Redeemed is emitted on both pre and post settlement redemptions.
type Redeemed struct {
	*Base
	party       types.Party
	releasedQty *num.Uint
	burnedVol   *num.Uint
	burnedInv   *num.Uint
	fee         *num.Uint
	settled     bool
}

func NewRedeemedEvent(ctx context.Context, instanceID string, party types.Party, releasedQty, burnedVol, burnedInv, fee *num.Uint, settled bool) *Redeemed {
	return &Redeemed{
		Base:        newBase(ctx, instanceID, RedeemedEvent),
		party:       party,
		releasedQty: releasedQty.Clone(),
		burnedVol:   burnedVol.Clone(),
		burnedInv:   burnedInv.Clone(),
		fee:         fee.Clone(),
		settled:     settled,
	}
}

func (r Redeemed) Party() types.Party { return r.party }
func (r Redeemed) ReleasedQty() *num.Uint { return r.releasedQty.Clone() }
func (r Redeemed) BurnedVolQty() *num.Uint { return r.burnedVol.Clone() }
func (r Redeemed) BurnedInvQty() *num.Uint { return r.burnedInv.Clone() }
func (r Redeemed) Fee() *num.Uint { return r.fee.Clone() }
func (r Redeemed) Settled() bool { return r.settled }
func (r Redeemed) IsParty(id string) bool { return r.party.Origin == id }

// Settled is emitted once, when the instance latches to its settled state.
type Settled struct {
	*Base
	price *num.Uint
}

func NewSettledEvent(ctx context.Context, instanceID string, price *num.Uint) *Settled {
	return &Settled{
		Base:  newBase(ctx, instanceID, SettledEvent),
		price: price.Clone(),
	}
}

func (s Settled) SettlementPrice() *num.Uint { return s.price.Clone() }

// FeesClaimed is emitted when the owner claims the accumulated fees.
// It carries the amount actually claimed.
type FeesClaimed struct {
	*Base
	claimant string
	amount   *num.Uint
}

func NewFeesClaimedEvent(ctx context.Context, instanceID, claimant string, amount *num.Uint) *FeesClaimed {
	return &FeesClaimed{
		Base:     newBase(ctx, instanceID, FeesClaimedEvent),
		claimant: claimant,
		amount:   amount.Clone(),
	}
}

func (f FeesClaimed) Claimant() string { return f.claimant }
func (f FeesClaimed) Amount() *num.Uint { return f.amount.Clone() }
