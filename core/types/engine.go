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

package types

import (
	"errors"

	"code.vegaprotocol.io/synth/libs/num"
)

const (
	// FeeScale is the denominator for fees expressed in basis points.
	FeeScale uint64 = 10000
	// DefaultMaxFeeBps is the standard upper bound for issuance and redeem
	// fees, in basis points.
	DefaultMaxFeeBps uint64 = 500
	// AbsoluteMaxFeeBps bounds instance level MaxFeeBps overrides.
	AbsoluteMaxFeeBps uint64 = 1500
)

var (
	ErrNilEngineParams          = errors.New("nil engine parameters")
	ErrInvalidCapRatio          = errors.New("volatility cap ratio must be greater than zero")
	ErrInvalidMinimumCollateral = errors.New("minimum collateral quantity must be greater than zero")
	ErrInvalidPrecisionRatio    = errors.New("precision ratio must be greater than or equal to one")
	ErrInvalidMaxFee            = errors.New("max fee cannot exceed the absolute fee cap")
)

// Party is the acting identity pair on an engine operation. Caller is the
// immediate invoker, Origin the transaction originator. They differ when a
// contract style intermediary calls the engine on behalf of the origin.
type Party struct {
	Caller string
	Origin string
}

// NewParty returns a Party acting directly, caller and origin identical.
func NewParty(id string) Party {
	return Party{Caller: id, Origin: id}
}

// IsDirect returns true when the caller is the transaction originator.
func (p Party) IsDirect() bool {
	return p.Caller == p.Origin
}

// EngineParams is the immutable parameter set an accounting engine is
// initialized with.
type EngineParams struct {
	// VolatilityCapRatio is the fixed collateral-per-token-pair divisor
	// governing pre-settlement mint and redeem math, and the upper bound
	// for the settlement price.
	VolatilityCapRatio *num.Uint
	// MinimumCollateralQty is the floor for a single collateralize call.
	MinimumCollateralQty *num.Uint
	// PrecisionRatio rescales collateral decimals up to position token
	// decimals. A ratio of 1 means both sides share decimals.
	PrecisionRatio *num.Uint
	// MaxFeeBps bounds UpdateFees for this instance.
	MaxFeeBps uint64
}

// Validate checks the parameter set, applying defaults for the optional
// fields (precision ratio 1, standard max fee).
func (p *EngineParams) Validate() error {
	if p == nil {
		return ErrNilEngineParams
	}
	if p.VolatilityCapRatio == nil || p.VolatilityCapRatio.IsZero() {
		return ErrInvalidCapRatio
	}
	if p.MinimumCollateralQty == nil || p.MinimumCollateralQty.IsZero() {
		return ErrInvalidMinimumCollateral
	}
	if p.PrecisionRatio == nil {
		p.PrecisionRatio = num.UintOne()
	}
	if p.PrecisionRatio.IsZero() {
		return ErrInvalidPrecisionRatio
	}
	if p.MaxFeeBps == 0 {
		p.MaxFeeBps = DefaultMaxFeeBps
	}
	if p.MaxFeeBps > AbsoluteMaxFeeBps {
		return ErrInvalidMaxFee
	}
	return nil
}

func (p *EngineParams) Clone() *EngineParams {
	if p == nil {
		return nil
	}
	return &EngineParams{
		VolatilityCapRatio:   p.VolatilityCapRatio.Clone(),
		MinimumCollateralQty: p.MinimumCollateralQty.Clone(),
		PrecisionRatio:       p.PrecisionRatio.Clone(),
		MaxFeeBps:            p.MaxFeeBps,
	}
}
