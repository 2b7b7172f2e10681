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

package issuance

import (
	"encoding/json"

	"code.vegaprotocol.io/synth/core/types"

	"github.com/pkg/errors"
)

// GetState serializes the engine's economic state under the versioned,
// append only snapshot schema. Collaborator wiring (tokens, collateral)
// is not part of the state, it is re-established by the factory.
func (e *Engine) GetState() ([]byte, error) {
	if !e.initialized {
		return nil, ErrNotInitialized
	}
	blockLock := make(map[string]uint64, len(e.blockLock))
	for k, v := range e.blockLock {
		blockLock[k] = v
	}
	approved := make(map[string]bool, len(e.approved))
	for k, v := range e.approved {
		approved[k] = v
	}
	state := types.EngineState{
		Version:              types.EngineStateVersion,
		Active:               e.active,
		Settled:              e.settled,
		SettlementPrice:      e.SettlementPrice().String(),
		AccumulatedFees:      e.accumulatedFees.String(),
		IssuanceFeeBps:       e.issuanceFeeBps,
		RedeemFeeBps:         e.redeemFeeBps,
		MinimumCollateralQty: e.minCollateralQty.String(),
		VolatilityCapRatio:   e.capRatio.String(),
		PrecisionRatio:       e.precisionRatio.String(),
		MaxFeeBps:            e.maxFeeBps,
		CurrentBlock:         e.currentBlock,
		BlockLock:            blockLock,
		Approved:             approved,
	}
	return json.Marshal(state)
}

// LoadState restores the engine's economic state from a snapshot taken by
// GetState. The version tag is validated before anything is touched.
func (e *Engine) LoadState(data []byte) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	state := types.EngineState{}
	if err := json.Unmarshal(data, &state); err != nil {
		return errors.Wrap(err, "unable to decode engine state")
	}
	if err := state.CheckVersion(); err != nil {
		return err
	}

	settlementPrice, err := types.UintField(state.SettlementPrice)
	if err != nil {
		return err
	}
	accumulatedFees, err := types.UintField(state.AccumulatedFees)
	if err != nil {
		return err
	}
	minCollateral, err := types.UintField(state.MinimumCollateralQty)
	if err != nil {
		return err
	}
	capRatio, err := types.UintField(state.VolatilityCapRatio)
	if err != nil {
		return err
	}
	precisionRatio, err := types.UintField(state.PrecisionRatio)
	if err != nil {
		return err
	}

	// a snapshot has to satisfy the same invariants the live paths enforce.
	params := &types.EngineParams{
		VolatilityCapRatio:   capRatio,
		MinimumCollateralQty: minCollateral,
		PrecisionRatio:       precisionRatio,
		MaxFeeBps:            state.MaxFeeBps,
	}
	if err := params.Validate(); err != nil {
		return errors.Wrap(err, "invalid engine state")
	}
	if state.IssuanceFeeBps > params.MaxFeeBps || state.RedeemFeeBps > params.MaxFeeBps {
		return errors.Wrap(ErrFeeExceedsMax, "invalid engine state")
	}
	if settlementPrice.GT(capRatio) {
		return errors.Wrap(ErrSettlementPriceAboveCap, "invalid engine state")
	}

	e.active = state.Active
	e.settled = state.Settled
	e.settlementPrice = settlementPrice
	e.accumulatedFees = accumulatedFees
	e.issuanceFeeBps = state.IssuanceFeeBps
	e.redeemFeeBps = state.RedeemFeeBps
	e.minCollateralQty = minCollateral
	e.capRatio = capRatio
	e.precisionRatio = params.PrecisionRatio
	e.maxFeeBps = params.MaxFeeBps
	e.currentBlock = state.CurrentBlock
	e.blockLock = map[string]uint64{}
	for k, v := range state.BlockLock {
		e.blockLock[k] = v
	}
	e.approved = map[string]bool{}
	for k, v := range state.Approved {
		e.approved[k] = v
	}
	return nil
}
