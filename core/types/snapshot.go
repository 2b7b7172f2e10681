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
	"fmt"

	"code.vegaprotocol.io/synth/libs/num"
)

// EngineStateVersion is the current engine snapshot schema version.
// The schema is append only: fields may be added with a version bump,
// never reordered or removed.
const EngineStateVersion uint32 = 1

var ErrUnsupportedStateVersion = func(got uint32) error {
	return fmt.Errorf("unsupported engine state version %d, want <= %d", got, EngineStateVersion)
}

// EngineState is the serialized form of the accounting engine state.
// All Uint quantities are carried as base 10 strings.
type EngineState struct {
	Version              uint32            `json:"version"`
	Active               bool              `json:"active"`
	Settled              bool              `json:"settled"`
	SettlementPrice      string            `json:"settlementPrice"`
	AccumulatedFees      string            `json:"accumulatedFees"`
	IssuanceFeeBps       uint64            `json:"issuanceFeeBps"`
	RedeemFeeBps         uint64            `json:"redeemFeeBps"`
	MinimumCollateralQty string            `json:"minimumCollateralQty"`
	VolatilityCapRatio   string            `json:"volatilityCapRatio"`
	PrecisionRatio       string            `json:"precisionRatio"`
	MaxFeeBps            uint64            `json:"maxFeeBps"`
	CurrentBlock         uint64            `json:"currentBlock"`
	BlockLock            map[string]uint64 `json:"blockLock"`
	Approved             map[string]bool   `json:"approved"`
}

// CheckVersion validates the snapshot version tag against the schema this
// build understands.
func (s *EngineState) CheckVersion() error {
	if s.Version == 0 || s.Version > EngineStateVersion {
		return ErrUnsupportedStateVersion(s.Version)
	}
	return nil
}

// UintField parses one of the state's base 10 quantity strings.
func UintField(s string) (*num.Uint, error) {
	if s == "" {
		return num.UintZero(), nil
	}
	u, overflow := num.UintFromString(s, 10)
	if overflow {
		return nil, fmt.Errorf("invalid quantity in engine state: %q", s)
	}
	return u, nil
}
