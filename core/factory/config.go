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

package factory

import (
	"code.vegaprotocol.io/synth/config/encoding"
	"code.vegaprotocol.io/synth/core/collateral"
	"code.vegaprotocol.io/synth/core/issuance"
	"code.vegaprotocol.io/synth/core/positiontoken"
	"code.vegaprotocol.io/synth/logging"
)

// Config represents the configuration of the factory, including the
// configuration of the components it wires into every instance.
type Config struct {
	Level         encoding.LogLevel    `long:"log-level"`
	Issuance      issuance.Config      `group:"Issuance" namespace:"issuance"`
	Collateral    collateral.Config    `group:"Collateral" namespace:"collateral"`
	PositionToken positiontoken.Config `group:"PositionToken" namespace:"positiontoken"`
}

// NewDefaultConfig creates an instance of config with default values.
func NewDefaultConfig() Config {
	return Config{
		Level:         encoding.LogLevel{Level: logging.InfoLevel},
		Issuance:      issuance.NewDefaultConfig(),
		Collateral:    collateral.NewDefaultConfig(),
		PositionToken: positiontoken.NewDefaultConfig(),
	}
}
