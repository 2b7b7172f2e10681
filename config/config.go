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

package config

import (
	"bytes"
	"os"

	"code.vegaprotocol.io/synth/core/broker"
	"code.vegaprotocol.io/synth/core/factory"

	"github.com/BurntSushi/toml"
)

// Config ties together the configuration of all packages.
type Config struct {
	Environment string         `long:"environment" description:"dev or prod, drives the log encoding"`
	Broker      broker.Config  `group:"Broker" namespace:"broker"`
	Factory     factory.Config `group:"Factory" namespace:"factory"`
}

// NewDefaultConfig returns the default configuration for all packages.
func NewDefaultConfig() Config {
	return Config{
		Environment: "dev",
		Broker:      broker.NewDefaultConfig(),
		Factory:     factory.NewDefaultConfig(),
	}
}

// Read loads a configuration from a toml file.
func Read(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := NewDefaultConfig()
	if _, err := toml.Decode(string(buf), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Write serializes the configuration to a toml file.
func (c Config) Write(path string) error {
	buf := bytes.Buffer{}
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
