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
	"context"
	"errors"
	"fmt"
	"sort"

	"code.vegaprotocol.io/synth/core/collateral"
	"code.vegaprotocol.io/synth/core/events"
	"code.vegaprotocol.io/synth/core/issuance"
	"code.vegaprotocol.io/synth/core/positiontoken"
	"code.vegaprotocol.io/synth/core/types"
	vgcrypto "code.vegaprotocol.io/synth/libs/crypto"
	"code.vegaprotocol.io/synth/logging"
)

const namedLogger = "factory"

var (
	// ErrDuplicateInstanceKey is returned when the derived instance key
	// collides with an already registered instance.
	ErrDuplicateInstanceKey = errors.New("derived instance key already registered")
	// ErrInstanceNotFound is returned on registry lookups for unknown keys.
	ErrInstanceNotFound = errors.New("instance not found")
	// ErrMissingAsset is returned when no collateral asset is provided.
	ErrMissingAsset = errors.New("an instance requires a collateral asset")
	// ErrMissingOwner is returned when no owner identity is provided.
	ErrMissingOwner = errors.New("an instance requires an owner")
)

// InstanceParams describes the instance to create.
type InstanceParams struct {
	// Name and Symbol seed both position tokens and the derived key.
	Name   string
	Symbol string
	// Owner is the only identity allowed on the owner gated operations.
	Owner string
	// Asset is the collateral asset backing the instance.
	Asset collateral.Asset
	// Engine holds the accounting parameters.
	Engine *types.EngineParams
}

// Instance groups everything the factory wired together for one
// collateral/token trio.
type Instance struct {
	ID                     string
	Engine                 *issuance.Engine
	VolatilityToken        *positiontoken.Token
	InverseVolatilityToken *positiontoken.Token
	Collateral             *collateral.Adapter
}

// Factory deterministically creates paired position tokens and engine
// instances, wires the capability grants, and registers the result in a
// lookup table. It sits off the hot path, invoked once per instance.
type Factory struct {
	log    *logging.Logger
	cfg    Config
	broker issuance.Broker

	seq       uint64
	instances map[string]*Instance
}

// New creates a factory.
func New(log *logging.Logger, cfg Config, broker issuance.Broker) *Factory {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	return &Factory{
		log:       log,
		cfg:       cfg,
		broker:    broker,
		instances: map[string]*Instance{},
	}
}

// deriveKey builds the content derived instance key from the token name,
// symbol and creation sequence. Determinism comes from explicit key
// derivation, two factories fed the same inputs derive the same keys.
func deriveKey(name, symbol string, seq uint64) string {
	return vgcrypto.HashStrToHex(fmt.Sprintf("%s|%s|%d", name, symbol, seq))
}

// NewInstance creates the paired position tokens, constructs and
// initializes the accounting engine, and registers the instance.
func (f *Factory) NewInstance(ctx context.Context, params InstanceParams) (*Instance, error) {
	if params.Asset == nil {
		return nil, ErrMissingAsset
	}
	if params.Owner == "" {
		return nil, ErrMissingOwner
	}

	seq := f.seq + 1
	id := deriveKey(params.Name, params.Symbol, seq)
	if _, ok := f.instances[id]; ok {
		return nil, ErrDuplicateInstanceKey
	}

	volToken, volCap := positiontoken.New(f.log, f.cfg.PositionToken,
		params.Name+" Volatility Index Token", params.Symbol)
	invToken, invCap := positiontoken.New(f.log, f.cfg.PositionToken,
		"Inverse "+params.Name+" Volatility Index Token", "i"+params.Symbol)

	// the vault account backing the instance is addressed by its key.
	adapter := collateral.NewAdapter(f.log, f.cfg.Collateral, params.Asset, id)

	engine := issuance.New(f.log, f.cfg.Issuance, f.broker, id, params.Owner)
	if err := engine.Initialize(adapter, volToken.Session(volCap), invToken.Session(invCap), params.Engine); err != nil {
		return nil, err
	}

	instance := &Instance{
		ID:                     id,
		Engine:                 engine,
		VolatilityToken:        volToken,
		InverseVolatilityToken: invToken,
		Collateral:             adapter,
	}
	f.seq = seq
	f.instances[id] = instance

	f.log.Info("instance created",
		logging.String("id", id),
		logging.String("symbol", params.Symbol),
		logging.String("owner", params.Owner),
	)
	f.broker.Send(events.NewInstanceCreatedEvent(ctx, id, params.Symbol))
	return instance, nil
}

// Get returns a registered instance by key.
func (f *Factory) Get(id string) (*Instance, error) {
	instance, ok := f.instances[id]
	if !ok {
		return nil, ErrInstanceNotFound
	}
	return instance, nil
}

// List returns the registered instance keys in stable order.
func (f *Factory) List() []string {
	keys := make([]string, 0, len(f.instances))
	for k := range f.instances {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BeginBlock fans the block height out to every registered engine.
func (f *Factory) BeginBlock(height uint64) {
	for _, instance := range f.instances {
		instance.Engine.BeginBlock(height)
	}
}
