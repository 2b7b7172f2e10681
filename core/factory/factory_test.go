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

package factory_test

import (
	"context"
	"testing"

	"code.vegaprotocol.io/synth/core/collateral"
	"code.vegaprotocol.io/synth/core/events"
	"code.vegaprotocol.io/synth/core/factory"
	"code.vegaprotocol.io/synth/core/issuance"
	"code.vegaprotocol.io/synth/core/types"
	"code.vegaprotocol.io/synth/libs/num"
	"code.vegaprotocol.io/synth/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventSink struct {
	evts []events.Event
}

func (s *eventSink) Send(evt events.Event) {
	s.evts = append(s.evts, evt)
}

func testParams(t *testing.T) factory.InstanceParams {
	t.Helper()
	asset, err := collateral.NewBuiltinAsset("DAI", 0)
	require.NoError(t, err)
	return factory.InstanceParams{
		Name:   "Ethereum",
		Symbol: "ETHV",
		Owner:  "protocol-owner",
		Asset:  asset,
		Engine: &types.EngineParams{
			VolatilityCapRatio:   num.NewUint(200),
			MinimumCollateralQty: num.NewUint(1000),
		},
	}
}

func newFactory(t *testing.T) (*factory.Factory, *eventSink) {
	t.Helper()
	sink := &eventSink{}
	return factory.New(logging.NewTestLogger(), factory.NewDefaultConfig(), sink), sink
}

func TestNewInstance(t *testing.T) {
	t.Run("Wires tokens, adapter and engine", testNewInstanceWiring)
	t.Run("Rejects incomplete parameters", testNewInstanceValidation)
	t.Run("Instance keys are derived deterministically", testDeterministicKeys)
}

func testNewInstanceWiring(t *testing.T) {
	fct, sink := newFactory(t)
	ctx := context.Background()

	instance, err := fct.NewInstance(ctx, testParams(t))
	require.NoError(t, err)
	require.NotNil(t, instance)

	assert.Equal(t, "Ethereum Volatility Index Token", instance.VolatilityToken.Name())
	assert.Equal(t, "ETHV", instance.VolatilityToken.Symbol())
	assert.Equal(t, "Inverse Ethereum Volatility Index Token", instance.InverseVolatilityToken.Name())
	assert.Equal(t, "iETHV", instance.InverseVolatilityToken.Symbol())
	// the vault account is addressed by the instance key
	assert.Equal(t, instance.ID, instance.Collateral.Vault())
	assert.Equal(t, "protocol-owner", instance.Engine.Owner())
	assert.True(t, instance.Engine.Active())

	require.Len(t, sink.evts, 1)
	created, ok := sink.evts[0].(*events.InstanceCreated)
	require.True(t, ok)
	assert.Equal(t, instance.ID, created.InstanceID())
}

func testNewInstanceValidation(t *testing.T) {
	fct, _ := newFactory(t)
	ctx := context.Background()

	params := testParams(t)
	params.Asset = nil
	_, err := fct.NewInstance(ctx, params)
	assert.ErrorIs(t, err, factory.ErrMissingAsset)

	params = testParams(t)
	params.Owner = ""
	_, err = fct.NewInstance(ctx, params)
	assert.ErrorIs(t, err, factory.ErrMissingOwner)

	// invalid engine parameters surface from initialization
	params = testParams(t)
	params.Engine = &types.EngineParams{
		VolatilityCapRatio:   num.UintZero(),
		MinimumCollateralQty: num.NewUint(1000),
	}
	_, err = fct.NewInstance(ctx, params)
	assert.ErrorIs(t, err, types.ErrInvalidCapRatio)
}

func testDeterministicKeys(t *testing.T) {
	ctx := context.Background()
	a, _ := newFactory(t)
	b, _ := newFactory(t)

	ia1, err := a.NewInstance(ctx, testParams(t))
	require.NoError(t, err)
	ib1, err := b.NewInstance(ctx, testParams(t))
	require.NoError(t, err)
	// two factories fed the same inputs derive the same key
	assert.Equal(t, ia1.ID, ib1.ID)

	// the creation sequence feeds the derivation, a re-used name/symbol
	// still yields a fresh key
	ia2, err := a.NewInstance(ctx, testParams(t))
	require.NoError(t, err)
	assert.NotEqual(t, ia1.ID, ia2.ID)
}

func TestRegistry(t *testing.T) {
	fct, _ := newFactory(t)
	ctx := context.Background()

	_, err := fct.Get("unknown")
	assert.ErrorIs(t, err, factory.ErrInstanceNotFound)
	assert.Empty(t, fct.List())

	i1, err := fct.NewInstance(ctx, testParams(t))
	require.NoError(t, err)
	params := testParams(t)
	params.Name = "Bitcoin"
	params.Symbol = "BTCV"
	i2, err := fct.NewInstance(ctx, params)
	require.NoError(t, err)

	got, err := fct.Get(i1.ID)
	require.NoError(t, err)
	assert.Same(t, i1, got)
	assert.ElementsMatch(t, []string{i1.ID, i2.ID}, fct.List())
}

func TestBeginBlockFanOut(t *testing.T) {
	fct, _ := newFactory(t)
	ctx := context.Background()

	params := testParams(t)
	instance, err := fct.NewInstance(ctx, params)
	require.NoError(t, err)

	asset := params.Asset.(*collateral.BuiltinAsset)
	trader := types.NewParty("trader-1")
	asset.Deposit(trader.Origin, num.NewUint(10000))

	fct.BeginBlock(1)
	require.NoError(t, instance.Engine.Collateralize(ctx, trader, num.NewUint(1000)))
	assert.ErrorIs(t, instance.Engine.Collateralize(ctx, trader, num.NewUint(1000)), issuance.ErrBlockLocked)

	// a new block releases the lock on every registered engine
	fct.BeginBlock(2)
	assert.NoError(t, instance.Engine.Collateralize(ctx, trader, num.NewUint(1000)))
}
