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

package collateral_test

import (
	"context"
	"testing"

	"code.vegaprotocol.io/synth/core/collateral"
	"code.vegaprotocol.io/synth/libs/num"
	"code.vegaprotocol.io/synth/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapter(t *testing.T, feeBps uint64) (*collateral.Adapter, *collateral.BuiltinAsset) {
	t.Helper()
	asset, err := collateral.NewBuiltinAsset("DAI", feeBps)
	require.NoError(t, err)
	adapter := collateral.NewAdapter(logging.NewTestLogger(), collateral.NewDefaultConfig(), asset, "vault-1")
	return adapter, asset
}

func TestBuiltinAsset(t *testing.T) {
	t.Run("Transfer fee must be basis points", func(t *testing.T) {
		_, err := collateral.NewBuiltinAsset("DAI", 10001)
		assert.ErrorIs(t, err, collateral.ErrInvalidTransferFee)
	})

	t.Run("Transfer debits sender and credits receiver", func(t *testing.T) {
		asset, err := collateral.NewBuiltinAsset("DAI", 0)
		require.NoError(t, err)
		asset.Deposit("alice", num.NewUint(100))

		require.NoError(t, asset.Transfer("alice", "bob", num.NewUint(60)))
		assert.True(t, asset.BalanceOf("alice").EQ(num.NewUint(40)))
		assert.True(t, asset.BalanceOf("bob").EQ(num.NewUint(60)))

		err = asset.Transfer("alice", "bob", num.NewUint(41))
		assert.ErrorIs(t, err, collateral.ErrInsufficientAssetBalance)
	})

	t.Run("Transfer fee is withheld from the receiver", func(t *testing.T) {
		asset, err := collateral.NewBuiltinAsset("USDT", 100)
		require.NoError(t, err)
		asset.Deposit("alice", num.NewUint(10000))

		require.NoError(t, asset.Transfer("alice", "bob", num.NewUint(10000)))
		assert.True(t, asset.BalanceOf("alice").IsZero())
		// 100bp of friction disappears in flight
		assert.True(t, asset.BalanceOf("bob").EQ(num.NewUint(9900)))
	})
}

func TestAdapterTransferIn(t *testing.T) {
	t.Run("Reports the nominal amount for a clean asset", func(t *testing.T) {
		adapter, asset := newAdapter(t, 0)
		asset.Deposit("alice", num.NewUint(500))

		received, err := adapter.TransferIn(context.Background(), "alice", num.NewUint(500))
		require.NoError(t, err)
		assert.True(t, received.EQ(num.NewUint(500)))
		assert.True(t, adapter.VaultBalance().EQ(num.NewUint(500)))
	})

	t.Run("Reports the balance delta for a fee-on-transfer asset", func(t *testing.T) {
		adapter, asset := newAdapter(t, 250)
		asset.Deposit("alice", num.NewUint(10000))

		received, err := adapter.TransferIn(context.Background(), "alice", num.NewUint(10000))
		require.NoError(t, err)
		// 250bp withheld: the vault sees 9750, and that is what is reported
		assert.True(t, received.EQ(num.NewUint(9750)))
		assert.True(t, adapter.VaultBalance().EQ(num.NewUint(9750)))
	})

	t.Run("Wraps the underlying asset failure", func(t *testing.T) {
		adapter, _ := newAdapter(t, 0)
		_, err := adapter.TransferIn(context.Background(), "alice", num.NewUint(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, collateral.ErrInsufficientAssetBalance)
		assert.True(t, adapter.VaultBalance().IsZero())
	})
}

func TestAdapterTransferOut(t *testing.T) {
	adapter, asset := newAdapter(t, 0)
	asset.Deposit("vault-1", num.NewUint(300))

	require.NoError(t, adapter.TransferOut(context.Background(), "bob", num.NewUint(200)))
	assert.True(t, asset.BalanceOf("bob").EQ(num.NewUint(200)))
	assert.True(t, adapter.VaultBalance().EQ(num.NewUint(100)))

	err := adapter.TransferOut(context.Background(), "bob", num.NewUint(101))
	assert.ErrorIs(t, err, collateral.ErrInsufficientAssetBalance)
}
