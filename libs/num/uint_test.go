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

package num_test

import (
	"testing"

	"code.vegaprotocol.io/synth/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUintFromString(t *testing.T) {
	u, overflow := num.UintFromString("42000000000000000000", 10)
	require.False(t, overflow)
	assert.Equal(t, "42000000000000000000", u.String())

	_, overflow = num.UintFromString("not a number", 10)
	assert.True(t, overflow)

	// one above 2^256-1
	_, overflow = num.UintFromString("115792089237316195423570985008687907853269984665640564039457584007913129639936", 10)
	assert.True(t, overflow)
}

func TestOverflowCheckedOps(t *testing.T) {
	t.Run("AddOverflow", func(t *testing.T) {
		sum, overflow := num.UintZero().AddOverflow(num.NewUint(2), num.NewUint(3))
		require.False(t, overflow)
		assert.True(t, sum.EQ(num.NewUint(5)))

		_, overflow = num.UintZero().AddOverflow(num.MaxUint(), num.UintOne())
		assert.True(t, overflow)
	})

	t.Run("SubOverflow", func(t *testing.T) {
		diff, underflow := num.UintZero().SubOverflow(num.NewUint(5), num.NewUint(3))
		require.False(t, underflow)
		assert.True(t, diff.EQ(num.NewUint(2)))

		_, underflow = num.UintZero().SubOverflow(num.NewUint(3), num.NewUint(5))
		assert.True(t, underflow)
	})

	t.Run("MulOverflow", func(t *testing.T) {
		prod, overflow := num.UintZero().MulOverflow(num.NewUint(6), num.NewUint(7))
		require.False(t, overflow)
		assert.True(t, prod.EQ(num.NewUint(42)))

		_, overflow = num.UintZero().MulOverflow(num.MaxUint(), num.NewUint(2))
		assert.True(t, overflow)
	})
}

func TestDivTruncates(t *testing.T) {
	q := num.UintZero().Div(num.NewUint(7), num.NewUint(2))
	assert.True(t, q.EQ(num.NewUint(3)))

	// division by zero yields zero rather than panicking
	q = num.UintZero().Div(num.NewUint(7), num.UintZero())
	assert.True(t, q.IsZero())
}

func TestDelta(t *testing.T) {
	d, neg := num.UintZero().Delta(num.NewUint(10), num.NewUint(4))
	assert.False(t, neg)
	assert.True(t, d.EQ(num.NewUint(6)))

	d, neg = num.UintZero().Delta(num.NewUint(4), num.NewUint(10))
	assert.True(t, neg)
	assert.True(t, d.EQ(num.NewUint(6)))
}

func TestSumAndComparisons(t *testing.T) {
	total := num.Sum(num.NewUint(1), num.NewUint(2), num.NewUint(3))
	assert.True(t, total.EQ(num.NewUint(6)))

	assert.True(t, num.NewUint(1).LT(num.NewUint(2)))
	assert.True(t, num.NewUint(2).LTE(num.NewUint(2)))
	assert.True(t, num.NewUint(3).GT(num.NewUint(2)))
	assert.True(t, num.NewUint(2).GTE(num.NewUint(2)))
	assert.True(t, num.NewUint(2).NEQ(num.NewUint(3)))
	assert.True(t, num.Min(num.NewUint(2), num.NewUint(3)).EQ(num.NewUint(2)))
	assert.True(t, num.Max(num.NewUint(2), num.NewUint(3)).EQ(num.NewUint(3)))
}

func TestCloneIsIndependent(t *testing.T) {
	a := num.NewUint(10)
	b := a.Clone()
	b.Add(b, num.NewUint(5))
	assert.True(t, a.EQ(num.NewUint(10)))
	assert.True(t, b.EQ(num.NewUint(15)))
}
