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

package commission_test

import (
	"fmt"
	"math"
	"testing"

	"code.bundlemart.io/earnings/commission"
	"code.bundlemart.io/earnings/config/encoding"
	"code.bundlemart.io/earnings/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator(t *testing.T) {
	t.Run("pv is floor of dp per step", testPVDeterminism)
	t.Run("pv cap is applied by CapPV only", testPVCap)
	t.Run("matching rates follow the table then the fallback", testMatchingRateTable)
	t.Run("worked example", testWorkedExample)
	t.Run("matching can skip the direct parent", testMatchingSkipsDirectParent)
	t.Run("amounts are truncated to the configured decimals", testAmountTruncation)
	t.Run("negative and empty inputs give zero", testZeroInputs)
	t.Run("total amount uses mrp", testTotalAmountUsesMRP)
	t.Run("totals saturate instead of wrapping", testTotalsSaturate)
}

func newCalculator() *commission.Calculator {
	return commission.New(commission.NewDefaultConfig())
}

func testPVDeterminism(t *testing.T) {
	calc := newCalculator()
	prev := int64(0)
	for dp := int64(0); dp <= 25000; dp += 37 {
		pv := calc.PV(dp)
		assert.Equal(t, (dp/1000)*100, pv, "dp=%d", dp)
		assert.Zero(t, pv%100, "dp=%d", dp)
		assert.GreaterOrEqual(t, pv, prev, "dp=%d", dp)
		prev = pv
	}
	assert.Equal(t, int64(0), calc.PV(999))
	assert.Equal(t, int64(100), calc.PV(1000))
	assert.Equal(t, int64(100), calc.PV(1999))
}

func testPVCap(t *testing.T) {
	calc := newCalculator()
	// PV itself is not capped
	assert.Equal(t, int64(10000), calc.PV(100000))
	assert.Equal(t, int64(5000), calc.CapPV(calc.PV(100000)))
	assert.Equal(t, int64(5000), calc.CapPV(5000))
	assert.Equal(t, int64(4900), calc.CapPV(4900))

	items := []types.LineItem{{ProductID: "p", UnitDP: 60000, Qty: 1}}
	assert.Equal(t, int64(5000), calc.OrderPV(items))

	cfg := commission.NewDefaultConfig()
	cfg.MaxPV = 0
	uncapped := commission.New(cfg)
	assert.Equal(t, int64(6000), uncapped.OrderPV(items))
}

func testMatchingRateTable(t *testing.T) {
	calc := newCalculator()
	expected := []string{"0.12", "0.06", "0.03"}
	for n := 0; n <= 12; n++ {
		ancestors := make([]string, 0, n)
		for i := 0; i < n; i++ {
			ancestors = append(ancestors, fmt.Sprintf("BM-A-%06d", i+1))
		}
		shares := calc.MatchingIncome(10000, ancestors)
		require.Len(t, shares, n)
		for i, s := range shares {
			assert.Equal(t, i+1, s.Level)
			assert.Equal(t, ancestors[i], s.AncestorCode)
			want := decimal.RequireFromString("0.02")
			if i < len(expected) {
				want = decimal.RequireFromString(expected[i])
			}
			assert.True(t, want.Equal(s.Percent), "n=%d level=%d got %s", n, s.Level, s.Percent)
			assert.True(t, want.Mul(decimal.NewFromInt(10000)).Equal(s.Income))
		}
	}
}

func testWorkedExample(t *testing.T) {
	calc := newCalculator()
	items := []types.LineItem{
		{ProductID: "a", UnitDP: 500, Qty: 2},
		{ProductID: "b", UnitDP: 250, Qty: 4},
	}
	totalDP := calc.TotalDP(items)
	require.Equal(t, int64(2000), totalDP)

	pv := calc.PV(totalDP)
	require.Equal(t, int64(200), pv)
	assert.Equal(t, "240", calc.SelfCreditAmount(pv).String())
	assert.Equal(t, "240", calc.DirectIncome(totalDP).String())

	shares := calc.MatchingIncome(totalDP, []string{"P1", "P2", "P3", "P4"})
	require.Len(t, shares, 4)
	got := []string{}
	for _, s := range shares {
		got = append(got, s.Income.String())
	}
	assert.Equal(t, []string{"240", "120", "60", "40"}, got)
}

func testMatchingSkipsDirectParent(t *testing.T) {
	cfg := commission.NewDefaultConfig()
	cfg.MatchingSkipsDirectParent = true
	calc := commission.New(cfg)

	shares := calc.MatchingIncome(2000, []string{"P1", "P2", "P3"})
	require.Len(t, shares, 2)
	assert.Equal(t, "P2", shares[0].AncestorCode)
	assert.Equal(t, 2, shares[0].Level)
	assert.Equal(t, "120", shares[0].Income.String())
	assert.Equal(t, "P3", shares[1].AncestorCode)
	assert.Equal(t, "60", shares[1].Income.String())
}

func testAmountTruncation(t *testing.T) {
	cfg := commission.NewDefaultConfig()
	cfg.DirectRate = encoding.NewDecimal("0.125")
	calc := commission.New(cfg)
	// 101 * 0.125 = 12.625
	assert.Equal(t, "12.62", calc.DirectIncome(101).String())
	// 1001 * 0.03 = 30.03
	assert.Equal(t, "30.03", calc.MatchingIncome(1001, []string{"a", "b", "c"})[2].Income.String())
}

func testZeroInputs(t *testing.T) {
	calc := newCalculator()
	assert.Equal(t, int64(0), calc.TotalDP(nil))
	assert.Equal(t, int64(0), calc.PV(-5000))
	assert.Equal(t, int64(0), calc.CapPV(-1))
	assert.True(t, calc.SelfCreditAmount(0).IsZero())
	assert.True(t, calc.DirectIncome(-10).IsZero())
	assert.Empty(t, calc.MatchingIncome(2000, nil))
	for _, s := range calc.MatchingIncome(-1, []string{"a"}) {
		assert.True(t, s.Income.IsZero())
	}
}

func testTotalAmountUsesMRP(t *testing.T) {
	calc := newCalculator()
	items := []types.LineItem{
		{ProductID: "a", UnitDP: 500, UnitMRP: 650, Qty: 2},
		{ProductID: "b", UnitDP: 250, UnitMRP: 300, Qty: 4},
	}
	assert.Equal(t, int64(2500), calc.TotalAmount(items))
	assert.Equal(t, int64(2000), calc.TotalDP(items))
}

func testTotalsSaturate(t *testing.T) {
	calc := newCalculator()

	line := []types.LineItem{{ProductID: "a", UnitDP: math.MaxInt64 / 2, UnitMRP: math.MaxInt64 / 2, Qty: 3}}
	assert.Equal(t, int64(math.MaxInt64), calc.TotalDP(line))
	assert.Equal(t, int64(math.MaxInt64), calc.TotalAmount(line))
	assert.Equal(t, int64(5000), calc.OrderPV(line))

	sum := []types.LineItem{
		{ProductID: "a", UnitDP: math.MaxInt64 / 2, Qty: 1},
		{ProductID: "b", UnitDP: math.MaxInt64 / 2, Qty: 1},
		{ProductID: "c", UnitDP: 10, Qty: 1},
	}
	assert.Equal(t, int64(math.MaxInt64), calc.TotalDP(sum))
	assert.Equal(t, int64(5000), calc.OrderPV(sum))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, commission.NewDefaultConfig().Validate())

	cfg := commission.NewDefaultConfig()
	cfg.PVStep = 0
	assert.ErrorIs(t, cfg.Validate(), commission.ErrNonPositivePVStep)

	cfg = commission.NewDefaultConfig()
	cfg.MatchingRates[1] = encoding.NewDecimal("-0.01")
	assert.Error(t, cfg.Validate())

	cfg = commission.NewDefaultConfig()
	cfg.PVRate = encoding.NewDecimal("-1")
	assert.Error(t, cfg.Validate())
}
