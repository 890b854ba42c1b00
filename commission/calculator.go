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

package commission

import (
	"math"

	"code.bundlemart.io/earnings/types"

	"github.com/shopspring/decimal"
)

// MatchingShare is the matching income owed to one ancestor.
type MatchingShare struct {
	AncestorCode string
	// Level is the distance from the buyer, 1 for the immediate parent.
	Level   int
	Percent decimal.Decimal
	Income  decimal.Decimal
}

// Calculator turns order line items into PV and commission amounts. It has
// no state besides its rates and is safe for concurrent use.
type Calculator struct {
	pvStep    int64
	pvPerStep int64
	maxPV     int64

	pvRate           decimal.Decimal
	directRate       decimal.Decimal
	matchingRates    []decimal.Decimal
	fallbackRate     decimal.Decimal
	skipDirectParent bool

	decimals int32
}

// New builds a Calculator. The config is expected to be valid, see
// Config.Validate.
func New(cfg Config) *Calculator {
	rates := make([]decimal.Decimal, 0, len(cfg.MatchingRates))
	for _, r := range cfg.MatchingRates {
		rates = append(rates, r.Get())
	}
	return &Calculator{
		pvStep:           cfg.PVStep,
		pvPerStep:        cfg.PVPerStep,
		maxPV:            cfg.MaxPV,
		pvRate:           cfg.PVRate.Get(),
		directRate:       cfg.DirectRate.Get(),
		matchingRates:    rates,
		fallbackRate:     cfg.MatchingFallbackRate.Get(),
		skipDirectParent: bool(cfg.MatchingSkipsDirectParent),
		decimals:         cfg.AmountDecimals,
	}
}

// TotalDP is the sum of unit DP times quantity. Lines with a negative price
// or quantity are ignored so the result is never negative, and a sum past
// math.MaxInt64 saturates there instead of wrapping.
func (c *Calculator) TotalDP(items []types.LineItem) int64 {
	return sumLines(items, func(it types.LineItem) int64 { return it.UnitDP })
}

// TotalAmount is the customer facing sum of MRP times quantity, with the
// same rules as TotalDP.
func (c *Calculator) TotalAmount(items []types.LineItem) int64 {
	return sumLines(items, func(it types.LineItem) int64 { return it.UnitMRP })
}

func sumLines(items []types.LineItem, price func(types.LineItem) int64) int64 {
	var total int64
	for _, it := range items {
		p := price(it)
		if p <= 0 || it.Qty <= 0 {
			continue
		}
		if it.Qty > (math.MaxInt64-total)/p {
			return math.MaxInt64
		}
		total += p * it.Qty
	}
	return total
}

// PV is floor(totalDP / step) * perStep. The cap is not applied here.
func (c *Calculator) PV(totalDP int64) int64 {
	if totalDP <= 0 || c.pvStep <= 0 {
		return 0
	}
	steps := totalDP / c.pvStep
	if c.pvPerStep > 0 && steps > math.MaxInt64/c.pvPerStep {
		return math.MaxInt64
	}
	return steps * c.pvPerStep
}

// CapPV clamps pv to the configured maximum. A zero maximum disables the cap.
func (c *Calculator) CapPV(pv int64) int64 {
	if pv < 0 {
		return 0
	}
	if c.maxPV > 0 && pv > c.maxPV {
		return c.maxPV
	}
	return pv
}

// OrderPV is the capped PV stored on an order at creation time.
func (c *Calculator) OrderPV(items []types.LineItem) int64 {
	return c.CapPV(c.PV(c.TotalDP(items)))
}

// SelfCreditAmount converts PV into the currency paid back to the buyer.
func (c *Calculator) SelfCreditAmount(pv int64) decimal.Decimal {
	if pv <= 0 {
		return decimal.Zero
	}
	return c.truncate(decimal.NewFromInt(pv).Mul(c.pvRate))
}

// DirectIncome is the amount owed to the buyer's immediate parent.
func (c *Calculator) DirectIncome(totalDP int64) decimal.Decimal {
	if totalDP <= 0 {
		return decimal.Zero
	}
	return c.truncate(decimal.NewFromInt(totalDP).Mul(c.directRate))
}

// MatchingRate returns the rate for an ancestor level (1 based).
func (c *Calculator) MatchingRate(level int) decimal.Decimal {
	if level >= 1 && level <= len(c.matchingRates) {
		return c.matchingRates[level-1]
	}
	return c.fallbackRate
}

// MatchingIncome returns one share per ancestor, nearest first. When the
// calculator skips the direct parent, the first ancestor gets no share and
// the others keep their level.
func (c *Calculator) MatchingIncome(totalDP int64, ancestorCodes []string) []MatchingShare {
	shares := make([]MatchingShare, 0, len(ancestorCodes))
	dp := decimal.NewFromInt(totalDP)
	if totalDP < 0 {
		dp = decimal.Zero
	}
	for i, code := range ancestorCodes {
		if i == 0 && c.skipDirectParent {
			continue
		}
		level := i + 1
		rate := c.MatchingRate(level)
		shares = append(shares, MatchingShare{
			AncestorCode: code,
			Level:        level,
			Percent:      rate,
			Income:       c.truncate(dp.Mul(rate)),
		})
	}
	return shares
}

func (c *Calculator) DirectRate() decimal.Decimal {
	return c.directRate
}

func (c *Calculator) PVRate() decimal.Decimal {
	return c.pvRate
}

func (c *Calculator) truncate(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(c.decimals)
}
