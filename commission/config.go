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
	"errors"
	"fmt"

	"code.bundlemart.io/earnings/config/encoding"
)

var (
	ErrNonPositivePVStep = errors.New("pv step must be positive")
	ErrNegativeRate      = func(name string) error {
		return fmt.Errorf("rate %q must not be negative", name)
	}
)

// Config holds every constant the calculator uses. Rates are fractions,
// 0.12 meaning 12%.
type Config struct {
	PVStep    int64 `long:"pv-step" description:"DP spend needed for one PV step"`
	PVPerStep int64 `long:"pv-per-step" description:"PV credited per full step of DP"`
	MaxPV     int64 `long:"max-pv" description:"Cap applied to the PV stored on an order, 0 disables it"`

	PVRate     encoding.Decimal `long:"pv-rate" description:"Currency paid back to the buyer per PV"`
	DirectRate encoding.Decimal `long:"direct-rate" description:"Share of total DP paid to the immediate parent"`

	MatchingRates             []encoding.Decimal `long:"matching-rate" description:"Matching rate per ancestor level, nearest first (repeatable)"`
	MatchingFallbackRate      encoding.Decimal   `long:"matching-fallback-rate" description:"Matching rate for levels beyond the table"`
	MatchingSkipsDirectParent encoding.Bool      `long:"matching-skips-direct-parent" description:"Do not pay level 1 matching to the parent already paid a direct income"`

	AmountDecimals int32 `long:"amount-decimals" description:"Decimal places kept on ledger amounts, extra digits are truncated"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		PVStep:     1000,
		PVPerStep:  100,
		MaxPV:      5000,
		PVRate:     encoding.NewDecimal("1.2"),
		DirectRate: encoding.NewDecimal("0.12"),
		MatchingRates: []encoding.Decimal{
			encoding.NewDecimal("0.12"),
			encoding.NewDecimal("0.06"),
			encoding.NewDecimal("0.03"),
		},
		MatchingFallbackRate:      encoding.NewDecimal("0.02"),
		MatchingSkipsDirectParent: false,
		AmountDecimals:            2,
	}
}

func (c Config) Validate() error {
	if c.PVStep <= 0 {
		return ErrNonPositivePVStep
	}
	if c.PVPerStep < 0 || c.MaxPV < 0 || c.AmountDecimals < 0 {
		return errors.New("pv per step, max pv and amount decimals must not be negative")
	}
	if c.PVRate.IsNegative() {
		return ErrNegativeRate("pv-rate")
	}
	if c.DirectRate.IsNegative() {
		return ErrNegativeRate("direct-rate")
	}
	for i, r := range c.MatchingRates {
		if r.IsNegative() {
			return ErrNegativeRate(fmt.Sprintf("matching-rate[%d]", i))
		}
	}
	if c.MatchingFallbackRate.IsNegative() {
		return ErrNegativeRate("matching-fallback-rate")
	}
	return nil
}
