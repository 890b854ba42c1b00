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
	"time"

	"github.com/shopspring/decimal"
)

type EarningKind string

const (
	EarningKindSelfPV           EarningKind = "self_pv"
	EarningKindDirectReferral   EarningKind = "direct_referral"
	EarningKindAncestorMatching EarningKind = "ancestor_matching"
	// EarningKindSponsorMatchingBonus is accepted by the ledger but no
	// engine emits it.
	EarningKindSponsorMatchingBonus EarningKind = "sponsor_matching_bonus"
)

func (k EarningKind) IsValid() bool {
	switch k {
	case EarningKindSelfPV, EarningKindDirectReferral,
		EarningKindAncestorMatching, EarningKindSponsorMatchingBonus:
		return true
	default:
		return false
	}
}

func (k EarningKind) String() string {
	return string(k)
}

// EarningRecord is an immutable ledger entry crediting one beneficiary for
// one order.
type EarningRecord struct {
	ID              string      `json:"id" db:"id"`
	BeneficiaryCode string      `json:"beneficiary_code" db:"beneficiary_code"`
	SourceBuyerCode string      `json:"source_buyer_code" db:"source_buyer_code"`
	OrderID         string      `json:"order_id" db:"order_id"`
	Kind            EarningKind `json:"kind" db:"kind"`
	// Level is the ancestor depth, 1 being the nearest parent. Zero for
	// non matching kinds.
	Level          int             `json:"level" db:"level"`
	PercentApplied decimal.Decimal `json:"percent_applied" db:"percent_applied"`
	// PV is only set on self-PV records, Amount is always in currency.
	PV        int64           `json:"pv" db:"pv"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
