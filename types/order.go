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
	"math"
	"time"
)

type LineItem struct {
	ProductID string `json:"product_id"`
	// UnitDP is the dealer price, the basis of every commission.
	UnitDP int64 `json:"unit_dp"`
	// UnitMRP is the retail price shown to customers.
	UnitMRP int64 `json:"unit_mrp"`
	Qty     int64 `json:"qty"`
}

// Order is a purchase event. Only TotalPV may change after creation, and
// only through repair tooling.
type Order struct {
	ID        string     `json:"id" db:"id"`
	BuyerID   int64      `json:"buyer_id" db:"buyer_id"`
	BuyerCode string     `json:"buyer_code" db:"buyer_code"`
	Items     []LineItem `json:"items" db:"items"`
	// TotalAmount is the customer facing sum of MRP * qty.
	TotalAmount int64 `json:"total_amount" db:"total_amount"`
	// TotalDP is the sum of DP * qty used for commissions.
	TotalDP int64 `json:"total_dp" db:"total_dp"`
	// TotalPV is the capped point value credited to the buyer.
	TotalPV   int64     `json:"total_pv" db:"total_pv"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// OrderComputedFields holds the fields repair tooling is allowed to rewrite.
type OrderComputedFields struct {
	TotalPV int64
}

// Validate checks the order can be priced. It does not look at the
// computed totals.
func (o *Order) Validate() error {
	if len(o.BuyerCode) == 0 {
		return NewValidationError("missing buyer code")
	}
	return ValidateItems(o.Items)
}

func ValidateItems(items []LineItem) error {
	if len(items) == 0 {
		return NewValidationError("order has no line items")
	}
	var totalDP, totalMRP int64
	for i, it := range items {
		if len(it.ProductID) == 0 {
			return NewValidationError("line item %d: missing product id", i)
		}
		if it.Qty <= 0 {
			return NewValidationError("line item %d: quantity must be positive, got %d", i, it.Qty)
		}
		if it.UnitDP < 0 {
			return NewValidationError("line item %d: negative dp %d", i, it.UnitDP)
		}
		if it.UnitMRP < 0 {
			return NewValidationError("line item %d: negative mrp %d", i, it.UnitMRP)
		}
		var ok bool
		if totalDP, ok = addLine(totalDP, it.UnitDP, it.Qty); !ok {
			return NewValidationError("line item %d: total dp overflows", i)
		}
		if totalMRP, ok = addLine(totalMRP, it.UnitMRP, it.Qty); !ok {
			return NewValidationError("line item %d: total mrp overflows", i)
		}
	}
	return nil
}

// addLine returns total + price*qty, or false when it does not fit in an
// int64. All three must be non-negative.
func addLine(total, price, qty int64) (int64, bool) {
	if price != 0 && qty > (math.MaxInt64-total)/price {
		return 0, false
	}
	return total + price*qty, true
}
