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

package events

import (
	"context"

	"code.bundlemart.io/earnings/types"
)

// EarningsGenerated is sent once the ledger records of an order are committed.
type EarningsGenerated struct {
	*Base
	OrderID   string                `json:"order_id"`
	BuyerCode string                `json:"buyer_code"`
	Records   []types.EarningRecord `json:"records"`
}

func NewEarningsGenerated(ctx context.Context, order types.Order, records []types.EarningRecord) *EarningsGenerated {
	return &EarningsGenerated{
		Base:      newBase(ctx, EarningsGeneratedEvent),
		OrderID:   order.ID,
		BuyerCode: order.BuyerCode,
		Records:   append([]types.EarningRecord(nil), records...),
	}
}

func (e EarningsGenerated) Key() string {
	return e.OrderID
}
