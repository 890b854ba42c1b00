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

type OrderSubmitted struct {
	*Base
	Order types.Order `json:"order"`
}

func NewOrderSubmitted(ctx context.Context, o types.Order) *OrderSubmitted {
	return &OrderSubmitted{
		Base:  newBase(ctx, OrderSubmittedEvent),
		Order: o,
	}
}

func (o OrderSubmitted) Key() string {
	return o.Order.ID
}

type MemberRegistered struct {
	*Base
	Member types.Member `json:"member"`
}

func NewMemberRegistered(ctx context.Context, m types.Member) *MemberRegistered {
	return &MemberRegistered{
		Base:   newBase(ctx, MemberRegisteredEvent),
		Member: m,
	}
}

func (m MemberRegistered) Key() string {
	return m.Member.Code
}
