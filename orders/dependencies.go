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

package orders

import (
	"context"

	"code.bundlemart.io/earnings/commission"
	"code.bundlemart.io/earnings/earnings"
	"code.bundlemart.io/earnings/events"
	"code.bundlemart.io/earnings/types"
)

//go:generate go run github.com/golang/mock/mockgen -destination mocks/mocks.go -package mocks code.bundlemart.io/earnings/orders Members,Store,Earnings,Broker

type Members interface {
	GetByCode(ctx context.Context, code string) (types.Member, error)
}

type Store interface {
	Create(ctx context.Context, order *types.Order) error
	Get(ctx context.Context, id string) (types.Order, error)
}

// Earnings is the generation engine.
type Earnings interface {
	Calculator() *commission.Calculator
	Generate(ctx context.Context, order *types.Order, opts earnings.Options) (earnings.Result, error)
}

type Broker interface {
	Send(event events.Event)
}
